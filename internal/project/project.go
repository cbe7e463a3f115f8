// Package project holds the aggregate document: a project owns
// sequences, each sequence owns video and audio tracks cut at a fixed
// frame rate and resolution. The versioned on-disk form lives in
// file.go.
package project

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jorg-4/proedit-core/internal/timebase"
	"github.com/jorg-4/proedit-core/internal/timeline"
)

// Sequence is one edited timeline: ordered video and audio lanes plus
// the output frame rate and pixel dimensions.
type Sequence struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Rate        timebase.FrameRate `json:"rate"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	VideoTracks []*timeline.Track  `json:"video_tracks"`
	AudioTracks []*timeline.Track  `json:"audio_tracks"`
}

// NewSequence creates a sequence with one empty video and one empty
// audio track.
func NewSequence(name string, rate timebase.FrameRate, width, height int) *Sequence {
	if !rate.Valid() {
		panic(fmt.Sprintf("project: invalid frame rate %v", rate))
	}
	return &Sequence{
		ID:          uuid.New(),
		Name:        name,
		Rate:        rate,
		Width:       width,
		Height:      height,
		VideoTracks: []*timeline.Track{timeline.NewTrack(timeline.Video, "V1")},
		AudioTracks: []*timeline.Track{timeline.NewTrack(timeline.Audio, "A1")},
	}
}

// Duration is the maximum duration over all tracks.
func (s *Sequence) Duration() timebase.RationalTime {
	var max timebase.RationalTime
	for _, tr := range s.VideoTracks {
		if d := tr.Duration(); d.Cmp(max) > 0 {
			max = d
		}
	}
	for _, tr := range s.AudioTracks {
		if d := tr.Duration(); d.Cmp(max) > 0 {
			max = d
		}
	}
	return max
}

// Tracks returns the lane list for the given kind.
func (s *Sequence) Tracks(kind timeline.Kind) []*timeline.Track {
	if kind == timeline.Audio {
		return s.AudioTracks
	}
	return s.VideoTracks
}

// InsertTrack splices a track into the lane list for kind. An
// out-of-range index is a caller bug and panics.
func (s *Sequence) InsertTrack(kind timeline.Kind, index int, tr *timeline.Track) {
	lanes := s.Tracks(kind)
	if index < 0 || index > len(lanes) {
		panic(fmt.Sprintf("project: track index %d out of range [0,%d]", index, len(lanes)))
	}
	lanes = append(lanes, nil)
	copy(lanes[index+1:], lanes[index:])
	lanes[index] = tr
	s.setTracks(kind, lanes)
}

// RemoveTrack splices out and returns the track at index in the lane
// list for kind. An out-of-range index is a caller bug and panics.
func (s *Sequence) RemoveTrack(kind timeline.Kind, index int) *timeline.Track {
	lanes := s.Tracks(kind)
	if index < 0 || index >= len(lanes) {
		panic(fmt.Sprintf("project: track index %d out of range [0,%d)", index, len(lanes)))
	}
	tr := lanes[index]
	lanes = append(lanes[:index], lanes[index+1:]...)
	s.setTracks(kind, lanes)
	return tr
}

func (s *Sequence) setTracks(kind timeline.Kind, lanes []*timeline.Track) {
	if kind == timeline.Audio {
		s.AudioTracks = lanes
	} else {
		s.VideoTracks = lanes
	}
}

// Clone returns a deep copy of the sequence for read-only snapshots.
func (s *Sequence) Clone() *Sequence {
	out := &Sequence{ID: s.ID, Name: s.Name, Rate: s.Rate, Width: s.Width, Height: s.Height}
	for _, tr := range s.VideoTracks {
		out.VideoTracks = append(out.VideoTracks, tr.Clone())
	}
	for _, tr := range s.AudioTracks {
		out.AudioTracks = append(out.AudioTracks, tr.Clone())
	}
	return out
}

// Project is the top-level document: a name and one or more sequences,
// one of which is active.
type Project struct {
	Name      string      `json:"name"`
	Sequences []*Sequence `json:"sequences"`
	Active    int         `json:"active"`
}

// NewProject creates a project with a single 1080p 23.976 sequence.
func NewProject(name string) *Project {
	return &Project{
		Name:      name,
		Sequences: []*Sequence{NewSequence("Sequence 1", timebase.Rate23976, 1920, 1080)},
	}
}

// ActiveSequence returns the active sequence, or nil for an empty
// project.
func (p *Project) ActiveSequence() *Sequence {
	if p.Active < 0 || p.Active >= len(p.Sequences) {
		return nil
	}
	return p.Sequences[p.Active]
}

// SequenceByName returns the named sequence, reporting false if the
// project has no sequence with that name.
func (p *Project) SequenceByName(name string) (*Sequence, bool) {
	for _, s := range p.Sequences {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
