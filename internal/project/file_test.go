package project

import (
	"errors"
	"strings"
	"testing"

	"github.com/jorg-4/proedit-core/internal/anim"
	"github.com/jorg-4/proedit-core/internal/timebase"
	"github.com/jorg-4/proedit-core/internal/timeline"
)

func sampleFile() *ProjectFile {
	p := NewProject("Feature")
	seq := p.Sequences[0]

	c := clipOf("intro", 5)
	c.Animate("opacity").Set(seconds(0), 0.0, anim.Bezier(anim.EaseInOutCurve))
	c.Animate("opacity").Set(seconds(1), 1.0, anim.Linear)
	seq.VideoTracks[0].InsertItem(0, c)
	seq.VideoTracks[0].InsertItem(1, timeline.NewGap(seconds(2)))
	seq.VideoTracks[0].InsertItem(2, clipOf("main", 30))
	seq.AudioTracks[0].InsertItem(0, clipOf("music", 37))

	return &ProjectFile{Version: CurrentVersion, AppVersion: "0.9.0", Project: p}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	in := sampleFile()
	data, err := Save(in)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := Load(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Version != CurrentVersion {
		t.Fatalf("version = %d, want %d", out.Version, CurrentVersion)
	}
	if out.Project.Name != "Feature" {
		t.Fatalf("project name = %q", out.Project.Name)
	}

	seq := out.Project.ActiveSequence()
	if seq == nil {
		t.Fatal("no active sequence after load")
	}
	if seq.Duration() != seconds(37) {
		t.Fatalf("duration after load = %v, want 37s", seq.Duration())
	}
	if seq.Rate != timebase.Rate23976 {
		t.Fatalf("rate after load = %v", seq.Rate)
	}

	clip, ok := seq.VideoTracks[0].Items[0].(*timeline.Clip)
	if !ok {
		t.Fatalf("first item is %T, want clip", seq.VideoTracks[0].Items[0])
	}
	opacity := clip.Param("opacity")
	if opacity == nil || opacity.Len() != 2 {
		t.Fatalf("opacity keyframes lost: %+v", opacity)
	}
	if got := opacity.Evaluate(timebase.New(1, 2)); got <= 0 || got >= 1 {
		t.Fatalf("opacity midway = %v, want interior value", got)
	}
}

func TestLoad_BareV0DocumentIsWrapped(t *testing.T) {
	// Pre-versioning documents are the bare project body. Track kinds
	// lived in a flat list and clips had no speed/enabled fields.
	raw := `{
		"name": "Legacy",
		"active": 0,
		"sequences": [{
			"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			"name": "Old Cut",
			"rate": {"num": 24, "den": 1},
			"width": 1280,
			"height": 720,
			"tracks": [
				{
					"id": "6ba7b811-9dad-11d1-80b4-00c04fd430c8",
					"kind": "video",
					"name": "V1",
					"items": [{
						"type": "clip",
						"clip": {
							"id": "6ba7b812-9dad-11d1-80b4-00c04fd430c8",
							"name": "shot",
							"ref": {"path": "/m/shot.mov", "duration": {"num": 8, "den": 1}},
							"source_in": {"num": 0, "den": 1},
							"length": {"num": 8, "den": 1}
						}
					}]
				},
				{
					"id": "6ba7b813-9dad-11d1-80b4-00c04fd430c8",
					"kind": "audio",
					"name": "A1",
					"items": []
				}
			]
		}]
	}`

	f, err := Load([]byte(raw))
	if err != nil {
		t.Fatalf("load v0: %v", err)
	}
	if f.Version != CurrentVersion {
		t.Fatalf("version after migration = %d, want %d", f.Version, CurrentVersion)
	}
	if f.Project.Name != "Legacy" {
		t.Fatalf("project name = %q", f.Project.Name)
	}

	seq := f.Project.Sequences[0]
	if len(seq.VideoTracks) != 1 || len(seq.AudioTracks) != 1 {
		t.Fatalf("track split failed: %d video, %d audio", len(seq.VideoTracks), len(seq.AudioTracks))
	}
	clip := seq.VideoTracks[0].Items[0].(*timeline.Clip)
	if !clip.Enabled || clip.Speed != 1.0 {
		t.Fatalf("clip defaults not filled in: enabled=%v speed=%v", clip.Enabled, clip.Speed)
	}
}

func TestLoad_NewerVersionRejectedWithVersionNumber(t *testing.T) {
	_, err := Load([]byte(`{"version": 12, "project": {"name": "x", "sequences": [], "active": 0}}`))

	var verr *UnsupportedVersionError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want UnsupportedVersionError", err)
	}
	if verr.Found != 12 || verr.Supported != CurrentVersion {
		t.Fatalf("error carries %d/%d, want 12/%d", verr.Found, verr.Supported, CurrentVersion)
	}
	if !strings.Contains(err.Error(), "12") {
		t.Fatalf("message must state the offending version: %q", err)
	}
}

func TestLoad_MigrationGapRejected(t *testing.T) {
	saved := migrations
	defer func() { migrations = saved }()
	migrations = map[int]migration{0: migrateWrapEnvelope, 2: migrateSplitTrackKinds}

	_, err := Load([]byte(`{"version": 1, "project": {"name": "x", "sequences": [], "active": 0}}`))

	var gap *MigrationGapError
	if !errors.As(err, &gap) {
		t.Fatalf("err = %v, want MigrationGapError", err)
	}
	if gap.From != 1 {
		t.Fatalf("gap reported from version %d, want 1", gap.From)
	}
}

func TestLoad_MalformedDocumentRejected(t *testing.T) {
	if _, err := Load([]byte(`{"version": `)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if _, err := Load([]byte(`{"version": 3}`)); err == nil {
		t.Fatal("expected error for a document with no project body")
	}
}

func TestLoad_InvalidFrameRateRejected(t *testing.T) {
	raw := `{"version": 3, "project": {"name": "x", "active": 0, "sequences": [
		{"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "name": "Bad", "rate": {"num": 0, "den": 1},
		 "width": 1, "height": 1, "video_tracks": [], "audio_tracks": []}
	]}}`
	_, err := Load([]byte(raw))
	if err == nil || !strings.Contains(err.Error(), "frame rate") {
		t.Fatalf("err = %v, want invalid frame rate failure", err)
	}
}
