// Package edit defines the closed set of reversible timeline mutations
// and the undo/redo history over them. Every command carries enough
// data to apply itself and to synthesize its exact inverse without
// re-deriving context from the track, so apply(inverse(apply(cmd, S)))
// always restores S.
package edit

import (
	"github.com/jorg-4/proedit-core/internal/project"
	"github.com/jorg-4/proedit-core/internal/timebase"
	"github.com/jorg-4/proedit-core/internal/timeline"
)

// Command is one reversible timeline mutation. The set of variants is
// closed; Apply and Inverse switch exhaustively over it.
type Command interface {
	isCommand()
}

// InsertClip places a clip at Index on Track.
type InsertClip struct {
	Track *timeline.Track
	Index int
	Clip  *timeline.Clip
}

// RemoveClip removes the clip at Index on Track. Removed is captured
// when the command is applied so the inverse is self-contained.
type RemoveClip struct {
	Track   *timeline.Track
	Index   int
	Removed *timeline.Clip
}

// MoveClip relocates the item at SrcIndex to DstIndex, possibly on a
// different track. For a same-track move, DstIndex is the position
// after the item has been removed from SrcIndex.
type MoveClip struct {
	SrcTrack *timeline.Track
	SrcIndex int
	DstTrack *timeline.Track
	DstIndex int
}

// RippleTrim lengthens (positive Delta) or shortens a clip. Every item
// after the clip shifts by Delta automatically, because positions are
// implicit. TrimIn trims the clip's in-point, moving the source window
// start together with the duration change.
type RippleTrim struct {
	Track     *timeline.Track
	ClipIndex int
	Delta     timebase.RationalTime
	TrimIn    bool
}

// RollTrim moves the cut point between the clip at ClipIndex and its
// following neighbor without changing the track's total duration.
type RollTrim struct {
	Track     *timeline.Track
	ClipIndex int
	Delta     timebase.RationalTime
}

// Slip shifts which portion of the source a clip shows, leaving its
// timeline position and duration untouched.
type Slip struct {
	Track     *timeline.Track
	ClipIndex int
	Delta     timebase.RationalTime
}

// Slide moves a clip by Delta within its neighboring gaps; the gap
// before grows and the gap after shrinks (or vice versa), so the
// track's total duration is unchanged.
type Slide struct {
	Track     *timeline.Track
	ClipIndex int
	Delta     timebase.RationalTime
}

// SplitClip divides the clip at ClipIndex in two at Offset from its
// start. The right half is a new clip with its own identity.
type SplitClip struct {
	Track     *timeline.Track
	ClipIndex int
	Offset    timebase.RationalTime

	// Captured at apply time for the inverse.
	right          *timeline.Clip
	originalLength timebase.RationalTime
}

// ToggleClipEnabled flips a clip's enabled flag. Self-inverse.
type ToggleClipEnabled struct {
	Track     *timeline.Track
	ClipIndex int
}

// SetClipSpeed changes a clip's speed multiplier. The timeline length
// is deliberately left alone; pairing the speed change with a trim in
// a Batch keeps the whole operation exactly reversible.
type SetClipSpeed struct {
	Track     *timeline.Track
	ClipIndex int
	OldSpeed  float64
	NewSpeed  float64
}

// AddTrack inserts a track into a sequence's video or audio lane list.
type AddTrack struct {
	Sequence *project.Sequence
	Kind     timeline.Kind
	Index    int
	Track    *timeline.Track
}

// RemoveTrack removes a track from a sequence. Removed is captured at
// apply time so the inverse can restore it at its original index.
type RemoveTrack struct {
	Sequence *project.Sequence
	Kind     timeline.Kind
	Index    int
	Removed  *timeline.Track
}

// Batch groups commands into one atomic multi-step operation. Its
// inverse is the members' inverses in reverse order.
type Batch struct {
	Commands []Command
}

func (*InsertClip) isCommand()        {}
func (*RemoveClip) isCommand()        {}
func (*MoveClip) isCommand()          {}
func (*RippleTrim) isCommand()        {}
func (*RollTrim) isCommand()          {}
func (*Slip) isCommand()              {}
func (*Slide) isCommand()             {}
func (*SplitClip) isCommand()         {}
func (*ToggleClipEnabled) isCommand() {}
func (*SetClipSpeed) isCommand()      {}
func (*AddTrack) isCommand()          {}
func (*RemoveTrack) isCommand()       {}
func (*Batch) isCommand()             {}
