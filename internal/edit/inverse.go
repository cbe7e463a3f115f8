package edit

import "fmt"

// Inverse returns the command that exactly undoes cmd. For variants
// that capture state at apply time (RemoveClip, SplitClip, RemoveTrack)
// it must be called after cmd has been applied.
func Inverse(cmd Command) Command {
	switch c := cmd.(type) {
	case *InsertClip:
		return &RemoveClip{Track: c.Track, Index: c.Index, Removed: c.Clip}

	case *RemoveClip:
		return &InsertClip{Track: c.Track, Index: c.Index, Clip: c.Removed}

	case *MoveClip:
		return &MoveClip{
			SrcTrack: c.DstTrack, SrcIndex: c.DstIndex,
			DstTrack: c.SrcTrack, DstIndex: c.SrcIndex,
		}

	case *RippleTrim:
		return &RippleTrim{Track: c.Track, ClipIndex: c.ClipIndex, Delta: c.Delta.Neg(), TrimIn: c.TrimIn}

	case *RollTrim:
		return &RollTrim{Track: c.Track, ClipIndex: c.ClipIndex, Delta: c.Delta.Neg()}

	case *Slip:
		return &Slip{Track: c.Track, ClipIndex: c.ClipIndex, Delta: c.Delta.Neg()}

	case *Slide:
		return &Slide{Track: c.Track, ClipIndex: c.ClipIndex, Delta: c.Delta.Neg()}

	case *SplitClip:
		// Undo removes the created right half, then restores the left
		// clip's pre-split length with an out-point trim.
		return &Batch{Commands: []Command{
			&RemoveClip{Track: c.Track, Index: c.ClipIndex + 1, Removed: c.right},
			&RippleTrim{Track: c.Track, ClipIndex: c.ClipIndex, Delta: c.originalLength.Sub(c.Offset)},
		}}

	case *ToggleClipEnabled:
		return &ToggleClipEnabled{Track: c.Track, ClipIndex: c.ClipIndex}

	case *SetClipSpeed:
		return &SetClipSpeed{Track: c.Track, ClipIndex: c.ClipIndex, OldSpeed: c.NewSpeed, NewSpeed: c.OldSpeed}

	case *AddTrack:
		return &RemoveTrack{Sequence: c.Sequence, Kind: c.Kind, Index: c.Index, Removed: c.Track}

	case *RemoveTrack:
		return &AddTrack{Sequence: c.Sequence, Kind: c.Kind, Index: c.Index, Track: c.Removed}

	case *Batch:
		inv := make([]Command, len(c.Commands))
		for i, sub := range c.Commands {
			inv[len(c.Commands)-1-i] = Inverse(sub)
		}
		return &Batch{Commands: inv}
	}
	panic(fmt.Sprintf("edit: unknown command %T", cmd))
}
