package edit

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jorg-4/proedit-core/internal/timebase"
	"github.com/jorg-4/proedit-core/internal/timeline"
)

var (
	ErrNegativeDuration = errors.New("edit: trim would make a duration negative")
	ErrNoNeighbor       = errors.New("edit: no adjacent item to trim against")
	ErrNoGap            = errors.New("edit: no neighboring gaps to absorb the slide")
	ErrSourceUnderrun   = errors.New("edit: source window out of media bounds")
	ErrNotAClip         = errors.New("edit: track item is not a clip")
	ErrSplitOffset      = errors.New("edit: split offset outside clip")
)

// Apply executes cmd against its target track or sequence. Semantic
// infeasibility (a trim past zero, a slide with nothing to absorb it)
// returns a typed error and leaves the target unchanged. Out-of-range
// indexes are caller bugs and panic.
func Apply(cmd Command) error {
	switch c := cmd.(type) {
	case *InsertClip:
		c.Track.InsertItem(c.Index, c.Clip)

	case *RemoveClip:
		clip, err := clipAt(c.Track, c.Index)
		if err != nil {
			return err
		}
		c.Track.RemoveItem(c.Index)
		c.Removed = clip

	case *MoveClip:
		item := c.SrcTrack.RemoveItem(c.SrcIndex)
		c.DstTrack.InsertItem(c.DstIndex, item)

	case *RippleTrim:
		clip, err := clipAt(c.Track, c.ClipIndex)
		if err != nil {
			return err
		}
		newLength := clip.Length.Add(c.Delta)
		if newLength.Sign() < 0 {
			return ErrNegativeDuration
		}
		if c.TrimIn {
			newIn := clip.SourceIn.Sub(c.Delta)
			if newIn.Sign() < 0 {
				return ErrSourceUnderrun
			}
			clip.SourceIn = newIn
		}
		clip.Length = newLength
		c.Track.ConsolidateGaps()

	case *RollTrim:
		clip, err := clipAt(c.Track, c.ClipIndex)
		if err != nil {
			return err
		}
		if c.ClipIndex+1 >= len(c.Track.Items) {
			return ErrNoNeighbor
		}
		newLength := clip.Length.Add(c.Delta)
		if newLength.Sign() < 0 {
			return ErrNegativeDuration
		}
		switch next := c.Track.Items[c.ClipIndex+1].(type) {
		case *timeline.Clip:
			nextLength := next.Length.Sub(c.Delta)
			if nextLength.Sign() < 0 {
				return ErrNegativeDuration
			}
			nextIn := next.SourceIn.Add(c.Delta)
			if nextIn.Sign() < 0 {
				return ErrSourceUnderrun
			}
			clip.Length = newLength
			next.Length = nextLength
			next.SourceIn = nextIn
		case *timeline.Gap:
			gapLength := next.Length.Sub(c.Delta)
			if gapLength.Sign() < 0 {
				return ErrNegativeDuration
			}
			clip.Length = newLength
			next.Length = gapLength
		default:
			return ErrNoNeighbor
		}

	case *Slip:
		clip, err := clipAt(c.Track, c.ClipIndex)
		if err != nil {
			return err
		}
		newIn := clip.SourceIn.Add(c.Delta)
		if newIn.Sign() < 0 {
			return ErrSourceUnderrun
		}
		if clip.Speed == 1.0 && clip.Ref.Duration.Sign() > 0 &&
			newIn.Add(clip.Length).Cmp(clip.Ref.Duration) > 0 {
			return ErrSourceUnderrun
		}
		clip.SourceIn = newIn

	case *Slide:
		if _, err := clipAt(c.Track, c.ClipIndex); err != nil {
			return err
		}
		if c.ClipIndex == 0 || c.ClipIndex+1 >= len(c.Track.Items) {
			return ErrNoGap
		}
		before, okBefore := c.Track.Items[c.ClipIndex-1].(*timeline.Gap)
		after, okAfter := c.Track.Items[c.ClipIndex+1].(*timeline.Gap)
		if !okBefore || !okAfter {
			return ErrNoGap
		}
		beforeLength := before.Length.Add(c.Delta)
		afterLength := after.Length.Sub(c.Delta)
		if beforeLength.Sign() < 0 || afterLength.Sign() < 0 {
			return ErrNegativeDuration
		}
		before.Length = beforeLength
		after.Length = afterLength

	case *SplitClip:
		clip, err := clipAt(c.Track, c.ClipIndex)
		if err != nil {
			return err
		}
		if c.Offset.Sign() <= 0 || c.Offset.Cmp(clip.Length) >= 0 {
			return ErrSplitOffset
		}
		c.originalLength = clip.Length

		right := clip.Clone()
		right.ID = uuid.New()
		right.SourceIn = clip.SourceIn.Add(sourceAdvance(clip, c.Offset))
		right.Length = clip.Length.Sub(c.Offset)
		clip.Length = c.Offset

		c.Track.InsertItem(c.ClipIndex+1, right)
		c.right = right

	case *ToggleClipEnabled:
		clip, err := clipAt(c.Track, c.ClipIndex)
		if err != nil {
			return err
		}
		clip.Enabled = !clip.Enabled

	case *SetClipSpeed:
		if c.NewSpeed <= 0 {
			panic(fmt.Sprintf("edit: non-positive speed %v", c.NewSpeed))
		}
		clip, err := clipAt(c.Track, c.ClipIndex)
		if err != nil {
			return err
		}
		clip.Speed = c.NewSpeed

	case *AddTrack:
		c.Sequence.InsertTrack(c.Kind, c.Index, c.Track)

	case *RemoveTrack:
		c.Removed = c.Sequence.RemoveTrack(c.Kind, c.Index)

	case *Batch:
		for i, sub := range c.Commands {
			if err := Apply(sub); err != nil {
				// Roll back the applied prefix so the batch is atomic.
				for j := i - 1; j >= 0; j-- {
					_ = Apply(Inverse(c.Commands[j]))
				}
				return fmt.Errorf("batch command %d: %w", i, err)
			}
		}

	default:
		panic(fmt.Sprintf("edit: unknown command %T", cmd))
	}
	return nil
}

func clipAt(track *timeline.Track, index int) (*timeline.Clip, error) {
	clip, ok := track.Items[index].(*timeline.Clip)
	if !ok {
		return nil, ErrNotAClip
	}
	return clip, nil
}

// sourceAdvance converts a timeline offset inside clip into source
// material consumed. At speeds other than 1 this goes through the
// documented-lossy seconds path.
func sourceAdvance(clip *timeline.Clip, offset timebase.RationalTime) timebase.RationalTime {
	if clip.Speed == 1.0 {
		return offset
	}
	return timebase.FromSeconds(offset.Seconds() * clip.Speed)
}
