package timeline

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jorg-4/proedit-core/internal/timebase"
)

// Kind distinguishes video lanes from audio lanes.
type Kind string

const (
	Video Kind = "video"
	Audio Kind = "audio"
)

// Track is one ordered audio or video lane. Items are mutated only
// through InsertItem/RemoveItem (and the edit package's trim commands),
// which keeps every positional invariant localized to those paths.
type Track struct {
	ID     uuid.UUID
	Kind   Kind
	Name   string
	Muted  bool
	Locked bool
	Items  []Item
}

func NewTrack(kind Kind, name string) *Track {
	return &Track{ID: uuid.New(), Kind: kind, Name: name}
}

// Duration is the sum of all item durations.
func (t *Track) Duration() timebase.RationalTime {
	var total timebase.RationalTime
	for _, it := range t.Items {
		total = total.Add(it.Duration())
	}
	return total
}

// ItemAt returns the index of the item containing time at, and the
// offset of at within that item. It reports false when at is negative
// or beyond the end of the track. Items are scanned forward because
// positions are implicit.
func (t *Track) ItemAt(at timebase.RationalTime) (int, timebase.RationalTime, bool) {
	if at.Sign() < 0 {
		return 0, timebase.RationalTime{}, false
	}
	var pos timebase.RationalTime
	for i, it := range t.Items {
		end := pos.Add(it.Duration())
		if at.Cmp(pos) >= 0 && at.Cmp(end) < 0 {
			return i, at.Sub(pos), true
		}
		pos = end
	}
	return 0, timebase.RationalTime{}, false
}

// InsertItem splices item in at index. An out-of-range index is a
// caller bug and panics.
func (t *Track) InsertItem(index int, item Item) {
	if index < 0 || index > len(t.Items) {
		panic(fmt.Sprintf("timeline: insert index %d out of range [0,%d]", index, len(t.Items)))
	}
	t.Items = append(t.Items, nil)
	copy(t.Items[index+1:], t.Items[index:])
	t.Items[index] = item
}

// RemoveItem splices out and returns the item at index. An
// out-of-range index is a caller bug and panics.
func (t *Track) RemoveItem(index int) Item {
	if index < 0 || index >= len(t.Items) {
		panic(fmt.Sprintf("timeline: remove index %d out of range [0,%d)", index, len(t.Items)))
	}
	item := t.Items[index]
	t.Items = append(t.Items[:index], t.Items[index+1:]...)
	return item
}

// FindClip scans for the clip with the given identity. This is the
// only identity-based lookup; tracks are UI-scale, so a linear scan is
// fine.
func (t *Track) FindClip(id uuid.UUID) (int, *Clip, bool) {
	for i, it := range t.Items {
		if c, ok := it.(*Clip); ok && c.ID == id {
			return i, c, true
		}
	}
	return 0, nil, false
}

// ConsolidateGaps merges every run of adjacent gaps into a single gap
// and drops trailing zero-duration gaps.
func (t *Track) ConsolidateGaps() {
	out := t.Items[:0]
	for _, it := range t.Items {
		g, ok := it.(*Gap)
		if !ok {
			out = append(out, it)
			continue
		}
		if len(out) > 0 {
			if prev, ok := out[len(out)-1].(*Gap); ok {
				prev.Length = prev.Length.Add(g.Length)
				continue
			}
		}
		out = append(out, g)
	}
	for len(out) > 0 {
		g, ok := out[len(out)-1].(*Gap)
		if !ok || !g.Length.IsZero() {
			break
		}
		out = out[:len(out)-1]
	}
	t.Items = out
}

// Clone returns a deep copy of the track for read-only snapshots.
func (t *Track) Clone() *Track {
	out := &Track{ID: t.ID, Kind: t.Kind, Name: t.Name, Muted: t.Muted, Locked: t.Locked}
	if len(t.Items) > 0 {
		out.Items = make([]Item, len(t.Items))
		for i, it := range t.Items {
			out.Items[i] = it.cloneItem()
		}
	}
	return out
}

type itemEnvelope struct {
	Type       string      `json:"type"`
	Clip       *Clip       `json:"clip,omitempty"`
	Gap        *Gap        `json:"gap,omitempty"`
	Transition *Transition `json:"transition,omitempty"`
}

type trackJSON struct {
	ID     uuid.UUID      `json:"id"`
	Kind   Kind           `json:"kind"`
	Name   string         `json:"name"`
	Muted  bool           `json:"muted,omitempty"`
	Locked bool           `json:"locked,omitempty"`
	Items  []itemEnvelope `json:"items"`
}

func (t *Track) MarshalJSON() ([]byte, error) {
	raw := trackJSON{
		ID:     t.ID,
		Kind:   t.Kind,
		Name:   t.Name,
		Muted:  t.Muted,
		Locked: t.Locked,
		Items:  make([]itemEnvelope, len(t.Items)),
	}
	for i, it := range t.Items {
		switch v := it.(type) {
		case *Clip:
			raw.Items[i] = itemEnvelope{Type: "clip", Clip: v}
		case *Gap:
			raw.Items[i] = itemEnvelope{Type: "gap", Gap: v}
		case *Transition:
			raw.Items[i] = itemEnvelope{Type: "transition", Transition: v}
		default:
			return nil, fmt.Errorf("timeline: unencodable item %T", it)
		}
	}
	return json.Marshal(raw)
}

func (t *Track) UnmarshalJSON(data []byte) error {
	var raw trackJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	items := make([]Item, len(raw.Items))
	for i, env := range raw.Items {
		switch {
		case env.Type == "clip" && env.Clip != nil:
			items[i] = env.Clip
		case env.Type == "gap" && env.Gap != nil:
			items[i] = env.Gap
		case env.Type == "transition" && env.Transition != nil:
			items[i] = env.Transition
		default:
			return fmt.Errorf("timeline: unknown or incomplete item type %q", env.Type)
		}
	}
	t.ID = raw.ID
	t.Kind = raw.Kind
	t.Name = raw.Name
	t.Muted = raw.Muted
	t.Locked = raw.Locked
	t.Items = items
	return nil
}
