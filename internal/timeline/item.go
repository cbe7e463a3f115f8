// Package timeline models the track/clip sequencing layer: ordered
// lanes of clips, gaps, and transitions. An item's start position is
// never stored; it is always the sum of the durations of the items
// before it, so positions cannot drift out of sync with durations.
package timeline

import "github.com/jorg-4/proedit-core/internal/timebase"

// Item is one element of a track's ordered sequence: a clip, a gap, or
// a transition. The set of implementations is closed.
type Item interface {
	Duration() timebase.RationalTime
	cloneItem() Item
}

// Gap is empty space on a track.
type Gap struct {
	Length timebase.RationalTime `json:"length"`
}

func NewGap(length timebase.RationalTime) *Gap {
	return &Gap{Length: length}
}

func (g *Gap) Duration() timebase.RationalTime { return g.Length }

func (g *Gap) cloneItem() Item {
	out := *g
	return &out
}

// Transition is a named cross-fade between neighboring clips.
type Transition struct {
	Name   string                `json:"name"`
	Length timebase.RationalTime `json:"length"`
}

func NewTransition(name string, length timebase.RationalTime) *Transition {
	return &Transition{Name: name, Length: length}
}

func (t *Transition) Duration() timebase.RationalTime { return t.Length }

func (t *Transition) cloneItem() Item {
	out := *t
	return &out
}
