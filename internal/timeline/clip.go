package timeline

import (
	"github.com/google/uuid"

	"github.com/jorg-4/proedit-core/internal/anim"
	"github.com/jorg-4/proedit-core/internal/timebase"
)

// ClipRef points at the external media a clip draws from. Duration is
// the full length of the source, as reported by the media subsystem.
type ClipRef struct {
	Path     string                `json:"path"`
	Duration timebase.RationalTime `json:"duration"`
}

// Clip is a window into source media placed on the timeline. Length is
// the clip's timeline duration, independent of the source duration;
// SourceIn is where the window starts inside the source.
type Clip struct {
	ID       uuid.UUID             `json:"id"`
	Name     string                `json:"name"`
	Ref      ClipRef               `json:"ref"`
	SourceIn timebase.RationalTime `json:"source_in"`
	Length   timebase.RationalTime `json:"length"`
	Enabled  bool                  `json:"enabled"`
	Speed    float64               `json:"speed"`
	// Params holds per-clip animated parameters (opacity, volume, ...),
	// sampled by renderers at the playhead time.
	Params []*anim.KeyframeTrack `json:"params,omitempty"`
}

// NewClip places the whole of ref on the timeline at normal speed.
func NewClip(name string, ref ClipRef) *Clip {
	return &Clip{
		ID:       uuid.New(),
		Name:     name,
		Ref:      ref,
		SourceIn: timebase.New(0, 1),
		Length:   ref.Duration,
		Enabled:  true,
		Speed:    1.0,
	}
}

func (c *Clip) Duration() timebase.RationalTime { return c.Length }

// SourceOut returns the exclusive end of the source window. At speeds
// other than 1 the window is scaled through the lossy seconds path.
func (c *Clip) SourceOut() timebase.RationalTime {
	return c.SourceIn.Add(c.sourceConsumed())
}

func (c *Clip) sourceConsumed() timebase.RationalTime {
	if c.Speed == 1.0 {
		return c.Length
	}
	return timebase.FromSeconds(c.Length.Seconds() * c.Speed)
}

// Param returns the named keyframe track, or nil if the clip does not
// animate that parameter.
func (c *Clip) Param(name string) *anim.KeyframeTrack {
	for _, p := range c.Params {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Animate returns the named keyframe track, creating it if needed.
func (c *Clip) Animate(name string) *anim.KeyframeTrack {
	if p := c.Param(name); p != nil {
		return p
	}
	p := anim.NewKeyframeTrack(name)
	c.Params = append(c.Params, p)
	return p
}

// Clone returns a deep copy of the clip, keeping its identity.
func (c *Clip) Clone() *Clip {
	out := *c
	if len(c.Params) > 0 {
		out.Params = make([]*anim.KeyframeTrack, len(c.Params))
		for i, p := range c.Params {
			out.Params[i] = p.Clone()
		}
	}
	return &out
}

func (c *Clip) cloneItem() Item { return c.Clone() }
