package anim

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jorg-4/proedit-core/internal/timebase"
)

// EasingKind selects how a keyframe interpolates toward its successor.
type EasingKind string

const (
	EaseHold   EasingKind = "hold"
	EaseLinear EasingKind = "linear"
	EaseBezier EasingKind = "bezier"
)

// Easing is the interpolation applied between a keyframe and the next
// one on the track. Curve is only meaningful for EaseBezier.
type Easing struct {
	Kind  EasingKind  `json:"kind"`
	Curve CubicBezier `json:"curve,omitempty"`
}

var (
	Hold   = Easing{Kind: EaseHold}
	Linear = Easing{Kind: EaseLinear}
)

// Bezier returns a Bézier easing over the given curve.
func Bezier(curve CubicBezier) Easing {
	return Easing{Kind: EaseBezier, Curve: curve}
}

// Keyframe is an immutable (time, value, easing-to-next) control point.
type Keyframe struct {
	Time   timebase.RationalTime `json:"time"`
	Value  float64               `json:"value"`
	Easing Easing                `json:"easing"`
}

// KeyframeTrack is a named, time-sorted set of keyframes. The list is
// always sorted and never holds two keyframes at the same time.
type KeyframeTrack struct {
	Name string
	keys []Keyframe
}

func NewKeyframeTrack(name string) *KeyframeTrack {
	return &KeyframeTrack{Name: name}
}

// Set inserts a keyframe, replacing any existing keyframe at exactly
// the same time.
func (k *KeyframeTrack) Set(t timebase.RationalTime, value float64, easing Easing) {
	i := sort.Search(len(k.keys), func(i int) bool {
		return k.keys[i].Time.Cmp(t) >= 0
	})
	kf := Keyframe{Time: t, Value: value, Easing: easing}
	if i < len(k.keys) && k.keys[i].Time.Cmp(t) == 0 {
		k.keys[i] = kf
		return
	}
	k.keys = append(k.keys, Keyframe{})
	copy(k.keys[i+1:], k.keys[i:])
	k.keys[i] = kf
}

// Remove deletes the keyframe at exactly t, reporting whether one was
// there.
func (k *KeyframeTrack) Remove(t timebase.RationalTime) bool {
	i := sort.Search(len(k.keys), func(i int) bool {
		return k.keys[i].Time.Cmp(t) >= 0
	})
	if i >= len(k.keys) || k.keys[i].Time.Cmp(t) != 0 {
		return false
	}
	k.keys = append(k.keys[:i], k.keys[i+1:]...)
	return true
}

func (k *KeyframeTrack) Len() int { return len(k.keys) }

// Keys returns the sorted keyframes. Callers must treat the slice as
// read-only.
func (k *KeyframeTrack) Keys() []Keyframe { return k.keys }

// IsAnimated reports whether the track has more than one keyframe.
func (k *KeyframeTrack) IsAnimated() bool { return len(k.keys) > 1 }

// Evaluate samples the track at t. Queries outside the keyframe range
// clamp to the boundary value; an empty track evaluates to 0.
func (k *KeyframeTrack) Evaluate(t timebase.RationalTime) float64 {
	switch len(k.keys) {
	case 0:
		return 0
	case 1:
		return k.keys[0].Value
	}
	if t.Cmp(k.keys[0].Time) <= 0 {
		return k.keys[0].Value
	}
	last := k.keys[len(k.keys)-1]
	if t.Cmp(last.Time) >= 0 {
		return last.Value
	}

	// Index of the last keyframe at or before t.
	i := sort.Search(len(k.keys), func(i int) bool {
		return k.keys[i].Time.Cmp(t) > 0
	}) - 1
	k0, k1 := k.keys[i], k.keys[i+1]

	if k0.Easing.Kind == EaseHold {
		return k0.Value
	}

	span := k1.Time.Sub(k0.Time).Seconds()
	progress := t.Sub(k0.Time).Seconds() / span
	if k0.Easing.Kind == EaseBezier {
		progress = k0.Easing.Curve.Evaluate(progress)
	}
	return k0.Value + (k1.Value-k0.Value)*progress
}

// Clone returns a deep copy of the track.
func (k *KeyframeTrack) Clone() *KeyframeTrack {
	out := &KeyframeTrack{Name: k.Name}
	if len(k.keys) > 0 {
		out.keys = append([]Keyframe(nil), k.keys...)
	}
	return out
}

type keyframeTrackJSON struct {
	Name string     `json:"name"`
	Keys []Keyframe `json:"keys"`
}

func (k *KeyframeTrack) MarshalJSON() ([]byte, error) {
	return json.Marshal(keyframeTrackJSON{Name: k.Name, Keys: k.keys})
}

func (k *KeyframeTrack) UnmarshalJSON(data []byte) error {
	var raw keyframeTrackJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, kf := range raw.Keys {
		switch kf.Easing.Kind {
		case EaseHold, EaseLinear, EaseBezier:
		default:
			return fmt.Errorf("anim: unknown easing kind %q", kf.Easing.Kind)
		}
	}
	// Hand-edited documents may not be sorted.
	sort.SliceStable(raw.Keys, func(i, j int) bool {
		return raw.Keys[i].Time.Less(raw.Keys[j].Time)
	})
	k.Name = raw.Name
	k.keys = raw.Keys
	return nil
}
