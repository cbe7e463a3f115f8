package timebase

import "testing"

func TestTimeRange_Contains(t *testing.T) {
	r := NewRange(New(5, 1), New(3, 1)) // [5s, 8s)

	tests := []struct {
		name string
		time RationalTime
		want bool
	}{
		{name: "start is included", time: New(5, 1), want: true},
		{name: "interior", time: New(13, 2), want: true},
		{name: "end is excluded", time: New(8, 1), want: false},
		{name: "before start", time: New(9, 2), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.time); got != tc.want {
				t.Fatalf("Contains(%v) = %v, want %v", tc.time, got, tc.want)
			}
		})
	}
}

func TestTimeRange_OverlapsAndIntersection(t *testing.T) {
	a := NewRange(New(0, 1), New(10, 1))
	b := NewRange(New(8, 1), New(4, 1))
	c := NewRange(New(10, 1), New(1, 1))

	if !a.Overlaps(b) {
		t.Fatal("a should overlap b")
	}
	if a.Overlaps(c) {
		t.Fatal("half-open ranges touching at 10s must not overlap")
	}

	got, ok := a.Intersection(b)
	if !ok {
		t.Fatal("expected intersection")
	}
	if want := NewRange(New(8, 1), New(2, 1)); got != want {
		t.Fatalf("intersection = %+v, want %+v", got, want)
	}

	if _, ok := a.Intersection(c); ok {
		t.Fatal("disjoint ranges should not intersect")
	}
}
