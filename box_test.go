package pathkit

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBoxUnionContainsBoth(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
	}{
		{"disjoint", NewBox(Pt(0, 0), Pt(1, 1)), NewBox(Pt(5, 5), Pt(7, 9))},
		{"overlapping", NewBox(Pt(0, 0), Pt(4, 4)), NewBox(Pt(2, 2), Pt(6, 6))},
		{"nested", NewBox(Pt(0, 0), Pt(10, 10)), NewBox(Pt(3, 3), Pt(4, 4))},
		{"negative", NewBox(Pt(-5, -5), Pt(-1, -1)), NewBox(Pt(1, 1), Pt(2, 2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.a.Union(tt.b)
			if !u.ContainsBox(tt.a) || !u.ContainsBox(tt.b) {
				t.Errorf("union %v of %v and %v does not contain both", u, tt.a, tt.b)
			}
			i := tt.a.Intersect(tt.b)
			if !i.IsEmpty() && (!tt.a.ContainsBox(i) || !tt.b.ContainsBox(i)) {
				t.Errorf("intersection %v not contained in both operands", i)
			}
		})
	}
}

func TestBoxSentinelIdentities(t *testing.T) {
	b := NewBox(Pt(1, 2), Pt(3, 4))

	if got := EmptyBox().Union(b); got != b {
		t.Errorf("EmptyBox().Union(b) = %v, want %v", got, b)
	}
	if got := b.Union(EmptyBox()); got != b {
		t.Errorf("b.Union(EmptyBox()) = %v, want %v", got, b)
	}
	if got := UniversalBox().Intersect(b); got != b {
		t.Errorf("UniversalBox().Intersect(b) = %v, want %v", got, b)
	}
	if got := b.Intersect(UniversalBox()); got != b {
		t.Errorf("b.Intersect(UniversalBox()) = %v, want %v", got, b)
	}
	if !EmptyBox().IsEmpty() {
		t.Error("EmptyBox() is not empty")
	}
	if UniversalBox().IsEmpty() {
		t.Error("UniversalBox() is empty")
	}
}

func TestBoxExpandPoint(t *testing.T) {
	b := EmptyBox()
	pts := []Point{Pt(3, 1), Pt(-2, 5), Pt(0, 0)}
	for _, p := range pts {
		b = b.ExpandPoint(p)
	}
	want := Box{MinX: -2, MinY: 0, MaxX: 3, MaxY: 5}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("expanded box mismatch (-want +got):\n%s", diff)
	}
	for _, p := range pts {
		if !b.Contains(p) {
			t.Errorf("expanded box does not contain %v", p)
		}
	}
}

func TestBoxJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		box  Box
	}{
		{"finite", NewBox(Pt(1.5, -2.25), Pt(3, 4))},
		{"empty sentinel", EmptyBox()},
		{"universal sentinel", UniversalBox()},
		{"half infinite", Box{MinX: 0, MinY: math.Inf(-1), MaxX: 10, MaxY: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.box)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var got Box
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal %s: %v", data, err)
			}
			if got != tt.box {
				t.Errorf("round trip %s: got %v, want %v", data, got, tt.box)
			}
		})
	}
}

func TestBoxUnmarshalRejectsGarbage(t *testing.T) {
	var b Box
	if err := json.Unmarshal([]byte(`{"minX":"sideways"}`), &b); err == nil {
		t.Error("expected error for non-numeric bound")
	}
}
