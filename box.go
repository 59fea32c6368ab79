package pathkit

import (
	"encoding/json"
	"fmt"
	"math"
)

// Box represents an axis-aligned bounding box.
// A box with negative width or height covers nothing; the two
// canonical values below act as algebraic identities:
//
//	EmptyBox()     is the identity for Union
//	UniversalBox() is the identity for Intersect
//
// Box is a value type, so the canonical values cannot be mutated
// through the copies the constructors return.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// EmptyBox returns the canonical empty box (min=+Inf, max=-Inf).
// It is the identity element for Union.
func EmptyBox() Box {
	return Box{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// UniversalBox returns the canonical all-covering box
// (min=-Inf, max=+Inf). It is the identity element for Intersect.
func UniversalBox() Box {
	return Box{
		MinX: math.Inf(-1), MinY: math.Inf(-1),
		MaxX: math.Inf(1), MaxY: math.Inf(1),
	}
}

// NewBox creates a box from two corner points.
// The coordinates are normalized so Min <= Max.
func NewBox(p, q Point) Box {
	return Box{
		MinX: math.Min(p.X, q.X), MinY: math.Min(p.Y, q.Y),
		MaxX: math.Max(p.X, q.X), MaxY: math.Max(p.Y, q.Y),
	}
}

// BoxAt returns the degenerate box covering exactly one point.
func BoxAt(p Point) Box {
	return Box{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
}

// Width returns the width of the box. Negative means empty.
func (b Box) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the height of the box. Negative means empty.
func (b Box) Height() float64 {
	return b.MaxY - b.MinY
}

// IsEmpty reports whether the box covers no area.
func (b Box) IsEmpty() bool {
	return b.MaxX < b.MinX || b.MaxY < b.MinY
}

// Min returns the minimum corner.
func (b Box) Min() Point {
	return Point{X: b.MinX, Y: b.MinY}
}

// Max returns the maximum corner.
func (b Box) Max() Point {
	return Point{X: b.MaxX, Y: b.MaxY}
}

// Center returns the center of the box.
func (b Box) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Union returns the smallest box containing both b and other.
func (b Box) Union(other Box) Box {
	return Box{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}

// Intersect returns the largest box contained in both b and other.
// The result may be empty.
func (b Box) Intersect(other Box) Box {
	return Box{
		MinX: math.Max(b.MinX, other.MinX),
		MinY: math.Max(b.MinY, other.MinY),
		MaxX: math.Min(b.MaxX, other.MaxX),
		MaxY: math.Min(b.MaxY, other.MaxY),
	}
}

// ExpandPoint returns the box grown to include the point.
func (b Box) ExpandPoint(p Point) Box {
	return Box{
		MinX: math.Min(b.MinX, p.X),
		MinY: math.Min(b.MinY, p.Y),
		MaxX: math.Max(b.MaxX, p.X),
		MaxY: math.Max(b.MaxY, p.Y),
	}
}

// Contains reports whether the point lies inside or on the box.
func (b Box) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// ContainsBox reports whether other lies entirely inside b.
// An empty other is contained in every box.
func (b Box) ContainsBox(other Box) bool {
	if other.IsEmpty() {
		return true
	}
	return other.MinX >= b.MinX && other.MaxX <= b.MaxX &&
		other.MinY >= b.MinY && other.MaxY <= b.MaxY
}

// Overlaps reports whether b and other share any point.
func (b Box) Overlaps(other Box) bool {
	return !b.Intersect(other).IsEmpty()
}

// boxJSON is the wire form of a Box. Each bound is either a finite
// number or one of the sentinel strings "inf" / "-inf".
type boxJSON struct {
	MinX json.RawMessage `json:"minX"`
	MinY json.RawMessage `json:"minY"`
	MaxX json.RawMessage `json:"maxX"`
	MaxY json.RawMessage `json:"maxY"`
}

// MarshalJSON implements json.Marshaler. Infinite bounds are encoded
// as the strings "inf" and "-inf" so the canonical sentinel boxes
// round-trip exactly.
func (b Box) MarshalJSON() ([]byte, error) {
	enc := func(v float64) json.RawMessage {
		switch {
		case math.IsInf(v, 1):
			return json.RawMessage(`"inf"`)
		case math.IsInf(v, -1):
			return json.RawMessage(`"-inf"`)
		default:
			raw, _ := json.Marshal(v)
			return raw
		}
	}
	return json.Marshal(boxJSON{
		MinX: enc(b.MinX), MinY: enc(b.MinY),
		MaxX: enc(b.MaxX), MaxY: enc(b.MaxY),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Box) UnmarshalJSON(data []byte) error {
	var raw boxJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	dec := func(raw json.RawMessage, dst *float64) error {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			switch s {
			case "inf":
				*dst = math.Inf(1)
				return nil
			case "-inf":
				*dst = math.Inf(-1)
				return nil
			default:
				return fmt.Errorf("pathkit: invalid box bound %q", s)
			}
		}
		return json.Unmarshal(raw, dst)
	}
	if err := dec(raw.MinX, &b.MinX); err != nil {
		return err
	}
	if err := dec(raw.MinY, &b.MinY); err != nil {
		return err
	}
	if err := dec(raw.MaxX, &b.MaxX); err != nil {
		return err
	}
	return dec(raw.MaxY, &b.MaxY)
}

// String returns a compact textual form of the box.
func (b Box) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g]", b.MinX, b.MaxX, b.MinY, b.MaxY)
}
