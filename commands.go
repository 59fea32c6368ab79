package pathkit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Command is one replayable construction record: an SVG-style
// operation letter and its arguments. Arc rotations travel in
// degrees, as written in SVG path text; flags are 0 or 1.
type Command struct {
	Op   string
	Args []float64
}

// commandArity maps each operation to its argument count.
var commandArity = map[string]int{
	"M": 2, // x y
	"L": 2, // x y
	"Q": 4, // cx cy x y
	"C": 6, // c1x c1y c2x c2y x y
	"A": 7, // rx ry rotationDeg largeArc sweep x y
	"Z": 0,
}

// Commands exports the shape as replayable construction records,
// regenerated from the stored geometry. Dropped degenerate segments
// do not appear; arcs are emitted in endpoint form.
func (s *Shape) Commands() []Command {
	var cmds []Command
	for _, sp := range s.subpaths {
		if len(sp.vertices) == 0 && len(sp.segments) == 0 {
			continue
		}
		start := sp.StartPoint()
		cmds = append(cmds, Command{Op: "M", Args: []float64{start.X, start.Y}})
		for _, seg := range sp.Segments() {
			cmds = append(cmds, segmentCommand(seg))
		}
		if sp.Closed() {
			cmds = append(cmds, Command{Op: "Z"})
		}
	}
	return cmds
}

func segmentCommand(seg Segment) Command {
	switch v := seg.(type) {
	case Line:
		return Command{Op: "L", Args: []float64{v.P1.X, v.P1.Y}}
	case Quad:
		return Command{Op: "Q", Args: []float64{v.P1.X, v.P1.Y, v.P2.X, v.P2.Y}}
	case Cubic:
		return Command{Op: "C", Args: []float64{
			v.P1.X, v.P1.Y, v.P2.X, v.P2.Y, v.P3.X, v.P3.Y}}
	case Arc:
		return arcCommand(v.ellipse())
	case EllipticalArc:
		return arcCommand(v)
	default:
		end := seg.End()
		return Command{Op: "L", Args: []float64{end.X, end.Y}}
	}
}

// arcCommand converts a center-form arc to the SVG endpoint form.
func arcCommand(e EllipticalArc) Command {
	largeArc := 0.0
	if math.Abs(e.SweepAngle) > math.Pi {
		largeArc = 1
	}
	sweep := 0.0
	if e.SweepAngle > 0 {
		sweep = 1
	}
	end := e.End()
	return Command{Op: "A", Args: []float64{
		e.Rx, e.Ry, e.Rotation * 180 / math.Pi, largeArc, sweep, end.X, end.Y}}
}

// Replay applies construction records, such as those produced by a
// path-syntax parser or by Commands, against the construction API.
// A malformed record (unknown operation or wrong argument count)
// fails fast through the builder error.
func (s *Shape) Replay(cmds []Command) *Shape {
	for _, c := range cmds {
		want, ok := commandArity[c.Op]
		if !ok {
			s.fail(fmt.Errorf("pathkit: replay: unknown operation %q", c.Op))
			return s
		}
		if len(c.Args) != want {
			s.fail(fmt.Errorf("pathkit: replay: %s takes %d arguments, got %d",
				c.Op, want, len(c.Args)))
			return s
		}
		a := c.Args
		switch c.Op {
		case "M":
			s.MoveTo(a[0], a[1])
		case "L":
			s.LineTo(a[0], a[1])
		case "Q":
			s.QuadTo(a[0], a[1], a[2], a[3])
		case "C":
			s.CubicTo(a[0], a[1], a[2], a[3], a[4], a[5])
		case "A":
			s.ArcTo(a[0], a[1], a[2]*math.Pi/180, a[3] != 0, a[4] != 0, a[5], a[6])
		case "Z":
			s.Close()
		}
		if s.err != nil {
			return s
		}
	}
	return s
}

// String returns the shape as SVG-style path text, reconstructible
// with ParseCommands and Replay.
func (s *Shape) String() string {
	var b strings.Builder
	for i, c := range s.Commands() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.Op)
		for j, v := range c.Args {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return b.String()
}

// ParseCommands parses SVG-style path text in the dialect String
// emits: absolute single-letter operations with space-separated
// numeric arguments.
func ParseCommands(text string) ([]Command, error) {
	var cmds []Command
	fields := strings.Fields(text)
	i := 0
	for i < len(fields) {
		f := fields[i]
		op := f[:1]
		want, ok := commandArity[op]
		if !ok {
			return nil, fmt.Errorf("pathkit: parse: unknown operation %q", op)
		}
		// The first argument may be glued to the letter, as in "M0".
		rest := f[1:]
		i++
		args := make([]float64, 0, want)
		if rest != "" {
			v, err := strconv.ParseFloat(rest, 64)
			if err != nil {
				return nil, fmt.Errorf("pathkit: parse: bad number %q: %w", rest, err)
			}
			args = append(args, v)
		}
		for len(args) < want {
			if i >= len(fields) {
				return nil, fmt.Errorf("pathkit: parse: %s takes %d arguments, got %d",
					op, want, len(args))
			}
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("pathkit: parse: bad number %q: %w", fields[i], err)
			}
			args = append(args, v)
			i++
		}
		cmds = append(cmds, Command{Op: op, Args: args})
	}
	return cmds, nil
}
