package constellation

import (
	"fmt"

	"github.com/cwbudde/algo-modem/modem"
)

// Shape selects how a map is built. The set of shapes is closed: use
// ShapeSquare, ShapeSunflower or Custom.
type Shape interface {
	fmt.Stringer
	points(m int) (Map, error)
}

type squareShape struct{}

func (squareShape) String() string             { return "square" }
func (squareShape) points(m int) (Map, error) { return Square(m) }

type sunflowerShape struct{}

func (sunflowerShape) String() string             { return "sunflower" }
func (sunflowerShape) points(m int) (Map, error) { return Sunflower(m) }

type customShape struct {
	pts Map
}

func (customShape) String() string { return "custom" }

func (c customShape) points(m int) (Map, error) {
	if len(c.pts) < m {
		return nil, fmt.Errorf("constellation: custom map has %d points, need %d: %w", len(c.pts), m, modem.ErrConstellation)
	}
	seen := make(map[complex128]struct{}, len(c.pts))
	for i, p := range c.pts {
		if _, dup := seen[p]; dup {
			return nil, fmt.Errorf("constellation: custom point %d (%v) duplicated: %w", i, p, modem.ErrConstellation)
		}
		seen[p] = struct{}{}
	}
	return c.pts.Clone(), nil
}

var (
	// ShapeSquare builds square rings on the odd-integer lattice.
	ShapeSquare Shape = squareShape{}
	// ShapeSunflower builds a golden-angle spiral.
	ShapeSunflower Shape = sunflowerShape{}
)

// Custom wraps caller-provided points. The slice is copied.
func Custom(points Map) Shape {
	return customShape{pts: points.Clone()}
}

// Build produces the final m-point map for shape: generate, prune to m,
// normalize.
func Build(shape Shape, m int) (Map, error) {
	if m < 1 {
		return nil, fmt.Errorf("constellation: build %d points: %w", m, modem.ErrConfiguration)
	}
	if shape == nil {
		return nil, fmt.Errorf("constellation: no shape: %w", modem.ErrConstellation)
	}

	pts, err := shape.points(m)
	if err != nil {
		return nil, err
	}
	pts, err = Prune(pts, m)
	if err != nil {
		return nil, err
	}
	return Normalize(pts)
}

// ParseShape resolves a shape name as accepted on command lines.
func ParseShape(name string) (Shape, error) {
	switch name {
	case "square":
		return ShapeSquare, nil
	case "sunflower":
		return ShapeSunflower, nil
	default:
		return nil, fmt.Errorf("constellation: unknown shape %q: %w", name, modem.ErrConstellation)
	}
}
