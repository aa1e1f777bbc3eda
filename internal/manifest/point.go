package manifest

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point is an integer block coordinate on the X/Z plane, encoded as [x, z].
type Point struct {
	X int
	Z int
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Z})
}

// UnmarshalJSON accepts fractional coordinates, rounding to the nearest block.
func (p *Point) UnmarshalJSON(data []byte) error {
	var coords []float64
	if err := json.Unmarshal(data, &coords); err != nil {
		return fmt.Errorf("decode point: %w", err)
	}
	if len(coords) != 2 {
		return fmt.Errorf("decode point: got %d components, want 2", len(coords))
	}
	*p = Point{X: int(math.Round(coords[0])), Z: int(math.Round(coords[1]))}
	return nil
}
