package hex

import "math"

// Move returns the neighbour of c in direction d. Like Vector, it panics
// unless d is Valid.
func Move(c Cubic, d Direction) Cubic {
	return c.Add(d.Vector())
}

// Neighbourhood returns the six neighbours of c in Neighbours order.
// None of them are bounds-checked.
func Neighbourhood(c Cubic) [6]Cubic {
	var result [6]Cubic
	for i, v := range Neighbours {
		result[i] = v.Add(c)
	}
	return result
}

// Manhattan returns |r|+|s|+|t|. It is even for every valid coordinate.
func Manhattan(c Cubic) int {
	return c.Map(abs[int]).Sum()
}

// ManhattanDistance returns Manhattan(a-b).
func ManhattanDistance(a, b Cubic) int {
	return Manhattan(a.Sub(b))
}

// Distance returns the number of hex steps between a and b.
func Distance(a, b Cubic) int {
	return ManhattanDistance(a, b) / 2
}

// Round returns the valid cubic coordinate nearest to c. Each component is
// rounded on its own; the one with the largest rounding error is then
// rebuilt from the other two. Ties fall through to rebuilding t.
func Round(c FracCubic) Cubic {
	r := math.RoundToEven(c.R)
	s := math.RoundToEven(c.S)
	t := math.RoundToEven(c.T)

	dr := abs(r - c.R)
	ds := abs(s - c.S)
	dt := abs(t - c.T)

	switch {
	case dr > ds && dr > dt:
		r = -s - t
	case ds > dt:
		s = -r - t
	default:
		t = -r - s
	}
	return Cubic{R: int(r), S: int(s), T: int(t)}
}

// Lerp interpolates componentwise from a (t=0) to b (t=1).
func Lerp(a, b Cubic, t float64) FracCubic {
	lerp := func(x, y int) float64 {
		return float64(x) + float64(y-x)*t
	}
	return FracCubic{R: lerp(a.R, b.R), S: lerp(a.S, b.S), T: lerp(a.T, b.T)}
}

// Line returns the cells on the straight path from start to end, both
// included. The result has Distance(start, end)+1 elements.
func Line(start, end Cubic) []Cubic {
	d := Distance(start, end)
	if d == 0 {
		return []Cubic{start}
	}

	line := make([]Cubic, d+1)
	for i := range line {
		line[i] = Round(Lerp(start, end, float64(i)/float64(d)))
	}
	return line
}

// Ring returns the 6k cells at exactly distance k from c, starting at
// c + k*BackLeft and walking the sides in direction order. Ring(c, 0) is [c].
func Ring(c Cubic, k int) []Cubic {
	if k <= 0 {
		return []Cubic{c}
	}
	res := make([]Cubic, 0, 6*k)
	start := BackLeft.Vector()
	cur := c.Add(Cubic{R: start.R * k, S: start.S * k, T: start.T * k})
	for _, d := range Directions {
		for step := 0; step < k; step++ {
			res = append(res, cur)
			cur = Move(cur, d)
		}
	}
	return res
}

// Disk returns every cell within distance radius of c, ordered by
// increasing r offset then increasing s offset.
func Disk(c Cubic, radius int) []Cubic {
	if radius < 0 {
		return nil
	}
	res := make([]Cubic, 0, 1+3*radius*(radius+1))
	for dr := -radius; dr <= radius; dr++ {
		for ds := max(-radius, -dr-radius); ds <= min(radius, -dr+radius); ds++ {
			res = append(res, c.Add(Cubic{R: dr, S: ds, T: -dr - ds}))
		}
	}
	return res
}
