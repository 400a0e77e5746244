package hex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxialRoundTrip(t *testing.T) {
	t.Parallel()

	for p := -4; p <= 4; p++ {
		for q := -4; q <= 4; q++ {
			a := Axial{P: p, Q: q}
			assert.Equal(t, a, a.Cubic().Axial(), "axial %v", a)
			assert.Zero(t, a.Cubic().Sum(), "axial %v", a)
		}
	}

	for _, c := range Disk(Cubic{}, 4) {
		assert.Equal(t, c, c.Axial().Cubic(), "cubic %v", c)
	}
}

func TestArithmeticClosure(t *testing.T) {
	t.Parallel()

	cells := Disk(Cubic{R: 1, S: -3, T: 2}, 3)
	for _, a := range cells {
		for _, b := range cells {
			assert.Zero(t, a.Add(b).Sum())
			assert.Zero(t, a.Sub(b).Sum())
		}
	}
}

func TestAddSub(t *testing.T) {
	t.Parallel()

	a := Cubic{R: 2, S: -5, T: 3}
	b := Cubic{R: -1, S: 1, T: 0}
	assert.Equal(t, Cubic{R: 1, S: -4, T: 3}, a.Add(b))
	assert.Equal(t, Cubic{R: 3, S: -6, T: 3}, a.Sub(b))
	assert.Equal(t, a, a.Add(b).Sub(b))
}

func TestMapZipFold(t *testing.T) {
	t.Parallel()

	c := Cubic{R: 1, S: 2, T: 3}
	assert.Equal(t, Cubic{R: 2, S: 4, T: 6}, c.Map(func(v int) int { return v * 2 }))
	assert.Equal(t, Cubic{R: 1, S: 4, T: 9}, c.Zip(c, func(a, b int) int { return a * b }))

	var order []int
	c.Fold(func(a, b int) int {
		order = append(order, a, b)
		return a + b
	})
	assert.Equal(t, []int{1, 2, 3, 3}, order, "fold is f(t, f(r, s))")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		c := Cubic{R: 3, S: -1, T: -2}
		got, err := c.Validate()
		require.NoError(t, err)
		assert.Equal(t, c, got)
	})

	t.Run("invalid", func(t *testing.T) {
		c := Cubic{R: 1, S: 1, T: 1}
		_, err := c.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCoordinate))

		var invalid *InvalidCoordinateError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, c, invalid.Coord)
		assert.Contains(t, err.Error(), "(1, 1, 1)")
	})
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(1, -2, 1)", Cubic{R: 1, S: -2, T: 1}.String())
	assert.Equal(t, "(4, -7)", Axial{P: 4, Q: -7}.String())
}
