package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchShape(t *testing.T) {
	g := NewGenerator(1)
	for run := 0; run < 20; run++ {
		offers := g.Search("Pune", "Goa", "2025-01-01")
		perType := map[string]int{}
		for _, o := range offers {
			perType[o.Type]++
			assert.Equal(t, "Pune", o.From)
			assert.Equal(t, "Goa", o.To)
			assert.Equal(t, "2025-01-01", o.Date)
			assert.GreaterOrEqual(t, o.Fare, 500)
			assert.LessOrEqual(t, o.Fare, 10000)
			assert.GreaterOrEqual(t, o.AvailableSeats, 5)
			assert.LessOrEqual(t, o.AvailableSeats, 50)
		}
		assert.Len(t, perType, 4)
		for kind, n := range perType {
			assert.GreaterOrEqual(t, n, 2, kind)
			assert.LessOrEqual(t, n, 4, kind)
		}
	}
}

func TestSearchSeeded(t *testing.T) {
	a := NewGenerator(7).Search("A", "B", "d")
	b := NewGenerator(7).Search("A", "B", "d")
	assert.Equal(t, a, b)
	assert.Equal(t, "airplane_0", a[0].ID)
	assert.Equal(t, "Airplane Option 1", a[0].Name)
}
