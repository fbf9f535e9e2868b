package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	// Pittsburgh to Philadelphia is roughly 257 miles great-circle.
	miles := Haversine(40.4406, -79.9959, 39.9526, -75.1652)
	assert.InDelta(t, 257, miles, 5)
}

func TestHaversineZeroDistance(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(40.0, -80.0, 40.0, -80.0))
}

func TestHaversineSymmetry(t *testing.T) {
	a := Haversine(40.4406, -79.9959, 41.2033, -77.1945)
	b := Haversine(41.2033, -77.1945, 40.4406, -79.9959)
	assert.InDelta(t, a, b, 1e-9)
}
