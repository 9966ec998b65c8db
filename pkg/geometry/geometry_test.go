package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolygonArea(t *testing.T) {
	t.Run("unit square", func(t *testing.T) {
		square := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
		area := PolygonArea(square)
		require.NotNil(t, area)
		assert.InDelta(t, 1.0, *area, 1e-9)
	})

	t.Run("triangle", func(t *testing.T) {
		triangle := []Point{{0, 0}, {4, 0}, {0, 3}}
		area := PolygonArea(triangle)
		require.NotNil(t, area)
		assert.InDelta(t, 6.0, *area, 1e-9)
	})

	t.Run("vertex order does not matter", func(t *testing.T) {
		clockwise := []Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
		area := PolygonArea(clockwise)
		require.NotNil(t, area)
		assert.InDelta(t, 1.0, *area, 1e-9)
	})

	t.Run("degenerate polygons have no area", func(t *testing.T) {
		assert.Nil(t, PolygonArea(nil))
		assert.Nil(t, PolygonArea([]Point{{1, 2}}))
		assert.Nil(t, PolygonArea([]Point{{1, 2}, {3, 4}}))
	})
}

func TestPolygonFromFlat(t *testing.T) {
	points := PolygonFromFlat([]float64{0, 0, 120, 0, 120, 80, 0, 80})
	require.Len(t, points, 4)
	assert.Equal(t, Point{120, 80}, points[2])

	t.Run("trailing unpaired value dropped", func(t *testing.T) {
		points := PolygonFromFlat([]float64{1, 2, 3})
		require.Len(t, points, 1)
		assert.Equal(t, Point{1, 2}, points[0])
	})
}

func TestPointInPolygon(t *testing.T) {
	pitchHalf := []Point{{0, 0}, {60, 0}, {60, 80}, {0, 80}}

	assert.True(t, PointInPolygon(Point{30, 40}, pitchHalf))
	assert.False(t, PointInPolygon(Point{61, 40}, pitchHalf))
	assert.False(t, PointInPolygon(Point{-1, -1}, pitchHalf))

	t.Run("degenerate polygon contains nothing", func(t *testing.T) {
		assert.False(t, PointInPolygon(Point{0, 0}, []Point{{0, 0}, {1, 1}}))
	})

	t.Run("concave polygon", func(t *testing.T) {
		concave := []Point{{0, 0}, {10, 0}, {10, 10}, {5, 5}, {0, 10}}
		assert.True(t, PointInPolygon(Point{2, 2}, concave))
		assert.False(t, PointInPolygon(Point{5, 8}, concave))
	})
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Point{0, 0}, Point{3, 4}), 1e-9)
	assert.Zero(t, Distance(Point{7, 7}, Point{7, 7}))
}
