package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code, err := GenerateOTP(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestGenerateOTP_InvalidLength(t *testing.T) {
	_, err := GenerateOTP(0)
	assert.Error(t, err)
	_, err = GenerateOTP(20)
	assert.Error(t, err)
}

func TestDistanceKM(t *testing.T) {
	assert.InDelta(t, 0, DistanceKM(24.7136, 46.6753, 24.7136, 46.6753), 1e-9)
	// Riyadh to Jeddah is roughly 845 km
	assert.InDelta(t, 845, DistanceKM(24.7136, 46.6753, 21.4858, 39.1925), 15)

	minLat, maxLat, minLng, maxLng := BoundingBox(24.7, 46.7, 10)
	assert.Less(t, minLat, 24.7)
	assert.Greater(t, maxLat, 24.7)
	assert.Less(t, minLng, 46.7)
	assert.Greater(t, maxLng, 46.7)
}
