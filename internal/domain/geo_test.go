package domain_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geotrails/travelmap/internal/domain"
)

func TestValidateLocation(t *testing.T) {
	tests := []struct {
		name    string
		point   orb.Point
		wantErr string
	}{
		{name: "beijing", point: orb.Point{116.4, 39.9}},
		{name: "corners", point: orb.Point{-180, 90}},
		{name: "lat too high", point: orb.Point{0, 90.5}, wantErr: "lat must be between -90 and 90"},
		{name: "lon too low", point: orb.Point{-181, 0}, wantErr: "lon must be between -180 and 180"},
		{name: "nan", point: orb.Point{math.NaN(), 10}, wantErr: "coordinates must be numbers"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := domain.ValidateLocation("", tc.point)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewEnvelope_OK(t *testing.T) {
	b, err := domain.NewEnvelope(116, 39, 117, 40)

	require.NoError(t, err)
	assert.True(t, b.Contains(orb.Point{116.4, 39.9}))
	assert.False(t, b.Contains(orb.Point{121.5, 31.2}))
}

func TestNewEnvelope_Degenerate(t *testing.T) {
	b, err := domain.NewEnvelope(116.4, 39.9, 116.4, 39.9)

	require.NoError(t, err)
	assert.Equal(t, orb.Point{116.4, 39.9}, b.Min)
	assert.Equal(t, b.Min, b.Max)
}

func TestNewEnvelope_Inverted(t *testing.T) {
	_, err := domain.NewEnvelope(117, 39, 116, 40)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.NewEnvelope(116, 40, 117, 39)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewEnvelope_OutOfRange(t *testing.T) {
	_, err := domain.NewEnvelope(-200, 0, 10, 10)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "minlon")
}
