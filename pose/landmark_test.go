package pose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLandmarks_Center(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantX, wantY  int
	}{
		{"even frame", 640, 480, 320, 240},
		{"odd frame truncates", 641, 481, 320, 240},
		{"tiny frame", 1, 1, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := DetectionResult{
				Landmarks: []NormalizedLandmark{{ID: 0, X: 0.5, Y: 0.5, Visibility: 0.8}},
				Score:     0.9,
			}
			set := ExtractLandmarks(res, tc.width, tc.height)
			require.Len(t, set, 1)
			assert.Equal(t, tc.wantX, set[0].X)
			assert.Equal(t, tc.wantY, set[0].Y)
			assert.Equal(t, tc.width/2, set[0].X)
			assert.Equal(t, tc.height/2, set[0].Y)
			assert.Equal(t, 0.8, set[0].Visibility)
		})
	}
}

func TestExtractLandmarks_TruncatesTowardZero(t *testing.T) {
	res := DetectionResult{Landmarks: []NormalizedLandmark{
		{ID: 0, X: 0.999, Y: 0.001},
		{ID: 1, X: -0.25, Y: 1.25},
	}}
	set := ExtractLandmarks(res, 100, 100)
	require.Len(t, set, 2)
	assert.Equal(t, Landmark{ID: 0, X: 99, Y: 0}, set[0])
	// Off-frame landmarks are kept; the model may place occluded joints
	// outside the image.
	assert.Equal(t, Landmark{ID: 1, X: -25, Y: 125}, set[1])
}

func TestExtractLandmarks_NoPose(t *testing.T) {
	set := ExtractLandmarks(DetectionResult{}, 640, 480)
	assert.True(t, set.Empty())
	assert.NotNil(t, set)
}

func TestLandmarkSet_Lookup(t *testing.T) {
	set := LandmarkSet{{ID: 0, X: 1}, {ID: 1, X: 2}, {ID: 5, X: 3}}

	lm, ok := set.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 2, lm.X)

	// sparse sets fall back to a scan
	lm, ok = set.Lookup(5)
	require.True(t, ok)
	assert.Equal(t, 3, lm.X)

	_, ok = set.Lookup(2)
	assert.False(t, ok)
	_, ok = set.Lookup(-3)
	assert.False(t, ok)
	_, ok = LandmarkSet(nil).Lookup(0)
	assert.False(t, ok)
}

func TestConnections_InRange(t *testing.T) {
	for _, c := range Connections {
		assert.True(t, c[0] >= 0 && c[0] < NumLandmarks, "%v", c)
		assert.True(t, c[1] >= 0 && c[1] < NumLandmarks, "%v", c)
	}
}
