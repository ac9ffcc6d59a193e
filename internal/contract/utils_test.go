package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		quality float64
		want    string
	}{
		{0.95, HighValue},
		{0.7, HighValue},
		{0.69, MediumValue},
		{0.4, MediumValue},
		{0.39, LowValue},
		{0.0, LowValue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetPlainLabel(tt.quality), "quality %v", tt.quality)
	}
}

func TestGetColorLabel(t *testing.T) {
	// Colored labels always contain the plain text regardless of terminal state.
	assert.Contains(t, GetColorLabel(0.9), HighValue)
	assert.Contains(t, GetColorLabel(0.5), MediumValue)
	assert.Contains(t, GetColorLabel(0.1), LowValue)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "92.0%", FormatPercent(0.92))
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "100.0%", FormatPercent(1))
	assert.Equal(t, "12.5%", FormatPercent(0.125))
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short", TruncatePath("short", 20))
	long := strings.Repeat("a", 30)
	got := TruncatePath(long, 10)
	assert.Len(t, got, 10)
	assert.True(t, strings.HasPrefix(got, "..."))

	// Width too small to truncate sensibly leaves the path unchanged.
	assert.Equal(t, long, TruncatePath(long, 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "YES", "true", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestDefaultPaths(t *testing.T) {
	assert.Contains(t, GetStoreDBFilePath(), ".notable_ml.db")
	assert.Contains(t, GetDefaultModelsDir(), "models")
}
