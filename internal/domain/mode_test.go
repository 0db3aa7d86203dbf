package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"A", ModeConservative},
		{"a", ModeConservative},
		{" conservative ", ModeConservative},
		{"B", ModeEnhanced},
		{"enhanced", ModeEnhanced},
		{"C", ModeSuper},
		{"super", ModeSuper},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}

	_, err := ParseMode("D")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transfer mode")
}

func TestModeName(t *testing.T) {
	assert.Equal(t, "Conservative Transfer", ModeConservative.Name())
	assert.Equal(t, "Enhanced Transfer", ModeEnhanced.Name())
	assert.Equal(t, "Super Enhanced Transfer", ModeSuper.Name())
}
