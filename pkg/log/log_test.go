package log

import (
	"testing"

	"github.com/kovetskiy/lorg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(" Debug ")
	require.NoError(t, err)
	assert.Equal(t, lorg.LevelDebug, level)

	level, err = ParseLevel("trace")
	require.NoError(t, err)
	assert.Equal(t, lorg.LevelTrace, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
