package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralize(t *testing.T) {
	assert.Equal(t, "snapshots", Pluralize("snapshot", 0))
	assert.Equal(t, "snapshot", Pluralize("snapshot", 1))
	assert.Equal(t, "snapshots", Pluralize("snapshot", 2))
}
