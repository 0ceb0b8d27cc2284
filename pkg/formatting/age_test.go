package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAge(t *testing.T) {
	testCases := []struct {
		age      time.Duration
		expected string
	}{
		{0, "0s"},
		{-time.Minute, "0s"},
		{42 * time.Second, "42s"},
		{90 * time.Second, "1m 30s"},
		{2 * time.Hour, "2h"},
		{3*24*time.Hour + 4*time.Hour + 5*time.Minute, "3d 4h"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Age(tc.age), tc.age.String())
	}
}
