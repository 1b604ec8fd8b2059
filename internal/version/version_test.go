package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVersionGreaterOrEqualThan(t *testing.T) {
	testCases := []struct {
		version string
		target  string
		expect  bool
	}{
		{"1.0.0", "1.0.0", true},
		{"1.2.0", "1.1.9", true},
		{"0.9.0", "1.0.0", false},
		{"1.0.0", "0.0.0-dev", true},
		{"0.0.0-dev", "0.0.0", false},
		{"0.0.0-dev", "0.0.0-dev", true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expect, IsVersionGreaterOrEqualThan(tc.version, tc.target),
			"%s >= %s", tc.version, tc.target)
	}
}
