/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	original := Version
	Version = v
	t.Cleanup(func() { Version = original })
}

func TestInfo_OutputFormat(t *testing.T) {
	withVersion(t, "v1.2.0")

	lines := strings.Split(Info(), "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, "stackpreview v1.2.0", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  Git commit: "))
	assert.True(t, strings.HasPrefix(lines[2], "  Build date: "))
	assert.Equal(t, "  Go version: "+runtime.Version(), lines[3])
	assert.Equal(t, "  Platform:   "+runtime.GOOS+"/"+runtime.GOARCH, lines[4])
}

func TestShort_ReturnsVersionOnly(t *testing.T) {
	withVersion(t, "1.0.0+a1b2c3d")
	assert.Equal(t, "1.0.0+a1b2c3d", Short())
}

func TestAppID(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{name: "development build", version: "dev", expected: "stackpreview-dev"},
		{name: "release", version: "v1.0.0", expected: "stackpreview-v1.0.0"},
		{name: "build metadata", version: "1.0.0+a1b2c3d-dirty", expected: "stackpreview-1.0.0-a1b2c3d-dirty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVersion(t, tt.version)
			assert.Equal(t, tt.expected, AppID())
		})
	}
}

func TestAppID_Truncated(t *testing.T) {
	withVersion(t, strings.Repeat("9", 60))
	assert.Len(t, AppID(), 50)
}
