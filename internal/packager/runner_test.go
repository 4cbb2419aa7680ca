/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package packager

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/orien/stackpreview/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPackagerConfig(name string) *config.Config {
	cfg := config.Defaults()
	cfg.Packager = name
	return cfg
}

func TestExecRunner_Run_CapturesOutput(t *testing.T) {
	runner := NewExecRunner(zap.NewNop())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "template.yaml"), nil, 0o644))

	out, err := runner.Run(context.Background(), dir, "sh", "-c", "ls; echo built >&2")

	require.NoError(t, err)
	assert.Contains(t, out, "built")
	assert.Contains(t, out, "template.yaml")
}

func TestExecRunner_Run_Failure(t *testing.T) {
	runner := NewExecRunner(zap.NewNop())

	out, err := runner.Run(context.Background(), t.TempDir(), "sh", "-c", "echo 'Error: template invalid'; exit 3")

	require.Error(t, err)
	assert.Contains(t, out, "template invalid")
	assert.Contains(t, err.Error(), "sh -c failed")
	assert.Contains(t, err.Error(), "Error: template invalid")
}

func TestExecRunner_Run_MissingExecutable(t *testing.T) {
	runner := NewExecRunner(zap.NewNop())

	_, err := runner.Run(context.Background(), t.TempDir(), "stackpreview-no-such-binary")

	assert.Error(t, err)
}

func TestLastLines(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = strings.Repeat("x", i+1)
	}

	tail := lastLines(strings.Join(lines, "\n")+"\n", 3)

	assert.Equal(t, strings.Join(lines[27:], "\n"), tail)
}
