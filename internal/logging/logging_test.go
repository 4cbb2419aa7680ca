/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfig_Levels(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, Config(false).Level.Level())
	assert.Equal(t, zapcore.DebugLevel, Config(true).Level.Level())
}

func TestConfig_WritesToStderr(t *testing.T) {
	config := Config(false)

	assert.Equal(t, "console", config.Encoding)
	assert.Equal(t, []string{"stderr"}, config.OutputPaths)
	assert.Nil(t, config.Sampling)
	assert.True(t, config.DisableCaller)
	assert.False(t, Config(true).DisableCaller)
}

func TestNew(t *testing.T) {
	logger, err := New(true)

	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
