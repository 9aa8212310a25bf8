package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { Logger = zap.NewNop() })

	logger, err := InitLogger("warn")
	require.NoError(t, err)

	assert.Same(t, logger, Logger)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestInitLogger_UnknownLevel(t *testing.T) {
	before := Logger

	_, err := InitLogger("loud")
	assert.Error(t, err)
	assert.Same(t, before, Logger)
}
