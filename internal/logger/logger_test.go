package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelVarControlsOutput(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	log := newLogger(&buf, level)

	log.Debug("hidden")
	require.Empty(t, buf.String())

	level.Set(slog.LevelDebug)
	log.Debug("shown", "bucket", "example.com")
	require.Contains(t, buf.String(), "msg=shown")
	require.Contains(t, buf.String(), "bucket=example.com")
}

func TestDiscard(t *testing.T) {
	require.NotPanics(t, func() { Discard().Error("nothing") })
}
