package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerForwardsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := Wrap(zap.New(core))

	log.Warn("score out of range", map[string]interface{}{"version": "v1", "field": "clarity"})
	log.Error("provider failed", errors.New("boom"), nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "score out of range", entries[0].Message)
	assert.Equal(t, "v1", entries[0].ContextMap()["version"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNopLoggerIsSilent(t *testing.T) {
	log := NewNop()
	log.Info("nothing", map[string]interface{}{"k": 1})
}
