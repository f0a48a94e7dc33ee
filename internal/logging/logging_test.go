package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew_Level(t *testing.T) {
	log, err := New("warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	_, err = New("chatty")
	assert.Error(t, err)
}

func TestWithRunID_TagsEveryEntry(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := WithRunID(zap.New(core))

	log.Info("one")
	log.Info("two")

	entries := logs.All()
	require.Len(t, entries, 2)
	first := entries[0].ContextMap()["run_id"]
	assert.NotEmpty(t, first)
	assert.Equal(t, first, entries[1].ContextMap()["run_id"])

	other := WithRunID(zap.New(core))
	other.Info("three")
	assert.NotEqual(t, first, logs.All()[2].ContextMap()["run_id"])
}

func TestGorm_Disabled(t *testing.T) {
	assert.Equal(t, gormlogger.Discard, Gorm(zap.NewNop(), false))
}

func TestGorm_WritesToZapAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Gorm(zap.New(core), true)

	l.Info(context.Background(), "opened %s", "northwind")

	require.Equal(t, 1, logs.Len())
	e := logs.All()[0]
	assert.Equal(t, zapcore.DebugLevel, e.Level)
	assert.Equal(t, "sql", e.LoggerName)
	assert.Contains(t, e.Message, "opened northwind")
}

func TestGorm_WarnsWhenDebugIsOff(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := Gorm(zap.New(core), true)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Contains(t, logs.All()[0].Message, "log_level=debug")

	l.Info(context.Background(), "select 1")
	assert.Equal(t, 1, logs.Len(), "trace stays at debug")
}

func TestGorm_NoWarningAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Gorm(zap.New(core), true)
	assert.Zero(t, logs.Len())
}
