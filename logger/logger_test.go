package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: 0},
		{name: "Console output mode", jsonOutput: false, verbosity: 1},
		{name: "Console debug mode", jsonOutput: false, verbosity: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			err := Initialize(tt.jsonOutput, tt.verbosity)
			if err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			if Logger == nil {
				t.Fatal("Initialize() did not set global Logger")
			}
			if JSONOutput != tt.jsonOutput {
				t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}

			Logger.Sync()
		})
	}
}

func TestWarnw(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	Logger = zap.New(core).Sugar()
	defer func() { Logger = zap.NewNop().Sugar() }()

	Warnw("Run history unavailable", FieldError, "disk full")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Run history unavailable", entries[0].Message)
	assert.Equal(t, "disk full", entries[0].ContextMap()[FieldError])

	Logger = nil
	assert.NotPanics(t, func() { Warnw("dropped") })
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(0))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(1))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(2))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Trace (-vvv+)", LevelName(9))
	assert.Equal(t, "Unknown", LevelName(-3))
}

func TestFieldsFromContext(t *testing.T) {
	t.Run("empty context has no fields", func(t *testing.T) {
		assert.Empty(t, FieldsFromContext(context.Background()))
	})

	t.Run("run and record fields in stable order", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "run-1")
		ctx = WithRecordURI(ctx, "/repositories/2/archival_objects/7")
		ctx = WithComponent(ctx, "reconcile")

		fields := FieldsFromContext(ctx)
		assert.Equal(t, []interface{}{
			FieldRunID, "run-1",
			FieldRecordURI, "/repositories/2/archival_objects/7",
			FieldComponent, "reconcile",
		}, fields)
	})

	t.Run("FromContext falls back to global logger", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background(), nil))
	})
}
