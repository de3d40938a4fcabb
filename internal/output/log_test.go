package output

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_Levels(t *testing.T) {
	tests := []struct {
		name  string
		cfg   LogConfig
		level log.Level
	}{
		{"default is info", LogConfig{}, log.InfoLevel},
		{"verbose is debug", LogConfig{Verbose: true}, log.DebugLevel},
		{"timestamps off keeps info", LogConfig{Timestamps: BoolPtr(false)}, log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupLogging(tt.cfg)
			assert.Equal(t, tt.level, logger.GetLevel())
		})
	}
}

func TestSetupLogging_TimestampsDisabled(t *testing.T) {
	SetupLogging(LogConfig{Timestamps: BoolPtr(false)})

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.Info("hello")

	assert.NotRegexp(t, `^\d{2}:\d{2}:\d{2}`, buf.String())
	assert.Contains(t, buf.String(), "hello")
}

func TestProjectLogger_InheritsLevel(t *testing.T) {
	SetupLogging(LogConfig{Verbose: true})
	pl := ProjectLogger("web")
	assert.Equal(t, log.DebugLevel, pl.GetLevel())
	assert.Contains(t, pl.GetPrefix(), "web")
}

func TestPrintlnUsesRedirectedOutput(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Print("a")
	Println("b")
	assert.Equal(t, "ab\n", buf.String())
}

func TestRunWithSpinner_NonTTYRunsAction(t *testing.T) {
	defer ForceTTY(false)()

	called := false
	err := RunWithSpinner(context.Background(), func(context.Context) error {
		called = true
		return nil
	}, WithTitle("installing"))
	require.NoError(t, err)
	assert.True(t, called)

	boom := errors.New("boom")
	err = RunWithSpinner(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestRunWithSpinner_Timeout(t *testing.T) {
	defer ForceTTY(false)()

	err := RunWithSpinner(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, WithTimeout(10*time.Millisecond))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
