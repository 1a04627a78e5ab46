package cmd

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/matchboard/config"
	"github.com/s0up4200/matchboard/filter"
	"github.com/s0up4200/matchboard/footballdata"
)

func TestSetupLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			setupLogger(config.LoggingConfig{Level: tt.level, Format: "json"})
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestLoggingFromFlags(t *testing.T) {
	defer func() { logLevel = "" }()

	logLevel = ""
	assert.Equal(t, "info", loggingFromFlags().Level)

	logLevel = "debug"
	cfg := loggingFromFlags()
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
}

func TestResolveFilter(t *testing.T) {
	filters = filter.NewManager(filter.WithCompiler(filter.NewCompiler(filter.WithCache(0))))
	require.NoError(t, filters.RegisterFilter("goals", "TotalGoals >= 3"))
	defer func() { filters = nil }()

	f, err := resolveFilter("", "")
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = resolveFilter("", "GOALS")
	require.NoError(t, err)
	assert.Equal(t, "TotalGoals >= 3", f.Expression())

	_, err = resolveFilter("", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: goals")

	f, err = resolveFilter("isFinished()", "goals")
	require.NoError(t, err)
	assert.Equal(t, "isFinished()", f.Expression())

	_, err = resolveFilter("Status ==", "")
	assert.Error(t, err)
}

func TestNewClientFromConfig(t *testing.T) {
	logger = zerolog.Nop()

	c, err := newClient(config.FootballDataConfig{
		APIToken:    "token",
		Mode:        "proxy",
		ProxyURL:    "http://localhost:3001/api/football",
		MinInterval: config.MinRequestInterval,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "proxy", string(c.Mode()))
	assert.Equal(t, "http://localhost:3001/api/football", c.BaseURL())
}

func TestConnectionFailure(t *testing.T) {
	assert.NoError(t, connectionFailure(footballdata.ConnectionResult{Success: true, Message: "Connection OK"}))

	err := connectionFailure(footballdata.ConnectionResult{
		Success: false,
		Error:   "Invalid or expired API token",
		Kind:    footballdata.KindInvalidToken,
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid or expired API token", err.Error())

	var rendered *renderedError
	assert.ErrorAs(t, err, &rendered)

	err = connectionFailure(footballdata.ConnectionResult{Success: false})
	require.Error(t, err)
	assert.Equal(t, "connection test failed", err.Error())
}
