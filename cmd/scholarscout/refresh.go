package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/csheth/scholarscout/internal/config"
	"github.com/csheth/scholarscout/internal/tui"
)

// startNewsRefresh asks the UI to refetch news on schedule. An empty schedule disables it.
// The returned stop waits for a running send to finish.
func startNewsRefresh(schedule string, send func(tea.Msg), log zerolog.Logger) (func(), error) {
	if schedule == "" {
		return func() {}, nil
	}
	log = log.With().Str("component", "scheduler").Logger()
	c := cron.New(cron.WithParser(config.ScheduleParser()), cron.WithLogger(cronLogger{log: log}))
	if _, err := c.AddFunc(schedule, func() {
		log.Debug().Msg("news refresh tick")
		send(tui.NewsRefreshMsg{})
	}); err != nil {
		return nil, err
	}
	c.Start()
	log.Info().Str("schedule", schedule).Msg("news auto-refresh scheduled")
	return func() { <-c.Stop().Done() }, nil
}

type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

var _ cron.Logger = cronLogger{}
