package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/csheth/scholarscout/internal/tui"
)

func TestStartNewsRefreshSendsOnSchedule(t *testing.T) {
	msgs := make(chan tea.Msg, 4)
	stop, err := startNewsRefresh("@every 1s", func(msg tea.Msg) { msgs <- msg }, zerolog.Nop())
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	defer stop()

	select {
	case msg := <-msgs:
		if _, ok := msg.(tui.NewsRefreshMsg); !ok {
			t.Fatalf("unexpected message %T", msg)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no refresh within 3s")
	}
}

func TestStartNewsRefreshDisabledAndInvalid(t *testing.T) {
	stop, err := startNewsRefresh("", func(tea.Msg) { t.Fatal("disabled schedule must not send") }, zerolog.Nop())
	if err != nil {
		t.Fatalf("empty schedule: %v", err)
	}
	stop()

	if _, err := startNewsRefresh("every tuesday", func(tea.Msg) {}, zerolog.Nop()); err == nil {
		t.Fatal("expected an error for an invalid schedule")
	}
}
