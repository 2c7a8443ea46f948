package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/scholarscout/internal/leadgate"
	"github.com/csheth/scholarscout/internal/scholar"
)

const (
	defaultSearchTimeout = 3 * time.Minute
	gateStepTimeout      = 30 * time.Second
)

func searchJob(finder Finder, seq int, query scholar.Query, timeout time.Duration) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		result, err := finder.Scholarships(ctx, query)
		return searchResultMsg{seq: seq, query: query, result: result, err: err}, err
	}
}

func newsJob(finder Finder, seq int, fresh, manual bool, timeout time.Duration) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		result, err := finder.News(ctx, fresh)
		return newsResultMsg{seq: seq, manual: manual, result: result, err: err}, err
	}
}

func submitLeadJob(gate *leadgate.Gate, lead leadgate.Lead) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, gateStepTimeout)
		defer cancel()
		state, errs, err := gate.Submit(ctx, lead)
		return gateSubmitMsg{state: state, errors: errs, err: err}, err
	}
}

func activateJob(gate *leadgate.Gate) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, gateStepTimeout)
		defer cancel()
		state, err := gate.Activate(ctx)
		return gateActivateMsg{state: state, err: err}, err
	}
}
