// Package leadgate implements the one-time access gate shown before the finder: collect a
// lead, send a (simulated) verification email, and unlock the app on activation. Each
// email address may activate once.
package leadgate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/csheth/scholarscout/internal/store"
)

// State is a lead-gate screen.
type State int

const (
	StateForm State = iota
	StateVerificationSent
	StateActivated
	StateAccessExhausted
)

func (s State) String() string {
	switch s {
	case StateForm:
		return "form"
	case StateVerificationSent:
		return "verificationSent"
	case StateActivated:
		return "activated"
	case StateAccessExhausted:
		return "accessExhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrBusy is returned when a step starts while another is still running.
	ErrBusy = errors.New("a gate step is already in progress")
	// ErrInvalidTransition is returned when a step is not allowed from the current state.
	ErrInvalidTransition = errors.New("invalid lead gate transition")
)

// SendError wraps a mailer failure. The gate stays in the state it was in.
type SendError struct {
	Step string
	Err  error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("%s email failed: %v", e.Step, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// Mailer delivers the two gate emails.
type Mailer interface {
	SendVerification(ctx context.Context, lead Lead) error
	NotifyAdmin(ctx context.Context, lead Lead) error
}

// EmailRegistry is the persisted set of emails that already activated.
type EmailRegistry interface {
	Contains(email string) bool
	Add(email string) error
}

var _ EmailRegistry = (*store.UsedEmails)(nil)

// Gate is the lead-gate state machine. It is safe for use from multiple goroutines; the
// mailer is called without holding the lock so State stays readable during a send.
type Gate struct {
	mu     sync.Mutex
	state  State
	lead   Lead
	busy   bool
	mailer Mailer
	used   EmailRegistry
	log    zerolog.Logger
}

// New returns a gate on the form screen.
func New(mailer Mailer, used EmailRegistry, log zerolog.Logger) *Gate {
	return &Gate{
		mailer: mailer,
		used:   used,
		log:    log.With().Str("component", "leadgate").Logger(),
	}
}

// State returns the current screen.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Lead returns the last submitted lead, used to prefill the form after re-entry.
func (g *Gate) Lead() Lead {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lead
}

// Busy reports whether a step is in flight.
func (g *Gate) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}

// Unlocked reports whether the rest of the app is accessible.
func (g *Gate) Unlocked() bool {
	return g.State() == StateActivated
}

// Submit validates lead and, unless its email already activated, sends the verification
// email. Field errors leave the gate on the form.
func (g *Gate) Submit(ctx context.Context, lead Lead) (State, FieldErrors, error) {
	lead = lead.Trimmed()
	if err := g.begin(StateForm); err != nil {
		return g.State(), nil, err
	}
	if errs := Validate(lead); !errs.Empty() {
		return g.finish(StateForm, lead), errs, nil
	}
	if g.used.Contains(lead.Email) {
		g.log.Info().Str("email", store.NormalizeEmail(lead.Email)).Msg("email already used its activation")
		return g.finish(StateAccessExhausted, lead), nil, nil
	}
	if err := g.mailer.SendVerification(ctx, lead); err != nil {
		g.log.Error().Err(err).Msg("verification email failed")
		return g.finish(StateForm, lead), nil, &SendError{Step: "verification", Err: err}
	}
	return g.finish(StateVerificationSent, lead), nil, nil
}

// Activate completes verification: the admin is notified and the email is marked used.
func (g *Gate) Activate(ctx context.Context) (State, error) {
	if err := g.begin(StateVerificationSent); err != nil {
		return g.State(), err
	}
	lead := g.Lead()
	if err := g.mailer.NotifyAdmin(ctx, lead); err != nil {
		g.log.Error().Err(err).Msg("admin notification failed")
		return g.finish(StateVerificationSent, lead), &SendError{Step: "admin notification", Err: err}
	}
	if err := g.used.Add(lead.Email); err != nil {
		g.log.Warn().Err(err).Msg("failed to persist used email")
	}
	g.log.Info().Str("email", store.NormalizeEmail(lead.Email)).Msg("access activated")
	return g.finish(StateActivated, lead), nil
}

// Reenter goes back to the form from the verification or exhausted screens.
func (g *Gate) Reenter() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return ErrBusy
	}
	if g.state != StateVerificationSent && g.state != StateAccessExhausted {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, g.state, StateForm)
	}
	g.state = StateForm
	return nil
}

func (g *Gate) begin(from State) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return ErrBusy
	}
	if g.state != from {
		return fmt.Errorf("%w: step needs %s, gate is %s", ErrInvalidTransition, from, g.state)
	}
	g.busy = true
	return nil
}

func (g *Gate) finish(state State, lead Lead) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = state
	g.lead = lead
	g.busy = false
	return state
}
