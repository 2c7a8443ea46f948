package leadgate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DefaultAdminAddress  = "admin@scholarscout.local"
	DefaultActivationURL = "https://scholarscout.local/activate"
	verificationDelay    = 1500 * time.Millisecond
	adminDelay           = time.Second
)

// SimulatedMailer logs the emails it would send and waits a little to feel like a network
// call. Nothing leaves the machine.
type SimulatedMailer struct {
	log           zerolog.Logger
	admin         string
	activationURL string
	// Delay overrides both artificial delays when non-negative.
	Delay    time.Duration
	newToken func() string
}

// NewSimulatedMailer returns a mailer with the default delays.
func NewSimulatedMailer(admin, activationURL string, log zerolog.Logger) *SimulatedMailer {
	if admin == "" {
		admin = DefaultAdminAddress
	}
	if activationURL == "" {
		activationURL = DefaultActivationURL
	}
	return &SimulatedMailer{
		log:           log.With().Str("component", "mailer").Logger(),
		admin:         admin,
		activationURL: activationURL,
		Delay:         -1,
		newToken:      uuid.NewString,
	}
}

func (m *SimulatedMailer) SendVerification(ctx context.Context, lead Lead) error {
	token := m.newToken()
	subject := "Activate your ScholarScout access"
	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", lead.Name)
	body.WriteString("Welcome to ScholarScout. Please activate your access to start searching scholarships and education news.\n\n")
	fmt.Fprintf(&body, "Activate: %s?token=%s\n\n", m.activationURL, token)
	body.WriteString("If you did not request this, ignore this email. Your details stay unprocessed until activation.\n")
	m.log.Info().
		Str("to", lead.Email).
		Str("subject", subject).
		Str("token", token).
		Str("body", body.String()).
		Msg("simulated verification email")
	return m.wait(ctx, verificationDelay)
}

func (m *SimulatedMailer) NotifyAdmin(ctx context.Context, lead Lead) error {
	subject := "New verified lead: " + lead.Name
	body := fmt.Sprintf("A new user verified their email and activated access.\n\nName:  %s\nEmail: %s\nPhone: %s\n", lead.Name, lead.Email, lead.Phone)
	m.log.Info().
		Str("to", m.admin).
		Str("subject", subject).
		Str("body", body).
		Msg("simulated admin notification")
	return m.wait(ctx, adminDelay)
}

func (m *SimulatedMailer) wait(ctx context.Context, fallback time.Duration) error {
	delay := fallback
	if m.Delay >= 0 {
		delay = m.Delay
	}
	if delay == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
