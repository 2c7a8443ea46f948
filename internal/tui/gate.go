package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/scholarscout/internal/leadgate"
)

var gateFieldLabels = []string{"Full Name", "Email Address", "Phone Number"}

var gateFieldKeys = []string{leadgate.FieldName, leadgate.FieldEmail, leadgate.FieldPhone}

func newGateInputs() []textinput.Model {
	placeholders := []string{"e.g., Jane Doe", "e.g., jane.doe@example.com", "e.g., (123) 456-7890"}
	limits := []int{80, 120, 24}
	inputs := make([]textinput.Model, gateFieldCount)
	for i := range inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = limits[i]
		input.Width = 40
		inputs[i] = input
	}
	return inputs
}

func (m *model) prefillGate(lead leadgate.Lead) {
	m.gateInputs[gateFieldName].SetValue(lead.Name)
	m.gateInputs[gateFieldEmail].SetValue(lead.Email)
	m.gateInputs[gateFieldPhone].SetValue(lead.Phone)
}

func (m *model) focusGateField(idx int) tea.Cmd {
	m.gateFocus = (idx + gateFieldCount) % gateFieldCount
	var cmd tea.Cmd
	for i := range m.gateInputs {
		if i == m.gateFocus {
			cmd = m.gateInputs[i].Focus()
			continue
		}
		m.gateInputs[i].Blur()
	}
	return cmd
}

func (m *model) currentLead() leadgate.Lead {
	return leadgate.Lead{
		Name:  m.gateInputs[gateFieldName].Value(),
		Email: m.gateInputs[gateFieldEmail].Value(),
		Phone: m.gateInputs[gateFieldPhone].Value(),
	}
}

func (m *model) updateGate(msg tea.KeyMsg) tea.Cmd {
	gate := m.config.Gate
	switch gate.State() {
	case leadgate.StateVerificationSent:
		if m.gateBusy {
			return nil
		}
		switch msg.String() {
		case "enter", "a":
			m.gateBusy = true
			m.gateMessage = ""
			return m.startJob(jobKindActivate, activateJob(gate))
		case "e", "esc":
			return m.reenterGate()
		case "q":
			return m.quit()
		}
		return nil
	case leadgate.StateAccessExhausted:
		switch msg.String() {
		case "enter", "e", "esc":
			return m.reenterGate()
		case "q":
			return m.quit()
		}
		return nil
	}

	switch msg.String() {
	case "tab", "down":
		return m.focusGateField(m.gateFocus + 1)
	case "shift+tab", "up":
		return m.focusGateField(m.gateFocus - 1)
	case "esc":
		return m.quit()
	case "enter":
		if m.gateBusy {
			return nil
		}
		lead := m.currentLead()
		if errs := leadgate.Validate(lead); !errs.Empty() {
			m.gateErrors = errs
			return m.focusGateField(firstGateError(errs))
		}
		m.gateErrors = nil
		m.gateBusy = true
		m.gateMessage = ""
		return m.startJob(jobKindSubmit, submitLeadJob(gate, lead))
	}
	if m.gateBusy {
		return nil
	}
	var cmd tea.Cmd
	m.gateInputs[m.gateFocus], cmd = m.gateInputs[m.gateFocus].Update(msg)
	if m.gateErrors != nil {
		delete(m.gateErrors, gateFieldKeys[m.gateFocus])
	}
	return cmd
}

func firstGateError(errs leadgate.FieldErrors) int {
	for i, key := range gateFieldKeys {
		if _, ok := errs[key]; ok {
			return i
		}
	}
	return gateFieldName
}

func (m *model) reenterGate() tea.Cmd {
	if err := m.config.Gate.Reenter(); err != nil {
		m.log.Warn().Err(err).Msg("gate re-entry refused")
		return nil
	}
	m.gateMessage = ""
	m.gateErrors = nil
	return m.focusGateField(gateFieldEmail)
}

func (m *model) handleGateSubmit(msg gateSubmitMsg) tea.Cmd {
	m.gateBusy = false
	m.gateErrors = msg.errors
	if msg.err != nil {
		m.gateMessage = gateErrorMessage(msg.err)
		return nil
	}
	if !msg.errors.Empty() {
		return m.focusGateField(firstGateError(msg.errors))
	}
	return nil
}

func (m *model) handleGateActivate(msg gateActivateMsg) tea.Cmd {
	m.gateBusy = false
	if msg.err != nil {
		m.gateMessage = gateErrorMessage(msg.err)
		return nil
	}
	if msg.state == leadgate.StateActivated {
		m.log.Info().Msg("app unlocked")
		return m.focusFormField(focusTopic)
	}
	return nil
}

func gateErrorMessage(err error) string {
	var sendErr *leadgate.SendError
	if errors.As(err, &sendErr) {
		return "Something went wrong while sending the email. Please try again."
	}
	if errors.Is(err, leadgate.ErrBusy) {
		return "Please wait for the current step to finish."
	}
	return "Something went wrong. Please try again."
}

func (m *model) viewGate() string {
	var body string
	switch m.config.Gate.State() {
	case leadgate.StateVerificationSent:
		body = m.viewVerificationSent()
	case leadgate.StateAccessExhausted:
		body = m.viewAccessExhausted()
	default:
		body = m.viewGateForm()
	}
	return joinNonEmpty([]string{m.heroView(), heroBoxStyle.Render(body)})
}

func (m *model) viewGateForm() string {
	rows := []string{
		titleStyle.Render("Unlock Your Future"),
		helperStyle.Render("Enter your details to access the scholarship finder and news hub."),
		"",
	}
	for i, input := range m.gateInputs {
		label := labelStyle.Render(gateFieldLabels[i])
		if i == m.gateFocus {
			label = focusedLabelStyle.Render(gateFieldLabels[i])
		}
		rows = append(rows, label, input.View())
		if msg := m.gateErrors[gateFieldKeys[i]]; msg != "" {
			rows = append(rows, errorStyle.Render(msg))
		}
		rows = append(rows, "")
	}
	if m.gateBusy {
		rows = append(rows, helperStyle.Render(fmt.Sprintf("%s Sending verification email…", m.spinner.View())))
	} else {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render("Enter"), keyDescStyle.Render(" Access Now   "), keyStyle.Render("Tab"), keyDescStyle.Render(" Next field")))
	}
	if m.gateMessage != "" {
		rows = append(rows, errorStyle.Render(m.gateMessage))
	}
	return strings.Join(rows, "\n")
}

func (m *model) viewVerificationSent() string {
	lead := m.config.Gate.Lead()
	rows := []string{
		titleStyle.Render("Check Your Inbox"),
		"",
		fmt.Sprintf("We sent an activation link to %s.", subtitleStyle.Render(lead.Email)),
		helperStyle.Render("Open it to activate your access. This demo simulates the link: press Enter to activate."),
		"",
	}
	if m.gateBusy {
		rows = append(rows, helperStyle.Render(fmt.Sprintf("%s Activating…", m.spinner.View())))
	} else {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render("Enter"), keyDescStyle.Render(" Activate   "), keyStyle.Render("e"), keyDescStyle.Render(" Re-enter email")))
	}
	if m.gateMessage != "" {
		rows = append(rows, errorStyle.Render(m.gateMessage))
	}
	return strings.Join(rows, "\n")
}

func (m *model) viewAccessExhausted() string {
	lead := m.config.Gate.Lead()
	rows := []string{
		titleStyle.Render("Access Already Used"),
		"",
		fmt.Sprintf("%s has already been used to unlock ScholarScout.", subtitleStyle.Render(lead.Email)),
		helperStyle.Render("Each email address can activate access once. Try a different email."),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render("Enter"), keyDescStyle.Render(" Use a different email")),
	}
	return strings.Join(rows, "\n")
}
