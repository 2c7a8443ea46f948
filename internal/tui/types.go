package tui

import (
	"github.com/csheth/scholarscout/internal/leadgate"
	"github.com/csheth/scholarscout/internal/scholar"
)

type tab int

const (
	tabScholarships tab = iota
	tabNews
	tabAbout
)

var tabLabels = []string{"Scholarship Finder", "Latest News", "About"}

// finder form focus order; focusResults hands keys to the result list.
type focusField int

const (
	focusTopic focusField = iota
	focusMajor
	focusLevel
	focusLocation
	focusGPA
	focusResults
)

const focusFieldCount = int(focusResults) + 1

// gate form fields
const (
	gateFieldName = iota
	gateFieldEmail
	gateFieldPhone
	gateFieldCount
)

const heroTagline = "Scholarships and study-abroad news, found for you."

const (
	minContentWidth          = 40
	contentHorizontalPadding = 4
)

// NewsRefreshMsg asks the model to refetch news in the background. The scheduler sends it
// through Program.Send.
type NewsRefreshMsg struct{}

type gateSubmitMsg struct {
	state  leadgate.State
	errors leadgate.FieldErrors
	err    error
}

type gateActivateMsg struct {
	state leadgate.State
	err   error
}

type searchResultMsg struct {
	seq    int
	query  scholar.Query
	result scholar.ScholarshipResult
	err    error
}

type newsResultMsg struct {
	seq    int
	manual bool
	result scholar.NewsResult
	err    error
}
