package results

// DefaultRevealStep is how many news articles each "load more" uncovers.
const DefaultRevealStep = 5

// Reveal shows a fetched list a step at a time.
type Reveal struct {
	Step  int
	shown int
	total int
}

// NewReveal returns a Reveal showing the first step of an empty list.
func NewReveal(step int) Reveal {
	if step <= 0 {
		step = DefaultRevealStep
	}
	return Reveal{Step: step}
}

// Reset starts over with a new list of total items.
func (r *Reveal) Reset(total int) {
	r.total = total
	r.shown = min(r.step(), total)
}

// More uncovers the next step and reports whether anything new became visible.
func (r *Reveal) More() bool {
	if !r.HasMore() {
		return false
	}
	r.shown = min(r.shown+r.step(), r.total)
	return true
}

// HasMore reports whether hidden items remain.
func (r Reveal) HasMore() bool {
	return r.shown < r.total
}

// Shown is the number of visible items.
func (r Reveal) Shown() int {
	return r.shown
}

func (r Reveal) step() int {
	if r.Step <= 0 {
		return DefaultRevealStep
	}
	return r.Step
}
