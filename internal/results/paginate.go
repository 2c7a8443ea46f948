package results

// DefaultPerPage is the page size of the scholarship list.
const DefaultPerPage = 10

// Paginator tracks a 1-based page over a list whose length is supplied on each call.
type Paginator struct {
	PerPage int
	Page    int
}

// NewPaginator returns a paginator on page 1.
func NewPaginator(perPage int) Paginator {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return Paginator{PerPage: perPage, Page: 1}
}

func (p Paginator) perPage() int {
	if p.PerPage <= 0 {
		return DefaultPerPage
	}
	return p.PerPage
}

func (p Paginator) page() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

// PageCount is ceil(total/PerPage), and at least 1.
func (p Paginator) PageCount(total int) int {
	n := p.perPage()
	if total <= 0 {
		return 1
	}
	return (total + n - 1) / n
}

// Bounds returns the half-open index range of the current page, clipped to total.
func (p Paginator) Bounds(total int) (start, end int) {
	n := p.perPage()
	start = (p.page() - 1) * n
	if start > total {
		start = total
	}
	end = start + n
	if end > total {
		end = total
	}
	return start, end
}

// HasNext reports whether a later page exists.
func (p Paginator) HasNext(total int) bool {
	return p.page() < p.PageCount(total)
}

// HasPrev reports whether an earlier page exists.
func (p Paginator) HasPrev() bool {
	return p.page() > 1
}

// Next advances one page and reports whether it moved.
func (p *Paginator) Next(total int) bool {
	if !p.HasNext(total) {
		return false
	}
	p.Page = p.page() + 1
	return true
}

// Prev goes back one page and reports whether it moved.
func (p *Paginator) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.Page = p.page() - 1
	return true
}

// Reset returns to page 1.
func (p *Paginator) Reset() {
	p.Page = 1
}

// Clamp pulls the page back inside the range after the list shrank.
func (p *Paginator) Clamp(total int) {
	if last := p.PageCount(total); p.page() > last {
		p.Page = last
	}
}

// Slice returns the records of the current page.
func Slice[T any](p Paginator, items []T) []T {
	start, end := p.Bounds(len(items))
	return items[start:end]
}
