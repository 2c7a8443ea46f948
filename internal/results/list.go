package results

import "github.com/csheth/scholarscout/internal/scholar"

// List is the state behind the scholarship results panel: the last query's records, the
// saved bookmarks, which of the two is on screen, the order, the page and the cursor.
type List struct {
	records       []scholar.Scholarship
	bookmarks     []scholar.Scholarship
	mode          SortMode
	showBookmarks bool
	pager         Paginator
	cursor        int
	visible       []scholar.Scholarship
}

// NewList returns an empty list with the given page size and initial order.
func NewList(perPage int, mode SortMode) *List {
	l := &List{pager: NewPaginator(perPage), mode: mode}
	l.refresh()
	return l
}

// SetRecords replaces the query results and goes back to page 1.
func (l *List) SetRecords(records []scholar.Scholarship) {
	l.records = records
	l.reset()
}

// SetBookmarks updates the saved set. The page is kept unless it no longer exists.
func (l *List) SetBookmarks(bookmarks []scholar.Scholarship) {
	l.bookmarks = bookmarks
	l.refresh()
	l.pager.Clamp(len(l.visible))
	l.clampCursor()
}

// SetSort changes the order and goes back to page 1.
func (l *List) SetSort(mode SortMode) {
	l.mode = mode
	l.reset()
}

// CycleSort moves to the next order and returns it.
func (l *List) CycleSort() SortMode {
	l.SetSort(l.mode.Next())
	return l.mode
}

// ShowBookmarks switches between the query results and the saved set.
func (l *List) ShowBookmarks(show bool) {
	l.showBookmarks = show
	l.reset()
}

func (l *List) reset() {
	l.pager.Reset()
	l.cursor = 0
	l.refresh()
}

func (l *List) refresh() {
	source := l.records
	if l.showBookmarks {
		source = l.bookmarks
	}
	l.visible = Sort(source, l.mode)
}

func (l *List) clampCursor() {
	if n := len(l.Page()); l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *List) Mode() SortMode                   { return l.mode }
func (l *List) ShowingBookmarks() bool           { return l.showBookmarks }
func (l *List) Records() []scholar.Scholarship   { return l.records }
func (l *List) Bookmarks() []scholar.Scholarship { return l.bookmarks }
func (l *List) Total() int                       { return len(l.visible) }
func (l *List) PageNumber() int                  { return l.pager.page() }
func (l *List) PageCount() int                   { return l.pager.PageCount(len(l.visible)) }
func (l *List) HasNext() bool                    { return l.pager.HasNext(len(l.visible)) }
func (l *List) HasPrev() bool                    { return l.pager.HasPrev() }
func (l *List) Cursor() int                      { return l.cursor }

// Page returns the records on the current page in display order.
func (l *List) Page() []scholar.Scholarship {
	return Slice(l.pager, l.visible)
}

// NextPage moves forward and puts the cursor on the first row.
func (l *List) NextPage() bool {
	if !l.pager.Next(len(l.visible)) {
		return false
	}
	l.cursor = 0
	return true
}

// PrevPage moves back and puts the cursor on the first row.
func (l *List) PrevPage() bool {
	if !l.pager.Prev() {
		return false
	}
	l.cursor = 0
	return true
}

// MoveCursor shifts the highlighted row within the page.
func (l *List) MoveCursor(delta int) {
	l.cursor += delta
	l.clampCursor()
}

// Selected returns the highlighted record.
func (l *List) Selected() (scholar.Scholarship, bool) {
	page := l.Page()
	if l.cursor < 0 || l.cursor >= len(page) {
		return scholar.Scholarship{}, false
	}
	return page[l.cursor], true
}
