package tui

import (
	"strings"

	"github.com/muesli/reflow/truncate"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	contentWidth   int
	viewportHeight int
	descriptionCap int
}

func newPageLayout() pageLayout {
	return pageLayout{
		contentWidth:   80,
		viewportHeight: 16,
		descriptionCap: 74,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - contentHorizontalPadding
	if innerWidth < minContentWidth {
		innerWidth = minContentWidth
	}
	l.contentWidth = innerWidth
	l.descriptionCap = innerWidth - 6
	// logo, tagline, tab bar, status bar and key legend
	const chrome = 12
	usable := height - chrome
	if usable < 6 {
		usable = 6
	}
	l.viewportHeight = usable
}

func truncateLine(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 1 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
