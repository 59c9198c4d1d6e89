package reader

// PageCounter reports the current total page count of a chapter. The
// navigator queries it lazily so that re-measurement can change page
// counts between navigation steps without the navigator holding stale
// totals.
type PageCounter func(chapter int) int

// Navigator tracks the reading position as a (chapter, page) pair and
// implements the page-turn contract: advancing past the last page of a
// chapter rolls into the next chapter's first page, and stepping back
// from a chapter's first page lands on the last page of the previous
// chapter. At the very start and very end of the book, page turns are
// no-ops.
type Navigator struct {
	chapter      int
	page         int
	chapterCount int
	pages        PageCounter
}

// NewNavigator returns a navigator positioned at the first page of the
// first chapter.
func NewNavigator(chapterCount int, pages PageCounter) *Navigator {
	return &Navigator{chapterCount: chapterCount, pages: pages}
}

// Chapter returns the current chapter index.
func (n *Navigator) Chapter() int { return n.chapter }

// Page returns the current page index within the chapter.
func (n *Navigator) Page() int { return n.page }

func (n *Navigator) totalPages(chapter int) int {
	if n.pages == nil {
		return 1
	}
	t := n.pages(chapter)
	if t < 1 {
		return 1
	}
	return t
}

// NextPage advances one page, rolling into the next chapter when the
// current one is exhausted. Reports whether the position changed.
func (n *Navigator) NextPage() bool {
	if n.page+1 < n.totalPages(n.chapter) {
		n.page++
		return true
	}
	if n.chapter+1 < n.chapterCount {
		n.chapter++
		n.page = 0
		return true
	}
	return false
}

// PrevPage steps back one page, landing on the last page of the
// previous chapter when already at the first page. Reports whether the
// position changed.
func (n *Navigator) PrevPage() bool {
	if n.page > 0 {
		n.page--
		return true
	}
	if n.chapter > 0 {
		n.chapter--
		n.page = n.totalPages(n.chapter) - 1
		return true
	}
	return false
}

// HasNext reports whether NextPage would move.
func (n *Navigator) HasNext() bool {
	return n.page+1 < n.totalPages(n.chapter) || n.chapter+1 < n.chapterCount
}

// HasPrev reports whether PrevPage would move.
func (n *Navigator) HasPrev() bool {
	return n.page > 0 || n.chapter > 0
}

// JumpToChapter moves to the first page of the given chapter. Out of
// range indices are clamped.
func (n *Navigator) JumpToChapter(chapter int) {
	if chapter < 0 {
		chapter = 0
	}
	if chapter >= n.chapterCount && n.chapterCount > 0 {
		chapter = n.chapterCount - 1
	}
	n.chapter = chapter
	n.page = 0
}

// SetPage moves to a page within the current chapter, clamped to the
// chapter's page range.
func (n *Navigator) SetPage(page int) {
	total := n.totalPages(n.chapter)
	if page < 0 {
		page = 0
	}
	if page >= total {
		page = total - 1
	}
	n.page = page
}

// ClampToLayout re-validates the position after a re-measurement: if
// the current page fell past the new page count it snaps to the last
// page. Reports whether the position moved.
func (n *Navigator) ClampToLayout() bool {
	total := n.totalPages(n.chapter)
	if n.page >= total {
		n.page = total - 1
		return true
	}
	return false
}
