// Package pagination drives stateful paginated responses: per-message
// sessions with component callbacks, a page-jump modal, and an inactivity
// timeout that strips the buttons.
package pagination

// Pages tracks the current position within a paginated entry set. Index
// always sits on a page boundary: index % PerPage == 0 and
// 0 <= Index <= LastIndex.
type Pages struct {
	Index     int
	LastIndex int
	PerPage   int
}

// NewPages derives the page bounds for amount entries at perPage per page.
func NewPages(perPage, amount int) Pages {
	return Pages{
		Index:     0,
		PerPage:   perPage,
		LastIndex: lastMultiple(perPage, amount),
	}
}

// lastMultiple is the index of the first entry on the last page.
func lastMultiple(perPage, amount int) int {
	if amount%perPage == 0 && amount > 0 {
		return amount - perPage
	}
	return amount - amount%perPage
}

// CurrentPage returns the 1-based page number.
func (p Pages) CurrentPage() int {
	return p.Index/p.PerPage + 1
}

// LastPage returns the 1-based number of the last page.
func (p Pages) LastPage() int {
	return p.LastIndex/p.PerPage + 1
}

// JumpTo positions on a 1-based page number, clamped to the valid range.
func (p Pages) JumpTo(page int) Pages {
	if page < 1 {
		page = 1
	}
	if page > p.LastPage() {
		page = p.LastPage()
	}
	p.Index = (page - 1) * p.PerPage
	return p
}

func (p Pages) jumpStart() Pages {
	p.Index = 0
	return p
}

func (p Pages) stepBack() Pages {
	p.Index -= p.PerPage
	if p.Index < 0 {
		p.Index = 0
	}
	return p
}

func (p Pages) step() Pages {
	p.Index += p.PerPage
	if p.Index > p.LastIndex {
		p.Index = p.LastIndex
	}
	return p
}

func (p Pages) jumpEnd() Pages {
	p.Index = p.LastIndex
	return p
}
