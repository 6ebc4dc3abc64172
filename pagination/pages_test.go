package pagination

import "testing"

func TestNewPages(t *testing.T) {
	tests := []struct {
		name      string
		perPage   int
		amount    int
		lastIndex int
	}{
		{name: "empty", perPage: 10, amount: 0, lastIndex: 0},
		{name: "single partial page", perPage: 10, amount: 7, lastIndex: 0},
		{name: "exactly one page", perPage: 10, amount: 10, lastIndex: 0},
		{name: "one entry over", perPage: 10, amount: 11, lastIndex: 10},
		{name: "exact multiple", perPage: 10, amount: 30, lastIndex: 20},
		{name: "partial last page", perPage: 15, amount: 47, lastIndex: 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPages(tt.perPage, tt.amount)
			if p.Index != 0 {
				t.Errorf("Index = %d, want 0", p.Index)
			}
			if p.LastIndex != tt.lastIndex {
				t.Errorf("LastIndex = %d, want %d", p.LastIndex, tt.lastIndex)
			}
		})
	}
}

func TestPageNumbers(t *testing.T) {
	p := NewPages(10, 35)

	if got := p.CurrentPage(); got != 1 {
		t.Errorf("CurrentPage = %d, want 1", got)
	}
	if got := p.LastPage(); got != 4 {
		t.Errorf("LastPage = %d, want 4", got)
	}

	p = p.jumpEnd()
	if got := p.CurrentPage(); got != 4 {
		t.Errorf("CurrentPage after jumpEnd = %d, want 4", got)
	}
}

func TestStepClamping(t *testing.T) {
	p := NewPages(10, 25)

	p = p.stepBack()
	if p.Index != 0 {
		t.Errorf("stepBack at start: Index = %d, want 0", p.Index)
	}

	p = p.step()
	if p.Index != 10 {
		t.Errorf("step: Index = %d, want 10", p.Index)
	}

	p = p.step()
	p = p.step()
	if p.Index != 20 {
		t.Errorf("step past end: Index = %d, want 20", p.Index)
	}

	p = p.jumpStart()
	if p.Index != 0 {
		t.Errorf("jumpStart: Index = %d, want 0", p.Index)
	}
}

func TestJumpTo(t *testing.T) {
	p := NewPages(10, 45)

	tests := []struct {
		page  int
		index int
	}{
		{page: 1, index: 0},
		{page: 3, index: 20},
		{page: 5, index: 40},
		{page: 0, index: 0},
		{page: -2, index: 0},
		{page: 99, index: 40},
	}

	for _, tt := range tests {
		got := p.JumpTo(tt.page)
		if got.Index != tt.index {
			t.Errorf("JumpTo(%d): Index = %d, want %d", tt.page, got.Index, tt.index)
		}
	}
}
