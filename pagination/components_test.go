package pagination

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func buttonByID(t *testing.T, rows []discordgo.MessageComponent, customID string) discordgo.Button {
	t.Helper()

	for _, comp := range rows {
		row, ok := comp.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if btn, ok := inner.(discordgo.Button); ok && btn.CustomID == customID {
				return btn
			}
		}
	}

	t.Fatalf("no button with custom id %q", customID)
	return discordgo.Button{}
}

func TestRowsSinglePage(t *testing.T) {
	p := NewPages(10, 5)

	if rows := Rows(KindDefault, p); len(rows) != 0 {
		t.Errorf("default rows for single page = %d, want 0", len(rows))
	}
	if rows := Rows(KindMapSearch, p); len(rows) != 0 {
		t.Errorf("map search rows for single page = %d, want 0", len(rows))
	}
}

func TestRowsDisabledStates(t *testing.T) {
	p := NewPages(10, 30)

	rows := Rows(KindDefault, p)
	if buttonByID(t, rows, CustomIDStart).Disabled != true {
		t.Error("start should be disabled on first page")
	}
	if buttonByID(t, rows, CustomIDBack).Disabled != true {
		t.Error("back should be disabled on first page")
	}
	if buttonByID(t, rows, CustomIDStep).Disabled {
		t.Error("step should be enabled on first page")
	}
	if buttonByID(t, rows, CustomIDEnd).Disabled {
		t.Error("end should be enabled on first page")
	}
	if buttonByID(t, rows, CustomIDCustom).Disabled {
		t.Error("custom page button should always be enabled")
	}

	rows = Rows(KindDefault, p.jumpEnd())
	if buttonByID(t, rows, CustomIDStart).Disabled {
		t.Error("start should be enabled on last page")
	}
	if buttonByID(t, rows, CustomIDStep).Disabled != true {
		t.Error("step should be disabled on last page")
	}
	if buttonByID(t, rows, CustomIDEnd).Disabled != true {
		t.Error("end should be disabled on last page")
	}
}

func TestMapSearchRowsSubset(t *testing.T) {
	rows := Rows(KindMapSearch, NewPages(10, 30))

	row, ok := rows[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("expected ActionsRow, got %T", rows[0])
	}
	if len(row.Components) != 3 {
		t.Fatalf("map search row has %d buttons, want 3", len(row.Components))
	}
	for _, inner := range row.Components {
		btn := inner.(discordgo.Button)
		if btn.CustomID == CustomIDCustom || btn.CustomID == CustomIDEnd {
			t.Errorf("map search row must not contain %q", btn.CustomID)
		}
	}
}

func TestProfileRowsDisableCurrent(t *testing.T) {
	p := Pages{Index: 1, LastIndex: 2, PerPage: 1}

	rows := Rows(KindProfile, p)
	if buttonByID(t, rows, CustomIDProfileCompact).Disabled {
		t.Error("compact should be enabled while medium is shown")
	}
	if !buttonByID(t, rows, CustomIDProfileMedium).Disabled {
		t.Error("medium should be disabled while medium is shown")
	}
	if buttonByID(t, rows, CustomIDProfileFull).Disabled {
		t.Error("full should be enabled while medium is shown")
	}
}

func TestApplyAction(t *testing.T) {
	p := NewPages(10, 50)

	next, ok := applyAction(CustomIDStep, p)
	if !ok || next.Index != 10 {
		t.Errorf("step: Index = %d, ok = %v, want 10, true", next.Index, ok)
	}

	next, ok = applyAction(CustomIDEnd, p)
	if !ok || next.Index != 40 {
		t.Errorf("end: Index = %d, ok = %v, want 40, true", next.Index, ok)
	}

	next, ok = applyAction(CustomIDStart, next)
	if !ok || next.Index != 0 {
		t.Errorf("start after end: Index = %d, ok = %v, want 0, true", next.Index, ok)
	}

	next, ok = applyAction(CustomIDBack, p)
	if !ok || next.Index != 0 {
		t.Errorf("back at start: Index = %d, ok = %v, want 0, true", next.Index, ok)
	}

	if _, ok = applyAction("bogus", p); ok {
		t.Error("unknown custom id must not be recognized")
	}
}
