package bot

import (
	"reflect"
	"testing"
)

func slashNamed(name string) *SlashCommand {
	return &SlashCommand{Name: name}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry(
		[]*SlashCommand{slashNamed("ping"), slashNamed("render")},
		[]*PrefixCommand{{Name: "help", Aliases: []string{"h"}}},
	)

	if r.Slash("ping") == nil {
		t.Error("slash lookup failed for ping")
	}
	if r.Slash("nope") != nil {
		t.Error("slash lookup returned a command for an unknown name")
	}
	if r.Prefix("help") == nil || r.Prefix("h") == nil {
		t.Error("prefix lookup must resolve name and alias")
	}
	if r.Prefix("help") != r.Prefix("h") {
		t.Error("alias must resolve to the same command")
	}
}

func TestRegistryDescendants(t *testing.T) {
	r := NewRegistry([]*SlashCommand{
		slashNamed("skin"),
		slashNamed("skinlist"),
		slashNamed("serverconfig"),
		slashNamed("ping"),
	}, nil)

	if got := r.Descendants("skin"); !reflect.DeepEqual(got, []string{"skin", "skinlist"}) {
		t.Errorf("Descendants(skin) = %v", got)
	}
	if got := r.Descendants("s"); !reflect.DeepEqual(got, []string{"serverconfig", "skin", "skinlist"}) {
		t.Errorf("Descendants(s) = %v", got)
	}
	if got := r.Descendants("x"); got != nil {
		t.Errorf("Descendants(x) = %v, want none", got)
	}
	if got := r.Names(); !reflect.DeepEqual(got, []string{"ping", "serverconfig", "skin", "skinlist"}) {
		t.Errorf("Names = %v", got)
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate slash name must panic")
		}
	}()

	NewRegistry([]*SlashCommand{slashNamed("ping"), slashNamed("ping")}, nil)
}

func TestCommandFlags(t *testing.T) {
	f := FlagAuthority | FlagEphemeral
	if !f.Authority() || !f.Ephemeral() || f.OnlyOwner() || f.OnlyGuilds() {
		t.Error("flag accessors disagree with the set bits")
	}
	if !f.Defer() {
		t.Error("Defer should hold unless FlagSkipDefer is set")
	}
	if (f | FlagSkipDefer).Defer() {
		t.Error("FlagSkipDefer must disable Defer")
	}
}

func TestCommandCounter(t *testing.T) {
	c := NewCommandCounter()
	c.Inc("ping")
	c.Inc("render")
	c.Inc("render")

	snap := c.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Snapshot has %d entries, want 2", len(snap))
	}
	if snap[0].Name != "render" || snap[0].Count != 2 {
		t.Errorf("first entry = %+v, want render:2", snap[0])
	}
	if snap[1].Name != "ping" || snap[1].Count != 1 {
		t.Errorf("second entry = %+v, want ping:1", snap[1])
	}
}
