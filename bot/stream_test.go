package bot

import "testing"

func TestStreamParsing(t *testing.T) {
	s := NewStream("   <render  foo bar")
	s.TakeWhileWhitespace()

	if !s.StartsWith("<") {
		t.Fatal("stream should start with the prefix after whitespace")
	}
	s.Advance(1)

	if got := s.NextWord(); got != "render" {
		t.Errorf("NextWord = %q, want %q", got, "render")
	}
	if got := s.Rest(); got != "foo bar" {
		t.Errorf("Rest = %q, want %q", got, "foo bar")
	}
}

func TestStreamAdvanceClamps(t *testing.T) {
	s := NewStream("ab")
	s.Advance(10)
	if got := s.Rest(); got != "" {
		t.Errorf("Rest = %q, want empty", got)
	}
	if got := s.NextWord(); got != "" {
		t.Errorf("NextWord on empty = %q, want empty", got)
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()

	noop := func(name string) *PrefixCommand {
		return &PrefixCommand{Name: name}
	}

	render := noop("render")
	render.Aliases = []string{"r"}

	return NewRegistry(nil, []*PrefixCommand{noop("ping"), render, noop("queue")})
}

func TestParseInvoke(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name    string
		content string
		cmd     string
		num     *uint64
	}{
		{name: "plain", content: "ping", cmd: "ping"},
		{name: "uppercase", content: "PING", cmd: "ping"},
		{name: "alias", content: "r replay.osr", cmd: "render"},
		{name: "numeric suffix", content: "queue3", cmd: "queue", num: uptr(3)},
		{name: "unknown", content: "bogus"},
		{name: "digits only", content: "42"},
		{name: "empty", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, num := parseInvoke(NewStream(tt.content), r)

			if tt.cmd == "" {
				if cmd != nil {
					t.Fatalf("parseInvoke(%q) = %q, want none", tt.content, cmd.Name)
				}
				return
			}

			if cmd == nil || cmd.Name != tt.cmd {
				t.Fatalf("parseInvoke(%q) did not resolve %q", tt.content, tt.cmd)
			}

			switch {
			case tt.num == nil && num != nil:
				t.Errorf("unexpected numeric suffix %d", *num)
			case tt.num != nil && (num == nil || *num != *tt.num):
				t.Errorf("numeric suffix = %v, want %d", num, *tt.num)
			}
		})
	}
}

func uptr(n uint64) *uint64 { return &n }
