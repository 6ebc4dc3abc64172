// Package bot owns the gateway session: command registry, policy checks,
// guild config cache, and the event dispatcher.
package bot

import (
	"strings"
	"unicode"
)

// Stream is a cursor over message content for prefix and command parsing.
type Stream struct {
	src string
	pos int
}

func NewStream(src string) *Stream {
	return &Stream{src: src}
}

// TakeWhileWhitespace advances past leading whitespace.
func (s *Stream) TakeWhileWhitespace() {
	for s.pos < len(s.src) {
		r := rune(s.src[s.pos])
		if !unicode.IsSpace(r) {
			break
		}
		s.pos++
	}
}

// StartsWith reports whether the remaining content begins with prefix.
func (s *Stream) StartsWith(prefix string) bool {
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

// Advance moves the cursor forward by n bytes, clamped to the end.
func (s *Stream) Advance(n int) {
	s.pos += n
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}
}

// NextWord consumes and returns the next whitespace-delimited word, then
// skips the whitespace after it.
func (s *Stream) NextWord() string {
	s.TakeWhileWhitespace()

	start := s.pos
	for s.pos < len(s.src) && !unicode.IsSpace(rune(s.src[s.pos])) {
		s.pos++
	}
	word := s.src[start:s.pos]

	s.TakeWhileWhitespace()

	return word
}

// Rest returns the unconsumed remainder.
func (s *Stream) Rest() string {
	return s.src[s.pos:]
}
