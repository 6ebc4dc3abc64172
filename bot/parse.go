package bot

import (
	"strconv"
	"strings"
	"unicode"
)

// Args carries what remains of a prefix invocation after the command name.
type Args struct {
	// Rest is the text following the command name.
	Rest string
	// Num is the numeric suffix of the invocation, e.g. `queue3` sets 3.
	Num *uint64
}

// parseInvoke consumes the command word from the stream and resolves it in
// the registry. A trailing number on an otherwise unknown word is split
// off and retried, so `render2` resolves like `render 2`.
func parseInvoke(stream *Stream, registry *Registry) (*PrefixCommand, *uint64) {
	word := strings.ToLower(stream.NextWord())
	if word == "" {
		return nil, nil
	}

	if cmd := registry.Prefix(word); cmd != nil {
		return cmd, nil
	}

	base := strings.TrimRightFunc(word, unicode.IsDigit)
	if base == word || base == "" {
		return nil, nil
	}

	cmd := registry.Prefix(base)
	if cmd == nil {
		return nil, nil
	}

	num, err := strconv.ParseUint(word[len(base):], 10, 64)
	if err != nil {
		return nil, nil
	}

	return cmd, &num
}
