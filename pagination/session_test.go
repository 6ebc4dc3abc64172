package pagination

import (
	"testing"
	"time"
)

func newTestSession(author string) *Session {
	return &Session{
		author:    author,
		channelID: "chan-1",
		messageID: "msg-1",
		pages:     Pages{Index: 10, LastIndex: 40, PerPage: 10},
		kind:      KindDefault,
		reset:     make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

func TestPressNonAuthorRejected(t *testing.T) {
	sess := newTestSession("author")

	if got := sess.press("intruder", CustomIDStep); got != pressDenied {
		t.Fatalf("press = %d, want pressDenied", got)
	}
	if sess.pages.Index != 10 {
		t.Errorf("Index = %d, want unchanged 10", sess.pages.Index)
	}
	if len(sess.reset) != 0 {
		t.Error("timeout was reset by a non-author press")
	}
}

func TestPressAuthorMutatesPages(t *testing.T) {
	tests := []struct {
		name     string
		customID string
		result   pressResult
		index    int
	}{
		{name: "step forward", customID: CustomIDStep, result: pressUpdated, index: 20},
		{name: "step back", customID: CustomIDBack, result: pressUpdated, index: 0},
		{name: "jump start", customID: CustomIDStart, result: pressUpdated, index: 0},
		{name: "jump end", customID: CustomIDEnd, result: pressUpdated, index: 40},
		{name: "custom opens modal", customID: CustomIDCustom, result: pressModal, index: 10},
		{name: "unknown id", customID: "bogus", result: pressUnknown, index: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newTestSession("author")

			if got := sess.press("author", tt.customID); got != tt.result {
				t.Fatalf("press = %d, want %d", got, tt.result)
			}
			if sess.pages.Index != tt.index {
				t.Errorf("Index = %d, want %d", sess.pages.Index, tt.index)
			}
			if len(sess.reset) != 1 {
				t.Error("author press did not reset the timeout")
			}
		})
	}
}

func TestJump(t *testing.T) {
	tests := []struct {
		name   string
		user   string
		value  string
		result pressResult
		index  int
	}{
		{name: "valid page", user: "author", value: "3", result: pressUpdated, index: 20},
		{name: "clamped high", user: "author", value: "99", result: pressUpdated, index: 40},
		{name: "clamped low", user: "author", value: "0", result: pressUpdated, index: 0},
		{name: "not a number", user: "author", value: "abc", result: pressInvalid, index: 10},
		{name: "non-author", user: "intruder", value: "3", result: pressDenied, index: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newTestSession("author")

			if got := sess.jump(tt.user, tt.value); got != tt.result {
				t.Fatalf("jump = %d, want %d", got, tt.result)
			}
			if sess.pages.Index != tt.index {
				t.Errorf("Index = %d, want %d", sess.pages.Index, tt.index)
			}
		})
	}
}

func TestResetTimeoutAfterClose(t *testing.T) {
	sess := newTestSession("author")

	sess.close()
	sess.close()

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("resetTimeout after close panicked: %v", r)
		}
	}()
	sess.resetTimeout()
	sess.resetTimeout()
}

func TestCloseStopsTimeoutLoop(t *testing.T) {
	m := NewManager()
	m.timeout = time.Hour

	sess := newTestSession("author")
	m.sessions[sess.messageID] = sess

	stopped := make(chan struct{})
	go func() {
		m.timeoutLoop(nil, sess)
		close(stopped)
	}()

	m.Close(sess.messageID)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("timeout loop did not stop after Close")
	}

	if m.get(sess.messageID) != nil {
		t.Error("session still registered after Close")
	}
}

func TestRemovedSessionIsGone(t *testing.T) {
	m := NewManager()
	sess := newTestSession("author")
	m.sessions[sess.messageID] = sess

	if !m.remove(sess.messageID) {
		t.Fatal("first remove reported the session absent")
	}
	if m.remove(sess.messageID) {
		t.Error("second remove reported the session present")
	}
	if m.get(sess.messageID) != nil {
		t.Error("get returned a removed session")
	}
}
