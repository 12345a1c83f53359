package splitter

import "sync/atomic"

// Token is a shared cooperative cancellation flag. Long-running calls
// receive it explicitly and poll it at fixed points; the in-flight unit
// of work still completes before a cancel is observed.
type Token struct {
	canceled atomic.Bool
}

// NewToken returns a fresh, uncanceled token.
func NewToken() *Token {
	return &Token{}
}

// Cancel requests cancellation. Safe to call from any goroutine.
func (t *Token) Cancel() {
	if t != nil {
		t.canceled.Store(true)
	}
}

// Canceled reports whether cancellation has been requested. A nil token
// never cancels.
func (t *Token) Canceled() bool {
	return t != nil && t.canceled.Load()
}
