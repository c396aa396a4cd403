package gx2

import "fmt"

// CorruptionError is the panic value raised when the pool detects a
// precondition violation: a second outstanding lease, an out-of-order
// free, a mismatched display-list buffer, and the other conditions listed
// in spec.md's error-handling design. These are programming defects, not
// recoverable runtime errors — the guest/GPU protocol has already been
// violated by the time one of these fires, so there is nothing meaningful
// left to propagate upward. Callers should not recover from this panic in
// production; tests that intentionally provoke a violation may recover it
// to assert on Message.
type CorruptionError struct {
	Message string
}

func (e *CorruptionError) Error() string {
	return "gx2: " + e.Message
}

// abortf logs the violation at Error level and panics with a
// [CorruptionError]. It never returns.
func (p *Pool) abortf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.logger().Error("command buffer pool invariant violated", "reason", msg)
	panic(&CorruptionError{Message: msg})
}

// assertInvariant aborts the pool if cond is false.
func (p *Pool) assertInvariant(cond bool, format string, args ...any) {
	if !cond {
		p.abortf(format, args...)
	}
}
