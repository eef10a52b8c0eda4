// Package notify is the boundary for outbound user-facing messages.
// Delivery mechanics live behind the Dispatcher interface; callers treat
// a failed send as a countable outcome, never a fatal error.
package notify

import "context"

type Dispatcher interface {
	// Send delivers text to the chat identified by chatID. It returns an
	// error on failure or timeout; it never retries.
	Send(ctx context.Context, chatID int64, text string) error
}
