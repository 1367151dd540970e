package services

import "log"

// Notifier is the user-facing notification sink. Calls are fire-and-forget;
// the core never inspects a result.
type Notifier interface {
	Success(title, description string)
	Error(title, description string)
}

// LogNotifier writes notifications to the server log. The web client renders
// its own toasts from HTTP responses, so the server side only needs a trace.
type LogNotifier struct{}

func NewLogNotifier() LogNotifier {
	return LogNotifier{}
}

func (LogNotifier) Success(title, description string) {
	log.Printf("[NOTIFY] %s: %s", title, description)
}

func (LogNotifier) Error(title, description string) {
	log.Printf("[NOTIFY] ERROR %s: %s", title, description)
}
