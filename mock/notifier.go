package mock

import (
	"sync"

	"github.com/prodsync/prodsync"
)

var _ prodsync.Notifier = (*Notifier)(nil)

// Notifier records events for assertions. Safe for concurrent use.
type Notifier struct {
	mu     sync.Mutex
	events []prodsync.Event
}

func (n *Notifier) Notify(event prodsync.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

// Events returns a copy of the recorded events in order.
func (n *Notifier) Events() []prodsync.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]prodsync.Event(nil), n.events...)
}

// Results returns only the recorded ResultEvents.
func (n *Notifier) Results() []prodsync.ResultEvent {
	var results []prodsync.ResultEvent
	for _, e := range n.Events() {
		if r, ok := e.(prodsync.ResultEvent); ok {
			results = append(results, r)
		}
	}
	return results
}

// Logs returns the messages of recorded LogEvents.
func (n *Notifier) Logs() []string {
	var logs []string
	for _, e := range n.Events() {
		if l, ok := e.(prodsync.LogEvent); ok {
			logs = append(logs, l.Message)
		}
	}
	return logs
}
