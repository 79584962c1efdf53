package prodsync

// Event is a notification produced by the pipeline for whatever UI
// surfaces are listening. Delivery is fire-and-forget: the pipeline
// never waits on a listener, and a missing or failing listener must
// not stall or fail a run.
type Event interface {
	event()
}

// StatusEvent reports the pipeline's current stage.
type StatusEvent struct {
	Current  string `json:"current"`
	Captured int    `json:"captured,omitempty"`
}

// LogEvent carries a free-form log line.
type LogEvent struct {
	Message string `json:"message"`
}

// ResultEvent is the terminal event of a run. Exactly one of Data and
// Err is set; no partial results are emitted on failure.
type ResultEvent struct {
	Data any
	Err  error
}

func (StatusEvent) event() {}
func (LogEvent) event()    {}
func (ResultEvent) event() {}

// Notifier receives pipeline events. Production implementations route
// events to a UI transport; test implementations collect them for
// assertions.
type Notifier interface {
	Notify(event Event)
}

// NopNotifier discards all events.
type NopNotifier struct{}

// Notify discards the event.
func (NopNotifier) Notify(Event) {}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Event)

// Notify calls the wrapped function.
func (f NotifierFunc) Notify(event Event) { f(event) }
