package checker

// Subscriber handles monitor event subscriptions.
type Subscriber struct {
	done                  chan struct{}
	startedHandler        func(MonitorStarted)
	checkCompletedHandler func(CheckCompleted)
	statusChangedHandler  func(StatusChanged)
	shutdownHandler       func(MonitorShutdown)
}

// OnMonitorStarted sets the handler for MonitorStarted events
func OnMonitorStarted(fn func(MonitorStarted)) func(*Subscriber) {
	return func(s *Subscriber) { s.startedHandler = fn }
}

// OnCheckCompleted sets the handler for CheckCompleted events
func OnCheckCompleted(fn func(CheckCompleted)) func(*Subscriber) {
	return func(s *Subscriber) { s.checkCompletedHandler = fn }
}

// OnStatusChanged sets the handler for StatusChanged events
func OnStatusChanged(fn func(StatusChanged)) func(*Subscriber) {
	return func(s *Subscriber) { s.statusChangedHandler = fn }
}

// OnMonitorShutdown sets the handler for MonitorShutdown events
func OnMonitorShutdown(fn func(MonitorShutdown)) func(*Subscriber) {
	return func(s *Subscriber) { s.shutdownHandler = fn }
}

// NewSubscriber creates a Subscriber with the given options and starts the
// dispatch loop. Returns a closer function that waits until every event has
// been handled; use defer closer() right after subscribing.
//
// The subscriber processes events until the events channel closes, then the
// closer function confirms all processing is complete.
func NewSubscriber(events <-chan Event, opts ...func(*Subscriber)) func() {
	s := &Subscriber{
		done:                  make(chan struct{}),
		startedHandler:        func(MonitorStarted) {},  // nop by default
		checkCompletedHandler: func(CheckCompleted) {},  // nop by default
		statusChangedHandler:  func(StatusChanged) {},   // nop by default
		shutdownHandler:       func(MonitorShutdown) {}, // nop by default
	}

	for _, opt := range opts {
		opt(s)
	}

	// Start the dispatch loop immediately
	go func() {
		defer close(s.done)
		for ev := range events {
			switch e := ev.(type) {
			case MonitorStarted:
				s.startedHandler(e)
			case CheckCompleted:
				s.checkCompletedHandler(e)
			case StatusChanged:
				s.statusChangedHandler(e)
			case MonitorShutdown:
				s.shutdownHandler(e)
			}
		}
	}()

	return func() {
		<-s.done
	}
}
