package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables recording (events are still counted for the summary).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents records every emitted event.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Sink receives events as they are emitted by simulation components.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// Discard is a Sink that drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// MultiSink fans each event out to all of its sinks, in order.
type MultiSink []Sink

// Emit forwards e to every sink.
func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}

// Stamped returns a Sink that overwrites each event's Clock with now()
// before forwarding it. Components that do not own the clock emit through it.
func Stamped(now func() int64, next Sink) Sink {
	return SinkFunc(func(e Event) {
		e.Clock = now()
		next.Emit(e)
	})
}

// SimulationTrace collects events during a simulation run.
type SimulationTrace struct {
	Level  TraceLevel
	Events []Event
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(level TraceLevel) *SimulationTrace {
	return &SimulationTrace{
		Level:  level,
		Events: make([]Event, 0),
	}
}

// Emit appends e when the trace level records events.
func (st *SimulationTrace) Emit(e Event) {
	if st.Level != TraceLevelEvents {
		return
	}
	st.Events = append(st.Events, e)
}

// OfKind returns the recorded events of kind k, in emission order.
func (st *SimulationTrace) OfKind(k Kind) []Event {
	var out []Event
	for _, e := range st.Events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
