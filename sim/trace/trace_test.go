package trace

import (
	"testing"
)

func TestSimulationTrace_Emit_AppendsWhenRecording(t *testing.T) {
	// GIVEN a trace configured for events
	st := NewSimulationTrace(TraceLevelEvents)

	// WHEN an event is emitted
	st.Emit(Event{Kind: CacheMiss, Clock: 1000, Sector: 42})

	// THEN the trace contains one event with correct data
	if len(st.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(st.Events))
	}
	if st.Events[0].Sector != 42 || st.Events[0].Kind != CacheMiss {
		t.Errorf("unexpected event %+v", st.Events[0])
	}
}

func TestSimulationTrace_LevelNone_DropsEvents(t *testing.T) {
	// GIVEN a trace with recording disabled
	st := NewSimulationTrace(TraceLevelNone)

	// WHEN events are emitted
	st.Emit(Event{Kind: CacheHit, Sector: 1})
	st.Emit(Event{Kind: QuantumTick, Sector: -1})

	// THEN nothing is kept
	if len(st.Events) != 0 {
		t.Errorf("expected no events, got %d", len(st.Events))
	}
}

func TestSimulationTrace_OfKind_PreservesOrder(t *testing.T) {
	st := NewSimulationTrace(TraceLevelEvents)
	st.Emit(Event{Kind: ProcessWoken, Process: "p1"})
	st.Emit(Event{Kind: CacheHit, Sector: 3})
	st.Emit(Event{Kind: ProcessWoken, Process: "p2"})

	woken := st.OfKind(ProcessWoken)
	if len(woken) != 2 {
		t.Fatalf("expected 2 woken events, got %d", len(woken))
	}
	if woken[0].Process != "p1" || woken[1].Process != "p2" {
		t.Errorf("woken order not preserved: %v", woken)
	}
}

func TestStamped_OverwritesClock(t *testing.T) {
	// GIVEN a stamped sink over a recorder, with a clock at 77
	st := NewSimulationTrace(TraceLevelEvents)
	clock := int64(77)
	sink := Stamped(func() int64 { return clock }, st)

	// WHEN events are emitted before and after the clock moves
	sink.Emit(Event{Kind: CacheHit, Clock: 5})
	clock = 90
	sink.Emit(Event{Kind: CacheMiss})

	// THEN each carries the clock at emission time
	if st.Events[0].Clock != 77 || st.Events[1].Clock != 90 {
		t.Errorf("clocks = %d, %d; want 77, 90", st.Events[0].Clock, st.Events[1].Clock)
	}
}

func TestMultiSink_FansOut(t *testing.T) {
	a := NewSimulationTrace(TraceLevelEvents)
	b := NewCounter()
	MultiSink{a, b, Discard}.Emit(Event{Kind: Eviction, Sector: 9, Segment: SegmentLeft})

	if len(a.Events) != 1 {
		t.Errorf("recorder got %d events, want 1", len(a.Events))
	}
	if b.Count(Eviction) != 1 {
		t.Errorf("counter got %d evictions, want 1", b.Count(Eviction))
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"events", true},
		{"", true},
		{"decisions", false},
		{"EVENTS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}

func TestKind_String(t *testing.T) {
	if got := OperationStarted.String(); got != "operation-started" {
		t.Errorf("OperationStarted.String() = %q", got)
	}
	if got := Kind(99).String(); got != "kind(99)" {
		t.Errorf("Kind(99).String() = %q", got)
	}
}

func TestEvent_String_IncludesFields(t *testing.T) {
	e := Event{Kind: ProcessBlocked, Clock: 12, Process: "p3", Sector: 2300}
	want := "[0000012] process-blocked process=p3 sector=2300"
	if got := e.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
