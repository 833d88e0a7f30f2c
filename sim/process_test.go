package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOperation(t *testing.T) {
	tests := []struct {
		in      string
		want    Operation
		wantErr bool
	}{
		{"read", OpRead, false},
		{"WRITE", OpWrite, false},
		{"r", OpRead, false},
		{"w", OpWrite, false},
		{"erase", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseOperation(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	// The error names the short aliases alongside the full names
	_, err := ParseOperation("erase")
	assert.ErrorContains(t, err, "read (r), write (w)")
}

func TestProcess_Latency(t *testing.T) {
	p := NewProcess("p", OpRead, 5)
	assert.Equal(t, StateReady, p.State)
	assert.Equal(t, int64(-1), p.Latency())

	p.DispatchedAt = 100
	p.CompletedAt = 140
	p.State = StateDone
	assert.Equal(t, int64(40), p.Latency())
	assert.Equal(t, "p(read 5, done)", p.String())
}
