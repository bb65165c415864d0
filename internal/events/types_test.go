package events

import "testing"

func TestEventChanged(t *testing.T) {
	tests := []struct {
		op   Op
		want bool
	}{
		{OpCache, true},
		{OpFetch, true},
		{OpAdd, true},
		{OpUpdate, true},
		{OpDelete, true},
		{OpSync, true},
		{OpState, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			ev := Event{Type: EventCollectionChanged, Op: tt.op}
			if got := ev.Changed(); got != tt.want {
				t.Errorf("Changed() = %v, want %v", got, tt.want)
			}
		})
	}
}
