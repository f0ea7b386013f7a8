package progress

import "testing"

func TestDecideUnlock(t *testing.T) {
	tests := []struct {
		name       string
		current    Record
		gatingDone bool
		nextLocked bool
		hasNext    bool
		want       Decision
	}{
		{
			name:       "fires at 100% with gating done and next locked",
			current:    Record{Percent: 100},
			gatingDone: true,
			nextLocked: true,
			hasNext:    true,
			want:       Decision{Unlock: true, NextLessonID: 42},
		},
		{
			name:       "below 100% never fires",
			current:    Record{Percent: 99},
			gatingDone: true,
			nextLocked: true,
			hasNext:    true,
		},
		{
			name:       "pending activities hold the gate",
			current:    Record{Percent: 100},
			gatingDone: false,
			nextLocked: true,
			hasNext:    true,
		},
		{
			name:       "already unlocked next is a no-op",
			current:    Record{Percent: 100},
			gatingDone: true,
			nextLocked: false,
			hasNext:    true,
		},
		{
			name:       "last lesson has nothing to unlock",
			current:    Record{Percent: 100},
			gatingDone: true,
			nextLocked: true,
			hasNext:    false,
		},
		{
			name:       "zero progress does nothing",
			current:    Record{},
			gatingDone: true,
			nextLocked: true,
			hasNext:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecideUnlock(tt.current, tt.gatingDone, 42, tt.nextLocked, tt.hasNext)
			if got != tt.want {
				t.Errorf("DecideUnlock() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
