package snake

import "testing"

func TestInputBufferConsume(t *testing.T) {
	tests := []struct {
		name     string
		requests []Direction
		current  Direction
		want     Direction
	}{
		{"empty keeps heading", nil, DirRight, DirRight},
		{"turn accepted", []Direction{DirUp}, DirRight, DirUp},
		{"reversal dropped", []Direction{DirLeft}, DirRight, DirRight},
		{"last write wins", []Direction{DirUp, DirDown}, DirRight, DirDown},
		{"last write reversal", []Direction{DirUp, DirLeft}, DirRight, DirRight},
		{"same as heading", []Direction{DirRight}, DirRight, DirRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b InputBuffer
			for _, d := range tt.requests {
				b.SetRequested(d)
			}
			if got := b.Consume(tt.current); got != tt.want {
				t.Errorf("Consume(%s) = %s, want %s", tt.current, got, tt.want)
			}
			if _, ok := b.Pending(); ok {
				t.Error("slot should be empty after Consume")
			}
		})
	}
}

func TestInputBufferNeverReverses(t *testing.T) {
	all := []Direction{DirUp, DirDown, DirLeft, DirRight}
	for _, current := range all {
		for _, req := range all {
			var b InputBuffer
			b.SetRequested(req)
			if got := b.Consume(current); got.IsOpposite(current) {
				t.Errorf("Consume(%s) after %s returned reversal %s", current, req, got)
			}
		}
	}
}

func TestInputBufferClear(t *testing.T) {
	var b InputBuffer
	b.SetRequested(DirUp)
	b.Clear()
	if got := b.Consume(DirLeft); got != DirLeft {
		t.Errorf("Consume after Clear = %s, want left", got)
	}
}
