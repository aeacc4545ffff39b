package volume

// Observer is told about structural changes of a Mutable buffer. Calls are
// made synchronously on the writing goroutine, after the change is committed.
type Observer interface {
	// Grew reports a backing rebuilt at a wider slot size.
	Grew(fromBits, toBits uint8)
	// Promoted reports a switch from the local to the global palette that
	// remapped the ids of that many cells.
	Promoted(cells int)
}

type nopObserver struct{}

func (nopObserver) Grew(uint8, uint8) {}
func (nopObserver) Promoted(int)      {}

// Option configures a Mutable buffer.
type Option func(*Mutable)

// WithObserver reports growth events to o.
func WithObserver(o Observer) Option {
	return func(m *Mutable) {
		if o != nil {
			m.observer = o
		}
	}
}
