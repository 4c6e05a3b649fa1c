package dispatcher

import "sync/atomic"

// -----------------------------------------------------------------------------

// ProcessingGate admits one command at a time. Callers that find it busy are
// turned away; nothing waits on it.
type ProcessingGate struct {
	busy atomic.Bool
}

func NewProcessingGate() *ProcessingGate {
	return &ProcessingGate{}
}

// Busy reports whether a command currently holds the gate.
func (g *ProcessingGate) Busy() bool {
	return g.busy.Load()
}

// TryEnter takes the gate if it is idle. It never blocks.
func (g *ProcessingGate) TryEnter() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Leave releases the gate.
func (g *ProcessingGate) Leave() {
	g.busy.Store(false)
}
