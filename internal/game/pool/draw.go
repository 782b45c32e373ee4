package pool

import "go.uber.org/zap"

// Draw removes one random present value of kind from p.
//
// Slots are sampled uniformly with src until a present one is found. The
// HasAny guard guarantees the loop terminates.
//
// Precondition: p and src must be non-nil.
// Postcondition: ok == false iff kind was exhausted before the call; otherwise
// exactly one slot transitioned from present to drawn.
func Draw(p *Pool, kind Kind, src Source) (value int, ok bool) {
	value, _, ok = drawSlot(p, kind, src)
	return value, ok
}

func drawSlot(p *Pool, kind Kind, src Source) (value, slot int, ok bool) {
	if !p.HasAny(kind) {
		return 0, 0, false
	}
	size := p.Size(kind)
	for {
		slot = src.Intn(size)
		if p.present(kind, slot) {
			value, _ = p.RemoveAt(kind, slot)
			return value, slot, true
		}
	}
}

// LoggedDrawer wraps a Source and logger so every draw is logged at debug level.
type LoggedDrawer struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedDrawer creates a LoggedDrawer.
//
// Precondition: src and logger must be non-nil.
func NewLoggedDrawer(src Source, logger *zap.Logger) *LoggedDrawer {
	return &LoggedDrawer{src: src, logger: logger}
}

// Source returns the randomness source the drawer samples with.
func (d *LoggedDrawer) Source() Source {
	return d.src
}

// Draw behaves like the package-level Draw and logs the outcome.
func (d *LoggedDrawer) Draw(p *Pool, kind Kind) (int, bool) {
	value, slot, ok := drawSlot(p, kind, d.src)
	if !ok {
		d.logger.Debug("pool exhausted", zap.Stringer("kind", kind))
		return 0, false
	}
	d.logger.Debug("number drawn",
		zap.Stringer("kind", kind),
		zap.Int("slot", slot),
		zap.Int("value", value),
		zap.Int("remaining", p.Remaining(kind)),
	)
	return value, true
}
