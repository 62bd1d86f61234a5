package internal

type Batcher struct {
	// each nested batch increases the depth by 1
	// if depth > 0, notifications are held until the outermost batch is complete
	depth int

	// a notification was requested while batching
	pending bool
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth: 0,
	}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

// Defer records a notification to run when the outermost batch completes.
func (b *Batcher) Defer() {
	b.pending = true
}

func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 && b.pending {
			b.pending = false
			if onComplete != nil {
				onComplete()
			}
		}
	}()

	fn()
}
