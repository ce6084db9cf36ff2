package assets

import (
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// Bundle holds the outcome of loading a set of sprites.
// Missing entries are nil handles; callers draw fallback shapes for them.
type Bundle struct {
	sprites map[string]*Sprite
	failed  map[string]error
}

// Get returns the sprite for name, or nil if it failed or was never requested.
// Safe on a nil bundle.
func (b *Bundle) Get(name string) *Sprite {
	if b == nil {
		return nil
	}
	return b.sprites[name]
}

// Failed returns the names that did not load, sorted.
func (b *Bundle) Failed() []string {
	if b == nil {
		return nil
	}
	names := make([]string, 0, len(b.failed))
	for name := range b.failed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Err returns the load error recorded for name, if any.
func (b *Bundle) Err(name string) error {
	if b == nil {
		return nil
	}
	return b.failed[name]
}

// Len returns the number of sprites that loaded.
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}
	return len(b.sprites)
}

type loadResult struct {
	name   string
	sprite *Sprite
	err    error
}

// LoadBundle loads every name concurrently and returns once each one has
// either resolved or failed. A timeout of zero or less means no deadline
// beyond ctx. Individual failures are logged and recorded, never returned.
func LoadBundle(ctx context.Context, p Provider, names []string, timeout time.Duration, logger *log.Logger) *Bundle {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	b := &Bundle{
		sprites: make(map[string]*Sprite, len(names)),
		failed:  make(map[string]error),
	}

	// Buffered so late loaders never block after a deadline.
	results := make(chan loadResult, len(names))
	pending := make(map[string]bool, len(names))
	for _, name := range names {
		if pending[name] {
			continue
		}
		pending[name] = true

		go func(name string) {
			s, err := p.Load(ctx, name)
			results <- loadResult{name: name, sprite: s, err: err}
		}(name)
	}

	for len(pending) > 0 {
		select {
		case r := <-results:
			delete(pending, r.name)
			if r.err != nil {
				b.failed[r.name] = r.err
				continue
			}
			b.sprites[r.name] = r.sprite
		case <-ctx.Done():
			for name := range pending {
				b.failed[name] = ctx.Err()
			}
			pending = nil
		}
	}

	if logger != nil {
		for _, name := range b.Failed() {
			logger.Warn("asset failed to load", "name", name, "err", b.failed[name])
		}
		logger.Debug("assets loaded", "ok", len(b.sprites), "failed", len(b.failed))
	}

	return b
}
