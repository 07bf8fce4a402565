package migrations

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Bootstrap applies pending migrations on its own goroutine while the server
// starts, and reports when the schema is ready to serve traffic.
type Bootstrap struct {
	migrator *Migrator
	log      zerolog.Logger

	mu    sync.RWMutex
	ready bool
	err   error
	done  chan struct{}
}

func NewBootstrap(migrator *Migrator, log zerolog.Logger) *Bootstrap {
	return &Bootstrap{migrator: migrator, log: log, done: make(chan struct{})}
}

// Start launches the migration run. It must be called at most once.
func (b *Bootstrap) Start(ctx context.Context) {
	go func() {
		defer close(b.done)

		n, err := b.migrator.Up(ctx)

		b.mu.Lock()
		b.ready = err == nil
		b.err = err
		b.mu.Unlock()

		if err != nil {
			b.log.Error().Err(err).Msg("schema bootstrap failed, api stays unavailable")
			return
		}
		b.log.Info().Int("applied", n).Msg("schema bootstrap complete")
	}()
}

// Ready reports whether the schema bootstrap finished successfully.
func (b *Bootstrap) Ready() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ready
}

// Err returns the bootstrap failure, if any.
func (b *Bootstrap) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.err
}

// Done is closed once the bootstrap run has finished, successfully or not.
func (b *Bootstrap) Done() <-chan struct{} {
	return b.done
}
