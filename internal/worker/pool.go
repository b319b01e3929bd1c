// Package worker provides background processing for build history jobs.
package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/medley-labs/medley/internal/core/domain"
	"github.com/medley-labs/medley/internal/core/ports"
)

// Pool records completed builds off the request path. A dropped record only
// loses a history row, never the playlist itself.
type Pool struct {
	repo ports.BuildRepository
	jobs chan domain.BuildRecord
	wg   sync.WaitGroup
}

// NewPool creates a worker pool with the given queue size.
func NewPool(repo ports.BuildRepository, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{repo: repo, jobs: make(chan domain.BuildRecord, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for rec := range p.jobs {
				p.process(rec)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a record without blocking.
func (p *Pool) Submit(rec domain.BuildRecord) {
	select {
	case p.jobs <- rec:
	default:
		log.Warn().Str("build_id", rec.ID).Msg("history queue full, dropping record")
	}
}

func (p *Pool) process(rec domain.BuildRecord) {
	if err := p.repo.Record(context.Background(), rec); err != nil {
		log.Warn().Err(err).Str("build_id", rec.ID).Msg("failed to record build")
		return
	}
	log.Debug().Str("build_id", rec.ID).Str("source", rec.Source).Msg("build recorded")
}
