package service

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type engineRunner interface {
	Run(ctx context.Context)
}

// SimulatorService owns the background loops: the engine tickers and the
// journal writer. Stop it by cancelling ctx.
type SimulatorService struct {
	engine  engineRunner
	journal *JournalWriter
}

func NewSimulatorService(engine engineRunner, journal *JournalWriter) *SimulatorService {
	return &SimulatorService{engine: engine, journal: journal}
}

// Run blocks until ctx is cancelled and both loops have returned.
func (s *SimulatorService) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.engine.Run(ctx)
		return nil
	})
	if s.journal != nil {
		g.Go(func() error { return s.journal.Run(ctx) })
	}
	return g.Wait()
}
