// Package service runs projections for the CLI and the HTTP server.
package service

import (
	"context"
	"encoding/json"

	"github.com/rpgo/fire-projector/internal/cache"
	"github.com/rpgo/fire-projector/internal/calculation"
	"github.com/rpgo/fire-projector/internal/domain"
)

// ProjectionService wraps the engine with report assembly and caching.
type ProjectionService struct {
	engine  *calculation.ProjectionEngine
	cache   cache.Cache
	logger  calculation.Logger
	display domain.DisplaySettings
}

// NewProjectionService creates a service. A nil cache disables caching and a
// nil logger discards log output.
func NewProjectionService(engine *calculation.ProjectionEngine, c cache.Cache, logger calculation.Logger, display domain.DisplaySettings) *ProjectionService {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &ProjectionService{engine: engine, cache: c, logger: logger, display: display}
}

// MaxYears is the engine's year bound.
func (s *ProjectionService) MaxYears() int {
	return s.engine.MaxYears
}

// Run projects params and assembles a report.
//
// When the engine stops early the partial report is returned together with
// the engine's error. Only runs that reached the target are cached.
func (s *ProjectionService) Run(ctx context.Context, params domain.ProjectionParameters) (*domain.ProjectionReport, error) {
	key := cache.Key(params, s.engine.MaxYears)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var report domain.ProjectionReport
		if err := json.Unmarshal([]byte(raw), &report); err == nil {
			s.logger.Debugf("cache hit %s", key)
			report.Display = s.display
			report.GeneratedAt = calculation.Now()
			return &report, nil
		}
		s.logger.Warnf("discarding unreadable cache entry %s", key)
	}

	result, err := s.engine.Project(ctx, params)
	if result == nil {
		return nil, err
	}
	report := &domain.ProjectionReport{
		Parameters:  params,
		Result:      *result,
		Summary:     calculation.Summarize(params, result),
		Assumptions: calculation.GenerateAssumptions(params),
		Display:     s.display,
		GeneratedAt: calculation.Now(),
	}
	if err != nil {
		s.logger.Warnf("projection stopped early (%s): %v", result.StopReason, err)
		return report, err
	}

	if result.StopReason == domain.StopTargetReached {
		s.store(ctx, key, report)
	}
	return report, nil
}

func (s *ProjectionService) store(ctx context.Context, key string, report *domain.ProjectionReport) {
	data, err := json.Marshal(report)
	if err != nil {
		s.logger.Warnf("not caching %s: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, string(data)); err != nil {
		s.logger.Warnf("cache store %s: %v", key, err)
	}
}
