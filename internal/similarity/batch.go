// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/pkg/types"
)

// ScoreBatch scores each section against the same sources on a worker
// pool. Results are returned in section order. The first failing section
// aborts the batch and its error is returned.
func (s *Scorer) ScoreBatch(ctx context.Context, sections []string, sources []types.SourceText, opts ...ScoreOption) ([]types.SectionResult, error) {
	if len(sections) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(sections)))
	if err != nil {
		return nil, fmt.Errorf("creating scoring pool: %w", err)
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]types.SectionResult, len(sections))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for i, section := range sections {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			res, err := s.Score(ctx, section, sources, opts...)
			if err != nil {
				fail(fmt.Errorf("scoring section %d: %w", i, err))
				return
			}
			results[i] = types.SectionResult{SectionIndex: i, Result: res}
		})
		if submitErr != nil {
			wg.Done()
			fail(fmt.Errorf("submitting section %d: %w", i, submitErr))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	s.logger.Debug("batch scored", zap.Int("sections", len(sections)))
	return results, nil
}
