package gotdict

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// translateEntries fills KoreanDefinition and KoreanExample for every
// non-empty English field. Each goroutine writes a distinct field, and all
// of them finish before this returns.
func (s *Service) translateEntries(ctx context.Context, entries []WordEntry) {
	var g errgroup.Group
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	for i := range entries {
		for j := range entries[i].Meanings {
			defs := entries[i].Meanings[j].Definitions
			for k := range defs {
				d := &defs[k]
				if d.Definition != "" {
					g.Go(func() error {
						d.KoreanDefinition = s.translator.Translate(ctx, d.Definition)
						return nil
					})
				}
				if d.Example != "" {
					g.Go(func() error {
						d.KoreanExample = s.translator.Translate(ctx, d.Example)
						return nil
					})
				}
			}
		}
	}

	_ = g.Wait()
}
