package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"newswire/wirenorm/internal/store"
)

const recomputePageSize = 200

// Recompute pages through every stored record and rewrites its supplier and
// category codes from stored content, applying current rules. First-ingestion
// transforms (JSON repair, HTML cleaning) are never re-run.
func Recompute(ctx context.Context, s *store.Store, p *Pipeline) (int64, error) {
	var updated int64
	var afterID int64

	for {
		page, err := s.FetchPage(ctx, afterID, recomputePageSize)
		if err != nil {
			return updated, fmt.Errorf("recompute: %w", err)
		}
		if len(page) == 0 {
			return updated, nil
		}

		for i := range page {
			rec := &page[i]
			supplier, codes := p.RecomputeCodes(rec.Content)
			if err := s.UpdateCategoryCodes(ctx, rec.ID, string(supplier), codes); err != nil {
				return updated, fmt.Errorf("recompute record %s: %w", rec.ExternalID, err)
			}
			updated++
		}
		afterID = page[len(page)-1].ID

		log.Debug().
			Int64("updated", updated).
			Int64("after_id", afterID).
			Msg("Recompute page complete")

		select {
		case <-ctx.Done():
			return updated, ctx.Err()
		default:
		}
	}
}
