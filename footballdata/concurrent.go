package footballdata

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MaxConcurrency bounds the number of callers waiting on the queue at once
// during a fan-out search
const MaxConcurrency = 4

// GetMatchesForCompetitions searches several catalog competitions at once.
// Every request still goes through the client's queue, so the provider sees
// them one at a time; results are returned in the order of codes. One
// failing competition does not affect the others.
func (c *Client) GetMatchesForCompetitions(ctx context.Context, codes []string, opts MatchOptions) []CompetitionMatches {
	results := make([]CompetitionMatches, len(codes))
	if len(codes) == 0 {
		return results
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrency)

	for i, code := range codes {
		g.Go(func() error {
			result, err := c.GetMatchesByCompetition(ctx, code, opts)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Str("competition", code).
					Msg("Failed to fetch competition, continuing with the rest")
			}
			// Each goroutine owns its slot
			results[i] = CompetitionMatches{Code: code, Result: result, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
