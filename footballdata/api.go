package footballdata

import (
	"context"
)

// API defines the interface for football-data operations
type API interface {
	// GetMatchesByCompetition retrieves the matches of one catalog competition
	GetMatchesByCompetition(ctx context.Context, code string, opts MatchOptions) (*MatchResult, error)

	// GetMatches retrieves matches across competitions
	GetMatches(ctx context.Context, opts MatchOptions) (*MatchResult, error)

	// GetCompetitions retrieves the provider's competition list
	GetCompetitions(ctx context.Context) ([]CompetitionInfo, error)

	// GetCompetitionInfo retrieves metadata for one catalog competition
	GetCompetitionInfo(ctx context.Context, code string) (*CompetitionInfo, error)

	// TestConnection probes the API and never fails
	TestConnection(ctx context.Context) ConnectionResult

	// GetMatchesForCompetitions searches several competitions at once
	GetMatchesForCompetitions(ctx context.Context, codes []string, opts MatchOptions) []CompetitionMatches
}

var _ API = (*Client)(nil)
