package footballdata

import (
	"time"
)

// MatchStatus represents the lifecycle state of a match as reported by the provider
type MatchStatus string

const (
	// StatusScheduled is a match with a fixed date that has not started
	StatusScheduled MatchStatus = "SCHEDULED"
	// StatusTimed is a scheduled match with a confirmed kick-off time
	StatusTimed MatchStatus = "TIMED"
	// StatusInPlay is a match being played
	StatusInPlay MatchStatus = "IN_PLAY"
	// StatusPaused is a match at half time
	StatusPaused MatchStatus = "PAUSED"
	// StatusFinished is a completed match
	StatusFinished MatchStatus = "FINISHED"
	// StatusPostponed is a match moved to a later date
	StatusPostponed MatchStatus = "POSTPONED"
	// StatusSuspended is an interrupted match
	StatusSuspended MatchStatus = "SUSPENDED"
	// StatusCancelled is a match that will not be played
	StatusCancelled MatchStatus = "CANCELLED"
)

// IsLive reports whether the match is currently being played
func (s MatchStatus) IsLive() bool {
	return s == StatusInPlay || s == StatusPaused
}

// Area is the country or region of a competition
type Area struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Code string `json:"code,omitempty" yaml:"code,omitempty"`
	Flag string `json:"flag,omitempty" yaml:"flag,omitempty"`
}

// Season describes one season of a competition
type Season struct {
	ID              int    `json:"id" yaml:"id"`
	StartDate       string `json:"startDate" yaml:"startDate"`
	EndDate         string `json:"endDate" yaml:"endDate"`
	CurrentMatchday *int   `json:"currentMatchday,omitempty" yaml:"currentMatchday,omitempty"`
	Winner          *Team  `json:"winner,omitempty" yaml:"winner,omitempty"`
}

// Team is a participant of a match
type Team struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	ShortName string `json:"shortName,omitempty" yaml:"shortName,omitempty"`
	TLA       string `json:"tla,omitempty" yaml:"tla,omitempty"`
	Crest     string `json:"crest,omitempty" yaml:"crest,omitempty"`
}

// DisplayName returns the short name when available
func (t Team) DisplayName() string {
	if t.ShortName != "" {
		return t.ShortName
	}
	if t.Name != "" {
		return t.Name
	}
	return t.TLA
}

// Goals holds a home/away pair; nil means not yet known
type Goals struct {
	Home *int `json:"home" yaml:"home"`
	Away *int `json:"away" yaml:"away"`
}

// Complete reports whether both sides are known
func (g Goals) Complete() bool {
	return g.Home != nil && g.Away != nil
}

// Score is the provider's score block for a match
type Score struct {
	Winner   string `json:"winner,omitempty" yaml:"winner,omitempty"`
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`
	FullTime Goals  `json:"fullTime" yaml:"fullTime"`
	HalfTime Goals  `json:"halfTime" yaml:"halfTime"`
}

// CompetitionRef is the competition summary embedded in a match
type CompetitionRef struct {
	ID     int    `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Code   string `json:"code" yaml:"code"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Emblem string `json:"emblem,omitempty" yaml:"emblem,omitempty"`
}

// Match is a single match record
type Match struct {
	ID          int            `json:"id" yaml:"id"`
	UTCDate     time.Time      `json:"utcDate" yaml:"utcDate"`
	Status      MatchStatus    `json:"status" yaml:"status"`
	Matchday    *int           `json:"matchday,omitempty" yaml:"matchday,omitempty"`
	Stage       string         `json:"stage,omitempty" yaml:"stage,omitempty"`
	Group       string         `json:"group,omitempty" yaml:"group,omitempty"`
	LastUpdated *time.Time     `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
	Area        *Area          `json:"area,omitempty" yaml:"area,omitempty"`
	Competition CompetitionRef `json:"competition" yaml:"competition"`
	Season      *Season        `json:"season,omitempty" yaml:"season,omitempty"`
	HomeTeam    Team           `json:"homeTeam" yaml:"homeTeam"`
	AwayTeam    Team           `json:"awayTeam" yaml:"awayTeam"`
	Score       Score          `json:"score" yaml:"score"`
}

// MatchResult is the normalized response of the match search operations.
// Matches is never nil.
type MatchResult struct {
	Matches     []Match        `json:"matches" yaml:"matches"`
	Count       int            `json:"count" yaml:"count"`
	Competition *Competition   `json:"competition,omitempty" yaml:"competition,omitempty"`
	Filters     map[string]any `json:"filters,omitempty" yaml:"filters,omitempty"`
}

// CompetitionInfo is the provider's metadata for a competition
type CompetitionInfo struct {
	ID                       int      `json:"id" yaml:"id"`
	Area                     *Area    `json:"area,omitempty" yaml:"area,omitempty"`
	Name                     string   `json:"name" yaml:"name"`
	Code                     string   `json:"code" yaml:"code"`
	Type                     string   `json:"type,omitempty" yaml:"type,omitempty"`
	Emblem                   string   `json:"emblem,omitempty" yaml:"emblem,omitempty"`
	Plan                     string   `json:"plan,omitempty" yaml:"plan,omitempty"`
	CurrentSeason            *Season  `json:"currentSeason,omitempty" yaml:"currentSeason,omitempty"`
	Seasons                  []Season `json:"seasons,omitempty" yaml:"seasons,omitempty"`
	NumberOfAvailableSeasons int      `json:"numberOfAvailableSeasons,omitempty" yaml:"numberOfAvailableSeasons,omitempty"`
	LastUpdated              string   `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
}

// matchesResponse is the raw body of the match endpoints
type matchesResponse struct {
	Count     int            `json:"count"`
	Filters   map[string]any `json:"filters"`
	Matches   []Match        `json:"matches"`
	ResultSet *struct {
		Count int `json:"count"`
	} `json:"resultSet"`
}

// competitionsResponse is the raw body of /competitions
type competitionsResponse struct {
	Count        int               `json:"count"`
	Competitions []CompetitionInfo `json:"competitions"`
}

// ConnectionResult is the outcome of TestConnection. It is returned for both
// success and failure.
type ConnectionResult struct {
	Success      bool        `json:"success" yaml:"success"`
	Message      string      `json:"message,omitempty" yaml:"message,omitempty"`
	Error        string      `json:"error,omitempty" yaml:"error,omitempty"`
	Kind         Kind        `json:"kind,omitempty" yaml:"kind,omitempty"`
	Mode         Mode        `json:"mode" yaml:"mode"`
	Suggestion   *Suggestion `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Competitions int         `json:"competitions,omitempty" yaml:"competitions,omitempty"`
}

// CompetitionMatches is the per-competition outcome of a fan-out search
type CompetitionMatches struct {
	Code   string
	Result *MatchResult
	Err    error
}
