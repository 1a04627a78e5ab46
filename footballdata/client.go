package footballdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/matchboard/scheduler"
)

// DefaultBaseURL is the football-data.org v4 endpoint used in direct mode
const DefaultBaseURL = "https://api.football-data.org/v4"

// Mode is the transport mode chosen at construction
type Mode string

const (
	// ModeDirect sends requests straight to the provider
	ModeDirect Mode = "direct"
	// ModeProxy sends requests to a proxy that forwards them to the provider
	ModeProxy Mode = "proxy"
)

// Client represents a football-data.org API client
type Client struct {
	baseURL    string
	mode       Mode
	token      string
	userAgent  string
	httpClient *http.Client
	scheduler  *scheduler.Scheduler
	logger     zerolog.Logger
}

// NewClient creates a new football-data client. A missing token is not an
// error: the client is created and every request fails with KindMissingToken.
func NewClient(token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	mode := ModeDirect
	baseURL := o.baseURL
	if o.proxyURL != "" {
		mode = ModeProxy
		baseURL = o.proxyURL
	}

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid football-data URL %q: %w", baseURL, err)
	}

	// Ensure baseURL doesn't have trailing slash
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	c := &Client{
		baseURL:    baseURL,
		mode:       mode,
		token:      token,
		userAgent:  o.userAgent,
		httpClient: httpClient,
		logger:     logger,
	}

	schedOpts := []scheduler.Option{
		scheduler.WithMinInterval(o.minInterval),
		scheduler.WithQuota(o.quotaPerMinute),
	}
	if o.recorder != nil {
		schedOpts = append(schedOpts, scheduler.WithRecorder(o.recorder))
	}
	c.scheduler = scheduler.New(c.execute, logger, schedOpts...)

	if token == "" {
		logger.Warn().Msg("football-data API token not configured, requests are disabled")
	} else {
		logger.Debug().
			Str("mode", string(mode)).
			Str("base_url", baseURL).
			Str("token", maskToken(token)).
			Msg("football-data client initialized")
	}

	return c, nil
}

// Mode returns the transport mode
func (c *Client) Mode() Mode {
	return c.mode
}

// BaseURL returns the URL every endpoint is appended to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasToken reports whether an API token was configured
func (c *Client) HasToken() bool {
	return c.token != ""
}

// execute performs one HTTP request. It is the scheduler's dispatcher and is
// never called concurrently for the same client.
func (c *Client) execute(ctx context.Context, req *scheduler.Request) ([]byte, error) {
	reqURL := c.baseURL + req.Endpoint
	if query := encodeQuery(req.Params); query != "" {
		reqURL += "?" + query
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errorFromTransport(fmt.Errorf("failed to create request: %w", err))
	}

	httpReq.Header.Set("X-Auth-Token", c.token)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().
		Str("request_id", req.ID).
		Str("url", reqURL).
		Str("mode", string(c.mode)).
		Msg("Making football-data API request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errorFromTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errorFromTransport(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := errorFromResponse(resp.StatusCode, body)
		c.logger.Debug().
			Str("request_id", req.ID).
			Int("status", resp.StatusCode).
			Str("kind", string(apiErr.Kind)).
			Msg("football-data API returned an error")
		return nil, apiErr
	}

	return body, nil
}

// fetch queues a request and decodes its JSON body into out
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values, out any) error {
	if c.token == "" {
		return newError(KindMissingToken, "API token not configured. Check the configuration file")
	}

	body, err := c.scheduler.Enqueue(endpoint, params).Wait(ctx)
	if err != nil {
		return errorFromTransport(err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		e := newError(KindDecodeError, "failed to parse response")
		e.Err = err
		return e
	}

	return nil
}

// GetMatchesByCompetition retrieves the matches of one catalog competition
func (c *Client) GetMatchesByCompetition(ctx context.Context, code string, opts MatchOptions) (*MatchResult, error) {
	competition, ok := LookupCompetition(code)
	if !ok {
		return nil, newError(KindInvalidCompetition, fmt.Sprintf("competition '%s' is not supported", code))
	}

	c.logger.Debug().
		Str("competition", code).
		Interface("options", opts).
		Msg("Fetching competition matches")

	var raw matchesResponse
	if err := c.fetch(ctx, "/competitions/"+code+"/matches", opts.values(false), &raw); err != nil {
		c.logger.Error().Err(err).Str("competition", code).Msg("Failed to fetch competition matches")
		return nil, err
	}

	result := normalizeMatches(raw, &competition)
	c.logger.Debug().
		Str("competition", code).
		Int("count", result.Count).
		Msg("Retrieved competition matches")

	return result, nil
}

// GetMatches retrieves matches across competitions
func (c *Client) GetMatches(ctx context.Context, opts MatchOptions) (*MatchResult, error) {
	c.logger.Debug().Interface("options", opts).Msg("Fetching matches")

	var raw matchesResponse
	if err := c.fetch(ctx, "/matches", opts.values(true), &raw); err != nil {
		c.logger.Error().Err(err).Msg("Failed to fetch matches")
		return nil, err
	}

	result := normalizeMatches(raw, nil)
	c.logger.Debug().Int("count", result.Count).Msg("Retrieved matches")

	return result, nil
}

// GetCompetitions retrieves every competition the provider exposes
func (c *Client) GetCompetitions(ctx context.Context) ([]CompetitionInfo, error) {
	var raw competitionsResponse
	if err := c.fetch(ctx, "/competitions", nil, &raw); err != nil {
		c.logger.Error().Err(err).Msg("Failed to fetch competitions")
		return nil, err
	}

	if raw.Competitions == nil {
		raw.Competitions = []CompetitionInfo{}
	}

	c.logger.Debug().Int("count", len(raw.Competitions)).Msg("Retrieved competitions")
	return raw.Competitions, nil
}

// GetCompetitionInfo retrieves the provider metadata of one catalog competition
func (c *Client) GetCompetitionInfo(ctx context.Context, code string) (*CompetitionInfo, error) {
	if !IsCompetitionSupported(code) {
		return nil, newError(KindInvalidCompetition, fmt.Sprintf("competition '%s' is not supported", code))
	}

	var info CompetitionInfo
	if err := c.fetch(ctx, "/competitions/"+code, nil, &info); err != nil {
		c.logger.Error().Err(err).Str("competition", code).Msg("Failed to fetch competition info")
		return nil, err
	}

	return &info, nil
}

// TestConnection probes the API with a minimal request. It never returns an
// error; failures are reported through ConnectionResult.
func (c *Client) TestConnection(ctx context.Context) ConnectionResult {
	var raw competitionsResponse
	err := c.fetch(ctx, "/competitions", url.Values{"limit": {"1"}}, &raw)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Connection test failed")

		result := ConnectionResult{
			Success: false,
			Error:   err.Error(),
			Mode:    c.mode,
		}
		if fdErr := asError(err); fdErr != nil {
			result.Error = fdErr.Message
			result.Kind = fdErr.Kind
			result.Suggestion = fdErr.Suggestion
		}
		return result
	}

	c.logger.Debug().Msg("Connection test succeeded")
	return ConnectionResult{
		Success:      true,
		Message:      "Connection OK",
		Mode:         c.mode,
		Competitions: len(raw.Competitions),
	}
}

// normalizeMatches converts a raw response into a MatchResult. A missing or
// empty match list is not an error.
func normalizeMatches(raw matchesResponse, competition *Competition) *MatchResult {
	if len(raw.Matches) == 0 {
		return &MatchResult{
			Matches:     []Match{},
			Count:       0,
			Competition: competition,
		}
	}

	count := raw.Count
	if count == 0 && raw.ResultSet != nil {
		count = raw.ResultSet.Count
	}
	if count == 0 {
		count = len(raw.Matches)
	}

	filters := raw.Filters
	if filters == nil {
		filters = map[string]any{}
	}

	return &MatchResult{
		Matches:     raw.Matches,
		Count:       count,
		Competition: competition,
		Filters:     filters,
	}
}

func asError(err error) *Error {
	var fdErr *Error
	if errors.As(err, &fdErr) {
		return fdErr
	}
	return nil
}

// maskToken keeps the first characters of a token for log output
func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:8] + "..."
}
