package footballdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken    = "test-token-123456"
	testInterval = 20 * time.Millisecond
)

// recordedRequest captures what the provider received
type recordedRequest struct {
	Path     string
	Query    url.Values
	RawQuery string
	Header   http.Header
	At       time.Time
}

type fakeProvider struct {
	server *httptest.Server
	calls  atomic.Int32

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeProvider(t *testing.T, handler http.HandlerFunc) *fakeProvider {
	t.Helper()
	p := &fakeProvider{}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.calls.Add(1)
		p.mu.Lock()
		p.requests = append(p.requests, recordedRequest{
			Path:     r.URL.Path,
			Query:    r.URL.Query(),
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			At:       time.Now(),
		})
		p.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(p.server.Close)
	return p
}

func (p *fakeProvider) recorded() []recordedRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recordedRequest(nil), p.requests...)
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(baseURL), WithMinInterval(testInterval)}, opts...)
	client, err := NewClient(testToken, zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

const twoMatches = `{
	"filters": {"season": "2023"},
	"resultSet": {"count": 2},
	"matches": [
		{
			"id": 1,
			"utcDate": "2023-08-11T19:00:00Z",
			"status": "FINISHED",
			"matchday": 1,
			"homeTeam": {"id": 1, "name": "Burnley FC", "shortName": "Burnley"},
			"awayTeam": {"id": 2, "name": "Manchester City FC", "shortName": "Man City"},
			"score": {"winner": "AWAY_TEAM", "fullTime": {"home": 0, "away": 3}, "halfTime": {"home": 0, "away": 2}}
		},
		{
			"id": 2,
			"utcDate": "2023-08-12T12:30:00Z",
			"status": "SCHEDULED",
			"homeTeam": {"id": 3, "name": "Arsenal FC", "shortName": "Arsenal"},
			"awayTeam": {"id": 4, "name": "Nottingham Forest FC"},
			"score": {"fullTime": {"home": null, "away": null}}
		}
	]
}`

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name     string
		token    string
		opts     []Option
		wantErr  bool
		wantMode Mode
		wantURL  string
	}{
		{
			name:     "direct mode by default",
			token:    testToken,
			wantMode: ModeDirect,
			wantURL:  DefaultBaseURL,
		},
		{
			name:     "proxy mode",
			token:    testToken,
			opts:     []Option{WithProxy("http://localhost:3000/api/")},
			wantMode: ModeProxy,
			wantURL:  "http://localhost:3000/api",
		},
		{
			name:     "custom base URL",
			token:    testToken,
			opts:     []Option{WithBaseURL("http://example.test/v4/")},
			wantMode: ModeDirect,
			wantURL:  "http://example.test/v4",
		},
		{
			name:     "missing token is not an error",
			token:    "",
			wantMode: ModeDirect,
			wantURL:  DefaultBaseURL,
		},
		{
			name:    "invalid URL",
			token:   testToken,
			opts:    []Option{WithBaseURL("not a url")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.token, logger, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, client.Mode())
			assert.Equal(t, tt.wantURL, client.BaseURL())
			assert.Equal(t, tt.token != "", client.HasToken())
		})
	}
}

func TestClientOptions(t *testing.T) {
	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient(testToken, zerolog.Nop(), WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("no timeout by default", func(t *testing.T) {
		client, err := NewClient(testToken, zerolog.Nop())
		require.NoError(t, err)
		assert.Zero(t, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(testToken, zerolog.Nop(), WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("with min interval", func(t *testing.T) {
		client, err := NewClient(testToken, zerolog.Nop(), WithMinInterval(250*time.Millisecond))
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, client.scheduler.MinInterval())
	})
}

func TestGetMatchesByCompetition(t *testing.T) {
	provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(twoMatches))
	})
	client := newTestClient(t, provider.server.URL)

	result, err := client.GetMatchesByCompetition(context.Background(), "PL", MatchOptions{
		Season: "2023",
		Status: "FINISHED",
	})
	require.NoError(t, err)

	require.Len(t, result.Matches, 2)
	assert.Equal(t, 2, result.Count)
	require.NotNil(t, result.Competition)
	assert.Equal(t, "Premier League", result.Competition.Name)
	assert.Equal(t, "2023", result.Filters["season"])

	first := result.Matches[0]
	assert.Equal(t, StatusFinished, first.Status)
	assert.Equal(t, "Man City", first.AwayTeam.DisplayName())
	require.True(t, first.Score.FullTime.Complete())
	assert.Equal(t, 3, *first.Score.FullTime.Away)
	assert.False(t, result.Matches[1].Score.FullTime.Complete())

	reqs := provider.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/competitions/PL/matches", reqs[0].Path)
	assert.Equal(t, testToken, reqs[0].Header.Get("X-Auth-Token"))
	assert.Equal(t, "application/json", reqs[0].Header.Get("Accept"))
	assert.Equal(t, "2023", reqs[0].Query.Get("season"))
	assert.Equal(t, "FINISHED", reqs[0].Query.Get("status"))
	assert.Equal(t, "100", reqs[0].Query.Get("limit"))
	assert.NotContains(t, reqs[0].Query, "competitions")
}

func TestEmptyMatchListIsNotAnError(t *testing.T) {
	bodies := map[string]string{
		"missing matches field": `{"filters": {}}`,
		"empty matches":         `{"matches": [], "count": 0}`,
		"null matches":          `{"matches": null, "count": 5}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			client := newTestClient(t, provider.server.URL)

			result, err := client.GetMatches(context.Background(), MatchOptions{})
			require.NoError(t, err)
			require.NotNil(t, result.Matches)
			assert.Empty(t, result.Matches)
			assert.Equal(t, 0, result.Count)
			assert.Nil(t, result.Competition)

			byComp, err := client.GetMatchesByCompetition(context.Background(), "BSA", MatchOptions{})
			require.NoError(t, err)
			assert.Equal(t, []Match{}, byComp.Matches)
			assert.Equal(t, 0, byComp.Count)
			require.NotNil(t, byComp.Competition)
			assert.Equal(t, "BSA", byComp.Competition.Code)
		})
	}
}

func TestCountFallsBackToMatchLength(t *testing.T) {
	provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches": [{"id": 7, "status": "TIMED"}]}`))
	})
	client := newTestClient(t, provider.server.URL)

	result, err := client.GetMatches(context.Background(), MatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.NotNil(t, result.Filters)
}

func TestHTTPStatusClassification(t *testing.T) {
	tests := []struct {
		status  int
		kind    Kind
		message string
	}{
		{http.StatusBadRequest, KindInvalidRequest, "Invalid request parameters"},
		{http.StatusUnauthorized, KindInvalidToken, "Authentication token is invalid or expired"},
		{http.StatusForbidden, KindForbidden, "Access denied. Check the token permissions"},
		{http.StatusNotFound, KindNotFound, "Resource not found"},
		{http.StatusTooManyRequests, KindRateLimit, "Request limit exceeded. Try again in a few minutes"},
		{http.StatusInternalServerError, KindServerError, "Internal server error"},
		{http.StatusServiceUnavailable, KindServiceUnavailable, "Service temporarily unavailable"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]any{
					"message":   "provider says something else",
					"errorCode": 999,
				})
			})
			client := newTestClient(t, provider.server.URL)

			_, err := client.GetMatches(context.Background(), MatchOptions{})
			require.Error(t, err)

			var fdErr *Error
			require.ErrorAs(t, err, &fdErr)
			assert.Equal(t, tt.kind, fdErr.Kind)
			assert.Equal(t, tt.message, fdErr.Message)
			assert.Equal(t, tt.status, fdErr.StatusCode)
		})
	}
}

func TestUnmappedStatusUsesBody(t *testing.T) {
	t.Run("body message and code", func(t *testing.T) {
		provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusTeapot, map[string]any{
				"message":   "The resource you are looking for is restricted",
				"errorCode": 418,
			})
		})
		client := newTestClient(t, provider.server.URL)

		_, err := client.GetMatches(context.Background(), MatchOptions{})
		var fdErr *Error
		require.ErrorAs(t, err, &fdErr)
		assert.Equal(t, KindAPIError, fdErr.Kind)
		assert.Equal(t, "The resource you are looking for is restricted", fdErr.Message)
		assert.Equal(t, "418", fdErr.Code)
		assert.Equal(t, http.StatusTeapot, fdErr.StatusCode)
	})

	t.Run("no body", func(t *testing.T) {
		provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		client := newTestClient(t, provider.server.URL)

		_, err := client.GetMatches(context.Background(), MatchOptions{})
		var fdErr *Error
		require.ErrorAs(t, err, &fdErr)
		assert.Equal(t, KindAPIError, fdErr.Kind)
		assert.Equal(t, "HTTP 502: Bad Gateway", fdErr.Message)
	})
}

func TestInvalidCompetitionNeverReachesTransport(t *testing.T) {
	provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	client := newTestClient(t, provider.server.URL)

	_, err := client.GetMatchesByCompetition(context.Background(), "XYZ", MatchOptions{})
	assert.True(t, IsKind(err, KindInvalidCompetition))

	_, err = client.GetCompetitionInfo(context.Background(), "pl")
	assert.True(t, IsKind(err, KindInvalidCompetition))

	assert.Equal(t, int32(0), provider.calls.Load())
}

func TestMissingTokenFailsFast(t *testing.T) {
	provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	client, err := NewClient("", zerolog.Nop(), WithBaseURL(provider.server.URL))
	require.NoError(t, err)

	ctx := context.Background()

	_, err = client.GetMatches(ctx, MatchOptions{})
	assert.True(t, IsKind(err, KindMissingToken))

	_, err = client.GetMatchesByCompetition(ctx, "PL", MatchOptions{})
	assert.True(t, IsKind(err, KindMissingToken))

	_, err = client.GetCompetitions(ctx)
	assert.True(t, IsKind(err, KindMissingToken))

	_, err = client.GetCompetitionInfo(ctx, "PL")
	assert.True(t, IsKind(err, KindMissingToken))

	result := client.TestConnection(ctx)
	assert.False(t, result.Success)
	assert.Equal(t, KindMissingToken, result.Kind)
	assert.NotEmpty(t, result.Error)

	assert.Equal(t, int32(0), provider.calls.Load())
	assert.Equal(t, 0, client.scheduler.Len())
}

func TestTestConnection(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"count": 1, "competitions": [{"id": 2021, "name": "Premier League", "code": "PL"}]}`))
		})
		client := newTestClient(t, provider.server.URL)

		result := client.TestConnection(context.Background())
		assert.True(t, result.Success)
		assert.Equal(t, "Connection OK", result.Message)
		assert.Equal(t, ModeDirect, result.Mode)
		assert.Empty(t, result.Error)
		assert.Equal(t, 1, result.Competitions)

		reqs := provider.recorded()
		require.Len(t, reqs, 1)
		assert.Equal(t, "/competitions", reqs[0].Path)
		assert.Equal(t, "1", reqs[0].Query.Get("limit"))
	})

	t.Run("network failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		baseURL := server.URL
		server.Close()

		client := newTestClient(t, baseURL)
		result := client.TestConnection(context.Background())
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Error)
		assert.Equal(t, KindNetworkError, result.Kind)
		assert.Equal(t, ModeDirect, result.Mode)
	})

	t.Run("timeout through a proxy with cors in its path", func(t *testing.T) {
		release := make(chan struct{})
		provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
			<-release
		})
		defer close(release)
		client, err := NewClient(testToken, zerolog.Nop(),
			WithProxy(provider.server.URL+"/cors-proxy"),
			WithTimeout(30*time.Millisecond),
			WithMinInterval(testInterval),
		)
		require.NoError(t, err)

		result := client.TestConnection(context.Background())
		assert.False(t, result.Success)
		assert.Equal(t, KindTimeoutError, result.Kind)
		assert.Nil(t, result.Suggestion)
	})

	t.Run("unresolvable cors proxy host", func(t *testing.T) {
		client, err := NewClient(testToken, zerolog.Nop(),
			WithProxy("http://cors-anywhere.invalid"),
			WithTimeout(5*time.Second),
			WithMinInterval(testInterval),
		)
		require.NoError(t, err)

		result := client.TestConnection(context.Background())
		assert.False(t, result.Success)
		// A resolver without network access may time out instead of failing
		assert.Contains(t, []Kind{KindNetworkError, KindTimeoutError}, result.Kind)
		assert.Nil(t, result.Suggestion)
		assert.Equal(t, ModeProxy, result.Mode)
	})

	t.Run("http failure in proxy mode", func(t *testing.T) {
		provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		client, err := NewClient(testToken, zerolog.Nop(), WithProxy(provider.server.URL), WithMinInterval(testInterval))
		require.NoError(t, err)

		result := client.TestConnection(context.Background())
		assert.False(t, result.Success)
		assert.Equal(t, KindInvalidToken, result.Kind)
		assert.Equal(t, ModeProxy, result.Mode)
	})
}

func TestGetMatchesOmitsEmptyValues(t *testing.T) {
	provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches": []}`))
	})
	client := newTestClient(t, provider.server.URL)

	_, err := client.GetMatches(context.Background(), MatchOptions{Season: "2023", Status: ""})
	require.NoError(t, err)

	reqs := provider.recorded()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].RawQuery, "season=2023")
	assert.NotContains(t, reqs[0].RawQuery, "status")
	assert.NotContains(t, reqs[0].RawQuery, "dateFrom")
	assert.NotContains(t, reqs[0].RawQuery, "dateTo")
	assert.NotContains(t, reqs[0].RawQuery, "competitions")
	assert.Equal(t, "100", reqs[0].Query.Get("limit"))
}

func TestGetMatchesJoinsCompetitions(t *testing.T) {
	provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches": []}`))
	})
	client := newTestClient(t, provider.server.URL)

	_, err := client.GetMatches(context.Background(), MatchOptions{
		Competitions: []string{"PL", " CL ", ""},
		Limit:        10,
	}.OnDate("2024-05-19"))
	require.NoError(t, err)

	reqs := provider.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/matches", reqs[0].Path)
	assert.Equal(t, "PL,CL", reqs[0].Query.Get("competitions"))
	assert.Equal(t, "10", reqs[0].Query.Get("limit"))
	assert.Equal(t, "2024-05-19", reqs[0].Query.Get("dateFrom"))
	assert.Equal(t, "2024-05-19", reqs[0].Query.Get("dateTo"))
}

func TestRepeatedCallsAreIdenticalAndSpaced(t *testing.T) {
	provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches": []}`))
	})
	client := newTestClient(t, provider.server.URL)

	_, err := client.GetMatches(context.Background(), MatchOptions{})
	require.NoError(t, err)
	_, err = client.GetMatches(context.Background(), MatchOptions{})
	require.NoError(t, err)

	reqs := provider.recorded()
	require.Len(t, reqs, 2)
	assert.Equal(t, reqs[0].RawQuery, reqs[1].RawQuery)
	assert.GreaterOrEqual(t, reqs[1].At.Sub(reqs[0].At), testInterval)
}

func TestFailureInQueueOnlyAffectsItsCaller(t *testing.T) {
	provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/SA/") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(twoMatches))
	})
	client := newTestClient(t, provider.server.URL)

	results := client.GetMatchesForCompetitions(context.Background(), []string{"PL", "SA", "CL"}, MatchOptions{})
	require.Len(t, results, 3)

	assert.Equal(t, "PL", results[0].Code)
	require.NoError(t, results[0].Err)
	assert.Equal(t, 2, results[0].Result.Count)

	assert.Equal(t, "SA", results[1].Code)
	assert.True(t, IsKind(results[1].Err, KindServerError))
	assert.Nil(t, results[1].Result)

	assert.Equal(t, "CL", results[2].Code)
	require.NoError(t, results[2].Err)
	assert.Equal(t, "Champions League", results[2].Result.Competition.Name)

	reqs := provider.recorded()
	require.Len(t, reqs, 3)
	for i := 1; i < len(reqs); i++ {
		assert.GreaterOrEqual(t, reqs[i].At.Sub(reqs[i-1].At), testInterval)
	}
}

func TestGetCompetitions(t *testing.T) {
	provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/competitions":
			w.Write([]byte(`{"count": 2, "competitions": [
				{"id": 2021, "name": "Premier League", "code": "PL", "area": {"id": 2072, "name": "England"}},
				{"id": 2000, "name": "FIFA World Cup", "code": "WC"}
			]}`))
		case "/competitions/PL":
			w.Write([]byte(`{"id": 2021, "name": "Premier League", "code": "PL", "type": "LEAGUE",
				"currentSeason": {"id": 2287, "startDate": "2024-08-16", "endDate": "2025-05-25", "currentMatchday": 38}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	client := newTestClient(t, provider.server.URL)

	competitions, err := client.GetCompetitions(context.Background())
	require.NoError(t, err)
	require.Len(t, competitions, 2)
	assert.Equal(t, "WC", competitions[1].Code, "provider list is not filtered by the local catalog")
	assert.Equal(t, "England", competitions[0].Area.Name)

	info, err := client.GetCompetitionInfo(context.Background(), "PL")
	require.NoError(t, err)
	assert.Equal(t, "LEAGUE", info.Type)
	require.NotNil(t, info.CurrentSeason)
	assert.Equal(t, 38, *info.CurrentSeason.CurrentMatchday)
}

func TestDecodeError(t *testing.T) {
	provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})
	client := newTestClient(t, provider.server.URL)

	_, err := client.GetMatches(context.Background(), MatchOptions{})
	assert.True(t, IsKind(err, KindDecodeError))
}

func TestCancelledWaitIsTimeout(t *testing.T) {
	release := make(chan struct{})
	provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"matches": []}`))
	})
	client := newTestClient(t, provider.server.URL)
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := client.GetMatches(ctx, MatchOptions{})
	var fdErr *Error
	require.ErrorAs(t, err, &fdErr)
	assert.Equal(t, KindTimeoutError, fdErr.Kind)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPTimeoutIsTimeout(t *testing.T) {
	release := make(chan struct{})
	provider := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	defer close(release)
	client := newTestClient(t, provider.server.URL, WithTimeout(30*time.Millisecond))

	_, err := client.GetMatches(context.Background(), MatchOptions{})
	assert.True(t, IsKind(err, KindTimeoutError), "got %v", err)
}
