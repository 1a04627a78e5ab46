// Package footballdata provides a client for the football-data.org v4 API.
//
// The client authenticates with an X-Auth-Token header and routes every
// request through a per-client queue (package scheduler) so that calls are
// issued one at a time, in order, with at least one second between them.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := footballdata.NewClient("your-token", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.GetMatchesByCompetition(ctx, "PL", footballdata.MatchOptions{
//		Season: "2024",
//		Status: "FINISHED",
//	})
//
// A search that finds nothing returns a MatchResult with an empty Matches
// slice and Count 0, never an error.
//
// # Transport modes
//
// In direct mode requests go to DefaultBaseURL. WithProxy switches to proxy
// mode, where a local proxy forwards the calls. The mode is fixed when the
// client is created.
//
// # Error Handling
//
// Every failure is an *Error carrying a Kind from a closed set:
//
//   - HTTP statuses 400, 401, 403, 404, 429, 500 and 503 map to their own
//     kinds with fixed messages; any other non-2xx status is KindAPIError
//   - Transport failures are KindNetworkError, KindTimeoutError,
//     KindCrossOriginError (with a Suggestion) or KindConnectionError
//   - Local precondition failures are KindInvalidCompetition and
//     KindMissingToken; they never reach the network
//
// UserMessage gives the fixed user-facing text for a kind:
//
//	if fdErr, ok := err.(*footballdata.Error); ok {
//		fmt.Println(fdErr.UserMessage())
//	}
//
// TestConnection is the exception: it never returns an error and reports
// failures through ConnectionResult instead.
package footballdata
