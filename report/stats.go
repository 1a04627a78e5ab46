package report

import (
	"fmt"
	"math"

	"github.com/s0up4200/matchboard/footballdata"
)

// Stats summarizes a list of matches
type Stats struct {
	Total     int     `json:"total" yaml:"total"`
	Finished  int     `json:"finished" yaml:"finished"`
	Scheduled int     `json:"scheduled" yaml:"scheduled"`
	Live      int     `json:"live" yaml:"live"`
	AvgGoals  float64 `json:"avgGoals" yaml:"avgGoals"`
}

// ComputeStats counts matches by state. AvgGoals is the mean number of
// goals over finished matches with a complete full-time score, rounded to
// one decimal, and 0 when there are none.
func ComputeStats(matches []footballdata.Match) Stats {
	stats := Stats{Total: len(matches)}

	var scored, goals int
	for _, m := range matches {
		switch {
		case m.Status == footballdata.StatusFinished:
			stats.Finished++
			if ft := m.Score.FullTime; ft.Complete() {
				scored++
				goals += *ft.Home + *ft.Away
			}
		case m.Status == footballdata.StatusScheduled || m.Status == footballdata.StatusTimed:
			stats.Scheduled++
		case m.Status.IsLive():
			stats.Live++
		}
	}

	if scored > 0 {
		stats.AvgGoals = math.Round(float64(goals)/float64(scored)*10) / 10
	}

	return stats
}

var statusLabels = map[footballdata.MatchStatus]string{
	footballdata.StatusScheduled: "Scheduled",
	footballdata.StatusTimed:     "Scheduled",
	footballdata.StatusInPlay:    "Live",
	footballdata.StatusPaused:    "Paused",
	footballdata.StatusFinished:  "Finished",
	footballdata.StatusPostponed: "Postponed",
	footballdata.StatusSuspended: "Suspended",
	footballdata.StatusCancelled: "Cancelled",
}

// StatusLabel returns a display label for a match status. Unknown statuses
// are returned as is.
func StatusLabel(status footballdata.MatchStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// ScoreLine renders the score column of a match: "h × a" for finished
// matches ("-" for a missing side), "LIVE" while in play and "vs" otherwise.
func ScoreLine(match footballdata.Match) string {
	switch {
	case match.Status == footballdata.StatusFinished:
		ft := match.Score.FullTime
		return fmt.Sprintf("%s × %s", goalText(ft.Home), goalText(ft.Away))
	case match.Status.IsLive():
		return "LIVE"
	default:
		return "vs"
	}
}

func goalText(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
