package footballdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog(t *testing.T) {
	assert.Equal(t, []string{"BL1", "BSA", "CL", "FL1", "PD", "PL", "SA"}, SupportedCodes())

	competition, ok := LookupCompetition("BSA")
	assert.True(t, ok)
	assert.Equal(t, "Brasileirão", competition.Name)

	assert.True(t, IsCompetitionSupported("PL"))
	assert.False(t, IsCompetitionSupported("pl"), "codes are case sensitive")
	assert.False(t, IsCompetitionSupported("WC"))

	assert.Equal(t, "Serie A", CompetitionName("SA"))
	assert.Equal(t, "WC", CompetitionName("WC"))
}

func TestMatchOptionsValues(t *testing.T) {
	tests := []struct {
		name             string
		opts             MatchOptions
		withCompetitions bool
		want             string
	}{
		{
			name: "defaults",
			want: "limit=100",
		},
		{
			name: "empty strings are omitted",
			opts: MatchOptions{Season: "2023", Status: "", DateFrom: ""},
			want: "limit=100&season=2023",
		},
		{
			name:             "competitions ignored for a single competition",
			opts:             MatchOptions{Competitions: []string{"PL"}, Limit: 5},
			withCompetitions: false,
			want:             "limit=5",
		},
		{
			name:             "competitions joined",
			opts:             MatchOptions{Competitions: []string{"PL", "CL"}},
			withCompetitions: true,
			want:             "competitions=PL%2CCL&limit=100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encodeQuery(tt.opts.values(tt.withCompetitions)))
		})
	}
}

func TestMatchStatus(t *testing.T) {
	assert.True(t, StatusInPlay.IsLive())
	assert.True(t, StatusPaused.IsLive())
	assert.False(t, StatusFinished.IsLive())
	assert.False(t, StatusScheduled.IsLive())
}
