package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplarchive/pipeline/external/fplapi"
	"github.com/fplarchive/pipeline/internal/infrastructure/repository/memory"
	"github.com/fplarchive/pipeline/internal/platform/logging"
)

type stubFetcher struct {
	doc          fplapi.BootstrapDocument
	bootstrapErr error
	details      map[int64]fplapi.ElementSummary
	failures     map[int64]error
}

func (f *stubFetcher) FetchBootstrap(_ context.Context) (fplapi.BootstrapDocument, []byte, error) {
	if f.bootstrapErr != nil {
		return fplapi.BootstrapDocument{}, nil, f.bootstrapErr
	}
	return f.doc, []byte("{}"), nil
}

func (f *stubFetcher) FetchPlayerDetails(_ context.Context, ids []int64) []fplapi.DetailResult {
	out := make([]fplapi.DetailResult, 0, len(ids))
	for _, id := range ids {
		if err, ok := f.failures[id]; ok {
			out = append(out, fplapi.DetailResult{PlayerID: id, Err: err})
			continue
		}
		doc := f.details[id]
		out = append(out, fplapi.DetailResult{PlayerID: id, Doc: &doc})
	}
	return out
}

type pipelineFixture struct {
	fetcher   *stubFetcher
	journal   *memory.Journal
	seasons   *memory.SeasonRepository
	gameweeks *memory.GameweekRepository
	teams     *memory.TeamRepository
	snapshots *memory.PlayerSnapshotRepository
	futures   *memory.FutureFixtureRepository
	histories *memory.GwHistoryRepository
	service   *PipelineService
}

func newPipelineFixture(fetcher *stubFetcher) *pipelineFixture {
	journal := memory.NewJournal()
	f := &pipelineFixture{
		fetcher:   fetcher,
		journal:   journal,
		seasons:   memory.NewSeasonRepository(journal),
		gameweeks: memory.NewGameweekRepository(journal),
		teams:     memory.NewTeamRepository(journal),
		snapshots: memory.NewPlayerSnapshotRepository(journal),
		futures:   memory.NewFutureFixtureRepository(journal),
		histories: memory.NewGwHistoryRepository(journal),
	}
	f.service = NewPipelineService(
		fetcher,
		f.seasons,
		f.gameweeks,
		f.teams,
		f.snapshots,
		f.futures,
		f.histories,
		logging.NewNop(),
	)
	return f
}

// testBootstrap mixes native and string-encoded values the way the upstream
// API does across records.
func testBootstrap() fplapi.BootstrapDocument {
	return fplapi.BootstrapDocument{
		Events: []fplapi.RawRecord{
			{"id": float64(1), "name": "Gameweek 1", "finished": true, "is_current": false, "is_next": false, "deadline_time": "2025-08-15T17:30:00Z"},
			{"id": float64(2), "name": "Gameweek 2", "finished": false, "is_current": true, "is_next": false, "deadline_time": "2025-08-22T17:30:00Z"},
			{"id": float64(3), "name": "Gameweek 3", "finished": false, "is_current": false, "is_next": true, "deadline_time": "2025-08-29T17:30:00Z"},
		},
		Teams: []fplapi.RawRecord{
			{"id": float64(1), "code": float64(3), "name": "Arsenal", "short_name": "ARS", "strength": float64(5)},
			{"id": float64(2), "code": float64(7), "name": "Aston Villa", "short_name": "AVL", "strength": "4"},
		},
		Elements: []fplapi.RawRecord{
			{
				"id": float64(10), "code": float64(1001), "web_name": "Saka", "team": float64(1),
				"element_type": float64(3), "now_cost": "87", "total_points": float64(12),
				"form": "4.0", "ict_index": "8.3", "minutes": float64(180),
			},
			{
				"id": float64(20), "code": float64(1002), "web_name": "Watkins", "team": float64(2),
				"element_type": float64(4), "now_cost": float64(90), "total_points": "9",
				"form": "3.5", "minutes": "175",
			},
		},
	}
}

func testDetails() map[int64]fplapi.ElementSummary {
	return map[int64]fplapi.ElementSummary{
		10: {
			Fixtures: []fplapi.RawRecord{
				{"id": float64(21), "event": float64(3), "is_home": true, "difficulty": float64(2), "team_h": float64(1), "team_a": float64(2), "kickoff_time": "2025-08-30T14:00:00Z"},
			},
			History: []fplapi.RawRecord{
				{"fixture": float64(11), "round": float64(1), "opponent_team": float64(2), "was_home": false, "total_points": float64(8), "minutes": float64(90), "value": float64(85)},
			},
		},
		20: {
			Fixtures: []fplapi.RawRecord{
				{"id": float64(22), "event": float64(3), "is_home": false, "difficulty": float64(3), "team_h": float64(1), "team_a": float64(2), "kickoff_time": "2025-08-30T16:30:00Z"},
			},
			History: []fplapi.RawRecord{
				{"fixture": float64(12), "round": float64(1), "opponent_team": float64(1), "was_home": true, "total_points": float64(2), "minutes": float64(67), "value": float64(90)},
			},
		},
	}
}

func testRunParams() RunParams {
	return RunParams{SeasonID: 2025, SeasonName: "2025/26"}
}

func TestPipelineService_Run_FullPass(t *testing.T) {
	fixture := newPipelineFixture(&stubFetcher{doc: testBootstrap(), details: testDetails()})

	result, err := fixture.service.Run(t.Context(), testRunParams())
	require.NoError(t, err)

	assert.Equal(t, int64(2025), result.SeasonID)
	assert.Equal(t, int64(2), result.CurrentGameweekID)
	assert.Equal(t, 3, result.Gameweeks)
	assert.Equal(t, 2, result.Teams)
	assert.Equal(t, 2, result.Snapshots)
	assert.Equal(t, 2, result.FutureFixtures)
	assert.Equal(t, 2, result.HistoryRows)
	assert.Equal(t, 2, result.PlayersRequested)
	assert.Equal(t, 0, result.PlayersFailed)
	assert.Equal(t, 0, result.SkippedRecords)

	stored, ok := fixture.seasons.Get(2025)
	require.True(t, ok)
	assert.True(t, stored.IsCurrent)

	gw, ok := fixture.gameweeks.Current(2025, 2)
	require.True(t, ok)
	require.NotNil(t, gw.IsCurrent)
	assert.True(t, *gw.IsCurrent)
	_, ok = fixture.gameweeks.Archived(2025, 2)
	assert.True(t, ok, "every gameweek must also land in the archive")

	villa, ok := fixture.teams.Get(2025, 2)
	require.True(t, ok)
	require.NotNil(t, villa.Strength)
	assert.Equal(t, int64(4), *villa.Strength, "string-encoded strength must coerce")

	saka, ok := fixture.snapshots.Get(1001, 2, 2025)
	require.True(t, ok)
	require.NotNil(t, saka.NowCost)
	assert.Equal(t, int64(87), *saka.NowCost)
	require.NotNil(t, saka.Form)
	assert.Equal(t, 4.0, *saka.Form)
	assert.NotEmpty(t, saka.RawData)

	future, ok := fixture.futures.Get(1001, 2, 21)
	require.True(t, ok)
	require.NotNil(t, future.FixtureGameweekID)
	assert.Equal(t, int64(3), *future.FixtureGameweekID)

	history, ok := fixture.histories.Get(1001, 11, 2025)
	require.True(t, ok)
	require.NotNil(t, history.TotalPoints)
	assert.Equal(t, int64(8), *history.TotalPoints)
}

func TestPipelineService_Run_NoCurrentGameweekAborts(t *testing.T) {
	doc := testBootstrap()
	for _, rec := range doc.Events {
		rec["is_current"] = false
	}
	fixture := newPipelineFixture(&stubFetcher{doc: doc, details: testDetails()})

	_, err := fixture.service.Run(t.Context(), testRunParams())
	require.ErrorIs(t, err, ErrNoCurrentGameweek)

	assert.Empty(t, fixture.journal.Entries(), "nothing may be written without a current gameweek")
}

func TestPipelineService_Run_PartialPlayerFailure(t *testing.T) {
	fetcher := &stubFetcher{
		doc:      testBootstrap(),
		details:  testDetails(),
		failures: map[int64]error{20: fmt.Errorf("detail fetch exhausted retries")},
	}
	fixture := newPipelineFixture(fetcher)

	result, err := fixture.service.Run(t.Context(), testRunParams())
	require.NoError(t, err)

	assert.Equal(t, 1, result.PlayersFailed)
	assert.Equal(t, 1, result.FutureFixtures)
	assert.Equal(t, 1, result.HistoryRows)
	assert.Equal(t, 2, result.Snapshots, "snapshots come from the bulk document and are unaffected")

	_, ok := fixture.futures.Get(1001, 2, 21)
	assert.True(t, ok, "healthy player rows must survive a neighbor's failure")
	_, ok = fixture.histories.Get(1002, 12, 2025)
	assert.False(t, ok, "failed player contributes no rows")
}

func TestPipelineService_Run_Idempotent(t *testing.T) {
	details := testDetails()
	fetcher := &stubFetcher{doc: testBootstrap(), details: details}
	fixture := newPipelineFixture(fetcher)

	_, err := fixture.service.Run(t.Context(), testRunParams())
	require.NoError(t, err)

	// Second pass with refreshed cumulative stats and a revised history
	// record. Snapshots replace; completed-fixture history keeps the
	// first stored row.
	fetcher.doc.Elements[0]["minutes"] = float64(270)
	revised := details[10]
	revised.History = []fplapi.RawRecord{
		{"fixture": float64(11), "round": float64(1), "opponent_team": float64(2), "was_home": false, "total_points": float64(99), "minutes": float64(90), "value": float64(85)},
	}
	details[10] = revised

	_, err = fixture.service.Run(t.Context(), testRunParams())
	require.NoError(t, err)

	assert.Equal(t, 3, fixture.gameweeks.CurrentLen())
	assert.Equal(t, 2, fixture.teams.Len())
	assert.Equal(t, 2, fixture.snapshots.Len())
	assert.Equal(t, 2, fixture.futures.Len())
	assert.Equal(t, 2, fixture.histories.Len())

	snap, ok := fixture.snapshots.Get(1001, 2, 2025)
	require.True(t, ok)
	require.NotNil(t, snap.Minutes)
	assert.Equal(t, int64(270), *snap.Minutes, "snapshot rows replace on re-run")

	history, ok := fixture.histories.Get(1001, 11, 2025)
	require.True(t, ok)
	require.NotNil(t, history.TotalPoints)
	assert.Equal(t, int64(8), *history.TotalPoints, "history rows keep the first stored version")
}

func TestPipelineService_Run_PhaseOrdering(t *testing.T) {
	fixture := newPipelineFixture(&stubFetcher{doc: testBootstrap(), details: testDetails()})

	_, err := fixture.service.Run(t.Context(), testRunParams())
	require.NoError(t, err)

	entries := fixture.journal.Entries()
	require.NotEmpty(t, entries)
	require.Equal(t, "seasons", entries[0], "season row must land before everything else")

	position := make(map[string]int, len(entries))
	for idx, table := range entries {
		position[table] = idx
	}
	for _, current := range []string{"gameweeks", "teams"} {
		require.Contains(t, position, current)
		assert.Less(t, position[current], position["gameweeks_archive"], "current-state writes come before archive writes")
		assert.Less(t, position[current], position["player_snapshots"], "current-state writes come before archive writes")
	}
	for _, bulk := range []string{"gameweeks", "gameweeks_archive", "teams", "player_snapshots"} {
		require.Contains(t, position, bulk)
		assert.Less(t, position[bulk], position["player_future_fixtures"])
		assert.Less(t, position[bulk], position["player_gw_history"])
	}
}

func TestPipelineService_Run_SkipsUnreadableRecords(t *testing.T) {
	doc := testBootstrap()
	doc.Teams = append(doc.Teams, fplapi.RawRecord{"id": "not-a-number", "name": "Ghost FC"})
	doc.Elements = append(doc.Elements, fplapi.RawRecord{"id": float64(30), "web_name": "No Code"})
	fixture := newPipelineFixture(&stubFetcher{doc: doc, details: testDetails()})

	result, err := fixture.service.Run(t.Context(), testRunParams())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Teams)
	assert.Equal(t, 2, result.Snapshots)
	assert.Equal(t, 2, result.SkippedRecords)
}

func TestPipelineService_Run_BootstrapFailureAborts(t *testing.T) {
	fixture := newPipelineFixture(&stubFetcher{bootstrapErr: errors.New("upstream unavailable")})

	_, err := fixture.service.Run(t.Context(), testRunParams())
	require.Error(t, err)
	assert.Empty(t, fixture.journal.Entries())
}

func TestPipelineService_Run_InvalidParams(t *testing.T) {
	fixture := newPipelineFixture(&stubFetcher{doc: testBootstrap()})

	_, err := fixture.service.Run(t.Context(), RunParams{SeasonID: 0, SeasonName: "2025/26"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = fixture.service.Run(t.Context(), RunParams{SeasonID: 2025})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPipelineService_Run_SeasonHandover(t *testing.T) {
	fixture := newPipelineFixture(&stubFetcher{doc: testBootstrap(), details: testDetails()})

	_, err := fixture.service.Run(t.Context(), RunParams{SeasonID: 2024, SeasonName: "2024/25"})
	require.NoError(t, err)
	_, err = fixture.service.Run(t.Context(), testRunParams())
	require.NoError(t, err)

	current, ok := fixture.seasons.Current()
	require.True(t, ok)
	assert.Equal(t, int64(2025), current.ID)

	previous, ok := fixture.seasons.Get(2024)
	require.True(t, ok)
	assert.False(t, previous.IsCurrent, "only one season may stay current")
}
