package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sourcegraph/conc/pool"

	"github.com/fplarchive/pipeline/external/fplapi"
	"github.com/fplarchive/pipeline/internal/domain/futurefixture"
	"github.com/fplarchive/pipeline/internal/domain/gameweek"
	"github.com/fplarchive/pipeline/internal/domain/gwhistory"
	"github.com/fplarchive/pipeline/internal/domain/playersnapshot"
	"github.com/fplarchive/pipeline/internal/domain/season"
	"github.com/fplarchive/pipeline/internal/domain/team"
	"github.com/fplarchive/pipeline/internal/platform/logging"
)

type remoteFetcher interface {
	FetchBootstrap(ctx context.Context) (fplapi.BootstrapDocument, []byte, error)
	FetchPlayerDetails(ctx context.Context, ids []int64) []fplapi.DetailResult
}

// PipelineService runs one full ingestion pass: fetch the bulk snapshot,
// persist season, gameweeks, teams and player snapshots, then fan out to
// per-player detail documents for future fixtures and completed-fixture
// history. A failed player detail skips that player; everything else
// continues.
type PipelineService struct {
	fetcher      remoteFetcher
	seasonRepo   season.Repository
	gameweekRepo gameweek.Repository
	teamRepo     team.Repository
	snapshotRepo playersnapshot.Repository
	futureRepo   futurefixture.Repository
	historyRepo  gwhistory.Repository
	logger       *logging.Logger
}

func NewPipelineService(
	fetcher remoteFetcher,
	seasonRepo season.Repository,
	gameweekRepo gameweek.Repository,
	teamRepo team.Repository,
	snapshotRepo playersnapshot.Repository,
	futureRepo futurefixture.Repository,
	historyRepo gwhistory.Repository,
	logger *logging.Logger,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PipelineService{
		fetcher:      fetcher,
		seasonRepo:   seasonRepo,
		gameweekRepo: gameweekRepo,
		teamRepo:     teamRepo,
		snapshotRepo: snapshotRepo,
		futureRepo:   futureRepo,
		historyRepo:  historyRepo,
		logger:       logger,
	}
}

type RunParams struct {
	SeasonID   int64
	SeasonName string
}

type RunResult struct {
	SeasonID          int64
	CurrentGameweekID int64

	Gameweeks      int
	Teams          int
	Snapshots      int
	FutureFixtures int
	HistoryRows    int

	PlayersRequested int
	PlayersFailed    int
	SkippedRecords   int

	Duration time.Duration
}

func (s *PipelineService) Run(ctx context.Context, params RunParams) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Run")
	defer span.End()

	if params.SeasonID <= 0 {
		return RunResult{}, fmt.Errorf("%w: season id must be greater than zero", ErrInvalidInput)
	}
	if params.SeasonName == "" {
		return RunResult{}, fmt.Errorf("%w: season name is required", ErrInvalidInput)
	}

	started := time.Now()
	result := RunResult{SeasonID: params.SeasonID}

	bootstrap, raw, err := s.fetcher.FetchBootstrap(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("fetch bootstrap: %w", err)
	}
	s.logger.DebugContext(ctx, "bootstrap fetched",
		"bytes", len(raw),
		"events", len(bootstrap.Events),
		"teams", len(bootstrap.Teams),
		"elements", len(bootstrap.Elements),
	)

	gameweeks := make([]gameweek.Gameweek, 0, len(bootstrap.Events))
	var current *gameweek.Gameweek
	for _, rec := range bootstrap.Events {
		gw, err := buildGameweek(params.SeasonID, rec)
		if err != nil {
			s.logger.WarnContext(ctx, "skip unreadable event record", "error", err)
			result.SkippedRecords++
			continue
		}
		gameweeks = append(gameweeks, gw)
		if gw.IsCurrent != nil && *gw.IsCurrent {
			copied := gw
			current = &copied
		}
	}
	if current == nil {
		return RunResult{}, ErrNoCurrentGameweek
	}
	result.CurrentGameweekID = current.ID

	teams := make([]team.Team, 0, len(bootstrap.Teams))
	for _, rec := range bootstrap.Teams {
		t, err := buildTeam(params.SeasonID, rec)
		if err != nil {
			s.logger.WarnContext(ctx, "skip unreadable team record", "error", err)
			result.SkippedRecords++
			continue
		}
		teams = append(teams, t)
	}

	snapshots := make([]playersnapshot.Snapshot, 0, len(bootstrap.Elements))
	for _, rec := range bootstrap.Elements {
		snap, err := buildPlayerSnapshot(params.SeasonID, current.ID, rec)
		if err != nil {
			s.logger.WarnContext(ctx, "skip unreadable player record", "error", err)
			result.SkippedRecords++
			continue
		}
		snapshots = append(snapshots, snap)
	}

	if err := s.registerSeason(ctx, params); err != nil {
		return RunResult{}, err
	}

	// Tables within a wave are independent, so their writes run
	// concurrently. Current-state tables land before archive tables, and
	// any failure aborts the run before the per-player phase starts.
	currentWave := pool.New().WithErrors().WithContext(ctx)
	currentWave.Go(func(ctx context.Context) error {
		if err := s.gameweekRepo.UpsertCurrent(ctx, gameweeks); err != nil {
			return fmt.Errorf("upsert gameweeks: %w", err)
		}
		return nil
	})
	currentWave.Go(func(ctx context.Context) error {
		if err := s.teamRepo.UpsertMany(ctx, teams); err != nil {
			return fmt.Errorf("upsert teams: %w", err)
		}
		return nil
	})
	if err := currentWave.Wait(); err != nil {
		return RunResult{}, err
	}

	archiveWave := pool.New().WithErrors().WithContext(ctx)
	archiveWave.Go(func(ctx context.Context) error {
		if err := s.gameweekRepo.UpsertArchive(ctx, gameweeks); err != nil {
			return fmt.Errorf("upsert gameweeks archive: %w", err)
		}
		return nil
	})
	archiveWave.Go(func(ctx context.Context) error {
		if err := s.snapshotRepo.UpsertMany(ctx, snapshots); err != nil {
			return fmt.Errorf("upsert player snapshots: %w", err)
		}
		return nil
	})
	if err := archiveWave.Wait(); err != nil {
		return RunResult{}, err
	}
	result.Gameweeks = len(gameweeks)
	result.Teams = len(teams)
	result.Snapshots = len(snapshots)

	playerIDs := make([]int64, 0, len(snapshots))
	codeByID := make(map[int64]int64, len(snapshots))
	for _, snap := range snapshots {
		playerIDs = append(playerIDs, snap.PlayerID)
		codeByID[snap.PlayerID] = snap.Code
	}
	result.PlayersRequested = len(playerIDs)

	futures := make([]futurefixture.FutureFixture, 0, len(playerIDs))
	histories := make([]gwhistory.History, 0, len(playerIDs))
	for _, detail := range s.fetcher.FetchPlayerDetails(ctx, playerIDs) {
		if detail.Failed() {
			s.logger.WarnContext(ctx, "skip player after detail fetch failure",
				"player_id", detail.PlayerID,
				"error", detail.Err,
			)
			result.PlayersFailed++
			continue
		}
		code := codeByID[detail.PlayerID]
		for _, rec := range detail.Doc.Fixtures {
			row, err := buildFutureFixture(code, detail.PlayerID, current.ID, rec)
			if err != nil {
				s.logger.WarnContext(ctx, "skip unreadable fixture record", "player_id", detail.PlayerID, "error", err)
				result.SkippedRecords++
				continue
			}
			futures = append(futures, row)
		}
		for _, rec := range detail.Doc.History {
			row, err := buildHistory(code, detail.PlayerID, params.SeasonID, rec)
			if err != nil {
				s.logger.WarnContext(ctx, "skip unreadable history record", "player_id", detail.PlayerID, "error", err)
				result.SkippedRecords++
				continue
			}
			histories = append(histories, row)
		}
	}

	if err := s.futureRepo.UpsertMany(ctx, futures); err != nil {
		return RunResult{}, fmt.Errorf("upsert future fixtures: %w", err)
	}
	if err := s.historyRepo.InsertMissing(ctx, histories); err != nil {
		return RunResult{}, fmt.Errorf("insert gameweek history: %w", err)
	}
	result.FutureFixtures = len(futures)
	result.HistoryRows = len(histories)
	result.Duration = time.Since(started)

	s.logger.InfoContext(ctx, "ingestion pass finished",
		"season_id", result.SeasonID,
		"gameweek_id", result.CurrentGameweekID,
		"gameweeks", result.Gameweeks,
		"teams", result.Teams,
		"snapshots", result.Snapshots,
		"future_fixtures", result.FutureFixtures,
		"history_rows", result.HistoryRows,
		"players_requested", result.PlayersRequested,
		"players_failed", result.PlayersFailed,
		"skipped_records", result.SkippedRecords,
		"duration", result.Duration,
	)

	return result, nil
}

func (s *PipelineService) registerSeason(ctx context.Context, params RunParams) error {
	raw, err := sonic.Marshal(map[string]any{
		"season_id": params.SeasonID,
		"name":      params.SeasonName,
	})
	if err != nil {
		return fmt.Errorf("encode season raw data: %w", err)
	}

	item := season.Season{
		ID:        params.SeasonID,
		Name:      params.SeasonName,
		IsCurrent: true,
		RawData:   string(raw),
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.seasonRepo.Register(ctx, item); err != nil {
		return fmt.Errorf("register season: %w", err)
	}
	return nil
}
