package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/merev/gsr-api/internal/domain"
	"github.com/merev/gsr-api/internal/feedback"
	"github.com/merev/gsr-api/internal/metrics"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Repository persists the single active game slot.
type Repository interface {
	// Save overwrites the slot.
	Save(ctx context.Context, g *domain.Game) error
	// Load returns nil, nil when nothing is stored.
	Load(ctx context.Context) (*domain.Game, error)
	// Clear is idempotent.
	Clear(ctx context.Context) error
}

// Service is the only mutation path for the active game. Each operation
// loads the current snapshot, validates, saves the new snapshot and
// returns it. Rule violations are *feedback.ValidationError values whose
// reason is one of the Err* sentinels.
type Service struct {
	mu      sync.Mutex
	repo    Repository
	logger  *slog.Logger
	metrics metrics.GameMetrics
	tracer  trace.Tracer
}

// NewService wires a Service. Nil logger, metrics or tracer fall back to
// no-op implementations.
func NewService(repo Repository, logger *slog.Logger, m metrics.GameMetrics, tracer trace.Tracer) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.NewNoop()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("game")
	}
	return &Service{
		repo:    repo,
		logger:  logger,
		metrics: m,
		tracer:  tracer,
	}
}

// StartGame replaces any stored game with a new one for names.
func (s *Service) StartGame(ctx context.Context, names []string) (*domain.Game, error) {
	return withTelemetry(s, ctx, "StartGame", strconv.Itoa(len(names)), func(ctx context.Context) (*domain.Game, error) {
		g, err := domain.NewGame(names)
		if err != nil {
			return nil, err
		}
		if err := s.save(ctx, g); err != nil {
			return nil, err
		}
		s.metrics.RecordGameEvent(ctx, "started")
		return g, nil
	})
}

// CurrentGame returns the stored game, or nil when there is none.
func (s *Service) CurrentGame(ctx context.Context) (*domain.Game, error) {
	return withTelemetry(s, ctx, "CurrentGame", "", func(ctx context.Context) (*domain.Game, error) {
		return s.load(ctx)
	})
}

func (s *Service) SetScore(ctx context.Context, playerID domain.PlayerID, roundIndex, score int) (*domain.Game, error) {
	return withTelemetry(s, ctx, "SetScore", playerID.String(), func(ctx context.Context) (*domain.Game, error) {
		g, err := s.requireGame(ctx)
		if err != nil {
			return nil, err
		}
		player, round, err := resolve(g, playerID, roundIndex)
		if err != nil {
			return nil, err
		}

		if fb := domain.ValidateScore(score); fb.HasFeedback() {
			return nil, feedback.NewValidationError(nil, fb)
		}
		if g.IsEnded() {
			return nil, gameEnded()
		}
		if round.IsLocked() {
			return nil, roundLocked()
		}
		if player.IsSkippedAt(roundIndex) {
			return nil, playerSkipped()
		}

		value, err := domain.NewScore(score)
		if err != nil {
			return nil, err
		}
		round, err = round.SetScore(player.ID(), domain.Entered{Score: value})
		if err != nil {
			return nil, err
		}
		return s.commitRound(ctx, g, roundIndex, round)
	})
}

// SkipPlayer marks the player skipped in roundIndex. With allFuture the
// player is also skipped in every later round, and the call fails if any of
// those rounds is locked. Entries stored in later rounds are kept but masked
// by the cascade, so unskipping the anchor brings them back.
func (s *Service) SkipPlayer(ctx context.Context, playerID domain.PlayerID, roundIndex int, allFuture bool) (*domain.Game, error) {
	return withTelemetry(s, ctx, "SkipPlayer", playerID.String(), func(ctx context.Context) (*domain.Game, error) {
		g, err := s.requireGame(ctx)
		if err != nil {
			return nil, err
		}
		player, round, err := resolve(g, playerID, roundIndex)
		if err != nil {
			return nil, err
		}

		if g.IsEnded() {
			return nil, gameEnded()
		}
		if round.IsLocked() {
			return nil, roundLocked()
		}
		if player.IsSkippedAt(roundIndex) {
			return nil, playerSkipped()
		}

		round, err = round.SetScore(player.ID(), domain.Skipped{})
		if err != nil {
			return nil, err
		}
		next, err := g.UpdateRound(roundIndex, round)
		if err != nil {
			return nil, err
		}

		if allFuture {
			if i := firstLockedAfter(next, roundIndex); i >= 0 {
				return nil, laterRoundLocked(i, "skipped")
			}
			next, err = next.UpdatePlayer(player.ID(), func(p domain.Player) domain.Player {
				return p.SkipFrom(roundIndex)
			})
			if err != nil {
				return nil, err
			}
		}

		if err := s.save(ctx, next); err != nil {
			return nil, err
		}
		return next, nil
	})
}

// UnskipPlayer resets a skipped round to pending. Unskipping the anchor of
// a skip-from cascade ends the cascade, which fails while any later round is
// locked; later cascaded rounds cannot be unskipped directly.
func (s *Service) UnskipPlayer(ctx context.Context, playerID domain.PlayerID, roundIndex int) (*domain.Game, error) {
	return withTelemetry(s, ctx, "UnskipPlayer", playerID.String(), func(ctx context.Context) (*domain.Game, error) {
		g, err := s.requireGame(ctx)
		if err != nil {
			return nil, err
		}
		player, round, err := resolve(g, playerID, roundIndex)
		if err != nil {
			return nil, err
		}

		if g.IsEnded() {
			return nil, gameEnded()
		}
		if round.IsLocked() {
			return nil, roundLocked()
		}

		from, cascading := player.SkipFromRound()
		switch {
		case cascading && roundIndex > from:
			return nil, fail(ErrCannotUnskipCascaded, domain.FieldRound,
				fmt.Sprintf("Player skips all rounds from round %d; unskip round %d first", from+1, from+1))
		case cascading && roundIndex == from:
			if i := firstLockedAfter(g, from); i >= 0 {
				return nil, laterRoundLocked(i, "unskipped")
			}
			g, err = g.UpdatePlayer(player.ID(), func(p domain.Player) domain.Player { return p.ClearSkip() })
			if err != nil {
				return nil, err
			}
		case !domain.IsSkipped(round.Score(player.ID())):
			return nil, fail(ErrPlayerNotSkipped, domain.FieldPlayer, "Player is not skipped for this round")
		}

		round, err = round.ClearScore(player.ID())
		if err != nil {
			return nil, err
		}
		return s.commitRound(ctx, g, roundIndex, round)
	})
}

// LockRound freezes a round once ValidateRoundCompletion accepts it.
func (s *Service) LockRound(ctx context.Context, roundIndex int) (*domain.Game, error) {
	return withTelemetry(s, ctx, "LockRound", strconv.Itoa(roundIndex), func(ctx context.Context) (*domain.Game, error) {
		g, err := s.requireGame(ctx)
		if err != nil {
			return nil, err
		}
		round, err := resolveRound(g, roundIndex)
		if err != nil {
			return nil, err
		}

		if round.IsLocked() {
			return nil, fail(ErrRoundAlreadyLocked, domain.FieldRound, "Round is already locked")
		}
		if fb := domain.ValidateRoundCompletion(round, roundIndex, g.Players()); fb.HasFeedback() {
			return nil, feedback.NewValidationError(ErrRoundIncomplete, fb)
		}

		return s.commitRound(ctx, g, roundIndex, round.Lock())
	})
}

func (s *Service) UnlockRound(ctx context.Context, roundIndex int) (*domain.Game, error) {
	return withTelemetry(s, ctx, "UnlockRound", strconv.Itoa(roundIndex), func(ctx context.Context) (*domain.Game, error) {
		g, err := s.requireGame(ctx)
		if err != nil {
			return nil, err
		}
		round, err := resolveRound(g, roundIndex)
		if err != nil {
			return nil, err
		}

		if !round.IsLocked() {
			return nil, fail(ErrRoundNotLocked, domain.FieldRound, "Round is not locked")
		}
		if g.IsEnded() {
			return nil, fail(ErrGameEnded, domain.FieldGame, "Cannot unlock round in ended game")
		}

		return s.commitRound(ctx, g, roundIndex, round.Unlock())
	})
}

// EndGame requires every round to be locked.
func (s *Service) EndGame(ctx context.Context) (*domain.Game, error) {
	return withTelemetry(s, ctx, "EndGame", "", func(ctx context.Context) (*domain.Game, error) {
		g, err := s.requireGame(ctx)
		if err != nil {
			return nil, err
		}
		if g.IsEnded() {
			return nil, fail(ErrGameAlreadyEnded, domain.FieldGame, "Game is already ended")
		}
		for _, r := range g.Rounds() {
			if !r.IsLocked() {
				return nil, fail(ErrIncompleteLocking, domain.FieldGame, "All rounds must be locked before ending the game")
			}
		}

		ended := g.End()
		if err := s.save(ctx, ended); err != nil {
			return nil, err
		}
		s.metrics.RecordGameEvent(ctx, "ended")
		return ended, nil
	})
}

func (s *Service) ReopenGame(ctx context.Context) (*domain.Game, error) {
	return withTelemetry(s, ctx, "ReopenGame", "", func(ctx context.Context) (*domain.Game, error) {
		g, err := s.requireGame(ctx)
		if err != nil {
			return nil, err
		}
		if !g.IsEnded() {
			return nil, fail(ErrGameNotEnded, domain.FieldGame, "Game is not ended")
		}

		reopened := g.Reopen()
		if err := s.save(ctx, reopened); err != nil {
			return nil, err
		}
		s.metrics.RecordGameEvent(ctx, "reopened")
		return reopened, nil
	})
}

// ClearGame deletes the stored game. It is a no-op when there is none.
func (s *Service) ClearGame(ctx context.Context) error {
	_, err := withTelemetry(s, ctx, "ClearGame", "", func(ctx context.Context) (struct{}, error) {
		if err := s.repo.Clear(ctx); err != nil {
			return struct{}{}, fmt.Errorf("clear game: %w", err)
		}
		s.metrics.RecordGameEvent(ctx, "cleared")
		return struct{}{}, nil
	})
	return err
}

// ImportGame stores g as is, replacing the active game.
func (s *Service) ImportGame(ctx context.Context, g *domain.Game) (*domain.Game, error) {
	return withTelemetry(s, ctx, "ImportGame", "", func(ctx context.Context) (*domain.Game, error) {
		if g == nil {
			return nil, fail(feedback.ErrValidation, domain.FieldGame, "No game to import")
		}
		if err := s.save(ctx, g); err != nil {
			return nil, err
		}
		s.metrics.RecordGameEvent(ctx, "imported")
		return g, nil
	})
}

// Standings is the read model behind the standings screen.
type Standings struct {
	Rankings          []domain.PlayerRanking
	CurrentRound      int
	FirstInvalidRound int
	IsEnded           bool
}

func (s *Service) Standings(ctx context.Context) (*Standings, error) {
	return withTelemetry(s, ctx, "Standings", "", func(ctx context.Context) (*Standings, error) {
		g, err := s.requireGame(ctx)
		if err != nil {
			return nil, err
		}
		return &Standings{
			Rankings:          domain.CalculateRankings(g),
			CurrentRound:      domain.FindFirstEmptyRoundIndex(g),
			FirstInvalidRound: domain.FindFirstInvalidRoundIndex(g),
			IsEnded:           g.IsEnded(),
		}, nil
	})
}

func (s *Service) PlayerStats(ctx context.Context, playerID domain.PlayerID) (*domain.PlayerStats, error) {
	return withTelemetry(s, ctx, "PlayerStats", playerID.String(), func(ctx context.Context) (*domain.PlayerStats, error) {
		g, err := s.requireGame(ctx)
		if err != nil {
			return nil, err
		}
		stats := domain.CalculatePlayerStats(g, playerID)
		if stats == nil {
			return nil, playerNotFound()
		}
		return stats, nil
	})
}

// requireGame loads the active game or fails with ErrNoActiveGame.
func (s *Service) requireGame(ctx context.Context) (*domain.Game, error) {
	g, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, noActiveGame()
	}
	return g, nil
}

func (s *Service) load(ctx context.Context) (*domain.Game, error) {
	g, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	return g, nil
}

func (s *Service) save(ctx context.Context, g *domain.Game) error {
	if err := s.repo.Save(ctx, g); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

func (s *Service) commitRound(ctx context.Context, g *domain.Game, roundIndex int, round domain.Round) (*domain.Game, error) {
	next, err := g.UpdateRound(roundIndex, round)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func resolve(g *domain.Game, playerID domain.PlayerID, roundIndex int) (domain.Player, domain.Round, error) {
	player, err := g.Player(playerID)
	if err != nil {
		return domain.Player{}, domain.Round{}, playerNotFound()
	}
	round, err := resolveRound(g, roundIndex)
	if err != nil {
		return domain.Player{}, domain.Round{}, err
	}
	return player, round, nil
}

// firstLockedAfter returns the first locked round after roundIndex, or -1.
func firstLockedAfter(g *domain.Game, roundIndex int) int {
	rounds := g.Rounds()
	for i := roundIndex + 1; i < len(rounds); i++ {
		if rounds[i].IsLocked() {
			return i
		}
	}
	return -1
}

func resolveRound(g *domain.Game, roundIndex int) (domain.Round, error) {
	round, err := g.Round(roundIndex)
	if errors.Is(err, domain.ErrInvalidRoundIndex) {
		return domain.Round{}, invalidRoundIndex()
	}
	return round, err
}
