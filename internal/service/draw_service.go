package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/raffleworks/raffle-api/internal/dto"
	"github.com/raffleworks/raffle-api/internal/observability"
	"github.com/raffleworks/raffle-api/internal/repository"
)

// DrawService is the draw engine: it resolves the eligible pool, executes
// draws, manages resets and serves the read side of the winner audit trail.
//
// Every draw and reset for one activity runs under that activity's lock, so
// two draws against the same pool, or a reset racing a draw, never
// interleave. Different activities do not contend.
type DrawService interface {
	Draw(ctx context.Context, req dto.DrawRequest) (dto.DrawResult, error)
	Eligible(ctx context.Context, activityID uint) ([]dto.ParticipantResponse, error)
	Winners(ctx context.Context, activityID uint) ([]dto.WinnerRecordResponse, error)
	WinnersByRound(ctx context.Context, activityID uint, round int) ([]dto.WinnerRecordResponse, error)
	Reset(ctx context.Context, activityID uint) (dto.ResetResult, error)
	Stats(ctx context.Context, activityID uint) (dto.ActivityStats, error)
	NextRound(ctx context.Context, activityID uint) (dto.RoundInfo, error)
}

type drawService struct {
	activities   repository.ActivityRepository
	prizes       repository.PrizeRepository
	participants repository.ParticipantRepository
	records      repository.WinnerRecordRepository
	draws        repository.DrawRepository
	cache        *StatsCache
	events       EventPublisher
	validator    *validator.Validate
	logger       zerolog.Logger
	tracer       trace.Tracer
	locks        *activityLocks
	shuffle      func(n int, swap func(i, j int))
	now          func() time.Time
}

// NewDrawService builds the draw engine. The events publisher may be nil to
// disable fanout; the cache may be nil to disable stats caching.
func NewDrawService(
	activities repository.ActivityRepository,
	prizes repository.PrizeRepository,
	participants repository.ParticipantRepository,
	records repository.WinnerRecordRepository,
	draws repository.DrawRepository,
	cache *StatsCache,
	events EventPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) DrawService {
	return &drawService{
		activities:   activities,
		prizes:       prizes,
		participants: participants,
		records:      records,
		draws:        draws,
		cache:        cache,
		events:       events,
		validator:    validate,
		logger:       logger.With().Str("component", "draw_service").Logger(),
		tracer:       otel.Tracer("github.com/raffleworks/raffle-api/internal/service/draw"),
		locks:        newActivityLocks(),
		// The package-level source advances continuously across calls and is
		// never reseeded, so successive draws are not correlated.
		shuffle: rand.Shuffle,
		now:     time.Now,
	}
}

// Draw selects winners for a prize without replacement and commits the
// result atomically. Preconditions are checked in a fixed order and the
// first failure aborts with no state change.
func (s *drawService) Draw(ctx context.Context, req dto.DrawRequest) (dto.DrawResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.DrawResult{}, err
	}

	count := req.Count
	if count == 0 {
		count = 1
	}
	round := req.Round
	if round == 0 {
		round = 1
	}

	ctx, span := s.tracer.Start(ctx, "lottery.draw", trace.WithAttributes(
		attribute.Int64("activity_id", int64(req.ActivityID)),
		attribute.Int64("prize_id", int64(req.PrizeID)),
		attribute.Int("count", count),
		attribute.Int("round", round),
	))
	defer span.End()

	lock := s.locks.get(req.ActivityID)
	lock.Lock()
	defer lock.Unlock()

	result, err := s.draw(ctx, req.ActivityID, req.PrizeID, count, round)
	if err != nil {
		observability.Draws().WithLabelValues("rejected").Inc()
		return dto.DrawResult{}, err
	}

	observability.Draws().WithLabelValues("committed").Inc()
	observability.WinnersDrawn().Add(float64(count))

	return result, nil
}

func (s *drawService) draw(ctx context.Context, activityID, prizeID uint, count, round int) (dto.DrawResult, error) {
	exists, err := s.activities.Exists(ctx, activityID)
	if err != nil {
		return dto.DrawResult{}, err
	}
	if !exists {
		return dto.DrawResult{}, ErrActivityNotFound
	}

	prize, err := s.prizes.GetByID(ctx, prizeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DrawResult{}, ErrPrizeNotFound
		}
		return dto.DrawResult{}, err
	}
	if prize.ActivityID != activityID {
		return dto.DrawResult{}, ErrPrizeNotFound
	}

	if prize.RemainingQuantity < count {
		return dto.DrawResult{}, &InsufficientInventoryError{Remaining: prize.RemainingQuantity}
	}

	pool, err := s.participants.ListEligible(ctx, activityID)
	if err != nil {
		return dto.DrawResult{}, err
	}
	if len(pool) < count {
		return dto.DrawResult{}, &InsufficientParticipantsError{Available: len(pool)}
	}

	if count < 1 {
		return dto.DrawResult{}, ErrInvalidDrawCount
	}

	// Uniform permutation of the pool; the first count entries are the
	// winners, in selection order.
	s.shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	selected := pool[:count]

	winnerIDs := make([]uint, 0, count)
	for _, participant := range selected {
		winnerIDs = append(winnerIDs, participant.ID)
	}

	wonAt := s.now()
	if err := s.draws.CommitDraw(ctx, activityID, prize.ID, round, count, winnerIDs, wonAt); err != nil {
		return dto.DrawResult{}, err
	}
	prize.RemainingQuantity -= count

	s.cache.Invalidate(ctx, activityID)
	s.publish(SubjectDraws, DrawEvent{
		ActivityID: activityID,
		PrizeID:    prize.ID,
		Round:      round,
		Count:      count,
		WinnerIDs:  winnerIDs,
		OccurredAt: wonAt,
	})

	s.logger.Info().
		Uint("activity_id", activityID).
		Uint("prize_id", prize.ID).
		Int("round", round).
		Int("count", count).
		Msg("draw committed")

	winners := make([]dto.WinnerInfo, 0, count)
	for _, participant := range selected {
		winners = append(winners, dto.NewWinnerInfo(participant))
	}

	return dto.DrawResult{
		Prize:   dto.NewPrizeResponse(prize),
		Winners: winners,
	}, nil
}

// Eligible returns the activity's current draw pool: participants whose
// winner flag is still unset. Computed fresh on every call.
func (s *drawService) Eligible(ctx context.Context, activityID uint) ([]dto.ParticipantResponse, error) {
	if err := s.requireActivity(ctx, activityID); err != nil {
		return nil, err
	}

	pool, err := s.participants.ListEligible(ctx, activityID)
	if err != nil {
		return nil, err
	}

	return dto.NewParticipantResponseSlice(pool), nil
}

// Winners lists the activity's winner records newest-first, expanded with
// participant and prize.
func (s *drawService) Winners(ctx context.Context, activityID uint) ([]dto.WinnerRecordResponse, error) {
	if err := s.requireActivity(ctx, activityID); err != nil {
		return nil, err
	}

	records, err := s.records.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	return dto.NewWinnerRecordResponseSlice(records), nil
}

// WinnersByRound lists exactly the records whose round matches the query.
func (s *drawService) WinnersByRound(ctx context.Context, activityID uint, round int) ([]dto.WinnerRecordResponse, error) {
	if err := s.requireActivity(ctx, activityID); err != nil {
		return nil, err
	}

	records, err := s.records.ListByActivityAndRound(ctx, activityID, round)
	if err != nil {
		return nil, err
	}

	return dto.NewWinnerRecordResponseSlice(records), nil
}

// Reset reverts the activity to its pre-draw baseline: winner flags cleared,
// prize inventories restored to their baselines, audit trail purged.
// Idempotent; a second reset is a no-op.
func (s *drawService) Reset(ctx context.Context, activityID uint) (dto.ResetResult, error) {
	ctx, span := s.tracer.Start(ctx, "lottery.reset", trace.WithAttributes(
		attribute.Int64("activity_id", int64(activityID)),
	))
	defer span.End()

	lock := s.locks.get(activityID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.requireActivity(ctx, activityID); err != nil {
		return dto.ResetResult{}, err
	}

	cleared, err := s.draws.Reset(ctx, activityID)
	if err != nil {
		return dto.ResetResult{}, err
	}

	s.cache.Invalidate(ctx, activityID)
	s.publish(SubjectResets, ResetEvent{
		ActivityID:     activityID,
		RecordsCleared: cleared,
		OccurredAt:     s.now(),
	})

	s.logger.Info().
		Uint("activity_id", activityID).
		Int64("records_cleared", cleared).
		Msg("activity draw state reset")

	return dto.ResetResult{
		RecordsCleared: int(cleared),
		Message:        "draw results have been reset",
	}, nil
}

// Stats aggregates the read-side counters for one activity, served from the
// cache when warm.
func (s *drawService) Stats(ctx context.Context, activityID uint) (dto.ActivityStats, error) {
	if err := s.requireActivity(ctx, activityID); err != nil {
		return dto.ActivityStats{}, err
	}

	if stats, ok := s.cache.Get(ctx, activityID); ok {
		return stats, nil
	}

	total, err := s.participants.CountByActivity(ctx, activityID)
	if err != nil {
		return dto.ActivityStats{}, err
	}

	available, err := s.participants.CountEligible(ctx, activityID)
	if err != nil {
		return dto.ActivityStats{}, err
	}

	inventory, err := s.prizes.Inventory(ctx, activityID)
	if err != nil {
		return dto.ActivityStats{}, err
	}

	winners, err := s.records.CountByActivity(ctx, activityID)
	if err != nil {
		return dto.ActivityStats{}, err
	}

	stats := dto.ActivityStats{
		TotalParticipants:     int(total),
		AvailableParticipants: int(available),
		TotalPrizes:           inventory.Total,
		RemainingPrizes:       inventory.Remaining,
		TotalWinners:          int(winners),
	}

	s.cache.Set(ctx, activityID, stats)

	return stats, nil
}

// NextRound derives the next unused round number: max over existing records
// plus one, starting at 1. Purely advisory; Draw accepts any round value.
func (s *drawService) NextRound(ctx context.Context, activityID uint) (dto.RoundInfo, error) {
	if err := s.requireActivity(ctx, activityID); err != nil {
		return dto.RoundInfo{}, err
	}

	maxRound, err := s.records.MaxRound(ctx, activityID)
	if err != nil {
		return dto.RoundInfo{}, err
	}

	return dto.RoundInfo{NextRound: maxRound + 1}, nil
}

func (s *drawService) requireActivity(ctx context.Context, activityID uint) error {
	exists, err := s.activities.Exists(ctx, activityID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrActivityNotFound
	}

	return nil
}

func (s *drawService) publish(subject string, event interface{}) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err := s.events.Publish(subject, payload); err != nil {
		s.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish draw event")
	}
}
