package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"fryegg/api/internal/apperr"
	"fryegg/api/internal/models"
	"fryegg/api/internal/repository"
	"fryegg/api/internal/seatmap"
	"fryegg/api/internal/survey"
)

const seatCacheKey = "seats:occupants"

type SeatService struct {
	occupants OccupantStore
	surveys   SurveyStore
	cache     *redis.Client
	cacheTTL  time.Duration
	log       zerolog.Logger
}

func NewSeatService(
	occupants OccupantStore,
	surveys SurveyStore,
	cache *redis.Client,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *SeatService {
	return &SeatService{
		occupants: occupants,
		surveys:   surveys,
		cache:     cache,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

// SeatMap renders all 30 slots, marking the caller's candidate seat as
// selected when it is selectable.
func (s *SeatService) SeatMap(ctx context.Context, selected int) ([]seatmap.Slot, error) {
	grid, err := s.loadGrid(ctx)
	if err != nil {
		return nil, apperr.New(apperr.KindUnknown, err)
	}
	return grid.Render(selected), nil
}

// Target resolves a viewing-mode click on a seat. When the occupant
// lookup fails the UI degrades to the default results route instead of
// surfacing the error.
func (s *SeatService) Target(ctx context.Context, seat int, authenticated bool) (seatmap.Target, error) {
	grid, err := s.loadGrid(ctx)
	if err != nil {
		s.log.Warn().Err(err).Int("seat", seat).Msg("occupant lookup failed, degrading to default results route")
		return seatmap.FallbackTarget(), nil
	}

	target, err := grid.ResolveTarget(seat, authenticated)
	if err != nil {
		if errors.Is(err, seatmap.ErrSeatReserved) {
			return seatmap.Target{}, apperr.New(apperr.KindSeatReserved, err)
		}
		return seatmap.Target{}, apperr.New(apperr.KindBadInput, err)
	}
	return target, nil
}

// RenderedAnswer is one question of a stored survey in display form.
type RenderedAnswer struct {
	Title    string          `json:"title"`
	Required bool            `json:"required,omitempty"`
	Answer   survey.Rendered `json:"answer"`
}

// SeatResults is the results view for one seat: the occupant's profile
// plus their survey rendered for display.
type SeatResults struct {
	Occupant models.Occupant  `json:"occupant"`
	Title    string           `json:"title"`
	Intro    string           `json:"intro"`
	Answers  []RenderedAnswer `json:"answers"`
}

// Results loads the occupant of a seat and renders their survey.
func (s *SeatService) Results(ctx context.Context, seat int) (SeatResults, error) {
	if err := seatmap.Validate(seat); err != nil {
		if errors.Is(err, seatmap.ErrSeatReserved) {
			return SeatResults{}, apperr.New(apperr.KindSeatReserved, err)
		}
		return SeatResults{}, apperr.New(apperr.KindBadInput, err)
	}

	occupant, err := s.occupants.GetBySeat(ctx, seat)
	if err != nil {
		if errors.Is(err, repository.ErrOccupantNotFound) {
			return SeatResults{}, apperr.New(apperr.KindNotFound, err)
		}
		return SeatResults{}, apperr.New(apperr.KindUnknown, err)
	}

	results := SeatResults{Occupant: occupant}

	stored, err := s.surveys.FindByAuthor(ctx, occupant.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSurveyNotFound) {
			return results, nil
		}
		return SeatResults{}, apperr.New(apperr.KindUnknown, err)
	}

	results.Title = stored.Title
	results.Intro = stored.TitleContents

	var wire []survey.WireQuestion
	if err := json.Unmarshal(stored.Questions, &wire); err != nil {
		return SeatResults{}, apperr.New(apperr.KindUnknown, err)
	}
	for _, wq := range wire {
		results.Answers = append(results.Answers, RenderedAnswer{
			Title:    wq.Title,
			Required: wq.Required,
			Answer:   survey.Render(wq),
		})
	}
	return results, nil
}

// Invalidate drops the cached occupant list after a seat-affecting write.
func (s *SeatService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, seatCacheKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("seat cache invalidation failed")
	}
}

func (s *SeatService) loadGrid(ctx context.Context) (*seatmap.Grid, error) {
	if occupants, ok := s.cachedOccupants(ctx); ok {
		if grid, err := seatmap.FromOccupants(occupants); err == nil {
			return grid, nil
		}
	}

	occupants, err := s.occupants.List(ctx)
	if err != nil {
		return nil, err
	}

	grid, err := seatmap.FromOccupants(occupants)
	if err != nil {
		return nil, err
	}

	s.storeOccupants(ctx, occupants)
	return grid, nil
}

func (s *SeatService) cachedOccupants(ctx context.Context) ([]models.Occupant, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, seatCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var occupants []models.Occupant
	if err := json.Unmarshal(raw, &occupants); err != nil {
		return nil, false
	}
	return occupants, true
}

func (s *SeatService) storeOccupants(ctx context.Context, occupants []models.Occupant) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(occupants)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, seatCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("seat cache write failed")
	}
}
