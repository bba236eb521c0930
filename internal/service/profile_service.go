package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"fryegg/api/internal/apperr"
	"fryegg/api/internal/media/sniffer"
	"fryegg/api/internal/media/svg"
	"fryegg/api/internal/models"
	"fryegg/api/internal/repository"
	"fryegg/api/internal/seatmap"
	"fryegg/api/internal/storage"
)

// AvatarStorage is the slice of the object store the profile flow needs.
type AvatarStorage interface {
	PutProfileImage(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	RemoveProfileImage(ctx context.Context, key string) error
}

var _ AvatarStorage = (*storage.ObjectStore)(nil)

type ProfileService struct {
	occupants OccupantStore
	users     UserStore
	avatars   AvatarStorage
	log       zerolog.Logger
}

func NewProfileService(
	occupants OccupantStore,
	users UserStore,
	avatars AvatarStorage,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		occupants: occupants,
		users:     users,
		avatars:   avatars,
		log:       log,
	}
}

type UpdateProfileInput struct {
	UserID   string
	UserName string
	Title    string
	Seat     int
	URL      string
	Image    []byte
}

// UpdateProfile mutates the caller's own occupant row. An uploaded
// avatar is stored first and compensated with a delete if the dependent
// row write fails, so no orphaned object survives a failed edit.
func (s *ProfileService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (models.Occupant, error) {
	current, err := s.occupants.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrOccupantNotFound) {
			return models.Occupant{}, apperr.New(apperr.KindNotFound, err)
		}
		return models.Occupant{}, apperr.New(apperr.KindUnknown, err)
	}

	if utf8.RuneCountInString(input.Title) > seatmap.MaxTitleRunes {
		return models.Occupant{}, apperr.New(apperr.KindBadInput, errors.New("title too long"))
	}

	if input.Seat != current.Seat {
		if err := seatmap.Validate(input.Seat); err != nil {
			if errors.Is(err, seatmap.ErrSeatReserved) {
				return models.Occupant{}, apperr.New(apperr.KindSeatReserved, err)
			}
			return models.Occupant{}, apperr.New(apperr.KindBadInput, err)
		}
		if holder, err := s.occupants.GetBySeat(ctx, input.Seat); err == nil && holder.ID != input.UserID {
			return models.Occupant{}, apperr.New(apperr.KindSeatTaken, nil)
		} else if err != nil && !errors.Is(err, repository.ErrOccupantNotFound) {
			return models.Occupant{}, apperr.New(apperr.KindUnknown, err)
		}
	}

	var (
		imageURL string
		imageKey string
	)
	if len(input.Image) > 0 {
		imageURL, imageKey, err = s.storeAvatar(ctx, input.UserID, input.Image)
		if err != nil {
			return models.Occupant{}, err
		}
	}

	updated := models.Occupant{
		ID:       input.UserID,
		Seat:     input.Seat,
		UserName: input.UserName,
		Title:    input.Title,
	}
	if input.URL != "" {
		updated.URL = &input.URL
	}
	if imageURL != "" {
		updated.ProfileImage = &imageURL
	}

	if err := s.occupants.Update(ctx, updated); err != nil {
		if imageKey != "" {
			if rmErr := s.avatars.RemoveProfileImage(ctx, imageKey); rmErr != nil {
				s.log.Error().Err(rmErr).Str("key", imageKey).Msg("compensating avatar delete failed")
			}
		}
		return models.Occupant{}, apperr.New(apperr.KindUnknown, err)
	}

	// keep the cached display name in step with the profile
	if err := s.users.UpdateDisplayName(ctx, input.UserID, input.UserName); err != nil {
		s.log.Warn().Err(err).Str("user_id", input.UserID).Msg("display name sync failed")
	}

	if updated.ProfileImage == nil {
		updated.ProfileImage = current.ProfileImage
	}
	if updated.URL == nil {
		updated.URL = current.URL
	}
	return updated, nil
}

// Profile loads the caller's own occupant row.
func (s *ProfileService) Profile(ctx context.Context, userID string) (models.Occupant, error) {
	occupant, err := s.occupants.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOccupantNotFound) {
			return models.Occupant{}, apperr.New(apperr.KindNotFound, err)
		}
		return models.Occupant{}, apperr.New(apperr.KindUnknown, err)
	}
	return occupant, nil
}

func (s *ProfileService) storeAvatar(ctx context.Context, userID string, data []byte) (string, string, error) {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := sniffer.DetectHead(head)
	if err != nil {
		return "", "", apperr.New(apperr.KindBadInput, err)
	}

	if result.Type == sniffer.TypeSVG {
		clean, err := svg.Sanitize(data)
		if err != nil {
			return "", "", apperr.New(apperr.KindBadInput, err)
		}
		data = clean
	}

	key := storage.ProfileImageKey(userID, string(result.Type))
	url, err := s.avatars.PutProfileImage(ctx, key, bytes.NewReader(data), int64(len(data)), result.MIME)
	if err != nil {
		return "", "", apperr.New(apperr.KindUnknown, err)
	}
	return url, key, nil
}
