package service

import (
	"context"

	"fryegg/api/internal/models"
	"fryegg/api/internal/repository"
)

// The services talk to persistence through these narrow interfaces so
// tests can run against in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	UpdateDisplayName(ctx context.Context, id string, displayName string) error
}

type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	GetByID(ctx context.Context, id string) (models.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type OccupantStore interface {
	Create(ctx context.Context, o models.Occupant) error
	GetByID(ctx context.Context, id string) (models.Occupant, error)
	GetBySeat(ctx context.Context, seat int) (models.Occupant, error)
	List(ctx context.Context) ([]models.Occupant, error)
	Update(ctx context.Context, o models.Occupant) error
}

type SurveyStore interface {
	Insert(ctx context.Context, s models.Survey) (models.Survey, error)
	Update(ctx context.Context, s models.Survey) error
	FindByAuthor(ctx context.Context, author string) (models.Survey, error)
}

var (
	_ UserStore     = (*repository.UserRepository)(nil)
	_ SessionStore  = (*repository.SessionRepository)(nil)
	_ OccupantStore = (*repository.OccupantRepository)(nil)
	_ SurveyStore   = (*repository.SurveyRepository)(nil)
)
