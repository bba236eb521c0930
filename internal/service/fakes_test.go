package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"fryegg/api/internal/models"
	"fryegg/api/internal/repository"
)

// In-memory store fakes. Each optional fail* hook forces the next call
// of that operation to error, for exercising failure paths.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) UpdateDisplayName(_ context.Context, id string, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.DisplayName = displayName
	f.users[id] = u
	return nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]models.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, session models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, id string) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return models.Session{}, repository.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

type fakeOccupantStore struct {
	mu         sync.Mutex
	occupants  map[string]models.Occupant
	failCreate error
	failUpdate error
	failList   error
}

func newFakeOccupantStore() *fakeOccupantStore {
	return &fakeOccupantStore{occupants: make(map[string]models.Occupant)}
}

func (f *fakeOccupantStore) Create(_ context.Context, o models.Occupant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return f.failCreate
	}
	o.CreatedAt = time.Now()
	f.occupants[o.ID] = o
	return nil
}

func (f *fakeOccupantStore) GetByID(_ context.Context, id string) (models.Occupant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.occupants[id]
	if !ok {
		return models.Occupant{}, repository.ErrOccupantNotFound
	}
	return o, nil
}

func (f *fakeOccupantStore) GetBySeat(_ context.Context, seat int) (models.Occupant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.occupants {
		if o.Seat == seat {
			return o, nil
		}
	}
	return models.Occupant{}, repository.ErrOccupantNotFound
}

func (f *fakeOccupantStore) List(_ context.Context) ([]models.Occupant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList != nil {
		return nil, f.failList
	}
	out := make([]models.Occupant, 0, len(f.occupants))
	for _, o := range f.occupants {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOccupantStore) Update(_ context.Context, o models.Occupant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return f.failUpdate
	}
	current, ok := f.occupants[o.ID]
	if !ok {
		return repository.ErrOccupantNotFound
	}
	current.Seat = o.Seat
	current.UserName = o.UserName
	current.Title = o.Title
	if o.ProfileImage != nil {
		current.ProfileImage = o.ProfileImage
	}
	if o.URL != nil {
		current.URL = o.URL
	}
	f.occupants[o.ID] = current
	return nil
}

type fakeSurveyStore struct {
	mu         sync.Mutex
	byAuthor   map[string]models.Survey
	nextID     int
	failInsert error
	failUpdate error
}

func newFakeSurveyStore() *fakeSurveyStore {
	return &fakeSurveyStore{byAuthor: make(map[string]models.Survey)}
}

func (f *fakeSurveyStore) Insert(_ context.Context, s models.Survey) (models.Survey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert != nil {
		return models.Survey{}, f.failInsert
	}
	f.nextID++
	s.ID = int64(f.nextID)
	s.CreatedAt = time.Now()
	f.byAuthor[s.Author] = s
	return s, nil
}

func (f *fakeSurveyStore) Update(_ context.Context, s models.Survey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return f.failUpdate
	}
	existing, ok := f.byAuthor[s.Author]
	if !ok {
		return repository.ErrSurveyNotFound
	}
	s.ID = existing.ID
	s.CreatedAt = existing.CreatedAt
	f.byAuthor[s.Author] = s
	return nil
}

func (f *fakeSurveyStore) FindByAuthor(_ context.Context, author string) (models.Survey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byAuthor[author]
	if !ok {
		return models.Survey{}, repository.ErrSurveyNotFound
	}
	return s, nil
}

var errStoreDown = errors.New("store down")
