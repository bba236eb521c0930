package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"fryegg/api/internal/repository"
	"fryegg/api/internal/storage"
)

// Objects younger than this are never swept, so an avatar uploaded
// moments before its occupant row lands is safe.
const orphanGrace = 24 * time.Hour

type Scheduler struct {
	cron      *cron.Cron
	sessions  *repository.SessionRepository
	occupants *repository.OccupantRepository
	store     *storage.ObjectStore
	log       zerolog.Logger
}

func NewScheduler(
	sessions *repository.SessionRepository,
	occupants *repository.OccupantRepository,
	store *storage.ObjectStore,
	log zerolog.Logger,
) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:      c,
		sessions:  sessions,
		occupants: occupants,
		store:     store,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 15 * * * *", s.purgeSessions); err != nil { // hourly
		return err
	}
	if _, err := s.cron.AddFunc("0 30 3 * * *", s.sweepAvatars); err != nil { // nightly
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for in-flight jobs, up to a short grace period.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) purgeSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("session purge failed")
		return
	}
	if n > 0 {
		s.log.Info().Int64("count", n).Msg("expired sessions purged")
	}
}

// sweepAvatars deletes stored profile images no occupant row references
// anymore, e.g. leftovers from replaced avatars.
func (s *Scheduler) sweepAvatars() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	referenced, err := s.occupants.ListProfileImages(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("avatar sweep: list references failed")
		return
	}
	inUse := make(map[string]struct{}, len(referenced))
	for _, url := range referenced {
		inUse[url] = struct{}{}
	}

	objects, err := s.store.ListProfileObjects(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("avatar sweep: list objects failed")
		return
	}

	removed := 0
	for _, obj := range objects {
		if time.Since(obj.LastModified) < orphanGrace {
			continue
		}
		if _, ok := inUse[s.store.PublicURL(s.store.FilesBucket(), obj.Key)]; ok {
			continue
		}
		if err := s.store.RemoveProfileImage(ctx, obj.Key); err != nil {
			s.log.Warn().Err(err).Str("key", obj.Key).Msg("avatar sweep: delete failed")
			continue
		}
		removed++
	}
	if removed > 0 {
		s.log.Info().Int("count", removed).Msg("orphaned avatars removed")
	}
}
