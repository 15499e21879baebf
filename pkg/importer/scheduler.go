package importer

import (
	"context"
	"fmt"

	"github.com/meetcal/meetcal/internal/config"
	"github.com/meetcal/meetcal/pkg/user"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type FeedUsers interface {
	FindUsersWithIcsFeed(ctx context.Context) ([]user.User, error)
}

// Scheduler periodically imports the ICS feed of every user who configured one.
type Scheduler struct {
	cfg      config.Sync
	cron     *cron.Cron
	importer Service
	users    FeedUsers
	source   string
}

func NewScheduler(cfg config.Sync, importer Service, users FeedUsers, source string) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		cron:     cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log.StandardLogger()))),
		importer: importer,
		users:    users,
		source:   source,
	}
}

func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		log.Info("Feed sync is disabled")
		return nil
	}
	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.SyncAll(context.Background())
	})
	if err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", s.cfg.Schedule, err)
	}
	s.cron.Start()
	log.Infof("Feed sync scheduled: %s", s.cfg.Schedule)
	return nil
}

// Stop halts scheduling; the returned context is done once a running sync finishes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// SyncAll imports feeds one user after another and returns how many succeeded.
func (s *Scheduler) SyncAll(ctx context.Context) int {
	users, err := s.users.FindUsersWithIcsFeed(ctx)
	if err != nil {
		log.Errorf("failed to list users with a feed: %v", err)
		return 0
	}
	synced := 0
	for _, u := range users {
		if ctx.Err() != nil {
			break
		}
		result, err := s.importer.Import(user.WithUser(ctx, u), s.source)
		if err != nil {
			log.Errorf("feed sync of user %d failed: %v", u.Id, err)
			continue
		}
		log.Debugf("feed sync of user %d inserted %d events", u.Id, result.Inserted)
		synced++
	}
	return synced
}
