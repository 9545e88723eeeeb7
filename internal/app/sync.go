package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomic-arch/ghusers/internal/domain"
	"github.com/atomic-arch/ghusers/internal/logger"
	"github.com/atomic-arch/ghusers/pkg/publishers"
)

const syncSource = "github.users"

// UserLister lists one page of users starting after the since id.
type UserLister interface {
	ListUsers(ctx context.Context, perPage, since int) ([]domain.User, error)
}

// EventPublisher delivers events and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// SyncReport summarizes a sync run.
type SyncReport struct {
	Pages     int `json:"pages" yaml:"pages"`
	Users     int `json:"users" yaml:"users"`
	Delivered int `json:"delivered" yaml:"delivered"`
	Failed    int `json:"failed" yaml:"failed"`
	LastID    int `json:"last_id" yaml:"last_id"`
}

// Syncer pages through the user listing and publishes every user.
type Syncer struct {
	users    UserLister
	pub      EventPublisher
	perPage  int
	maxPages int
	log      logger.Logger
}

// NewSyncer builds a syncer; perPage and maxPages must be positive.
func NewSyncer(users UserLister, pub EventPublisher, perPage, maxPages int, log logger.Logger) *Syncer {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Syncer{users: users, pub: pub, perPage: perPage, maxPages: maxPages, log: log}
}

// Run starts after since and stops on an empty page, after maxPages pages,
// or when ctx is done. Publish failures are counted, not fatal.
func (s *Syncer) Run(ctx context.Context, since int) (SyncReport, error) {
	report := SyncReport{LastID: since}
	start := time.Now()

	for report.Pages < s.maxPages {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		page, err := s.users.ListUsers(ctx, s.perPage, report.LastID)
		if err != nil {
			return report, fmt.Errorf("list users since %d: %w", report.LastID, err)
		}
		if len(page) == 0 {
			break
		}
		report.Pages++

		for _, u := range page {
			report.Users++
			n, err := s.pub.Publish(ctx, publishers.NewEvent(syncSource, u))
			report.Delivered += n
			if err != nil {
				report.Failed++
				s.log.WarnObj("user publish failed", "sync_publish_error", map[string]any{
					"login": u.Login,
					"error": err.Error(),
				})
			}
			if u.ID > report.LastID {
				report.LastID = u.ID
			}
		}
	}

	s.log.InfoObj("sync completed", "sync_report", map[string]any{
		"pages":      report.Pages,
		"users":      report.Users,
		"delivered":  report.Delivered,
		"failed":     report.Failed,
		"last_id":    report.LastID,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return report, nil
}

// Sync loads enabled publishers and runs a sync starting after since.
func (a *App) Sync(ctx context.Context, since int) (SyncReport, error) {
	reg, err := publishers.LoadRegistry(a.cfg.PublishersFile)
	if err != nil {
		return SyncReport{}, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()
	if len(enabled) == 0 {
		return SyncReport{}, errors.New("no publishers enabled")
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, a.log)
	if err != nil {
		return SyncReport{}, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubs)
	defer func() {
		if err := fanout.Close(); err != nil {
			a.log.WarnObj("close publishers failed", "error", err.Error())
		}
	}()
	a.log.InfoObj("publishers loaded", "publishers", enabled)

	return NewSyncer(a.users, fanout, a.cfg.SyncPerPage, a.cfg.SyncMaxPages, a.log).Run(ctx, since)
}
