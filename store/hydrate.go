// ABOUTME: Startup hydration from the remote mirror
// ABOUTME: Fetches all collections concurrently and applies only non-empty results
package store

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/bizdesk/bizdesk/db"
	"github.com/bizdesk/bizdesk/models"
)

const syncServiceRemote = "remote"

// Hydrate pulls remote state into the local database on startup. All four
// collections are fetched concurrently. An empty or failed fetch leaves
// the local seed untouched: the remote never clears local data. Hydrate
// itself never fails the launch; errors are logged and reflected in sync
// state.
func (s *Store) Hydrate(ctx context.Context) {
	if s.mirror == nil || !s.mirror.IsConfigured() {
		return
	}

	if err := db.UpdateSyncStatus(s.db, syncServiceRemote, models.SyncStatusSyncing, nil); err != nil {
		log.Printf("hydrate: record sync status: %v", err)
	}

	var (
		contacts []models.Contact
		deals    []models.Deal
		tasks    []models.Task
		brand    *models.BrandProfile

		errContacts, errDeals, errTasks, errBrand error
	)

	// Each goroutine returns nil so one bad collection does not cancel
	// the others. Fetch errors are kept per-collection.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		contacts, errContacts = s.mirror.FetchContacts(gctx)
		return nil
	})
	g.Go(func() error {
		deals, errDeals = s.mirror.FetchDeals(gctx)
		return nil
	})
	g.Go(func() error {
		tasks, errTasks = s.mirror.FetchTasks(gctx)
		return nil
	})
	g.Go(func() error {
		brand, errBrand = s.mirror.FetchBrandProfile(gctx)
		return nil
	})
	_ = g.Wait()

	var firstErr string
	for _, err := range []error{errContacts, errDeals, errTasks, errBrand} {
		if err != nil {
			log.Printf("hydrate: %v", err)
			if firstErr == "" {
				firstErr = err.Error()
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range contacts {
		c := c
		if err := db.UpsertContact(s.db, &c); err != nil {
			log.Printf("hydrate: upsert contact %s: %v", c.ID, err)
		}
	}
	for _, d := range deals {
		d := d
		if err := db.UpsertDeal(s.db, &d); err != nil {
			log.Printf("hydrate: upsert deal %s: %v", d.ID, err)
		}
	}
	for _, t := range tasks {
		t := t
		if err := db.UpsertTask(s.db, &t); err != nil {
			log.Printf("hydrate: upsert task %s: %v", t.ID, err)
		}
	}
	if brand != nil {
		if err := db.SaveBrandProfile(s.db, brand); err != nil {
			log.Printf("hydrate: save brand profile: %v", err)
		}
	}

	if err := s.reload(); err != nil {
		log.Printf("hydrate: reload: %v", err)
	}

	if firstErr != "" {
		if err := db.UpdateSyncStatus(s.db, syncServiceRemote, models.SyncStatusError, &firstErr); err != nil {
			log.Printf("hydrate: record sync status: %v", err)
		}
		return
	}
	if err := db.MarkSynced(s.db, syncServiceRemote); err != nil {
		log.Printf("hydrate: record sync status: %v", err)
	}
}
