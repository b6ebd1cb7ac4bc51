// ABOUTME: In-memory application state container backed by SQLite
// ABOUTME: Applies writes locally first, then mirrors them outward best-effort
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bizdesk/bizdesk/db"
	"github.com/bizdesk/bizdesk/models"
)

// mirrorTimeout bounds each background mirror write.
const mirrorTimeout = 30 * time.Second

// Mirror is the outward-facing side of the store. Saves are fire-and-forget
// and must never fail the local write.
type Mirror interface {
	IsConfigured() bool
	FetchContacts(ctx context.Context) ([]models.Contact, error)
	FetchDeals(ctx context.Context) ([]models.Deal, error)
	FetchTasks(ctx context.Context) ([]models.Task, error)
	FetchBrandProfile(ctx context.Context) (*models.BrandProfile, error)
	SaveContact(ctx context.Context, contact models.Contact)
	SaveDeal(ctx context.Context, deal models.Deal)
	SaveTask(ctx context.Context, task models.Task)
	SaveBrandProfile(ctx context.Context, profile models.BrandProfile)
	DeleteTask(ctx context.Context, id string)
}

// Store holds all application state in memory, newest-first, with the
// local database as the durable copy. The mirror lags behind local state
// and is never consulted on reads.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	mirror Mirror
	wg     sync.WaitGroup

	contacts []models.Contact
	deals    []models.Deal
	tasks    []models.Task
	brand    models.BrandProfile
}

// New loads a store from the local database. A nil mirror means
// local-only mode.
func New(database *sql.DB, mirror Mirror) (*Store, error) {
	s := &Store{db: database, mirror: mirror}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// reload refreshes all in-memory slices from the local database.
// Callers must hold the write lock or have exclusive access.
func (s *Store) reload() error {
	contacts, err := db.ListContacts(s.db)
	if err != nil {
		return fmt.Errorf("load contacts: %w", err)
	}
	deals, err := db.ListDeals(s.db)
	if err != nil {
		return fmt.Errorf("load deals: %w", err)
	}
	tasks, err := db.ListTasks(s.db)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	brand, err := db.GetBrandProfile(s.db)
	if err != nil {
		return fmt.Errorf("load brand profile: %w", err)
	}
	if brand == nil {
		def := models.DefaultBrandProfile()
		brand = &def
	}

	s.contacts = contacts
	s.deals = deals
	s.tasks = tasks
	s.brand = *brand
	return nil
}

// Flush waits for in-flight mirror writes. Call before process exit.
func (s *Store) Flush() {
	s.wg.Wait()
}

func (s *Store) mirrorAsync(fn func(ctx context.Context)) {
	if s.mirror == nil || !s.mirror.IsConfigured() {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		fn(ctx)
	}()
}

// Contacts returns a copy of the contact list, newest first.
func (s *Store) Contacts() []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Deals returns a copy of the deal list, newest first.
func (s *Store) Deals() []models.Deal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Deal, len(s.deals))
	copy(out, s.deals)
	return out
}

// Tasks returns a copy of the task list, newest first.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Brand returns the current brand profile.
func (s *Store) Brand() models.BrandProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brand
}

// AddContact persists a new contact and inserts it at the head of the list.
func (s *Store) AddContact(contact models.Contact) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := db.CreateContact(s.db, &contact); err != nil {
		return models.Contact{}, fmt.Errorf("add contact: %w", err)
	}
	s.contacts = append([]models.Contact{contact}, s.contacts...)

	s.mirrorAsync(func(ctx context.Context) {
		s.mirror.SaveContact(ctx, contact)
	})
	return contact, nil
}

// UpdateContact applies a partial update to a contact by id.
func (s *Store) UpdateContact(id uuid.UUID, update models.ContactUpdate) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.contacts {
		if s.contacts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Contact{}, fmt.Errorf("contact %s not found", id)
	}

	contact := s.contacts[idx]
	update.Apply(&contact)
	if err := db.UpdateContact(s.db, &contact); err != nil {
		return models.Contact{}, fmt.Errorf("update contact: %w", err)
	}
	s.contacts[idx] = contact

	s.mirrorAsync(func(ctx context.Context) {
		s.mirror.SaveContact(ctx, contact)
	})
	return contact, nil
}

// AddDeal persists a new deal and inserts it at the head of the list.
func (s *Store) AddDeal(deal models.Deal) (models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := db.CreateDeal(s.db, &deal); err != nil {
		return models.Deal{}, fmt.Errorf("add deal: %w", err)
	}
	s.deals = append([]models.Deal{deal}, s.deals...)

	s.mirrorAsync(func(ctx context.Context) {
		s.mirror.SaveDeal(ctx, deal)
	})
	return deal, nil
}

func (s *Store) dealIndex(id uuid.UUID) int {
	for i := range s.deals {
		if s.deals[i].ID == id {
			return i
		}
	}
	return -1
}

// UpdateDealStage moves a deal to a new pipeline stage.
func (s *Store) UpdateDealStage(id uuid.UUID, stage string) (models.Deal, error) {
	if !models.ValidStage(stage) {
		return models.Deal{}, fmt.Errorf("invalid stage %q", stage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.dealIndex(id)
	if idx < 0 {
		return models.Deal{}, fmt.Errorf("deal %s not found", id)
	}

	deal := s.deals[idx]
	deal.Stage = stage
	if err := db.UpdateDeal(s.db, &deal); err != nil {
		return models.Deal{}, fmt.Errorf("update deal stage: %w", err)
	}
	s.deals[idx] = deal

	s.mirrorAsync(func(ctx context.Context) {
		s.mirror.SaveDeal(ctx, deal)
	})
	return deal, nil
}

// AddPayment records a payment against a deal.
func (s *Store) AddPayment(dealID uuid.UUID, amount int64, status string) (models.Deal, error) {
	if status != models.PaymentPaid && status != models.PaymentPending {
		return models.Deal{}, fmt.Errorf("invalid payment status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.dealIndex(dealID)
	if idx < 0 {
		return models.Deal{}, fmt.Errorf("deal %s not found", dealID)
	}

	payment := models.Payment{
		DealID: dealID,
		Amount: amount,
		Status: status,
	}
	if err := db.AddPayment(s.db, &payment); err != nil {
		return models.Deal{}, fmt.Errorf("add payment: %w", err)
	}

	deal := s.deals[idx]
	deal.Payments = append(deal.Payments, payment)
	deal.LastActivityAt = payment.Date
	deal.UpdatedAt = payment.Date
	s.deals[idx] = deal

	s.mirrorAsync(func(ctx context.Context) {
		s.mirror.SaveDeal(ctx, deal)
	})
	return deal, nil
}

// UpdateDealAdMetrics stamps advertising spend and return figures onto a deal.
func (s *Store) UpdateDealAdMetrics(id uuid.UUID, adSpend int64, roas float64) (models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.dealIndex(id)
	if idx < 0 {
		return models.Deal{}, fmt.Errorf("deal %s not found", id)
	}

	deal := s.deals[idx]
	deal.AdSpend = adSpend
	deal.ROAS = roas
	if err := db.UpdateDeal(s.db, &deal); err != nil {
		return models.Deal{}, fmt.Errorf("update deal ad metrics: %w", err)
	}
	s.deals[idx] = deal

	s.mirrorAsync(func(ctx context.Context) {
		s.mirror.SaveDeal(ctx, deal)
	})
	return deal, nil
}

// AddTask persists a new task and inserts it at the head of the list.
func (s *Store) AddTask(task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addTaskLocked(task)
}

// AddTasks inserts a batch of tasks, preserving the batch's order at the
// head of the list. Used for AI-suggested task sets.
func (s *Store) AddTasks(tasks []models.Task) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]models.Task, 0, len(tasks))
	for i := len(tasks) - 1; i >= 0; i-- {
		task, err := s.addTaskLocked(tasks[i])
		if err != nil {
			return added, err
		}
		added = append([]models.Task{task}, added...)
	}
	return added, nil
}

func (s *Store) addTaskLocked(task models.Task) (models.Task, error) {
	if err := db.CreateTask(s.db, &task); err != nil {
		return models.Task{}, fmt.Errorf("add task: %w", err)
	}
	s.tasks = append([]models.Task{task}, s.tasks...)

	s.mirrorAsync(func(ctx context.Context) {
		s.mirror.SaveTask(ctx, task)
	})
	return task, nil
}

// ToggleTask flips a task between pending and completed. Toggling an
// unknown id is a no-op; the second return reports whether a task matched.
func (s *Store) ToggleTask(id uuid.UUID) (models.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Task{}, false, nil
	}

	task := s.tasks[idx]
	task.Status = models.ToggledStatus(task.Status)
	if err := db.UpdateTaskStatus(s.db, task.ID, task.Status); err != nil {
		return models.Task{}, false, fmt.Errorf("toggle task: %w", err)
	}
	s.tasks[idx] = task

	s.mirrorAsync(func(ctx context.Context) {
		s.mirror.SaveTask(ctx, task)
	})
	return task, true, nil
}

// DeleteTask removes a task. Deleting an unknown id is a no-op.
func (s *Store) DeleteTask(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := db.DeleteTask(s.db, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}

	s.mirrorAsync(func(ctx context.Context) {
		s.mirror.DeleteTask(ctx, id.String())
	})
	return nil
}

// UpdateBrand applies a partial update to the brand profile.
func (s *Store) UpdateBrand(patch models.BrandPatch) (models.BrandProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	brand := s.brand
	patch.Apply(&brand)
	brand.UpdatedAt = time.Now()
	if err := db.SaveBrandProfile(s.db, &brand); err != nil {
		return models.BrandProfile{}, fmt.Errorf("update brand: %w", err)
	}
	s.brand = brand

	s.mirrorAsync(func(ctx context.Context) {
		s.mirror.SaveBrandProfile(ctx, brand)
	})
	return brand, nil
}

// AppendChatLog records a chat turn in brand memory, capped at the most
// recent entries.
func (s *Store) AppendChatLog(role, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	brand := s.brand
	brand.Memory.AppendChat(models.ChatLog{Role: role, Text: text, At: time.Now()})
	brand.UpdatedAt = time.Now()
	if err := db.SaveBrandProfile(s.db, &brand); err != nil {
		return fmt.Errorf("append chat log: %w", err)
	}
	s.brand = brand

	s.mirrorAsync(func(ctx context.Context) {
		s.mirror.SaveBrandProfile(ctx, brand)
	})
	return nil
}

// RecordAd stores a generated ad in brand memory.
func (s *Store) RecordAd(ad models.AdRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ad.CreatedAt.IsZero() {
		ad.CreatedAt = time.Now()
	}
	brand := s.brand
	brand.Memory.AdHistory = append(brand.Memory.AdHistory, ad)
	brand.UpdatedAt = time.Now()
	if err := db.SaveBrandProfile(s.db, &brand); err != nil {
		return fmt.Errorf("record ad: %w", err)
	}
	s.brand = brand

	s.mirrorAsync(func(ctx context.Context) {
		s.mirror.SaveBrandProfile(ctx, brand)
	})
	return nil
}

// SyncStates reports per-service mirror status from the local database.
func (s *Store) SyncStates() ([]db.SyncState, error) {
	return db.GetAllSyncStates(s.db)
}
