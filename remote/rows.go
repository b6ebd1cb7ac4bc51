// ABOUTME: Wire row formats for the remote store tables
// ABOUTME: Converts between local models and PostgREST JSON rows
package remote

import (
	"time"

	"github.com/google/uuid"

	"github.com/bizdesk/bizdesk/models"
)

type contactRow struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Company     string     `json:"company"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Status      string     `json:"status"`
	Value       int64      `json:"value"`
	Psychology  string     `json:"psychology"`
	LastContact *time.Time `json:"last_contact,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func contactToRow(c models.Contact) contactRow {
	return contactRow{
		ID:          c.ID.String(),
		Name:        c.Name,
		Company:     c.Company,
		Email:       c.Email,
		Phone:       c.Phone,
		Status:      c.Status,
		Value:       c.Value,
		Psychology:  c.Psychology,
		LastContact: c.LastContact,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r contactRow) toModel() (models.Contact, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return models.Contact{}, err
	}
	return models.Contact{
		ID:          id,
		Name:        r.Name,
		Company:     r.Company,
		Email:       r.Email,
		Phone:       r.Phone,
		Status:      r.Status,
		Value:       r.Value,
		Psychology:  r.Psychology,
		LastContact: r.LastContact,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

type paymentRow struct {
	ID     string    `json:"id"`
	Amount int64     `json:"amount"`
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
}

type dealRow struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	ContactID         string       `json:"contact_id"`
	Value             int64        `json:"value"`
	Stage             string       `json:"stage"`
	AdSpend           int64        `json:"ad_spend"`
	ROAS              float64      `json:"roas"`
	Probability       int          `json:"probability"`
	ExpectedCloseDate *time.Time   `json:"expected_close_date,omitempty"`
	Payments          []paymentRow `json:"payments"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
	LastActivityAt    time.Time    `json:"last_activity_at"`
}

func dealToRow(d models.Deal) dealRow {
	row := dealRow{
		ID:                d.ID.String(),
		Title:             d.Title,
		ContactID:         d.ContactID.String(),
		Value:             d.Value,
		Stage:             d.Stage,
		AdSpend:           d.AdSpend,
		ROAS:              d.ROAS,
		Probability:       d.Probability,
		ExpectedCloseDate: d.ExpectedCloseDate,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
		LastActivityAt:    d.LastActivityAt,
	}
	for _, p := range d.Payments {
		row.Payments = append(row.Payments, paymentRow{
			ID:     p.ID.String(),
			Amount: p.Amount,
			Status: p.Status,
			Date:   p.Date,
		})
	}
	return row
}

func (r dealRow) toModel() (models.Deal, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return models.Deal{}, err
	}
	contactID, err := uuid.Parse(r.ContactID)
	if err != nil {
		return models.Deal{}, err
	}
	deal := models.Deal{
		ID:                id,
		Title:             r.Title,
		ContactID:         contactID,
		Value:             r.Value,
		Stage:             r.Stage,
		AdSpend:           r.AdSpend,
		ROAS:              r.ROAS,
		Probability:       r.Probability,
		ExpectedCloseDate: r.ExpectedCloseDate,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		LastActivityAt:    r.LastActivityAt,
	}
	for _, p := range r.Payments {
		pid, err := uuid.Parse(p.ID)
		if err != nil {
			return models.Deal{}, err
		}
		deal.Payments = append(deal.Payments, models.Payment{
			ID:     pid,
			DealID: id,
			Amount: p.Amount,
			Status: p.Status,
			Date:   p.Date,
		})
	}
	return deal, nil
}

type taskRow struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	AISuggested bool       `json:"ai_suggested"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func taskToRow(t models.Task) taskRow {
	return taskRow{
		ID:          t.ID.String(),
		Title:       t.Title,
		Priority:    t.Priority,
		Status:      t.Status,
		DueDate:     t.DueDate,
		AISuggested: t.AISuggested,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r taskRow) toModel() (models.Task, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return models.Task{}, err
	}
	return models.Task{
		ID:          id,
		Title:       r.Title,
		Priority:    r.Priority,
		Status:      r.Status,
		DueDate:     r.DueDate,
		AISuggested: r.AISuggested,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

type brandRow struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Industry       string            `json:"industry"`
	Description    string            `json:"description"`
	TargetAudience string            `json:"target_audience"`
	Psychology     models.BrandVoice `json:"psychology"`
	Memory         models.AIMemory   `json:"ai_memory"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func brandToRow(b models.BrandProfile) brandRow {
	id := b.ID
	if id == "" {
		id = models.BrandProfileID
	}
	return brandRow{
		ID:             id,
		Name:           b.Name,
		Industry:       b.Industry,
		Description:    b.Description,
		TargetAudience: b.TargetAudience,
		Psychology:     b.Psychology,
		Memory:         b.Memory,
		UpdatedAt:      b.UpdatedAt,
	}
}

func (r brandRow) toModel() models.BrandProfile {
	return models.BrandProfile{
		ID:             r.ID,
		Name:           r.Name,
		Industry:       r.Industry,
		Description:    r.Description,
		TargetAudience: r.TargetAudience,
		Psychology:     r.Psychology,
		Memory:         r.Memory,
		UpdatedAt:      r.UpdatedAt,
	}
}
