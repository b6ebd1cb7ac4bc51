// ABOUTME: Data models for bizdesk entities
// ABOUTME: Defines Contact, Deal, Payment, Task, and BrandProfile structs
package models

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Company     string     `json:"company,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Status      string     `json:"status"`
	Value       int64      `json:"value,omitempty"` // estimated value in cents
	Psychology  string     `json:"psychology,omitempty"`
	LastContact *time.Time `json:"last_contact,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Deal struct {
	ID                uuid.UUID  `json:"id"`
	Title             string     `json:"title"`
	ContactID         uuid.UUID  `json:"contact_id"`
	Value             int64      `json:"value,omitempty"` // in cents
	Stage             string     `json:"stage"`
	AdSpend           int64      `json:"ad_spend,omitempty"` // in cents
	ROAS              float64    `json:"roas,omitempty"`
	Probability       int        `json:"probability"` // 0-100
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	Payments          []Payment  `json:"payments,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	LastActivityAt    time.Time  `json:"last_activity_at"`
}

type Payment struct {
	ID     uuid.UUID `json:"id"`
	DealID uuid.UUID `json:"deal_id"`
	Amount int64     `json:"amount"` // in cents, positive
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
}

type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	AISuggested bool       `json:"ai_suggested,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Contact status constants.
const (
	ContactLead      = "lead"
	ContactQualified = "qualified"
	ContactCustomer  = "customer"
	ContactChurned   = "churned"
)

// Deal stage constants, in pipeline order. StageClosedLost is a terminal
// stage kept in the data model even though no CLI command reaches it.
const (
	StageDiscovery   = "discovery"
	StageProposal    = "proposal"
	StageNegotiation = "negotiation"
	StageClosedWon   = "closed_won"
	StageClosedLost  = "closed_lost"
)

// PipelineStages lists the stages rendered as pipeline columns, in order.
var PipelineStages = []string{StageDiscovery, StageProposal, StageNegotiation, StageClosedWon}

var stageRank = map[string]int{
	StageDiscovery:   0,
	StageProposal:    1,
	StageNegotiation: 2,
	StageClosedWon:   3,
	StageClosedLost:  4,
}

// ValidStage reports whether s is a known deal stage.
func ValidStage(s string) bool {
	_, ok := stageRank[s]
	return ok
}

// StageRank returns the pipeline position of a stage, or -1 if unknown.
func StageRank(s string) int {
	if r, ok := stageRank[s]; ok {
		return r
	}
	return -1
}

// Payment status constants.
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
)

// Task priority constants.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Task status constants.
const (
	TaskPending   = "pending"
	TaskCompleted = "completed"
)

// Collected returns the sum of paid payments in cents.
func (d *Deal) Collected() int64 {
	var total int64
	for _, p := range d.Payments {
		if p.Status == PaymentPaid {
			total += p.Amount
		}
	}
	return total
}

// Remaining returns the uncollected portion of the deal value in cents.
func (d *Deal) Remaining() int64 {
	return d.Value - d.Collected()
}

// ToggledStatus returns the opposite of a task status. Toggling twice
// returns the original status.
func ToggledStatus(status string) string {
	if status == TaskCompleted {
		return TaskPending
	}
	return TaskCompleted
}

// BrandProfileID is the fixed id of the singleton brand profile row.
const BrandProfileID = "brand-profile"

type BrandProfile struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Industry       string     `json:"industry,omitempty"`
	Description    string     `json:"description,omitempty"`
	TargetAudience string     `json:"target_audience,omitempty"`
	Psychology     BrandVoice `json:"psychology"`
	Memory         AIMemory   `json:"ai_memory"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BrandVoice holds the psychology/configuration sub-object used to steer
// generated content.
type BrandVoice struct {
	Archetype  string   `json:"archetype,omitempty"`
	Tone       string   `json:"tone,omitempty"`
	Principles []string `json:"principles,omitempty"`
}

// AIMemory carries the bounded conversation history and the ad-history log.
type AIMemory struct {
	ChatHistory []ChatLog  `json:"chat_history,omitempty"`
	AdHistory   []AdRecord `json:"ad_history,omitempty"`
}

type ChatLog struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

type AdRecord struct {
	ID        string    `json:"id"`
	Headline  string    `json:"headline"`
	Body      string    `json:"body"`
	CallToAct string    `json:"call_to_action,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MaxChatHistory bounds the chat log kept in brand memory.
const MaxChatHistory = 20

// AppendChat appends a turn and drops the oldest entries beyond
// MaxChatHistory, preserving relative order of the survivors.
func (m *AIMemory) AppendChat(entry ChatLog) {
	m.ChatHistory = append(m.ChatHistory, entry)
	if n := len(m.ChatHistory); n > MaxChatHistory {
		m.ChatHistory = append([]ChatLog(nil), m.ChatHistory[n-MaxChatHistory:]...)
	}
}

// DefaultBrandProfile returns the seed profile used before any settings are
// saved.
func DefaultBrandProfile() BrandProfile {
	return BrandProfile{
		ID:        BrandProfileID,
		Name:      "My Business",
		UpdatedAt: time.Now(),
	}
}

// BrandPatch is a partial update to the brand profile. Nil fields are left
// untouched by Apply.
type BrandPatch struct {
	Name           *string     `json:"name,omitempty"`
	Industry       *string     `json:"industry,omitempty"`
	Description    *string     `json:"description,omitempty"`
	TargetAudience *string     `json:"target_audience,omitempty"`
	Psychology     *BrandVoice `json:"psychology,omitempty"`
}

// Apply merges the patch into the profile and bumps UpdatedAt.
func (p BrandPatch) Apply(b *BrandProfile) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Industry != nil {
		b.Industry = *p.Industry
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.TargetAudience != nil {
		b.TargetAudience = *p.TargetAudience
	}
	if p.Psychology != nil {
		b.Psychology = *p.Psychology
	}
	b.UpdatedAt = time.Now()
}

// GroundingSource is a citation returned alongside AI-generated reports,
// pointing at the web reference used to produce the text.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ContactUpdate is a partial update to a contact. Nil fields are left
// untouched.
type ContactUpdate struct {
	Name       *string
	Company    *string
	Email      *string
	Phone      *string
	Status     *string
	Value      *int64
	Psychology *string
}

// Apply merges the update into the contact and bumps UpdatedAt.
func (u ContactUpdate) Apply(c *Contact) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Company != nil {
		c.Company = *u.Company
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.Value != nil {
		c.Value = *u.Value
	}
	if u.Psychology != nil {
		c.Psychology = *u.Psychology
	}
	c.UpdatedAt = time.Now()
}

// Sync status constants.
const (
	SyncStatusIdle    = "idle"
	SyncStatusSyncing = "syncing"
	SyncStatusError   = "error"
)
