// ABOUTME: Tests for entity model helpers
// ABOUTME: Covers payment math, status toggling, stage ordering, and chat history bounds
package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealCollectedAndRemaining(t *testing.T) {
	deal := Deal{
		Title: "Launch package",
		Value: 500000,
		Payments: []Payment{
			{Amount: 200000, Status: PaymentPaid},
			{Amount: 100000, Status: PaymentPending},
		},
	}

	assert.Equal(t, int64(200000), deal.Collected(), "pending payments must not count")
	assert.Equal(t, int64(300000), deal.Remaining())
}

func TestDealCollectedEmpty(t *testing.T) {
	deal := Deal{Value: 1000}
	assert.Equal(t, int64(0), deal.Collected())
	assert.Equal(t, int64(1000), deal.Remaining())
}

func TestToggledStatusInvolution(t *testing.T) {
	for _, status := range []string{TaskPending, TaskCompleted} {
		assert.Equal(t, status, ToggledStatus(ToggledStatus(status)))
	}
	assert.Equal(t, TaskCompleted, ToggledStatus(TaskPending))
}

func TestStageOrdering(t *testing.T) {
	require.True(t, StageRank(StageDiscovery) < StageRank(StageProposal))
	require.True(t, StageRank(StageProposal) < StageRank(StageNegotiation))
	require.True(t, StageRank(StageNegotiation) < StageRank(StageClosedWon))

	// closed_lost stays in the model even without a pipeline column
	assert.True(t, ValidStage(StageClosedLost))
	assert.Equal(t, -1, StageRank("unknown"))
	assert.False(t, ValidStage("unknown"))
}

func TestAppendChatCapsHistory(t *testing.T) {
	var mem AIMemory
	for i := 0; i < MaxChatHistory+5; i++ {
		mem.AppendChat(ChatLog{Role: "user", Text: fmt.Sprintf("turn %d", i), At: time.Now()})
	}

	require.Len(t, mem.ChatHistory, MaxChatHistory)
	// Oldest entries dropped, relative order preserved
	assert.Equal(t, "turn 5", mem.ChatHistory[0].Text)
	assert.Equal(t, fmt.Sprintf("turn %d", MaxChatHistory+4), mem.ChatHistory[MaxChatHistory-1].Text)
}

func TestBrandPatchApply(t *testing.T) {
	profile := DefaultBrandProfile()
	before := profile.UpdatedAt

	name := "Acme Fitness"
	industry := "fitness"
	patch := BrandPatch{Name: &name, Industry: &industry}
	patch.Apply(&profile)

	assert.Equal(t, "Acme Fitness", profile.Name)
	assert.Equal(t, "fitness", profile.Industry)
	assert.Equal(t, "", profile.Description, "unpatched fields untouched")
	assert.False(t, profile.UpdatedAt.Before(before))
}

func TestContactUpdateApply(t *testing.T) {
	contact := Contact{Name: "Jane Doe", Status: ContactLead}

	status := ContactQualified
	value := int64(500000)
	update := ContactUpdate{Status: &status, Value: &value}
	update.Apply(&contact)

	assert.Equal(t, ContactQualified, contact.Status)
	assert.Equal(t, int64(500000), contact.Value)
	assert.Equal(t, "Jane Doe", contact.Name)
}
