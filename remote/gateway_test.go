// ABOUTME: Tests for the remote gateway
// ABOUTME: Covers unconfigured short-circuit, fetch decoding, and upsert wire format
package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizdesk/bizdesk/config"
	"github.com/bizdesk/bizdesk/models"
)

func TestUnconfiguredGatewayShortCircuits(t *testing.T) {
	gw := NewGateway(config.RemoteConfig{})

	assert.False(t, gw.IsConfigured())

	contacts, err := gw.FetchContacts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, contacts)

	deals, err := gw.FetchDeals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, deals)

	profile, err := gw.FetchBrandProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)

	// Saves must be no-ops, not panics
	gw.SaveContact(context.Background(), models.Contact{ID: uuid.New()})
	gw.DeleteTask(context.Background(), uuid.NewString())
}

func TestNonHTTPURLDisablesGateway(t *testing.T) {
	gw := NewGateway(config.RemoteConfig{
		URL:    "postgres://db.example.com:5432/app",
		APIKey: "key",
	})
	assert.False(t, gw.IsConfigured())
}

func TestFetchContactsDecodesRows(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/contacts", r.URL.Path)
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"` + id.String() + `","name":"Dana Fields","company":"Fields Media","status":"lead","value":120000,"created_at":"2026-08-01T10:00:00Z","updated_at":"2026-08-01T10:00:00Z"}]`))
	}))
	defer srv.Close()

	gw := NewGateway(config.RemoteConfig{URL: srv.URL, APIKey: "service-key"})
	require.True(t, gw.IsConfigured())

	contacts, err := gw.FetchContacts(context.Background())
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, id, contacts[0].ID)
	assert.Equal(t, "Dana Fields", contacts[0].Name)
	assert.Equal(t, int64(120000), contacts[0].Value)
}

func TestFetchContactsSkipsMalformedRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"not-a-uuid","name":"Broken"},{"id":"` + uuid.NewString() + `","name":"OK","created_at":"2026-08-01T10:00:00Z","updated_at":"2026-08-01T10:00:00Z"}]`))
	}))
	defer srv.Close()

	gw := NewGateway(config.RemoteConfig{URL: srv.URL, APIKey: "k"})

	contacts, err := gw.FetchContacts(context.Background())
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "OK", contacts[0].Name)
}

func TestFetchDistinguishesTransportFromParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{this is not json`))
	}))
	defer srv.Close()

	gw := NewGateway(config.RemoteConfig{URL: srv.URL, APIKey: "k"})
	_, err := gw.FetchTasks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")

	srv.Close()
	_, err = gw.FetchTasks(context.Background())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "decode")
}

func TestSaveDealSendsUpsert(t *testing.T) {
	var gotPath, gotPrefer, gotConflict, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPrefer = r.Header.Get("Prefer")
		gotConflict = r.URL.Query().Get("on_conflict")
		buf := make([]byte, 4096)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	gw := NewGateway(config.RemoteConfig{URL: srv.URL, APIKey: "k"})

	deal := models.Deal{
		ID:        uuid.New(),
		Title:     "Retainer",
		ContactID: uuid.New(),
		Value:     500000,
		Stage:     models.StageProposal,
		Payments: []models.Payment{
			{ID: uuid.New(), Amount: 200000, Status: models.PaymentPaid, Date: time.Now()},
		},
	}
	gw.SaveDeal(context.Background(), deal)

	assert.Equal(t, "/rest/v1/deals", gotPath)
	assert.Contains(t, gotPrefer, "resolution=merge-duplicates")
	assert.Equal(t, "id", gotConflict)
	assert.Contains(t, gotBody, `"stage":"proposal"`)
	assert.Contains(t, gotBody, `"payments"`)
}

func TestSaveSwallowsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	gw := NewGateway(config.RemoteConfig{URL: srv.URL, APIKey: "k"})

	// Must not panic or surface the failure
	gw.SaveContact(context.Background(), models.Contact{ID: uuid.New(), Name: "X"})
	gw.SaveTask(context.Background(), models.Task{ID: uuid.New(), Title: "X"})
}

func TestDeleteTaskFiltersByID(t *testing.T) {
	var gotMethod, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	gw := NewGateway(config.RemoteConfig{URL: srv.URL, APIKey: "k"})
	id := uuid.NewString()
	gw.DeleteTask(context.Background(), id)

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.True(t, strings.Contains(gotQuery, "id=eq."+id), "query %q should filter by id", gotQuery)
}

func TestFetchBrandProfileEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/brand_profile", r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	gw := NewGateway(config.RemoteConfig{URL: srv.URL, APIKey: "k"})
	profile, err := gw.FetchBrandProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
}
