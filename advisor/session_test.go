// ABOUTME: Tests for the live advisor session lifecycle
// ABOUTME: Covers credit reservation, refund on failed open, and server events
package advisor

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizdesk/bizdesk/models"
)

type nullSink struct{}

func (nullSink) ScheduleAt([]int16, time.Duration) {}

func liveTestServer(t *testing.T, handler func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func ackSetup(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	var setup map[string]any
	if err := conn.ReadJSON(&setup); err != nil {
		t.Errorf("read setup: %v", err)
		return
	}
	if _, ok := setup["setup"]; !ok {
		t.Error("first client message was not a setup message")
	}
	_ = conn.WriteJSON(map[string]any{"setupComplete": map[string]any{}})
}

func TestStartCommitsCreditOnSuccess(t *testing.T) {
	srv := liveTestServer(t, func(conn *websocket.Conn) {
		ackSetup(t, conn)
		// Hold the connection open until the client closes
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	ledger := NewCreditLedger(3)
	s := NewSession("key", ledger, nullSink{})
	s.url = wsURL(srv)

	require.NoError(t, s.Start(context.Background(), models.BrandProfile{Name: "Acme"}))
	assert.Equal(t, 2, ledger.Balance())

	s.Stop()
	assert.Equal(t, 2, ledger.Balance(), "stopping must not refund a spent credit")
}

func TestStartRefundsOnDialFailure(t *testing.T) {
	ledger := NewCreditLedger(1)
	s := NewSession("key", ledger, nullSink{})
	s.url = "ws://127.0.0.1:1"

	err := s.Start(context.Background(), models.BrandProfile{})
	require.Error(t, err)
	assert.Equal(t, 1, ledger.Balance(), "failed dial must refund the reservation")

	// The refunded credit is still usable
	require.NoError(t, ledger.Reserve(SessionCost))
}

func TestStartRefundsWhenServerRefusesSetup(t *testing.T) {
	srv := liveTestServer(t, func(conn *websocket.Conn) {
		var setup map[string]any
		_ = conn.ReadJSON(&setup)
		_ = conn.WriteJSON(map[string]any{"error": "model unavailable"})
	})

	ledger := NewCreditLedger(1)
	s := NewSession("key", ledger, nullSink{})
	s.url = wsURL(srv)

	err := s.Start(context.Background(), models.BrandProfile{})
	require.Error(t, err)
	assert.Equal(t, 1, ledger.Balance())
}

func TestStartWithoutCreditsFails(t *testing.T) {
	ledger := NewCreditLedger(0)
	s := NewSession("key", ledger, nullSink{})

	err := s.Start(context.Background(), models.BrandProfile{})
	assert.ErrorIs(t, err, ErrInsufficientCredits)
}

func TestTranscriptsAndAudioFrames(t *testing.T) {
	audio := EncodePCM16([]int16{1, 2, 3, 4})
	srv := liveTestServer(t, func(conn *websocket.Conn) {
		ackSetup(t, conn)
		_ = conn.WriteJSON(map[string]any{
			"serverContent": map[string]any{
				"outputTranscription": map[string]any{"text": "Raise your prices."},
				"modelTurn": map[string]any{
					"parts": []map[string]any{
						{"inlineData": map[string]any{
							"mimeType": "audio/pcm;rate=24000",
							"data":     base64.StdEncoding.EncodeToString(audio),
						}},
					},
				},
			},
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	sink := &recordingSink{}
	ledger := NewCreditLedger(1)
	s := NewSession("key", ledger, nil)
	s.queue = newPlaybackQueue(sink, OutputSampleRate, time.Now)
	s.url = wsURL(srv)

	require.NoError(t, s.Start(context.Background(), models.BrandProfile{}))
	defer s.Stop()

	select {
	case text := <-s.Transcripts:
		assert.Equal(t, "Raise your prices.", text)
	case <-time.After(2 * time.Second):
		t.Fatal("no transcript received")
	}

	deadline := time.After(2 * time.Second)
	for len(sink.scheduled()) == 0 {
		select {
		case <-deadline:
			t.Fatal("no audio frame scheduled")
		case <-time.After(10 * time.Millisecond):
		}
	}
	assert.Equal(t, []int16{1, 2, 3, 4}, sink.scheduled()[0])
}

func TestSendAudioRequiresOpenSession(t *testing.T) {
	s := NewSession("key", NewCreditLedger(1), nullSink{})
	err := s.SendAudio([]int16{1, 2, 3}, 48000)
	require.Error(t, err)
}

func TestCreditLedgerAccounting(t *testing.T) {
	l := NewCreditLedger(2)
	assert.Equal(t, 2, l.Balance())

	require.NoError(t, l.Reserve(1))
	assert.Equal(t, 1, l.Balance())

	l.Refund(1)
	assert.Equal(t, 2, l.Balance())

	require.NoError(t, l.Reserve(2))
	assert.ErrorIs(t, l.Reserve(1), ErrInsufficientCredits)

	l.Commit(2)
	assert.Equal(t, 0, l.Balance())
}
