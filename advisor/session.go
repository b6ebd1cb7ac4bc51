// ABOUTME: Live voice advisor session over the Gemini bidirectional API
// ABOUTME: Streams mic audio up and queues model audio for playback
package advisor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bizdesk/bizdesk/models"
)

const liveEndpoint = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

// LiveModel is the realtime audio model.
const LiveModel = "models/gemini-2.0-flash-live-001"

// setupMessage opens a bidirectional session.
type setupMessage struct {
	Setup struct {
		Model            string `json:"model"`
		GenerationConfig struct {
			ResponseModalities []string `json:"response_modalities"`
		} `json:"generation_config"`
		SystemInstruction *textContent `json:"system_instruction,omitempty"`
		OutputAudioTranscription struct{} `json:"output_audio_transcription"`
	} `json:"setup"`
}

type textContent struct {
	Parts []struct {
		Text string `json:"text"`
	} `json:"parts"`
}

func newTextContent(text string) *textContent {
	c := &textContent{}
	c.Parts = append(c.Parts, struct {
		Text string `json:"text"`
	}{Text: text})
	return c
}

// realtimeInputMessage carries one uploaded audio chunk.
type realtimeInputMessage struct {
	RealtimeInput struct {
		MediaChunks []mediaChunk `json:"media_chunks"`
	} `json:"realtime_input"`
}

type mediaChunk struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// serverMessage is the subset of server events the session reacts to.
type serverMessage struct {
	SetupComplete *struct{} `json:"setupComplete,omitempty"`
	ServerContent *struct {
		ModelTurn *struct {
			Parts []struct {
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData,omitempty"`
			} `json:"parts"`
		} `json:"modelTurn,omitempty"`
		OutputTranscription *struct {
			Text string `json:"text"`
		} `json:"outputTranscription,omitempty"`
		TurnComplete bool `json:"turnComplete,omitempty"`
	} `json:"serverContent,omitempty"`
}

// Session is a live voice advisor conversation. Lifecycle is explicit:
// Start dials and confirms the connection, Stop tears it down. One
// session runs at a time.
type Session struct {
	apiKey string
	ledger *CreditLedger
	queue  *PlaybackQueue
	dialer *websocket.Dialer
	url    string

	// Transcripts receives the text side-channel of the model's speech.
	Transcripts chan string

	mu     sync.Mutex
	conn   *websocket.Conn
	open   bool
	closed chan struct{}
}

// NewSession prepares a session against the default live endpoint.
func NewSession(apiKey string, ledger *CreditLedger, sink Sink) *Session {
	return &Session{
		apiKey:      apiKey,
		ledger:      ledger,
		queue:       NewPlaybackQueue(sink, OutputSampleRate),
		dialer:      websocket.DefaultDialer,
		url:         liveEndpoint,
		Transcripts: make(chan string, 16),
		closed:      make(chan struct{}),
	}
}

// Start reserves a credit, dials the live endpoint, and confirms setup.
// The credit is only committed once the server acknowledges the session;
// any earlier failure refunds the reservation.
func (s *Session) Start(ctx context.Context, brand models.BrandProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return fmt.Errorf("advisor: session already open")
	}

	if err := s.ledger.Reserve(SessionCost); err != nil {
		return err
	}

	conn, _, err := s.dialer.DialContext(ctx, s.url+"?key="+s.apiKey, nil)
	if err != nil {
		s.ledger.Refund(SessionCost)
		return fmt.Errorf("advisor: dial live endpoint: %w", err)
	}

	var setup setupMessage
	setup.Setup.Model = LiveModel
	setup.Setup.GenerationConfig.ResponseModalities = []string{"AUDIO"}
	setup.Setup.SystemInstruction = newTextContent(fmt.Sprintf(
		"You are a business advisor for %s (%s). Be concise and practical. Target audience: %s.",
		brand.Name, brand.Industry, brand.TargetAudience))

	if err := conn.WriteJSON(&setup); err != nil {
		conn.Close()
		s.ledger.Refund(SessionCost)
		return fmt.Errorf("advisor: send setup: %w", err)
	}

	// The first server frame must acknowledge setup before any audio flows.
	var ack serverMessage
	if err := conn.ReadJSON(&ack); err != nil {
		conn.Close()
		s.ledger.Refund(SessionCost)
		return fmt.Errorf("advisor: await setup ack: %w", err)
	}
	if ack.SetupComplete == nil {
		conn.Close()
		s.ledger.Refund(SessionCost)
		return fmt.Errorf("advisor: server did not confirm setup")
	}

	s.ledger.Commit(SessionCost)
	s.conn = conn
	s.open = true
	go s.readLoop(conn)
	return nil
}

// SendAudio uploads one microphone frame. Input is resampled to the
// upload rate before encoding.
func (s *Session) SendAudio(frame []int16, sampleRate int) error {
	s.mu.Lock()
	conn := s.conn
	open := s.open
	s.mu.Unlock()

	if !open {
		return fmt.Errorf("advisor: session not open")
	}

	resampled := Resample(frame, sampleRate, InputSampleRate)

	var msg realtimeInputMessage
	msg.RealtimeInput.MediaChunks = []mediaChunk{{
		MimeType: fmt.Sprintf("audio/pcm;rate=%d", InputSampleRate),
		Data:     base64.StdEncoding.EncodeToString(EncodePCM16(resampled)),
	}}
	if err := conn.WriteJSON(&msg); err != nil {
		return fmt.Errorf("advisor: send audio: %w", err)
	}
	return nil
}

func (s *Session) readLoop(conn *websocket.Conn) {
	defer close(s.closed)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("advisor: read: %v", err)
			}
			return
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("advisor: malformed server message: %v", err)
			continue
		}
		if msg.ServerContent == nil {
			continue
		}

		if tr := msg.ServerContent.OutputTranscription; tr != nil && tr.Text != "" {
			select {
			case s.Transcripts <- tr.Text:
			default:
				// Listener fell behind; drop rather than stall audio.
			}
		}

		if turn := msg.ServerContent.ModelTurn; turn != nil {
			for _, part := range turn.Parts {
				if part.InlineData == nil {
					continue
				}
				raw, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					log.Printf("advisor: bad audio frame: %v", err)
					continue
				}
				s.queue.Enqueue(DecodePCM16(raw))
			}
		}
	}
}

// Stop closes the session. Safe to call on a session that never opened.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return
	}
	s.open = false

	_ = s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = s.conn.Close()
	<-s.closed
}
