package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"word-quiz/internal/app"
	"word-quiz/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewWSHandler(service *app.GameService, logger *slog.Logger) *WSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger.With("component", "ws"),
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type guessPayload struct {
	Word string `json:"word"`
}

type startedPayload struct {
	SessionID  string          `json:"sessionId"`
	Difficulty string          `json:"difficulty"`
	Question   domain.Question `json:"question"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// questionForwarder pushes questions dealt after the session started (advance timer,
// play again) and advance failures onto the connection's send queue. It drops everything once shut down so a
// late timer callback never writes to a closed channel.
type questionForwarder struct {
	app.NopListener
	mu     sync.Mutex
	ready  bool
	closed bool
	send   chan<- outboundMessage[any]
}

func (f *questionForwarder) OnQuestion(_ string, q domain.Question) {
	f.forward(outboundMessage[any]{Type: "question", Payload: q})
}

func (f *questionForwarder) OnError(_ string, err error) {
	f.forward(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
}

func (f *questionForwarder) forward(msg outboundMessage[any]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.ready || f.closed {
		return
	}
	f.send <- msg
}

func (f *questionForwarder) activate() {
	f.mu.Lock()
	f.ready = true
	f.mu.Unlock()
}

func (f *questionForwarder) shutdown() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

// ServeWS upgrades HTTP requests to websockets and runs one game session per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	difficulty, err := strconv.Atoi(r.URL.Query().Get("difficulty"))
	if err != nil {
		http.Error(w, "missing or invalid difficulty", http.StatusBadRequest)
		return
	}
	diff, err := domain.ParseDifficulty(difficulty)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Warn("ws write error", slog.Any("error", err))
				// keep draining so producers never block on a dead connection
				for range send {
				}
				return
			}
		}
	}()

	forwarder := &questionForwarder{send: send}
	sessionID, first, err := h.service.Start(r.Context(), int(diff), forwarder)
	if err != nil {
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		close(send)
		<-writerDone
		return
	}

	send <- outboundMessage[any]{Type: "started", Payload: startedPayload{
		SessionID:  sessionID,
		Difficulty: diff.String(),
		Question:   first,
	}}
	forwarder.activate()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "guess":
			var payload guessPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid guess payload"}}
				continue
			}
			result, summary, err := h.service.Guess(r.Context(), sessionID, payload.Word)
			if err != nil && summary == nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "guessResult", Payload: result}
			if summary != nil {
				send <- outboundMessage[any]{Type: "completed", Payload: summary}
			}
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "playAgain":
			// the fresh first question arrives through the forwarder
			if _, err := h.service.PlayAgain(r.Context(), sessionID); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	h.service.Leave(r.Context(), sessionID)
	forwarder.shutdown()
	close(send)
	<-writerDone
}
