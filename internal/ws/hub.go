package ws

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/magcp/community/internal/models"
	"github.com/magcp/community/internal/state"
)

// Inbound is a frame received from a client: the text and optional attachment
// reference of a new group message. The author is taken from the connection.
type Inbound struct {
	Text string          `json:"text"`
	File *models.FileRef `json:"file,omitempty"`

	authorID string
}

// Hub fans new group messages out to every connected client. Messages arrive
// either over a client's websocket (inbound) or from the state facade's
// change notifications (events), so HTTP-posted messages reach live clients
// too.
type Hub struct {
	clients map[*Client]bool

	inbound chan Inbound

	// Appended messages to fan out, regardless of how they were sent.
	events chan models.Message

	register   chan *Client
	unregister chan *Client

	app *state.State
	log zerolog.Logger
}

func NewHub(app *state.State, log zerolog.Logger) *Hub {
	return &Hub{
		inbound:    make(chan Inbound),
		events:     make(chan models.Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		app:        app,
		log:        log,
	}
}

// Notify is the facade observer. It must not block, so a full event buffer
// drops the fan-out; clients recover on their next fetch.
func (h *Hub) Notify(e state.Event) {
	if e.Kind != state.EventMessages || e.Message == nil {
		return
	}
	select {
	case h.events <- *e.Message:
	default:
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case in := <-h.inbound:
			// Apply through the facade; the resulting event comes back via
			// Notify and is fanned out below.
			if _, err := h.app.SendMessage(in.Text, in.File, in.authorID); err != nil {
				h.log.Warn().Err(err).Str("author", in.authorID).Msg("ws message rejected")
			}
		case msg := <-h.events:
			raw, err := json.Marshal(msg)
			if err != nil {
				h.log.Error().Err(err).Msg("encode message")
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- raw:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}
