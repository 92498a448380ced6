package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/sipcrew/partyround/internal/services/round"
)

// Handler upgrades player connections and dispatches their operations onto
// the round service.
type Handler struct {
	service  round.Service
	hub      *Hub
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a websocket handler in front of the round service
func NewHandler(service round.Service, hub *Hub, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{
		service: service,
		hub:     hub,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the request and runs the connection's read loop. The
// session code and player ID ride in the query string.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	playerID := r.URL.Query().Get("playerId")
	if code == "" || playerID == "" {
		http.Error(w, "missing code or playerId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	c := newClient(conn)
	h.hub.join(code, c)
	go c.writeLoop()

	defer func() {
		h.hub.leave(code, c)
		conn.Close()
	}()

	// Hand the newcomer the current document so they can render immediately
	if out, err := h.service.GetSession(r.Context(), &round.GetSessionInput{Code: code}); err == nil {
		h.push(code, c, &outbound{Type: messageTypeSession, Session: out.Session})
	} else {
		h.push(code, c, &outbound{Type: messageTypeError, Message: err.Error()})
	}

	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		if err := h.dispatch(r, code, playerID, &msg); err != nil {
			h.push(code, c, &outbound{Type: messageTypeError, Message: err.Error()})
		}
	}
}

// dispatch routes one inbound operation to the round service. Successful
// operations answer with the room-wide session broadcast, not a direct reply.
func (h *Handler) dispatch(r *http.Request, code, playerID string, msg *inbound) error {
	ctx := r.Context()

	switch msg.Type {
	case opJoin:
		_, err := h.service.JoinSession(ctx, &round.JoinSessionInput{
			Code:     code,
			PlayerID: playerID,
		})
		return err

	case opLeave:
		_, err := h.service.LeaveSession(ctx, &round.LeaveSessionInput{
			Code:     code,
			PlayerID: playerID,
		})
		return err

	case opKick:
		var payload kickPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		_, err := h.service.KickPlayer(ctx, &round.KickPlayerInput{
			Code:      code,
			CreatorID: playerID,
			PlayerID:  payload.PlayerID,
		})
		return err

	case opStart:
		_, err := h.service.StartGame(ctx, &round.StartGameInput{
			Code:     code,
			PlayerID: playerID,
		})
		return err

	case opAnswer:
		var payload answerPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		_, err := h.service.RecordAnswer(ctx, &round.RecordAnswerInput{
			Code:       code,
			PlayerID:   playerID,
			QuestionID: payload.QuestionID,
			Value:      payload.Value,
			Ranking:    payload.Ranking,
		})
		return err

	case opAdvance:
		_, err := h.service.AdvanceRound(ctx, &round.AdvanceRoundInput{
			Code:     code,
			PlayerID: playerID,
		})
		return err

	case opEndRound:
		_, err := h.service.EndRound(ctx, &round.EndRoundInput{
			Code:     code,
			PlayerID: playerID,
		})
		return err

	default:
		return errUnsupportedOp
	}
}

func (h *Handler) push(code string, c *client, msg *outbound) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.hub.sendTo(code, c, raw)
}

type wsError string

func (e wsError) Error() string {
	return string(e)
}

const (
	errInvalidPayload wsError = "invalid payload"
	errUnsupportedOp  wsError = "unsupported operation"
)
