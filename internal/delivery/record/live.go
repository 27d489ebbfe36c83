package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	errs "sgf_studio/internal/errors"
	"sgf_studio/internal/domain/record"
	"sgf_studio/internal/httpresponse"
	"sgf_studio/internal/usecase/editor"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleLive upgrades to a websocket and runs the editor loop over it: every
// state is pushed as JSON, every incoming JSON message is one command.
func (h *RecordHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if _, err := h.recordUC.State(r.Context(), key); err != nil {
		h.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorw("websocket upgrade failed", "key", key, "error", err)
		return
	}
	defer conn.Close()

	adapter := &wsAdapter{key: key, conn: conn, log: h.log}
	if err := h.recordUC.Live(r.Context(), key, adapter); err != nil {
		h.log.Errorw("live session aborted", "key", key, "error", err)
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
}

// wsAdapter is a live client speaking JSON over one websocket.
type wsAdapter struct {
	key  string
	conn *websocket.Conn
	log  *zap.SugaredLogger
}

type liveError struct {
	Error string `json:"error"`
}

func (a *wsAdapter) Render(state *record.State) error {
	return a.conn.WriteJSON(httpresponse.Response[any]{Status: http.StatusOK, Body: state})
}

// NextCommand blocks until a valid command arrives. Invalid ones are answered
// with an error message and skipped; a closed socket or "quit" ends the loop.
func (a *wsAdapter) NextCommand() (editor.Command, error) {
	for {
		_, msg, err := a.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, editor.ErrQuit
			}
			return nil, err
		}

		var req CommandRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			if werr := a.reject(fmt.Errorf("invalid JSON: %w", err)); werr != nil {
				return nil, werr
			}
			continue
		}

		cmd, err := req.ToCommand()
		if errors.Is(err, editor.ErrQuit) {
			return nil, editor.ErrQuit
		}
		if err != nil {
			a.log.Infow("live command rejected", "key", a.key, "error", err)
			if werr := a.reject(err); werr != nil {
				return nil, werr
			}
			continue
		}
		return cmd, nil
	}
}

func (a *wsAdapter) reject(err error) error {
	status := http.StatusUnprocessableEntity
	if !errors.Is(err, errs.ErrInvalidCommand) && !errors.Is(err, errs.ErrInvalidProperty) &&
		!errors.Is(err, errs.ErrMalformedRecord) {
		status = http.StatusBadRequest
	}
	return a.conn.WriteJSON(httpresponse.Response[any]{Status: status, Body: liveError{Error: err.Error()}})
}
