package record

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sgf_studio/internal/bootstrap"
	errs "sgf_studio/internal/errors"
	"sgf_studio/internal/httpresponse"
	recorduc "sgf_studio/internal/usecase/record"
	"sgf_studio/internal/utils"
)

const maxRecordBytes = 4 << 20

type RecordHandler struct {
	cfg      bootstrap.Config
	log      *zap.SugaredLogger
	recordUC *recorduc.RecordUseCase
}

func NewRecordHandler(cfg bootstrap.Config, log *zap.SugaredLogger, recordUC *recorduc.RecordUseCase) *RecordHandler {
	return &RecordHandler{
		cfg:      cfg,
		log:      log,
		recordUC: recordUC,
	}
}

func (h *RecordHandler) Routes(r chi.Router) {
	r.Route("/records", func(r chi.Router) {
		r.Post("/", h.HandleCreateRecord)
		r.Get("/", h.HandleSearchRecords)
		r.Get("/{key}", h.HandleGetRecord)
		r.Get("/{key}/sgf", h.HandleExportRecord)
		r.Get("/{key}/summary", h.HandleGetSummary)
		r.Post("/{key}/commands", h.HandleApplyCommand)
		r.Post("/{key}/play", h.HandlePlay)
		r.Delete("/{key}/session", h.HandleCloseSession)
		r.Get("/{key}/live", h.HandleLive)
	})
}

// HandleCreateRecord takes either {"sgf": "..."} or the raw record text when
// the body is sent as application/x-go-sgf or text/plain.
func (h *RecordHandler) HandleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	switch mediaType(r) {
	case "application/x-go-sgf", "text/plain":
		body, err := utils.ReadRequestBody(r, maxRecordBytes)
		if err != nil {
			httpresponse.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.SGF = string(body)
	default:
		r.Body = http.MaxBytesReader(w, r.Body, maxRecordBytes)
		if err := utils.DecodeJSONRequest(r, &req); err != nil {
			h.log.Errorw("create record: bad body", "error", err)
			httpresponse.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	key, err := h.recordUC.CreateRecord(r.Context(), req.SGF)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Infow("new record", "key", key)
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, CreateRecordResponse{Key: key})
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

func (h *RecordHandler) HandleSearchRecords(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpresponse.WriteError(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = n
	}

	resp, err := h.recordUC.Search(r.Context(), player, page)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (h *RecordHandler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	state, err := h.recordUC.State(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (h *RecordHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.recordUC.Summary(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, summary)
}

func (h *RecordHandler) HandleExportRecord(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	text, err := h.recordUC.Export(r.Context(), key)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename=\""+key+".sgf\"")
	httpresponse.WriteText(w, http.StatusOK, "application/x-go-sgf", text)
}

func (h *RecordHandler) HandleApplyCommand(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRecordBytes)

	var req CommandRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Command == cmdQuit {
		httpresponse.WriteError(w, http.StatusBadRequest, "quit is only accepted on live sessions")
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		h.writeError(w, err)
		return
	}

	state, err := h.recordUC.Apply(r.Context(), chi.URLParam(r, "key"), cmd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (h *RecordHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	color, at, err := req.Decode()
	if err != nil {
		h.writeError(w, err)
		return
	}

	state, err := h.recordUC.Play(r.Context(), chi.URLParam(r, "key"), color, at)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (h *RecordHandler) HandleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.recordUC.CloseRecord(chi.URLParam(r, "key")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps use case errors onto HTTP statuses.
func (h *RecordHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrRecordNotFound), errors.Is(err, errs.ErrSessionNotFound):
		httpresponse.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrIllegalMove):
		httpresponse.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrMalformedRecord),
		errors.Is(err, errs.ErrInvalidProperty),
		errors.Is(err, errs.ErrInvalidCommand):
		httpresponse.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.log.Errorw("request failed", "error", err)
		httpresponse.WriteInternalErrorResponse(w)
	}
}
