package tableorder

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
)

const MaxBodyBytes = 64 << 10 // 64 KB, intents carry tiny payloads

// Handler exposes the engine to the presentation layer: intents come in as
// HTTP requests, state reads go out as aqm envelopes. It holds no state of
// its own; everything lives on the Session.
type Handler struct {
	session   *Session
	identity  *IdentityStore
	cache     *MenuCache
	submitter *Submitter
	logger    aqm.Logger
	config    *aqm.Config
	tlm       *telemetry.HTTP
}

// NewHandler creates a new Handler for table order operations
func NewHandler(session *Session, identity *IdentityStore, cache *MenuCache, submitter *Submitter, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		session:   session,
		identity:  identity,
		cache:     cache,
		submitter: submitter,
		logger:    logger,
		config:    config,
		tlm:       telemetry.NewHTTP(),
	}
}

// RegisterRoutes registers all routes for the tableorder service
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Put("/table", h.SetTable)
		r.Put("/filter", h.SetFilter)
		r.Delete("/error", h.DismissError)
	})

	r.Route("/menu", func(r chi.Router) {
		r.Get("/", h.ListMenu)
		r.Put("/items/{code}/quantity", h.SetQuantity)
	})

	r.Post("/submit", h.SubmitOrder)
}

// sessionResource is the state the presentation reads on every render pass.
type sessionResource struct {
	Table       string `json:"table,omitempty"`
	MenuLoading bool   `json:"menu_loading"`
	Error       string `json:"error,omitempty"`
	Filter      string `json:"filter"`
}

// menuItemResource augments an item with its line total so the presentation
// does not reimplement pricing.
type menuItemResource struct {
	MenuItem
	Total float64 `json:"total,omitempty"`
}

type setTableRequest struct {
	Table string `json:"table"`
}

type setFilterRequest struct {
	Filter string `json:"filter"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetSession handles GET /session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetSession")
	defer finish()

	aqm.RespondSuccess(w, h.sessionResource())
}

// SetTable handles PUT /session/table
func (h *Handler) SetTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SetTable")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var payload setTableRequest
	if !h.decodePayload(w, r, &payload, log) {
		return
	}

	token, err := h.identity.Set(ctx, payload.Table)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			log.Debug("invalid table token", "error", err)
			aqm.RespondError(w, http.StatusBadRequest, vErr.Message)
			return
		}
		log.Error("cannot persist table token", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not store table")
		return
	}

	h.session.SetTable(token)
	h.loadMenuAsync()

	aqm.RespondSuccess(w, h.sessionResource())
}

// SetFilter handles PUT /session/filter
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SetFilter")
	defer finish()
	log := h.log(r)

	var payload setFilterRequest
	if !h.decodePayload(w, r, &payload, log) {
		return
	}

	mode, err := ParseFilterMode(payload.Filter)
	if err != nil {
		log.Debug("invalid filter mode", "filter", payload.Filter)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid filter mode")
		return
	}

	h.session.SetFilter(mode)
	aqm.RespondSuccess(w, h.sessionResource())
}

// DismissError handles DELETE /session/error
func (h *Handler) DismissError(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DismissError")
	defer finish()

	h.session.DismissError()
	w.WriteHeader(http.StatusNoContent)
}

// ListMenu handles GET /menu
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListMenu")
	defer finish()
	log := h.log(r)

	mode := h.session.Filter()
	if raw := r.URL.Query().Get("filter"); raw != "" {
		parsed, err := ParseFilterMode(raw)
		if err != nil {
			log.Debug("invalid filter parameter", "filter", raw)
			aqm.RespondError(w, http.StatusBadRequest, "Invalid filter parameter")
			return
		}
		mode = parsed
	}

	items := View(h.session.Items(), mode)
	views := make([]menuItemResource, len(items))
	for i := range items {
		views[i] = menuItemResource{MenuItem: items[i], Total: items[i].Total()}
	}

	aqm.RespondCollection(w, views, "menu/items")
}

// SetQuantity handles PUT /menu/items/{code}/quantity
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SetQuantity")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	code, ok := h.parseCodeParam(w, r, log)
	if !ok {
		return
	}

	var payload setQuantityRequest
	if !h.decodePayload(w, r, &payload, log) {
		return
	}

	snapshot, err := h.session.SetQuantity(code, payload.Quantity)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			log.Debug("invalid quantity", "code", code, "quantity", payload.Quantity)
			aqm.RespondError(w, http.StatusBadRequest, vErr.Message)
			return
		}
		var nfErr *NotFoundError
		if errors.As(err, &nfErr) {
			// The presentation referenced a code the collection does not
			// have; log it as a desync, not as user error.
			log.Error("quantity edit for unknown item", "code", code)
			aqm.RespondError(w, http.StatusNotFound, "Menu item not found")
			return
		}
		log.Error("cannot update quantity", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not update quantity")
		return
	}

	if err := h.cache.Persist(ctx, snapshot); err != nil {
		log.Error("cannot persist menu snapshot", "error", err)
	}

	item, _ := h.session.Item(code)
	aqm.RespondSuccess(w, menuItemResource{MenuItem: item, Total: item.Total()})
}

// SubmitOrder handles POST /submit
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SubmitOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	if err := h.submitter.Submit(ctx, h.session); err != nil {
		if errors.Is(err, ErrSubmissionInProgress) {
			log.Debug("submit refused, items still in flight")
			aqm.RespondError(w, http.StatusConflict, "A submission is already in progress")
			return
		}
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			log.Debug("submit refused", "error", err)
			aqm.RespondError(w, http.StatusBadRequest, vErr.Message)
			return
		}
		log.Error("cannot submit order", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not submit order")
		return
	}

	items := h.session.Items()
	views := make([]menuItemResource, len(items))
	for i := range items {
		views[i] = menuItemResource{MenuItem: items[i], Total: items[i].Total()}
	}

	aqm.RespondCollection(w, views, "menu/items")
}

// Helper methods

func (h *Handler) sessionResource() sessionResource {
	return sessionResource{
		Table:       h.session.Table(),
		MenuLoading: h.session.MenuLoading(),
		Error:       h.session.ErrorMessage(),
		Filter:      string(h.session.Filter()),
	}
}

// loadMenuAsync kicks the one-per-session menu load. Outstanding requests
// survive the triggering HTTP request, so the load runs on a background
// context; the session flag keeps renders on a spinner until it settles.
func (h *Handler) loadMenuAsync() {
	if h.session.Table() == "" {
		return
	}
	if !h.session.BeginMenuLoad() {
		return
	}

	go func() {
		ctx := context.Background()
		items, err := h.cache.Load(ctx)
		if err != nil {
			h.logger.Error("menu load failed", "error", err)
			h.session.SetError("Could not load the menu. Check the connection to the server.")
			h.session.FinishMenuLoad(nil)
			return
		}
		h.session.FinishMenuLoad(items)
	}()
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}

func (h *Handler) parseCodeParam(w http.ResponseWriter, r *http.Request, log aqm.Logger) (int, bool) {
	codeStr := chi.URLParam(r, "code")
	if codeStr == "" {
		log.Debug("missing code parameter")
		aqm.RespondError(w, http.StatusBadRequest, "Missing code parameter")
		return 0, false
	}

	code, err := strconv.Atoi(codeStr)
	if err != nil {
		log.Debug("invalid code parameter", "code", codeStr, "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid code parameter")
		return 0, false
	}

	return code, true
}

func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request, dest interface{}, log aqm.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("error reading request body", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Could not read request body")
		return false
	}

	if err := json.Unmarshal(body, dest); err != nil {
		log.Debug("error decoding JSON", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}

	return true
}
