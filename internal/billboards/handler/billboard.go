package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"billboardbids/internal/billboards/service"
	apperrors "billboardbids/pkg/errors"
	httputil "billboardbids/pkg/http"
	"billboardbids/pkg/logger"
	"billboardbids/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BillboardHandler struct {
	service service.BillboardService
	log     *logger.Logger
}

func NewBillboardHandler(service service.BillboardService, log *logger.Logger) *BillboardHandler {
	return &BillboardHandler{
		service: service,
		log:     log,
	}
}

func (h *BillboardHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var billboard model.Billboard
	if err := json.NewDecoder(r.Body).Decode(&billboard); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &billboard); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, billboard); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BillboardHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	billboard, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, billboard); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BillboardHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	filter, err := parseBillboardFilter(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	billboards, total, err := h.service.GetAll(r.Context(), filter, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, billboards, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *BillboardHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.BillboardUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	billboard, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, billboard); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BillboardHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func parseBillboardFilter(r *http.Request) (*model.BillboardFilter, error) {
	query := r.URL.Query()
	filter := &model.BillboardFilter{
		Location: query.Get("location"),
		Traffic:  query.Get("traffic"),
		OwnerID:  query.Get("owner_id"),
	}

	// The stock frontend sends these placeholder values for "no filter".
	if filter.Location == "All Locations" {
		filter.Location = ""
	}
	if filter.Traffic == "All Types" {
		filter.Traffic = ""
	}

	if s := query.Get("min_price"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, apperrors.InvalidInput("invalid min_price parameter: " + s)
		}
		filter.MinPrice = &v
	}
	if s := query.Get("max_price"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, apperrors.InvalidInput("invalid max_price parameter: " + s)
		}
		filter.MaxPrice = &v
	}
	if query.Get("available") == "true" {
		filter.AvailableOnly = true
	}

	return filter, nil
}

func (h *BillboardHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/billboards", h.Create)
	router.GET("/api/v1/billboards", h.GetAll)
	router.GET("/api/v1/billboards/id/:id", h.GetByID)
	router.PATCH("/api/v1/billboards/id/:id", h.Update)
	router.DELETE("/api/v1/billboards/id/:id", h.Delete)
}
