package pricing

import (
	"encoding/json"
	"net/http"

	httputil "billboardbids/pkg/http"
	"billboardbids/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// SuggestRequest is the pricing request body. Field names follow the
// frontend's camelCase convention.
type SuggestRequest struct {
	BillboardID string `json:"billboardId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    int    `json:"duration"`
}

// SuggestResponse mirrors Suggestion but exposes the explanation under
// both "factors" and "reason" for the pricing UI.
type SuggestResponse struct {
	BasePrice      float64 `json:"basePrice"`
	SuggestedPrice int     `json:"suggestedPrice"`
	Multiplier     float64 `json:"multiplier"`
	Factors        string  `json:"factors"`
	Reason         string  `json:"reason"`
	Confidence     float64 `json:"confidence"`
}

type Handler struct {
	service Service
	log     *logger.Logger
}

func NewHandler(service Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Suggest", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	suggestion, err := h.service.Suggest(r.Context(), req.BillboardID, req.Date, req.Time, req.Duration)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Suggest", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	resp := SuggestResponse{
		BasePrice:      suggestion.BasePrice,
		SuggestedPrice: suggestion.SuggestedPrice,
		Multiplier:     suggestion.Multiplier,
		Factors:        suggestion.Explanation,
		Reason:         suggestion.Explanation,
		Confidence:     suggestion.Confidence,
	}
	if err := httputil.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Suggest", "operation", "WriteJSON", "error", err)
	}
}

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	analytics, err := h.service.Analytics(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Analytics", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, analytics); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Analytics", "operation", "WriteJSON", "error", err)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/pricing/suggest", h.Suggest)
	router.GET("/api/v1/billboards/id/:id/analytics", h.Analytics)
}
