package analytics

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

type Handler struct {
	service AnalyticsService
	logger  *zap.SugaredLogger
}

func NewHandler(service AnalyticsService, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GetTopProducts - GET /products/top?limit=N
func (h *Handler) GetTopProducts(w http.ResponseWriter, r *http.Request) {
	limit := 4 // По умолчанию - размер панели рекомендаций
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil && n > 0 {
			limit = n
		}
	}

	top, err := h.service.GetTopProducts(r.Context(), limit)
	if err != nil {
		h.logger.Errorf("Failed to get top products: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if len(top) == 0 {
		top = []ProductWeight{} // Пустой массив вместо null
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(top); err != nil {
		h.logger.Errorf("Failed to encode response: %v", err)
	}
}
