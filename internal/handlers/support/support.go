package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"shopkart-main/internal/support"
	myErr "shopkart-main/internal/types/errors"
)

type SupportHandler struct {
	Logger      *zap.SugaredLogger
	SupportRepo support.SupportRepo
}

func NewSupportHandler(log *zap.SugaredLogger, sr support.SupportRepo) *SupportHandler {
	return &SupportHandler{
		Logger:      log,
		SupportRepo: sr,
	}
}

type createRequest struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

type createResponse struct {
	Message string         `json:"message"`
	Record  *support.Query `json:"record,omitempty"`
}

// Create - POST /api/support
// Оба поля обязательны, пробелы по краям не считаются за значение.
// Текст ошибки вставки отдается клиенту как есть
func (h *SupportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	name := strings.TrimSpace(req.Name)
	query := strings.TrimSpace(req.Query)
	if name == "" || query == "" {
		myErr.SendErrorTo(w, myErr.ErrMissingFields, http.StatusBadRequest, h.Logger)
		return
	}

	record, err := h.SupportRepo.Create(name, query)
	if err != nil {
		h.Logger.Errorf("Ошибка при сохранении обращения в поддержку: %v", err)
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("saved support query %s from %s", record.ID, record.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	resp := createResponse{
		Message: fmt.Sprintf("Thanks %s, your query was saved!", record.Name),
		Record:  record,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}
