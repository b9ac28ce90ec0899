package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"shopkart-main/internal/catalog"
	"shopkart-main/internal/currency"
	myErr "shopkart-main/internal/types/errors"
)

// ProductHandler отдает листинг каталога с применением фильтров
// и сортировки. Движок собирается на каждый запрос, листинг
// перечитывается из репозитория
type ProductHandler struct {
	Logger      *zap.SugaredLogger
	ProductRepo catalog.ProductRepo
}

func NewProductHandler(log *zap.SugaredLogger, pr catalog.ProductRepo) *ProductHandler {
	return &ProductHandler{
		Logger:      log,
		ProductRepo: pr,
	}
}

type cardResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	PriceLabel  string `json:"priceLabel"`
	ReviewCount int    `json:"reviewCount"`
	Image       string `json:"image"`
	FilteredOut bool   `json:"filteredOut"`
	Hidden      bool   `json:"hidden"`
}

type bucketResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type listingResponse struct {
	Cards            []cardResponse   `json:"cards"`
	ResultCountLabel string           `json:"resultCountLabel"`
	VisibleCount     int              `json:"visibleCount"`
	PriceBuckets     []bucketResponse `json:"priceBuckets"`
	// Контрол "load more" всегда замыкает контейнер листинга
	TrailingControl string `json:"trailingControl"`
}

// GetListing - GET /products?category=...&bucket=...&bucket=...&sort=...
// Карточки, не прошедшие фильтр, остаются в ответе с выставленными
// флагами, клиент сам отыгрывает exit-анимацию
func (h *ProductHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	cards, err := h.ProductRepo.GetAll()
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	refs := make([]*catalog.ProductCard, len(cards))
	for i := range cards {
		refs[i] = &cards[i]
	}

	engine := catalog.NewEngine(refs, h.Logger)
	// состояние живет один запрос, задержка скрытия тут ни к чему
	engine.SetHideDelay(0)

	state := catalog.FilterState{
		Category: r.URL.Query().Get("category"),
		Buckets:  r.URL.Query()["bucket"],
	}
	engine.ApplyFilters(state)
	engine.WaitIdle()

	if sortParam := r.URL.Query().Get("sort"); sortParam != "" {
		engine.Sort(catalog.SortMode(sortParam))
	}

	resp := listingResponse{
		Cards:            make([]cardResponse, 0, len(refs)),
		ResultCountLabel: engine.ResultCountLabel(),
		VisibleCount:     engine.VisibleCount(),
		PriceBuckets:     make([]bucketResponse, 0, len(catalog.Buckets)),
		TrailingControl:  "load-more",
	}
	for _, card := range engine.Cards() {
		resp.Cards = append(resp.Cards, cardResponse{
			ID:          card.ID,
			Name:        card.Name,
			Category:    card.Category,
			Price:       card.Price,
			PriceLabel:  currency.Format(card.Price),
			ReviewCount: card.ReviewCount,
			Image:       card.Image,
			FilteredOut: card.FilteredOut,
			Hidden:      card.Hidden,
		})
	}
	for _, b := range catalog.Buckets {
		resp.PriceBuckets = append(resp.PriceBuckets, bucketResponse{ID: b.ID, Label: b.Label})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}
