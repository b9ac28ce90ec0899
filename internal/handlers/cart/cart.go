package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"shopkart-main/internal/cart"
	"shopkart-main/internal/cartview"
	"shopkart-main/internal/catalog"
	"shopkart-main/internal/kafka"
	"shopkart-main/internal/middleware"
	"shopkart-main/internal/notification"
	esDoc "shopkart-main/internal/types/elastic"
	myErr "shopkart-main/internal/types/errors"
)

const recommendedLimit = 4

// Recommender подбирает товары для панели рекомендаций
type Recommender interface {
	RecommendByCategories(ctx context.Context, categories, excludeIDs []string, limit int) ([]esDoc.ProductDoc, error)
}

// CartHandler ручки корзины. Store собирается на каждый запрос
// из последнего снапшота - состояние живет в хранилище, не в процессе
type CartHandler struct {
	Logger        *zap.SugaredLogger
	Snapshots     cart.SnapshotRepo
	ProductRepo   catalog.ProductRepo
	Recommender   Recommender
	EventProducer kafka.EventProducer
	Notifier      *notification.Notifier
	KeyPrefix     string
}

func NewCartHandler(
	log *zap.SugaredLogger,
	snapshots cart.SnapshotRepo,
	pr catalog.ProductRepo,
	rec Recommender,
	ep kafka.EventProducer,
	notifier *notification.Notifier,
	keyPrefix string,
) *CartHandler {
	return &CartHandler{
		Logger:        log,
		Snapshots:     snapshots,
		ProductRepo:   pr,
		Recommender:   rec,
		EventProducer: ep,
		Notifier:      notifier,
		KeyPrefix:     keyPrefix,
	}
}

type addItemRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// mutationResponse - ответ на любую мутацию корзины: после каждой
// мутации строки и итоговая панель пересобираются целиком из снапшота
type mutationResponse struct {
	Page         cartview.Page    `json:"page"`
	Summary      cartview.Summary `json:"summary"`
	BadgeCount   int              `json:"badgeCount"`
	Notification string           `json:"notification,omitempty"`
}

type pageResponse struct {
	Page        cartview.Page      `json:"page"`
	Summary     cartview.Summary   `json:"summary"`
	BadgeCount  int                `json:"badgeCount"`
	Recommended []esDoc.ProductDoc `json:"recommended"`
	SavedItems  []cart.LineItem    `json:"savedItems"`
}

func (h *CartHandler) loadStore(ctx context.Context, clientID string) (*cart.Store, error) {
	store := cart.NewStore(h.Snapshots, h.Logger, h.KeyPrefix+clientID)
	if err := store.Restore(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (h *CartHandler) clientID(w http.ResponseWriter, r *http.Request) (string, bool) {
	clientID := mux.Vars(r)["clientID"]
	if _, err := uuid.Parse(clientID); err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return "", false
	}
	return clientID, true
}

// GetCart - GET /cart/{clientID}
// Отдает полную проекцию страницы корзины: строки, итоги, бейдж,
// отложенные товары и панель рекомендаций (скрыта для пустой корзины)
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	store, err := h.loadStore(r.Context(), clientID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	items := store.Items()
	page := cartview.Render(items)

	resp := pageResponse{
		Page:        page,
		Summary:     cartview.RenderSummary(items),
		BadgeCount:  store.Count(),
		Recommended: []esDoc.ProductDoc{},
	}

	saved, err := store.SavedItems(r.Context())
	if err != nil {
		h.Logger.Warnf("failed to load saved items for %s: %v", clientID, err)
	} else {
		resp.SavedItems = saved
	}

	if page.ShowRecommended {
		resp.Recommended = h.recommend(r.Context(), items)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}

// AddItem - POST /cart/{clientID}/item
// Повторное добавление того же товара инкрементит количество
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}
	if req.ID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	store, err := h.loadStore(r.Context(), clientID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	if err := store.AddItem(r.Context(), req.ID, req.Name, req.Price, req.Image); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	middleware.ObserveCartMutation("add", store.Count())
	h.Notifier.Notify(fmt.Sprintf("%s added to cart!", req.Name))
	h.sendEvent(r.Context(), clientID, kafka.EventTypeAddToCart, req.ID)

	h.Logger.Infof("added product %s to client %s cart", req.ID, clientID)
	h.writeMutation(w, store, http.StatusCreated)
}

// UpdateQuantity - PUT /cart/{clientID}/item/{productID}/quantity
// Количество <= 0 удаляет позицию, отсутствующий товар - no-op
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}
	productID := mux.Vars(r)["productID"]

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	store, err := h.loadStore(r.Context(), clientID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	if err := store.SetQuantity(r.Context(), productID, req.Quantity); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	middleware.ObserveCartMutation("set_quantity", store.Count())
	h.Notifier.Notify("Quantity updated")

	h.writeMutation(w, store, http.StatusOK)
}

// RemoveItem - DELETE /cart/{clientID}/item/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}
	productID := mux.Vars(r)["productID"]

	store, err := h.loadStore(r.Context(), clientID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	if err := store.RemoveItem(r.Context(), productID); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	middleware.ObserveCartMutation("remove", store.Count())
	h.Notifier.Notify("Item removed from cart")

	h.Logger.Infof("removed product %s from client %s cart", productID, clientID)
	h.writeMutation(w, store, http.StatusOK)
}

// Clear - DELETE /cart/{clientID}
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	store, err := h.loadStore(r.Context(), clientID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	if err := store.Clear(r.Context()); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	middleware.ObserveCartMutation("clear", 0)
	h.writeMutation(w, store, http.StatusOK)
}

// SaveForLater - POST /cart/{clientID}/item/{productID}/save
func (h *CartHandler) SaveForLater(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}
	productID := mux.Vars(r)["productID"]

	store, err := h.loadStore(r.Context(), clientID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	if err := store.SaveForLater(r.Context(), productID); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	middleware.ObserveCartMutation("save_for_later", store.Count())
	h.Notifier.Notify("Item saved for later")

	h.writeMutation(w, store, http.StatusOK)
}

// MoveToCart - POST /cart/{clientID}/saved/{productID}/move-to-cart
// Возвращает отложенный товар обратно в корзину
func (h *CartHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}
	productID := mux.Vars(r)["productID"]

	store, err := h.loadStore(r.Context(), clientID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	if err := store.MoveToCart(r.Context(), productID); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	middleware.ObserveCartMutation("move_to_cart", store.Count())
	h.Notifier.Notify("Item moved to cart")

	h.writeMutation(w, store, http.StatusOK)
}

// GetCount - GET /cart/{clientID}/count, значение для бейджа в навигации
func (h *CartHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	store, err := h.loadStore(r.Context(), clientID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]int{"count": store.Count()})
}

// Checkout - POST /cart/{clientID}/checkout
// Пустая корзина - 400, иначе подтверждение и событие checkout по каждой позиции
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	store, err := h.loadStore(r.Context(), clientID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	items := store.Items()
	if len(items) == 0 {
		myErr.SendErrorTo(w, myErr.ErrEmptyCart, http.StatusBadRequest, h.Logger)
		return
	}

	for _, item := range items {
		h.sendEvent(r.Context(), clientID, kafka.EventTypeCheckout, item.ID)
	}

	summary := cartview.RenderSummary(items)
	h.Notifier.Notify("Redirecting to checkout...")

	h.Logger.Infof("client %s proceeded to checkout with %d items for total %d",
		clientID, summary.ItemCount, summary.OrderTotal)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":     "success",
		"itemCount":  summary.ItemCount,
		"orderTotal": summary.OrderTotal,
	})
}

// ViewProduct - POST /cart/{clientID}/item/{productID}/view
// Клик по названию товара в корзине: уведомление + событие просмотра
func (h *CartHandler) ViewProduct(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}
	productID := mux.Vars(r)["productID"]

	h.Notifier.Notify(fmt.Sprintf("Opening product details for %s", productID))
	h.sendEvent(r.Context(), clientID, kafka.EventTypeView, productID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"notification": h.currentNotification()})
}

func (h *CartHandler) writeMutation(w http.ResponseWriter, store *cart.Store, status int) {
	items := store.Items()
	resp := mutationResponse{
		Page:         cartview.Render(items),
		Summary:      cartview.RenderSummary(items),
		BadgeCount:   store.Count(),
		Notification: h.currentNotification(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}

func (h *CartHandler) currentNotification() string {
	if n := h.Notifier.Current(); n != nil {
		return n.Message
	}
	return ""
}

// recommend подбирает товары тех же категорий, что уже лежат в корзине
func (h *CartHandler) recommend(ctx context.Context, items []cart.LineItem) []esDoc.ProductDoc {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	categories, err := h.ProductRepo.GetCategories(ids)
	if err != nil {
		h.Logger.Warnf("failed to resolve cart categories: %v", err)
		return []esDoc.ProductDoc{}
	}

	docs, err := h.Recommender.RecommendByCategories(ctx, categories, ids, recommendedLimit)
	if err != nil {
		h.Logger.Warnf("failed to fetch recommendations: %v", err)
		return []esDoc.ProductDoc{}
	}

	return docs
}

// sendEvent шлет событие аналитики, best effort
func (h *CartHandler) sendEvent(ctx context.Context, clientID string, eventType kafka.EventType, productID string) {
	category := ""
	categories, err := h.ProductRepo.GetCategories([]string{productID})
	if err != nil {
		h.Logger.Warnf("failed to resolve category for product %s: %v", productID, err)
	} else if len(categories) > 0 {
		category = categories[0]
	}

	event := kafka.Event{
		ClientID:  clientID,
		Type:      eventType,
		ProductID: productID,
		Category:  category,
		Timestamp: time.Now(),
	}
	if err := h.EventProducer.SendEvent(ctx, event); err != nil {
		h.Logger.Warnf("failed to send %s event: %v", eventType, err)
	}
}
