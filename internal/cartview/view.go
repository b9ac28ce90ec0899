package cartview

import (
	"fmt"
	"math"

	"shopkart-main/internal/cart"
	"shopkart-main/internal/currency"
)

const (
	// FallbackImage подставляется вместо пустого или битого url картинки
	FallbackImage = "/assets/box1-1.jpg"

	// Селектор количества ограничен диапазоном 1..10,
	// большие значения через него выбрать нельзя
	MaxQtyOption = 10

	taxRatePercent        = 18
	freeShippingThreshold = 499
	flatShippingFee       = 49
)

// Row - одна строка корзины, чистая проекция LineItem
type Row struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ImageURL       string   `json:"imageUrl"`
	UnitPrice      int64    `json:"unitPrice"`
	UnitPriceLabel string   `json:"unitPriceLabel"`
	LineTotal      int64    `json:"lineTotal"`
	LineTotalLabel string   `json:"lineTotalLabel"`
	Quantity       int      `json:"quantity"`
	QtyOptions     []int    `json:"qtyOptions"`
	StockStatus    string   `json:"stockStatus"`
	Actions        []string `json:"actions"`
}

// Page - представление страницы корзины.
// Состояния не имеет, пересобирается целиком из снапшота Store
type Page struct {
	Rows            []Row `json:"rows"`
	EmptyState      bool  `json:"emptyState"`
	ShowRecommended bool  `json:"showRecommended"`
}

// Summary - итоговая панель заказа
type Summary struct {
	ItemCount       int    `json:"itemCount"`
	CountText       string `json:"countText"`
	Subtotal        int64  `json:"subtotal"`
	SubtotalLabel   string `json:"subtotalLabel"`
	Tax             int64  `json:"tax"`
	TaxLabel        string `json:"taxLabel"`
	Shipping        int64  `json:"shipping"`
	ShippingLabel   string `json:"shippingLabel"`
	OrderTotal      int64  `json:"orderTotal"`
	OrderTotalLabel string `json:"orderTotalLabel"`
}

// Render собирает строки корзины. Пустая корзина дает emptyState
// и прячет панель рекомендаций
func Render(items []cart.LineItem) Page {
	if len(items) == 0 {
		return Page{
			Rows:            []Row{},
			EmptyState:      true,
			ShowRecommended: false,
		}
	}

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		image := item.Image
		if image == "" {
			image = FallbackImage
		}

		lineTotal := item.Price * int64(item.Quantity)
		rows = append(rows, Row{
			ID:             item.ID,
			Name:           item.Name,
			ImageURL:       image,
			UnitPrice:      item.Price,
			UnitPriceLabel: currency.Format(item.Price),
			LineTotal:      lineTotal,
			LineTotalLabel: currency.Format(lineTotal),
			Quantity:       item.Quantity,
			QtyOptions:     qtyOptions(),
			StockStatus:    "In stock",
			Actions:        []string{"delete", "save-for-later", "share"},
		})
	}

	return Page{
		Rows:            rows,
		EmptyState:      false,
		ShowRecommended: true,
	}
}

// RenderSummary считает итоги заказа:
// налог 18% GST, округление half away from zero;
// доставка бесплатна от 499, иначе фиксированные 49
func RenderSummary(items []cart.LineItem) Summary {
	itemCount := 0
	var subtotal int64
	for _, item := range items {
		itemCount += item.Quantity
		subtotal += item.Price * int64(item.Quantity)
	}

	tax := int64(math.Round(float64(subtotal) * float64(taxRatePercent) / 100.0))

	var shipping int64
	if subtotal < freeShippingThreshold {
		shipping = flatShippingFee
	}

	shippingLabel := "FREE"
	if shipping > 0 {
		shippingLabel = currency.Format(shipping)
	}

	orderTotal := subtotal + tax + shipping

	countText := fmt.Sprintf("%d items", itemCount)
	if itemCount == 1 {
		countText = "1 item"
	}

	return Summary{
		ItemCount:       itemCount,
		CountText:       countText,
		Subtotal:        subtotal,
		SubtotalLabel:   currency.Format(subtotal),
		Tax:             tax,
		TaxLabel:        currency.Format(tax),
		Shipping:        shipping,
		ShippingLabel:   shippingLabel,
		OrderTotal:      orderTotal,
		OrderTotalLabel: currency.Format(orderTotal),
	}
}

func qtyOptions() []int {
	opts := make([]int, MaxQtyOption)
	for i := range opts {
		opts[i] = i + 1
	}
	return opts
}
