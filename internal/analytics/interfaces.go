package analytics

import (
	"context"

	"shopkart-main/internal/kafka"
)

// AnalyticsRepo — интерфейс репозитория популярности товаров.
type AnalyticsRepo interface {
	UpdatePopularity(ctx context.Context, productID, category string, weight int) error
	GetTopProducts(ctx context.Context, limit int) ([]ProductWeight, error)
}

// AnalyticsService — интерфейс сервиса аналитики.
type AnalyticsService interface {
	ProcessEvent(ctx context.Context, event kafka.Event) error
	GetTopProducts(ctx context.Context, limit int) ([]ProductWeight, error)
}
