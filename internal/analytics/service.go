package analytics

import (
	"context"

	"go.uber.org/zap"

	"shopkart-main/internal/kafka"
)

// ProductWeight - накопленный вес популярности одного товара
type ProductWeight struct {
	ProductID string `json:"product_id"`
	Category  string `json:"category,omitempty"`
	Weight    int    `json:"weight"`
}

type Service struct {
	repo   AnalyticsRepo
	logger *zap.SugaredLogger
}

func NewService(repo AnalyticsRepo, logger *zap.SugaredLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ProcessEvent начисляет вес товару по типу события:
// просмотр 1, добавление в корзину 2, чекаут 3
func (s *Service) ProcessEvent(ctx context.Context, event kafka.Event) error {
	if event.ClientID == "" {
		return nil // Игнорируем события без клиента
	}
	if event.ProductID == "" {
		return nil
	}

	weight := 0
	switch event.Type {
	case kafka.EventTypeView:
		weight = 1
	case kafka.EventTypeAddToCart:
		weight = 2
	case kafka.EventTypeCheckout:
		weight = 3
	}

	if weight == 0 {
		return nil
	}

	return s.repo.UpdatePopularity(ctx, event.ProductID, event.Category, weight)
}

func (s *Service) GetTopProducts(ctx context.Context, limit int) ([]ProductWeight, error) {
	return s.repo.GetTopProducts(ctx, limit)
}
