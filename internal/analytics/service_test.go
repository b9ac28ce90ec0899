package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"shopkart-main/internal/kafka"
)

type stubRepo struct {
	lastProductID string
	lastCategory  string
	lastWeight    int
	calls         int
	failWith      error
	top           []ProductWeight
}

func (s *stubRepo) UpdatePopularity(_ context.Context, productID, category string, weight int) error {
	s.calls++
	s.lastProductID = productID
	s.lastCategory = category
	s.lastWeight = weight
	return s.failWith
}

func (s *stubRepo) GetTopProducts(_ context.Context, limit int) ([]ProductWeight, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	if limit < len(s.top) {
		return s.top[:limit], nil
	}
	return s.top, nil
}

func TestProcessEventWeights(t *testing.T) {
	tests := []struct {
		name           string
		event          kafka.Event
		expectedCalls  int
		expectedWeight int
	}{
		{
			name: "просмотр карточки - вес 1",
			event: kafka.Event{
				ClientID: "c1", Type: kafka.EventTypeView, ProductID: "p1", Category: "electronics",
			},
			expectedCalls:  1,
			expectedWeight: 1,
		},
		{
			name: "добавление в корзину - вес 2",
			event: kafka.Event{
				ClientID: "c1", Type: kafka.EventTypeAddToCart, ProductID: "p1", Category: "electronics",
			},
			expectedCalls:  1,
			expectedWeight: 2,
		},
		{
			name: "чекаут - вес 3",
			event: kafka.Event{
				ClientID: "c1", Type: kafka.EventTypeCheckout, ProductID: "p1",
			},
			expectedCalls:  1,
			expectedWeight: 3,
		},
		{
			name: "событие без клиента игнорируется",
			event: kafka.Event{
				Type: kafka.EventTypeAddToCart, ProductID: "p1",
			},
			expectedCalls: 0,
		},
		{
			name: "событие без товара игнорируется",
			event: kafka.Event{
				ClientID: "c1", Type: kafka.EventTypeAddToCart,
			},
			expectedCalls: 0,
		},
		{
			name: "неизвестный тип игнорируется",
			event: kafka.Event{
				ClientID: "c1", Type: "unknown", ProductID: "p1",
			},
			expectedCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubRepo{}
			service := NewService(repo, zaptest.NewLogger(t).Sugar())

			tt.event.Timestamp = time.Now()
			err := service.ProcessEvent(context.Background(), tt.event)
			assert.NoError(t, err)

			assert.Equal(t, tt.expectedCalls, repo.calls)
			if tt.expectedCalls > 0 {
				assert.Equal(t, tt.event.ProductID, repo.lastProductID)
				assert.Equal(t, tt.expectedWeight, repo.lastWeight)
			}
		})
	}
}

func TestProcessEventRepoError(t *testing.T) {
	repo := &stubRepo{failWith: errors.New("db down")}
	service := NewService(repo, zaptest.NewLogger(t).Sugar())

	err := service.ProcessEvent(context.Background(), kafka.Event{
		ClientID: "c1", Type: kafka.EventTypeView, ProductID: "p1",
	})
	assert.Error(t, err)
}

func TestGetTopProducts(t *testing.T) {
	repo := &stubRepo{top: []ProductWeight{
		{ProductID: "p4", Weight: 30},
		{ProductID: "p1", Weight: 12},
		{ProductID: "p2", Weight: 5},
	}}
	service := NewService(repo, zaptest.NewLogger(t).Sugar())

	top, err := service.GetTopProducts(context.Background(), 2)
	assert.NoError(t, err)
	assert.Len(t, top, 2)
	assert.Equal(t, "p4", top[0].ProductID)
}
