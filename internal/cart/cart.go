package cart

import (
	"context"
	"time"
)

// LineItem - одна позиция в корзине, ключ - id товара
type LineItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Image     string    `json:"image"`
	Quantity  int       `json:"quantity"`
	AddedDate time.Time `json:"addedDate"`
}

// SnapshotRepo хранит полный снапшот корзины под одним ключом
// (аналог localStorage на стороне клиента)
//
//go:generate mockgen -source=cart.go -destination=../mocks/mock_snapshot_repo.go -package=mocks
type SnapshotRepo interface {
	// Save полностью перезаписывает снапшот под ключом key
	Save(ctx context.Context, key string, items []LineItem) error
	// Load возвращает последний сохраненный снапшот
	// Отсутствие ключа - не ошибка, возвращается пустой срез
	Load(ctx context.Context, key string) ([]LineItem, error)
}

// ChangeListener вызывается после каждой успешной мутации корзины
// (пересчет бейджа количества, метрики)
type ChangeListener func(count int, total int64)
