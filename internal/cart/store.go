package cart

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const savedKeyPrefix = "saved:"

// Store - владелец канонического состояния корзины одного клиента.
// Все мутации синхронно пишут полный снапшот в SnapshotRepo до возврата,
// затем дергают слушателей. Порядок позиций - порядок первого добавления.
type Store struct {
	Repo   SnapshotRepo
	Logger *zap.SugaredLogger

	key       string
	items     []LineItem
	listeners []ChangeListener
}

func NewStore(repo SnapshotRepo, logger *zap.SugaredLogger, key string) *Store {
	return &Store{
		Repo:   repo,
		Logger: logger,
		key:    key,
	}
}

// Restore загружает последний сохраненный снапшот.
// Пустое хранилище дает пустую корзину, это не ошибка.
func (s *Store) Restore(ctx context.Context) error {
	items, err := s.Repo.Load(ctx, s.key)
	if err != nil {
		s.Logger.Errorf("Failed to restore cart %s: %v", s.key, err)
		return err
	}

	s.items = items
	return nil
}

// OnChange регистрирует слушателя мутаций
func (s *Store) OnChange(l ChangeListener) {
	s.listeners = append(s.listeners, l)
}

// AddItem добавляет товар в корзину.
// Повторное добавление того же id увеличивает quantity на 1,
// дубликат позиции не создается. AddedDate ставится при первом добавлении.
func (s *Store) AddItem(ctx context.Context, id, name string, price int64, image string) error {
	found := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity++
			found = true
			break
		}
	}

	if !found {
		s.items = append(s.items, LineItem{
			ID:        id,
			Name:      name,
			Price:     price,
			Image:     image,
			Quantity:  1,
			AddedDate: time.Now().UTC(),
		})
	}

	return s.persist(ctx)
}

// RemoveItem удаляет позицию. Отсутствующий id - no-op
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept

	return s.persist(ctx)
}

// SetQuantity выставляет количество. n <= 0 эквивалентно удалению,
// отсутствующий id - no-op (но снапшот все равно пишется)
func (s *Store) SetQuantity(ctx context.Context, id string, n int) error {
	if n <= 0 {
		return s.RemoveItem(ctx, id)
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = n
			break
		}
	}

	return s.persist(ctx)
}

// Clear опустошает корзину
func (s *Store) Clear(ctx context.Context) error {
	s.items = nil
	return s.persist(ctx)
}

// Items возвращает копию текущего снапшота
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total - сумма price * quantity по всем позициям
func (s *Store) Total() int64 {
	var total int64
	for _, item := range s.items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// Count - суммарное количество единиц, значение для бейджа в навигации
func (s *Store) Count() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// SaveForLater переносит позицию из корзины в отложенные
// (отдельный ключ хранения). Отсутствующий id - no-op
func (s *Store) SaveForLater(ctx context.Context, id string) error {
	var moved *LineItem
	for i := range s.items {
		if s.items[i].ID == id {
			item := s.items[i]
			moved = &item
			break
		}
	}
	if moved == nil {
		return nil
	}

	saved, err := s.Repo.Load(ctx, savedKeyPrefix+s.key)
	if err != nil {
		s.Logger.Errorf("Failed to load saved items for %s: %v", s.key, err)
		return err
	}

	exists := false
	for i := range saved {
		if saved[i].ID == id {
			saved[i].Quantity += moved.Quantity
			exists = true
			break
		}
	}
	if !exists {
		saved = append(saved, *moved)
	}

	if err := s.Repo.Save(ctx, savedKeyPrefix+s.key, saved); err != nil {
		s.Logger.Errorf("Failed to save deferred items for %s: %v", s.key, err)
		return err
	}

	return s.RemoveItem(ctx, id)
}

// SavedItems возвращает отложенные позиции
func (s *Store) SavedItems(ctx context.Context) ([]LineItem, error) {
	return s.Repo.Load(ctx, savedKeyPrefix+s.key)
}

// MoveToCart возвращает отложенную позицию обратно в корзину
func (s *Store) MoveToCart(ctx context.Context, id string) error {
	saved, err := s.Repo.Load(ctx, savedKeyPrefix+s.key)
	if err != nil {
		return err
	}

	var moved *LineItem
	kept := saved[:0]
	for _, item := range saved {
		if item.ID == id {
			it := item
			moved = &it
			continue
		}
		kept = append(kept, item)
	}
	if moved == nil {
		return nil
	}

	if err := s.Repo.Save(ctx, savedKeyPrefix+s.key, kept); err != nil {
		return err
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity += moved.Quantity
			return s.persist(ctx)
		}
	}
	s.items = append(s.items, *moved)

	return s.persist(ctx)
}

// persist пишет полный снапшот и только после успеха дергает слушателей.
// Ошибка записи отдается вызывающему как есть, восстановления нет
func (s *Store) persist(ctx context.Context) error {
	if err := s.Repo.Save(ctx, s.key, s.items); err != nil {
		s.Logger.Errorf("Failed to persist cart %s: %v", s.key, err)
		return err
	}

	count := s.Count()
	total := s.Total()
	for _, l := range s.listeners {
		l(count, total)
	}

	return nil
}
