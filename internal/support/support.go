package support

import "time"

// Query - обращение в поддержку из формы на сайте
type Query struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

// SupportRepo интерфейс репозитория обращений
//
//go:generate mockgen -source=support.go -destination=../mocks/mock_support_repo.go -package=mocks
type SupportRepo interface {
	// Create сохраняет обращение и возвращает его с проставленным id
	Create(name, query string) (*Query, error)
}
