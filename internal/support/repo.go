package support

import (
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SupportDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewSupportDBRepository(db *sql.DB, logger *zap.SugaredLogger) *SupportDBRepository {
	return &SupportDBRepository{
		DB:     db,
		Logger: logger,
	}
}

// Create сохраняет обращение в support_queries.
// Ошибка вставки отдается наверх как есть - хендлер возвращает
// клиенту текст ошибки сервиса хранения
func (sr *SupportDBRepository) Create(name, query string) (*Query, error) {
	q := `
	INSERT INTO support_queries(id, name, query)
	VALUES ($1, $2, $3)
	RETURNING id, name, query, created_at
`
	var saved Query
	err := sr.DB.QueryRow(q, uuid.New().String(), name, query).Scan(
		&saved.ID,
		&saved.Name,
		&saved.Query,
		&saved.CreatedAt,
	)
	if err != nil {
		sr.Logger.Errorf("Ошибка при сохранении обращения в поддержку: %v", err)
		return nil, err
	}

	return &saved, nil
}
