package etl

import (
	"database/sql"

	"go.uber.org/zap"
	"golang.org/x/net/context"

	"shopkart-main/internal/catalog"
)

type PostgresExtractor struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewPostgresExtractor(db *sql.DB, logger *zap.SugaredLogger) *PostgresExtractor {
	return &PostgresExtractor{
		DB:     db,
		Logger: logger,
	}
}

// ExtractNew - достает товары, которых еще нет в индексе рекомендаций
// Возвращает массив карточек и error
func (e *PostgresExtractor) ExtractNew(ctx context.Context) ([]catalog.ProductCard, error) {
	query :=
		`
		SELECT id, name, category, price, review_count, image
		FROM product
		WHERE indexed = FALSE AND is_active = TRUE
		`

	rows, err := e.DB.QueryContext(ctx, query)
	if err != nil {
		e.Logger.Error("Failed to executing query", zap.Error(err))

		return nil, err
	}
	defer rows.Close()

	var result []catalog.ProductCard

	for rows.Next() {
		var c catalog.ProductCard
		err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.Price, &c.ReviewCount, &c.Image)
		if err != nil {
			e.Logger.Error("Failed to scan rows", zap.Error(err))

			return nil, err
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		e.Logger.Error("Error during rows iteration", zap.Error(err))
		return nil, err
	}

	return result, nil
}
