package analytics

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

type Repository struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func NewRepository(db *sql.DB, logger *zap.SugaredLogger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) UpdatePopularity(ctx context.Context, productID, category string, weight int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO product_popularity (product_id, category, weight)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id)
		DO UPDATE SET weight = product_popularity.weight + EXCLUDED.weight
	`, productID, category, weight)

	return err
}

func (r *Repository) GetTopProducts(ctx context.Context, limit int) ([]ProductWeight, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, category, weight
		FROM product_popularity
		ORDER BY weight DESC
		LIMIT $1
	`, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []ProductWeight
	for rows.Next() {
		var pw ProductWeight
		if err := rows.Scan(&pw.ProductID, &pw.Category, &pw.Weight); err != nil {
			return nil, err
		}
		top = append(top, pw)
	}

	return top, nil
}
