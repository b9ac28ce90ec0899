package etl

import (
	"go.uber.org/zap"

	"shopkart-main/internal/catalog"
	"shopkart-main/internal/types/elastic"
)

type Transformer struct {
	Logger *zap.SugaredLogger
}

func NewTransformer(logger *zap.SugaredLogger) *Transformer {
	return &Transformer{
		Logger: logger,
	}
}

// Transform - переводит карточки из формата хранения в PostgreSQL
// в ProductDoc для индекса рекомендаций
// Принимает массив ProductCard, возвращает массив ProductDoc
func (t *Transformer) Transform(input []catalog.ProductCard) []elastic.ProductDoc {
	docs := make([]elastic.ProductDoc, 0, len(input))
	for _, c := range input {
		docs = append(docs, elastic.ProductDoc{
			ID:       c.ID,
			Name:     c.Name,
			Category: c.Category,
			Price:    c.Price,
			Image:    c.Image,
		})
	}

	t.Logger.Infof("Transformed %d docs succesfully", len(input))

	return docs
}
