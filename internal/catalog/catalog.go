package catalog

import (
	"database/sql"

	"github.com/lib/pq"
	"go.uber.org/zap"

	myErr "shopkart-main/internal/types/errors"
)

// ProductCard - карточка товара в листинге.
// Листингом владеет страница, движок фильтрации только
// переключает видимость и порядок карточек на месте
type ProductCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	ReviewCount int    `json:"reviewCount"`
	Image       string `json:"image"`

	// FilteredOut выставляется сразу (exit-анимация),
	// Hidden - после задержки
	FilteredOut bool `json:"filteredOut"`
	Hidden      bool `json:"hidden"`

	gen uint64
}

// PriceBucket - фиксированный ценовой диапазон фильтра.
// Ограниченные диапазоны включают обе границы,
// крайние открыты снизу/сверху
type PriceBucket struct {
	ID    string
	Label string
	Min   int64
	Max   int64
}

func (b PriceBucket) Contains(price int64) bool {
	return price >= b.Min && price <= b.Max
}

// Buckets - диапазоны цен в том виде, как они показаны в сайдбаре
var Buckets = []PriceBucket{
	{ID: "under-10000", Label: "Under ₹10,000", Min: 0, Max: 9999},
	{ID: "10000-25000", Label: "₹10,000 - ₹25,000", Min: 10000, Max: 25000},
	{ID: "25000-50000", Label: "₹25,000 - ₹50,000", Min: 25000, Max: 50000},
	{ID: "50000-100000", Label: "₹50,000 - ₹1,00,000", Min: 50000, Max: 100000},
	{ID: "over-100000", Label: "Over ₹1,00,000", Min: 100001, Max: 1<<63 - 1},
}

// BucketByID находит диапазон по id чекбокса
func BucketByID(id string) (PriceBucket, bool) {
	for _, b := range Buckets {
		if b.ID == id {
			return b, true
		}
	}
	return PriceBucket{}, false
}

// FilterState - текущее состояние контролов фильтра
type FilterState struct {
	// Category - значение выбранной радиокнопки, "all" пропускает все
	Category string
	// Buckets - id отмеченных ценовых чекбоксов.
	// Пусто - фильтра по цене нет, карточка проходит при попадании
	// хотя бы в один отмеченный диапазон
	Buckets []string
}

// SortMode - режим сортировки листинга
type SortMode string

const (
	SortFeatured  SortMode = "featured"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
	SortReviews   SortMode = "reviews"
	// SortNewest переворачивает текущий порядок показа.
	// Это не сортировка по дате добавления, семантика демо сохранена
	SortNewest SortMode = "newest"
)

// ProductRepo отдает листинг карточек
//
//go:generate mockgen -source=catalog.go -destination=../mocks/mock_product_repo.go -package=mocks
type ProductRepo interface {
	GetAll() ([]ProductCard, error)
	// GetCategories - категории, к которым относятся товары с данными id
	GetCategories(ids []string) ([]string, error)
}

type ProductDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewProductDBRepository(db *sql.DB, logger *zap.SugaredLogger) *ProductDBRepository {
	return &ProductDBRepository{
		DB:     db,
		Logger: logger,
	}
}

// GetAll возвращает карточки в порядке выдачи "featured"
func (pr *ProductDBRepository) GetAll() ([]ProductCard, error) {
	query := `
	SELECT id, name, category, price, review_count, image
	FROM product
	WHERE is_active = TRUE
	ORDER BY featured_rank
`
	rows, err := pr.DB.Query(query)
	if err != nil {
		pr.Logger.Errorf("Ошибка при получении листинга товаров: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var cards []ProductCard
	for rows.Next() {
		var c ProductCard
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.Price, &c.ReviewCount, &c.Image); err != nil {
			return nil, myErr.ErrDBInternal
		}

		cards = append(cards, c)
	}

	return cards, nil
}

// GetCategories возвращает уникальные категории товаров с данными id
func (pr *ProductDBRepository) GetCategories(ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	query := `
	SELECT DISTINCT category FROM product
	WHERE id = ANY($1)
`
	rows, err := pr.DB.Query(query, pq.Array(ids))
	if err != nil {
		pr.Logger.Errorf("Ошибка при получении категорий товаров: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, myErr.ErrDBInternal
		}

		categories = append(categories, category)
	}

	return categories, nil
}
