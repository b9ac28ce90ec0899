package catalog

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	myErr "shopkart-main/internal/types/errors"
)

func setupRepo(t *testing.T) (*ProductDBRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("ошибка при создании mock db: %s", err)
	}

	repo := NewProductDBRepository(db, zaptest.NewLogger(t).Sugar())
	return repo, mock, func() { db.Close() }
}

func TestGetAll(t *testing.T) {
	repo, mock, cleanup := setupRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "category", "price", "review_count", "image"}).
		AddRow("p1", "boAt Airdopes 441", "electronics", int64(1299), 50, "/assets/p1.jpg").
		AddRow("p2", "Wakefit Mattress", "home", int64(8999), 5, "/assets/p2.jpg")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, category, price, review_count, image")).
		WillReturnRows(rows)

	cards, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Equal(t, "p1", cards[0].ID)
	assert.Equal(t, int64(1299), cards[0].Price)
	assert.Equal(t, "home", cards[1].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllDBError(t *testing.T) {
	repo, mock, cleanup := setupRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, category, price, review_count, image")).
		WillReturnError(errors.New("db error"))

	cards, err := repo.GetAll()
	assert.Nil(t, cards)
	assert.ErrorIs(t, err, myErr.ErrDBInternal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCategories(t *testing.T) {
	repo, mock, cleanup := setupRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"category"}).
		AddRow("electronics").
		AddRow("home")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT category FROM product")).
		WithArgs(pq.Array([]string{"p1", "p3"})).
		WillReturnRows(rows)

	categories, err := repo.GetCategories([]string{"p1", "p3"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"electronics", "home"}, categories)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCategoriesEmptyIDs(t *testing.T) {
	repo, _, cleanup := setupRepo(t)
	defer cleanup()

	// без id запрос в базу не уходит
	categories, err := repo.GetCategories(nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{}, categories)
}
