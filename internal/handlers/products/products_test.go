package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"shopkart-main/internal/catalog"
	myErr "shopkart-main/internal/types/errors"
)

type stubProductRepo struct {
	cards []catalog.ProductCard
	err   error
}

func (s *stubProductRepo) GetAll() ([]catalog.ProductCard, error) {
	return s.cards, s.err
}

func (s *stubProductRepo) GetCategories(_ []string) ([]string, error) {
	return nil, nil
}

func listing() []catalog.ProductCard {
	return []catalog.ProductCard{
		{ID: "p1", Name: "boAt Airdopes 441", Category: "electronics", Price: 1299, ReviewCount: 50},
		{ID: "p2", Name: "Noise ColorFit Pro", Category: "electronics", Price: 11999, ReviewCount: 10},
		{ID: "p3", Name: "Wakefit Mattress", Category: "home", Price: 8999, ReviewCount: 5},
		{ID: "p4", Name: "iPhone 15", Category: "electronics", Price: 79900, ReviewCount: 200},
	}
}

func getListing(t *testing.T, h *ProductHandler, url string) listingResponse {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	h.GetListing(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp listingResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestGetListing(t *testing.T) {
	h := NewProductHandler(zaptest.NewLogger(t).Sugar(), &stubProductRepo{cards: listing()})

	resp := getListing(t, h, "/products")

	assert.Len(t, resp.Cards, 4)
	assert.Equal(t, 4, resp.VisibleCount)
	assert.Equal(t, `1-4 of over 2,000 results for "Latest Devices"`, resp.ResultCountLabel)
	assert.Equal(t, "load-more", resp.TrailingControl)
	assert.Len(t, resp.PriceBuckets, 5)
	assert.Equal(t, "Under ₹10,000", resp.PriceBuckets[0].Label)
	assert.Equal(t, "₹1,299", resp.Cards[0].PriceLabel)
}

func TestGetListingCategoryFilter(t *testing.T) {
	h := NewProductHandler(zaptest.NewLogger(t).Sugar(), &stubProductRepo{cards: listing()})

	resp := getListing(t, h, "/products?category=home")

	assert.Equal(t, 1, resp.VisibleCount)
	// отфильтрованные карточки не пропадают из ответа, а помечаются
	assert.Len(t, resp.Cards, 4)
	for _, card := range resp.Cards {
		if card.Category == "home" {
			assert.False(t, card.FilteredOut)
			assert.False(t, card.Hidden)
		} else {
			assert.True(t, card.FilteredOut)
			assert.True(t, card.Hidden)
		}
	}
}

func TestGetListingPriceBuckets(t *testing.T) {
	h := NewProductHandler(zaptest.NewLogger(t).Sugar(), &stubProductRepo{cards: listing()})

	resp := getListing(t, h, "/products?bucket=under-10000&bucket=50000-100000")

	visible := map[string]bool{}
	for _, card := range resp.Cards {
		if !card.FilteredOut {
			visible[card.ID] = true
		}
	}
	assert.Equal(t, map[string]bool{"p1": true, "p3": true, "p4": true}, visible)
}

func TestGetListingSortPriceLow(t *testing.T) {
	h := NewProductHandler(zaptest.NewLogger(t).Sugar(), &stubProductRepo{cards: listing()})

	resp := getListing(t, h, "/products?sort=price-low")

	ids := make([]string, 0, len(resp.Cards))
	for _, card := range resp.Cards {
		ids = append(ids, card.ID)
	}
	assert.Equal(t, []string{"p1", "p3", "p2", "p4"}, ids)
}

func TestGetListingSortReviews(t *testing.T) {
	h := NewProductHandler(zaptest.NewLogger(t).Sugar(), &stubProductRepo{cards: listing()})

	resp := getListing(t, h, "/products?sort=reviews")

	assert.Equal(t, "p4", resp.Cards[0].ID)
	assert.Equal(t, "p1", resp.Cards[1].ID)
}

func TestGetListingCombinedFilterAndSort(t *testing.T) {
	h := NewProductHandler(zaptest.NewLogger(t).Sugar(), &stubProductRepo{cards: listing()})

	resp := getListing(t, h, "/products?category=electronics&bucket=under-10000&sort=price-high")

	assert.Equal(t, 1, resp.VisibleCount)
	assert.Equal(t, `1-1 of over 2,000 results for "Latest Devices"`, resp.ResultCountLabel)
}

func TestGetListingRepoError(t *testing.T) {
	h := NewProductHandler(zaptest.NewLogger(t).Sugar(), &stubProductRepo{err: myErr.ErrDBInternal})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	h.GetListing(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
