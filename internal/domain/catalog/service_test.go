package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/your-org/boutique-storefront/internal/config"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
)

// --- Mocks ---

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) ListProducts(ctx context.Context, category string) (*CategoryListing, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CategoryListing), args.Error(1)
}

func (m *MockBackend) SearchProducts(ctx context.Context, keyword string) ([]Product, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockBackend) GetProduct(ctx context.Context, id int64) (*ProductDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProductDetail), args.Error(1)
}

func (m *MockBackend) SubmitReview(ctx context.Context, productID int64, req ReviewRequest) (string, error) {
	args := m.Called(ctx, productID, req)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBackend) HomeFeed(ctx context.Context) (*HomeFeed, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*HomeFeed), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{Catalog: config.CatalogConfig{Colors: []string{"Maroon", "Gold"}}}
}

// --- Tests ---

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		backend := new(MockBackend)
		svc := NewService(backend, testConfig())
		backend.On("ListProducts", ctx, "Sarees").Return(&CategoryListing{
			Products:         sampleProducts(),
			SelectedCategory: "Sarees",
			Categories:       []string{"Sarees", "Kurtis"},
		}, nil)

		criteria := FilterCriteria{Category: "Sarees", Status: StatusOnSale, Sort: SortPriceAsc}
		listing, err := svc.List(ctx, criteria)
		require.NoError(t, err)

		require.Len(t, listing.Products, 2)
		assert.Equal(t, int64(2), listing.Products[0].ID)
		assert.Equal(t, "50% OFF", listing.Products[0].SaleLabel)
		assert.Equal(t, 2, listing.Total)
		assert.Equal(t, "Sarees", listing.SelectedCategory)
		assert.Equal(t, []string{"Maroon", "Gold"}, listing.Colors)
		assert.Equal(t, criteria, listing.Criteria)
		backend.AssertExpectations(t)
	})

	t.Run("BackendError", func(t *testing.T) {
		backend := new(MockBackend)
		svc := NewService(backend, testConfig())
		backend.On("ListProducts", ctx, "").Return(nil, apperr.Infrastructure(errors.New("connection refused")))

		_, err := svc.List(ctx, DefaultCriteria())
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindInfrastructure))
	})
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("KeywordAppliedByBackend", func(t *testing.T) {
		backend := new(MockBackend)
		svc := NewService(backend, testConfig())
		// description match returned by the backend must survive local filtering
		backend.On("SearchProducts", ctx, "zari").Return([]Product{
			{ID: 4, Name: "Kanjivaram", Description: "zari border", Price: 900, StockQuantity: 1},
			{ID: 5, Name: "Zari Dupatta", Price: 400},
		}, nil)
		backend.On("Categories", ctx).Return([]string{"Sarees"}, nil)

		listing, err := svc.Search(ctx, FilterCriteria{Keyword: "zari", Status: StatusInStock})
		require.NoError(t, err)
		require.Len(t, listing.Products, 1)
		assert.Equal(t, int64(4), listing.Products[0].ID)
		assert.Equal(t, "zari", listing.Criteria.Keyword)
	})

	t.Run("EmptyKeyword", func(t *testing.T) {
		backend := new(MockBackend)
		svc := NewService(backend, testConfig())

		_, err := svc.Search(ctx, DefaultCriteria())
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		backend.AssertNotCalled(t, "SearchProducts", mock.Anything, mock.Anything)
	})

	t.Run("WhitespaceKeyword", func(t *testing.T) {
		backend := new(MockBackend)
		svc := NewService(backend, testConfig())

		_, err := svc.Search(ctx, FilterCriteria{Keyword: "   "})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		backend.AssertNotCalled(t, "SearchProducts", mock.Anything, mock.Anything)
	})

	t.Run("KeywordTrimmed", func(t *testing.T) {
		backend := new(MockBackend)
		svc := NewService(backend, testConfig())
		backend.On("SearchProducts", ctx, "silk").Return([]Product{}, nil)
		backend.On("Categories", ctx).Return([]string{}, nil)

		listing, err := svc.Search(ctx, FilterCriteria{Keyword: "  silk "})
		require.NoError(t, err)
		assert.Equal(t, "silk", listing.Criteria.Keyword)
		backend.AssertExpectations(t)
	})
}

func TestService_Home(t *testing.T) {
	ctx := context.Background()
	backend := new(MockBackend)
	svc := NewService(backend, testConfig())
	backend.On("HomeFeed", ctx).Return(&HomeFeed{Products: sampleProducts()}, nil)

	listing, err := svc.Home(ctx, DefaultCriteria())
	require.NoError(t, err)
	assert.Equal(t, 3, listing.Total)
	assert.Equal(t, int64(3), listing.Products[0].ID)
	assert.NotNil(t, listing.Categories)
}

func TestService_Detail(t *testing.T) {
	ctx := context.Background()

	t.Run("CapsRelatedProducts", func(t *testing.T) {
		backend := new(MockBackend)
		svc := NewService(backend, testConfig())
		related := make([]Product, 6)
		for i := range related {
			related[i] = Product{ID: int64(i + 10), Price: 100}
		}
		backend.On("GetProduct", ctx, int64(1)).Return(&ProductDetail{
			Product:         Product{ID: 1, Price: 1000, DiscountPercent: 20, StockQuantity: 3},
			RelatedProducts: related,
			Reviews:         []Review{{ID: 1, Rating: 5}, {ID: 2, Rating: 4}},
		}, nil)

		detail, err := svc.Detail(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, detail.RelatedProducts, MaxRelatedProducts)
		assert.Equal(t, 800.0, detail.Product.EffectivePrice)
		assert.Equal(t, 4.5, detail.AverageRating)
	})

	t.Run("NotFound", func(t *testing.T) {
		backend := new(MockBackend)
		svc := NewService(backend, testConfig())
		backend.On("GetProduct", ctx, int64(99)).Return(nil, apperr.Business(404, "Product not found"))

		_, err := svc.Detail(ctx, 99)
		appErr := apperr.As(err)
		assert.Equal(t, apperr.KindBusiness, appErr.Kind)
		assert.Equal(t, "Product not found", appErr.Message)
		assert.Equal(t, 404, appErr.Status)
	})

	t.Run("InvalidID", func(t *testing.T) {
		svc := NewService(new(MockBackend), testConfig())
		_, err := svc.Detail(ctx, 0)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})
}

func TestService_SubmitReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		backend := new(MockBackend)
		svc := NewService(backend, testConfig())
		req := ReviewRequest{Rating: 5, Comment: "Lovely drape"}
		backend.On("SubmitReview", ctx, int64(3), req).Return("Review submitted! It will appear once approved by our team.", nil)

		msg, err := svc.SubmitReview(ctx, 3, req)
		require.NoError(t, err)
		assert.Contains(t, msg, "approved")
		backend.AssertExpectations(t)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		backend := new(MockBackend)
		svc := NewService(backend, testConfig())

		_, err := svc.SubmitReview(ctx, 3, ReviewRequest{Rating: 6})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		backend.AssertNotCalled(t, "SubmitReview", mock.Anything, mock.Anything, mock.Anything)
	})
}
