package wishlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/your-org/boutique-storefront/internal/domain/catalog"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) GetWishlist(ctx context.Context) ([]WishlistItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]WishlistItem), args.Error(1)
}

func (m *MockBackend) AddToWishlist(ctx context.Context, productID int64) (string, error) {
	args := m.Called(ctx, productID)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) RemoveFromWishlist(ctx context.Context, productID int64) (string, error) {
	args := m.Called(ctx, productID)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) AddToCart(ctx context.Context, productID int64, quantity int) (string, error) {
	args := m.Called(ctx, productID, quantity)
	return args.String(0), args.Error(1)
}

func TestService_AddToWishlist(t *testing.T) {
	ctx := context.Background()
	backend := new(MockBackend)
	svc := NewService(backend)
	backend.On("AddToWishlist", ctx, int64(5)).Return("Product added to your wishlist!", nil)
	backend.On("GetWishlist", ctx).Return([]WishlistItem{{ID: 1, Product: catalog.Product{ID: 5, Price: 900}}}, nil)

	resp, err := svc.AddToWishlist(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Product added to your wishlist!", resp.Message)
	assert.Equal(t, 1, resp.Count)
	assert.True(t, resp.Contains(5))
	assert.False(t, resp.Contains(6))
}

func TestService_MoveToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		backend := new(MockBackend)
		svc := NewService(backend)
		backend.On("AddToCart", ctx, int64(5), 1).Return("Item added to cart successfully.", nil)
		backend.On("RemoveFromWishlist", ctx, int64(5)).Return("Item removed from wishlist.", nil)
		backend.On("GetWishlist", ctx).Return([]WishlistItem{}, nil)

		resp, err := svc.MoveToCart(ctx, 5, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Count)
		assert.Equal(t, "Item moved to cart.", resp.Message)
		backend.AssertExpectations(t)
	})

	t.Run("CartRejectsKeepsWishlist", func(t *testing.T) {
		backend := new(MockBackend)
		svc := NewService(backend)
		backend.On("AddToCart", ctx, int64(5), 2).Return("", apperr.Business(400, "Error adding item: Out of stock"))

		_, err := svc.MoveToCart(ctx, 5, 2)
		require.Error(t, err)
		backend.AssertNotCalled(t, "RemoveFromWishlist", mock.Anything, mock.Anything)
	})
}

func TestService_RemoveFromWishlistInvalidID(t *testing.T) {
	svc := NewService(new(MockBackend))
	_, err := svc.RemoveFromWishlist(context.Background(), 0)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
