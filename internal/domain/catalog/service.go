// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/your-org/boutique-storefront/internal/config"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
)

// MaxRelatedProducts caps the related products shown on a product page
const MaxRelatedProducts = 4

// Backend is the part of the boutique API the catalog reads from
type Backend interface {
	ListProducts(ctx context.Context, category string) (*CategoryListing, error)
	SearchProducts(ctx context.Context, keyword string) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (*ProductDetail, error)
	SubmitReview(ctx context.Context, productID int64, req ReviewRequest) (string, error)
	Categories(ctx context.Context) ([]string, error)
	HomeFeed(ctx context.Context) (*HomeFeed, error)
}

// Service handles catalog browsing
type Service struct {
	backend Backend
	config  *config.Config
}

// NewService creates a new catalog service
func NewService(backend Backend, cfg *config.Config) *Service {
	return &Service{
		backend: backend,
		config:  cfg,
	}
}

// Listing is a filtered, sorted product listing ready for display
type Listing struct {
	Products         []ProductView  `json:"products"`
	Categories       []string       `json:"categories"`
	Colors           []string       `json:"colors"`
	SelectedCategory string         `json:"selectedCategory,omitempty"`
	Criteria         FilterCriteria `json:"criteria"`
	Total            int            `json:"total"`
}

// Detail is a product page
type Detail struct {
	Product         ProductView   `json:"product"`
	RelatedProducts []ProductView `json:"relatedProducts"`
	Reviews         []Review      `json:"reviews"`
	AverageRating   float64       `json:"averageRating"`
	Categories      []string      `json:"categories"`
}

// List returns the category listing narrowed by criteria
func (s *Service) List(ctx context.Context, criteria FilterCriteria) (*Listing, error) {
	listing, err := s.backend.ListProducts(ctx, criteria.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	result := s.buildListing(listing.Products, listing.Categories, criteria)
	result.SelectedCategory = listing.SelectedCategory
	return result, nil
}

// Search runs a backend keyword search and narrows the results by the remaining criteria.
// The backend has already applied the keyword.
func (s *Service) Search(ctx context.Context, criteria FilterCriteria) (*Listing, error) {
	criteria.Keyword = strings.TrimSpace(criteria.Keyword)
	if criteria.Keyword == "" {
		return nil, apperr.Validation("Please enter a search keyword")
	}

	products, err := s.backend.SearchProducts(ctx, criteria.Keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	categories, err := s.backend.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	local := criteria
	local.Keyword = ""
	result := s.buildListing(products, categories, local)
	result.Criteria = criteria
	return result, nil
}

// Home returns the storefront landing listing
func (s *Service) Home(ctx context.Context, criteria FilterCriteria) (*Listing, error) {
	feed, err := s.backend.HomeFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load home feed: %w", err)
	}
	return s.buildListing(feed.Products, feed.Categories, criteria), nil
}

// Detail returns a product page
func (s *Service) Detail(ctx context.Context, id int64) (*Detail, error) {
	if id <= 0 {
		return nil, apperr.Validation("Invalid product ID")
	}

	detail, err := s.backend.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}

	related := detail.RelatedProducts
	if len(related) > MaxRelatedProducts {
		related = related[:MaxRelatedProducts]
	}

	reviews := detail.Reviews
	if reviews == nil {
		reviews = []Review{}
	}

	return &Detail{
		Product:         NewProductView(detail.Product),
		RelatedProducts: NewProductViews(related),
		Reviews:         reviews,
		AverageRating:   averageRating(reviews),
		Categories:      detail.Categories,
	}, nil
}

// SubmitReview posts a review; it stays hidden until an admin approves it
func (s *Service) SubmitReview(ctx context.Context, productID int64, req ReviewRequest) (string, error) {
	if productID <= 0 {
		return "", apperr.Validation("Invalid product ID")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return "", apperr.Validation("Rating must be between 1 and 5")
	}

	msg, err := s.backend.SubmitReview(ctx, productID, req)
	if err != nil {
		return "", fmt.Errorf("failed to submit review: %w", err)
	}
	return msg, nil
}

// Categories returns the category names
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.backend.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return categories, nil
}

func (s *Service) buildListing(products []Product, categories []string, criteria FilterCriteria) *Listing {
	filtered := FilterSort(products, criteria)
	if categories == nil {
		categories = []string{}
	}
	return &Listing{
		Products:   NewProductViews(filtered),
		Categories: categories,
		Colors:     s.config.Catalog.Colors,
		Criteria:   criteria,
		Total:      len(filtered),
	}
}

func averageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
