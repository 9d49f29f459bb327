// internal/domain/catalog/filter.go
package catalog

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
)

// StockStatus narrows a listing to a stock/sale state
type StockStatus string

const (
	StatusNone      StockStatus = ""
	StatusInStock   StockStatus = "inStock"
	StatusOnSale    StockStatus = "onSale"
	StatusClearance StockStatus = "clearance"
)

// SortOrder orders a listing
type SortOrder string

const (
	SortLatest    SortOrder = "latest"
	SortOldest    SortOrder = "oldest"
	SortPriceAsc  SortOrder = "priceAsc"
	SortPriceDesc SortOrder = "priceDesc"
)

// ClearanceThreshold is the minimum discount for a product to count as clearance
const ClearanceThreshold = 50

// FilterCriteria is the shopper's current listing filter. Nil price bounds are unbounded.
type FilterCriteria struct {
	MinPrice *float64    `json:"minPrice,omitempty"`
	MaxPrice *float64    `json:"maxPrice,omitempty"`
	Status   StockStatus `json:"status,omitempty"`
	Color    string      `json:"color,omitempty"`
	Keyword  string      `json:"keyword,omitempty"`
	Category string      `json:"category,omitempty"`
	Sort     SortOrder   `json:"sort"`
}

// DefaultCriteria matches every product and orders by newest first
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{Sort: SortLatest}
}

// ParseCriteria reads filter criteria from listing query parameters
func ParseCriteria(q url.Values) (FilterCriteria, error) {
	c := DefaultCriteria()

	var err error
	if c.MinPrice, err = parseBound(q, "minPrice"); err != nil {
		return c, err
	}
	if c.MaxPrice, err = parseBound(q, "maxPrice"); err != nil {
		return c, err
	}
	switch status := StockStatus(strings.TrimSpace(q.Get("status"))); status {
	case StatusNone, StatusInStock, StatusOnSale, StatusClearance:
		c.Status = status
	default:
		return c, apperr.Validation(fmt.Sprintf("Unknown status filter %q", status))
	}

	if s := strings.TrimSpace(q.Get("sort")); s != "" {
		switch order := SortOrder(s); order {
		case SortLatest, SortOldest, SortPriceAsc, SortPriceDesc:
			c.Sort = order
		default:
			return c, apperr.Validation(fmt.Sprintf("Unknown sort order %q", s))
		}
	}

	c.Color = strings.TrimSpace(q.Get("color"))
	c.Keyword = q.Get("keyword")
	c.Category = strings.TrimSpace(q.Get("category"))
	return c, nil
}

func parseBound(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperr.Validation(fmt.Sprintf("%s must be a non-negative number", key))
	}
	return &v, nil
}

// Matches reports whether p passes every predicate of c
func (c FilterCriteria) Matches(p Product) bool {
	if kw := strings.ToLower(strings.TrimSpace(c.Keyword)); kw != "" {
		if !strings.Contains(strings.ToLower(p.Name), kw) {
			return false
		}
	}

	price := p.EffectivePrice()
	if c.MinPrice != nil && price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && price > *c.MaxPrice {
		return false
	}

	switch c.Status {
	case StatusInStock:
		if p.StockQuantity <= 0 {
			return false
		}
	case StatusOnSale:
		if p.DiscountPercent <= 0 {
			return false
		}
	case StatusClearance:
		if p.DiscountPercent < ClearanceThreshold {
			return false
		}
	}

	if c.Color != "" && p.ProductColor != c.Color {
		return false
	}
	return true
}

// FilterSort narrows products to those matching c and orders them.
// The input slice is never modified.
func FilterSort(products []Product, c FilterCriteria) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if c.Matches(p) {
			out = append(out, p)
		}
	}

	var less func(a, b Product) bool
	switch c.Sort {
	case SortPriceAsc:
		less = func(a, b Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b Product) bool { return a.Price > b.Price }
	case SortOldest:
		less = func(a, b Product) bool { return a.ID < b.ID }
	default:
		less = func(a, b Product) bool { return a.ID > b.ID }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	return out
}
