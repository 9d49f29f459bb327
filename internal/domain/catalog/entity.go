// internal/domain/catalog/entity.go
package catalog

import "fmt"

// Product is a catalog product as published by the boutique backend
type Product struct {
	ID                    int64   `json:"id"`
	SKU                   string  `json:"sku"`
	Name                  string  `json:"name"`
	Description           string  `json:"description"`
	Category              string  `json:"category"`
	ImageURL              string  `json:"imageUrl"`
	ProductTags           string  `json:"productTags"`
	SizeOptions           string  `json:"sizeOptions"`
	ProductColor          string  `json:"productColor"`
	AdditionalInformation string  `json:"additionalInformation"`
	Price                 float64 `json:"price"`
	DiscountPercent       int     `json:"discountPercent"`
	StockQuantity         int     `json:"stockQuantity"`
	IsClearance           bool    `json:"isClearance"`
}

// EffectivePrice returns the discounted price
func (p Product) EffectivePrice() float64 {
	return p.Price * float64(100-p.DiscountPercent) / 100
}

// OnSale reports whether a sale badge should be shown
func (p Product) OnSale() bool {
	return p.DiscountPercent > 0
}

// InStock reports whether the product can be added to a cart
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// ProductView is the listing representation of a product
type ProductView struct {
	Product
	EffectivePrice float64 `json:"effectivePrice"`
	OnSale         bool    `json:"onSale"`
	SaleLabel      string  `json:"saleLabel,omitempty"`
	InStock        bool    `json:"inStock"`
}

// NewProductView decorates p with its derived pricing fields
func NewProductView(p Product) ProductView {
	view := ProductView{
		Product:        p,
		EffectivePrice: p.EffectivePrice(),
		OnSale:         p.OnSale(),
		InStock:        p.InStock(),
	}
	if view.OnSale {
		view.SaleLabel = fmt.Sprintf("%d%% OFF", p.DiscountPercent)
	}
	return view
}

// NewProductViews decorates every product in order
func NewProductViews(products []Product) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = NewProductView(p)
	}
	return views
}

// ReviewAuthor is the public part of a review's author
type ReviewAuthor struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
}

// Review is a product review
type Review struct {
	ID         int64         `json:"id"`
	Rating     int           `json:"rating"`
	Comment    string        `json:"comment"`
	ReviewDate string        `json:"reviewDate,omitempty"`
	Approved   bool          `json:"approved"`
	User       *ReviewAuthor `json:"user,omitempty"`
	Product    *Product      `json:"product,omitempty"`
}

// CategoryListing is the backend's category page payload
type CategoryListing struct {
	Products         []Product `json:"products"`
	SelectedCategory string    `json:"selectedCategory"`
	Categories       []string  `json:"categories"`
}

// ProductDetail is the backend's product page payload
type ProductDetail struct {
	Product         Product   `json:"product"`
	RelatedProducts []Product `json:"relatedProducts"`
	Reviews         []Review  `json:"reviews"`
	Categories      []string  `json:"categories"`
}

// HomeFeed is the site bootstrap payload used by the home page
type HomeFeed struct {
	Products   []Product      `json:"products"`
	Categories []string       `json:"categories"`
	Auth       map[string]any `json:"auth,omitempty"`
}

// ReviewRequest is a shopper's review submission
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}
