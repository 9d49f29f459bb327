package backend

import (
	"github.com/your-org/boutique-storefront/internal/domain/account"
	"github.com/your-org/boutique-storefront/internal/domain/admin"
	"github.com/your-org/boutique-storefront/internal/domain/cart"
	"github.com/your-org/boutique-storefront/internal/domain/catalog"
	"github.com/your-org/boutique-storefront/internal/domain/checkout"
	"github.com/your-org/boutique-storefront/internal/domain/customer"
	"github.com/your-org/boutique-storefront/internal/domain/site"
	"github.com/your-org/boutique-storefront/internal/domain/wishlist"
)

var (
	_ account.Backend  = (*Client)(nil)
	_ admin.Backend    = (*Client)(nil)
	_ cart.Backend     = (*Client)(nil)
	_ catalog.Backend  = (*Client)(nil)
	_ checkout.Backend = (*Client)(nil)
	_ customer.Backend = (*Client)(nil)
	_ site.Backend     = (*Client)(nil)
	_ wishlist.Backend = (*Client)(nil)
)
