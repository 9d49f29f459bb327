// internal/interfaces/http/handlers/flow.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/boutique-storefront/internal/config"
	"github.com/your-org/boutique-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/boutique-storefront/internal/pkg/auth"
	"github.com/your-org/boutique-storefront/internal/pkg/flow"
	"github.com/your-org/boutique-storefront/internal/pkg/logger"
)

const flowCookiePrefix = "sf_"

// FlowTickets hands the shopper a signed ticket naming their current flow
// record. The ticket travels as an HttpOnly cookie and, for non-browser
// clients, in the X-Flow-Token header.
type FlowTickets struct {
	tickets *auth.TicketManager
	config  *config.Config
}

// NewFlowTickets creates the flow ticket helper
func NewFlowTickets(tickets *auth.TicketManager, cfg *config.Config) *FlowTickets {
	return &FlowTickets{tickets: tickets, config: cfg}
}

// Issue attaches a ticket for flowID to the response
func (f *FlowTickets) Issue(c *gin.Context, kind flow.Kind, flowID string) error {
	ticket, err := f.tickets.Issue(flowID, string(kind))
	if err != nil {
		return err
	}

	f.setCookie(c, kind, ticket, int(f.tickets.TTL().Seconds()))
	c.Header(middleware.FlowTokenHeader, ticket)
	return nil
}

// Resolve returns the flow id the request's ticket names, or "" when there is
// no valid ticket of kind. The header wins over the cookie.
func (f *FlowTickets) Resolve(c *gin.Context, kind flow.Kind) string {
	candidates := []string{auth.ExtractTokenFromHeader(c.GetHeader(middleware.FlowTokenHeader))}
	if cookie, err := c.Cookie(flowCookiePrefix + string(kind)); err == nil {
		candidates = append(candidates, cookie)
	}

	for _, ticket := range candidates {
		if ticket == "" {
			continue
		}
		claims, err := f.tickets.Verify(ticket, string(kind))
		if err != nil {
			logger.FromContext(c.Request.Context()).WithError(err).Debug("Ignoring flow ticket")
			continue
		}
		return claims.FlowID
	}
	return ""
}

// Clear removes the ticket cookie of kind
func (f *FlowTickets) Clear(c *gin.Context, kind flow.Kind) {
	f.setCookie(c, kind, "", -1)
}

func (f *FlowTickets) setCookie(c *gin.Context, kind flow.Kind, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flowCookiePrefix+string(kind), value, maxAge, "/", f.config.Flow.CookieDomain, f.config.Flow.CookieSecure, true)
}
