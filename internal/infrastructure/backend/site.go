package backend

import (
	"context"
	"net/http"

	"github.com/your-org/boutique-storefront/internal/domain/site"
)

// SubmitContact stores a contact form message
func (c *Client) SubmitContact(ctx context.Context, req site.ContactRequest) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodPost, path: "/api/public/contact", body: req})
}

// Subscribe adds an email to the newsletter
func (c *Client) Subscribe(ctx context.Context, email string) (string, error) {
	return c.sendMessage(ctx, request{
		method: http.MethodPost,
		path:   "/api/public/newsletter/subscribe",
		body:   map[string]string{"email": email},
	})
}

// Policies returns the policy page links
func (c *Client) Policies(ctx context.Context) (map[string]string, error) {
	var out map[string]string
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/public/policies"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
