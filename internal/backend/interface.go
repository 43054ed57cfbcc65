package backend

import (
	"context"

	"github.com/leadlift/leadlift-web/internal/models"
)

// API defines the contract for the Leadlift backend. Every call forwards the
// caller's session token (may be empty) the way the browser would send its cookie.
type API interface {
	SearchBusinesses(ctx context.Context, token, query string) (*models.SearchResponse, error)
	GetBusiness(ctx context.Context, token, id string) (*models.Business, error)
	GetSEOScore(ctx context.Context, token, id string) (*models.SEOScore, error)
	GetSummary(ctx context.Context, token, id string) (*models.AISummary, error)
	GetTrends(ctx context.Context, token, name string) (*models.TrendsData, error)
	GetWebsiteAudit(ctx context.Context, token, id string) (*models.WebsiteAudit, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
	Ping(ctx context.Context) error
}
