package web

import (
	"context"

	"github.com/leadlift/leadlift-web/internal/fetchunit"
	"github.com/leadlift/leadlift-web/internal/models"
)

// Error prefixes shown in front of a failed unit's message
const (
	searchErrorPrefix   = "Error fetching businesses: "
	businessErrorPrefix = ""
	seoErrorPrefix      = "Error fetching overall score: "
	summaryErrorPrefix  = "Error fetching AI analysis: "
	trendsErrorPrefix   = "Error fetching trends data: "
	auditErrorPrefix    = "Error fetching website audit data: "
)

// Units are created per request and bound to the caller's session token so
// every backend call carries the browser's cookie.

func (s *Server) searchUnit(token string) *fetchunit.Unit[string, *models.SearchResponse] {
	return fetchunit.New("search", searchErrorPrefix, func(ctx context.Context, query string) (*models.SearchResponse, error) {
		return s.api.SearchBusinesses(ctx, token, query)
	}).WithObserver(s.monitoring)
}

func (s *Server) businessUnit(token string) *fetchunit.Unit[string, *models.Business] {
	return fetchunit.New("business", businessErrorPrefix, func(ctx context.Context, id string) (*models.Business, error) {
		return s.api.GetBusiness(ctx, token, id)
	}).WithObserver(s.monitoring)
}

func (s *Server) seoUnit(token string) *fetchunit.Unit[string, *models.SEOScore] {
	return fetchunit.New("seo_score", seoErrorPrefix, func(ctx context.Context, id string) (*models.SEOScore, error) {
		return s.api.GetSEOScore(ctx, token, id)
	}).WithObserver(s.monitoring)
}

func (s *Server) summaryUnit(token string) *fetchunit.Unit[string, *models.AISummary] {
	return fetchunit.New("ai_summary", summaryErrorPrefix, func(ctx context.Context, id string) (*models.AISummary, error) {
		return s.api.GetSummary(ctx, token, id)
	}).WithObserver(s.monitoring)
}

func (s *Server) trendsUnit(token string) *fetchunit.Unit[string, *models.TrendsData] {
	return fetchunit.New("trends", trendsErrorPrefix, func(ctx context.Context, name string) (*models.TrendsData, error) {
		return s.api.GetTrends(ctx, token, name)
	}).WithObserver(s.monitoring)
}

func (s *Server) auditUnit(token string) *fetchunit.Unit[string, *models.WebsiteAudit] {
	return fetchunit.New("website_audit", auditErrorPrefix, func(ctx context.Context, id string) (*models.WebsiteAudit, error) {
		return s.api.GetWebsiteAudit(ctx, token, id)
	}).WithObserver(s.monitoring)
}
