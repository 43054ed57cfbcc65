package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/leadlift/leadlift-web/internal/backend"
	"github.com/leadlift/leadlift-web/internal/config"
	"github.com/leadlift/leadlift-web/internal/models"
	"github.com/leadlift/leadlift-web/internal/monitoring"
	"github.com/leadlift/leadlift-web/internal/web"
)

const outputDir = "test_output"

// FixtureAPI answers every backend call from built-in sample data
type FixtureAPI struct{}

var _ backend.API = FixtureAPI{}

func (FixtureAPI) SearchBusinesses(ctx context.Context, token, query string) (*models.SearchResponse, error) {
	return &models.SearchResponse{
		Businesses: []models.SearchResult{
			{ID: "joes-diner", DisplayName: "Joe's Diner", FormattedAddress: "12 Main St, Newark, NJ 07102", Rating: 4.6, UserRatingCount: 2310},
			{ID: "harbor-bakery", DisplayName: "Harbor Bakery", FormattedAddress: "88 Ocean Ave, Jersey City, NJ", Rating: 4.1, UserRatingCount: 412},
			{ID: "new-spot", DisplayName: "New Spot Cafe"},
		},
		Count: 3,
	}, nil
}

func (FixtureAPI) GetBusiness(ctx context.Context, token, id string) (*models.Business, error) {
	return &models.Business{
		ID:           id,
		Name:         "Joe's Diner",
		Summary:      "Classic American diner open late.",
		Status:       models.StatusOperational,
		Rating:       4.6,
		TotalReviews: 2310,
		Address:      "12 Main St, Newark, NJ 07102",
		LocalPhone:   "(973) 555-0100",
		Website:      "https://joesdiner.example",
		Photos: []string{
			"https://images.unsplash.com/photo-1555396273-367ea4eb4db5?w=800",
			"",
			"https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=800",
		},
		Reviews: []models.Review{
			{Author: "Maria", Time: "2 weeks ago", Rating: 5, Text: "Best pancakes in Newark."},
			{Author: "Sam", Time: "a month ago", Rating: 4, Text: "Busy on weekends but worth the wait."},
		},
		ReviewSummary: "Guests love the breakfast menu and the friendly staff.",
	}, nil
}

func (FixtureAPI) GetSEOScore(ctx context.Context, token, id string) (*models.SEOScore, error) {
	return &models.SEOScore{Value: 72}, nil
}

func (FixtureAPI) GetSummary(ctx context.Context, token, id string) (*models.AISummary, error) {
	return &models.AISummary{
		BusinessSummary: "A busy neighbourhood diner with strong reviews and a dated website.",
		RedFlags: []models.RedFlag{
			{Label: "No online ordering", Detail: "Customers cannot order from the website."},
		},
		FBFollowers: []models.Followers{{Handle: "joesdiner", Count: 15000, Numeric: true}},
		IGFollowers: []models.Followers{{Handle: "joesdiner.nj", Count: 1250000, Numeric: true}},
	}, nil
}

func (FixtureAPI) GetTrends(ctx context.Context, token, name string) (*models.TrendsData, error) {
	interest := map[string]float64{}
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		interest[start.AddDate(0, i, 0).Format("2006-01-02")] = float64(40 + (i*17)%60)
	}
	return &models.TrendsData{
		SearchInterest: interest,
		ExpansionMarkets: map[string]float64{
			"New Jersey": 100, "New York": 82, "Pennsylvania": 47, "Connecticut": 31, "Delaware": 12,
		},
	}, nil
}

func (FixtureAPI) GetWebsiteAudit(ctx context.Context, token, id string) (*models.WebsiteAudit, error) {
	return &models.WebsiteAudit{
		Score:           &models.ScoreBreakdown{Score: 13, MaxScore: 20, Percentage: 65},
		TitleTag:        &models.CheckStatus{Status: "present"},
		MetaDescription: &models.CheckStatus{Status: "missing"},
		Images:          &models.ImageStats{TotalImages: 14, MissingAlt: 6},
	}, nil
}

func (FixtureAPI) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	return &models.User{Name: "Preview User", Email: "preview@leadlift.example"}, nil
}

func (FixtureAPI) Logout(ctx context.Context, token string) error { return nil }

func (FixtureAPI) Ping(ctx context.Context) error { return nil }

var pages = []struct {
	File string
	Path string
}{
	{"home.html", "/"},
	{"about.html", "/about"},
	{"auth.html", "/auth?error=cancelled"},
	{"search.html", "/search?query=restaurants+in+New+Jersey"},
	{"business_overview.html", "/businesses/joes-diner"},
	{"business_trends.html", "/businesses/joes-diner?tab=trends"},
	{"business_audit.html", "/businesses/joes-diner?tab=audit&photo=1"},
	{"business_reviews.html", "/businesses/joes-diner?tab=reviews&photo=2"},
}

func main() {
	fmt.Println("🖼️  Leadlift - Page Preview Renderer")
	fmt.Println("====================================")

	cfg := &config.Config{
		BackendURL:       "http://fixtures.invalid",
		BackendPublicURL: "http://fixtures.invalid",
		RequestTimeout:   5 * time.Second,
		SessionCookie:    "access_token",
		ProtectedPaths:   []string{"/search", "/businesses/:path*"},
		UnauthRedirect:   "/auth",
		GuardMode:        config.GuardModePresence,
	}

	api := FixtureAPI{}
	handler := web.NewServer(cfg, api, monitoring.NewService(cfg, api, nil, nil)).Handler()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("❌ Could not create %s: %v\n", outputDir, err)
		os.Exit(1)
	}

	failed := false
	for _, page := range pages {
		req := httptest.NewRequest(http.MethodGet, page.Path, nil)
		req.AddCookie(&http.Cookie{Name: cfg.SessionCookie, Value: "preview"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			fmt.Printf("❌ %-28s HTTP %d\n", page.Path, rec.Code)
			failed = true
			continue
		}

		filename := filepath.Join(outputDir, page.File)
		if err := os.WriteFile(filename, rec.Body.Bytes(), 0644); err != nil {
			fmt.Printf("❌ %-28s %v\n", page.Path, err)
			failed = true
			continue
		}
		fmt.Printf("✅ %-28s -> %s\n", page.Path, filename)
	}

	fmt.Println("\n" + strings.Repeat("=", 36))
	if failed {
		os.Exit(1)
	}
	fmt.Printf("💾 Pages saved to %s/\n", outputDir)
}
