package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/leadlift/leadlift-web/internal/backend"
	"github.com/leadlift/leadlift-web/internal/config"
)

func main() {
	fmt.Println("🔍 Leadlift - Backend Connectivity Check")
	fmt.Println("=========================================")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// a session cookie value lets the authenticated endpoints be checked too
	token := os.Getenv("CHECK_TOKEN")
	query := os.Getenv("CHECK_QUERY")
	if query == "" {
		query = "restaurants in New Jersey"
	}

	api := backend.NewClient(cfg.BackendURL, cfg.SessionCookie, cfg.RequestTimeout)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Printf("\n📡 Checking %s...\n", cfg.BackendURL)
	fmt.Println(strings.Repeat("-", 40))

	check("Liveness", func() (string, error) {
		return "answered", api.Ping(ctx)
	})

	check("Current user", func() (string, error) {
		user, err := api.CurrentUser(ctx, token)
		if err != nil {
			return "", err
		}
		return "signed in as " + user.DisplayLabel(), nil
	})

	var id, name string
	check("Search", func() (string, error) {
		resp, err := api.SearchBusinesses(ctx, token, query)
		if err != nil {
			return "", err
		}
		if len(resp.Businesses) > 0 {
			id, name = resp.Businesses[0].ID, string(resp.Businesses[0].DisplayName)
		}
		return fmt.Sprintf("%d businesses for %q", len(resp.Businesses), query), nil
	})

	if id == "" {
		fmt.Println("\n⚠️  No business to check detail endpoints against")
		return
	}

	check("Business detail", func() (string, error) {
		b, err := api.GetBusiness(ctx, token, id)
		if err != nil {
			return "", err
		}
		name = b.Name
		return fmt.Sprintf("%s (%d photos, %d reviews)", b.Name, len(b.Photos), len(b.Reviews)), nil
	})

	check("SEO score", func() (string, error) {
		s, err := api.GetSEOScore(ctx, token, id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d/100", s.Value), nil
	})

	check("AI summary", func() (string, error) {
		s, err := api.GetSummary(ctx, token, id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d red flags", len(s.RedFlags)), nil
	})

	check("Trends", func() (string, error) {
		t, err := api.GetTrends(ctx, token, name)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d interest points, %d markets", len(t.SearchInterest), len(t.ExpansionMarkets)), nil
	})

	check("Website audit", func() (string, error) {
		a, err := api.GetWebsiteAudit(ctx, token, id)
		if err != nil {
			return "", err
		}
		if a.Score == nil {
			return "no score", nil
		}
		return fmt.Sprintf("%.1f%%", a.Score.Percentage), nil
	})

	fmt.Println("\n✅ Backend check completed!")
}

func check(name string, run func() (string, error)) {
	fmt.Printf("🔸 %s... ", name)

	detail, err := run()
	var statusErr *backend.StatusError
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		fmt.Printf("🔒 UNAUTHORIZED (set CHECK_TOKEN)\n")
	case errors.As(err, &statusErr):
		fmt.Printf("❌ HTTP %d: %s\n", statusErr.StatusCode, statusErr.Op)
	case err != nil:
		fmt.Printf("❌ ERROR: %v\n", err)
	default:
		fmt.Printf("✅ %s\n", detail)
	}
}
