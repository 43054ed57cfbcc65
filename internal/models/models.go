package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Business status values reported by the backend
const (
	StatusOperational = "OPERATIONAL"
	StatusClosed      = "CLOSED"
)

// Business is the detail view of a single place
type Business struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Summary       string   `json:"summary"`
	Status        string   `json:"status"`        // "OPERATIONAL", "CLOSED", anything else is treated as other
	Rating        float64  `json:"rating"`        // 0-5
	TotalReviews  int      `json:"totalReviews"`
	Address       string   `json:"address"`
	LocalPhone    string   `json:"localPhone"`
	Website       string   `json:"website"`
	Photos        []string `json:"photos"`
	Reviews       []Review `json:"reviews"`
	ReviewSummary string   `json:"reviewSummary"`
}

// Review is a single customer review on a business
type Review struct {
	Author string  `json:"author"`
	Time   string  `json:"time"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
}

// SearchResult is one entry of a business search
type SearchResult struct {
	ID               string      `json:"id"`
	DisplayName      DisplayName `json:"displayName"`
	FormattedAddress string      `json:"formattedAddress"`
	Rating           float64     `json:"rating"`
	UserRatingCount  int         `json:"userRatingCount"`
}

// SearchResponse is the payload of a business search
type SearchResponse struct {
	Businesses    []SearchResult `json:"businesses"`
	Count         int            `json:"count"`
	NextPageToken string         `json:"nextPageToken"`
	HasMore       bool           `json:"hasMore"`
}

// DisplayName accepts either a plain string or the places-style {"text": "..."} object.
type DisplayName string

func (d *DisplayName) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}

	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return fmt.Errorf("failed to decode display name: %w", err)
		}
		*d = DisplayName(wrapped.Text)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to decode display name: %w", err)
	}
	*d = DisplayName(s)
	return nil
}

// ScoreBreakdown is the points block of a scored audit
type ScoreBreakdown struct {
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	Percentage float64 `json:"percentage"`
}

// CheckStatus is a single categorical audit check
type CheckStatus struct {
	Status string `json:"status"`
}

// ImageStats counts images on the audited site
type ImageStats struct {
	TotalImages int `json:"total_images"`
	MissingAlt  int `json:"missing_alt"`
}

// WebsiteAudit is the scored website analysis of a business.
// The score block arrives either nested under "score" or flat at the top level.
type WebsiteAudit struct {
	Score           *ScoreBreakdown `json:"-"`
	TitleTag        *CheckStatus    `json:"title_tag,omitempty"`
	MetaDescription *CheckStatus    `json:"meta_description,omitempty"`
	Language        *CheckStatus    `json:"language,omitempty"`
	Images          *ImageStats     `json:"images,omitempty"`
}

func (w *WebsiteAudit) UnmarshalJSON(data []byte) error {
	type checks struct {
		TitleTag        *CheckStatus `json:"title_tag"`
		MetaDescription *CheckStatus `json:"meta_description"`
		Language        *CheckStatus `json:"language"`
		Images          *ImageStats  `json:"images"`
	}
	var raw struct {
		checks
		Score      json.RawMessage `json:"score"`
		MaxScore   *float64        `json:"max_score"`
		Percentage *float64        `json:"percentage"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode website audit: %w", err)
	}

	*w = WebsiteAudit{
		TitleTag:        raw.TitleTag,
		MetaDescription: raw.MetaDescription,
		Language:        raw.Language,
		Images:          raw.Images,
	}

	score := bytes.TrimSpace(raw.Score)
	switch {
	case len(score) == 0 || bytes.Equal(score, []byte("null")):
		// no score block
	case score[0] == '{':
		var b ScoreBreakdown
		if err := json.Unmarshal(score, &b); err != nil {
			return fmt.Errorf("failed to decode audit score: %w", err)
		}
		w.Score = &b
	default:
		var points float64
		if err := json.Unmarshal(score, &points); err != nil {
			return fmt.Errorf("failed to decode audit score: %w", err)
		}
		b := ScoreBreakdown{Score: points}
		if raw.MaxScore != nil {
			b.MaxScore = *raw.MaxScore
		}
		if raw.Percentage != nil {
			b.Percentage = *raw.Percentage
		} else if b.MaxScore > 0 {
			b.Percentage = points / b.MaxScore * 100
		}
		w.Score = &b
	}

	return nil
}

// SEOScore is the overall score of a business. The backend sends either a
// bare integer 0-100 or the scored audit object.
type SEOScore struct {
	Value  int
	Detail *WebsiteAudit
}

func (s *SEOScore) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("empty score")
	}

	if data[0] == '{' {
		var audit WebsiteAudit
		if err := json.Unmarshal(data, &audit); err != nil {
			return err
		}
		if audit.Score == nil {
			return fmt.Errorf("score object has no score")
		}
		s.Detail = &audit
		if audit.Score.Percentage > 0 || audit.Score.MaxScore > 0 {
			s.Value = int(math.Round(audit.Score.Percentage))
		} else {
			s.Value = int(math.Round(audit.Score.Score))
		}
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("failed to decode score: %w", err)
	}
	s.Value = int(math.Round(n))
	s.Detail = nil
	return nil
}

// RedFlag is a (label, detail) pair from the AI analysis
type RedFlag struct {
	Label  string
	Detail string
}

func (f *RedFlag) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to decode red flag: %w", err)
	}
	if len(pair) > 0 {
		f.Label = pair[0]
	}
	if len(pair) > 1 {
		f.Detail = pair[1]
	}
	return nil
}

// Followers is a (handle, count) pair. The count is numeric when the
// backend could parse it and free text otherwise.
type Followers struct {
	Handle  string
	Count   float64
	Text    string
	Numeric bool
}

func (f *Followers) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to decode followers: %w", err)
	}
	*f = Followers{}
	if len(pair) > 0 {
		if err := json.Unmarshal(pair[0], &f.Handle); err != nil {
			return fmt.Errorf("failed to decode follower handle: %w", err)
		}
	}
	if len(pair) < 2 {
		return nil
	}

	var n float64
	if err := json.Unmarshal(pair[1], &n); err == nil {
		f.Count, f.Numeric = n, true
		return nil
	}
	var s string
	if err := json.Unmarshal(pair[1], &s); err != nil {
		return fmt.Errorf("failed to decode follower count: %w", err)
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		f.Count, f.Numeric = n, true
		return nil
	}
	f.Text = s
	return nil
}

// AISummary is the generated analysis of a business
type AISummary struct {
	BusinessSummary string      `json:"business_summary"`
	RedFlags        []RedFlag   `json:"red_flags"`
	FBFollowers     []Followers `json:"fb_followers"`
	IGFollowers     []Followers `json:"ig_followers"`
}

// TrendsData holds search interest over time and interest by region
type TrendsData struct {
	SearchInterest   map[string]float64 `json:"search_interest"`
	ExpansionMarkets map[string]float64 `json:"expansion_markets"`
}

// User is the identity returned by the current-user endpoint
type User struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	IsAdmin     bool     `json:"is_admin"`
	SavedPlaces []string `json:"saved_places"`
}

// DisplayLabel is what the header shows for a signed-in user
func (u *User) DisplayLabel() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Alert types raised by the backend probe
const (
	AlertBackendDown      = "backend_down"
	AlertBackendRecovered = "backend_recovered"
)

// Alert is an operational notification about backend availability
type Alert struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Backend   string    `json:"backend"`
	Failures  int       `json:"failures"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
