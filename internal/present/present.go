// Package present holds the pure formatting helpers used by the views.
// Nothing here performs I/O.
package present

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/leadlift/leadlift-web/internal/models"
)

// FallbackPhotoURL is shown when a gallery entry is empty
const FallbackPhotoURL = "https://images.unsplash.com/photo-1514933651103-005eec06c04b?w=800&h=600&fit=crop"

// StarRow describes a five-slot rating with an optional half star
type StarRow struct {
	Full  int
	Half  bool
	Empty int
}

// Stars splits a 0-5 rating into full, half and empty slots.
// A fractional part of .5 or more earns the half star.
func Stars(rating float64) StarRow {
	rating = clamp(rating, 0, 5)
	full := int(math.Floor(rating))
	half := rating-float64(full) >= 0.5
	empty := 5 - full
	if half {
		empty--
	}
	return StarRow{Full: full, Half: half, Empty: empty}
}

// DetailStars returns five slots, filled up to the floor of rating
func DetailStars(rating float64) []bool {
	filled := int(math.Floor(clamp(rating, 0, 5)))
	slots := make([]bool, 5)
	for i := range slots {
		slots[i] = i < filled
	}
	return slots
}

// FormatRating renders a rating with one decimal
func FormatRating(rating float64) string {
	return FormatTenths(rating)
}

// FormatTenths renders v with one decimal, rounding ties up: 4.25 -> "4.3"
func FormatTenths(v float64) string {
	return strconv.FormatFloat(math.Floor(v*10+0.5)/10, 'f', 1, 64)
}

// FormatCount renders an integer with thousands separators
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatFollowers abbreviates follower counts: 15000 -> "15k", 1250000 -> "1.3M".
// A trailing ".0" is dropped.
func FormatFollowers(n float64) string {
	switch {
	case n >= 1_000_000:
		return oneDecimal(n/1_000_000) + "M"
	case n >= 1_000:
		return oneDecimal(n/1_000) + "k"
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// FollowerLabel formats a follower pair, keeping textual counts as sent
func FollowerLabel(f models.Followers) string {
	if !f.Numeric {
		return f.Text
	}
	return FormatFollowers(f.Count)
}

func oneDecimal(v float64) string {
	return strings.TrimSuffix(FormatTenths(v), ".0")
}

// Tier is a colour band for a score
type Tier struct {
	Name  string
	Class string // css classes for the badge or text
	Color string // hex colour for the audit ring
}

// SEOTier bands the 0-100 overall score
func SEOTier(score int) Tier {
	switch {
	case score >= 80:
		return Tier{Name: "excellent", Class: "bg-gradient-to-r from-green-500 to-emerald-500"}
	case score >= 60:
		return Tier{Name: "good", Class: "bg-gradient-to-r from-yellow-500 to-orange-500"}
	case score >= 40:
		return Tier{Name: "fair", Class: "bg-gradient-to-r from-orange-500 to-red-500"}
	default:
		return Tier{Name: "poor", Class: "bg-gradient-to-r from-red-600 to-red-700"}
	}
}

// AuditTier bands the website audit percentage
func AuditTier(percentage float64) Tier {
	switch {
	case percentage >= 80:
		return Tier{Name: "good", Class: "text-green-400", Color: "#10b981"}
	case percentage >= 60:
		return Tier{Name: "average", Class: "text-yellow-400", Color: "#f59e0b"}
	default:
		return Tier{Name: "poor", Class: "text-red-400", Color: "#ef4444"}
	}
}

// StatusTone colours the business status chip
func StatusTone(status string) string {
	switch status {
	case models.StatusOperational:
		return "text-green-400"
	case models.StatusClosed:
		return "text-red-400"
	default:
		return "text-yellow-400"
	}
}

// QualityBadge labels well-rated search results
func QualityBadge(rating float64) string {
	switch {
	case rating >= 4.5:
		return "Top Rated"
	case rating >= 4.0:
		return "Highly Rated"
	default:
		return ""
	}
}

// NextPhoto advances the carousel, wrapping at the end
func NextPhoto(index, count int) int {
	if count <= 0 {
		return 0
	}
	return (ClampPhoto(index, count) + 1) % count
}

// PrevPhoto steps the carousel back, wrapping at the start
func PrevPhoto(index, count int) int {
	if count <= 0 {
		return 0
	}
	return (ClampPhoto(index, count) - 1 + count) % count
}

// ClampPhoto maps an out-of-range index to the first photo
func ClampPhoto(index, count int) int {
	if index < 0 || index >= count {
		return 0
	}
	return index
}

// PhotoURL returns the photo at index or the fallback image
func PhotoURL(photos []string, index int) string {
	if index >= 0 && index < len(photos) && photos[index] != "" {
		return photos[index]
	}
	return FallbackPhotoURL
}

// Initial is the avatar letter of a review author
func Initial(author string) string {
	if author == "" {
		return "A"
	}
	r, _ := utf8.DecodeRuneInString(author)
	return string(r)
}

// AuthErrorMessage maps the ?error= code of the sign-in page to copy
func AuthErrorMessage(code string) string {
	switch code {
	case "":
		return ""
	case "cancelled":
		return "Login was cancelled. Please try again."
	case "oauth_failed":
		return "Login failed. Please try again."
	case "server_error":
		return "Something went wrong. Please try again later."
	default:
		return "An error occurred during login. Please try again."
	}
}

// ChartHeightPx is the drawable height of the interest chart
const ChartHeightPx = 160.0

// minBarPx keeps zero-valued bars visible
const minBarPx = 4.0

// Bar is one column of the interest chart
type Bar struct {
	Date     time.Time
	Label    string // "Jan 2024"
	Value    int
	Percent  float64 // of the max value
	HeightPx float64
}

// Chart is the laid-out interest series
type Chart struct {
	Bars []Bar
	Min  int
	Max  int
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BarChart lays out a date-keyed series sorted by date. Values are rounded;
// heights are proportional to the maximum with a 4px floor. Keys that are
// not dates sort last and keep their raw text as label.
func BarChart(series map[string]float64) Chart {
	if len(series) == 0 {
		return Chart{}
	}

	type point struct {
		date  time.Time
		ok    bool
		key   string
		value int
	}
	points := make([]point, 0, len(series))
	for key, v := range series {
		d, ok := parseDate(key)
		points = append(points, point{date: d, ok: ok, key: key, value: int(math.Round(v))})
	}
	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.date.Equal(b.date) {
			return a.date.Before(b.date)
		}
		return a.key < b.key
	})

	chart := Chart{Min: points[0].value, Max: points[0].value}
	for _, p := range points {
		if p.value > chart.Max {
			chart.Max = p.value
		}
		if p.value < chart.Min {
			chart.Min = p.value
		}
	}

	for _, p := range points {
		var pct float64
		if chart.Max > 0 {
			pct = float64(p.value) / float64(chart.Max) * 100
		}
		label := p.key
		if p.ok {
			label = p.date.Format("Jan 2006")
		}
		chart.Bars = append(chart.Bars, Bar{
			Date:     p.date,
			Label:    label,
			Value:    p.value,
			Percent:  pct,
			HeightPx: math.Max(pct/100*ChartHeightPx, minBarPx),
		})
	}

	return chart
}

// Market is one ranked region of expansion interest
type Market struct {
	Rank         int
	Region       string
	Interest     int
	WidthPercent float64
}

// MaxMarkets caps the ranked market list
const MaxMarkets = 10

// TopMarkets ranks regions by interest, highest first, keeping the top ten.
// Bar widths are relative to the leading region.
func TopMarkets(markets map[string]float64) []Market {
	if len(markets) == 0 {
		return nil
	}

	type entry struct {
		region string
		value  float64
	}
	entries := make([]entry, 0, len(markets))
	for region, v := range markets {
		entries = append(entries, entry{region, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].region < entries[j].region
	})
	if len(entries) > MaxMarkets {
		entries = entries[:MaxMarkets]
	}

	top := entries[0].value
	out := make([]Market, 0, len(entries))
	for i, e := range entries {
		var width float64
		if top > 0 {
			width = e.value / top * 100
		}
		out = append(out, Market{
			Rank:         i + 1,
			Region:       e.region,
			Interest:     int(math.Round(e.value)),
			WidthPercent: width,
		})
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
