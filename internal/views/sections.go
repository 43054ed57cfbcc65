package views

import (
	"fmt"
	"math"
	"strconv"

	"github.com/leadlift/leadlift-web/internal/fetchunit"
	"github.com/leadlift/leadlift-web/internal/models"
	"github.com/leadlift/leadlift-web/internal/present"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Unit views consumed by the business page sections
type (
	BusinessView = fetchunit.View[string, *models.Business]
	SEOView      = fetchunit.View[string, *models.SEOScore]
	SummaryView  = fetchunit.View[string, *models.AISummary]
	TrendsView   = fetchunit.View[string, *models.TrendsData]
	AuditView    = fetchunit.View[string, *models.WebsiteAudit]
)

// SEOBadge renders the overall score chip in the business header
func SEOBadge(v SEOView) g.Node {
	switch {
	case v.State == fetchunit.Loading:
		return seoChip("bg-zinc-700", "Loading...")
	case v.State == fetchunit.Error:
		return seoChip("bg-red-700", "Score Error")
	case v.State != fetchunit.Success || v.Data == nil:
		return seoChip("bg-zinc-700", "No Score")
	}
	tier := present.SEOTier(v.Data.Value)
	return seoChip(tier.Class, fmt.Sprintf("SEO Score: %d/100", v.Data.Value))
}

func seoChip(class, text string) g.Node {
	return Div(
		ID("seo-badge"),
		Class("seo-badge px-4 py-2 rounded-full text-white text-sm font-bold "+class),
		g.Text(text),
	)
}

// SummarySection renders the AI analysis tab
func SummarySection(v SummaryView, retryHref string) g.Node {
	switch v.State {
	case fetchunit.Loading:
		return notice("🧠", "Loading AI analysis...", "text-zinc-400")
	case fetchunit.Error:
		return errorPanel("Analysis Error", v.Err, retryHref)
	}

	s := v.Data
	if v.State != fetchunit.Success || s == nil ||
		(s.BusinessSummary == "" && len(s.RedFlags) == 0 && len(s.FBFollowers) == 0 && len(s.IGFollowers) == 0) {
		return Div(
			ID("summary-section"),
			Class("bg-zinc-900/50 rounded-2xl border border-white/10 p-8 text-center"),
			Div(Class("text-4xl mb-4"), g.Text("🤖")),
			H3(Class("text-xl font-bold mb-2"), g.Text("No AI Analysis Available")),
			P(Class("text-zinc-400"), g.Text("AI analysis for this business is not available yet.")),
		)
	}

	return Div(
		ID("summary-section"),
		Class("space-y-6"),
		g.If(s.BusinessSummary != "", card("AI Business Summary",
			P(Class("business-summary text-zinc-300 leading-relaxed"), g.Text(s.BusinessSummary)),
		)),
		g.If(len(s.RedFlags) > 0, card("Red Flags",
			Ul(Class("red-flags space-y-3"), g.Group(g.Map(s.RedFlags, func(f models.RedFlag) g.Node {
				return Li(
					Class("red-flag p-4 bg-red-500/10 border border-red-500/20 rounded-lg"),
					Span(Class("font-semibold text-red-300"), g.Text(f.Label)),
					g.If(f.Detail != "", P(Class("text-zinc-300 text-sm mt-1"), g.Text(f.Detail))),
				)
			}))),
		)),
		g.If(len(s.FBFollowers) > 0 || len(s.IGFollowers) > 0, card("Social Media Presence",
			Div(
				Class("grid gap-4 md:grid-cols-2"),
				g.Group(g.Map(s.FBFollowers, func(f models.Followers) g.Node { return followerRow("Facebook", f) })),
				g.Group(g.Map(s.IGFollowers, func(f models.Followers) g.Node { return followerRow("Instagram", f) })),
			),
		)),
	)
}

func followerRow(network string, f models.Followers) g.Node {
	return Div(
		Class("followers p-4 bg-zinc-800/50 rounded-lg"),
		Div(Class("text-sm text-zinc-400"), g.Text(network)),
		g.If(f.Handle != "", Div(Class("font-medium"), g.Text(f.Handle))),
		Div(Class("follower-count text-lg font-bold"), g.Text(present.FollowerLabel(f)+" followers")),
	)
}

func card(heading string, body ...g.Node) g.Node {
	return Div(
		Class("bg-zinc-900/50 rounded-2xl border border-white/10 p-6"),
		H3(Class("text-xl font-bold mb-4"), g.Text(heading)),
		g.Group(body),
	)
}

// TrendsSection renders the search interest chart and expansion markets
// for a business name. An empty name never reaches the backend.
func TrendsSection(v TrendsView, retryHref string) g.Node {
	switch v.State {
	case fetchunit.Idle:
		return notice("📈", "Enter a business name to see search trends", "text-zinc-400")
	case fetchunit.Loading:
		return notice("📈", "Loading trends data...", "text-zinc-400")
	case fetchunit.Error:
		return errorPanel("Trends Error", v.Err, retryHref)
	}

	var interest, markets map[string]float64
	if v.Data != nil {
		interest, markets = v.Data.SearchInterest, v.Data.ExpansionMarkets
	}

	return Div(
		ID("trends-section"),
		Class("space-y-6"),
		card("Search Interest Over Time", interestChart(present.BarChart(interest))),
		card("Market Expansion Opportunities", marketList(present.TopMarkets(markets))),
	)
}

func interestChart(chart present.Chart) g.Node {
	if len(chart.Bars) == 0 {
		return P(Class("text-zinc-400 text-center py-8"), g.Text("No search trends data available"))
	}

	return Div(
		Div(
			Class("chart flex items-end gap-1"),
			g.Attr("style", fmt.Sprintf("height: %.0fpx", present.ChartHeightPx)),
			g.Group(g.Map(chart.Bars, func(b present.Bar) g.Node {
				return Div(
					Class("bar flex-1 bg-gradient-to-t from-blue-600 to-purple-500 rounded-t"),
					g.Attr("style", fmt.Sprintf("height: %.1fpx", b.HeightPx)),
					g.Attr("title", fmt.Sprintf("%s: %d (%s%%)", b.Label, b.Value, present.FormatTenths(b.Percent))),
				)
			})),
		),
		Div(
			Class("flex justify-between text-xs text-zinc-500 mt-2"),
			Span(g.Text(chart.Bars[0].Label)),
			Span(g.Text(chart.Bars[len(chart.Bars)-1].Label)),
		),
		Div(
			Class("chart-range flex justify-between text-sm text-zinc-400 mt-4"),
			Span(g.Textf("Min: %d", chart.Min)),
			Span(g.Textf("Max: %d", chart.Max)),
		),
	)
}

func marketList(markets []present.Market) g.Node {
	if len(markets) == 0 {
		return P(Class("text-zinc-400 text-center py-8"), g.Text("No market expansion data available"))
	}

	return Ol(
		Class("markets space-y-3"),
		g.Group(g.Map(markets, func(m present.Market) g.Node {
			return Li(
				Class("market"),
				Div(
					Class("flex justify-between text-sm mb-1"),
					Span(g.Textf("#%d %s", m.Rank, m.Region)),
					Span(Class("text-zinc-400"), g.Text(strconv.Itoa(m.Interest))),
				),
				Div(
					Class("h-2 bg-zinc-800 rounded-full"),
					Div(
						Class("h-2 bg-gradient-to-r from-green-500 to-emerald-500 rounded-full"),
						g.Attr("style", fmt.Sprintf("width: %.1f%%", m.WidthPercent)),
					),
				),
			)
		})),
	)
}

// AuditSection renders the website audit tab
func AuditSection(v AuditView, retryHref string) g.Node {
	switch v.State {
	case fetchunit.Loading:
		return notice("🛠️", "Loading website audit...", "text-zinc-400")
	case fetchunit.Error:
		return errorPanel("Audit Error", v.Err, retryHref)
	}

	if v.State != fetchunit.Success || v.Data == nil || v.Data.Score == nil {
		return Div(
			ID("audit-section"),
			Class("bg-zinc-900/50 rounded-2xl border border-white/10 p-8 text-center text-zinc-400"),
			g.Text("No website audit data available"),
		)
	}

	a := v.Data
	tier := present.AuditTier(a.Score.Percentage)
	return Div(
		ID("audit-section"),
		Class("space-y-6"),
		card("Website Audit",
			Div(
				Class("flex items-center gap-6"),
				Div(
					Class("audit-percentage text-5xl font-extrabold "+tier.Class),
					g.Attr("style", "color: "+tier.Color),
					g.Textf("%d%%", int(math.Round(a.Score.Percentage))),
				),
				P(
					Class("audit-points text-zinc-300"),
					g.Textf("%s/%s points (%s%%)", points(a.Score.Score), points(a.Score.MaxScore), present.FormatTenths(a.Score.Percentage)),
				),
			),
		),
		Div(
			Class("grid gap-4 md:grid-cols-2"),
			checkCard("Title Tag", checkText(a.TitleTag)),
			checkCard("Meta Description", checkText(a.MetaDescription)),
			checkCard("Language", checkText(a.Language)),
			checkCard("Images", imageText(a.Images)),
		),
	)
}

func points(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func checkText(c *models.CheckStatus) string {
	if c == nil || c.Status == "" {
		return "Not analyzed"
	}
	return c.Status
}

func imageText(i *models.ImageStats) string {
	var total, missing int
	if i != nil {
		total, missing = i.TotalImages, i.MissingAlt
	}
	return fmt.Sprintf("%d images, %d missing alt text", total, missing)
}

func checkCard(label, value string) g.Node {
	return Div(
		Class("audit-check bg-zinc-900/50 rounded-xl border border-white/10 p-4"),
		Div(Class("text-sm text-zinc-400"), g.Text(label)),
		Div(Class("font-semibold mt-1"), g.Text(value)),
	)
}
