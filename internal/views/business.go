package views

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/leadlift/leadlift-web/internal/fetchunit"
	"github.com/leadlift/leadlift-web/internal/models"
	"github.com/leadlift/leadlift-web/internal/present"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Business page tabs
const (
	TabOverview = "overview"
	TabTrends   = "trends"
	TabAudit    = "audit"
	TabReviews  = "reviews"
)

type tabLink struct {
	Key   string
	Label string
}

var tabs = []tabLink{
	{TabOverview, "Overview"},
	{TabTrends, "Trends"},
	{TabAudit, "Website Audit"},
	{TabReviews, "Reviews"},
}

// ValidTab maps an unknown or empty tab to the overview
func ValidTab(tab string) string {
	for _, t := range tabs {
		if t.Key == tab {
			return tab
		}
	}
	return TabOverview
}

// BusinessPageData carries every unit view of the detail page. Only the
// active tab's section view is expected to be loaded.
type BusinessPageData struct {
	ID       string
	Tab      string
	Photo    int
	Business BusinessView
	SEO      SEOView
	Summary  SummaryView
	Trends   TrendsView
	Audit    AuditView
}

// BusinessHref builds the detail page URL for a tab and photo index
func BusinessHref(id, tab string, photo int) string {
	q := url.Values{}
	if tab != "" && tab != TabOverview {
		q.Set("tab", tab)
	}
	if photo > 0 {
		q.Set("photo", strconv.Itoa(photo))
	}
	href := "/businesses/" + url.PathEscape(id)
	if len(q) > 0 {
		href += "?" + q.Encode()
	}
	return href
}

// BusinessPage renders the detail page
func BusinessPage(chrome Chrome, d BusinessPageData) g.Node {
	return Layout(chrome, Div(
		Class("max-w-7xl mx-auto px-6 py-12"),
		businessBody(d),
	))
}

func businessBody(d BusinessPageData) g.Node {
	switch d.Business.State {
	case fetchunit.Loading:
		return notice("⏳", "Loading business details...", "text-zinc-400")
	case fetchunit.Error:
		return errorPanel("Error Loading Business", d.Business.Err, BusinessHref(d.ID, d.Tab, d.Photo))
	}

	b := d.Business.Data
	if d.Business.State != fetchunit.Success || b == nil {
		return Div(
			Class("text-center py-16"),
			H2(Class("text-2xl font-bold mb-4"), g.Text("Business not found")),
			A(Href("/search"), Class("text-blue-400 hover:underline"), g.Text("Back to search")),
		)
	}

	tab := ValidTab(d.Tab)
	return Div(
		Class("space-y-8"),
		businessHeader(b, d.SEO),
		Div(
			Class("grid gap-8 lg:grid-cols-2"),
			contactCard(b),
			gallery(d.ID, tab, b.Photos, d.Photo),
		),
		tabBar(d.ID, tab),
		Div(ID("tab-content"), tabContent(d, b, tab)),
	)
}

func businessHeader(b *models.Business, seo SEOView) g.Node {
	status := b.Status
	if status == "" {
		status = "UNKNOWN"
	}
	return Div(
		Class("flex flex-col md:flex-row md:items-center md:justify-between gap-4"),
		Div(
			H1(Class("text-4xl font-extrabold"), g.Text(b.Name)),
			g.If(b.Summary != "", P(Class("text-zinc-400 mt-2"), g.Text(b.Summary))),
			Span(Class("status-chip inline-block mt-3 text-sm font-semibold "+present.StatusTone(b.Status)), g.Text(status)),
		),
		SEOBadge(seo),
	)
}

func contactCard(b *models.Business) g.Node {
	return Div(
		Class("bg-zinc-900/50 rounded-2xl border border-white/10 p-6 space-y-4"),
		Div(
			Class("flex items-center gap-3"),
			Div(Class("flex"), g.Group(g.Map(present.DetailStars(b.Rating), func(filled bool) g.Node {
				if filled {
					return Span(Class("star-full text-yellow-400"), g.Text("★"))
				}
				return Span(Class("star-empty text-zinc-600"), g.Text("★"))
			}))),
			Span(Class("rating font-semibold"), g.Text(present.FormatRating(b.Rating))),
			Span(Class("review-count text-zinc-400"), g.Textf("(%s reviews)", present.FormatCount(b.TotalReviews))),
		),
		g.If(b.Address != "", contactRow("📍", g.Text(b.Address))),
		g.If(b.LocalPhone != "", contactRow("📞", A(Href("tel:"+b.LocalPhone), g.Text(b.LocalPhone)))),
		g.If(b.Website != "", contactRow("🌐", A(
			Href(b.Website), Target("_blank"), Rel("noopener noreferrer"),
			Class("text-blue-400 hover:underline"),
			g.Text(b.Website),
		))),
	)
}

func contactRow(icon string, value g.Node) g.Node {
	return Div(
		Class("contact-row flex items-center gap-3 text-zinc-300"),
		Span(g.Text(icon)),
		value,
	)
}

func gallery(id, tab string, photos []string, index int) g.Node {
	if len(photos) == 0 {
		return Div(
			Class("gallery bg-zinc-900/50 rounded-2xl border border-white/10 p-6 text-center text-zinc-400"),
			g.Text("No photos available"),
		)
	}

	n := len(photos)
	current := present.ClampPhoto(index, n)
	return Div(
		Class("gallery relative bg-zinc-900/50 rounded-2xl border border-white/10 overflow-hidden"),
		Img(
			Src(present.PhotoURL(photos, current)),
			Alt(fmt.Sprintf("Photo %d", current+1)),
			Class("w-full h-80 object-cover"),
		),
		g.If(n > 1, g.Group([]g.Node{
			A(
				Href(BusinessHref(id, tab, present.PrevPhoto(current, n))),
				Class("photo-prev absolute left-4 top-1/2 px-3 py-2 bg-black/50 rounded-full"),
				g.Attr("aria-label", "Previous photo"),
				g.Text("‹"),
			),
			A(
				Href(BusinessHref(id, tab, present.NextPhoto(current, n))),
				Class("photo-next absolute right-4 top-1/2 px-3 py-2 bg-black/50 rounded-full"),
				g.Attr("aria-label", "Next photo"),
				g.Text("›"),
			),
			Div(
				Class("absolute bottom-4 left-1/2 flex gap-2"),
				g.Group(photoDots(id, tab, n, current)),
			),
		})),
		Div(
			Class("photo-counter absolute top-4 right-4 px-3 py-1 bg-black/50 rounded-full text-sm"),
			g.Textf("%d / %d", current+1, n),
		),
	)
}

func photoDots(id, tab string, n, current int) []g.Node {
	dots := make([]g.Node, 0, n)
	for i := 0; i < n; i++ {
		class := "photo-dot w-2 h-2 rounded-full bg-white/40"
		if i == current {
			class = "photo-dot w-2 h-2 rounded-full bg-white"
		}
		dots = append(dots, A(
			Href(BusinessHref(id, tab, i)),
			Class(class),
			g.Attr("aria-label", fmt.Sprintf("Photo %d", i+1)),
		))
	}
	return dots
}

func tabBar(id, active string) g.Node {
	return Nav(
		Class("tabs flex gap-2 border-b border-white/10"),
		g.Group(g.Map(tabs, func(t tabLink) g.Node {
			class := "tab px-4 py-2 text-zinc-400 hover:text-white"
			if t.Key == active {
				class = "tab tab-active px-4 py-2 text-white border-b-2 border-blue-500"
			}
			return A(Href(BusinessHref(id, t.Key, 0)), Class(class), g.Text(t.Label))
		})),
	)
}

func tabContent(d BusinessPageData, b *models.Business, tab string) g.Node {
	retry := BusinessHref(d.ID, tab, d.Photo)
	switch tab {
	case TabTrends:
		return TrendsSection(d.Trends, retry)
	case TabAudit:
		return AuditSection(d.Audit, retry)
	case TabReviews:
		return ReviewsSection(b)
	default:
		return SummarySection(d.Summary, retry)
	}
}

// ReviewsSection renders the review summary and list carried by the business
func ReviewsSection(b *models.Business) g.Node {
	return Div(
		ID("reviews-section"),
		Class("space-y-6"),
		g.If(b.ReviewSummary != "", card("What People Are Saying",
			P(Class("review-summary text-zinc-300"), g.Text(b.ReviewSummary)),
		)),
		g.If(len(b.Reviews) == 0, P(Class("text-zinc-400 text-center py-8"), g.Text("No reviews available"))),
		g.Group(g.Map(b.Reviews, reviewCard)),
	)
}

func reviewCard(r models.Review) g.Node {
	author := r.Author
	if author == "" {
		author = "Anonymous"
	}
	return Div(
		Class("review bg-zinc-900/50 rounded-2xl border border-white/10 p-6"),
		Div(
			Class("flex items-center gap-3 mb-3"),
			Div(Class("w-10 h-10 rounded-full bg-blue-600 flex items-center justify-center font-bold"), g.Text(present.Initial(r.Author))),
			Div(
				Div(Class("font-semibold"), g.Text(author)),
				g.If(r.Time != "", Div(Class("text-xs text-zinc-500"), g.Text(r.Time))),
			),
			Span(Class("ml-auto text-yellow-400 text-sm"), g.Text(present.FormatRating(r.Rating))),
		),
		P(Class("text-zinc-300"), g.Text(r.Text)),
	)
}
