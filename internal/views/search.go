package views

import (
	"fmt"
	"net/url"

	"github.com/leadlift/leadlift-web/internal/fetchunit"
	"github.com/leadlift/leadlift-web/internal/models"
	"github.com/leadlift/leadlift-web/internal/present"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// SearchView is the state of the search unit
type SearchView = fetchunit.View[string, *models.SearchResponse]

// SearchPage renders the search form and, depending on the unit state,
// nothing, an error or the result list. validation is shown instead of
// issuing a request when a blank query was submitted.
func SearchPage(chrome Chrome, query, validation string, view SearchView) g.Node {
	return Layout(chrome,
		Div(
			Class("max-w-4xl mx-auto p-6 pt-16"),
			H1(Class("text-3xl font-bold mb-8 text-center"), g.Text("Search Businesses")),
			Form(
				Method("get"), Action("/search"), Class("mb-8"),
				Div(
					Class("flex gap-3"),
					Input(
						Type("text"), Name("query"), Value(query),
						Placeholder("Restaurants in New Jersey..."),
						Class("flex-1 px-4 py-2 border border-gray-600 rounded-lg bg-gray-800"),
					),
					Button(
						Type("submit"),
						Class("px-6 py-2 bg-blue-600 hover:bg-blue-700 text-white font-medium rounded-lg"),
						g.Text("Search"),
					),
				),
			),
			g.If(validation != "", searchError(validation)),
			searchBody(view),
		),
	)
}

func searchError(message string) g.Node {
	return Div(
		Class("mb-6 p-4 bg-red-900/20 border border-red-800 rounded-lg"),
		P(Class("error-message text-red-200 text-sm"), g.Text("⚠️ "+message)),
	)
}

func searchBody(view SearchView) g.Node {
	switch view.State {
	case fetchunit.Loading:
		return notice("⏳", "Searching...", "text-zinc-500")
	case fetchunit.Error:
		return searchError(view.Err)
	case fetchunit.Success:
		if view.Data == nil || len(view.Data.Businesses) == 0 {
			return notice("🔍", fmt.Sprintf("No businesses found for %q", view.Key), "text-zinc-500")
		}
		results := view.Data.Businesses
		return Div(
			H2(Class("text-xl font-semibold mb-4"), g.Textf("Search Results (%d found)", len(results))),
			Div(
				Class("space-y-4"),
				g.Group(g.Map(results, ResultCard)),
			),
		)
	default:
		return g.Group(nil)
	}
}

// ResultCard renders one search result linking to its detail page
func ResultCard(b models.SearchResult) g.Node {
	name := string(b.DisplayName)
	if name == "" {
		name = "Business Name"
	}
	address := b.FormattedAddress
	if address == "" {
		address = "Address not available"
	}

	return A(
		Href("/businesses/"+url.PathEscape(b.ID)),
		Class("result-card block group"),
		Div(
			Class("relative bg-zinc-900/50 border border-white/10 rounded-2xl p-6 hover:border-white/20"),
			H3(Class("text-xl font-bold mb-1"), g.Text(name)),
			Div(
				Class("flex items-start space-x-3 my-4"),
				Span(Class("text-zinc-400 text-sm"), g.Text("📍")),
				P(Class("text-zinc-300 text-sm"), g.Text(address)),
			),
			resultRating(b),
		),
	)
}

func resultRating(b models.SearchResult) g.Node {
	if b.Rating == 0 {
		return Div(
			Class("pt-4 border-t border-white/10 flex items-center justify-between"),
			Span(Class("text-zinc-500 text-sm"), g.Text("No ratings yet")),
			Span(Class("text-zinc-400 text-xs"), g.Text("New Business")),
		)
	}

	badge := present.QualityBadge(b.Rating)
	return Div(
		Class("pt-4 border-t border-white/10 flex items-center justify-between"),
		Div(
			Class("flex items-center space-x-3"),
			starRow(present.Stars(b.Rating)),
			Span(Class("rating font-semibold text-sm"), g.Text(present.FormatRating(b.Rating))),
			Span(Class("review-count text-zinc-400 text-sm"), g.Text(present.FormatCount(b.UserRatingCount)+" reviews")),
		),
		g.If(badge != "", Span(Class("quality-badge text-xs font-medium rounded-full px-2 py-1 border"), g.Text(badge))),
	)
}

func starRow(row present.StarRow) g.Node {
	var stars []g.Node
	for i := 0; i < row.Full; i++ {
		stars = append(stars, Span(Class("star-full text-yellow-400 text-sm"), g.Text("⭐")))
	}
	if row.Half {
		stars = append(stars, Span(Class("star-half text-yellow-400 text-sm"), g.Text("⭐")))
	}
	for i := 0; i < row.Empty; i++ {
		stars = append(stars, Span(Class("star-empty text-zinc-600 text-sm"), g.Text("⭐")))
	}
	return Div(
		Class("flex items-center space-x-1"),
		g.Attr("aria-label", fmt.Sprintf("%d full, %t half, %d empty", row.Full, row.Half, row.Empty)),
		g.Group(stars),
	)
}
