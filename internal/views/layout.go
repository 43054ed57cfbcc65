// Package views renders the Leadlift pages as gomponents node trees.
package views

import (
	"github.com/leadlift/leadlift-web/internal/models"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"
)

// Chrome is what every page needs besides its own content
type Chrome struct {
	Title string
	Path  string
	User  *models.User // nil when signed out or identity lookup failed
}

// Layout wraps page content in the document shell with header and footer
func Layout(chrome Chrome, content ...g.Node) g.Node {
	title := "Leadlift"
	if chrome.Title != "" {
		title = chrome.Title + " | Leadlift"
	}

	return c.HTML5(c.HTML5Props{
		Title:       title,
		Description: "AI-powered lead discovery and business intelligence.",
		Language:    "en",
		Head: []g.Node{
			Script(Src("https://cdn.tailwindcss.com")),
		},
		Body: []g.Node{
			Class("min-h-screen bg-zinc-950 text-white"),
			SiteHeader(chrome),
			Main(Class("relative"), g.Group(content)),
			SiteFooter(),
		},
	})
}

// SiteHeader is the sticky navigation bar with the identity slot
func SiteHeader(chrome Chrome) g.Node {
	return Header(
		Class("w-full border-b border-white/10 bg-zinc-900/80 backdrop-blur-md sticky top-0 z-50"),
		Div(
			Class("max-w-7xl mx-auto px-6 py-4 flex items-center justify-between"),
			A(Href("/"), Class("text-2xl font-bold"), g.Text("Leadlift")),
			Nav(
				Class("hidden md:flex items-center space-x-8"),
				navLink("/", "Home", chrome.Path),
				navLink("/search", "Search", chrome.Path),
				navLink("/about", "About", chrome.Path),
			),
			identity(chrome.User),
		),
	)
}

func navLink(href, label, current string) g.Node {
	class := "font-medium transition-colors duration-200 text-zinc-300 hover:text-white"
	if href == current {
		class = "font-medium transition-colors duration-200 text-white"
	}
	return A(Href(href), Class(class), g.Text(label))
}

func identity(user *models.User) g.Node {
	if user == nil {
		return Div(
			Class("flex items-center space-x-4"),
			A(Href("/auth"), Class("text-sm text-zinc-300 hover:text-white"), g.Text("Sign in")),
			A(
				Href("/search"),
				Class("px-4 py-2 text-sm font-semibold text-white bg-zinc-900 rounded-md border border-white/10"),
				g.Text("Get Started"),
			),
		)
	}

	return Div(
		Class("flex items-center space-x-4"),
		Span(Class("text-sm text-zinc-300"), g.Text(user.DisplayLabel())),
		Form(
			Method("post"), Action("/auth/logout"),
			Button(Type("submit"), Class("text-sm text-zinc-400 hover:text-white"), g.Text("Sign out")),
		),
	)
}

// SiteFooter is the page footer
func SiteFooter() g.Node {
	return Footer(
		Class("border-t border-white/10 mt-16 py-8 text-center text-sm text-zinc-500"),
		g.Text("© Leadlift. Revolutionize lead searching."),
	)
}

// notice renders a centred neutral or error block with an icon
func notice(icon, message, tone string) g.Node {
	return Div(
		Class("text-center py-8 "+tone),
		Div(Class("text-3xl mb-2"), g.Text(icon)),
		P(g.Text(message)),
	)
}

// errorPanel renders exactly one error message with a retry link
func errorPanel(heading, message, retryHref string) g.Node {
	return Div(
		Class("bg-zinc-900/50 rounded-2xl border border-red-500/20 p-8 text-center text-red-400"),
		Div(Class("text-4xl mb-4"), g.Text("⚠️")),
		g.If(heading != "", H3(Class("text-xl font-bold mb-2 text-red-300"), g.Text(heading))),
		P(Class("error-message text-zinc-400"), g.Text(message)),
		g.If(retryHref != "", A(
			Href(retryHref),
			Class("inline-block mt-4 px-6 py-2 bg-red-500/20 border border-red-500/30 rounded-lg text-red-300"),
			g.Text("Try Again"),
		)),
	)
}
