package views

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type feature struct {
	Icon        string
	Title       string
	Description string
}

var features = []feature{
	{"🔎", "Find leads fast", "Search any market in plain language and get a ranked list of local businesses."},
	{"🧠", "AI business summaries", "Every business gets a generated summary with red flags worth raising on a first call."},
	{"📈", "Search trends", "See how interest in a business moves over time and where demand is growing."},
	{"🛠️", "Website audits", "Spot missing meta descriptions, titles and alt text before you pitch."},
}

// HomePage is the landing page
func HomePage(chrome Chrome) g.Node {
	return Layout(chrome,
		Section(
			Class("max-w-7xl mx-auto px-6 pt-28 pb-16 text-center"),
			H1(
				Class("text-5xl md:text-6xl font-extrabold leading-tight"),
				g.Text("Revolutionize Lead Searching"),
			),
			P(
				Class("mt-6 text-zinc-300 text-xl max-w-2xl mx-auto"),
				g.Text("Leadlift turns a simple search into qualified leads with SEO scores, AI summaries and market signals."),
			),
			A(
				Href("/search"),
				Class("inline-block mt-10 px-8 py-4 text-lg font-bold bg-zinc-900 rounded-2xl border border-white/20"),
				g.Text("Get Started"),
			),
		),
		Section(
			Class("max-w-7xl mx-auto px-6 grid gap-6 md:grid-cols-2 lg:grid-cols-4"),
			g.Group(g.Map(features, func(f feature) g.Node {
				return Div(
					Class("bg-zinc-900/50 rounded-2xl border border-white/10 p-6"),
					Div(Class("text-3xl mb-4"), g.Text(f.Icon)),
					H3(Class("font-semibold text-lg mb-2"), g.Text(f.Title)),
					P(Class("text-sm text-zinc-400"), g.Text(f.Description)),
				)
			})),
		),
	)
}

// AboutPage is the product story page
func AboutPage(chrome Chrome) g.Node {
	return Layout(chrome,
		Section(
			Class("max-w-3xl mx-auto px-6 pt-28 space-y-6"),
			H1(Class("text-4xl font-extrabold"), g.Text("About Leadlift")),
			P(Class("text-zinc-300 text-lg"), g.Text("Leadlift helps agencies and freelancers find local businesses that need help online. We combine place data, website audits, search trends and AI analysis into a single view of every lead.")),
			P(Class("text-zinc-300 text-lg"), g.Text("Search a market, open a business and see at a glance where it is winning and where it is leaving customers on the table.")),
		),
	)
}

// AuthPage is the sign-in hand-off page. errorMessage is shown above the
// provider buttons when the OAuth flow came back with an error.
func AuthPage(chrome Chrome, errorMessage string) g.Node {
	return Layout(chrome,
		Section(
			Class("min-h-screen flex items-center justify-center px-6 py-12"),
			Div(
				Class("w-full max-w-md bg-zinc-900/50 rounded-2xl border border-white/10 p-8 space-y-6"),
				H1(Class("text-3xl font-extrabold text-center"), g.Text("Welcome to Leadlift")),
				P(Class("text-zinc-400 text-center"), g.Text("Sign in to start finding leads.")),
				g.If(errorMessage != "", Div(
					Class("auth-error p-4 bg-red-900/20 border border-red-800 rounded-lg text-red-200 text-sm"),
					g.Text(errorMessage),
				)),
				A(
					Href("/auth/login"),
					Class("block w-full text-center px-6 py-3 bg-white text-zinc-900 font-semibold rounded-lg"),
					g.Text("Continue with Google"),
				),
			),
		),
	)
}

// NotFoundPage is rendered for unknown routes
func NotFoundPage(chrome Chrome) g.Node {
	return Layout(chrome,
		Section(
			Class("max-w-3xl mx-auto px-6 pt-28 text-center"),
			H1(Class("text-4xl font-extrabold mb-4"), g.Text("Page not found")),
			A(Href("/"), Class("text-blue-400 hover:underline"), g.Text("Back to home")),
		),
	)
}
