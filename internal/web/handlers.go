package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/leadlift/leadlift-web/internal/present"
	"github.com/leadlift/leadlift-web/internal/views"
	"github.com/sirupsen/logrus"
)

const emptyQueryMessage = "Please enter a search query"

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	message := present.AuthErrorMessage(r.URL.Query().Get("error"))
	render(w, http.StatusOK, views.AuthPage(s.settle(r, "Sign in"), message))
}

// handleLogin hands the browser to the backend's OAuth start
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.backendLoginURL(), http.StatusFound)
}

// handleLogout ends the backend session and always drops the local cookie
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.api.Logout(r.Context(), s.token(r)); err != nil {
		logrus.Warnf("Backend logout failed: %v", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	values, submitted := r.URL.Query()["query"]
	var query string
	if submitted && len(values) > 0 {
		query = values[0]
	}

	unit := s.searchUnit(s.token(r))
	var validation string
	var loads []func(context.Context)
	switch {
	case !submitted:
		// first visit, nothing to search yet
	case strings.TrimSpace(query) == "":
		validation = emptyQueryMessage
	default:
		loads = append(loads, func(ctx context.Context) {
			unit.Load(ctx, strings.TrimSpace(query))
		})
	}

	chrome := s.settle(r, "Search", loads...)
	render(w, http.StatusOK, views.SearchPage(chrome, query, validation, unit.Snapshot()))
}

func (s *Server) handleBusiness(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	q := r.URL.Query()
	tab := views.ValidTab(q.Get("tab"))
	photo, _ := strconv.Atoi(q.Get("photo"))

	token := s.token(r)
	business := s.businessUnit(token)
	seo := s.seoUnit(token)
	summary := s.summaryUnit(token)
	trends := s.trendsUnit(token)
	audit := s.auditUnit(token)

	loads := []func(context.Context){
		func(ctx context.Context) { business.Load(ctx, id) },
		func(ctx context.Context) { seo.Load(ctx, id) },
	}
	switch tab {
	case views.TabOverview:
		loads = append(loads, func(ctx context.Context) { summary.Load(ctx, id) })
	case views.TabAudit:
		loads = append(loads, func(ctx context.Context) { audit.Load(ctx, id) })
	}

	chrome := s.settle(r, "Business", loads...)

	data := views.BusinessPageData{
		ID:       id,
		Tab:      tab,
		Photo:    photo,
		Business: business.Snapshot(),
		SEO:      seo.Snapshot(),
		Summary:  summary.Snapshot(),
		Audit:    audit.Snapshot(),
	}
	if b := data.Business.Data; data.Business.HasData() && b != nil {
		chrome.Title = b.Name
		// trends are keyed by the business name, known only now
		if tab == views.TabTrends {
			trends.Load(r.Context(), b.Name)
		}
	}
	data.Trends = trends.Snapshot()

	render(w, http.StatusOK, views.BusinessPage(chrome, data))
}

// handleSection renders a single section unit without the page around it.
// These back the per-section retry links.
func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	token := s.token(r)
	retry := r.URL.RequestURI()
	ctx := r.Context()

	switch vars["section"] {
	case "seo":
		render(w, http.StatusOK, views.SEOBadge(s.seoUnit(token).Load(ctx, id)))
	case "summary":
		render(w, http.StatusOK, views.SummarySection(s.summaryUnit(token).Load(ctx, id), retry))
	case "audit":
		render(w, http.StatusOK, views.AuditSection(s.auditUnit(token).Load(ctx, id), retry))
	case "trends":
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		render(w, http.StatusOK, views.TrendsSection(s.trendsUnit(token).Load(ctx, name), retry))
	default:
		s.handleNotFound(w, r)
	}
}
