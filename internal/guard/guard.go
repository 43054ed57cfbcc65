package guard

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// Decision is the outcome of evaluating a request
type Decision int

const (
	Unchecked Decision = iota // path is not protected
	Allowed
	Denied
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	default:
		return "unchecked"
	}
}

// TokenValidator decides whether a cookie value is acceptable
type TokenValidator interface {
	Validate(token string) error
}

// Recorder counts guard decisions
type Recorder interface {
	GuardDecision(decision Decision)
}

// Presence accepts any non-empty token. The signature and expiry are not
// checked; identity is resolved separately by the current-user endpoint.
type Presence struct{}

func (Presence) Validate(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	return nil
}

// JWT accepts HS256 tokens signed with Secret that are unexpired and carry a subject
type JWT struct {
	Secret []byte
}

func (v JWT) Validate(token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return v.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return errors.New("token has no subject")
	}
	return nil
}

// Guard redirects requests for protected paths that lack an acceptable session cookie
type Guard struct {
	cookieName string
	patterns   []string
	redirectTo string
	validator  TokenValidator
	recorder   Recorder
}

// New creates a guard. patterns are checked in order; a pattern ending in
// "/:path*" matches its prefix and any sub-path, other patterns use
// path.Match glob syntax.
func New(cookieName string, patterns []string, redirectTo string, validator TokenValidator) *Guard {
	if validator == nil {
		validator = Presence{}
	}
	return &Guard{
		cookieName: cookieName,
		patterns:   patterns,
		redirectTo: redirectTo,
		validator:  validator,
	}
}

// WithRecorder attaches a decision recorder and returns the guard
func (g *Guard) WithRecorder(r Recorder) *Guard {
	g.recorder = r
	return g
}

// Protects reports whether urlPath matches a protected pattern
func (g *Guard) Protects(urlPath string) bool {
	for _, pattern := range g.patterns {
		if matchPattern(pattern, urlPath) {
			return true
		}
	}
	return false
}

// Evaluate decides a single request. It is evaluated fresh on every call.
func (g *Guard) Evaluate(r *http.Request) Decision {
	if !g.Protects(r.URL.Path) {
		return Unchecked
	}

	cookie, err := r.Cookie(g.cookieName)
	if err != nil {
		return Denied
	}

	if err := g.validator.Validate(cookie.Value); err != nil {
		logrus.Debugf("Rejected %s cookie for %s: %v", g.cookieName, r.URL.Path, err)
		return Denied
	}

	return Allowed
}

// Middleware wraps next with the guard
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := g.Evaluate(r)
		if decision != Unchecked && g.recorder != nil {
			g.recorder.GuardDecision(decision)
		}

		if decision == Denied {
			logrus.Debugf("Redirecting unauthenticated request for %s to %s", r.URL.Path, g.redirectTo)
			http.Redirect(w, r, g.redirectTo, http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func matchPattern(pattern, urlPath string) bool {
	// "/search/" is the same route as "/search"
	if trimmed := strings.TrimRight(urlPath, "/"); trimmed != "" {
		urlPath = trimmed
	}

	if prefix, ok := strings.CutSuffix(pattern, "/:path*"); ok {
		return urlPath == prefix || strings.HasPrefix(urlPath, prefix+"/")
	}

	if pattern == urlPath {
		return true
	}

	matched, err := path.Match(pattern, urlPath)
	return err == nil && matched
}
