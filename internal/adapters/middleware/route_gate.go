package middleware

import (
	"context"
	"log"
	"net/http"
	"path"
	"strings"

	"golang.org/x/text/language"

	"github.com/edusuite/dashboard-gateway/internal/adapters/metrics"
	"github.com/edusuite/dashboard-gateway/internal/adapters/session"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
	"github.com/edusuite/dashboard-gateway/internal/core/token"
)

// ProtectedPrefix is the locale-stripped path prefix that requires a valid
// session.
const ProtectedPrefix = "/dashboard"

const loginSlug = "/login"

type contextKey string

const localeKey contextKey = "locale"

// WithLocale stores the resolved locale on the request context.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

// LocaleFromContext returns the locale resolved by the RouteGate, or ""
// when the request bypassed locale processing.
func LocaleFromContext(ctx context.Context) string {
	locale, _ := ctx.Value(localeKey).(string)
	return locale
}

// RouteGate intercepts every navigation: static assets and API paths pass
// through raw, everything else gets locale resolution, and dashboard paths
// additionally require a complete, unexpired session. Failed checks redirect
// to the localized login page and never fall through.
type RouteGate struct {
	clock         *token.Clock
	metrics       *metrics.Metrics
	defaultLocale string
	locales       []string
	matched       []string // locales behind matcher indices
	matcher       language.Matcher
	storeFor      func(w http.ResponseWriter, r *http.Request) ports.SessionStore
}

func NewRouteGate(clock *token.Clock, locales []string, defaultLocale string, secureCookies bool, m *metrics.Metrics) *RouteGate {
	tags := make([]language.Tag, 0, len(locales))
	matched := make([]string, 0, len(locales))
	for _, l := range locales {
		tag, err := language.Parse(l)
		if err != nil {
			log.Printf("route gate: skipping unparsable locale %q: %v", l, err)
			continue
		}
		tags = append(tags, tag)
		matched = append(matched, strings.ToLower(l))
	}
	return &RouteGate{
		clock:         clock,
		metrics:       m,
		defaultLocale: strings.ToLower(defaultLocale),
		locales:       locales,
		matched:       matched,
		matcher:       language.NewMatcher(tags),
		storeFor: func(w http.ResponseWriter, r *http.Request) ports.SessionStore {
			return session.NewCookieStore(w, r, secureCookies)
		},
	}
}

func (g *RouteGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.bypass(r.URL.Path) {
			g.metrics.GateDecision("bypass")
			next.ServeHTTP(w, r)
			return
		}

		locale, rest, known := g.splitLocale(r)
		if !known {
			g.metrics.GateDecision("not_found")
			http.NotFound(w, r)
			return
		}
		r.URL.Path = "/" + locale + rest

		if strings.HasPrefix(rest, ProtectedPrefix) {
			store := g.storeFor(w, r)
			creds, err := store.Load(r.Context())
			if err != nil || !creds.Complete() || g.clock.Expired(creds.Access) {
				g.metrics.GateDecision("redirect_login")
				http.Redirect(w, r, "/"+locale+loginSlug, http.StatusSeeOther)
				return
			}
			// Downstream handlers read the token from here instead of
			// re-reading cookies.
			r.Header.Set("Authorization", "Bearer "+creds.Access)
		}

		g.metrics.GateDecision("pass")
		next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
	})
}

// bypass reports whether the path skips locale and auth processing
// entirely: API and operational endpoints, and anything with a file
// extension (static assets).
func (g *RouteGate) bypass(p string) bool {
	if p == "/api" || strings.HasPrefix(p, "/api/") {
		return true
	}
	if p == "/metrics" || p == "/health" || strings.HasPrefix(p, "/health/") {
		return true
	}
	return path.Ext(p) != ""
}

// splitLocale extracts the leading locale segment. A supported locale is
// used as-is; a segment that parses as a language tag but is not supported
// is a dead link (known=false); anything else means the path has no locale
// prefix and the best match for the Accept-Language header is used.
func (g *RouteGate) splitLocale(r *http.Request) (locale, rest string, known bool) {
	p := r.URL.Path
	seg, rest := firstSegment(p)
	for _, l := range g.locales {
		if strings.EqualFold(seg, l) {
			return strings.ToLower(seg), rest, true
		}
	}
	if looksLikeLocale(seg) {
		return "", "", false
	}
	return g.negotiate(r.Header.Get("Accept-Language")), p, true
}

// negotiate picks the closest supported locale for an Accept-Language
// header, falling back to the configured default.
func (g *RouteGate) negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return g.defaultLocale
	}
	wanted, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(wanted) == 0 {
		return g.defaultLocale
	}
	if _, idx, conf := g.matcher.Match(wanted...); conf > language.No && idx < len(g.matched) {
		return g.matched[idx]
	}
	return g.defaultLocale
}

func firstSegment(p string) (seg, rest string) {
	trimmed := strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i], "/" + trimmed[i+1:]
	}
	return trimmed, ""
}

// looksLikeLocale reports whether a path segment is plausibly a locale tag
// ("de", "pt-BR") as opposed to an ordinary slug ("pricing", "login").
func looksLikeLocale(seg string) bool {
	if len(seg) < 2 || len(seg) > 5 {
		return false
	}
	_, err := language.Parse(seg)
	return err == nil
}
