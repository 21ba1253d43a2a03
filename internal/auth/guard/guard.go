// Package guard decides whether a session may enter a route. The
// decision logic is a pure function over a session snapshot so it can
// be tested without HTTP; the middleware maps decisions onto responses.
package guard

import (
	"log/slog"
	"net/http"
	"net/url"

	"wisata/internal/auth"
	"wisata/internal/auth/models"
	"wisata/internal/platform/httputil"
	"wisata/internal/platform/metrics"
)

// Well-known locations the guard redirects to.
const (
	LoginPath       = "/login"
	VerifyEmailPath = "/verify-email"
	AdminHome       = "/admin"
	PublicHome      = "/"
)

// Requirement is what a route demands of the session. An empty Roles
// slice admits any authenticated role.
type Requirement struct {
	Roles               []models.Role
	RequireVerification bool
}

// Action is what the guard decided to do.
type Action int

const (
	// Pending means the persisted session is still being restored and
	// no access decision can be made yet.
	Pending Action = iota
	// Render admits the request.
	Render
	// Redirect sends the client elsewhere.
	Redirect
)

func (a Action) String() string {
	switch a {
	case Pending:
		return "pending"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the guard's verdict. Location is set for Redirect;
// ReturnTo carries the requested path so the sign-in page
// can send the client back after authentication.
type Decision struct {
	Action   Action
	Location string
	ReturnTo string
}

// Decide evaluates the requirement against the session state. The rules
// apply in strict order and the first match wins:
//
//  1. restoring session: pending
//  2. not authenticated: redirect to sign-in, remembering the path
//  3. role not admitted: redirect to the account's own home
//  4. verification demanded and outstanding: redirect to the
//     verification page, except for admins, and except when the
//     verification page itself is the destination
//  5. otherwise: render
func Decide(s auth.Snapshot, req Requirement, path string) Decision {
	if s.Loading {
		return Decision{Action: Pending}
	}

	if !s.Authenticated {
		return Decision{Action: Redirect, Location: LoginPath, ReturnTo: path}
	}

	if len(req.Roles) > 0 && !roleAdmitted(req.Roles, s.User.Role) {
		home := PublicHome
		if s.User.IsAdmin() {
			home = AdminHome
		}
		return Decision{Action: Redirect, Location: home}
	}

	if req.RequireVerification && s.NeedsVerification && !s.User.IsAdmin() {
		if path == VerifyEmailPath {
			return Decision{Action: Render}
		}
		return Decision{Action: Redirect, Location: VerifyEmailPath}
	}

	return Decision{Action: Render}
}

func outcomeLabel(d Decision) string {
	if d.Action != Redirect {
		return d.Action.String()
	}
	switch d.Location {
	case LoginPath:
		return "redirect_login"
	case VerifyEmailPath:
		return "redirect_verify"
	default:
		return "redirect_role"
	}
}

func roleAdmitted(allowed []models.Role, have models.Role) bool {
	for _, r := range allowed {
		if r == have {
			return true
		}
	}
	return false
}

// Guard wraps routes with access decisions backed by the session
// manager.
type Guard struct {
	manager *auth.Manager
	log     *slog.Logger
	metrics *metrics.Metrics
}

// New creates a guard over the manager. log and m may be nil.
func New(manager *auth.Manager, log *slog.Logger, m *metrics.Metrics) *Guard {
	if log == nil {
		log = slog.Default()
	}
	return &Guard{manager: manager, log: log, metrics: m}
}

// Protect returns middleware enforcing the requirement. Redirects use
// 303 so the client re-requests with GET; the sign-in redirect carries
// the requested path in a from query parameter. Pending sessions get a
// 503 with Retry-After rather than a premature verdict.
func (g *Guard) Protect(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Decide(g.manager.Snapshot(), req, r.URL.Path)

			if g.metrics != nil {
				g.metrics.GuardDecisions.WithLabelValues(outcomeLabel(d)).Inc()
			}

			switch d.Action {
			case Pending:
				w.Header().Set("Retry-After", "1")
				httputil.WriteError(w, http.StatusServiceUnavailable, "Session is still loading")
			case Redirect:
				location := d.Location
				if d.ReturnTo != "" {
					location += "?from=" + url.QueryEscape(d.ReturnTo)
				}
				g.log.Debug("route guarded",
					"path", r.URL.Path,
					"redirect", location,
				)
				http.Redirect(w, r, location, http.StatusSeeOther)
			case Render:
				next.ServeHTTP(w, r)
			}
		})
	}
}
