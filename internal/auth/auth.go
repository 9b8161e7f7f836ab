// Package auth implements the role gate in front of the wall's HTTP surface.
// Roles come from static bearer tokens configured at startup; the wall core
// itself performs no authorization and trusts its caller.
package auth

import (
	"net/http"
	"strings"
)

// Role is an access level for the wall's surfaces.
type Role string

const (
	// RoleGuest is the default for unauthenticated requests: submission only.
	RoleGuest Role = "guest"

	// RoleScreen may read the display feed and the change stream.
	RoleScreen Role = "screen"

	// RoleModerator may list all messages and run transitions.
	RoleModerator Role = "moderator"

	// RoleAdmin may additionally manage settings. Admin implies every
	// lower role, so an admin can also drive a screen.
	RoleAdmin Role = "admin"
)

// rank orders roles for the implication check.
var rank = map[Role]int{
	RoleGuest:     0,
	RoleScreen:    1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// Allows reports whether a caller holding `have` may use a surface gated at
// `want`.
func (have Role) Allows(want Role) bool {
	return rank[have] >= rank[want]
}

// Service resolves request credentials to a role.
type Service struct {
	tokens map[string]Role
}

// Config carries the static tokens. Empty tokens disable their role.
type Config struct {
	AdminToken     string
	ModeratorToken string
	ScreenToken    string
}

// NewService builds the token table. A token configured for several roles
// keeps the highest one.
func NewService(cfg Config) *Service {
	s := &Service{tokens: make(map[string]Role, 3)}
	for token, role := range map[string]Role{
		cfg.ScreenToken:    RoleScreen,
		cfg.ModeratorToken: RoleModerator,
		cfg.AdminToken:     RoleAdmin,
	} {
		if token == "" {
			continue
		}
		if existing, ok := s.tokens[token]; ok && existing.Allows(role) {
			continue
		}
		s.tokens[token] = role
	}
	return s
}

// RoleFromRequest resolves the caller's role from the Authorization bearer
// header, falling back to a `token` query parameter for websocket clients
// that cannot set headers. Unknown or absent credentials map to guest.
func (s *Service) RoleFromRequest(r *http.Request) Role {
	token := ""
	if h := r.Header.Get("Authorization"); h != "" {
		token = strings.TrimPrefix(h, "Bearer ")
	}
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if role, ok := s.tokens[token]; ok {
		return role
	}
	return RoleGuest
}

// Require gates a handler at the given role, returning 401 for guests and
// 403 for authenticated callers whose role is insufficient.
func (s *Service) Require(want Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		have := s.RoleFromRequest(r)
		if !have.Allows(want) {
			w.Header().Set("Content-Type", "application/json")
			if have == RoleGuest {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
			} else {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"insufficient role"}`))
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}
