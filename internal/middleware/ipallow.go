package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/omspos/oms-api/internal/pkg/response"
)

// AllowlistChecker decides whether a client address may reach the login
// route. The network allow-list is an external gate: it runs before the
// core is reached and the core never re-checks it.
type AllowlistChecker interface {
	IsAllowed(ctx context.Context, ip string) (bool, error)
}

// IPAllow returns middleware enforcing the IP allow-list. A lookup failure
// fails closed when enforcement is on.
func IPAllow(checker AllowlistChecker, enforced bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enforced {
				next.ServeHTTP(w, r)
				return
			}

			ip := ClientIP(r)
			ok, err := checker.IsAllowed(r.Context(), ip)
			if err != nil {
				log.Error().Err(err).Str("ip", ip).Msg("allow-list lookup failed")
				response.Forbidden(w, "Access from this address is not allowed")
				return
			}
			if !ok {
				log.Warn().Str("ip", ip).Msg("rejected by IP allow-list")
				response.Forbidden(w, "Access from this address is not allowed")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
