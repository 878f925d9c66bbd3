package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/rkartside/quoter-backend/api/responses"
	"github.com/rkartside/quoter-backend/pkg/config"
	pkgerrors "github.com/rkartside/quoter-backend/pkg/errors"
	"github.com/rkartside/quoter-backend/pkg/logger"
)

// Paths that stay reachable without gateway credentials.
var gatewayExemptPrefixes = []string{
	"/healthz",
	"/metrics",
}

// BasicAuthGateway gates the whole API behind a single shared credential.
// It sits in front of the JWT layer so staging deployments stay private.
func BasicAuthGateway(cfg config.GatewayConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			for _, prefix := range gatewayExemptPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			user, pass, ok := r.BasicAuth()
			if !ok || !credentialsMatch(cfg, user, pass) {
				w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", cfg.Realm))
				w.Header().Set("Cache-Control", "no-store")
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "gateway credentials required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func credentialsMatch(cfg config.GatewayConfig, user, pass string) bool {
	if cfg.Username == "" || cfg.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.Password)) == 1
	return userOK && passOK
}
