package middleware

import (
	"net/http"
	"time"

	"github.com/rkartside/quoter-backend/api/responses"
	pkgerrors "github.com/rkartside/quoter-backend/pkg/errors"
	"github.com/rkartside/quoter-backend/pkg/logger"
	pkgredis "github.com/rkartside/quoter-backend/pkg/redis"
)

// ActionLock serializes a mutating action per user. While one request holds
// the lock, a concurrent request for the same action gets a conflict instead
// of racing the first one. The lock is released when the request finishes;
// the TTL only bounds locks orphaned by a crashed worker.
func ActionLock(store pkgredis.LockStore, action string, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := UserIDFromContext(r.Context())
			if store == nil || userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := store.ActionLockKey(userID, action)
			acquired, err := store.SetNX(r.Context(), key, "1", ttl)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire action lock"))
				return
			}
			if !acquired {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict, "another request for this action is already in progress"))
				return
			}

			defer func() {
				if delErr := store.Del(r.Context(), key); delErr != nil && logg != nil {
					logg.Error(r.Context(), "release action lock", delErr)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
