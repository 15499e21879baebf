package app

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/meetcal/meetcal/internal/config"
	"github.com/meetcal/meetcal/pkg/user"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {
	r.Use(userMiddleware(deps.UserService))
}

// userMiddleware resolves the X-User-Id header to a user stored in the request
// context. Requests without the header pass through; handlers that need a user
// answer them with 403.
func userMiddleware(users user.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			userIdHeader := req.Header.Get("X-User-Id")
			ctx := req.Context()

			if userIdHeader != "" {
				u, err := users.GetUserByUid(ctx, userIdHeader)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						log.Debugf("user not found: %s", userIdHeader)
						http.Error(w, "user not found", http.StatusForbidden)
						return
					}
					log.Errorf("failed to get user: %v", err)
					http.Error(w, "failed to get user", http.StatusInternalServerError)
					return
				}
				log.Tracef("user found: %s", u.Uid)
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
