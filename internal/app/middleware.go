package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/pkg/user"
)

const (
	userIdHeader    = "X-User-Id"
	requestIdHeader = "X-Request-Id"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {
	r.Use(requestLogging)

	// Propagate X-User-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			uid := req.Header.Get(userIdHeader)
			ctx := req.Context()

			if uid != "" {
				u, err := deps.UserService.GetUserByUid(ctx, uid)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						log.Debugf("user not found: %s", uid)
						http.Error(w, "user not found", http.StatusForbidden)
						return
					}
					log.Errorf("failed to get user: %v", err)
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestId := req.Header.Get(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		w.Header().Set(requestIdHeader, requestId)

		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)

		log.WithFields(log.Fields{
			"requestId": requestId,
			"method":    req.Method,
			"path":      req.URL.Path,
			"status":    recorder.status,
			"duration":  time.Since(started).String(),
		}).Debug("Handled request")
	})
}

// RequireAdmin rejects requests whose user is missing or not an admin.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		currentUser, err := user.CurrentUser(req.Context())
		if err != nil {
			http.Error(w, "user not found", http.StatusForbidden)
			return
		}
		if !currentUser.IsAdmin() {
			log.Debugf("user %s is not an admin", currentUser.Uid)
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}
		next(w, req)
	}
}
