package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"fabhomes/internal/identity"
	"fabhomes/internal/models"
	"fabhomes/internal/services"
)

// Authenticator attaches the local user for a verified bearer credential.
// Requests with no credential, a rejected credential or a failed lookup
// continue anonymously.
type Authenticator struct {
	Bridge *identity.Bridge
	Users  *services.UserService
	Log    logrus.FieldLogger
}

func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims, ok := a.Bridge.Resolve(r.Context(), header)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		user, err := a.Users.ResolveCaller(r.Context(), claims)
		if err != nil {
			a.Log.WithError(err).WithField("uid", claims.UID).Warn("could not resolve local user, continuing anonymously")
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(identity.WithCaller(r.Context(), user)))
	})
}

// RequireCaller answers 401 unless Authenticate resolved a caller.
func RequireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity.CallerFromContext(r.Context()) == nil {
			Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requiredCaller returns the caller or writes 401.
func requiredCaller(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	caller := identity.CallerFromContext(r.Context())
	if caller == nil {
		Unauthorized(w)
		return nil, false
	}
	return caller, true
}
