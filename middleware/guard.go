package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	goStats "github.com/MrEthical07/goStats"
	"github.com/MrEthical07/goStats/jwt"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the reader claims RequireStatsReader stored.
func ClaimsFromContext(ctx context.Context) (*jwt.ReaderClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*jwt.ReaderClaims)
	return claims, ok
}

// RequireStatsReader admits requests that carry a bearer token granting scope.
//
// A missing or invalid token answers 401 and counts security_user_error. A
// valid token without the scope answers 403 and counts permissions_user_error.
func RequireStatsReader(tokens *jwt.Manager, scope string, reg *goStats.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokens == nil {
				reg.Inc(goStats.MetricSecurityUserError)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				reg.Inc(goStats.MetricSecurityUserError)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Require(token, scope)
			switch {
			case errors.Is(err, jwt.ErrMissingScope):
				reg.Inc(goStats.MetricPermissionUserError)
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			case err != nil:
				reg.Inc(goStats.MetricSecurityUserError)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
