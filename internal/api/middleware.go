package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/SergeyKozhin/chat-calendar/internal/pkg/jwt"
	"github.com/SergeyKozhin/chat-calendar/internal/pkg/validator"
	"github.com/google/uuid"
)

type contextKey string

const (
	contextKeyUserID    = contextKey("user_id")
	contextKeyRequestID = contextKey("request_id")
)

const (
	requestIDHeader = "X-Request-Id"
	defaultUserID   = "default"
)

var errInvalidUserID = errors.New("user_id must be 1-254 characters without spaces, slashes or backslashes")

func (a *Api) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := context.WithValue(r.Context(), contextKeyRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// auth pins the user id to the token subject. Without a token manager every
// request passes and the user id comes from the request itself.
func (a *Api) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.jwts == nil {
			next.ServeHTTP(w, r)
			return
		}

		token := r.Header.Get("Authorization")
		if token == "" {
			a.unauthorizedResponse(w, r, errors.New("no token provided"))
			return
		}

		token = strings.TrimPrefix(token, "Bearer ")

		userID, err := a.jwts.GetUserFromToken(token)
		if err != nil {
			invalidTokenErr := &jwt.InvalidTokenError{}
			switch {
			case errors.As(err, &invalidTokenErr):
				a.unauthorizedResponse(w, r, invalidTokenErr)
			default:
				a.serverErrorResponse(w, r, err)
			}
			return
		}

		if !validator.Matches(userID, validator.UserIDRX) {
			a.unauthorizedResponse(w, r, errInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveUserID prefers the token subject, then the supplied id, then the
// shared default calendar.
func resolveUserID(r *http.Request, supplied string) (string, error) {
	if id, ok := r.Context().Value(contextKeyUserID).(string); ok {
		return id, nil
	}

	if supplied == "" {
		supplied = defaultUserID
	}
	if !validator.Matches(supplied, validator.UserIDRX) {
		return "", errInvalidUserID
	}

	return supplied, nil
}
