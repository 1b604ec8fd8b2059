package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/quilicura/micondominio/store"
)

const userEchoKey = "auth.user"

// Middleware returns an echo middleware that resolves the Bearer token into
// the authenticated user and rejects the request otherwise. Suspended
// accounts hold valid tokens but may not act.
func Middleware(s *store.Store, secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			userID, err := UserIDFromToken(token, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token").SetInternal(err)
			}

			user, err := s.GetUser(c.Request().Context(), &store.FindUser{ID: &userID})
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to load user").SetInternal(err)
			}
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
			}
			if user.AccountStatus != store.AccountStatusActive {
				return echo.NewHTTPError(http.StatusForbidden, "account suspended")
			}

			c.Set(userEchoKey, user)
			c.SetRequest(c.Request().WithContext(ContextWithUser(c.Request().Context(), user)))
			return next(c)
		}
	}
}

// UserFromEcho returns the user resolved by Middleware, or nil.
func UserFromEcho(c echo.Context) *store.User {
	user, _ := c.Get(userEchoKey).(*store.User)
	return user
}
