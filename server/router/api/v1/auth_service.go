package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/quilicura/micondominio/server/auth"
	"github.com/quilicura/micondominio/store"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *userPayload `json:"user"`
}

type userPayload struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Condominium string `json:"condominium"`
}

// Login authenticates by email and password and issues an access token.
func (s *APIV1Service) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request").SetInternal(err)
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	user, err := s.Store.GetUser(ctx, &store.FindUser{Email: &req.Email})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to look up user").SetInternal(err)
	}
	// Run the comparison even when the user is absent so response timing does
	// not reveal which emails exist.
	hash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if user != nil {
		hash = user.PasswordHash
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil || user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if user.AccountStatus != store.AccountStatusActive {
		return echo.NewHTTPError(http.StatusForbidden, "account suspended")
	}

	token, err := auth.GenerateAccessToken(user, s.Secret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue token").SetInternal(err)
	}

	return c.JSON(http.StatusOK, &loginResponse{
		AccessToken: token,
		User: &userPayload{
			ID:          user.ID,
			Name:        user.FullName(),
			Email:       user.Email,
			Role:        string(user.Role),
			Condominium: user.CondominiumName,
		},
	})
}
