package handlers

import (
	"net/http"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/dto"
	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/result"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

const somethingWentWrong = "Something went wrong!"

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService  services.AuthServiceInterface
	tokenService services.TokenServiceInterface
	cookieName   string
	cookieSecure bool
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(
	authService services.AuthServiceInterface,
	tokenService services.TokenServiceInterface,
	jwtConfig *config.JWTConfig,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		cookieName:   jwtConfig.CookieName,
		cookieSecure: jwtConfig.CookieSecure,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a user with email and password, then seed the default categories and account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} result.Result[dto.UserResponse] "User registered successfully"
// @Failure 400 {object} result.Result[any] "Invalid email address format"
// @Failure 409 {object} result.Result[any] "User with this email already exists"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if proceed, err := bindAndValidate(c, &req); !proceed {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), &req)
	if err != nil {
		return respondError[dto.UserResponse](c, err)
	}

	return respond(c, http.StatusCreated, result.OkMessage(dto.UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Currency:  user.Currency,
		CreatedAt: user.CreatedAt,
	}, "User registered successfully"))
}

// Login handles user authentication
// @Summary Login user
// @Description Authenticate with email and password. The token is returned and set as the session cookie.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} result.Result[dto.TokenResponse] "Login successful"
// @Failure 401 {object} result.Result[any] "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if proceed, err := bindAndValidate(c, &req); !proceed {
		return err
	}

	tokens, err := h.authService.Login(c.Request().Context(), &req)
	if err != nil {
		return respondError[dto.TokenResponse](c, err)
	}

	c.SetCookie(h.sessionCookie(tokens.AccessToken, tokens.ExpiresAt))
	return respond(c, http.StatusOK, result.OkMessage(*tokens, "Login successful"))
}

// Logout handles user logout
// @Summary Logout user
// @Description Revoke the session token taken from the Authorization header or the session cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} result.Result[any] "Logout successful"
// @Failure 401 {object} result.Result[any] "Unauthorized"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := h.tokenFromRequest(c)
	if token == "" {
		return SendError(c, apperrors.AuthUnauthorized, "")
	}

	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return respondError[struct{}](c, err)
	}

	c.SetCookie(h.sessionCookie("", time.Unix(0, 0)))
	return respond(c, http.StatusOK, result.Done[struct{}]("Logout successful"))
}

func (h *AuthHandler) tokenFromRequest(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		if token, err := h.tokenService.ExtractTokenFromHeader(header); err == nil {
			return token
		}
	}
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// respondError turns a service error into a failed envelope
func respondError[T any](c echo.Context, err error) error {
	kind := apperrors.KindOf(err)
	return c.JSON(apperrors.StatusForKind(kind), result.FailKind[T](kind, apperrors.MessageOf(err, somethingWentWrong)))
}
