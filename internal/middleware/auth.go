package middleware

import (
	"errors"
	"log/slog"

	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"
	"finance-tracker/internal/session"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequireAuth creates a middleware that requires a valid session token, taken from the
// Authorization header or the session cookie, that has not been revoked by a logout.
// The user id lands in the echo context and in the request context.
func RequireAuth(
	tokenService services.TokenServiceInterface,
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface,
	cookieName string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c, tokenService, cookieName)
			if token == "" {
				return handlers.SendError(c, apperrors.AuthUnauthorized, "")
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				return handlers.SendError(c, apperrors.AuthUnauthorized, "")
			}

			ctx := c.Request().Context()
			_, err = blacklistedTokenRepo.GetByJTI(ctx, claims.ID)
			switch {
			case err == nil:
				return handlers.SendError(c, apperrors.AuthTokenRevoked, "")
			case !errors.Is(err, repositories.ErrTokenNotFound):
				slog.ErrorContext(ctx, "Failed to check token blacklist",
					"trace_id", GetTraceID(c),
					"error", err,
				)
				return handlers.SendError(c, apperrors.SystemServiceUnavailable, "")
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil || userID == uuid.Nil {
				return handlers.SendError(c, apperrors.AuthUnauthorized, "")
			}

			c.Set("user_id", userID)
			c.Set("user_email", claims.Email)
			c.Set("token_jti", claims.ID)
			c.SetRequest(c.Request().WithContext(session.WithUserID(ctx, userID)))

			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context, tokenService services.TokenServiceInterface, cookieName string) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		token, err := tokenService.ExtractTokenFromHeader(header)
		if err != nil {
			return ""
		}
		return token
	}

	if cookieName == "" {
		return ""
	}
	cookie, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
