package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/dto"
	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

type AuthHandlerSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	authService  *service_mocks.MockAuthServiceInterface
	tokenService *service_mocks.MockTokenServiceInterface
	handler      *AuthHandler
	e            *echo.Echo
}

func (s *AuthHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.authService = service_mocks.NewMockAuthServiceInterface(s.ctrl)
	s.tokenService = service_mocks.NewMockTokenServiceInterface(s.ctrl)
	s.handler = NewAuthHandler(s.authService, s.tokenService, &config.JWTConfig{CookieName: "session_token"})
	s.e = echo.New()
	s.e.Validator = NewValidator()
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthHandlerSuite) post(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return s.e.NewContext(req, rec), rec
}

func (s *AuthHandlerSuite) TestRegister() {
	s.Run("successful registration", func() {
		user := &models.User{ID: uuid.New(), Name: "Jane", Email: "jane@example.com", Currency: "Rs", CreatedAt: time.Now()}
		s.authService.EXPECT().Register(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *dto.RegisterRequest) (*models.User, error) {
				s.Equal("jane@example.com", req.Email)
				return user, nil
			})

		c, rec := s.post("/api/auth/register", `{"name":"Jane","email":"jane@example.com","password":"correct-horse"}`)

		s.NoError(s.handler.Register(c))
		s.Equal(http.StatusCreated, rec.Code)
		s.Contains(rec.Body.String(), `"message":"User registered successfully"`)
		s.Contains(rec.Body.String(), user.ID.String())
	})

	s.Run("duplicate email", func() {
		s.authService.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.New(apperrors.AuthEmailTaken))

		c, rec := s.post("/api/auth/register", `{"name":"Jane","email":"jane@example.com","password":"correct-horse"}`)

		s.NoError(s.handler.Register(c))
		s.Equal(http.StatusConflict, rec.Code)
		s.JSONEq(`{"success":false,"message":"User with this email already exists"}`, rec.Body.String())
	})

	s.Run("short password is rejected before the service", func() {
		c, rec := s.post("/api/auth/register", `{"name":"Jane","email":"jane@example.com","password":"short"}`)

		s.NoError(s.handler.Register(c))
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "password must be at least 8 characters")
	})

	s.Run("internal error is hidden", func() {
		s.authService.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("pq: relation users does not exist"))

		c, rec := s.post("/api/auth/register", `{"name":"Jane","email":"jane@example.com","password":"correct-horse"}`)

		s.NoError(s.handler.Register(c))
		s.Equal(http.StatusInternalServerError, rec.Code)
		s.JSONEq(`{"success":false,"message":"Something went wrong!"}`, rec.Body.String())
	})
}

func (s *AuthHandlerSuite) TestLogin() {
	s.Run("sets the session cookie", func() {
		expires := time.Now().Add(time.Hour)
		s.authService.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(&dto.TokenResponse{AccessToken: "signed.jwt.token", TokenType: "Bearer", ExpiresAt: expires}, nil)

		c, rec := s.post("/api/auth/login", `{"email":"jane@example.com","password":"correct-horse"}`)

		s.NoError(s.handler.Login(c))
		s.Equal(http.StatusOK, rec.Code)

		cookies := rec.Result().Cookies()
		s.Require().Len(cookies, 1)
		s.Equal("session_token", cookies[0].Name)
		s.Equal("signed.jwt.token", cookies[0].Value)
		s.True(cookies[0].HttpOnly)
	})

	s.Run("invalid credentials", func() {
		s.authService.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.New(apperrors.AuthInvalidCredentials))

		c, rec := s.post("/api/auth/login", `{"email":"jane@example.com","password":"wrong-password"}`)

		s.NoError(s.handler.Login(c))
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Empty(rec.Result().Cookies())
	})
}

func (s *AuthHandlerSuite) TestLogout() {
	s.Run("bearer token", func() {
		s.tokenService.EXPECT().ExtractTokenFromHeader("Bearer abc").Return("abc", nil)
		s.authService.EXPECT().Logout(gomock.Any(), "abc").Return(nil)

		c, rec := s.post("/api/auth/logout", "")
		c.Request().Header.Set(echo.HeaderAuthorization, "Bearer abc")

		s.NoError(s.handler.Logout(c))
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"success":true,"message":"Logout successful"}`, rec.Body.String())
	})

	s.Run("session cookie", func() {
		s.authService.EXPECT().Logout(gomock.Any(), "from-cookie").Return(nil)

		c, rec := s.post("/api/auth/logout", "")
		c.Request().AddCookie(&http.Cookie{Name: "session_token", Value: "from-cookie"})

		s.NoError(s.handler.Logout(c))
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("no token", func() {
		c, rec := s.post("/api/auth/logout", "")

		s.NoError(s.handler.Logout(c))
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
