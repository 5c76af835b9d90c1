package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"finance-tracker/internal/actions"
	"finance-tracker/internal/services"
	"finance-tracker/internal/services/service_mocks"
	"finance-tracker/internal/session"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// handlerSuite wires real actions over mocked services
type handlerSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	accounts     *service_mocks.MockAccountServiceInterface
	categories   *service_mocks.MockCategoryServiceInterface
	transactions *service_mocks.MockTransactionServiceInterface
	users        *service_mocks.MockUserServiceInterface
	dashboard    *service_mocks.MockDashboardServiceInterface
	actions      *actions.Actions
	echo         *echo.Echo
	userID       uuid.UUID
}

func (s *handlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.accounts = service_mocks.NewMockAccountServiceInterface(s.ctrl)
	s.categories = service_mocks.NewMockCategoryServiceInterface(s.ctrl)
	s.transactions = service_mocks.NewMockTransactionServiceInterface(s.ctrl)
	s.users = service_mocks.NewMockUserServiceInterface(s.ctrl)
	s.dashboard = service_mocks.NewMockDashboardServiceInterface(s.ctrl)
	s.actions = actions.New(s.accounts, s.categories, s.transactions, s.users, s.dashboard,
		services.NoopMetrics{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.userID = uuid.New()
}

func (s *handlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

// createContextWithAuth builds a request whose context carries the test user, the
// way RequireAuth leaves it
func (s *handlerSuite) createContextWithAuth(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := s.createContext(method, path, body)
	req := c.Request()
	c.SetRequest(req.WithContext(session.WithUserID(req.Context(), s.userID)))
	c.Set("user_id", s.userID)
	return c, rec
}

func (s *handlerSuite) createContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		var raw []byte
		if str, ok := body.(string); ok {
			raw = []byte(str)
		} else {
			raw, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(raw))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

// envelope is the decoded response body with data left raw
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (s *handlerSuite) decode(rec *httptest.ResponseRecorder) envelope {
	var env envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

