package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/handlers"
	"github.com/fintrackhq/fintrack_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) RefreshRates(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRateService) GetRate(ctx context.Context, code string) (*domain.Rate, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockRateService) ListRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockRateService) Convert(ctx context.Context, fromCode, toCode string, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCode, toCode, amount, kind)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.RateSvcFacade = (*MockRateService)(nil)

// --- Test Suite ---
type CurrencyHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockRateService *MockRateService
	jwtSecret       string
}

func (suite *CurrencyHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "fintrack-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *CurrencyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockRateService = new(MockRateService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	services := &portssvc.ServiceContainer{Rate: suite.mockRateService}
	handlers.RegisterRoutes(suite.router, cfg, services, nil)
}

func (suite *CurrencyHandlerTestSuite) doRequest(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *CurrencyHandlerTestSuite) TestListRates_Success() {
	token := suite.generateTestToken(uuid.NewString())

	suite.mockRateService.On("ListRates", mock.Anything).Return(map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"UAH": decimal.NewFromInt(41),
	}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/currencies", token)

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Rates, 2)
	suite.True(decimal.NewFromInt(1).Equal(body.Rates["USD"]))
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestListRates_Unauthorized() {
	w := suite.doRequest(http.MethodGet, "/api/v1/currencies", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRateService.AssertNotCalled(suite.T(), "ListRates", mock.Anything)
}

func (suite *CurrencyHandlerTestSuite) TestGetRateByCode_Success() {
	token := suite.generateTestToken(uuid.NewString())

	suite.mockRateService.On("GetRate", mock.Anything, "EUR").
		Return(&domain.Rate{Code: "EUR", Rate: decimal.RequireFromString("0.92")}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/currencies/EUR", token)

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Code string          `json:"code"`
		Rate decimal.Decimal `json:"rate"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("EUR", body.Code)
	suite.True(decimal.RequireFromString("0.92").Equal(body.Rate))
}

func (suite *CurrencyHandlerTestSuite) TestGetRateByCode_NotFound() {
	token := suite.generateTestToken(uuid.NewString())

	suite.mockRateService.On("GetRate", mock.Anything, "ZZZ").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/currencies/ZZZ", token)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *CurrencyHandlerTestSuite) TestRefreshRates_Success() {
	token := suite.generateTestToken(uuid.NewString())

	suite.mockRateService.On("RefreshRates", mock.Anything).Return(42, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/currencies/refresh", token)

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Refreshed int `json:"refreshed"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(42, body.Refreshed)
}

func (suite *CurrencyHandlerTestSuite) TestRefreshRates_SourceUnavailable() {
	token := suite.generateTestToken(uuid.NewString())

	suite.mockRateService.On("RefreshRates", mock.Anything).
		Return(0, apperrors.ErrRateSourceUnavailable).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/currencies/refresh", token)

	suite.Equal(http.StatusBadGateway, w.Code)
}

func TestCurrencyHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyHandlerTestSuite))
}
