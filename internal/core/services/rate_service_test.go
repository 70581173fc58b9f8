package services_test

import (
	"context"
	"testing"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateRepository ---
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindRateByCode(ctx context.Context, code string) (*domain.Rate, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockRateRepository) ListRates(ctx context.Context) ([]domain.Rate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rate), args.Error(1)
}

func (m *MockRateRepository) UpsertRates(ctx context.Context, rates []domain.Rate) (int, error) {
	args := m.Called(ctx, rates)
	return args.Int(0), args.Error(1)
}

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchQuotes(ctx context.Context) ([]domain.RateQuote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateQuote), args.Error(1)
}

func (m *MockRateSource) LocalPivot() string {
	args := m.Called()
	return args.String(0)
}

// --- Test Suite ---
type RateServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockRateRepository
	mockSource *MockRateSource
	service    portssvc.RateSvcFacade
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRateRepository)
	suite.mockSource = new(MockRateSource)
	suite.service = services.NewRateService(suite.mockRepo, suite.mockSource)
}

// --- Test Cases ---

func (suite *RateServiceTestSuite) TestRefreshRates_NormalizesAgainstUSD() {
	ctx := context.Background()
	quotes := []domain.RateQuote{
		{Code: "USD", Rate: decimal.NewFromInt(41)},
		{Code: "EUR", Rate: decimal.RequireFromString("44.5652")},
		{Code: "PLN", Rate: decimal.RequireFromString("10.25")},
	}

	suite.mockSource.On("FetchQuotes", ctx).Return(quotes, nil).Once()
	suite.mockSource.On("LocalPivot").Return("UAH").Once()

	var captured []domain.Rate
	suite.mockRepo.On("UpsertRates", ctx, mock.MatchedBy(func(rates []domain.Rate) bool {
		captured = rates
		return true
	})).Return(4, nil).Once()

	count, err := suite.service.RefreshRates(ctx)

	suite.Require().NoError(err)
	suite.Equal(4, count)

	byCode := map[string]decimal.Decimal{}
	for _, r := range captured {
		byCode[r.Code] = r.Rate
	}

	// USD anchors at exactly 1, UAH at the raw USD quote, and every other
	// code at raw_USD / raw_code.
	suite.True(decimal.NewFromInt(1).Equal(byCode["USD"]))
	suite.True(decimal.NewFromInt(41).Round(8).Equal(byCode["UAH"]))
	suite.True(decimal.NewFromInt(41).DivRound(decimal.RequireFromString("44.5652"), 8).Equal(byCode["EUR"]))
	suite.True(decimal.NewFromInt(41).DivRound(decimal.RequireFromString("10.25"), 8).Equal(byCode["PLN"]))

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestRefreshRates_MissingUSDAbortsBeforeWriting() {
	ctx := context.Background()
	quotes := []domain.RateQuote{
		{Code: "EUR", Rate: decimal.RequireFromString("44.5652")},
	}

	suite.mockSource.On("FetchQuotes", ctx).Return(quotes, nil).Once()
	suite.mockSource.On("LocalPivot").Return("UAH").Once()

	count, err := suite.service.RefreshRates(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateSourceMalformed)
	suite.Zero(count)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertRates", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestRefreshRates_NonPositiveUSDAbortsBeforeWriting() {
	ctx := context.Background()
	quotes := []domain.RateQuote{
		{Code: "USD", Rate: decimal.Zero},
		{Code: "EUR", Rate: decimal.RequireFromString("44.5652")},
	}

	suite.mockSource.On("FetchQuotes", ctx).Return(quotes, nil).Once()
	suite.mockSource.On("LocalPivot").Return("UAH").Once()

	_, err := suite.service.RefreshRates(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateSourceMalformed)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertRates", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestRefreshRates_FetchErrorLeavesTableUntouched() {
	ctx := context.Background()

	suite.mockSource.On("FetchQuotes", ctx).Return(nil, apperrors.ErrRateSourceUnavailable).Once()

	count, err := suite.service.RefreshRates(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateSourceUnavailable)
	suite.Zero(count)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertRates", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestRefreshRates_SkipsNonPositiveQuotes() {
	ctx := context.Background()
	quotes := []domain.RateQuote{
		{Code: "USD", Rate: decimal.NewFromInt(41)},
		{Code: "BAD", Rate: decimal.Zero},
		{Code: "NEG", Rate: decimal.NewFromInt(-3)},
		{Code: "PLN", Rate: decimal.RequireFromString("10.25")},
	}

	suite.mockSource.On("FetchQuotes", ctx).Return(quotes, nil).Once()
	suite.mockSource.On("LocalPivot").Return("UAH").Once()

	suite.mockRepo.On("UpsertRates", ctx, mock.MatchedBy(func(rates []domain.Rate) bool {
		codes := map[string]bool{}
		for _, r := range rates {
			codes[r.Code] = true
		}
		return len(rates) == 3 && codes["USD"] && codes["UAH"] && codes["PLN"]
	})).Return(3, nil).Once()

	count, err := suite.service.RefreshRates(ctx)

	suite.Require().NoError(err)
	suite.Equal(3, count)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestRefreshRates_DuplicateQuotesDeduplicated() {
	ctx := context.Background()
	quotes := []domain.RateQuote{
		{Code: "USD", Rate: decimal.NewFromInt(41)},
		{Code: "EUR", Rate: decimal.RequireFromString("44.5652")},
		{Code: "EUR", Rate: decimal.RequireFromString("44.0000")},
	}

	suite.mockSource.On("FetchQuotes", ctx).Return(quotes, nil).Once()
	suite.mockSource.On("LocalPivot").Return("UAH").Once()

	suite.mockRepo.On("UpsertRates", ctx, mock.MatchedBy(func(rates []domain.Rate) bool {
		eur := 0
		for _, r := range rates {
			if r.Code == "EUR" {
				eur++
			}
		}
		return eur == 1
	})).Return(3, nil).Once()

	_, err := suite.service.RefreshRates(ctx)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestRefreshRates_USDLocalPivotSeedsSingleRow() {
	ctx := context.Background()
	quotes := []domain.RateQuote{
		{Code: "USD", Rate: decimal.NewFromInt(1)},
		{Code: "EUR", Rate: decimal.RequireFromString("0.92")},
	}

	suite.mockSource.On("FetchQuotes", ctx).Return(quotes, nil).Once()
	suite.mockSource.On("LocalPivot").Return("USD").Once()

	var captured []domain.Rate
	suite.mockRepo.On("UpsertRates", ctx, mock.MatchedBy(func(rates []domain.Rate) bool {
		captured = rates
		return true
	})).Return(2, nil).Once()

	_, err := suite.service.RefreshRates(ctx)

	suite.Require().NoError(err)
	usd := 0
	for _, r := range captured {
		if r.Code == "USD" {
			usd++
			suite.True(decimal.NewFromInt(1).Equal(r.Rate))
		}
	}
	suite.Equal(1, usd, "USD must appear exactly once when the source pivots on USD")
	suite.Len(captured, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestRefreshRates_Idempotent() {
	ctx := context.Background()
	quotes := []domain.RateQuote{
		{Code: "USD", Rate: decimal.NewFromInt(41)},
		{Code: "EUR", Rate: decimal.RequireFromString("44.5652")},
	}

	suite.mockSource.On("FetchQuotes", ctx).Return(quotes, nil).Twice()
	suite.mockSource.On("LocalPivot").Return("UAH").Twice()

	var first, second []domain.Rate
	suite.mockRepo.On("UpsertRates", ctx, mock.MatchedBy(func(rates []domain.Rate) bool {
		if first == nil {
			first = rates
		} else {
			second = rates
		}
		return true
	})).Return(3, nil).Twice()

	_, err := suite.service.RefreshRates(ctx)
	suite.Require().NoError(err)
	_, err = suite.service.RefreshRates(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(second, len(first))
	for i := range first {
		suite.Equal(first[i].Code, second[i].Code)
		suite.True(first[i].Rate.Equal(second[i].Rate),
			"rate for %s drifted between identical refreshes", first[i].Code)
	}
}

func (suite *RateServiceTestSuite) TestGetRate_USDAlwaysOne() {
	ctx := context.Background()

	rate, err := suite.service.GetRate(ctx, "usd")

	suite.Require().NoError(err)
	suite.Equal("USD", rate.Code)
	suite.True(decimal.NewFromInt(1).Equal(rate.Rate))
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRateByCode", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestGetRate_InvalidCode() {
	ctx := context.Background()

	_, err := suite.service.GetRate(ctx, "X")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateServiceTestSuite) TestGetRate_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindRateByCode", ctx, "ZZZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetRate(ctx, "ZZZ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestListRates_DefaultsUSDBeforeFirstRefresh() {
	ctx := context.Background()

	suite.mockRepo.On("ListRates", ctx).Return([]domain.Rate{}, nil).Once()

	rates, err := suite.service.ListRates(ctx)

	suite.Require().NoError(err)
	usd, ok := rates["USD"]
	suite.True(ok)
	suite.True(decimal.NewFromInt(1).Equal(usd))
}

func (suite *RateServiceTestSuite) TestConvert_UsesSnapshot() {
	ctx := context.Background()

	suite.mockRepo.On("ListRates", ctx).Return([]domain.Rate{
		{Code: "USD", Rate: decimal.NewFromInt(1)},
		{Code: "UAH", Rate: decimal.NewFromInt(41)},
	}, nil).Once()

	got, err := suite.service.Convert(ctx, "UAH", "USD", decimal.NewFromInt(410), domain.Expense)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "-10.00", got.StringFixed(2))
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
