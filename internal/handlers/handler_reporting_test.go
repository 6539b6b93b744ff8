package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finage-app/finage_core/internal/core/domain"
	portssvc "github.com/finage-app/finage_core/internal/core/ports/services"
	"github.com/finage-app/finage_core/internal/dto"
)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TotalsByMethod(ctx context.Context, day time.Time, kind domain.RecordKind) (map[string]int64, error) {
	args := m.Called(ctx, day, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockReportingService) TotalForMethod(ctx context.Context, method string, day time.Time) (int64, error) {
	args := m.Called(ctx, method, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingService) IncomeExpenseSplit(ctx context.Context, window domain.Window) (domain.IncomeExpenseSplit, error) {
	args := m.Called(ctx, window)
	return args.Get(0).(domain.IncomeExpenseSplit), args.Error(1)
}

func (m *MockReportingService) RankingByMethod(ctx context.Context, window domain.Window, groupBy domain.RankingGroup) ([]domain.RankingEntry, error) {
	args := m.Called(ctx, window, groupBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RankingEntry), args.Error(1)
}

func (m *MockReportingService) PointsByMethod(ctx context.Context, window domain.Window) (map[string]int64, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockReportingService) PointsForMethodOnDay(ctx context.Context, method string, day time.Time) (int64, error) {
	args := m.Called(ctx, method, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingService) PointHistory(ctx context.Context, method string) ([]domain.Record, error) {
	args := m.Called(ctx, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockReportingService) DistinctMonths(ctx context.Context) ([]domain.YearMonth, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YearMonth), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Test Suite ---
type ReportingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockReportingService
}

func (suite *ReportingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockReportingService)
	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1")
	registerReportingRoutes(v1, suite.mockService)
}

func (suite *ReportingHandlerTestSuite) TestGetDailyMethodDetail_ReturnsTypedBody() {
	day := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	suite.mockService.On("TotalForMethod", mock.Anything, "Gold Card", day).Return(int64(1999), nil).Once()
	suite.mockService.On("PointsForMethodOnDay", mock.Anything, "Gold Card", day).Return(int64(9), nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reports/daily/Gold%20Card?date=2025-04-15", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.MethodDayDetailResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(dto.MethodDayDetailResponse{Method: "Gold Card", Total: 1999, Points: 9}, body)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestGetDailyMethodDetail_RejectsBadDate() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reports/daily/Cash?date=15-04-2025", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "TotalForMethod", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingHandlerTestSuite))
}
