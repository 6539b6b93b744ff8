package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finage-app/finage_core/internal/apperrors"
	"github.com/finage-app/finage_core/internal/core/domain"
	portssvc "github.com/finage-app/finage_core/internal/core/ports/services"
	"github.com/finage-app/finage_core/internal/core/services"
	"github.com/finage-app/finage_core/internal/dto"
)

// --- Mock SubscriptionRepository ---
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) SaveSubscription(ctx context.Context, subscription domain.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateSubscription(ctx context.Context, subscription domain.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) DeleteSubscription(ctx context.Context, subscriptionID string) error {
	args := m.Called(ctx, subscriptionID)
	return args.Error(0)
}

// --- Mock Ledger ---
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockLedger) MonthMarkers(ctx context.Context, year, month int, selectedMethod string) ([]domain.DayMarkers, error) {
	args := m.Called(ctx, year, month, selectedMethod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DayMarkers), args.Error(1)
}

func (m *MockLedger) AppendRecord(ctx context.Context, req dto.CreateRecordRequest) (*domain.Record, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockLedger) DeleteRecord(ctx context.Context, recordID string) error {
	args := m.Called(ctx, recordID)
	return args.Error(0)
}

func (m *MockLedger) DeleteAllRecords(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedger) RegisterObserver(fn func()) {
	m.Called(fn)
}

// --- Test Suite ---
type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockSubscriptionRepository
	mockLedger   *MockLedger
	mockRegistry *MockRegistryReader
	service      portssvc.SubscriptionSvcFacade
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSubscriptionRepository)
	suite.mockLedger = new(MockLedger)
	suite.mockRegistry = new(MockRegistryReader)
	suite.service = services.NewSubscriptionService(
		suite.mockRepo,
		services.WithChargeLedger(suite.mockLedger),
		services.WithSubscriptionRegistry(suite.mockRegistry),
	)
}

func (suite *SubscriptionServiceTestSuite) TestCreateSubscription_Success() {
	ctx := context.Background()
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateSubscriptionRequest{
		Name:          "StreamFlix",
		Genre:         "video",
		Price:         990,
		Plan:          domain.PlanMonthly,
		StartDate:     start,
		PaymentMethod: "Gold Card",
	}

	suite.mockRegistry.On("LookupMethod", ctx, "Gold Card").
		Return(&domain.PaymentMethod{Name: "Gold Card", Category: domain.CategoryCard}, nil).Once()
	suite.mockRepo.On("SaveSubscription", ctx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.Name == "StreamFlix" && s.IsActive && s.NextChargeDate.Equal(start) && s.SubscriptionID != ""
	})).Return(nil).Once()

	sub, err := suite.service.CreateSubscription(ctx, req)

	suite.Require().NoError(err)
	suite.True(sub.IsActive)
	suite.True(sub.NextChargeDate.Equal(start))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestCreateSubscription_UnknownMethodRejected() {
	ctx := context.Background()
	req := dto.CreateSubscriptionRequest{
		Name:          "StreamFlix",
		Price:         990,
		Plan:          domain.PlanMonthly,
		StartDate:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "Ghost Pay",
	}

	suite.mockRegistry.On("LookupMethod", ctx, "Ghost Pay").Return(nil, apperrors.ErrNotFound).Once()

	sub, err := suite.service.CreateSubscription(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(sub)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSubscription", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestSetActive_TogglesFlag() {
	ctx := context.Background()
	stored := &domain.Subscription{SubscriptionID: "s1", Name: "StreamFlix", IsActive: true}

	suite.mockRepo.On("FindSubscriptionByID", ctx, "s1").Return(stored, nil).Once()
	suite.mockRepo.On("UpdateSubscription", ctx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.SubscriptionID == "s1" && !s.IsActive
	})).Return(nil).Once()

	updated, err := suite.service.SetActive(ctx, "s1", false)

	suite.Require().NoError(err)
	suite.False(updated.IsActive)
}

func (suite *SubscriptionServiceTestSuite) TestRunDueCharges_PostsAndAdvances() {
	ctx := context.Background()
	now := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	sub := domain.Subscription{
		SubscriptionID: "s1",
		Name:           "StreamFlix",
		Price:          990,
		Plan:           domain.PlanMonthly,
		NextChargeDate: time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		PaymentMethod:  "Gold Card",
		IsActive:       true,
	}

	suite.mockRepo.On("ListSubscriptions", ctx).Return([]domain.Subscription{sub}, nil).Once()
	suite.mockLedger.On("ListRecords", ctx, mock.Anything).Return([]domain.Record{}, nil).Once()
	suite.mockLedger.On("AppendRecord", ctx, mock.MatchedBy(func(req dto.CreateRecordRequest) bool {
		return req.Kind == domain.Expense && req.Method == "Gold Card" && req.Amount == 990 && req.Memo == "StreamFlix"
	})).Return(&domain.Record{RecordID: "r1", Memo: "StreamFlix", Amount: 990}, nil).Once()
	suite.mockRepo.On("UpdateSubscription", ctx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.NextChargeDate.Equal(time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	posted, err := suite.service.RunDueCharges(ctx, now)

	suite.Require().NoError(err)
	suite.Require().Len(posted, 1)
	suite.Equal("r1", posted[0].RecordID)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestRunDueCharges_SecondRunSameDayIsIdempotent() {
	ctx := context.Background()
	now := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	sub := domain.Subscription{
		SubscriptionID: "s1",
		Name:           "StreamFlix",
		Price:          990,
		Plan:           domain.PlanMonthly,
		NextChargeDate: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		PaymentMethod:  "Gold Card",
		IsActive:       true,
	}
	alreadyPosted := []domain.Record{
		{RecordID: "r1", Kind: domain.Expense, Memo: "StreamFlix", Amount: 990, Date: now},
	}

	suite.mockRepo.On("ListSubscriptions", ctx).Return([]domain.Subscription{sub}, nil).Once()
	suite.mockLedger.On("ListRecords", ctx, mock.Anything).Return(alreadyPosted, nil).Once()

	posted, err := suite.service.RunDueCharges(ctx, now)

	suite.Require().NoError(err)
	suite.Empty(posted)
	suite.mockLedger.AssertNotCalled(suite.T(), "AppendRecord", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateSubscription", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestRunDueCharges_SkipsInactiveAndNotDue() {
	ctx := context.Background()
	now := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	subs := []domain.Subscription{
		{SubscriptionID: "s1", Name: "Paused", Price: 500, Plan: domain.PlanMonthly,
			NextChargeDate: now, PaymentMethod: "Cash", IsActive: false},
		{SubscriptionID: "s2", Name: "NotYet", Price: 500, Plan: domain.PlanMonthly,
			NextChargeDate: time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC), PaymentMethod: "Cash", IsActive: true},
	}

	suite.mockRepo.On("ListSubscriptions", ctx).Return(subs, nil).Once()
	suite.mockLedger.On("ListRecords", ctx, mock.Anything).Return([]domain.Record{}, nil).Once()

	posted, err := suite.service.RunDueCharges(ctx, now)

	suite.Require().NoError(err)
	suite.Empty(posted)
	suite.mockLedger.AssertNotCalled(suite.T(), "AppendRecord", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestDeleteSubscription_LeavesPostedRecords() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteSubscription", ctx, "s1").Return(nil).Once()

	err := suite.service.DeleteSubscription(ctx, "s1")

	suite.Require().NoError(err)
	suite.mockLedger.AssertNotCalled(suite.T(), "DeleteRecord", mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "DeleteAllRecords", mock.Anything)
}

func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
