package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finage-app/finage_core/internal/apperrors"
	"github.com/finage-app/finage_core/internal/core/domain"
	portssvc "github.com/finage-app/finage_core/internal/core/ports/services"
	"github.com/finage-app/finage_core/internal/core/services"
	"github.com/finage-app/finage_core/internal/dto"
)

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) LoadPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

func (m *MockSettingsRepository) SavePaymentMethods(ctx context.Context, methods []domain.PaymentMethod) error {
	args := m.Called(ctx, methods)
	return args.Error(0)
}

func (m *MockSettingsRepository) LoadIncomeCategories(ctx context.Context) ([]domain.IncomeCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncomeCategory), args.Error(1)
}

func (m *MockSettingsRepository) SaveIncomeCategories(ctx context.Context, categories []domain.IncomeCategory) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockSettingsRepository) LoadTheme(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) SaveTheme(ctx context.Context, theme string) error {
	args := m.Called(ctx, theme)
	return args.Error(0)
}

// --- Test Suite ---
type RegistryServiceTestSuite struct {
	suite.Suite
	mockSettings *MockSettingsRepository
	mockRecords  *MockRecordRepository
	service      portssvc.RegistrySvcFacade
}

func (suite *RegistryServiceTestSuite) SetupTest() {
	suite.mockSettings = new(MockSettingsRepository)
	suite.mockRecords = new(MockRecordRepository)
	suite.service = services.NewRegistryService(suite.mockSettings, services.WithRecordCascade(suite.mockRecords))
}

func (suite *RegistryServiceTestSuite) TestSortedMethods_SeedsBuiltinAndOrdersByCategoryRank() {
	ctx := context.Background()
	stored := []domain.PaymentMethod{
		{Name: "PayPay", Category: domain.CategoryQR, Position: 2},
		{Name: "Gold Card", Category: domain.CategoryCard, Position: 3},
		{Name: "Suica", Category: domain.CategoryEMoney, Position: 1},
	}
	suite.mockSettings.On("LoadPaymentMethods", ctx).Return(stored, nil).Once()

	methods, err := suite.service.SortedMethods(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(methods, 4)
	suite.Equal("Cash", methods[0].Name) // built-in seeded at load
	suite.True(methods[0].Protected)
	suite.Equal("Gold Card", methods[1].Name)
	suite.Equal("PayPay", methods[2].Name)
	suite.Equal("Suica", methods[3].Name)
}

func (suite *RegistryServiceTestSuite) TestSortedMethods_InsertionOrderBreaksTies() {
	ctx := context.Background()
	stored := []domain.PaymentMethod{
		{Name: "Visa", Category: domain.CategoryCard, Position: 2},
		{Name: "Amex", Category: domain.CategoryCard, Position: 1},
	}
	suite.mockSettings.On("LoadPaymentMethods", ctx).Return(stored, nil).Once()

	methods, err := suite.service.SortedMethods(ctx)

	suite.Require().NoError(err)
	suite.Equal("Amex", methods[1].Name)
	suite.Equal("Visa", methods[2].Name)
}

func (suite *RegistryServiceTestSuite) TestAddPaymentMethod_Success() {
	ctx := context.Background()
	req := dto.CreateMethodRequest{Name: "Gold Card", Category: domain.CategoryCard, EarnsPoints: true, BaseFee: 200}

	suite.mockSettings.On("LoadPaymentMethods", ctx).Return([]domain.PaymentMethod{
		{Name: "Cash", Category: domain.CategoryCash, Protected: true, Position: 0},
	}, nil).Once()
	suite.mockSettings.On("SavePaymentMethods", ctx, mock.MatchedBy(func(methods []domain.PaymentMethod) bool {
		if len(methods) != 2 {
			return false
		}
		added := methods[1]
		return added.Name == "Gold Card" && added.BaseFee == 200 && added.Position == 1
	})).Return(nil).Once()

	method, err := suite.service.AddPaymentMethod(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("Gold Card", method.Name)
	suite.Equal(int64(200), method.BaseFee)

	suite.mockSettings.AssertExpectations(suite.T())
}

func (suite *RegistryServiceTestSuite) TestAddPaymentMethod_DuplicateName() {
	ctx := context.Background()
	req := dto.CreateMethodRequest{Name: "Cash", Category: domain.CategoryCash}

	suite.mockSettings.On("LoadPaymentMethods", ctx).Return([]domain.PaymentMethod{
		{Name: "Cash", Category: domain.CategoryCash, Protected: true},
	}, nil).Once()

	method, err := suite.service.AddPaymentMethod(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(method)
	suite.mockSettings.AssertNotCalled(suite.T(), "SavePaymentMethods", mock.Anything, mock.Anything)
}

func (suite *RegistryServiceTestSuite) TestAddPaymentMethod_EarnsPointsRequiresBaseFee() {
	ctx := context.Background()
	req := dto.CreateMethodRequest{Name: "Broken Card", Category: domain.CategoryCard, EarnsPoints: true, BaseFee: 0}

	method, err := suite.service.AddPaymentMethod(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(method)
}

func (suite *RegistryServiceTestSuite) TestRemovePaymentMethod_CascadesToRecords() {
	ctx := context.Background()

	suite.mockSettings.On("LoadPaymentMethods", ctx).Return([]domain.PaymentMethod{
		{Name: "Cash", Category: domain.CategoryCash, Protected: true, Position: 0},
		{Name: "Old Card", Category: domain.CategoryCard, Position: 1},
	}, nil).Once()
	suite.mockSettings.On("SavePaymentMethods", ctx, mock.MatchedBy(func(methods []domain.PaymentMethod) bool {
		return len(methods) == 1 && methods[0].Name == "Cash"
	})).Return(nil).Once()
	suite.mockRecords.On("DeleteRecordsByMethod", ctx, "Old Card").Return(nil).Once()

	err := suite.service.RemovePaymentMethod(ctx, "Old Card")

	suite.Require().NoError(err)
	suite.mockSettings.AssertExpectations(suite.T())
	suite.mockRecords.AssertExpectations(suite.T())
}

func (suite *RegistryServiceTestSuite) TestRemovePaymentMethod_BuiltinIsProtected() {
	ctx := context.Background()

	suite.mockSettings.On("LoadPaymentMethods", ctx).Return([]domain.PaymentMethod{}, nil).Once()

	err := suite.service.RemovePaymentMethod(ctx, "Cash")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrProtected)
	suite.mockRecords.AssertNotCalled(suite.T(), "DeleteRecordsByMethod", mock.Anything, mock.Anything)
}

func (suite *RegistryServiceTestSuite) TestUpdateBaseFee_LeavesRecordedPointsAlone() {
	ctx := context.Background()

	suite.mockSettings.On("LoadPaymentMethods", ctx).Return([]domain.PaymentMethod{
		{Name: "Gold Card", Category: domain.CategoryCard, EarnsPoints: true, BaseFee: 200, Position: 1},
	}, nil).Once()
	suite.mockSettings.On("SavePaymentMethods", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateBaseFee(ctx, "Gold Card", 100)

	suite.Require().NoError(err)
	suite.Equal(int64(100), updated.BaseFee)
	// no record repository interaction: history is never recomputed
	suite.mockRecords.AssertNotCalled(suite.T(), "ListRecords", mock.Anything, mock.Anything)
	suite.mockRecords.AssertNotCalled(suite.T(), "SaveRecord", mock.Anything, mock.Anything)
}

func (suite *RegistryServiceTestSuite) TestUpdateBaseFee_RejectsNonPositive() {
	ctx := context.Background()

	_, err := suite.service.UpdateBaseFee(ctx, "Gold Card", 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RegistryServiceTestSuite) TestIncomeCategories_SeedsBuiltin() {
	ctx := context.Background()
	suite.mockSettings.On("LoadIncomeCategories", ctx).Return([]domain.IncomeCategory{
		{Name: "Freelance", Position: 1},
	}, nil).Once()

	categories, err := suite.service.IncomeCategories(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(categories, 2)
	suite.Equal("Salary", categories[0].Name)
	suite.True(categories[0].Protected)
}

func (suite *RegistryServiceTestSuite) TestRemoveIncomeCategory_BuiltinIsProtected() {
	ctx := context.Background()
	suite.mockSettings.On("LoadIncomeCategories", ctx).Return([]domain.IncomeCategory{}, nil).Once()

	err := suite.service.RemoveIncomeCategory(ctx, "Salary")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrProtected)
}

func (suite *RegistryServiceTestSuite) TestTheme_UnsetReadsEmpty() {
	ctx := context.Background()
	suite.mockSettings.On("LoadTheme", ctx).Return("", apperrors.ErrNotFound).Once()

	theme, err := suite.service.Theme(ctx)

	suite.Require().NoError(err)
	suite.Equal("", theme)
}

func (suite *RegistryServiceTestSuite) TestSetTheme_PassesThrough() {
	ctx := context.Background()
	suite.mockSettings.On("SaveTheme", ctx, "solarized").Return(nil).Once()

	err := suite.service.SetTheme(ctx, "solarized")

	suite.Require().NoError(err)
	suite.mockSettings.AssertExpectations(suite.T())
}

func TestRegistryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceTestSuite))
}
