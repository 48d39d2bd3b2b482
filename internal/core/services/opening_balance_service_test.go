package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/mission_finance_app/internal/apperrors"
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
	"github.com/SscSPs/mission_finance_app/internal/core/services"
	"github.com/SscSPs/mission_finance_app/internal/dto"
)

type OpeningBalanceServiceTestSuite struct {
	suite.Suite
	mockOBRepo        *MockOpeningBalanceRepository
	mockCTRepo        *MockContributionTypeRepository
	mockHierarchyRepo *MockHierarchyRepository
	mockNotifier      *MockNotificationDispatcher
	service           portssvc.OpeningBalanceSvcFacade

	admin  domain.Actor
	branch domain.Branch
	ctID   string
}

func (suite *OpeningBalanceServiceTestSuite) SetupTest() {
	suite.mockOBRepo = new(MockOpeningBalanceRepository)
	suite.mockCTRepo = new(MockContributionTypeRepository)
	suite.mockHierarchyRepo = new(MockHierarchyRepository)
	suite.mockNotifier = new(MockNotificationDispatcher)
	suite.service = services.NewOpeningBalanceService(suite.mockOBRepo, suite.mockCTRepo, suite.mockHierarchyRepo, suite.mockNotifier)

	suite.admin = domain.Actor{
		UserID: uuid.NewString(),
		Role:   domain.RoleMissionAdmin,
		Level:  domain.LevelMission,
	}
	suite.branch = domain.Branch{
		BranchID:   uuid.NewString(),
		DistrictID: uuid.NewString(),
		AreaID:     uuid.NewString(),
		Name:       "Central Branch",
		Code:       "CEN",
	}
	suite.ctID = uuid.NewString()
}

func (suite *OpeningBalanceServiceTestSuite) branchActor() domain.Actor {
	return domain.Actor{
		UserID:   uuid.NewString(),
		Role:     domain.RoleBranchExecutive,
		Level:    domain.LevelBranch,
		EntityID: suite.branch.BranchID,
	}
}

func (suite *OpeningBalanceServiceTestSuite) submitRequest() dto.SubmitOpeningBalanceRequest {
	return dto.SubmitOpeningBalanceRequest{
		Level:              "BRANCH",
		BranchID:           suite.branch.BranchID,
		Amount:             decimal.NewFromInt(5000),
		ContributionTypeID: suite.ctID,
		Date:               time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *OpeningBalanceServiceTestSuite) TestSubmit_Success() {
	ctx := context.Background()
	actor := suite.branchActor()
	req := suite.submitRequest()

	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()
	suite.mockCTRepo.On("FindContributionTypeByID", ctx, suite.ctID).Return(&domain.ContributionType{ContributionTypeID: suite.ctID}, nil).Once()
	suite.mockOBRepo.On("ExistsNonRejected", ctx, domain.LevelBranch, suite.branch.BranchID, suite.ctID).Return(false, nil).Once()
	suite.mockOBRepo.On("SaveOpeningBalance", ctx, mock.AnythingOfType("domain.OpeningBalance")).Return(nil).Once()

	ob, err := suite.service.SubmitOpeningBalance(ctx, req, actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(ob)
	suite.Equal(domain.OpeningBalancePending, ob.Status)
	suite.Equal(actor.UserID, ob.CreatedBy)
	suite.True(ob.Amount.Equal(decimal.NewFromInt(5000)))
	suite.mockOBRepo.AssertExpectations(suite.T())
}

func (suite *OpeningBalanceServiceTestSuite) TestSubmit_NonPositiveAmount() {
	req := suite.submitRequest()
	req.Amount = decimal.Zero

	_, err := suite.service.SubmitOpeningBalance(context.Background(), req, suite.branchActor())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *OpeningBalanceServiceTestSuite) TestSubmit_MissionWithBranchID() {
	req := suite.submitRequest()
	req.Level = "MISSION"

	_, err := suite.service.SubmitOpeningBalance(context.Background(), req, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *OpeningBalanceServiceTestSuite) TestSubmit_ActorOutsideBranch() {
	ctx := context.Background()
	outsider := domain.Actor{
		UserID:   uuid.NewString(),
		Role:     domain.RoleBranchExecutive,
		Level:    domain.LevelBranch,
		EntityID: uuid.NewString(), // a different branch
	}
	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()

	_, err := suite.service.SubmitOpeningBalance(ctx, suite.submitRequest(), outsider)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *OpeningBalanceServiceTestSuite) TestSubmit_DuplicateBlocked() {
	ctx := context.Background()
	actor := suite.branchActor()

	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()
	suite.mockCTRepo.On("FindContributionTypeByID", ctx, suite.ctID).Return(&domain.ContributionType{ContributionTypeID: suite.ctID}, nil).Once()
	suite.mockOBRepo.On("ExistsNonRejected", ctx, domain.LevelBranch, suite.branch.BranchID, suite.ctID).Return(true, nil).Once()

	_, err := suite.service.SubmitOpeningBalance(ctx, suite.submitRequest(), actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockOBRepo.AssertNotCalled(suite.T(), "SaveOpeningBalance", mock.Anything, mock.Anything)
}

func (suite *OpeningBalanceServiceTestSuite) pendingOB() *domain.OpeningBalance {
	return &domain.OpeningBalance{
		OpeningBalanceID:   uuid.NewString(),
		Level:              domain.LevelBranch,
		BranchID:           suite.branch.BranchID,
		Amount:             decimal.NewFromInt(5000),
		ContributionTypeID: suite.ctID,
		Date:               time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:             domain.OpeningBalancePending,
	}
}

func (suite *OpeningBalanceServiceTestSuite) TestApprove_Success() {
	ctx := context.Background()
	ob := suite.pendingOB()

	suite.mockOBRepo.On("FindOpeningBalanceByID", ctx, ob.OpeningBalanceID).Return(ob, nil).Once()
	suite.mockOBRepo.On("ApproveOpeningBalance", ctx, ob.OpeningBalanceID, suite.admin.UserID, mock.AnythingOfType("time.Time"), mock.MatchedBy(func(entry domain.LedgerEntry) bool {
		return entry.EntryType == domain.EntryCash &&
			entry.SourceType == domain.SourceOpeningBalance &&
			entry.OwnerLevel == domain.LevelBranch &&
			entry.OwnerEntityID == suite.branch.BranchID &&
			entry.Amount.Equal(decimal.NewFromInt(5000))
	})).Return(nil).Once()
	suite.mockNotifier.On("Dispatch", ctx, mock.MatchedBy(func(event portssvc.NotificationEvent) bool {
		return event.EventType == "opening_balance.approved"
	})).Once()

	approved, err := suite.service.ApproveOpeningBalance(ctx, ob.OpeningBalanceID, suite.admin)

	suite.Require().NoError(err)
	suite.Equal(domain.OpeningBalanceApproved, approved.Status)
	suite.Equal(suite.admin.UserID, approved.ApproverID)
	suite.NotEmpty(approved.LedgerEntryID)
	suite.mockOBRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *OpeningBalanceServiceTestSuite) TestApprove_NonAdminForbidden() {
	_, err := suite.service.ApproveOpeningBalance(context.Background(), uuid.NewString(), suite.branchActor())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *OpeningBalanceServiceTestSuite) TestApprove_AlreadyApproved() {
	ctx := context.Background()
	ob := suite.pendingOB()
	ob.Status = domain.OpeningBalanceApproved

	suite.mockOBRepo.On("FindOpeningBalanceByID", ctx, ob.OpeningBalanceID).Return(ob, nil).Once()

	_, err := suite.service.ApproveOpeningBalance(ctx, ob.OpeningBalanceID, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockOBRepo.AssertNotCalled(suite.T(), "ApproveOpeningBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// The repository enforces the status guard inside its transaction; the second
// of two racing approvals surfaces ErrConflict even though both read Pending.
func (suite *OpeningBalanceServiceTestSuite) TestApprove_LostRaceSurfacesConflict() {
	ctx := context.Background()
	ob := suite.pendingOB()

	suite.mockOBRepo.On("FindOpeningBalanceByID", ctx, ob.OpeningBalanceID).Return(ob, nil).Once()
	suite.mockOBRepo.On("ApproveOpeningBalance", ctx, ob.OpeningBalanceID, suite.admin.UserID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.LedgerEntry")).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.ApproveOpeningBalance(ctx, ob.OpeningBalanceID, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (suite *OpeningBalanceServiceTestSuite) TestReject_RequiresReason() {
	_, err := suite.service.RejectOpeningBalance(context.Background(), uuid.NewString(), "", suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *OpeningBalanceServiceTestSuite) TestReject_Success() {
	ctx := context.Background()
	ob := suite.pendingOB()

	suite.mockOBRepo.On("FindOpeningBalanceByID", ctx, ob.OpeningBalanceID).Return(ob, nil).Once()
	suite.mockOBRepo.On("RejectOpeningBalance", ctx, ob.OpeningBalanceID, "amount disputed", suite.admin.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifier.On("Dispatch", ctx, mock.MatchedBy(func(event portssvc.NotificationEvent) bool {
		return event.EventType == "opening_balance.rejected"
	})).Once()

	rejected, err := suite.service.RejectOpeningBalance(ctx, ob.OpeningBalanceID, "amount disputed", suite.admin)

	suite.Require().NoError(err)
	suite.Equal(domain.OpeningBalanceRejected, rejected.Status)
	suite.Equal("amount disputed", rejected.RejectionReason)
	suite.mockOBRepo.AssertExpectations(suite.T())
}

func TestOpeningBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OpeningBalanceServiceTestSuite))
}
