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

type TransferServiceTestSuite struct {
	suite.Suite
	mockTransferRepo  *MockTransferRepository
	mockHierarchyRepo *MockHierarchyRepository
	mockNotifier      *MockNotificationDispatcher
	service           portssvc.TransferSvcFacade

	admin    domain.Actor
	area     domain.Area
	district domain.District
	branch   domain.Branch
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockTransferRepo = new(MockTransferRepository)
	suite.mockHierarchyRepo = new(MockHierarchyRepository)
	suite.mockNotifier = new(MockNotificationDispatcher)
	suite.service = services.NewTransferService(suite.mockTransferRepo, suite.mockHierarchyRepo, suite.mockNotifier)

	suite.admin = domain.Actor{
		UserID: uuid.NewString(),
		Role:   domain.RoleMissionAdmin,
		Level:  domain.LevelMission,
	}
	suite.area = domain.Area{AreaID: uuid.NewString(), Name: "North Area", Code: "NA"}
	suite.district = domain.District{
		DistrictID: uuid.NewString(),
		AreaID:     suite.area.AreaID,
		Name:       "North District",
		Code:       "ND",
	}
	suite.branch = domain.Branch{
		BranchID:   uuid.NewString(),
		DistrictID: suite.district.DistrictID,
		AreaID:     suite.area.AreaID,
		Name:       "North Branch",
		Code:       "NB",
	}
}

func (suite *TransferServiceTestSuite) districtActor() domain.Actor {
	return domain.Actor{
		UserID:   uuid.NewString(),
		Role:     domain.RoleDistrictExecutive,
		Level:    domain.LevelDistrict,
		EntityID: suite.district.DistrictID,
	}
}

func (suite *TransferServiceTestSuite) TestPropose_DistrictToBranch_Success() {
	ctx := context.Background()
	actor := suite.districtActor()
	req := dto.ProposeTransferRequest{
		SourceLevel:         "DISTRICT",
		SourceEntityID:      suite.district.DistrictID,
		DestinationLevel:    "BRANCH",
		DestinationEntityID: suite.branch.BranchID,
		Amount:              decimal.NewFromInt(250),
		Date:                time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Purpose:             "quarterly support",
	}

	suite.mockHierarchyRepo.On("FindDistrictByID", ctx, suite.district.DistrictID).Return(&suite.district, nil).Once()
	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()
	suite.mockTransferRepo.On("SaveTransfer", ctx, mock.MatchedBy(func(t domain.HierarchyTransfer) bool {
		return t.Status == domain.TransferPending && !t.CrossLineage
	})).Return(nil).Once()

	transfer, err := suite.service.ProposeTransfer(ctx, req, actor)

	suite.Require().NoError(err)
	suite.Equal(domain.TransferPending, transfer.Status)
	suite.False(transfer.CrossLineage)
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestPropose_NonAdjacentLevels() {
	req := dto.ProposeTransferRequest{
		SourceLevel:         "MISSION",
		DestinationLevel:    "DISTRICT",
		DestinationEntityID: suite.district.DistrictID,
		Amount:              decimal.NewFromInt(100),
		Date:                time.Now(),
	}

	_, err := suite.service.ProposeTransfer(context.Background(), req, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "adjacent")
}

func (suite *TransferServiceTestSuite) TestPropose_MissionWithEntityID() {
	req := dto.ProposeTransferRequest{
		SourceLevel:         "MISSION",
		SourceEntityID:      uuid.NewString(),
		DestinationLevel:    "AREA",
		DestinationEntityID: suite.area.AreaID,
		Amount:              decimal.NewFromInt(100),
		Date:                time.Now(),
	}

	_, err := suite.service.ProposeTransfer(context.Background(), req, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestPropose_CrossLineageRequiresFlag() {
	ctx := context.Background()
	otherDistrict := domain.District{
		DistrictID: uuid.NewString(),
		AreaID:     uuid.NewString(), // different area
		Name:       "South District",
		Code:       "SD",
	}
	req := dto.ProposeTransferRequest{
		SourceLevel:         "DISTRICT",
		SourceEntityID:      otherDistrict.DistrictID,
		DestinationLevel:    "BRANCH",
		DestinationEntityID: suite.branch.BranchID,
		Amount:              decimal.NewFromInt(100),
		Date:                time.Now(),
	}

	suite.mockHierarchyRepo.On("FindDistrictByID", ctx, otherDistrict.DistrictID).Return(&otherDistrict, nil).Twice()
	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Twice()

	_, err := suite.service.ProposeTransfer(ctx, req, suite.admin)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConsistency)

	// Same movement with explicit consent goes through, flagged.
	req.CrossLineage = true
	suite.mockTransferRepo.On("SaveTransfer", ctx, mock.MatchedBy(func(t domain.HierarchyTransfer) bool {
		return t.CrossLineage
	})).Return(nil).Once()

	transfer, err := suite.service.ProposeTransfer(ctx, req, suite.admin)
	suite.Require().NoError(err)
	suite.True(transfer.CrossLineage)
}

func (suite *TransferServiceTestSuite) TestPropose_ActorOutsideSource() {
	ctx := context.Background()
	otherActor := domain.Actor{
		UserID:   uuid.NewString(),
		Role:     domain.RoleDistrictExecutive,
		Level:    domain.LevelDistrict,
		EntityID: uuid.NewString(),
	}
	req := dto.ProposeTransferRequest{
		SourceLevel:         "DISTRICT",
		SourceEntityID:      suite.district.DistrictID,
		DestinationLevel:    "BRANCH",
		DestinationEntityID: suite.branch.BranchID,
		Amount:              decimal.NewFromInt(100),
		Date:                time.Now(),
	}

	suite.mockHierarchyRepo.On("FindDistrictByID", ctx, suite.district.DistrictID).Return(&suite.district, nil).Once()
	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()

	_, err := suite.service.ProposeTransfer(ctx, req, otherActor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransferServiceTestSuite) pendingTransfer() *domain.HierarchyTransfer {
	return &domain.HierarchyTransfer{
		TransferID:          uuid.NewString(),
		SourceLevel:         domain.LevelDistrict,
		SourceEntityID:      suite.district.DistrictID,
		DestinationLevel:    domain.LevelBranch,
		DestinationEntityID: suite.branch.BranchID,
		Amount:              decimal.NewFromInt(250),
		Date:                time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:              domain.TransferPending,
	}
}

func (suite *TransferServiceTestSuite) TestApprove_PostsPairedEntries() {
	ctx := context.Background()
	transfer := suite.pendingTransfer()

	suite.mockTransferRepo.On("FindTransferByID", ctx, transfer.TransferID).Return(transfer, nil).Once()
	suite.mockTransferRepo.On("CompleteTransfer", ctx, transfer.TransferID, suite.admin.UserID, mock.AnythingOfType("time.Time"),
		mock.MatchedBy(func(out domain.LedgerEntry) bool {
			return out.SourceType == domain.SourceTransferOut &&
				out.OwnerEntityID == suite.district.DistrictID &&
				out.Amount.Equal(decimal.NewFromInt(-250))
		}),
		mock.MatchedBy(func(in domain.LedgerEntry) bool {
			return in.SourceType == domain.SourceTransferIn &&
				in.OwnerEntityID == suite.branch.BranchID &&
				in.Amount.Equal(decimal.NewFromInt(250))
		})).Return(nil).Once()
	suite.mockNotifier.On("Dispatch", ctx, mock.MatchedBy(func(event portssvc.NotificationEvent) bool {
		return event.EventType == "transfer.completed"
	})).Once()

	completed, err := suite.service.ApproveTransfer(ctx, transfer.TransferID, suite.admin)

	suite.Require().NoError(err)
	suite.Equal(domain.TransferCompleted, completed.Status)
	suite.Equal(suite.admin.UserID, completed.ApproverID)
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestApprove_NonAdminForbidden() {
	_, err := suite.service.ApproveTransfer(context.Background(), uuid.NewString(), suite.districtActor())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransferServiceTestSuite) TestApprove_NotPending() {
	ctx := context.Background()
	transfer := suite.pendingTransfer()
	transfer.Status = domain.TransferCompleted

	suite.mockTransferRepo.On("FindTransferByID", ctx, transfer.TransferID).Return(transfer, nil).Once()

	_, err := suite.service.ApproveTransfer(ctx, transfer.TransferID, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "CompleteTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestCancel_Success() {
	ctx := context.Background()
	transfer := suite.pendingTransfer()
	actor := suite.districtActor()

	suite.mockTransferRepo.On("FindTransferByID", ctx, transfer.TransferID).Return(transfer, nil).Once()
	suite.mockHierarchyRepo.On("FindDistrictByID", ctx, suite.district.DistrictID).Return(&suite.district, nil).Once()
	suite.mockTransferRepo.On("CancelTransfer", ctx, transfer.TransferID, actor.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	cancelled, err := suite.service.CancelTransfer(ctx, transfer.TransferID, actor)

	suite.Require().NoError(err)
	suite.Equal(domain.TransferCancelled, cancelled.Status)
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
