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

type RemittanceServiceTestSuite struct {
	suite.Suite
	mockRemittanceRepo *MockRemittanceRepository
	mockHierarchyRepo  *MockHierarchyRepository
	mockNotifier       *MockNotificationDispatcher
	service            portssvc.RemittanceSvcFacade

	admin  domain.Actor
	branch domain.Branch
}

func (suite *RemittanceServiceTestSuite) SetupTest() {
	suite.mockRemittanceRepo = new(MockRemittanceRepository)
	suite.mockHierarchyRepo = new(MockHierarchyRepository)
	suite.mockNotifier = new(MockNotificationDispatcher)
	suite.service = services.NewRemittanceService(suite.mockRemittanceRepo, suite.mockHierarchyRepo, suite.mockNotifier)

	suite.admin = domain.Actor{
		UserID: uuid.NewString(),
		Role:   domain.RoleMissionAdmin,
		Level:  domain.LevelMission,
	}
	suite.branch = domain.Branch{
		BranchID:   uuid.NewString(),
		DistrictID: uuid.NewString(),
		AreaID:     uuid.NewString(),
		Name:       "East Branch",
		Code:       "EB",
	}
}

func (suite *RemittanceServiceTestSuite) branchActor() domain.Actor {
	return domain.Actor{
		UserID:   uuid.NewString(),
		Role:     domain.RoleBranchExecutive,
		Level:    domain.LevelBranch,
		EntityID: suite.branch.BranchID,
	}
}

func (suite *RemittanceServiceTestSuite) districtActor() domain.Actor {
	return domain.Actor{
		UserID:   uuid.NewString(),
		Role:     domain.RoleDistrictExecutive,
		Level:    domain.LevelDistrict,
		EntityID: suite.branch.DistrictID,
	}
}

func (suite *RemittanceServiceTestSuite) scheduleRequest() dto.ScheduleRemittanceRequest {
	return dto.ScheduleRemittanceRequest{
		BranchID:         suite.branch.BranchID,
		DestinationLevel: "DISTRICT",
		DestinationID:    suite.branch.DistrictID,
		Month:            3,
		Year:             2025,
		AmountDue:        decimal.NewFromInt(1200),
	}
}

func (suite *RemittanceServiceTestSuite) TestSchedule_Success() {
	ctx := context.Background()
	actor := suite.districtActor()
	req := suite.scheduleRequest()

	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()
	suite.mockRemittanceRepo.On("ExistsForPeriod", ctx, suite.branch.BranchID, domain.LevelDistrict, suite.branch.DistrictID, 3, 2025).Return(false, nil).Once()
	suite.mockRemittanceRepo.On("SaveRemittance", ctx, mock.MatchedBy(func(r domain.HierarchyRemittance) bool {
		return r.Status == domain.RemittancePending && r.AmountSent.IsZero()
	})).Return(nil).Once()

	remittance, err := suite.service.ScheduleRemittance(ctx, req, actor)

	suite.Require().NoError(err)
	suite.Equal(domain.RemittancePending, remittance.Status)
	suite.True(remittance.Outstanding().Equal(decimal.NewFromInt(1200)))
	suite.mockRemittanceRepo.AssertExpectations(suite.T())
}

func (suite *RemittanceServiceTestSuite) TestSchedule_DestinationOffLineage() {
	ctx := context.Background()
	req := suite.scheduleRequest()
	req.DestinationID = uuid.NewString() // not the branch's district

	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()

	_, err := suite.service.ScheduleRemittance(ctx, req, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConsistency)
}

func (suite *RemittanceServiceTestSuite) TestSchedule_DuplicatePeriod() {
	ctx := context.Background()
	req := suite.scheduleRequest()

	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()
	suite.mockRemittanceRepo.On("ExistsForPeriod", ctx, suite.branch.BranchID, domain.LevelDistrict, suite.branch.DistrictID, 3, 2025).Return(true, nil).Once()

	_, err := suite.service.ScheduleRemittance(ctx, req, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *RemittanceServiceTestSuite) TestSchedule_BadMonth() {
	req := suite.scheduleRequest()
	req.Month = 13

	_, err := suite.service.ScheduleRemittance(context.Background(), req, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RemittanceServiceTestSuite) pendingRemittance() *domain.HierarchyRemittance {
	return &domain.HierarchyRemittance{
		RemittanceID:     uuid.NewString(),
		BranchID:         suite.branch.BranchID,
		DestinationLevel: domain.LevelDistrict,
		DestinationID:    suite.branch.DistrictID,
		Month:            3,
		Year:             2025,
		AmountDue:        decimal.NewFromInt(1200),
		AmountSent:       decimal.Zero,
		Status:           domain.RemittancePending,
	}
}

func (suite *RemittanceServiceTestSuite) TestRecordPayment_PostsNegativeBranchEntry() {
	ctx := context.Background()
	remittance := suite.pendingRemittance()
	actor := suite.branchActor()
	req := dto.RecordPaymentRequest{
		AmountSent:    decimal.NewFromInt(1200),
		PaymentDate:   time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "bank_transfer",
	}

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()
	suite.mockRemittanceRepo.On("RecordPayment", ctx,
		mock.MatchedBy(func(r domain.HierarchyRemittance) bool {
			return r.Status == domain.RemittanceSent && r.AmountSent.Equal(decimal.NewFromInt(1200))
		}),
		mock.MatchedBy(func(entry domain.LedgerEntry) bool {
			return entry.SourceType == domain.SourceRemittanceSent &&
				entry.OwnerLevel == domain.LevelBranch &&
				entry.Amount.Equal(decimal.NewFromInt(-1200))
		})).Return(nil).Once()
	suite.mockNotifier.On("Dispatch", ctx, mock.MatchedBy(func(event portssvc.NotificationEvent) bool {
		return event.EventType == "remittance.sent"
	})).Once()

	sent, err := suite.service.RecordPayment(ctx, remittance.RemittanceID, req, actor)

	suite.Require().NoError(err)
	suite.Equal(domain.RemittanceSent, sent.Status)
	suite.True(sent.Outstanding().IsZero())
	suite.mockRemittanceRepo.AssertExpectations(suite.T())
}

// Overdue is not terminal; a late payment still transitions to Sent.
func (suite *RemittanceServiceTestSuite) TestRecordPayment_OverdueStillAccepts() {
	ctx := context.Background()
	remittance := suite.pendingRemittance()
	remittance.Status = domain.RemittanceOverdue
	actor := suite.branchActor()
	req := dto.RecordPaymentRequest{
		AmountSent:    decimal.NewFromInt(600),
		PaymentDate:   time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "cash",
	}

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()
	suite.mockRemittanceRepo.On("RecordPayment", ctx, mock.AnythingOfType("domain.HierarchyRemittance"), mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()
	suite.mockNotifier.On("Dispatch", ctx, mock.Anything).Once()

	sent, err := suite.service.RecordPayment(ctx, remittance.RemittanceID, req, actor)

	suite.Require().NoError(err)
	suite.Equal(domain.RemittanceSent, sent.Status)
	suite.True(sent.Outstanding().Equal(decimal.NewFromInt(600)))
}

func (suite *RemittanceServiceTestSuite) TestRecordPayment_VerifiedRejected() {
	ctx := context.Background()
	remittance := suite.pendingRemittance()
	remittance.Status = domain.RemittanceVerified

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()

	_, err := suite.service.RecordPayment(ctx, remittance.RemittanceID, dto.RecordPaymentRequest{
		AmountSent:    decimal.NewFromInt(100),
		PaymentDate:   time.Now(),
		PaymentMethod: "cash",
	}, suite.branchActor())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *RemittanceServiceTestSuite) TestVerify_PostsDestinationEntry() {
	ctx := context.Background()
	remittance := suite.pendingRemittance()
	remittance.Status = domain.RemittanceSent
	remittance.AmountSent = decimal.NewFromInt(1200)
	paymentDate := time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)
	remittance.PaymentDate = &paymentDate
	actor := suite.districtActor()

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()
	suite.mockRemittanceRepo.On("VerifyRemittance", ctx, remittance.RemittanceID, actor.UserID, mock.AnythingOfType("time.Time"),
		mock.MatchedBy(func(entry domain.LedgerEntry) bool {
			return entry.SourceType == domain.SourceRemittanceReceived &&
				entry.OwnerLevel == domain.LevelDistrict &&
				entry.OwnerEntityID == suite.branch.DistrictID &&
				entry.Amount.Equal(decimal.NewFromInt(1200))
		})).Return(nil).Once()
	suite.mockNotifier.On("Dispatch", ctx, mock.MatchedBy(func(event portssvc.NotificationEvent) bool {
		return event.EventType == "remittance.verified"
	})).Once()

	verified, err := suite.service.VerifyRemittance(ctx, remittance.RemittanceID, actor)

	suite.Require().NoError(err)
	suite.Equal(domain.RemittanceVerified, verified.Status)
	suite.Equal(actor.UserID, verified.VerifierID)
	suite.mockRemittanceRepo.AssertExpectations(suite.T())
}

// A district executive has no authority over an area-bound remittance even
// though the branch sits in their district.
func (suite *RemittanceServiceTestSuite) TestVerify_DistrictExecCannotVerifyAreaRemittance() {
	ctx := context.Background()
	remittance := suite.pendingRemittance()
	remittance.DestinationLevel = domain.LevelArea
	remittance.DestinationID = suite.branch.AreaID
	remittance.Status = domain.RemittanceSent
	remittance.AmountSent = decimal.NewFromInt(1200)

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()

	_, err := suite.service.VerifyRemittance(ctx, remittance.RemittanceID, suite.districtActor())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRemittanceRepo.AssertNotCalled(suite.T(), "VerifyRemittance")
}

// An area executive still verifies district-bound remittances of districts in
// their area.
func (suite *RemittanceServiceTestSuite) TestVerify_AreaExecVerifiesDistrictRemittance() {
	ctx := context.Background()
	remittance := suite.pendingRemittance()
	remittance.Status = domain.RemittanceSent
	remittance.AmountSent = decimal.NewFromInt(1200)
	actor := domain.Actor{
		UserID:   uuid.NewString(),
		Role:     domain.RoleAreaExecutive,
		Level:    domain.LevelArea,
		EntityID: suite.branch.AreaID,
	}

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()
	suite.mockRemittanceRepo.On("VerifyRemittance", ctx, remittance.RemittanceID, actor.UserID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()
	suite.mockNotifier.On("Dispatch", ctx, mock.Anything).Once()

	verified, err := suite.service.VerifyRemittance(ctx, remittance.RemittanceID, actor)

	suite.Require().NoError(err)
	suite.Equal(domain.RemittanceVerified, verified.Status)
}

func (suite *RemittanceServiceTestSuite) TestSchedule_DistrictExecCannotScheduleAreaRemittance() {
	ctx := context.Background()
	req := suite.scheduleRequest()
	req.DestinationLevel = "AREA"
	req.DestinationID = suite.branch.AreaID

	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()

	_, err := suite.service.ScheduleRemittance(ctx, req, suite.districtActor())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRemittanceRepo.AssertNotCalled(suite.T(), "SaveRemittance")
}

// A branch executive cannot verify receipt on the destination's behalf.
func (suite *RemittanceServiceTestSuite) TestVerify_SenderForbidden() {
	ctx := context.Background()
	remittance := suite.pendingRemittance()
	remittance.Status = domain.RemittanceSent

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockHierarchyRepo.On("FindBranchByID", ctx, suite.branch.BranchID).Return(&suite.branch, nil).Once()

	_, err := suite.service.VerifyRemittance(ctx, remittance.RemittanceID, suite.branchActor())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *RemittanceServiceTestSuite) TestVerify_NotSent() {
	ctx := context.Background()
	remittance := suite.pendingRemittance()

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()

	_, err := suite.service.VerifyRemittance(ctx, remittance.RemittanceID, suite.districtActor())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *RemittanceServiceTestSuite) TestMarkOverdue_ReturnsCount() {
	ctx := context.Background()
	asOf := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)

	suite.mockRemittanceRepo.On("MarkOverdue", ctx, asOf).Return(int64(3), nil).Once()

	count, err := suite.service.MarkOverdue(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(int64(3), count)
}

// Running the sweep twice transitions nothing new the second time.
func (suite *RemittanceServiceTestSuite) TestMarkOverdue_Idempotent() {
	ctx := context.Background()
	asOf := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)

	suite.mockRemittanceRepo.On("MarkOverdue", ctx, asOf).Return(int64(2), nil).Once()
	suite.mockRemittanceRepo.On("MarkOverdue", ctx, asOf).Return(int64(0), nil).Once()

	first, err := suite.service.MarkOverdue(ctx, asOf)
	suite.Require().NoError(err)
	suite.Equal(int64(2), first)

	second, err := suite.service.MarkOverdue(ctx, asOf)
	suite.Require().NoError(err)
	suite.Equal(int64(0), second)
}

func TestRemittanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RemittanceServiceTestSuite))
}
