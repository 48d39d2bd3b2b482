package handlers_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/apperrors"
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
	"github.com/SscSPs/mission_finance_app/internal/dto"
	"github.com/SscSPs/mission_finance_app/internal/handlers"
	"github.com/SscSPs/mission_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock OpeningBalanceService ---
type MockOpeningBalanceService struct {
	mock.Mock
}

func (m *MockOpeningBalanceService) SubmitOpeningBalance(ctx context.Context, req dto.SubmitOpeningBalanceRequest, actor domain.Actor) (*domain.OpeningBalance, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalance), args.Error(1)
}
func (m *MockOpeningBalanceService) ApproveOpeningBalance(ctx context.Context, openingBalanceID string, actor domain.Actor) (*domain.OpeningBalance, error) {
	args := m.Called(ctx, openingBalanceID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalance), args.Error(1)
}
func (m *MockOpeningBalanceService) RejectOpeningBalance(ctx context.Context, openingBalanceID string, reason string, actor domain.Actor) (*domain.OpeningBalance, error) {
	args := m.Called(ctx, openingBalanceID, reason, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalance), args.Error(1)
}
func (m *MockOpeningBalanceService) GetOpeningBalanceByID(ctx context.Context, openingBalanceID string) (*domain.OpeningBalance, error) {
	args := m.Called(ctx, openingBalanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalance), args.Error(1)
}
func (m *MockOpeningBalanceService) ListOpeningBalances(ctx context.Context, filter dto.ListOpeningBalancesParams) ([]domain.OpeningBalance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningBalance), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.OpeningBalanceSvcFacade = (*MockOpeningBalanceService)(nil)

// --- Test Suite ---
type OpeningBalanceHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockSvc   *MockOpeningBalanceService
	jwtSecret string
}

// generateTestToken creates a signed token carrying the actor claims the
// middleware expects.
func (suite *OpeningBalanceHandlerTestSuite) generateTestToken(userID string, role domain.Role, level domain.HierarchyLevel, entityID string) string {
	claims := middleware.ActorClaims{
		Role:     string(role),
		Level:    string(level),
		EntityID: entityID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "mfa-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *OpeningBalanceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockSvc = new(MockOpeningBalanceService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterOpeningBalanceRoutes(v1, suite.mockSvc)
}

func (suite *OpeningBalanceHandlerTestSuite) doRequest(method, url, token string, body *strings.Reader) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *OpeningBalanceHandlerTestSuite) TestApproveOpeningBalance_Success() {
	openingBalanceID := uuid.NewString()
	approverID := uuid.NewString()
	approvedAt := time.Now()

	approved := &domain.OpeningBalance{
		OpeningBalanceID:   openingBalanceID,
		Level:              domain.LevelMission,
		Amount:             decimal.NewFromInt(5000),
		ContributionTypeID: uuid.NewString(),
		Date:               time.Now(),
		Status:             domain.OpeningBalanceApproved,
		ApproverID:         approverID,
		ApprovedAt:         &approvedAt,
		LedgerEntryID:      uuid.NewString(),
	}

	suite.mockSvc.On("ApproveOpeningBalance",
		mock.Anything,
		openingBalanceID,
		mock.MatchedBy(func(a domain.Actor) bool {
			return a.UserID == approverID && a.Role == domain.RoleMissionAdmin
		}),
	).Return(approved, nil).Once()

	token := suite.generateTestToken(approverID, domain.RoleMissionAdmin, domain.LevelMission, "")
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/opening-balances/%s/approve", openingBalanceID), token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.OpeningBalanceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(openingBalanceID, resp.OpeningBalanceID)
	suite.Equal(string(domain.OpeningBalanceApproved), resp.Status)
	suite.NotEmpty(resp.LedgerEntryID)

	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *OpeningBalanceHandlerTestSuite) TestApproveOpeningBalance_SecondAttemptConflicts() {
	openingBalanceID := uuid.NewString()
	approverID := uuid.NewString()

	suite.mockSvc.On("ApproveOpeningBalance", mock.Anything, openingBalanceID, mock.Anything).
		Return(nil, fmt.Errorf("%w: opening balance is not pending", apperrors.ErrConflict)).Once()

	token := suite.generateTestToken(approverID, domain.RoleMissionAdmin, domain.LevelMission, "")
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/opening-balances/%s/approve", openingBalanceID), token, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *OpeningBalanceHandlerTestSuite) TestRejectOpeningBalance_ReasonRequired() {
	openingBalanceID := uuid.NewString()
	token := suite.generateTestToken(uuid.NewString(), domain.RoleMissionAdmin, domain.LevelMission, "")

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/opening-balances/%s/reject", openingBalanceID), token, strings.NewReader(`{}`))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "RejectOpeningBalance")
}

func (suite *OpeningBalanceHandlerTestSuite) TestExportOpeningBalances_CSV() {
	branchID := uuid.NewString()
	typeID := uuid.NewString()
	records := []domain.OpeningBalance{
		{
			OpeningBalanceID:   uuid.NewString(),
			Level:              domain.LevelBranch,
			BranchID:           branchID,
			Amount:             decimal.RequireFromString("1250.50"),
			ContributionTypeID: typeID,
			Date:               time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			Description:        "Pre-system cash on hand",
			Status:             domain.OpeningBalanceApproved,
		},
	}

	suite.mockSvc.On("ListOpeningBalances",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListOpeningBalancesParams) bool {
			return p.BranchID != nil && *p.BranchID == branchID
		}),
	).Return(records, nil).Once()

	token := suite.generateTestToken(uuid.NewString(), domain.RoleMissionAdmin, domain.LevelMission, "")
	w := suite.doRequest(http.MethodGet, "/api/v1/opening-balances/export?branchID="+branchID, token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "text/csv")

	rows, err := csv.NewReader(w.Body).ReadAll()
	suite.NoError(err)
	suite.Len(rows, 2)
	suite.Equal([]string{"level", "branch_id", "contribution_type_id", "amount", "date", "status", "description"}, rows[0])
	suite.Equal("BRANCH", rows[1][0])
	suite.Equal(branchID, rows[1][1])
	suite.Equal("1250.50", rows[1][3])
	suite.Equal("2025-04-01", rows[1][4])
}

func (suite *OpeningBalanceHandlerTestSuite) TestSubmitOpeningBalance_Unauthorized() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/opening-balances", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "SubmitOpeningBalance")
}

// --- Run Test Suite ---
func TestOpeningBalanceHandler(t *testing.T) {
	suite.Run(t, new(OpeningBalanceHandlerTestSuite))
}
