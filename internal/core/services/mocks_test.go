package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mission_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
)

// --- Mock HierarchyRepository ---

type MockHierarchyRepository struct {
	mock.Mock
}

var _ portsrepo.HierarchyRepositoryFacade = (*MockHierarchyRepository)(nil)

func (m *MockHierarchyRepository) FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Area), args.Error(1)
}

func (m *MockHierarchyRepository) FindDistrictByID(ctx context.Context, districtID string) (*domain.District, error) {
	args := m.Called(ctx, districtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.District), args.Error(1)
}

func (m *MockHierarchyRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

// --- Mock ContributionTypeRepository ---

type MockContributionTypeRepository struct {
	mock.Mock
}

var _ portsrepo.ContributionTypeRepositoryFacade = (*MockContributionTypeRepository)(nil)

func (m *MockContributionTypeRepository) FindContributionTypeByID(ctx context.Context, contributionTypeID string) (*domain.ContributionType, error) {
	args := m.Called(ctx, contributionTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContributionType), args.Error(1)
}

func (m *MockContributionTypeRepository) FindContributionTypeByCode(ctx context.Context, code string) (*domain.ContributionType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContributionType), args.Error(1)
}

func (m *MockContributionTypeRepository) ListContributionTypes(ctx context.Context, includeInactive bool) ([]domain.ContributionType, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContributionType), args.Error(1)
}

func (m *MockContributionTypeRepository) SaveContributionType(ctx context.Context, ct domain.ContributionType) error {
	args := m.Called(ctx, ct)
	return args.Error(0)
}

func (m *MockContributionTypeRepository) UpdateContributionType(ctx context.Context, ct domain.ContributionType) error {
	args := m.Called(ctx, ct)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SumEntries(ctx context.Context, filter portsrepo.LedgerFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, filter portsrepo.LedgerFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) ReverseEntry(ctx context.Context, original domain.LedgerEntry, compensating domain.LedgerEntry) error {
	args := m.Called(ctx, original, compensating)
	return args.Error(0)
}

// --- Mock OpeningBalanceRepository ---

type MockOpeningBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.OpeningBalanceRepositoryFacade = (*MockOpeningBalanceRepository)(nil)

func (m *MockOpeningBalanceRepository) FindOpeningBalanceByID(ctx context.Context, openingBalanceID string) (*domain.OpeningBalance, error) {
	args := m.Called(ctx, openingBalanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalance), args.Error(1)
}

func (m *MockOpeningBalanceRepository) ExistsNonRejected(ctx context.Context, level domain.HierarchyLevel, branchID string, contributionTypeID string) (bool, error) {
	args := m.Called(ctx, level, branchID, contributionTypeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOpeningBalanceRepository) ListOpeningBalances(ctx context.Context, filter portsrepo.OpeningBalanceFilter) ([]domain.OpeningBalance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningBalance), args.Error(1)
}

func (m *MockOpeningBalanceRepository) SaveOpeningBalance(ctx context.Context, ob domain.OpeningBalance) error {
	args := m.Called(ctx, ob)
	return args.Error(0)
}

func (m *MockOpeningBalanceRepository) ApproveOpeningBalance(ctx context.Context, openingBalanceID string, approverID string, approvedAt time.Time, entry domain.LedgerEntry) error {
	args := m.Called(ctx, openingBalanceID, approverID, approvedAt, entry)
	return args.Error(0)
}

func (m *MockOpeningBalanceRepository) RejectOpeningBalance(ctx context.Context, openingBalanceID string, reason string, actorID string, rejectedAt time.Time) error {
	args := m.Called(ctx, openingBalanceID, reason, actorID, rejectedAt)
	return args.Error(0)
}

// --- Mock TransferRepository ---

type MockTransferRepository struct {
	mock.Mock
}

var _ portsrepo.TransferRepositoryFacade = (*MockTransferRepository)(nil)

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.HierarchyTransfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HierarchyTransfer), args.Error(1)
}

func (m *MockTransferRepository) ListTransfers(ctx context.Context, filter portsrepo.TransferFilter) ([]domain.HierarchyTransfer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HierarchyTransfer), args.Error(1)
}

func (m *MockTransferRepository) SaveTransfer(ctx context.Context, transfer domain.HierarchyTransfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) CompleteTransfer(ctx context.Context, transferID string, approverID string, approvedAt time.Time, outEntry domain.LedgerEntry, inEntry domain.LedgerEntry) error {
	args := m.Called(ctx, transferID, approverID, approvedAt, outEntry, inEntry)
	return args.Error(0)
}

func (m *MockTransferRepository) CancelTransfer(ctx context.Context, transferID string, actorID string, cancelledAt time.Time) error {
	args := m.Called(ctx, transferID, actorID, cancelledAt)
	return args.Error(0)
}

// --- Mock RemittanceRepository ---

type MockRemittanceRepository struct {
	mock.Mock
}

var _ portsrepo.RemittanceRepositoryFacade = (*MockRemittanceRepository)(nil)

func (m *MockRemittanceRepository) FindRemittanceByID(ctx context.Context, remittanceID string) (*domain.HierarchyRemittance, error) {
	args := m.Called(ctx, remittanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HierarchyRemittance), args.Error(1)
}

func (m *MockRemittanceRepository) ExistsForPeriod(ctx context.Context, branchID string, destLevel domain.HierarchyLevel, destinationID string, month int, year int) (bool, error) {
	args := m.Called(ctx, branchID, destLevel, destinationID, month, year)
	return args.Bool(0), args.Error(1)
}

func (m *MockRemittanceRepository) ListRemittances(ctx context.Context, filter portsrepo.RemittanceFilter) ([]domain.HierarchyRemittance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HierarchyRemittance), args.Error(1)
}

func (m *MockRemittanceRepository) SaveRemittance(ctx context.Context, remittance domain.HierarchyRemittance) error {
	args := m.Called(ctx, remittance)
	return args.Error(0)
}

func (m *MockRemittanceRepository) RecordPayment(ctx context.Context, remittance domain.HierarchyRemittance, entry domain.LedgerEntry) error {
	args := m.Called(ctx, remittance, entry)
	return args.Error(0)
}

func (m *MockRemittanceRepository) VerifyRemittance(ctx context.Context, remittanceID string, verifierID string, verifiedAt time.Time, entry domain.LedgerEntry) error {
	args := m.Called(ctx, remittanceID, verifierID, verifiedAt, entry)
	return args.Error(0)
}

func (m *MockRemittanceRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock TotalsRepository ---

type MockTotalsRepository struct {
	mock.Mock
}

var _ portsrepo.TotalsRepositoryFacade = (*MockTotalsRepository)(nil)

func (m *MockTotalsRepository) SumVerifiedContributions(ctx context.Context, ownerLevel domain.HierarchyLevel, ownerEntityID string, contributionTypeID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerLevel, ownerEntityID, contributionTypeID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTotalsRepository) SumApprovedExpenditures(ctx context.Context, ownerLevel domain.HierarchyLevel, ownerEntityID string, contributionTypeID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerLevel, ownerEntityID, contributionTypeID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock NotificationDispatcher ---

type MockNotificationDispatcher struct {
	mock.Mock
}

var _ portssvc.NotificationDispatcher = (*MockNotificationDispatcher)(nil)

func (m *MockNotificationDispatcher) Dispatch(ctx context.Context, event portssvc.NotificationEvent) {
	m.Called(ctx, event)
}
