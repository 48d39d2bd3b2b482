package services

import (
	"context"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/SscSPs/mission_finance_app/internal/dto"
)

// OpeningBalanceSvcFacade is the one-time, approval-gated entry of
// pre-system cash into the ledger.
type OpeningBalanceSvcFacade interface {
	SubmitOpeningBalance(ctx context.Context, req dto.SubmitOpeningBalanceRequest, actor domain.Actor) (*domain.OpeningBalance, error)
	ApproveOpeningBalance(ctx context.Context, openingBalanceID string, actor domain.Actor) (*domain.OpeningBalance, error)
	RejectOpeningBalance(ctx context.Context, openingBalanceID string, reason string, actor domain.Actor) (*domain.OpeningBalance, error)
	GetOpeningBalanceByID(ctx context.Context, openingBalanceID string) (*domain.OpeningBalance, error)
	ListOpeningBalances(ctx context.Context, filter dto.ListOpeningBalancesParams) ([]domain.OpeningBalance, error)
}
