package services

import (
	"context"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/SscSPs/mission_finance_app/internal/dto"
)

// TransferSvcFacade is the validated, approval-gated movement of funds
// between adjacent hierarchy levels.
type TransferSvcFacade interface {
	ProposeTransfer(ctx context.Context, req dto.ProposeTransferRequest, actor domain.Actor) (*domain.HierarchyTransfer, error)
	ApproveTransfer(ctx context.Context, transferID string, actor domain.Actor) (*domain.HierarchyTransfer, error)
	CancelTransfer(ctx context.Context, transferID string, actor domain.Actor) (*domain.HierarchyTransfer, error)
	GetTransferByID(ctx context.Context, transferID string) (*domain.HierarchyTransfer, error)
	ListTransfers(ctx context.Context, filter dto.ListTransfersParams) ([]domain.HierarchyTransfer, error)
}
