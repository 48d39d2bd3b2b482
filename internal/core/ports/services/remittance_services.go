package services

import (
	"context"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/SscSPs/mission_finance_app/internal/dto"
)

// RemittanceSvcFacade tracks periodic obligations of a branch toward its
// area or district and their settlement.
type RemittanceSvcFacade interface {
	ScheduleRemittance(ctx context.Context, req dto.ScheduleRemittanceRequest, actor domain.Actor) (*domain.HierarchyRemittance, error)
	RecordPayment(ctx context.Context, remittanceID string, req dto.RecordPaymentRequest, actor domain.Actor) (*domain.HierarchyRemittance, error)
	VerifyRemittance(ctx context.Context, remittanceID string, actor domain.Actor) (*domain.HierarchyRemittance, error)

	// MarkOverdue transitions Pending remittances past their due date to
	// Overdue. Idempotent; safe to run from a scheduler.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)

	GetRemittanceByID(ctx context.Context, remittanceID string) (*domain.HierarchyRemittance, error)
	ListRemittances(ctx context.Context, filter dto.ListRemittancesParams) ([]domain.HierarchyRemittance, error)
}
