package repositories

import (
	"context"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
)

// HierarchyReader exposes the organization tree to the write paths. The tree
// itself is maintained by an external collaborator; this core only reads it.
type HierarchyReader interface {
	// FindAreaByID retrieves an area by its identifier.
	FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error)

	// FindDistrictByID retrieves a district by its identifier.
	FindDistrictByID(ctx context.Context, districtID string) (*domain.District, error)

	// FindBranchByID retrieves a branch with its district and area lineage resolved.
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
}

// HierarchyRepositoryFacade combines all hierarchy repository interfaces.
type HierarchyRepositoryFacade interface {
	HierarchyReader
}
