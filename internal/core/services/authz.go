package services

import (
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
)

// actorCoversBranch reports whether the actor's authority reaches the given
// branch: mission admins always, otherwise the branch's own executive or the
// executive of its district or area.
func actorCoversBranch(actor domain.Actor, branch *domain.Branch) bool {
	if actor.IsMissionAdmin() {
		return true
	}
	switch actor.Level {
	case domain.LevelArea:
		return actor.EntityID == branch.AreaID
	case domain.LevelDistrict:
		return actor.EntityID == branch.DistrictID
	case domain.LevelBranch:
		return actor.EntityID == branch.BranchID
	default:
		return false
	}
}

// actorCoversEntity reports whether the actor's authority reaches an entity
// at the given level, given the entity's resolved lineage. areaID and
// districtID may be empty when not applicable to the level.
func actorCoversEntity(actor domain.Actor, level domain.HierarchyLevel, entityID, areaID, districtID string) bool {
	if actor.IsMissionAdmin() {
		return true
	}
	if actor.Level == level && actor.EntityID == entityID {
		return true
	}
	switch actor.Level {
	case domain.LevelArea:
		return areaID != "" && actor.EntityID == areaID
	case domain.LevelDistrict:
		return districtID != "" && actor.EntityID == districtID
	default:
		return false
	}
}
