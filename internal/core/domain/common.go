package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// HierarchyLevel identifies a tier of the organization, Mission at the top
// and Branch at the bottom.
type HierarchyLevel string

const (
	LevelMission  HierarchyLevel = "MISSION"
	LevelArea     HierarchyLevel = "AREA"
	LevelDistrict HierarchyLevel = "DISTRICT"
	LevelBranch   HierarchyLevel = "BRANCH"
)

// rank orders levels root-first. Used for adjacency checks.
var levelRank = map[HierarchyLevel]int{
	LevelMission:  0,
	LevelArea:     1,
	LevelDistrict: 2,
	LevelBranch:   3,
}

// IsValid reports whether the level is one of the four known tiers.
func (l HierarchyLevel) IsValid() bool {
	_, ok := levelRank[l]
	return ok
}

// Rank returns the depth of the level, Mission being 0.
func (l HierarchyLevel) Rank() int {
	return levelRank[l]
}

// LevelsAdjacent reports whether two levels are direct neighbours in the
// hierarchy (Mission-Area, Area-District, District-Branch, either direction).
func LevelsAdjacent(a, b HierarchyLevel) bool {
	ra, okA := levelRank[a]
	rb, okB := levelRank[b]
	if !okA || !okB {
		return false
	}
	diff := ra - rb
	return diff == 1 || diff == -1
}

// Role identifies the capability class of an acting user.
type Role string

const (
	RoleMissionAdmin      Role = "MISSION_ADMIN"
	RoleAreaExecutive     Role = "AREA_EXECUTIVE"
	RoleDistrictExecutive Role = "DISTRICT_EXECUTIVE"
	RoleBranchExecutive   Role = "BRANCH_EXECUTIVE"
)

// Actor is the authenticated user performing a command. Identity management
// lives outside this core; commands only see the resolved scope.
type Actor struct {
	UserID   string         `json:"userID"`
	Role     Role           `json:"role"`
	Level    HierarchyLevel `json:"level"`
	EntityID string         `json:"entityID"` // empty for Mission-level actors
}

// IsMissionAdmin reports whether the actor holds mission-wide authority.
func (a Actor) IsMissionAdmin() bool {
	return a.Role == RoleMissionAdmin
}

// ScopedTo reports whether the actor's authority covers the given entity at
// the given level. Mission admins cover everything; other actors only the
// entity they are assigned to.
func (a Actor) ScopedTo(level HierarchyLevel, entityID string) bool {
	if a.IsMissionAdmin() {
		return true
	}
	return a.Level == level && a.EntityID == entityID
}

// EntityScope describes a viewer's position in the hierarchy with its full
// lineage, used for contribution-type visibility resolution.
type EntityScope struct {
	Level      HierarchyLevel `json:"level"`
	AreaID     string         `json:"areaID,omitempty"`
	DistrictID string         `json:"districtID,omitempty"`
	BranchID   string         `json:"branchID,omitempty"`
}

// OwnEntityID returns the identifier of the scope's own entity, empty for
// Mission.
func (s EntityScope) OwnEntityID() string {
	switch s.Level {
	case LevelArea:
		return s.AreaID
	case LevelDistrict:
		return s.DistrictID
	case LevelBranch:
		return s.BranchID
	default:
		return ""
	}
}
