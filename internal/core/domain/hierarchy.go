package domain

// Area is a top-tier subdivision of the Mission.
type Area struct {
	AreaID string `json:"areaID"` // Primary Key (UUID)
	Name   string `json:"name"`
	Code   string `json:"code"` // Unique short code
	AuditFields
}

// District belongs to exactly one Area.
type District struct {
	DistrictID string `json:"districtID"` // Primary Key (UUID)
	AreaID     string `json:"areaID"`     // FK -> Area (Not Null)
	Name       string `json:"name"`
	Code       string `json:"code"`
	AuditFields
}

// Branch belongs to exactly one District. AreaID is resolved through the
// district so callers get the full lineage in one read.
type Branch struct {
	BranchID   string `json:"branchID"` // Primary Key (UUID)
	DistrictID string `json:"districtID"`
	AreaID     string `json:"areaID"` // Derived via district join
	Name       string `json:"name"`
	Code       string `json:"code"`
	AuditFields
}

// InArea reports whether the branch sits under the given area.
func (b Branch) InArea(areaID string) bool {
	return b.AreaID == areaID
}

// InDistrict reports whether the branch sits under the given district.
func (b Branch) InDistrict(districtID string) bool {
	return b.DistrictID == districtID
}

// Scope returns the branch's viewer scope with full lineage.
func (b Branch) Scope() EntityScope {
	return EntityScope{
		Level:      LevelBranch,
		AreaID:     b.AreaID,
		DistrictID: b.DistrictID,
		BranchID:   b.BranchID,
	}
}
