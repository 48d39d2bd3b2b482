package models

// Area represents a row of the areas table.
type Area struct {
	AreaID string `json:"areaID"` // Primary Key (UUID)
	Name   string `json:"name"`
	Code   string `json:"code"`
	AuditFields
}

// District represents a row of the districts table.
type District struct {
	DistrictID string `json:"districtID"` // Primary Key (UUID)
	AreaID     string `json:"areaID"`     // FK -> areas
	Name       string `json:"name"`
	Code       string `json:"code"`
	AuditFields
}

// Branch represents a row of the branches table. AreaID is not a column; it
// is resolved through the district join on read.
type Branch struct {
	BranchID   string `json:"branchID"` // Primary Key (UUID)
	DistrictID string `json:"districtID"`
	AreaID     string `json:"areaID"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	AuditFields
}
