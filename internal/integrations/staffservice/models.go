package staffservice

// Stylist мастер из справочника персонала
type Stylist struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	BranchID string   `json:"branchId"`
	Services []string `json:"services"`
	IsActive bool     `json:"isActive"`
}
