package models

// Principal is the authenticated caller of an operation
type Principal struct {
	UserID     string `json:"id"`
	Username   string `json:"username"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

// CanManage reports whether the caller holds manager capability
func (p Principal) CanManage() bool {
	return p.Role.CanManage()
}

// CanActFor reports whether the caller may act on the given user's records
func (p Principal) CanActFor(userID string) bool {
	return p.UserID == userID || p.CanManage()
}
