package auth

// Claims representa la información extraída del token del staff.
type Claims struct {
	StaffID string
	Email   string
}
