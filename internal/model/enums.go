package model

// AccountStatus gates access to the admin dashboard.
type AccountStatus string

const (
	AccountStatusPending   AccountStatus = "pending"
	AccountStatusConfirmed AccountStatus = "confirmed"
)
