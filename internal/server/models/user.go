package models

// User is an operator account allowed to manage the influencer dataset.
// Accounts are provisioned offline; there is no registration endpoint.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}
