package model

import "time"

// Role describes the capability level of an authenticated caller.
type Role string

const (
	RoleMerchant   Role = "merchant"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// Admin is a console account.
type Admin struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity is the resolved caller passed into state-mutating operations.
type Identity struct {
	AdminID int64
	Role    Role
}
