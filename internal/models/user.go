package models

import "time"

// User is a registered vendor or supplier account.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	PasswordHash string    `json:"-" gorm:"column:password;type:varchar(255);not null"`
	Name         string    `json:"name" gorm:"type:varchar(255)"`
	Phone        string    `json:"phone" gorm:"type:varchar(32)"`
	Role         Role      `json:"userType" gorm:"column:user_type;type:varchar(16);index;not null"`
	BusinessName string    `json:"businessName" gorm:"type:varchar(255)"`
	City         string    `json:"city" gorm:"type:varchar(100)"`
	State        string    `json:"state" gorm:"type:varchar(100)"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Caller is the authenticated identity an operation runs on behalf of.
type Caller struct {
	ID           string
	Role         Role
	BusinessName string
}

// Caller returns the identity used for access checks and name snapshots.
func (u *User) Caller() Caller {
	return Caller{ID: u.ID, Role: u.Role, BusinessName: u.BusinessName}
}
