package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserRole string

const (
	RoleUser     UserRole = "user"
	RoleOperator UserRole = "operator"
	RoleAdmin    UserRole = "admin"
	RoleBlocked  UserRole = "blocked"
)

// ParseUserRole validates a role string coming from an admin wizard.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleUser, RoleOperator, RoleAdmin, RoleBlocked:
		return UserRole(s), nil
	}
	return "", NewValidationError("unknown role %q", s)
}

// User is one account record in the users collection. Created on first
// contact, never deleted.
type User struct {
	UserID          int64           `json:"user_id"`
	Username        string          `json:"username"`
	Role            UserRole        `json:"role"`
	Balance         decimal.Decimal `json:"balance"`
	TotalVolume     decimal.Decimal `json:"total_volume"`
	CompletedOrders int             `json:"completed_orders"`
	Discount        decimal.Decimal `json:"discount"`
	Referrals       []int64         `json:"referrals"`
	ReferrerID      *int64          `json:"referrer_id"`
	JoinedAt        time.Time       `json:"joined_at"`
}

func NewUser(userID int64, username string) *User {
	return &User{
		UserID:    userID,
		Username:  username,
		Role:      RoleUser,
		Balance:   decimal.Zero,
		Discount:  decimal.Zero,
		Referrals: []int64{},
		JoinedAt:  time.Now(),
	}
}

// AddReferral appends id to the referral list with set semantics. Reports
// whether the list changed.
func (u *User) AddReferral(id int64) bool {
	for _, r := range u.Referrals {
		if r == id {
			return false
		}
	}
	u.Referrals = append(u.Referrals, id)
	return true
}
