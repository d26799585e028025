package handlers

import (
	"go.uber.org/zap"

	"crypto-exchange-bot/models"
)

// isAdmin checks the fixed super-admin id first, then the configured admin
// list, then the account's role.
func (b *Bot) isAdmin(userID int64) bool {
	if userID == b.app.Telegram.SuperAdminID {
		return true
	}
	ok, err := b.config.IsAdmin(userID)
	if err != nil {
		b.log.Error("admin check failed", zap.Int64("user_id", userID), zap.Error(err))
		return false
	}
	if ok {
		return true
	}
	if u, err := b.users.GetByID(userID); err == nil {
		return u.Role == models.RoleAdmin
	}
	return false
}

// isOperator: admins are implicitly operators.
func (b *Bot) isOperator(userID int64) bool {
	if b.isAdmin(userID) {
		return true
	}
	ok, err := b.config.IsOperator(userID)
	if err != nil {
		b.log.Error("operator check failed", zap.Int64("user_id", userID), zap.Error(err))
		return false
	}
	if ok {
		return true
	}
	if u, err := b.users.GetByID(userID); err == nil {
		return u.Role == models.RoleOperator
	}
	return false
}
