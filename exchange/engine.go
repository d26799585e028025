// Package exchange implements the order lifecycle: creation, operator
// assignment, completion with spread computation, and the referral payout
// triggered by completion.
package exchange

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crypto-exchange-bot/models"
	"crypto-exchange-bot/store"
)

var hundred = decimal.NewFromInt(100)

// Engine drives orders through active -> in_progress -> completed. It owns
// no state of its own; everything lives in the injected stores.
type Engine struct {
	config *store.ConfigStore
	users  *store.UserStore
	orders *store.OrderStore
	log    *zap.Logger
}

func NewEngine(config *store.ConfigStore, users *store.UserStore, orders *store.OrderStore, log *zap.Logger) *Engine {
	return &Engine{config: config, users: users, orders: orders, log: log}
}

// BonusApplication describes a referral bonus credited on order completion,
// returned to the caller so it can notify the referrer.
type BonusApplication struct {
	ReferrerID int64
	Percentage decimal.Decimal
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
}

// CompletionResult is what Complete hands back for the presentation layer to
// format: the completed order and the bonus application, if any.
type CompletionResult struct {
	Order *models.Order
	Bonus *BonusApplication
}

// RegisterUser creates the account record on first contact and, for new
// accounts, registers the referral relation. The referrer is immutable once
// set; self-referrals and unknown referrers are silently ignored. For
// existing accounts the username is refreshed and the record returned as is.
func (e *Engine) RegisterUser(userID int64, username string, referrerID *int64) (*models.User, error) {
	existing, err := e.users.GetByID(userID)
	if err == nil {
		if username != "" && existing.Username != username {
			return e.users.Update(userID, func(u *models.User) error {
				u.Username = username
				return nil
			})
		}
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	u := models.NewUser(userID, username)
	if referrerID != nil && *referrerID != userID {
		if _, rerr := e.users.GetByID(*referrerID); rerr == nil {
			u.ReferrerID = referrerID
		}
	}
	if err := e.users.Upsert(u); err != nil {
		return nil, err
	}
	if u.ReferrerID != nil {
		if _, err := e.users.Update(*u.ReferrerID, func(ref *models.User) error {
			ref.AddReferral(userID)
			return nil
		}); err != nil {
			e.log.Error("failed to record referral",
				zap.Int64("referrer_id", *u.ReferrerID),
				zap.Int64("user_id", userID),
				zap.Error(err))
		}
	}
	return u, nil
}

// CreateOrder allocates the next order identifier and persists a new active
// order. The configured minimum amount is the caller's precondition; the
// order wizard checks it before calling here.
func (e *Engine) CreateOrder(ownerID int64, ownerName string, orderType models.OrderType, amount decimal.Decimal) (*models.Order, error) {
	if orderType != models.OrderBuy && orderType != models.OrderSell {
		return nil, models.NewValidationError("unknown order type %q", orderType)
	}
	if !amount.IsPositive() {
		return nil, models.NewValidationError("order amount must be positive, got %s", amount)
	}
	return e.orders.Create(ownerID, ownerName, orderType, amount)
}

// Assign moves an active order to in_progress and stamps the operator. A
// non-active order yields InvalidStateError; the caller should treat it as a
// race with another operator and re-fetch.
func (e *Engine) Assign(orderID int, operatorID int64, operatorName string) (*models.Order, error) {
	return e.orders.Update(orderID, func(o *models.Order) error {
		if o.Status != models.OrderActive {
			return &models.InvalidStateError{OrderID: o.ID, Status: o.Status}
		}
		o.Status = models.OrderInProgress
		o.OperatorID = &operatorID
		o.OperatorUsername = &operatorName
		return nil
	})
}

// Complete finishes an in_progress order. The spread is computed against the
// rate set current at completion time, not at creation time: completed-order
// economics drift with the rates on purpose (a documented business decision,
// see DESIGN.md). Completion then bumps the owner's volume and order count
// and credits the referral bonus, returning the bonus application for the
// caller to announce.
func (e *Engine) Complete(orderID int) (*CompletionResult, error) {
	rates, err := e.config.Rates()
	if err != nil {
		return nil, err
	}
	order, err := e.orders.Update(orderID, func(o *models.Order) error {
		if o.Status != models.OrderInProgress {
			return &models.InvalidStateError{OrderID: o.ID, Status: o.Status}
		}
		spread := rates.SpreadFor(o.Amount, o.OrderType == models.OrderBuy)
		now := time.Now()
		o.Status = models.OrderCompleted
		o.CompletedAt = &now
		o.Spread = &spread
		return nil
	})
	if err != nil {
		return nil, err
	}

	// There is no rollback across collections: a crash here loses the stat
	// bump and bonus while keeping the completion. Accepted at this scale.
	if _, err := e.users.Update(order.UserID, func(u *models.User) error {
		u.TotalVolume = u.TotalVolume.Add(order.Amount)
		u.CompletedOrders++
		return nil
	}); err != nil {
		e.log.Error("failed to update owner stats on completion",
			zap.String("order_number", order.OrderNumber),
			zap.Int64("user_id", order.UserID),
			zap.Error(err))
	}

	return &CompletionResult{
		Order: order,
		Bonus: e.payReferralBonus(order.UserID, *order.Spread),
	}, nil
}

// payReferralBonus credits spread × tier-percentage ÷ 100 to the owner's
// referrer. Missing referrer, non-positive percentage or non-positive bonus
// are all silent no-ops.
func (e *Engine) payReferralBonus(ownerID int64, spread decimal.Decimal) *BonusApplication {
	if !spread.IsPositive() {
		return nil
	}
	owner, err := e.users.GetByID(ownerID)
	if err != nil {
		e.log.Error("order owner not found for referral bonus",
			zap.Int64("user_id", ownerID), zap.Error(err))
		return nil
	}
	if owner.ReferrerID == nil {
		return nil
	}
	referrerID := *owner.ReferrerID

	referrer, err := e.users.GetByID(referrerID)
	if err != nil {
		e.log.Error("referrer not found for referral bonus",
			zap.Int64("referrer_id", referrerID), zap.Error(err))
		return nil
	}
	percentage, err := e.config.ReferralPercentage(len(referrer.Referrals))
	if err != nil {
		e.log.Error("failed to resolve referral percentage",
			zap.Int64("referrer_id", referrerID), zap.Error(err))
		return nil
	}
	if !percentage.IsPositive() {
		return nil
	}
	bonus := spread.Mul(percentage).Div(hundred)
	if !bonus.IsPositive() {
		return nil
	}

	updated, err := e.users.Update(referrerID, func(ref *models.User) error {
		ref.Balance = ref.Balance.Add(bonus)
		return nil
	})
	if err != nil {
		e.log.Error("failed to credit referral bonus",
			zap.Int64("referrer_id", referrerID),
			zap.String("amount", bonus.String()),
			zap.Error(err))
		return nil
	}
	return &BonusApplication{
		ReferrerID: referrerID,
		Percentage: percentage,
		Amount:     bonus,
		NewBalance: updated.Balance,
	}
}

// AdjustBalance applies an admin credit or debit. A debit that would take
// the balance negative is rejected.
func (e *Engine) AdjustBalance(userID int64, delta decimal.Decimal) (*models.User, error) {
	return e.users.Update(userID, func(u *models.User) error {
		next := u.Balance.Add(delta)
		if next.IsNegative() {
			return models.NewValidationError("debit of %s would overdraw balance %s",
				delta.Abs(), u.Balance)
		}
		u.Balance = next
		return nil
	})
}

// SetRole changes an account's role (including blocking via RoleBlocked).
func (e *Engine) SetRole(userID int64, role models.UserRole) (*models.User, error) {
	if _, err := models.ParseUserRole(string(role)); err != nil {
		return nil, err
	}
	return e.users.Update(userID, func(u *models.User) error {
		u.Role = role
		return nil
	})
}

// SetDiscount sets the personal discount percentage, 0..100.
func (e *Engine) SetDiscount(userID int64, percentage decimal.Decimal) (*models.User, error) {
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return nil, models.NewValidationError("discount must be between 0 and 100, got %s", percentage)
	}
	return e.users.Update(userID, func(u *models.User) error {
		u.Discount = percentage
		return nil
	})
}
