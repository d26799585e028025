package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderActive     OrderStatus = "active"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
)

type OrderType string

const (
	OrderBuy  OrderType = "buy"
	OrderSell OrderType = "sell"
)

// orderNumberPrefix is part of the persisted format; completed paperwork
// references these numbers, so it must never change.
const orderNumberPrefix = "Z"

// FormatOrderNumber renders the human-readable order number for an
// identifier, e.g. 7 -> "Z00007".
func FormatOrderNumber(id int) string {
	return fmt.Sprintf("%s%05d", orderNumberPrefix, id)
}

// Order is one record in the orders collection. Amount is in the local fiat
// currency. Operator and completion fields stay nil until the order leaves
// the active state; Spread stays nil until completion.
type Order struct {
	ID               int              `json:"id"`
	OrderNumber      string           `json:"order_number"`
	UserID           int64            `json:"user_id"`
	Username         string           `json:"username"`
	OrderType        OrderType        `json:"order_type"`
	Amount           decimal.Decimal  `json:"amount"`
	Status           OrderStatus      `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	OperatorID       *int64           `json:"operator_id"`
	OperatorUsername *string          `json:"operator_username"`
	CompletedAt      *time.Time       `json:"completed_at"`
	Spread           *decimal.Decimal `json:"spread"`
}

func NewOrder(id int, userID int64, username string, orderType OrderType, amount decimal.Decimal) *Order {
	now := time.Now()
	return &Order{
		ID:          id,
		OrderNumber: FormatOrderNumber(id),
		UserID:      userID,
		Username:    username,
		OrderType:   orderType,
		Amount:      amount,
		Status:      OrderActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
