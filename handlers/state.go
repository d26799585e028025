package handlers

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"crypto-exchange-bot/models"
)

// conversationState is one step of a wizard. Each flow gets its own typed
// state carrying the data collected so far, so an illegal combination of
// step and data cannot be represented.
type conversationState interface {
	conversationState()
}

type (
	// user: entered the buy/sell wizard, waiting for the fiat amount.
	stateOrderAmount struct{ OrderType models.OrderType }

	// operator: waiting for an order number to take or to complete.
	stateTakeOrder     struct{}
	stateCompleteOrder struct{}

	// admin wizards.
	stateSetRates      struct{}
	stateSetMinAmount  struct{}
	stateMembership    struct {
		Role models.UserRole // RoleAdmin or RoleOperator
		Add  bool
	}
	stateBlockUser     struct{ Block bool }
	stateBalanceUser   struct{}
	stateBalanceDelta  struct{ UserID int64 }
	stateDiscountUser  struct{}
	stateDiscountValue struct{ UserID int64 }
	stateSetTiers      struct{}
	stateAddCurrency   struct{ Fiat bool }
	stateCommandName   struct{ Delete bool }
	stateCommandText   struct{ Name string }
	stateCommandKeys   struct{ Name, Response string }
)

func (stateOrderAmount) conversationState()   {}
func (stateTakeOrder) conversationState()     {}
func (stateCompleteOrder) conversationState() {}
func (stateSetRates) conversationState()      {}
func (stateSetMinAmount) conversationState()  {}
func (stateMembership) conversationState()    {}
func (stateBlockUser) conversationState()     {}
func (stateBalanceUser) conversationState()   {}
func (stateBalanceDelta) conversationState()  {}
func (stateDiscountUser) conversationState()  {}
func (stateDiscountValue) conversationState() {}
func (stateSetTiers) conversationState()      {}
func (stateAddCurrency) conversationState()   {}
func (stateCommandName) conversationState()   {}
func (stateCommandText) conversationState()   {}
func (stateCommandKeys) conversationState()   {}

// stateRegistry tracks the active wizard step per user.
type stateRegistry struct {
	mu sync.RWMutex
	m  map[int64]conversationState
}

func newStateRegistry() *stateRegistry {
	return &stateRegistry{m: make(map[int64]conversationState)}
}

func (r *stateRegistry) get(userID int64) (conversationState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.m[userID]
	return s, ok
}

func (r *stateRegistry) set(userID int64, s conversationState) {
	r.mu.Lock()
	r.m[userID] = s
	r.mu.Unlock()
}

func (r *stateRegistry) clear(userID int64) {
	r.mu.Lock()
	delete(r.m, userID)
	r.mu.Unlock()
}

// handleState routes wizard input to the flow that started it.
func (b *Bot) handleState(msg *tgbotapi.Message, state conversationState) {
	switch st := state.(type) {
	case stateOrderAmount:
		b.handleOrderAmount(msg, st)
	case stateTakeOrder:
		b.handleTakeOrder(msg)
	case stateCompleteOrder:
		b.handleCompleteOrder(msg)
	case stateSetRates:
		b.handleSetRates(msg)
	case stateSetMinAmount:
		b.handleSetMinAmount(msg)
	case stateMembership:
		b.handleMembership(msg, st)
	case stateBlockUser:
		b.handleBlockUser(msg, st)
	case stateBalanceUser:
		b.handleBalanceUser(msg)
	case stateBalanceDelta:
		b.handleBalanceDelta(msg, st)
	case stateDiscountUser:
		b.handleDiscountUser(msg)
	case stateDiscountValue:
		b.handleDiscountValue(msg, st)
	case stateSetTiers:
		b.handleSetTiers(msg)
	case stateAddCurrency:
		b.handleAddCurrency(msg, st)
	case stateCommandName:
		b.handleCommandName(msg, st)
	case stateCommandText:
		b.handleCommandText(msg, st)
	case stateCommandKeys:
		b.handleCommandKeys(msg, st)
	default:
		b.states.clear(msg.From.ID)
		b.showMainMenu(msg.Chat.ID, msg.From.ID, "Выберите действие:")
	}
}
