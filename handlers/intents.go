package handlers

// intent is the closed set of menu actions. Button text is translated to an
// intent in exactly one place so the rest of the package never compares raw
// labels.
type intent int

const (
	intentBuy intent = iota
	intentSell
	intentRates
	intentMyOrders
	intentBalance
	intentReferral
	intentMainMenu

	intentOperatorMenu
	intentActiveOrders
	intentTakeOrder
	intentOrdersInWork
	intentCompleteOrder

	intentAdminMenu
	intentSetRates
	intentSetMinAmount
	intentAddAdmin
	intentRemoveAdmin
	intentAddOperator
	intentRemoveOperator
	intentBlockUser
	intentUnblockUser
	intentAdjustBalance
	intentSetDiscount
	intentSetTiers
	intentAddCrypto
	intentAddFiat
	intentAddCommand
	intentRemoveCommand
	intentStats
)

var intentByButton = map[string]intent{
	btnBuy:      intentBuy,
	btnSell:     intentSell,
	btnRates:    intentRates,
	btnMyOrders: intentMyOrders,
	btnBalance:  intentBalance,
	btnReferral: intentReferral,
	btnMainMenu: intentMainMenu,

	btnOperatorMenu:  intentOperatorMenu,
	btnActiveOrders:  intentActiveOrders,
	btnTakeOrder:     intentTakeOrder,
	btnOrdersInWork:  intentOrdersInWork,
	btnCompleteOrder: intentCompleteOrder,

	btnAdminMenu:      intentAdminMenu,
	btnSetRates:       intentSetRates,
	btnSetMinAmount:   intentSetMinAmount,
	btnAddAdmin:       intentAddAdmin,
	btnRemoveAdmin:    intentRemoveAdmin,
	btnAddOperator:    intentAddOperator,
	btnRemoveOperator: intentRemoveOperator,
	btnBlockUser:      intentBlockUser,
	btnUnblockUser:    intentUnblockUser,
	btnAdjustBalance:  intentAdjustBalance,
	btnSetDiscount:    intentSetDiscount,
	btnSetTiers:       intentSetTiers,
	btnAddCrypto:      intentAddCrypto,
	btnAddFiat:        intentAddFiat,
	btnAddCommand:     intentAddCommand,
	btnRemoveCommand:  intentRemoveCommand,
	btnStats:          intentStats,
}

func parseIntent(text string) (intent, bool) {
	in, ok := intentByButton[text]
	return in, ok
}
