// Package handlers is the Telegram presentation layer: the update loop,
// reply-keyboard menus and the multi-step wizards. All business rules live
// in the exchange engine and the stores; this package only parses input and
// formats replies.
package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"crypto-exchange-bot/config"
	"crypto-exchange-bot/exchange"
	"crypto-exchange-bot/models"
	"crypto-exchange-bot/store"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	app      *config.Config
	engine   *exchange.Engine
	config   *store.ConfigStore
	users    *store.UserStore
	orders   *store.OrderStore
	commands *store.CommandStore
	states   *stateRegistry
	log      *zap.Logger
}

func NewBot(
	api *tgbotapi.BotAPI,
	app *config.Config,
	engine *exchange.Engine,
	configStore *store.ConfigStore,
	users *store.UserStore,
	orders *store.OrderStore,
	commands *store.CommandStore,
	log *zap.Logger,
) *Bot {
	return &Bot{
		api:      api,
		app:      app,
		engine:   engine,
		config:   configStore,
		users:    users,
		orders:   orders,
		commands: commands,
		states:   newStateRegistry(),
		log:      log,
	}
}

// Run consumes the long-polling update channel until it is closed.
func (b *Bot) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		b.handleMessage(update.Message)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	userID := msg.From.ID

	if msg.IsCommand() && msg.Command() == "start" {
		b.states.clear(userID)
		b.handleStart(msg)
		return
	}

	user, err := b.users.GetByID(userID)
	if err != nil {
		// First contact without /start still creates the record.
		user, err = b.engine.RegisterUser(userID, displayName(msg.From), nil)
		if err != nil {
			b.log.Error("failed to register user", zap.Int64("user_id", userID), zap.Error(err))
			b.reply(msg.Chat.ID, "Произошла ошибка. Попробуйте позже.")
			return
		}
	}
	if user.Role == models.RoleBlocked {
		return
	}

	if msg.Text == btnCancel {
		b.states.clear(userID)
		b.showMainMenu(msg.Chat.ID, userID, "Действие отменено.")
		return
	}

	if state, ok := b.states.get(userID); ok {
		b.handleState(msg, state)
		return
	}

	if in, ok := parseIntent(msg.Text); ok {
		b.dispatchIntent(msg, in)
		return
	}

	// Unmatched text may be a custom command.
	if cmd, err := b.commands.Get(msg.Text); err == nil {
		b.sendCustomCommand(msg.Chat.ID, cmd)
		return
	}

	b.showMainMenu(msg.Chat.ID, userID, "Выберите действие:")
}

func (b *Bot) dispatchIntent(msg *tgbotapi.Message, in intent) {
	userID := msg.From.ID
	switch in {
	case intentBuy:
		b.startOrder(msg, models.OrderBuy)
	case intentSell:
		b.startOrder(msg, models.OrderSell)
	case intentRates:
		b.showRates(msg.Chat.ID)
	case intentMyOrders:
		b.showMyOrders(msg)
	case intentBalance:
		b.showBalance(msg)
	case intentReferral:
		b.showReferralInfo(msg)

	case intentOperatorMenu:
		b.showOperatorMenu(msg)
	case intentActiveOrders:
		b.showActiveOrders(msg)
	case intentTakeOrder:
		b.startTakeOrder(msg)
	case intentOrdersInWork:
		b.showOrdersInWork(msg)
	case intentCompleteOrder:
		b.startCompleteOrder(msg)

	case intentAdminMenu:
		b.showAdminMenu(msg)
	case intentSetRates:
		b.startSetRates(msg)
	case intentSetMinAmount:
		b.startSetMinAmount(msg)
	case intentAddAdmin:
		b.startMembership(msg, models.RoleAdmin, true)
	case intentRemoveAdmin:
		b.startMembership(msg, models.RoleAdmin, false)
	case intentAddOperator:
		b.startMembership(msg, models.RoleOperator, true)
	case intentRemoveOperator:
		b.startMembership(msg, models.RoleOperator, false)
	case intentBlockUser:
		b.startBlockUser(msg, true)
	case intentUnblockUser:
		b.startBlockUser(msg, false)
	case intentAdjustBalance:
		b.startAdjustBalance(msg)
	case intentSetDiscount:
		b.startSetDiscount(msg)
	case intentSetTiers:
		b.startSetTiers(msg)
	case intentAddCrypto:
		b.startAddCurrency(msg, false)
	case intentAddFiat:
		b.startAddCurrency(msg, true)
	case intentAddCommand:
		b.startAddCommand(msg)
	case intentRemoveCommand:
		b.startRemoveCommand(msg)
	case intentStats:
		b.showStats(msg)

	case intentMainMenu:
		b.showMainMenu(msg.Chat.ID, userID, "Главное меню:")
	}
}

// reply sends a plain text message without changing the keyboard.
func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, kb tgbotapi.ReplyKeyboardMarkup) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = kb
	if _, err := b.api.Send(m); err != nil {
		b.log.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) sendCustomCommand(chatID int64, cmd *models.CustomCommand) {
	if len(cmd.Buttons) == 0 {
		b.reply(chatID, cmd.Response)
		return
	}
	b.replyWithKeyboard(chatID, cmd.Response, buttonsKeyboard(cmd.Buttons))
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return u.FirstName
}
