package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crypto-exchange-bot/models"
)

// handleStart registers the account on first contact. A numeric /start
// payload is the referrer id from a referral link.
func (b *Bot) handleStart(msg *tgbotapi.Message) {
	var referrerID *int64
	if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil && id > 0 {
			referrerID = &id
		}
	}

	user, err := b.engine.RegisterUser(msg.From.ID, displayName(msg.From), referrerID)
	if err != nil {
		b.log.Error("failed to register user", zap.Int64("user_id", msg.From.ID), zap.Error(err))
		b.reply(msg.Chat.ID, "Произошла ошибка. Попробуйте позже.")
		return
	}
	if user.Role == models.RoleBlocked {
		return
	}
	b.showMainMenu(msg.Chat.ID, msg.From.ID,
		"Добро пожаловать в обменник! Здесь можно купить и продать LTC за рубли.")
}

func (b *Bot) showMainMenu(chatID, userID int64, text string) {
	b.replyWithKeyboard(chatID, text, mainMenuKeyboard(b.isOperator(userID), b.isAdmin(userID)))
}

func (b *Bot) startOrder(msg *tgbotapi.Message, orderType models.OrderType) {
	minAmount, err := b.config.MinAmount()
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.set(msg.From.ID, stateOrderAmount{OrderType: orderType})
	action := "покупки"
	if orderType == models.OrderSell {
		action = "продажи"
	}
	b.replyWithKeyboard(msg.Chat.ID,
		fmt.Sprintf("Введите сумму %s в рублях (минимум %s):", action, models.FormatMoney(minAmount)),
		cancelKeyboard())
}

func (b *Bot) handleOrderAmount(msg *tgbotapi.Message, st stateOrderAmount) {
	amount, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(msg.Text), ",", ".", 1))
	if err != nil || !amount.IsPositive() {
		b.reply(msg.Chat.ID, "Введите положительное число, например 5000.")
		return
	}
	minAmount, err := b.config.MinAmount()
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	if amount.LessThan(minAmount) {
		b.reply(msg.Chat.ID,
			fmt.Sprintf("Минимальная сумма сделки — %s руб.", models.FormatMoney(minAmount)))
		return
	}

	order, err := b.engine.CreateOrder(msg.From.ID, displayName(msg.From), st.OrderType, amount)
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.clear(msg.From.ID)
	b.showMainMenu(msg.Chat.ID, msg.From.ID, fmt.Sprintf(
		"Заявка %s создана на сумму %s руб. Оператор свяжется с вами после принятия заявки.",
		order.OrderNumber, models.FormatMoney(order.Amount)))
	b.notifyNewOrder(order)
}

func (b *Bot) showRates(chatID int64) {
	rates, err := b.config.Rates()
	if err != nil {
		b.reply(chatID, errorText(err))
		return
	}
	one := decimal.NewFromInt(1)
	b.reply(chatID, fmt.Sprintf(
		"Текущий курс:\n"+
			"Покупка: 1 LTC = %s руб.\n"+
			"Продажа: 1 LTC = %s руб.",
		models.FormatMoney(rates.FiatValueOf(one, true)),
		models.FormatMoney(rates.FiatValueOf(one, false))))
}

func (b *Bot) showMyOrders(msg *tgbotapi.Message) {
	orders, err := b.orders.ByOwner(msg.From.ID)
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	if len(orders) == 0 {
		b.reply(msg.Chat.ID, "У вас пока нет заявок.")
		return
	}
	var sb strings.Builder
	sb.WriteString("Ваши заявки:\n")
	for _, o := range orders {
		fmt.Fprintf(&sb, "\n%s — %s, %s руб., %s (%s)",
			o.OrderNumber, orderTypeText(o.OrderType),
			models.FormatMoney(o.Amount), orderStatusText(o.Status),
			models.FormatDateTime(o.CreatedAt))
	}
	b.reply(msg.Chat.ID, sb.String())
}

func (b *Bot) showBalance(msg *tgbotapi.Message) {
	user, err := b.users.GetByID(msg.From.ID)
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	text := fmt.Sprintf(
		"Баланс: %s руб.\nОборот: %s руб.\nЗавершённых сделок: %d",
		models.FormatMoney(user.Balance),
		models.FormatMoney(user.TotalVolume),
		user.CompletedOrders)
	if user.Discount.IsPositive() {
		text += fmt.Sprintf("\nПерсональная скидка: %s%%", user.Discount)
	}
	b.reply(msg.Chat.ID, text)
}

func (b *Bot) showReferralInfo(msg *tgbotapi.Message) {
	user, err := b.users.GetByID(msg.From.ID)
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	percentage, err := b.config.ReferralPercentage(len(user.Referrals))
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf(
		"Ваша реферальная ссылка:\nhttps://t.me/%s?start=%d\n\n"+
			"Приглашено: %d\nВаш процент от спреда: %s%%",
		b.app.Telegram.Username, msg.From.ID, len(user.Referrals), percentage))
}

func orderTypeText(t models.OrderType) string {
	if t == models.OrderBuy {
		return "покупка LTC"
	}
	return "продажа LTC"
}

func orderStatusText(s models.OrderStatus) string {
	switch s {
	case models.OrderActive:
		return "ожидает оператора"
	case models.OrderInProgress:
		return "в работе"
	case models.OrderCompleted:
		return "завершена"
	}
	return string(s)
}
