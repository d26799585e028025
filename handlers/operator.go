package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"crypto-exchange-bot/models"
)

func (b *Bot) requireOperator(msg *tgbotapi.Message) bool {
	if b.isOperator(msg.From.ID) {
		return true
	}
	b.reply(msg.Chat.ID, "Эта команда доступна только операторам.")
	return false
}

func (b *Bot) showOperatorMenu(msg *tgbotapi.Message) {
	if !b.requireOperator(msg) {
		return
	}
	b.replyWithKeyboard(msg.Chat.ID, "Меню оператора:", operatorKeyboard())
}

func (b *Bot) showActiveOrders(msg *tgbotapi.Message) {
	if !b.requireOperator(msg) {
		return
	}
	orders, err := b.orders.ByStatus(models.OrderActive)
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	if len(orders) == 0 {
		b.reply(msg.Chat.ID, "Активных заявок нет.")
		return
	}
	var sb strings.Builder
	sb.WriteString("Активные заявки:\n")
	for _, o := range orders {
		fmt.Fprintf(&sb, "\n%s — %s, %s руб., от %s (%s)",
			o.OrderNumber, orderTypeText(o.OrderType),
			models.FormatMoney(o.Amount), o.Username,
			models.FormatDateTime(o.CreatedAt))
	}
	b.reply(msg.Chat.ID, sb.String())
}

func (b *Bot) startTakeOrder(msg *tgbotapi.Message) {
	if !b.requireOperator(msg) {
		return
	}
	b.states.set(msg.From.ID, stateTakeOrder{})
	b.replyWithKeyboard(msg.Chat.ID, "Введите номер заявки (например, Z00007):", cancelKeyboard())
}

func (b *Bot) handleTakeOrder(msg *tgbotapi.Message) {
	order, err := b.lookupOrder(msg.Text)
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	taken, err := b.engine.Assign(order.ID, msg.From.ID, displayName(msg.From))
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.clear(msg.From.ID)
	b.showMainMenu(msg.Chat.ID, msg.From.ID, fmt.Sprintf(
		"Заявка %s взята в работу: %s, %s руб., клиент %s (ID %d).",
		taken.OrderNumber, orderTypeText(taken.OrderType),
		models.FormatMoney(taken.Amount), taken.Username, taken.UserID))
	b.reply(taken.UserID, fmt.Sprintf(
		"Ваша заявка %s принята оператором %s. Ожидайте связи.",
		taken.OrderNumber, displayName(msg.From)))
}

func (b *Bot) showOrdersInWork(msg *tgbotapi.Message) {
	if !b.requireOperator(msg) {
		return
	}
	orders, err := b.orders.ByOperator(msg.From.ID)
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	var sb strings.Builder
	count := 0
	for _, o := range orders {
		if o.Status != models.OrderInProgress {
			continue
		}
		count++
		fmt.Fprintf(&sb, "\n%s — %s, %s руб., клиент %s",
			o.OrderNumber, orderTypeText(o.OrderType),
			models.FormatMoney(o.Amount), o.Username)
	}
	if count == 0 {
		b.reply(msg.Chat.ID, "У вас нет заявок в работе.")
		return
	}
	b.reply(msg.Chat.ID, "Ваши заявки в работе:\n"+sb.String())
}

func (b *Bot) startCompleteOrder(msg *tgbotapi.Message) {
	if !b.requireOperator(msg) {
		return
	}
	b.states.set(msg.From.ID, stateCompleteOrder{})
	b.replyWithKeyboard(msg.Chat.ID, "Введите номер завершаемой заявки:", cancelKeyboard())
}

func (b *Bot) handleCompleteOrder(msg *tgbotapi.Message) {
	order, err := b.lookupOrder(msg.Text)
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	result, err := b.engine.Complete(order.ID)
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.clear(msg.From.ID)
	b.showMainMenu(msg.Chat.ID, msg.From.ID, fmt.Sprintf(
		"Заявка %s завершена. Спред: %s руб.",
		result.Order.OrderNumber, models.FormatMoney(*result.Order.Spread)))
	b.sendCompletionNotices(result)
}

// lookupOrder accepts either the human-readable number (Z00007) or the bare
// identifier.
func (b *Bot) lookupOrder(input string) (*models.Order, error) {
	input = strings.TrimSpace(input)
	if id, err := strconv.Atoi(input); err == nil {
		return b.orders.GetByID(id)
	}
	return b.orders.GetByNumber(strings.ToUpper(input))
}
