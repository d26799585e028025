package handlers

import (
	"fmt"

	"crypto-exchange-bot/exchange"
	"crypto-exchange-bot/models"
)

// notifyNewOrder announces a fresh order in the operators' group chat.
func (b *Bot) notifyNewOrder(order *models.Order) {
	if b.app.Telegram.MainChatID == 0 {
		return
	}
	b.reply(b.app.Telegram.MainChatID, fmt.Sprintf(
		"🆕 Новая заявка %s\n"+
			"Тип: %s\n"+
			"Сумма: %s руб.\n"+
			"Клиент: %s | ID %d",
		order.OrderNumber, orderTypeText(order.OrderType),
		models.FormatMoney(order.Amount), order.Username, order.UserID))
}

// sendCompletionNotices informs the client (without spread), the group chat
// (with spread) and the referrer about a completed order.
func (b *Bot) sendCompletionNotices(result *exchange.CompletionResult) {
	order := result.Order
	operator := ""
	if order.OperatorUsername != nil {
		operator = *order.OperatorUsername
	}

	b.reply(order.UserID, fmt.Sprintf(
		"✅ Заявка %s завершена!\n"+
			"Тип сделки: %s\n"+
			"Сумма: %s руб.\n"+
			"Оператор: %s",
		order.OrderNumber, orderTypeText(order.OrderType),
		models.FormatMoney(order.Amount), operator))

	if b.app.Telegram.MainChatID != 0 {
		b.reply(b.app.Telegram.MainChatID, fmt.Sprintf(
			"✅ Заявка %s завершена!\n"+
				"Пользователь: %s | ID %d\n"+
				"Оператор: %s\n"+
				"Тип сделки: %s\n"+
				"Сумма: %s руб.\n"+
				"Спред: +%s руб.",
			order.OrderNumber, order.Username, order.UserID, operator,
			orderTypeText(order.OrderType), models.FormatMoney(order.Amount),
			models.FormatMoney(*order.Spread)))
	}

	if bonus := result.Bonus; bonus != nil {
		b.reply(bonus.ReferrerID, fmt.Sprintf(
			"💰 Реферальный бонус!\n"+
				"Вы получили бонус от сделки вашего реферала %s:\n"+
				"Размер бонуса: %s руб. (%s%% от спреда)\n"+
				"Ваш текущий баланс: %s руб.",
			order.Username, models.FormatMoney(bonus.Amount),
			bonus.Percentage, models.FormatMoney(bonus.NewBalance)))
	}
}
