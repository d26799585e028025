package handlers

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Button labels. parseIntent in intents.go maps them back to intents; the
// two files must stay in sync.
const (
	btnBuy      = "📈 Купить LTC"
	btnSell     = "📉 Продать LTC"
	btnRates    = "💱 Курс"
	btnMyOrders = "📋 Мои заявки"
	btnBalance  = "💰 Баланс"
	btnReferral = "👥 Рефералы"
	btnCancel   = "❌ Отмена"
	btnMainMenu = "⬅️ Главное меню"

	btnOperatorMenu  = "🧰 Меню оператора"
	btnActiveOrders  = "🟢 Активные заявки"
	btnTakeOrder     = "🤝 Взять заявку"
	btnOrdersInWork  = "🔧 Заявки в работе"
	btnCompleteOrder = "✅ Завершить заявку"

	btnAdminMenu      = "🛠 Админ-меню"
	btnSetRates       = "⚙️ Установить курс"
	btnSetMinAmount   = "💵 Мин. сумма"
	btnAddAdmin       = "➕ Админ"
	btnRemoveAdmin    = "➖ Админ"
	btnAddOperator    = "➕ Оператор"
	btnRemoveOperator = "➖ Оператор"
	btnBlockUser      = "🚫 Заблокировать"
	btnUnblockUser    = "♻️ Разблокировать"
	btnAdjustBalance  = "💳 Изменить баланс"
	btnSetDiscount    = "🏷 Скидка"
	btnSetTiers       = "📐 Реферальные уровни"
	btnAddCrypto      = "🪙 Криптовалюта"
	btnAddFiat        = "💴 Фиатная валюта"
	btnAddCommand     = "📝 Добавить команду"
	btnRemoveCommand  = "🗑 Удалить команду"
	btnStats          = "📊 Статистика"
)

func mainMenuKeyboard(isOperator, isAdmin bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBuy),
			tgbotapi.NewKeyboardButton(btnSell),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnRates),
			tgbotapi.NewKeyboardButton(btnMyOrders),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBalance),
			tgbotapi.NewKeyboardButton(btnReferral),
		),
	}
	var service []tgbotapi.KeyboardButton
	if isOperator {
		service = append(service, tgbotapi.NewKeyboardButton(btnOperatorMenu))
	}
	if isAdmin {
		service = append(service, tgbotapi.NewKeyboardButton(btnAdminMenu))
	}
	if len(service) > 0 {
		rows = append(rows, service)
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}

func operatorKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnActiveOrders),
			tgbotapi.NewKeyboardButton(btnTakeOrder),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnOrdersInWork),
			tgbotapi.NewKeyboardButton(btnCompleteOrder),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMainMenu),
		),
	)
}

func adminKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSetRates),
			tgbotapi.NewKeyboardButton(btnSetMinAmount),
			tgbotapi.NewKeyboardButton(btnSetTiers),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAddAdmin),
			tgbotapi.NewKeyboardButton(btnRemoveAdmin),
			tgbotapi.NewKeyboardButton(btnAddOperator),
			tgbotapi.NewKeyboardButton(btnRemoveOperator),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBlockUser),
			tgbotapi.NewKeyboardButton(btnUnblockUser),
			tgbotapi.NewKeyboardButton(btnAdjustBalance),
			tgbotapi.NewKeyboardButton(btnSetDiscount),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAddCrypto),
			tgbotapi.NewKeyboardButton(btnAddFiat),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAddCommand),
			tgbotapi.NewKeyboardButton(btnRemoveCommand),
			tgbotapi.NewKeyboardButton(btnStats),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMainMenu),
		),
	)
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}

// buttonsKeyboard renders the button labels of a custom command.
func buttonsKeyboard(labels []string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(labels)+1)
	for _, label := range labels {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(label)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnMainMenu)))
	return tgbotapi.NewReplyKeyboard(rows...)
}
