package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"crypto-exchange-bot/models"
)

func (b *Bot) requireAdmin(msg *tgbotapi.Message) bool {
	if b.isAdmin(msg.From.ID) {
		return true
	}
	b.reply(msg.Chat.ID, "Эта команда доступна только администраторам.")
	return false
}

func (b *Bot) showAdminMenu(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}
	b.replyWithKeyboard(msg.Chat.ID, "Админ-меню:", adminKeyboard())
}

// --- rates ---

func (b *Bot) startSetRates(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}
	rates, err := b.config.Rates()
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.set(msg.From.ID, stateSetRates{})
	b.replyWithKeyboard(msg.Chat.ID, fmt.Sprintf(
		"Введите 4 курса через пробел:\n"+
			"LTC/USD покупка, LTC/USD продажа, USD/RUB покупка, USD/RUB продажа\n\n"+
			"Сейчас: %s %s %s %s",
		rates.CryptoFiatBuy, rates.CryptoFiatSell, rates.FiatFiatBuy, rates.FiatFiatSell),
		cancelKeyboard())
}

func (b *Bot) handleSetRates(msg *tgbotapi.Message) {
	fields := strings.Fields(msg.Text)
	if len(fields) != 4 {
		b.reply(msg.Chat.ID, "Нужно ровно 4 числа через пробел.")
		return
	}
	values := make([]decimal.Decimal, 4)
	for i, f := range fields {
		v, err := decimal.NewFromString(strings.Replace(f, ",", ".", 1))
		if err != nil {
			b.reply(msg.Chat.ID, fmt.Sprintf("Не удалось прочитать число %q.", f))
			return
		}
		values[i] = v
	}
	rates := models.RateSet{
		CryptoFiatBuy:  values[0],
		CryptoFiatSell: values[1],
		FiatFiatBuy:    values[2],
		FiatFiatSell:   values[3],
	}
	if err := b.config.SetRates(rates); err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.clear(msg.From.ID)
	b.showMainMenu(msg.Chat.ID, msg.From.ID, "Курс обновлён.")
}

// --- minimum amount ---

func (b *Bot) startSetMinAmount(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}
	b.states.set(msg.From.ID, stateSetMinAmount{})
	b.replyWithKeyboard(msg.Chat.ID, "Введите минимальную сумму сделки в рублях:", cancelKeyboard())
}

func (b *Bot) handleSetMinAmount(msg *tgbotapi.Message) {
	amount, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(msg.Text), ",", ".", 1))
	if err != nil {
		b.reply(msg.Chat.ID, "Введите число, например 1000.")
		return
	}
	if err := b.config.SetMinAmount(amount); err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.clear(msg.From.ID)
	b.showMainMenu(msg.Chat.ID, msg.From.ID, "Минимальная сумма обновлена.")
}

// --- admin/operator membership ---

func (b *Bot) startMembership(msg *tgbotapi.Message, role models.UserRole, add bool) {
	if !b.requireAdmin(msg) {
		return
	}
	b.states.set(msg.From.ID, stateMembership{Role: role, Add: add})
	b.replyWithKeyboard(msg.Chat.ID, "Введите числовой ID пользователя:", cancelKeyboard())
}

func (b *Bot) handleMembership(msg *tgbotapi.Message, st stateMembership) {
	id, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
	if err != nil || id <= 0 {
		b.reply(msg.Chat.ID, "ID должен быть положительным числом.")
		return
	}
	switch {
	case st.Role == models.RoleAdmin && st.Add:
		err = b.config.AddAdmin(id)
	case st.Role == models.RoleAdmin:
		err = b.config.RemoveAdmin(id)
	case st.Add:
		err = b.config.AddOperator(id)
	default:
		err = b.config.RemoveOperator(id)
	}
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.clear(msg.From.ID)
	b.showMainMenu(msg.Chat.ID, msg.From.ID, "Список ролей обновлён.")
}

// --- block / unblock ---

func (b *Bot) startBlockUser(msg *tgbotapi.Message, block bool) {
	if !b.requireAdmin(msg) {
		return
	}
	b.states.set(msg.From.ID, stateBlockUser{Block: block})
	b.replyWithKeyboard(msg.Chat.ID, "Введите числовой ID пользователя:", cancelKeyboard())
}

func (b *Bot) handleBlockUser(msg *tgbotapi.Message, st stateBlockUser) {
	id, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
	if err != nil || id <= 0 {
		b.reply(msg.Chat.ID, "ID должен быть положительным числом.")
		return
	}
	role := models.RoleUser
	if st.Block {
		role = models.RoleBlocked
	}
	if _, err := b.engine.SetRole(id, role); err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.clear(msg.From.ID)
	action := "разблокирован"
	if st.Block {
		action = "заблокирован"
	}
	b.showMainMenu(msg.Chat.ID, msg.From.ID, fmt.Sprintf("Пользователь %d %s.", id, action))
}

// --- balance adjustment ---

func (b *Bot) startAdjustBalance(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}
	b.states.set(msg.From.ID, stateBalanceUser{})
	b.replyWithKeyboard(msg.Chat.ID, "Введите числовой ID пользователя:", cancelKeyboard())
}

func (b *Bot) handleBalanceUser(msg *tgbotapi.Message) {
	id, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
	if err != nil || id <= 0 {
		b.reply(msg.Chat.ID, "ID должен быть положительным числом.")
		return
	}
	user, err := b.users.GetByID(id)
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.set(msg.From.ID, stateBalanceDelta{UserID: id})
	b.reply(msg.Chat.ID, fmt.Sprintf(
		"Текущий баланс %s: %s руб.\nВведите сумму изменения (отрицательная — списание):",
		user.Username, models.FormatMoney(user.Balance)))
}

func (b *Bot) handleBalanceDelta(msg *tgbotapi.Message, st stateBalanceDelta) {
	delta, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(msg.Text), ",", ".", 1))
	if err != nil {
		b.reply(msg.Chat.ID, "Введите число, например 500 или -250.")
		return
	}
	user, err := b.engine.AdjustBalance(st.UserID, delta)
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.clear(msg.From.ID)
	b.showMainMenu(msg.Chat.ID, msg.From.ID, fmt.Sprintf(
		"Баланс пользователя %d изменён. Новый баланс: %s руб.",
		st.UserID, models.FormatMoney(user.Balance)))
}

// --- personal discount ---

func (b *Bot) startSetDiscount(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}
	b.states.set(msg.From.ID, stateDiscountUser{})
	b.replyWithKeyboard(msg.Chat.ID, "Введите числовой ID пользователя:", cancelKeyboard())
}

func (b *Bot) handleDiscountUser(msg *tgbotapi.Message) {
	id, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
	if err != nil || id <= 0 {
		b.reply(msg.Chat.ID, "ID должен быть положительным числом.")
		return
	}
	b.states.set(msg.From.ID, stateDiscountValue{UserID: id})
	b.reply(msg.Chat.ID, "Введите скидку в процентах (0–100):")
}

func (b *Bot) handleDiscountValue(msg *tgbotapi.Message, st stateDiscountValue) {
	value, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(msg.Text), ",", ".", 1))
	if err != nil {
		b.reply(msg.Chat.ID, "Введите число, например 5 или 7.5.")
		return
	}
	if _, err := b.engine.SetDiscount(st.UserID, value); err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.clear(msg.From.ID)
	b.showMainMenu(msg.Chat.ID, msg.From.ID,
		fmt.Sprintf("Скидка пользователя %d установлена: %s%%.", st.UserID, value))
}

// --- referral tiers ---

func (b *Bot) startSetTiers(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}
	b.states.set(msg.From.ID, stateSetTiers{})
	b.replyWithKeyboard(msg.Chat.ID,
		"Введите уровни, по одному в строке, в формате «мин-макс процент».\n"+
			"Для последнего уровня можно указать «мин+ процент».\n\n"+
			"Пример:\n1-10 10\n11-25 12.5\n26+ 15",
		cancelKeyboard())
}

func (b *Bot) handleSetTiers(msg *tgbotapi.Message) {
	table, err := parseTierTable(msg.Text)
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	if err := b.config.SetReferralTable(table); err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.clear(msg.From.ID)
	b.showMainMenu(msg.Chat.ID, msg.From.ID, "Реферальные уровни обновлены.")
}

// parseTierTable reads one "min-max percentage" tier per line; "min+"
// marks an open-ended tier.
func parseTierTable(input string) (models.ReferralTable, error) {
	var table models.ReferralTable
	for _, line := range strings.Split(strings.TrimSpace(input), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return table, models.NewValidationError("строка %q: ожидается «диапазон процент»", line)
		}
		percentage, err := decimal.NewFromString(strings.Replace(fields[1], ",", ".", 1))
		if err != nil {
			return table, models.NewValidationError("строка %q: не удалось прочитать процент", line)
		}
		tier := models.ReferralTier{Percentage: percentage}
		switch {
		case strings.HasSuffix(fields[0], "+"):
			min, err := strconv.Atoi(strings.TrimSuffix(fields[0], "+"))
			if err != nil {
				return table, models.NewValidationError("строка %q: не удалось прочитать диапазон", line)
			}
			tier.Min = min
		default:
			parts := strings.SplitN(fields[0], "-", 2)
			if len(parts) != 2 {
				return table, models.NewValidationError("строка %q: диапазон задаётся как «мин-макс»", line)
			}
			min, err1 := strconv.Atoi(parts[0])
			max, err2 := strconv.Atoi(parts[1])
			if err1 != nil || err2 != nil {
				return table, models.NewValidationError("строка %q: не удалось прочитать диапазон", line)
			}
			tier.Min = min
			tier.Max = &max
		}
		table.Levels = append(table.Levels, tier)
	}
	if len(table.Levels) == 0 {
		return table, models.NewValidationError("не найдено ни одного уровня")
	}
	return table, nil
}

// --- currencies ---

func (b *Bot) startAddCurrency(msg *tgbotapi.Message, fiat bool) {
	if !b.requireAdmin(msg) {
		return
	}
	b.states.set(msg.From.ID, stateAddCurrency{Fiat: fiat})
	b.replyWithKeyboard(msg.Chat.ID,
		"Введите валюту в формате «КОД Название [символ]».\n"+
			"Повторный ввод существующего кода обновляет запись.\n"+
			"Чтобы отключить валюту, добавьте в конце слово «выкл».",
		cancelKeyboard())
}

func (b *Bot) handleAddCurrency(msg *tgbotapi.Message, st stateAddCurrency) {
	fields := strings.Fields(msg.Text)
	if len(fields) < 2 {
		b.reply(msg.Chat.ID, "Нужны минимум код и название, например «LTC Litecoin».")
		return
	}
	cur := models.Currency{Code: fields[0], Enabled: true}
	rest := fields[1:]
	if last := rest[len(rest)-1]; strings.EqualFold(last, "выкл") {
		cur.Enabled = false
		rest = rest[:len(rest)-1]
	}
	if len(rest) > 1 && len([]rune(rest[len(rest)-1])) == 1 {
		cur.Symbol = rest[len(rest)-1]
		rest = rest[:len(rest)-1]
	}
	cur.Name = strings.Join(rest, " ")
	if cur.Name == "" {
		b.reply(msg.Chat.ID, "Название валюты не может быть пустым.")
		return
	}

	var err error
	if st.Fiat {
		err = b.config.UpsertFiatCurrency(cur)
	} else {
		err = b.config.UpsertCryptoCurrency(cur)
	}
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.clear(msg.From.ID)
	b.showMainMenu(msg.Chat.ID, msg.From.ID, fmt.Sprintf("Валюта %s сохранена.", cur.Code))
}

// --- custom commands ---

func (b *Bot) startAddCommand(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}
	b.states.set(msg.From.ID, stateCommandName{})
	b.replyWithKeyboard(msg.Chat.ID,
		"Введите имя команды (без пробелов и «/»):", cancelKeyboard())
}

func (b *Bot) startRemoveCommand(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}
	b.states.set(msg.From.ID, stateCommandName{Delete: true})
	b.replyWithKeyboard(msg.Chat.ID, "Введите имя удаляемой команды:", cancelKeyboard())
}

func (b *Bot) handleCommandName(msg *tgbotapi.Message, st stateCommandName) {
	name := strings.TrimSpace(msg.Text)
	if err := models.ValidateCommandName(name); err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	if st.Delete {
		if err := b.commands.Remove(name); err != nil {
			b.reply(msg.Chat.ID, errorText(err))
			return
		}
		b.states.clear(msg.From.ID)
		b.showMainMenu(msg.Chat.ID, msg.From.ID, fmt.Sprintf("Команда %q удалена.", name))
		return
	}
	b.states.set(msg.From.ID, stateCommandText{Name: name})
	b.reply(msg.Chat.ID, "Введите текст ответа:")
}

func (b *Bot) handleCommandText(msg *tgbotapi.Message, st stateCommandText) {
	if strings.TrimSpace(msg.Text) == "" {
		b.reply(msg.Chat.ID, "Текст ответа не может быть пустым.")
		return
	}
	b.states.set(msg.From.ID, stateCommandKeys{Name: st.Name, Response: msg.Text})
	b.reply(msg.Chat.ID, "Введите подписи кнопок через запятую, либо «-» если кнопки не нужны:")
}

func (b *Bot) handleCommandKeys(msg *tgbotapi.Message, st stateCommandKeys) {
	var buttons []string
	if text := strings.TrimSpace(msg.Text); text != "-" {
		for _, label := range strings.Split(text, ",") {
			if label = strings.TrimSpace(label); label != "" {
				buttons = append(buttons, label)
			}
		}
	}
	cmd := &models.CustomCommand{Command: st.Name, Response: st.Response, Buttons: buttons}
	if err := b.commands.Upsert(cmd); err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	b.states.clear(msg.From.ID)
	b.showMainMenu(msg.Chat.ID, msg.From.ID, fmt.Sprintf("Команда %q сохранена.", st.Name))
}

// --- stats ---

func (b *Bot) showStats(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}
	users, err := b.users.GetAll()
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}
	orders, err := b.orders.GetAll()
	if err != nil {
		b.reply(msg.Chat.ID, errorText(err))
		return
	}

	var active, inProgress, completed int
	totalVolume := decimal.Zero
	totalSpread := decimal.Zero
	for _, o := range orders {
		switch o.Status {
		case models.OrderActive:
			active++
		case models.OrderInProgress:
			inProgress++
		case models.OrderCompleted:
			completed++
			totalVolume = totalVolume.Add(o.Amount)
			if o.Spread != nil {
				totalSpread = totalSpread.Add(*o.Spread)
			}
		}
	}

	b.reply(msg.Chat.ID, fmt.Sprintf(
		"Статистика:\n"+
			"Пользователей: %d\n"+
			"Заявок всего: %d\n"+
			"  активных: %d\n"+
			"  в работе: %d\n"+
			"  завершённых: %d\n"+
			"Оборот: %s руб.\n"+
			"Спред: %s руб.",
		len(users), len(orders), active, inProgress, completed,
		models.FormatMoney(totalVolume), models.FormatMoney(totalSpread)))
}
