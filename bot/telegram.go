package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramMessenger renders dispatcher output through the Bot API.
type TelegramMessenger struct {
	api *tgbotapi.BotAPI
}

func NewTelegramMessenger(api *tgbotapi.BotAPI) *TelegramMessenger {
	return &TelegramMessenger{api: api}
}

func (m *TelegramMessenger) SendText(_ context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	_, err := m.api.Send(msg)
	return err
}

func (m *TelegramMessenger) RequestContact(_ context.Context, chatID int64, text string) error {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact("Share phone number")),
	)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = true

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	_, err := m.api.Send(msg)
	return err
}

func (m *TelegramMessenger) SendListing(_ context.Context, chatID int64, text string, listingID uint) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = listingKeyboard(listingID)
	_, err := m.api.Send(msg)
	return err
}

func (m *TelegramMessenger) EditListing(_ context.Context, chatID int64, messageID int, text string, listingID uint) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, listingKeyboard(listingID))
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := m.api.Send(edit)
	return err
}

func (m *TelegramMessenger) EditText(_ context.Context, chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := m.api.Send(edit)
	return err
}

func (m *TelegramMessenger) AnswerCallback(_ context.Context, callbackID, text string, alert bool) error {
	answer := tgbotapi.NewCallback(callbackID, text)
	answer.ShowAlert = alert
	_, err := m.api.Request(answer)
	return err
}

func listingKeyboard(listingID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Like", CallbackData("like", listingID)),
			tgbotapi.NewInlineKeyboardButtonData("Skip", CallbackData("dislike", listingID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Add to favorites", CallbackData("favorite", listingID)),
		),
	)
}

// RunTelegram long-polls the Bot API and feeds updates to the dispatcher
// until ctx is cancelled.
func RunTelegram(ctx context.Context, api *tgbotapi.BotAPI, dispatcher *Dispatcher, logger *zap.Logger) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := api.GetUpdatesChan(cfg)
	defer api.StopReceivingUpdates()

	logger.Info("telegram bot polling", zap.String("username", api.Self.UserName))
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := handleUpdate(ctx, dispatcher, update); err != nil {
				logger.Error("handling telegram update failed", zap.Int("update_id", update.UpdateID), zap.Error(err))
			}
		}
	}
}

func handleUpdate(ctx context.Context, d *Dispatcher, update tgbotapi.Update) error {
	if cb := update.CallbackQuery; cb != nil {
		callback := Callback{ID: cb.ID, From: senderOf(cb.From), Data: cb.Data}
		if cb.Message != nil {
			callback.ChatID = cb.Message.Chat.ID
			callback.MessageID = cb.Message.MessageID
		}
		return d.Callback(ctx, callback)
	}

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return nil
	}
	from := senderOf(msg.From)
	chatID := msg.Chat.ID

	if msg.Contact != nil {
		return d.Contact(ctx, chatID, from, Contact{Phone: msg.Contact.PhoneNumber, UserID: msg.Contact.UserID})
	}
	if !msg.IsCommand() {
		return nil
	}
	switch msg.Command() {
	case "start":
		return d.Start(ctx, chatID, from)
	case "search":
		return d.Search(ctx, chatID, from)
	case "favorites":
		return d.Favorites(ctx, chatID, from)
	case "leads":
		return d.Leads(ctx, chatID, from)
	}
	return nil
}

func senderOf(u *tgbotapi.User) Sender {
	if u == nil {
		return Sender{}
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	return Sender{ID: u.ID, FullName: name}
}
