package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"SwipeEstate/models"

	"go.uber.org/zap"
)

const maxFavoritesShown = 5

const (
	textServiceDown   = "The service is temporarily unavailable. Please try again later."
	textShareContact  = "Please register first. Tap the button below to share your phone number."
	textSessionExpire = "Your session has expired. Share your phone number again to continue."
	textFeedEmpty     = "No more matching listings. Try changing your filters on the website."
	textActionSaved   = "Saved"
)

// Backend is the part of BackendClient the dispatcher depends on.
type Backend interface {
	LoginOrRegister(ctx context.Context, telegramID int64, phone, name string) (string, error)
	NextListing(ctx context.Context, token string) (*models.Listing, error)
	SendAction(ctx context.Context, token string, listingID uint, action string) error
	Favorites(ctx context.Context, token string) ([]models.Listing, error)
	MyLeads(ctx context.Context, token string) ([]models.Lead, error)
}

// Messenger is the chat transport. Listings are sent with like, dislike and
// favorite buttons whose callback data is "<action>:<listing id>".
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	RequestContact(ctx context.Context, chatID int64, text string) error
	SendListing(ctx context.Context, chatID int64, text string, listingID uint) error
	EditListing(ctx context.Context, chatID int64, messageID int, text string, listingID uint) error
	EditText(ctx context.Context, chatID int64, messageID int, text string) error
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
}

type Sender struct {
	ID       int64
	FullName string
}

type Contact struct {
	Phone string
	// UserID is the Telegram account the contact belongs to; 0 when unknown.
	UserID int64
}

type Callback struct {
	ID        string
	ChatID    int64
	MessageID int
	From      Sender
	Data      string
}

// Dispatcher implements the bot conversation independently of the transport.
type Dispatcher struct {
	backend   Backend
	tokens    TokenStore
	messenger Messenger
	logger    *zap.Logger
}

func NewDispatcher(backend Backend, tokens TokenStore, messenger Messenger, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{backend: backend, tokens: tokens, messenger: messenger, logger: logger}
}

func (d *Dispatcher) Start(ctx context.Context, chatID int64, from Sender) error {
	name := from.FullName
	if name == "" {
		name = "friend"
	}
	text := fmt.Sprintf("Hi, %s!\n\nI will help you find a home.\nFirst share your phone number so we can identify you.", html.EscapeString(name))
	return d.messenger.RequestContact(ctx, chatID, text)
}

func (d *Dispatcher) Contact(ctx context.Context, chatID int64, from Sender, contact Contact) error {
	if contact.UserID != 0 && contact.UserID != from.ID {
		return d.messenger.RequestContact(ctx, chatID, "Please share your own phone number.")
	}

	token, err := d.backend.LoginOrRegister(ctx, from.ID, contact.Phone, from.FullName)
	if err != nil {
		d.logger.Error("bot login failed", zap.Int64("telegram_id", from.ID), zap.Error(err))
		return d.messenger.SendText(ctx, chatID, "Could not sign you in. Please try again later.")
	}
	if err := d.tokens.Set(ctx, from.ID, token); err != nil {
		d.logger.Error("storing bot token failed", zap.Int64("telegram_id", from.ID), zap.Error(err))
		return d.messenger.SendText(ctx, chatID, textServiceDown)
	}

	return d.messenger.SendText(ctx, chatID,
		"Done!\n\nUse /search to browse listings.\n/favorites shows your favorites\n/leads shows your responses")
}

func (d *Dispatcher) Search(ctx context.Context, chatID int64, from Sender) error {
	token, ok, err := d.requireToken(ctx, chatID, from.ID)
	if !ok {
		return err
	}
	return d.sendNextListing(ctx, chatID, from.ID, token)
}

func (d *Dispatcher) Favorites(ctx context.Context, chatID int64, from Sender) error {
	token, ok, err := d.requireToken(ctx, chatID, from.ID)
	if !ok {
		return err
	}

	listings, err := d.backend.Favorites(ctx, token)
	if err != nil {
		return d.backendFailed(ctx, chatID, from.ID, err, "Could not load your favorites.")
	}
	if len(listings) == 0 {
		return d.messenger.SendText(ctx, chatID, "You have no favorite listings yet.")
	}

	if len(listings) > maxFavoritesShown {
		listings = listings[:maxFavoritesShown]
	}
	parts := make([]string, 0, len(listings))
	for i := range listings {
		parts = append(parts, FormatListing(&listings[i]))
	}
	return d.messenger.SendText(ctx, chatID, "<b>Your favorites:</b>\n\n"+strings.Join(parts, "\n"))
}

func (d *Dispatcher) Leads(ctx context.Context, chatID int64, from Sender) error {
	token, ok, err := d.requireToken(ctx, chatID, from.ID)
	if !ok {
		return err
	}

	leads, err := d.backend.MyLeads(ctx, token)
	if err != nil {
		return d.backendFailed(ctx, chatID, from.ID, err, "Could not load your responses.")
	}
	if len(leads) == 0 {
		return d.messenger.SendText(ctx, chatID, "You have not liked any listings yet.")
	}
	return d.messenger.SendText(ctx, chatID, fmt.Sprintf("You have %d responses to listings.", len(leads)))
}

// Callback handles a swipe button: record the action, then replace the card
// with the next listing.
func (d *Dispatcher) Callback(ctx context.Context, cb Callback) error {
	action, listingID, ok := parseCallbackData(cb.Data)
	if !ok {
		return d.messenger.AnswerCallback(ctx, cb.ID, "Invalid data", true)
	}

	token, found, err := d.tokens.Get(ctx, cb.From.ID)
	if err != nil {
		d.logger.Error("reading bot token failed", zap.Int64("telegram_id", cb.From.ID), zap.Error(err))
		return d.messenger.AnswerCallback(ctx, cb.ID, textServiceDown, true)
	}
	if !found {
		return d.messenger.AnswerCallback(ctx, cb.ID, "Please sign in again with /start", true)
	}

	if err := d.backend.SendAction(ctx, token, listingID, action); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			d.forgetToken(ctx, cb.From.ID)
			return d.messenger.AnswerCallback(ctx, cb.ID, "Please sign in again with /start", true)
		}
		d.logger.Error("feed action failed", zap.Int64("telegram_id", cb.From.ID), zap.Error(err))
		return d.messenger.AnswerCallback(ctx, cb.ID, "Could not save the action", true)
	}

	next, err := d.backend.NextListing(ctx, token)
	if err != nil {
		d.logger.Error("loading next listing failed", zap.Int64("telegram_id", cb.From.ID), zap.Error(err))
		return d.messenger.AnswerCallback(ctx, cb.ID, textActionSaved, false)
	}
	if next == nil {
		if err := d.messenger.EditText(ctx, cb.ChatID, cb.MessageID, textFeedEmpty); err != nil {
			return err
		}
	} else if err := d.messenger.EditListing(ctx, cb.ChatID, cb.MessageID, FormatListing(next), next.ID); err != nil {
		return err
	}
	return d.messenger.AnswerCallback(ctx, cb.ID, textActionSaved, false)
}

func (d *Dispatcher) sendNextListing(ctx context.Context, chatID, telegramID int64, token string) error {
	listing, err := d.backend.NextListing(ctx, token)
	if err != nil {
		return d.backendFailed(ctx, chatID, telegramID, err, "Could not load listings.")
	}
	if listing == nil {
		return d.messenger.SendText(ctx, chatID, textFeedEmpty)
	}
	return d.messenger.SendListing(ctx, chatID, FormatListing(listing), listing.ID)
}

// requireToken asks for the contact when the user has no live session. The
// bool is false when the caller must stop.
func (d *Dispatcher) requireToken(ctx context.Context, chatID, telegramID int64) (string, bool, error) {
	token, found, err := d.tokens.Get(ctx, telegramID)
	if err != nil {
		d.logger.Error("reading bot token failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		return "", false, d.messenger.SendText(ctx, chatID, textServiceDown)
	}
	if !found {
		return "", false, d.messenger.RequestContact(ctx, chatID, textShareContact)
	}
	return token, true, nil
}

func (d *Dispatcher) backendFailed(ctx context.Context, chatID, telegramID int64, err error, text string) error {
	if errors.Is(err, ErrUnauthorized) {
		d.forgetToken(ctx, telegramID)
		return d.messenger.RequestContact(ctx, chatID, textSessionExpire)
	}
	d.logger.Error("backend request failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
	return d.messenger.SendText(ctx, chatID, text)
}

func (d *Dispatcher) forgetToken(ctx context.Context, telegramID int64) {
	if err := d.tokens.Delete(ctx, telegramID); err != nil {
		d.logger.Warn("dropping bot token failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}
}

func parseCallbackData(data string) (string, uint, bool) {
	action, rawID, found := strings.Cut(data, ":")
	if !found {
		return "", 0, false
	}
	switch action {
	case models.ActionLike, models.ActionDislike, models.ActionFavorite:
	default:
		return "", 0, false
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return "", 0, false
	}
	return action, uint(id), true
}

// CallbackData is the button payload parseCallbackData understands.
func CallbackData(action string, listingID uint) string {
	return action + ":" + strconv.FormatUint(uint64(listingID), 10)
}

// FormatListing renders a listing card in Telegram HTML.
func FormatListing(l *models.Listing) string {
	title := l.Title
	if title == "" {
		title = "Listing"
	}
	return fmt.Sprintf(
		"<b>%s</b>\nCity: <b>%s</b>\nDeal: <b>%s</b>\nType: <b>%s</b>\nPrice: <b>%s</b>\n",
		html.EscapeString(title),
		html.EscapeString(orDash(l.City)),
		html.EscapeString(orDash(l.DealType)),
		html.EscapeString(orDash(l.PropertyType)),
		strconv.FormatFloat(l.Price, 'f', -1, 64),
	)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
