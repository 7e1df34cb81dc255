package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"memwatch/internal/logging"
	"memwatch/internal/memory"
	"memwatch/internal/metrics"
	"memwatch/internal/notify"
)

const (
	// CallbackMemory is the callback data carried by the "memory usage" button
	CallbackMemory = "memory"

	commandShow   = "show"
	commandAlerts = "alerts"

	updateTimeout = 60
)

// ErrBotStopped is returned by Run when the update stream closes.
var ErrBotStopped = errors.New("bot is stopped")

// API is the subset of *tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// SnapshotReader reads memory through the shared cache.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (memory.Snapshot, error)
}

// AlertToggle switches alerts on and off.
type AlertToggle interface {
	Enabled() bool
	Set(ctx context.Context, enabled bool) error
}

// Bot is the Telegram front end for a single group chat.
type Bot struct {
	api    API
	chatID int64
	memory SnapshotReader
	alerts AlertToggle
}

// New creates a bot serving chatID.
func New(api API, chatID int64, reader SnapshotReader, alerts AlertToggle) *Bot {
	return &Bot{
		api:    api,
		chatID: chatID,
		memory: reader,
		alerts: alerts,
	}
}

// Connect authenticates with the Bot API using token.
func Connect(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	logging.Info("Authorized on telegram account %s", api.Self.UserName)
	return api, nil
}

// Run consumes updates until ctx is done or the update stream closes.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = updateTimeout

	updates := b.api.GetUpdatesChan(cfg)
	logging.Info("Telegram bot started for chat %d", b.chatID)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			logging.Info("Telegram bot stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return ErrBotStopped
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	default:
		metrics.TelegramUpdatesTotal.WithLabelValues("ignored").Inc()
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil || msg.Chat.ID != b.chatID {
		metrics.TelegramUpdatesTotal.WithLabelValues("ignored").Inc()
		logging.Debug("Ignore unknown chat message from %d", chatID(msg))
		return
	}
	if !msg.IsCommand() {
		metrics.TelegramUpdatesTotal.WithLabelValues("ignored").Inc()
		return
	}

	metrics.TelegramUpdatesTotal.WithLabelValues("command").Inc()

	var err error
	switch msg.Command() {
	case commandShow:
		err = b.showMenu(msg)
	case commandAlerts:
		err = b.setAlerts(ctx, msg)
	default:
		logging.Debug("Ignore unknown command /%s", msg.Command())
	}

	if err != nil {
		logging.Error("Failed to handle /%s: %v", msg.Command(), err)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.Message.Chat == nil || cq.Message.Chat.ID != b.chatID {
		metrics.TelegramUpdatesTotal.WithLabelValues("ignored").Inc()
		logging.Debug("Ignore unknown chat callback %q", cq.Data)
		return
	}

	metrics.TelegramUpdatesTotal.WithLabelValues("callback").Inc()

	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		logging.Warn("Failed to answer callback query: %v", err)
	}

	switch cq.Data {
	case CallbackMemory:
		if err := b.sendMemory(ctx); err != nil {
			logging.Error("Failed to send memory usage: %v", err)
		}
	default:
		logging.Debug("Ignore unknown callback data %q", cq.Data)
	}
}

func (b *Bot) showMenu(msg *tgbotapi.Message) error {
	reply := tgbotapi.NewMessage(b.chatID, "<strong>choose type</strong>")
	reply.ParseMode = tgbotapi.ModeHTML
	reply.ReplyToMessageID = msg.MessageID
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("memory usage", CallbackMemory),
		),
	)

	_, err := b.api.Send(reply)
	return err
}

func (b *Bot) sendMemory(ctx context.Context) error {
	snap, err := b.memory.Snapshot(ctx)
	if err != nil {
		if nerr := b.NotifySelfError(ctx, fmt.Sprintf("get memory info failed: %v", err)); nerr != nil {
			return errors.Join(err, nerr)
		}
		return err
	}
	return b.NotifyMemory(ctx, snap.Total, snap.Used())
}

func (b *Bot) setAlerts(ctx context.Context, msg *tgbotapi.Message) error {
	var text string

	switch arg := strings.ToLower(strings.TrimSpace(msg.CommandArguments())); arg {
	case "":
		text = "alerts are " + onOff(b.alerts.Enabled())
	case "on", "off":
		enabled := arg == "on"
		if err := b.alerts.Set(ctx, enabled); err != nil {
			text = fmt.Sprintf("alerts are %s (not saved: %v)", onOff(enabled), err)
		} else {
			text = "alerts are " + onOff(enabled)
		}
	default:
		text = "usage: /alerts [on|off]"
	}

	reply := tgbotapi.NewMessage(b.chatID, text)
	reply.ReplyToMessageID = msg.MessageID
	_, err := b.api.Send(reply)
	return err
}

// NotifyMemory sends the memory summary to the group chat.
func (b *Bot) NotifyMemory(_ context.Context, total, used uint64) error {
	msg := tgbotapi.NewMessage(b.chatID, notify.MemoryHTML(total, used))
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}

// NotifySelfError sends a self-error message to the group chat.
func (b *Bot) NotifySelfError(_ context.Context, message string) error {
	msg := tgbotapi.NewMessage(b.chatID, notify.SelfErrorText(message))

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func chatID(msg *tgbotapi.Message) int64 {
	if msg.Chat == nil {
		return 0
	}
	return msg.Chat.ID
}
