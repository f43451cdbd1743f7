// Package telegram connects the transport-neutral bot core to the
// Telegram Bot API: updates in, rendered responses out.
package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/t8wy/coverbot/internal/bot"
	"github.com/t8wy/coverbot/internal/errmsg"
)

const (
	pollTimeoutSeconds = 30

	// Telegram caps bot file downloads at 20 MB; anything larger never
	// reaches us.
	maxAudioBytes = 20 << 20
)

// Adapter runs the long-poll loop and translates between Telegram
// types and the bot core.
type Adapter struct {
	api     *tgbotapi.BotAPI
	core    *bot.Bot
	tempDir string
	log     *slog.Logger
}

// New authenticates against the Bot API and wires the core. tempDir
// holds downloaded audio files during tag extraction; empty means the
// OS temp directory.
func New(token string, core *bot.Bot, tempDir string, log *slog.Logger) (*Adapter, error) {
	if log == nil {
		log = slog.Default()
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authenticate bot: %w", err)
	}

	if tempDir == "" {
		tempDir = os.TempDir()
	}

	core.SetUsername(api.Self.UserName)
	log.Info("authenticated", "username", api.Self.UserName)

	return &Adapter{api: api, core: core, tempDir: tempDir, log: log}, nil
}

// Run consumes updates until the context is cancelled.
func (a *Adapter) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds

	updates := a.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			a.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			a.handleUpdate(update)
		}
	}
}

func (a *Adapter) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		a.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		a.handleMessage(update.Message)
	}
}

func (a *Adapter) handleMessage(m *tgbotapi.Message) {
	if m.From == nil {
		return
	}

	if fileID, name := audioFile(m); fileID != "" {
		path, err := a.downloadFile(fileID, name)
		if err != nil {
			a.log.Error(errmsg.FormatWith(errmsg.OpAudioDownload, name, err))
			return
		}
		defer os.Remove(path)

		a.deliver(m.Chat.ID, a.core.HandleAudio(fromMessage(m, m.From), path))
		return
	}

	a.deliver(m.Chat.ID, a.core.Handle(fromMessage(m, m.From)))
}

func (a *Adapter) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.From == nil {
		return
	}

	// Acknowledge immediately so the button stops spinning even when
	// the handler takes a while.
	if _, err := a.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		a.log.Warn("answer callback", "error", err)
	}

	a.deliver(cb.Message.Chat.ID, a.core.HandleCallback(bot.Callback{
		Message: fromMessage(cb.Message, cb.From),
		Data:    cb.Data,
	}))
}

// deliver sends each rendered response, falling back to the origin
// chat when the response does not name one.
func (a *Adapter) deliver(originChat int64, responses []bot.Response) {
	for _, r := range responses {
		chatID := r.ChatID
		if chatID == 0 {
			chatID = originChat
		}
		if err := a.send(chatID, r); err != nil {
			a.log.Error(errmsg.Format(errmsg.OpSendMessage, err))
		}
	}
}

func (a *Adapter) send(chatID int64, r bot.Response) error {
	markup := toInlineKeyboard(r.Keyboard)

	switch {
	case len(r.Photo) > 0:
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
			Name:  "cover.jpg",
			Bytes: r.Photo,
		})
		photo.Caption = r.PhotoCaption
		if markup != nil {
			photo.ReplyMarkup = markup
		}
		if _, err := a.api.Send(photo); err != nil {
			return fmt.Errorf("%s: %w", errmsg.OpSendPhoto, err)
		}

	case r.DocumentPath != "":
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(r.DocumentPath))
		doc.Caption = r.Text
		if _, err := a.api.Send(doc); err != nil {
			return err
		}

	case r.EditMessageID > 0:
		edit := tgbotapi.NewEditMessageText(chatID, r.EditMessageID, r.Text)
		if markup != nil {
			edit.ReplyMarkup = markup
		}
		if r.Markdown {
			edit.ParseMode = tgbotapi.ModeMarkdown
		}
		if _, err := a.api.Send(edit); err != nil {
			return fmt.Errorf("%s: %w", errmsg.OpEditMessage, err)
		}

	case r.Text != "":
		msg := tgbotapi.NewMessage(chatID, r.Text)
		if markup != nil {
			msg.ReplyMarkup = markup
		}
		if r.Markdown {
			msg.ParseMode = tgbotapi.ModeMarkdown
		}
		if _, err := a.api.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

// fromMessage converts a Telegram message, attributing it to the user
// who triggered the update rather than the message author. Callback
// messages are authored by the bot itself.
func fromMessage(m *tgbotapi.Message, from *tgbotapi.User) bot.Message {
	return bot.Message{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		UserID:    from.ID,
		Username:  from.UserName,
		FirstName: from.FirstName,
		IsGroup:   m.Chat.IsGroup() || m.Chat.IsSuperGroup(),
		Text:      m.Text,
	}
}

// toInlineKeyboard builds the Telegram markup, nil for an empty
// keyboard so plain messages carry no reply markup at all.
func toInlineKeyboard(keyboard [][]bot.Button) *tgbotapi.InlineKeyboardMarkup {
	if len(keyboard) == 0 {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			if btn.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(btn.Label, btn.URL))
				continue
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data))
		}
		rows = append(rows, buttons)
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

// audioFile picks the downloadable audio attachment from a message.
// Documents count only when their MIME type says audio.
func audioFile(m *tgbotapi.Message) (fileID, name string) {
	switch {
	case m.Audio != nil:
		return m.Audio.FileID, m.Audio.FileName
	case m.Voice != nil:
		return m.Voice.FileID, "voice.ogg"
	case m.Document != nil && strings.HasPrefix(m.Document.MimeType, "audio/"):
		return m.Document.FileID, m.Document.FileName
	}
	return "", ""
}

// downloadFile fetches a Telegram-hosted file into the temp directory,
// preserving the original extension so tag extraction can dispatch on
// it.
func (a *Adapter) downloadFile(fileID, name string) (string, error) {
	file, err := a.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("resolve file: %w", err)
	}

	ext := filepath.Ext(name)
	if ext == "" {
		ext = filepath.Ext(file.FilePath)
	}

	resp, err := http.Get(file.Link(a.api.Token))
	if err != nil {
		return "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	out, err := os.CreateTemp(a.tempDir, "audio-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, io.LimitReader(resp.Body, maxAudioBytes)); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("save file: %w", err)
	}
	return out.Name(), nil
}
