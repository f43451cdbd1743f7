// Package bot routes commands, free-text searches, callbacks and audio
// uploads to the search, voting and storage layers. It is transport
// neutral: handlers take plain messages and return rendered responses,
// and the chat adapter decides how to deliver them.
package bot

import (
	"context"
	"log/slog"

	"github.com/t8wy/coverbot/internal/artwork"
	"github.com/t8wy/coverbot/internal/config"
	"github.com/t8wy/coverbot/internal/groups"
	"github.com/t8wy/coverbot/internal/i18n"
	"github.com/t8wy/coverbot/internal/interactions"
	"github.com/t8wy/coverbot/internal/itunes"
	"github.com/t8wy/coverbot/internal/session"
	"github.com/t8wy/coverbot/internal/state"
)

// Searcher runs provider searches. Satisfied by *itunes.Client.
type Searcher interface {
	Search(query string, kind itunes.Kind) ([]itunes.Candidate, error)
}

// CoverFetcher downloads and assesses cover images. Satisfied by
// *artwork.Fetcher.
type CoverFetcher interface {
	FetchWithFallback(ctx context.Context, hqURL, stdURL string) (*artwork.Cover, error)
}

// Message is one incoming chat update.
type Message struct {
	ChatID    int64
	MessageID int
	UserID    int64
	Username  string
	FirstName string
	IsGroup   bool
	Text      string
}

// Callback is an inline-button press.
type Callback struct {
	Message
	Data string
}

// Button is one inline keyboard button. Data buttons round-trip
// through HandleCallback; URL buttons open externally.
type Button struct {
	Label string
	Data  string
	URL   string
}

// Response is one rendered reply. A zero ChatID targets the chat the
// update came from; EditMessageID > 0 edits an existing message
// instead of sending a new one.
type Response struct {
	ChatID        int64
	Text          string
	Markdown      bool
	Photo         []byte
	PhotoCaption  string
	DocumentPath  string
	Keyboard      [][]Button
	EditMessageID int
}

// Bot wires every subsystem together behind the handler entry points.
type Bot struct {
	cfg      *config.Config
	searcher Searcher
	fetcher  CoverFetcher
	polls    *groups.Coordinator
	sessions *session.Store
	log      *interactions.Log
	store    *state.Manager
	tr       *i18n.Translator
	slog     *slog.Logger

	// username is the bot's own handle, set once by the transport
	// after authentication. Used in share links and for stripping
	// /command@botname suffixes.
	username string
}

// SetUsername records the bot's own handle. Call before serving
// updates.
func (b *Bot) SetUsername(username string) {
	b.username = username
}

// New assembles a Bot from its dependencies.
func New(cfg *config.Config, searcher Searcher, fetcher CoverFetcher,
	polls *groups.Coordinator, sessions *session.Store, log *interactions.Log,
	store *state.Manager, tr *i18n.Translator, logger *slog.Logger,
) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		cfg:      cfg,
		searcher: searcher,
		fetcher:  fetcher,
		polls:    polls,
		sessions: sessions,
		log:      log,
		store:    store,
		tr:       tr,
		slog:     logger,
	}
}

// language resolves the user's stored language, falling back to the
// configured default.
func (b *Bot) language(userID int64) string {
	lang, err := b.store.GetLanguage(userID)
	if err != nil {
		b.slog.Warn("read user language", "user_id", userID, "error", err)
	}
	if lang == "" {
		return b.cfg.DefaultLanguage
	}
	return lang
}

func (b *Bot) text(userID int64, key string, args i18n.Args) string {
	return b.tr.Text(b.language(userID), key, args)
}

func (b *Bot) userInfo(msg Message) interactions.UserInfo {
	return interactions.UserInfo{
		ID:        msg.UserID,
		Username:  msg.Username,
		FirstName: msg.FirstName,
	}
}

func (b *Bot) groupID(msg Message) int64 {
	if msg.IsGroup {
		return msg.ChatID
	}
	return 0
}
