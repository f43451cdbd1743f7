package bot

import (
	"strconv"
	"strings"

	"github.com/t8wy/coverbot/internal/errmsg"
	"github.com/t8wy/coverbot/internal/i18n"
	"github.com/t8wy/coverbot/internal/itunes"
)

// HandleCallback routes an inline-button press by its data prefix.
// Unrecognized data is ignored so stale keyboards from old versions
// never crash a handler.
func (b *Bot) HandleCallback(cb Callback) []Response {
	data := cb.Data

	switch {
	case strings.HasPrefix(data, "select_"):
		return b.handleSelect(cb.Message, numSuffix(data, "select_"))
	case strings.HasPrefix(data, "prev_"):
		return b.handlePage(cb.Message, numSuffix(data, "prev_"))
	case strings.HasPrefix(data, "next_"):
		return b.handlePage(cb.Message, numSuffix(data, "next_"))
	case strings.HasPrefix(data, "lang_"):
		return b.handleLanguage(cb.Message, strings.TrimPrefix(data, "lang_"))
	case data == "group_vote_song":
		return b.handleGroupVote(cb.Message, itunes.KindSong)
	case data == "group_vote_artist":
		return b.handleGroupVote(cb.Message, itunes.KindArtist)
	case data == "group_vote_album":
		return b.handleGroupVote(cb.Message, itunes.KindAlbum)
	case data == "group_finalize":
		return b.handleGroupFinalize(cb.Message)
	case strings.HasPrefix(data, "group_select_"):
		return b.handleGroupSelect(cb.Message, numSuffix(data, "group_select_"))
	case data == "audio_search":
		return b.handleAudioSearch(cb.Message)
	default:
		b.slog.Warn("unknown callback data", "data", data)
		return nil
	}
}

// numSuffix parses the integer after a callback prefix. Malformed data
// parses as -1, which every index check rejects.
func numSuffix(data, prefix string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
	if err != nil {
		return -1
	}
	return n
}

// handleSelect resolves a result button against the user's remembered
// result set and delivers the cover.
func (b *Bot) handleSelect(msg Message, index int) []Response {
	sc := b.sessions.LastSearch(msg.UserID)
	if sc == nil || index < 0 || index >= len(sc.Results) {
		return []Response{{Text: b.text(msg.UserID, "error_loading", nil)}}
	}
	return b.deliverCover(msg, sc, index)
}

// handlePage re-renders the results message at the requested page.
func (b *Bot) handlePage(msg Message, page int) []Response {
	sc := b.sessions.LastSearch(msg.UserID)
	if sc == nil || page < 0 {
		return []Response{{Text: b.text(msg.UserID, "error_loading", nil)}}
	}
	sc.Page = page
	return []Response{b.resultsResponse(msg, sc, true)}
}

// handleLanguage persists a language pick and confirms in the newly
// chosen language.
func (b *Bot) handleLanguage(msg Message, code string) []Response {
	if !i18n.Supported(code) {
		return nil
	}

	if err := b.store.SetLanguage(msg.UserID, code); err != nil {
		b.slog.Error("save language", "user_id", msg.UserID, "error", err)
		return []Response{{Text: errmsg.Format(errmsg.OpLanguageSave, err)}}
	}

	return []Response{{
		Text:          b.tr.Text(code, "language_changed", nil),
		EditMessageID: msg.MessageID,
	}}
}
