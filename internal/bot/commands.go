package bot

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/t8wy/coverbot/internal/errmsg"
	"github.com/t8wy/coverbot/internal/i18n"
	"github.com/t8wy/coverbot/internal/itunes"
)

// Handle routes one incoming message. Commands dispatch by name; bare
// text in a private chat runs a song search. Bare text in groups is
// ignored, group searches go through /groupsearch.
func (b *Bot) Handle(msg Message) []Response {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	if strings.HasPrefix(text, "/") {
		cmd, args := b.splitCommand(text)
		return b.handleCommand(cmd, args, msg)
	}

	if msg.IsGroup {
		return nil
	}
	return b.search(msg, text, itunes.KindSong)
}

// splitCommand separates "/cmd@botname args" into name and argument
// string. The @botname suffix appears in groups with multiple bots.
func (b *Bot) splitCommand(text string) (string, string) {
	name, args, _ := strings.Cut(text, " ")
	name = strings.TrimPrefix(name, "/")
	if cmd, mention, ok := strings.Cut(name, "@"); ok {
		if b.username != "" && !strings.EqualFold(mention, b.username) {
			return "", ""
		}
		name = cmd
	}
	return name, strings.TrimSpace(args)
}

func (b *Bot) handleCommand(cmd, args string, msg Message) []Response {
	if cmd == "" {
		return nil
	}

	b.logged(b.log.Command(cmd, splitArgs(args), b.userInfo(msg), b.groupID(msg)))

	switch cmd {
	case "start":
		return b.cmdStart(msg)
	case "help":
		return []Response{{Text: b.text(msg.UserID, "help", nil), Markdown: true}}
	case "search":
		return b.cmdSearch(msg, args, itunes.KindSong)
	case "artist":
		return b.cmdSearch(msg, args, itunes.KindArtist)
	case "album":
		return b.cmdSearch(msg, args, itunes.KindAlbum)
	case "language":
		return b.cmdLanguage(msg)
	case "stats":
		return b.cmdStats(msg)
	case "share":
		return b.cmdShare(msg)
	case "groupsearch":
		return b.cmdGroupSearch(msg, args)
	case "vote":
		return b.cmdVote(msg, args)
	case "results":
		return b.cmdResults(msg)
	case "broadcast":
		return b.cmdBroadcast(msg, args)
	case "admin_stats":
		return b.cmdAdminStats(msg)
	case "export":
		return b.cmdExport(msg, args)
	case "cleanup":
		return b.cmdCleanup(msg, args)
	default:
		return []Response{{Text: b.text(msg.UserID, "help", nil), Markdown: true}}
	}
}

func (b *Bot) cmdStart(msg Message) []Response {
	name := msg.FirstName
	if name == "" {
		name = msg.Username
	}
	return []Response{{Text: b.text(msg.UserID, "welcome", i18n.Args{"user": name})}}
}

// cmdSearch runs an explicit /search, /artist or /album. A bare
// command without a query shows the help text.
func (b *Bot) cmdSearch(msg Message, query string, kind itunes.Kind) []Response {
	if query == "" {
		return []Response{{Text: b.text(msg.UserID, "help", nil), Markdown: true}}
	}
	return b.search(msg, query, kind)
}

func (b *Bot) cmdLanguage(msg Message) []Response {
	keyboard := make([][]Button, 0, len(i18n.SupportedLanguages))
	for _, lang := range i18n.SupportedLanguages {
		keyboard = append(keyboard, []Button{{Label: lang.Name, Data: "lang_" + lang.Code}})
	}
	return []Response{{Text: b.text(msg.UserID, "select_language", nil), Keyboard: keyboard}}
}

func (b *Bot) cmdShare(msg Message) []Response {
	shareText := b.text(msg.UserID, "share_text", i18n.Args{"bot_username": b.username})
	botURL := "https://t.me/" + b.username
	escaped := url.QueryEscape(shareText)

	keyboard := [][]Button{
		{{
			Label: b.text(msg.UserID, "btn_share_telegram", nil),
			URL:   "https://t.me/share/url?url=" + url.QueryEscape(botURL) + "&text=" + escaped,
		}},
		{{
			Label: b.text(msg.UserID, "btn_share_twitter", nil),
			URL:   "https://twitter.com/intent/tweet?text=" + escaped,
		}},
		{{
			Label: b.text(msg.UserID, "btn_share_facebook", nil),
			URL:   "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(botURL),
		}},
		{{
			Label: b.text(msg.UserID, "btn_share_whatsapp", nil),
			URL:   "https://wa.me/?text=" + escaped,
		}},
	}
	return []Response{{Text: b.text(msg.UserID, "share_message", nil), Keyboard: keyboard}}
}

// cmdStats renders the user's own activity rollup recomputed from the
// interaction log plus their selection count.
func (b *Bot) cmdStats(msg Message) []Response {
	report, err := b.log.UserReport(msg.UserID)
	if err != nil {
		return []Response{{Text: errmsg.Format(errmsg.OpInteractionRead, err)}}
	}

	searches := report.ByType["search"]
	var songs, artists, albums int
	for key, count := range report.Searches {
		switch {
		case strings.HasPrefix(key, "song:"):
			songs += count
		case strings.HasPrefix(key, "artist:"):
			artists += count
		case strings.HasPrefix(key, "album:"):
			albums += count
		}
	}

	lines := []string{
		b.text(msg.UserID, "stats_title", nil),
		"",
		b.text(msg.UserID, "stats_searches", i18n.Args{"count": itoa(searches)}),
		b.text(msg.UserID, "stats_songs", i18n.Args{"count": itoa(songs)}),
		b.text(msg.UserID, "stats_artists", i18n.Args{"count": itoa(artists)}),
		b.text(msg.UserID, "stats_albums", i18n.Args{"count": itoa(albums)}),
	}

	if top := topSearch(report.Searches); top != "" {
		lines = append(lines,
			b.text(msg.UserID, "stats_most_searched", i18n.Args{"item": top}))
	}

	if sc := b.sessions.LastSearch(msg.UserID); sc != nil && sc.Query != "" {
		lines = append(lines,
			b.text(msg.UserID, "stats_last_search", i18n.Args{
				"query": sc.Query,
				"time":  sc.At.Format("15:04"),
			}))
	}

	if selections, err := b.store.SelectionCount(msg.UserID); err != nil {
		b.slog.Warn("count selections", "user_id", msg.UserID, "error", err)
	} else if searches > 0 {
		rate := selections * 100 / searches
		if rate > 100 {
			rate = 100
		}
		lines = append(lines,
			b.text(msg.UserID, "stats_success_rate", i18n.Args{"rate": itoa(rate)}))
	}

	return []Response{{Text: strings.Join(lines, "\n"), Markdown: true}}
}

// topSearch returns the most frequent search query, stripped of its
// type prefix.
func topSearch(searches map[string]int) string {
	best, bestCount := "", 0
	for key, count := range searches {
		if best == "" || count > bestCount || (count == bestCount && key < best) {
			best, bestCount = key, count
		}
	}
	if _, query, ok := strings.Cut(best, ":"); ok {
		return query
	}
	return best
}

func splitArgs(args string) []string {
	if args == "" {
		return nil
	}
	return strings.Fields(args)
}

func (b *Bot) logged(err error) {
	if err != nil {
		b.slog.Warn("log interaction", "error", err)
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
