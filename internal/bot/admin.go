package bot

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/t8wy/coverbot/internal/errmsg"
	"github.com/t8wy/coverbot/internal/interactions"
)

// Admin replies are operator-facing and intentionally not localized.

func (b *Bot) requireAdmin(msg Message) []Response {
	if b.cfg.IsAdmin(msg.UserID) {
		return nil
	}
	return []Response{{Text: b.text(msg.UserID, "admin_only", nil)}}
}

// cmdAdminStats renders the aggregate overview for operators.
func (b *Bot) cmdAdminStats(msg Message) []Response {
	if deny := b.requireAdmin(msg); deny != nil {
		return deny
	}

	o := b.log.Stats()

	var sb strings.Builder
	sb.WriteString("📊 Bot statistics\n\n")
	fmt.Fprintf(&sb, "Interactions: %s\n", humanize.Comma(int64(o.TotalInteractions)))
	fmt.Fprintf(&sb, "Users: %s\n", humanize.Comma(int64(o.UserCount)))
	fmt.Fprintf(&sb, "Groups: %s\n", humanize.Comma(int64(o.GroupCount)))

	if len(o.TopCommands) > 0 {
		sb.WriteString("\nTop commands:\n")
		for _, c := range o.TopCommands {
			fmt.Fprintf(&sb, "  /%s × %d\n", c.Name, c.Count)
		}
	}
	if len(o.TopSearches) > 0 {
		sb.WriteString("\nTop searches:\n")
		for _, c := range o.TopSearches {
			fmt.Fprintf(&sb, "  %s × %d\n", c.Name, c.Count)
		}
	}

	return []Response{{Text: sb.String()}}
}

// cmdBroadcast sends a message to every user the bot has ever seen and
// reports the recipient count back to the operator.
func (b *Bot) cmdBroadcast(msg Message, text string) []Response {
	if deny := b.requireAdmin(msg); deny != nil {
		return deny
	}
	if text == "" {
		return []Response{{Text: "Usage: /broadcast <message>"}}
	}

	ids := b.log.UserIDs()
	responses := make([]Response, 0, len(ids)+1)
	for _, id := range ids {
		if id == msg.UserID {
			continue
		}
		responses = append(responses, Response{ChatID: id, Text: text})
	}
	responses = append(responses, Response{
		Text: fmt.Sprintf("Broadcast queued for %d users.", len(responses)),
	})

	b.slog.Info("broadcast", "admin_id", msg.UserID, "recipients", len(responses)-1)
	return responses
}

// cmdExport writes a user's interaction history to a file and sends it
// as a document. Arguments: [user_id] [json|csv], both optional; the
// default exports the caller's own history as JSON.
func (b *Bot) cmdExport(msg Message, args string) []Response {
	if deny := b.requireAdmin(msg); deny != nil {
		return deny
	}

	targetID := msg.UserID
	format := interactions.FormatJSON

	for _, arg := range strings.Fields(args) {
		switch arg {
		case "json":
			format = interactions.FormatJSON
		case "csv":
			format = interactions.FormatCSV
		default:
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return []Response{{Text: "Usage: /export [user_id] [json|csv]"}}
			}
			targetID = id
		}
	}

	path, err := b.log.ExportUser(targetID, format)
	if err != nil {
		return []Response{{Text: errmsg.FormatWith(errmsg.OpExportData,
			strconv.FormatInt(targetID, 10), err)}}
	}

	size := "unknown size"
	if fi, err := os.Stat(path); err == nil {
		size = humanize.Bytes(uint64(fi.Size()))
	}

	return []Response{{
		Text:         fmt.Sprintf("Export for user %d (%s).", targetID, size),
		DocumentPath: path,
	}}
}

// cmdCleanup prunes interaction files older than the given number of
// days, defaulting to the configured retention window.
func (b *Bot) cmdCleanup(msg Message, args string) []Response {
	if deny := b.requireAdmin(msg); deny != nil {
		return deny
	}

	days := b.cfg.RetentionDays
	if args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n <= 0 {
			return []Response{{Text: "Usage: /cleanup [days]"}}
		}
		days = n
	}

	removed, err := b.log.Prune(time.Duration(days) * 24 * time.Hour)
	if err != nil {
		return []Response{{Text: errmsg.Format(errmsg.OpCleanupData, err)}}
	}

	swept := b.sessions.Sweep()
	b.slog.Info("cleanup", "admin_id", msg.UserID,
		"files_removed", removed, "sessions_swept", swept)

	return []Response{{
		Text: fmt.Sprintf("Removed %d interaction files older than %d days.", removed, days),
	}}
}
