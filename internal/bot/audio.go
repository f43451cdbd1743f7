package bot

import (
	"github.com/t8wy/coverbot/internal/artwork"
	"github.com/t8wy/coverbot/internal/i18n"
	"github.com/t8wy/coverbot/internal/itunes"
	"github.com/t8wy/coverbot/internal/session"
	"github.com/t8wy/coverbot/internal/tags"
)

// HandleAudio processes an uploaded audio file that the transport has
// already downloaded to path. Extracted metadata is shown, embedded
// art is delivered with its quality assessment, and a search button is
// offered when the tags are enough to build a query.
func (b *Bot) HandleAudio(msg Message, path string) []Response {
	b.logged(b.log.Command("audio_upload", nil, b.userInfo(msg), b.groupID(msg)))

	res := tags.Extract(path)
	if !res.Success {
		b.logged(b.log.Error(res.Err, "audio", b.userInfo(msg), b.groupID(msg)))
		return []Response{{Text: b.text(msg.UserID, "audio_error", nil)}}
	}

	meta := res.Metadata
	responses := []Response{{
		Text: b.text(msg.UserID, "audio_metadata", i18n.Args{
			"title":  orDash(meta.Title),
			"artist": orDash(meta.Artist),
			"album":  orDash(meta.Album),
		}),
	}}

	var searchRow [][]Button
	if query := meta.SearchQuery(); query != "" {
		b.sessions.SetLastSearch(msg.UserID, &session.SearchContext{Query: query, Kind: itunes.KindSong})
		searchRow = [][]Button{{{Label: "🔍 " + query, Data: "audio_search"}}}
	}

	if res.HasCover() {
		a := res.CoverQuality
		b.logged(b.log.Image("embedded", a.Width, a.Height, string(a.Quality),
			b.userInfo(msg), b.groupID(msg)))

		// Embedded pictures can be multi-megabyte; a thumbnail is
		// enough for the metadata reply. The original stays available
		// through the search flow.
		photo := res.Cover
		if preview, err := artwork.Preview(res.Cover); err == nil {
			photo = preview
		}

		responses = append(responses, Response{
			Photo: photo,
			PhotoCaption: b.text(msg.UserID, "audio_cover_found", i18n.Args{
				"width":   itoa(a.Width),
				"height":  itoa(a.Height),
				"quality": string(a.Quality),
			}),
			Keyboard: searchRow,
		})
		return responses
	}

	responses = append(responses, Response{
		Text:     b.text(msg.UserID, "audio_no_cover", nil),
		Keyboard: searchRow,
	})
	return responses
}

// handleAudioSearch runs the search prepared from an uploaded file's
// tags.
func (b *Bot) handleAudioSearch(msg Message) []Response {
	sc := b.sessions.LastSearch(msg.UserID)
	if sc == nil || sc.Query == "" {
		return []Response{{Text: b.text(msg.UserID, "error_loading", nil)}}
	}
	return b.search(msg, sc.Query, sc.Kind)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
