package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/t8wy/coverbot/internal/artwork"
	"github.com/t8wy/coverbot/internal/i18n"
	"github.com/t8wy/coverbot/internal/itunes"
	"github.com/t8wy/coverbot/internal/session"
	"github.com/t8wy/coverbot/internal/state"
)

// coverFetchTimeout bounds one cover download including the fallback
// attempt.
const coverFetchTimeout = 30 * time.Second

// fallbackOrder fixes the provider retry chain: a failed search is
// retried once per remaining kind, narrowing specificity.
var fallbackOrder = []itunes.Kind{itunes.KindSong, itunes.KindArtist, itunes.KindAlbum}

// fallbackChain returns the kinds to try for a search starting at
// kind, in order.
func fallbackChain(kind itunes.Kind) []itunes.Kind {
	for i, k := range fallbackOrder {
		if k == kind {
			return fallbackOrder[i:]
		}
	}
	return []itunes.Kind{kind}
}

// runSearch executes the search with the provider-error fallback
// chain. A provider failure moves on to the next kind; any other error
// aborts. The kind that actually produced the results is returned.
func (b *Bot) runSearch(query string, kind itunes.Kind) ([]itunes.Candidate, itunes.Kind, error) {
	var lastErr error
	for _, k := range fallbackChain(kind) {
		results, err := b.searcher.Search(query, k)
		if err != nil {
			var pe *itunes.ProviderError
			if errors.As(err, &pe) {
				b.slog.Warn("provider search failed, trying next kind",
					"query", query, "kind", string(k), "error", err)
				lastErr = err
				continue
			}
			return nil, k, err
		}
		return results, k, nil
	}
	return nil, kind, lastErr
}

// search runs a full search round for a private chat: log it, record
// it in the session, remember the result set for callbacks and render
// the first page.
func (b *Bot) search(msg Message, query string, kind itunes.Kind) []Response {
	b.logged(b.log.Search(query, string(kind), b.userInfo(msg), b.groupID(msg)))
	b.sessions.RecordSearch(msg.UserID, query)

	results, usedKind, err := b.runSearch(query, kind)
	if err != nil {
		b.logged(b.log.Error(err.Error(), "provider", b.userInfo(msg), b.groupID(msg)))
		return []Response{{Text: b.text(msg.UserID, "error_loading", nil)}}
	}
	if len(results) == 0 {
		return []Response{{Text: b.text(msg.UserID, "no_results", i18n.Args{"query": query})}}
	}

	sc := &session.SearchContext{Query: query, Kind: usedKind, Results: results}
	b.sessions.SetLastSearch(msg.UserID, sc)

	return []Response{b.resultsResponse(msg, sc, false)}
}

// resultsResponse renders one page of results with selection buttons
// and pagination. With edit set it replaces the existing results
// message instead of sending a new one.
func (b *Bot) resultsResponse(msg Message, sc *session.SearchContext, edit bool) Response {
	perPage := b.sessions.Get(msg.UserID).Preferences.MaxResults
	if perPage <= 0 {
		perPage = 5
	}

	if sc.Page < 0 || sc.Page*perPage >= len(sc.Results) {
		sc.Page = 0
	}
	start := sc.Page * perPage
	end := start + perPage
	if end > len(sc.Results) {
		end = len(sc.Results)
	}

	keyboard := make([][]Button, 0, perPage+1)
	for i := start; i < end; i++ {
		keyboard = append(keyboard, []Button{{
			Label: candidateLabel(i, sc.Results[i]),
			Data:  fmt.Sprintf("select_%d", i),
		}})
	}

	var nav []Button
	if sc.Page > 0 {
		nav = append(nav, Button{
			Label: b.text(msg.UserID, "btn_prev", nil),
			Data:  fmt.Sprintf("prev_%d", sc.Page-1),
		})
	}
	if end < len(sc.Results) {
		nav = append(nav, Button{
			Label: b.text(msg.UserID, "btn_next", nil),
			Data:  fmt.Sprintf("next_%d", sc.Page+1),
		})
	}
	if len(nav) > 0 {
		keyboard = append(keyboard, nav)
	}

	r := Response{
		Text: b.text(msg.UserID, "results_found", i18n.Args{
			"count": itoa(len(sc.Results)),
			"query": sc.Query,
		}),
		Keyboard: keyboard,
	}
	if edit {
		r.EditMessageID = msg.MessageID
	}
	return r
}

func candidateLabel(index int, c itunes.Candidate) string {
	if c.Title == "" {
		return fmt.Sprintf("%d. %s", index+1, c.Artist)
	}
	return fmt.Sprintf("%d. %s - %s", index+1, c.Title, c.Artist)
}

// deliverCover downloads the chosen candidate's art, records the
// selection and returns the photo reply. The high-quality URL is tried
// first when the user's preferences ask for it, with a single fallback
// to the standard size.
func (b *Bot) deliverCover(msg Message, sc *session.SearchContext, index int) []Response {
	c := sc.Results[index]
	prefs := b.sessions.Get(msg.UserID).Preferences

	selected := index
	b.logged(b.log.Result(sc.Query, string(sc.Kind), len(sc.Results),
		&selected, c.Title, b.userInfo(msg), b.groupID(msg)))

	ctx, cancel := context.WithTimeout(context.Background(), coverFetchTimeout)
	defer cancel()

	cover, err := b.fetcher.FetchWithFallback(ctx,
		itunes.CoverURLFor(c, prefs.HighQuality), c.CoverURL)
	if err != nil {
		b.logged(b.log.Error(err.Error(), "image", b.userInfo(msg), b.groupID(msg)))

		var ve *artwork.ValidationError
		if errors.As(err, &ve) {
			return []Response{{Text: b.text(msg.UserID, "invalid_image",
				i18n.Args{"error": ve.Error()})}}
		}
		var ie *artwork.ImageError
		if errors.As(err, &ie) && ie.Reason == "no URL" {
			return []Response{{Text: b.text(msg.UserID, "no_cover_found", nil)}}
		}
		return []Response{{Text: b.text(msg.UserID, "error_loading", nil)}}
	}

	data := cover.Data
	a := cover.Assessment

	// Medium-tier art is all the provider had; run the cosmetic
	// enhancement pass before sending it.
	if a.Quality == artwork.QualityMedium {
		if enhanced, err := artwork.Enhance(data); err == nil {
			data = enhanced.Data
			a = enhanced.After
		} else {
			b.slog.Warn("enhance cover", "url", cover.SourceURL, "error", err)
		}
	}

	b.logged(b.log.Image(cover.SourceURL, a.Width, a.Height, string(a.Quality),
		b.userInfo(msg), b.groupID(msg)))

	if err := b.store.AddSelection(state.SelectedCover{
		UserID:     msg.UserID,
		GroupID:    b.groupID(msg),
		Query:      sc.Query,
		SearchType: string(sc.Kind),
		Title:      c.Title,
		Artist:     c.Artist,
		Album:      c.Album,
		CoverURL:   cover.SourceURL,
		Quality:    string(a.Quality),
	}); err != nil {
		b.slog.Warn("save selection", "user_id", msg.UserID, "error", err)
	}

	caption := candidateCaption(c) + "\n\n" +
		b.text(msg.UserID, "image_quality", i18n.Args{
			"width":  itoa(a.Width),
			"height": itoa(a.Height),
		})

	return []Response{{Photo: data, PhotoCaption: caption}}
}

func candidateCaption(c itunes.Candidate) string {
	switch {
	case c.Title != "" && c.Artist != "":
		return c.Title + " - " + c.Artist
	case c.Title != "":
		return c.Title
	default:
		return c.Artist
	}
}
