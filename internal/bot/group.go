package bot

import (
	"errors"
	"fmt"

	"github.com/t8wy/coverbot/internal/groups"
	"github.com/t8wy/coverbot/internal/i18n"
	"github.com/t8wy/coverbot/internal/itunes"
	"github.com/t8wy/coverbot/internal/session"
)

// cmdGroupSearch opens a voting round in a group chat. Outside a group
// the command is ignored; without a query it shows the help text.
func (b *Bot) cmdGroupSearch(msg Message, query string) []Response {
	if !msg.IsGroup {
		return nil
	}
	if query == "" {
		return []Response{{Text: b.text(msg.UserID, "help", nil), Markdown: true}}
	}

	b.polls.Start(msg.ChatID, query, msg.UserID, msg.MessageID)
	b.logged(b.log.Search(query, "group", b.userInfo(msg), msg.ChatID))

	name := msg.FirstName
	if name == "" {
		name = msg.Username
	}
	return []Response{{
		Text: b.text(msg.UserID, "group_search_start", i18n.Args{
			"query": query,
			"user":  name,
		}),
		Keyboard: b.voteKeyboard(msg.UserID),
	}}
}

// cmdVote records a vote given as text, e.g. "/vote artist".
func (b *Bot) cmdVote(msg Message, args string) []Response {
	if !msg.IsGroup {
		return nil
	}

	kind := itunes.Kind(args)
	if !kind.Valid() {
		return []Response{{Text: b.text(msg.UserID, "group_invalid_vote", nil)}}
	}

	if err := b.polls.Vote(msg.ChatID, msg.UserID, kind); err != nil {
		return []Response{{Text: b.pollErrorText(msg.UserID, err)}}
	}
	return []Response{b.voteStatusResponse(msg, 0)}
}

// cmdResults shows the group's most recent completed round.
func (b *Bot) cmdResults(msg Message) []Response {
	if !msg.IsGroup {
		return nil
	}

	log := b.polls.ResultsLog(msg.ChatID)
	if len(log) == 0 {
		return []Response{{Text: b.text(msg.UserID, "group_no_results", nil)}}
	}

	last := log[len(log)-1]
	return []Response{{
		Text: b.text(msg.UserID, "group_last_results", i18n.Args{
			"query": last.Query,
			"type":  string(last.SearchKind),
			"count": itoa(last.ResultCount),
		}),
	}}
}

func (b *Bot) voteKeyboard(userID int64) [][]Button {
	return [][]Button{
		{
			{Label: b.text(userID, "btn_song", nil), Data: "group_vote_song"},
			{Label: b.text(userID, "btn_artist", nil), Data: "group_vote_artist"},
			{Label: b.text(userID, "btn_album", nil), Data: "group_vote_album"},
		},
		{
			{Label: b.text(userID, "btn_finalize", nil), Data: "group_finalize"},
		},
	}
}

// voteStatusResponse renders the current tally with the vote keyboard.
// A non-zero editMessageID updates the poll message in place.
func (b *Bot) voteStatusResponse(msg Message, editMessageID int) Response {
	p := b.polls.Poll(msg.ChatID)
	if p == nil {
		return Response{Text: b.text(msg.UserID, "group_no_active_poll", nil)}
	}

	counts := p.VoteCounts()
	return Response{
		Text: b.text(msg.UserID, "group_current_votes", i18n.Args{
			"query":        p.Query,
			"song_votes":   itoa(counts[itunes.KindSong]),
			"artist_votes": itoa(counts[itunes.KindArtist]),
			"album_votes":  itoa(counts[itunes.KindAlbum]),
		}),
		Keyboard:      b.voteKeyboard(msg.UserID),
		EditMessageID: editMessageID,
	}
}

// handleGroupVote handles a vote button press, updating the poll
// message with the new tally.
func (b *Bot) handleGroupVote(msg Message, kind itunes.Kind) []Response {
	if err := b.polls.Vote(msg.ChatID, msg.UserID, kind); err != nil {
		return []Response{{Text: b.pollErrorText(msg.UserID, err)}}
	}
	return []Response{b.voteStatusResponse(msg, msg.MessageID)}
}

// handleGroupFinalize closes voting, runs the winning search and posts
// the selectable result list.
func (b *Bot) handleGroupFinalize(msg Message) []Response {
	p, err := b.polls.Finalize(msg.ChatID, msg.UserID)
	if err != nil {
		return []Response{{Text: b.pollErrorText(msg.UserID, err)}}
	}

	counts := p.VoteCounts()
	closed := Response{
		Text: b.text(msg.UserID, "group_vote_closed", i18n.Args{
			"query": p.Query,
			"type":  string(p.SearchKind),
			"count": itoa(counts[p.SearchKind]),
		}),
		EditMessageID: msg.MessageID,
	}

	if len(p.Results) == 0 {
		return []Response{closed,
			{Text: b.text(msg.UserID, "no_results", i18n.Args{"query": p.Query})}}
	}

	keyboard := make([][]Button, 0, len(p.Results))
	for i, c := range p.Results {
		keyboard = append(keyboard, []Button{{
			Label: candidateLabel(i, c),
			Data:  fmt.Sprintf("group_select_%d", i),
		}})
	}

	return []Response{closed, {
		Text: b.text(msg.UserID, "group_results", i18n.Args{
			"query": p.Query,
			"type":  string(p.SearchKind),
			"count": itoa(len(p.Results)),
		}),
		Keyboard: keyboard,
	}}
}

// handleGroupSelect picks one candidate from the completed poll and
// delivers its cover to the group.
func (b *Bot) handleGroupSelect(msg Message, index int) []Response {
	c, err := b.polls.Select(msg.ChatID, index)
	if err != nil {
		return []Response{{Text: b.pollErrorText(msg.UserID, err)}}
	}

	// The live poll may already have been replaced by a new round;
	// fall back to a single-candidate context in that case.
	sc := &session.SearchContext{Results: []itunes.Candidate{c}}
	resolved := 0
	if p := b.polls.Poll(msg.ChatID); p != nil && index < len(p.Results) {
		sc = &session.SearchContext{Query: p.Query, Kind: p.SearchKind, Results: p.Results}
		resolved = index
	}

	announce := Response{
		Text: b.text(msg.UserID, "group_selected_result", i18n.Args{
			"title":  c.Title,
			"artist": c.Artist,
		}),
		EditMessageID: msg.MessageID,
	}
	return append([]Response{announce}, b.deliverCover(msg, sc, resolved)...)
}

// pollErrorText maps coordinator rejections to localized messages.
// Anything that is not a state rejection reads as a load failure.
func (b *Bot) pollErrorText(userID int64, err error) string {
	var se *groups.StateError
	if !errors.As(err, &se) {
		return b.text(userID, "error_loading", nil)
	}

	switch se.Reason {
	case groups.ReasonNoPoll:
		return b.text(userID, "group_no_active_poll", nil)
	case groups.ReasonAlreadyClosed, groups.ReasonNotCompleted:
		return b.text(userID, "group_voting_closed", nil)
	case groups.ReasonNotInitiator:
		return b.text(userID, "group_initiator_only", nil)
	case groups.ReasonBadCategory:
		return b.text(userID, "group_invalid_vote", nil)
	default:
		return b.text(userID, "error_loading", nil)
	}
}
