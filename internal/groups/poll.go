// Package groups coordinates cover-search voting rounds in group chats.
package groups

import (
	"time"

	"github.com/t8wy/coverbot/internal/itunes"
)

// Status of a group poll. A poll is never cancelled explicitly;
// starting a new poll replaces the live one.
type Status string

const (
	StatusVoting    Status = "voting"
	StatusSearching Status = "searching"
	StatusCompleted Status = "completed"
)

// voteOrder fixes the tie-break priority between categories: the first
// category in this order among those sharing the maximum count wins.
var voteOrder = []itunes.Kind{itunes.KindSong, itunes.KindArtist, itunes.KindAlbum}

// Poll is one group's active or most recent voting round.
type Poll struct {
	Query       string
	InitiatorID int64
	MessageID   int

	votes map[itunes.Kind]map[int64]struct{}

	Status     Status
	SearchKind itunes.Kind
	Results    []itunes.Candidate

	StartedAt   time.Time
	FinalizedAt time.Time
}

func newPoll(query string, initiatorID int64, messageID int) *Poll {
	return &Poll{
		Query:       query,
		InitiatorID: initiatorID,
		MessageID:   messageID,
		votes: map[itunes.Kind]map[int64]struct{}{
			itunes.KindSong:   {},
			itunes.KindArtist: {},
			itunes.KindAlbum:  {},
		},
		Status:    StatusVoting,
		StartedAt: time.Now(),
	}
}

// castVote removes the user from every category set before inserting
// into the requested one, keeping each voter in at most one category.
func (p *Poll) castVote(userID int64, category itunes.Kind) {
	for _, set := range p.votes {
		delete(set, userID)
	}
	p.votes[category][userID] = struct{}{}
}

// winner picks the category with the most votes, breaking ties by the
// fixed song > artist > album priority.
func (p *Poll) winner() itunes.Kind {
	best := voteOrder[0]
	bestCount := len(p.votes[best])

	for _, k := range voteOrder[1:] {
		if n := len(p.votes[k]); n > bestCount {
			best, bestCount = k, n
		}
	}
	return best
}

// VoteCounts returns the current tally per category.
func (p *Poll) VoteCounts() map[itunes.Kind]int {
	counts := make(map[itunes.Kind]int, len(p.votes))
	for k, set := range p.votes {
		counts[k] = len(set)
	}
	return counts
}

// TotalVotes returns the number of users who have voted.
func (p *Poll) TotalVotes() int {
	total := 0
	for _, set := range p.votes {
		total += len(set)
	}
	return total
}

// Selection records one cover chosen from a completed poll.
type Selection struct {
	Query      string
	SearchKind itunes.Kind
	Candidate  itunes.Candidate
	SelectedAt time.Time
}

// CompletedPoll is a finished round kept in the group's results log
// after the live poll reference moves on.
type CompletedPoll struct {
	Query       string
	InitiatorID int64
	SearchKind  itunes.Kind
	VoteCounts  map[itunes.Kind]int
	ResultCount int
	FinalizedAt time.Time
}
