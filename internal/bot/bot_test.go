package bot

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bogem/id3v2/v2"

	"github.com/t8wy/coverbot/internal/artwork"
	"github.com/t8wy/coverbot/internal/config"
	"github.com/t8wy/coverbot/internal/groups"
	"github.com/t8wy/coverbot/internal/i18n"
	"github.com/t8wy/coverbot/internal/interactions"
	"github.com/t8wy/coverbot/internal/itunes"
	"github.com/t8wy/coverbot/internal/session"
	"github.com/t8wy/coverbot/internal/state"
)

type stubSearcher struct {
	calls   []itunes.Kind
	results map[itunes.Kind][]itunes.Candidate
	errs    map[itunes.Kind]error
}

func (s *stubSearcher) Search(query string, kind itunes.Kind) ([]itunes.Candidate, error) {
	s.calls = append(s.calls, kind)
	if err := s.errs[kind]; err != nil {
		return nil, err
	}
	return s.results[kind], nil
}

type stubFetcher struct {
	calls []string
	cover *artwork.Cover
	err   error
}

func (f *stubFetcher) FetchWithFallback(_ context.Context, hqURL, _ string) (*artwork.Cover, error) {
	f.calls = append(f.calls, hqURL)
	if f.err != nil {
		return nil, f.err
	}
	c := *f.cover
	c.SourceURL = hqURL
	return &c, nil
}

func testCandidates(n int) []itunes.Candidate {
	out := make([]itunes.Candidate, n)
	for i := range out {
		out[i] = itunes.Candidate{
			Title:      "Song " + string(rune('A'+i)),
			Artist:     "Artist",
			Album:      "Album",
			CoverURL:   "https://img.example/std.jpg",
			CoverURLHQ: "https://img.example/hq.jpg",
		}
	}
	return out
}

type testBot struct {
	*Bot
	searcher *stubSearcher
	fetcher  *stubFetcher
	store    *state.Manager
	log      *interactions.Log
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	searcher := &stubSearcher{
		results: map[itunes.Kind][]itunes.Candidate{
			itunes.KindSong: testCandidates(3),
		},
		errs: map[itunes.Kind]error{},
	}
	fetcher := &stubFetcher{
		cover: &artwork.Cover{
			Data: []byte("jpeg-bytes"),
			Assessment: artwork.Assessment{
				Width: 1000, Height: 1000,
				Quality: artwork.QualityHigh, IsValid: true,
			},
		},
	}

	store, err := state.OpenPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ilog, err := interactions.Open(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("open interactions: %v", err)
	}

	cfg := &config.Config{
		AdminIDs:        []int64{99},
		DefaultLanguage: "en",
		RetentionDays:   30,
	}

	b := New(cfg, searcher, fetcher,
		groups.NewCoordinator(searcher, logger),
		session.NewStore(), ilog, store, i18n.New("en"), logger)
	b.SetUsername("coverbot")

	return &testBot{Bot: b, searcher: searcher, fetcher: fetcher, store: store, log: ilog}
}

func privateMsg(userID int64, text string) Message {
	return Message{
		ChatID: userID, MessageID: 10,
		UserID: userID, Username: "tester", FirstName: "Terry",
		Text: text,
	}
}

func groupMsg(chatID, userID int64, text string) Message {
	m := privateMsg(userID, text)
	m.ChatID = chatID
	m.IsGroup = true
	return m
}

func TestHandle_StartGreetsUser(t *testing.T) {
	b := newTestBot(t)

	rs := b.Handle(privateMsg(1, "/start"))
	if len(rs) != 1 {
		t.Fatalf("got %d responses, want 1", len(rs))
	}
	if !strings.Contains(rs[0].Text, "Terry") {
		t.Errorf("welcome does not mention user: %q", rs[0].Text)
	}
}

func TestHandle_FreeTextSearchesSongs(t *testing.T) {
	b := newTestBot(t)

	rs := b.Handle(privateMsg(1, "bohemian rhapsody"))
	if len(rs) != 1 {
		t.Fatalf("got %d responses, want 1", len(rs))
	}
	if !strings.Contains(rs[0].Text, "bohemian rhapsody") {
		t.Errorf("results text missing query: %q", rs[0].Text)
	}
	if len(rs[0].Keyboard) != 3 {
		t.Fatalf("got %d keyboard rows, want 3", len(rs[0].Keyboard))
	}
	if rs[0].Keyboard[0][0].Data != "select_0" {
		t.Errorf("first button data = %q, want select_0", rs[0].Keyboard[0][0].Data)
	}

	if got := b.searcher.calls; len(got) != 1 || got[0] != itunes.KindSong {
		t.Errorf("searcher calls = %v, want [song]", got)
	}
}

func TestHandle_GroupFreeTextIgnored(t *testing.T) {
	b := newTestBot(t)

	if rs := b.Handle(groupMsg(-5, 1, "some song")); rs != nil {
		t.Errorf("group free text produced %d responses, want none", len(rs))
	}
}

func TestSearch_ProviderErrorFallsBackThroughChain(t *testing.T) {
	b := newTestBot(t)
	b.searcher.errs[itunes.KindSong] = &itunes.ProviderError{Status: 500}
	b.searcher.results[itunes.KindArtist] = testCandidates(2)

	rs := b.Handle(privateMsg(1, "/search queen"))
	if len(rs) != 1 || len(rs[0].Keyboard) == 0 {
		t.Fatalf("fallback search produced no results: %+v", rs)
	}

	want := []itunes.Kind{itunes.KindSong, itunes.KindArtist}
	if got := b.searcher.calls; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("searcher calls = %v, want %v", got, want)
	}
}

func TestSearch_NonProviderErrorDoesNotFallBack(t *testing.T) {
	b := newTestBot(t)
	b.searcher.errs[itunes.KindSong] = errors.New("context canceled")

	rs := b.Handle(privateMsg(1, "/search queen"))
	if len(rs) != 1 || rs[0].Keyboard != nil {
		t.Fatalf("expected plain error response, got %+v", rs)
	}
	if len(b.searcher.calls) != 1 {
		t.Errorf("searcher called %d times, want 1", len(b.searcher.calls))
	}
}

func TestSearch_NoResults(t *testing.T) {
	b := newTestBot(t)
	b.searcher.results[itunes.KindSong] = nil

	rs := b.Handle(privateMsg(1, "/search nothing"))
	if len(rs) != 1 || !strings.Contains(rs[0].Text, "No results") {
		t.Errorf("response = %+v, want no-results text", rs)
	}
}

func TestCallback_SelectDeliversCoverAndRecordsSelection(t *testing.T) {
	b := newTestBot(t)
	msg := privateMsg(1, "abba")
	b.Handle(msg)

	rs := b.HandleCallback(Callback{Message: msg, Data: "select_1"})
	if len(rs) != 1 {
		t.Fatalf("got %d responses, want 1", len(rs))
	}
	if len(rs[0].Photo) == 0 {
		t.Fatal("no photo in response")
	}
	if !strings.Contains(rs[0].PhotoCaption, "1000×1000") {
		t.Errorf("caption missing quality line: %q", rs[0].PhotoCaption)
	}
	if len(b.fetcher.calls) != 1 || b.fetcher.calls[0] != "https://img.example/hq.jpg" {
		t.Errorf("fetcher calls = %v, want the HQ URL", b.fetcher.calls)
	}

	sels, err := b.store.UserSelections(1, 10)
	if err != nil {
		t.Fatalf("UserSelections() error = %v", err)
	}
	if len(sels) != 1 || sels[0].Title != "Song B" {
		t.Errorf("selections = %+v, want one for Song B", sels)
	}
}

func TestCallback_SelectWithoutContext(t *testing.T) {
	b := newTestBot(t)

	rs := b.HandleCallback(Callback{Message: privateMsg(1, ""), Data: "select_0"})
	if len(rs) != 1 || rs[0].Photo != nil {
		t.Errorf("response = %+v, want plain error text", rs)
	}
}

func TestCallback_FetchFailure(t *testing.T) {
	b := newTestBot(t)
	b.fetcher.err = &artwork.ImageError{Reason: "download failed"}
	msg := privateMsg(1, "abba")
	b.Handle(msg)

	rs := b.HandleCallback(Callback{Message: msg, Data: "select_0"})
	if len(rs) != 1 || rs[0].Photo != nil {
		t.Fatalf("response = %+v, want error text", rs)
	}
	if !strings.Contains(rs[0].Text, "error occurred") {
		t.Errorf("text = %q, want loading error", rs[0].Text)
	}
}

func TestCallback_InvalidImageReported(t *testing.T) {
	b := newTestBot(t)
	b.fetcher.err = &artwork.ValidationError{
		Assessment: artwork.Assessment{Width: 1200, Height: 800},
	}
	msg := privateMsg(1, "abba")
	b.Handle(msg)

	rs := b.HandleCallback(Callback{Message: msg, Data: "select_0"})
	if len(rs) != 1 || rs[0].Photo != nil {
		t.Fatalf("response = %+v, want error text", rs)
	}
	if !strings.Contains(rs[0].Text, "image is invalid") {
		t.Errorf("text = %q, want invalid-image message", rs[0].Text)
	}
	if !strings.Contains(rs[0].Text, "1200x800") {
		t.Errorf("text = %q, want offending dimensions", rs[0].Text)
	}
}

func TestCallback_SelectAfterIdleTimeout(t *testing.T) {
	b := newTestBot(t)
	// An already-expired timeout drops the session between any two
	// updates, taking the remembered result set with it.
	b.sessions = session.NewStoreTTL(-time.Nanosecond)
	msg := privateMsg(1, "abba")
	b.Handle(msg)

	rs := b.HandleCallback(Callback{Message: msg, Data: "select_0"})
	if len(rs) != 1 || rs[0].Photo != nil {
		t.Fatalf("response = %+v, want plain error text", rs)
	}
	if len(b.fetcher.calls) != 0 {
		t.Errorf("fetcher calls = %v, want none after expiry", b.fetcher.calls)
	}
}

func TestCallback_Pagination(t *testing.T) {
	b := newTestBot(t)
	b.searcher.results[itunes.KindSong] = testCandidates(12)
	msg := privateMsg(1, "long search")

	rs := b.Handle(msg)
	nav := rs[0].Keyboard[len(rs[0].Keyboard)-1]
	if len(nav) != 1 || nav[0].Data != "next_1" {
		t.Fatalf("first page nav = %+v, want single next_1", nav)
	}

	rs = b.HandleCallback(Callback{Message: msg, Data: "next_1"})
	if len(rs) != 1 {
		t.Fatalf("got %d responses, want 1", len(rs))
	}
	if rs[0].EditMessageID != msg.MessageID {
		t.Errorf("EditMessageID = %d, want %d", rs[0].EditMessageID, msg.MessageID)
	}
	if rs[0].Keyboard[0][0].Data != "select_5" {
		t.Errorf("first button on page 2 = %q, want select_5", rs[0].Keyboard[0][0].Data)
	}

	nav = rs[0].Keyboard[len(rs[0].Keyboard)-1]
	if len(nav) != 2 || nav[0].Data != "prev_0" || nav[1].Data != "next_2" {
		t.Errorf("page 2 nav = %+v, want prev_0 and next_2", nav)
	}
}

func TestCallback_LanguagePersistsAndConfirms(t *testing.T) {
	b := newTestBot(t)

	rs := b.HandleCallback(Callback{Message: privateMsg(1, ""), Data: "lang_es"})
	if len(rs) != 1 || !strings.Contains(rs[0].Text, "Español") {
		t.Fatalf("response = %+v, want Spanish confirmation", rs)
	}

	lang, err := b.store.GetLanguage(1)
	if err != nil {
		t.Fatalf("GetLanguage() error = %v", err)
	}
	if lang != "es" {
		t.Errorf("stored language = %q, want es", lang)
	}

	b.searcher.results[itunes.KindSong] = nil
	rs = b.Handle(privateMsg(1, "/search nothing that exists"))
	if !strings.Contains(rs[0].Text, "No se encontraron") {
		t.Errorf("follow-up not in Spanish: %q", rs[0].Text)
	}
}

func TestGroupFlow_VoteFinalizeSelect(t *testing.T) {
	b := newTestBot(t)
	b.searcher.results[itunes.KindArtist] = testCandidates(2)
	const groupID = -100

	rs := b.Handle(groupMsg(groupID, 1, "/groupsearch queen"))
	if len(rs) != 1 || len(rs[0].Keyboard) != 2 {
		t.Fatalf("groupsearch response = %+v, want poll keyboard", rs)
	}

	vote := func(userID int64, data string) []Response {
		return b.HandleCallback(Callback{Message: groupMsg(groupID, userID, ""), Data: data})
	}

	vote(2, "group_vote_artist")
	rs = vote(3, "group_vote_artist")
	if !strings.Contains(rs[0].Text, "Artist: 2 votes") {
		t.Errorf("tally text = %q, want 2 artist votes", rs[0].Text)
	}

	rs = vote(2, "group_finalize")
	if !strings.Contains(rs[0].Text, "initiator") {
		t.Errorf("non-initiator finalize = %q, want initiator-only text", rs[0].Text)
	}

	rs = vote(1, "group_finalize")
	if len(rs) != 2 {
		t.Fatalf("finalize produced %d responses, want closed + results", len(rs))
	}
	if !strings.Contains(rs[0].Text, "artist") {
		t.Errorf("closed text = %q, want winning type", rs[0].Text)
	}
	if rs[1].Keyboard[0][0].Data != "group_select_0" {
		t.Errorf("results button = %q, want group_select_0", rs[1].Keyboard[0][0].Data)
	}

	rs = vote(2, "group_select_0")
	if len(rs) != 2 || len(rs[1].Photo) == 0 {
		t.Fatalf("select responses = %+v, want announce + photo", rs)
	}

	sels, err := b.store.GroupSelections(groupID, 10)
	if err != nil {
		t.Fatalf("GroupSelections() error = %v", err)
	}
	if len(sels) != 1 || sels[0].GroupID != groupID {
		t.Errorf("group selections = %+v, want one for the group", sels)
	}
}

func TestGroupFlow_VoteWithoutPoll(t *testing.T) {
	b := newTestBot(t)

	rs := b.Handle(groupMsg(-7, 1, "/vote song"))
	if len(rs) != 1 || !strings.Contains(rs[0].Text, "No active poll") {
		t.Errorf("response = %+v, want no-active-poll text", rs)
	}
}

func TestGroupFlow_InvalidVoteKind(t *testing.T) {
	b := newTestBot(t)
	b.Handle(groupMsg(-7, 1, "/groupsearch abba"))

	rs := b.Handle(groupMsg(-7, 1, "/vote playlist"))
	if len(rs) != 1 || !strings.Contains(rs[0].Text, "Invalid option") {
		t.Errorf("response = %+v, want invalid-option text", rs)
	}
}

func TestCommand_StatsIncludesLastSearch(t *testing.T) {
	b := newTestBot(t)

	b.Handle(privateMsg(1, "abba"))

	rs := b.Handle(privateMsg(1, "/stats"))
	if len(rs) != 1 {
		t.Fatalf("got %d responses, want 1", len(rs))
	}
	if !strings.Contains(rs[0].Text, "Number of searches: 1") {
		t.Errorf("stats = %q, want search count", rs[0].Text)
	}
	if !strings.Contains(rs[0].Text, "Last search: abba") {
		t.Errorf("stats = %q, want last search line", rs[0].Text)
	}
}

func TestAdmin_NonAdminDenied(t *testing.T) {
	b := newTestBot(t)

	for _, cmd := range []string{"/admin_stats", "/broadcast hi", "/export", "/cleanup"} {
		rs := b.Handle(privateMsg(1, cmd))
		if len(rs) != 1 || !strings.Contains(rs[0].Text, "admins only") {
			t.Errorf("%s by non-admin = %+v, want denial", cmd, rs)
		}
	}
}

func TestAdmin_StatsAndBroadcast(t *testing.T) {
	b := newTestBot(t)

	// Seed activity from two regular users.
	b.Handle(privateMsg(1, "abba"))
	b.Handle(privateMsg(2, "queen"))

	// The admin's own command is logged too, so three users total.
	rs := b.Handle(privateMsg(99, "/admin_stats"))
	if len(rs) != 1 || !strings.Contains(rs[0].Text, "Users: 3") {
		t.Errorf("admin stats = %+v, want user count", rs)
	}

	rs = b.Handle(privateMsg(99, "/broadcast maintenance tonight"))
	var targeted int
	for _, r := range rs {
		if r.ChatID != 0 {
			targeted++
			if r.Text != "maintenance tonight" {
				t.Errorf("broadcast text = %q", r.Text)
			}
		}
	}
	// The admin is skipped; only the two regular users are targeted.
	if targeted != 2 {
		t.Errorf("broadcast targeted %d chats, want 2", targeted)
	}
}

func TestAdmin_ExportAndCleanup(t *testing.T) {
	b := newTestBot(t)
	b.Handle(privateMsg(1, "abba"))

	rs := b.Handle(privateMsg(99, "/export 1 csv"))
	if len(rs) != 1 || rs[0].DocumentPath == "" {
		t.Fatalf("export response = %+v, want document", rs)
	}
	if _, err := os.Stat(rs[0].DocumentPath); err != nil {
		t.Errorf("export file missing: %v", err)
	}

	rs = b.Handle(privateMsg(99, "/cleanup 7"))
	if len(rs) != 1 || !strings.Contains(rs[0].Text, "older than 7 days") {
		t.Errorf("cleanup response = %+v", rs)
	}
}

func coverPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 600, 600))
	for i := range img.Pix {
		img.Pix[i] = 0x7f
	}
	img.Set(0, 0, color.White)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func writeTestMP3(t *testing.T, withCover bool) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "track.mp3")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("create file: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open tag: %v", err)
	}
	defer tag.Close()

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle("Nightcall")
	tag.SetArtist("Kavinsky")
	tag.SetAlbum("OutRun")

	if withCover {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/png",
			PictureType: id3v2.PTFrontCover,
			Picture:     coverPNG(t),
		})
	}

	if err := tag.Save(); err != nil {
		t.Fatalf("save tag: %v", err)
	}
	return path
}

func TestHandleAudio_MetadataAndCover(t *testing.T) {
	b := newTestBot(t)
	msg := privateMsg(1, "")

	rs := b.HandleAudio(msg, writeTestMP3(t, true))
	if len(rs) != 2 {
		t.Fatalf("got %d responses, want metadata + cover", len(rs))
	}
	if !strings.Contains(rs[0].Text, "Nightcall") || !strings.Contains(rs[0].Text, "Kavinsky") {
		t.Errorf("metadata text = %q", rs[0].Text)
	}
	if len(rs[1].Photo) == 0 {
		t.Fatal("no embedded cover in response")
	}
	if !strings.Contains(rs[1].PhotoCaption, "600×600") {
		t.Errorf("cover caption = %q, want dimensions", rs[1].PhotoCaption)
	}

	// The prepared search button must run a provider search.
	rs = b.HandleCallback(Callback{Message: msg, Data: "audio_search"})
	if len(rs) != 1 || len(rs[0].Keyboard) == 0 {
		t.Fatalf("audio search responses = %+v, want result list", rs)
	}
	if got := b.searcher.calls; len(got) != 1 || got[0] != itunes.KindSong {
		t.Errorf("searcher calls = %v, want [song]", got)
	}
}

func TestHandleAudio_NoCoverOffersSearch(t *testing.T) {
	b := newTestBot(t)

	rs := b.HandleAudio(privateMsg(1, ""), writeTestMP3(t, false))
	if len(rs) != 2 {
		t.Fatalf("got %d responses, want metadata + prompt", len(rs))
	}
	if len(rs[1].Keyboard) != 1 || rs[1].Keyboard[0][0].Data != "audio_search" {
		t.Errorf("prompt keyboard = %+v, want audio_search button", rs[1].Keyboard)
	}
}

func TestHandleAudio_Undecodable(t *testing.T) {
	b := newTestBot(t)

	path := filepath.Join(t.TempDir(), "noise.xyz")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	rs := b.HandleAudio(privateMsg(1, ""), path)
	if len(rs) != 1 || !strings.Contains(rs[0].Text, "could not be read") {
		t.Errorf("response = %+v, want audio error", rs)
	}
}

func TestSplitCommand_MentionFiltering(t *testing.T) {
	b := newTestBot(t)

	if rs := b.Handle(groupMsg(-3, 1, "/results@otherbot")); rs != nil {
		t.Errorf("foreign mention handled: %+v", rs)
	}

	rs := b.Handle(groupMsg(-3, 1, "/results@coverbot"))
	if len(rs) != 1 || !strings.Contains(rs[0].Text, "No previous search results") {
		t.Errorf("own mention response = %+v", rs)
	}
}
