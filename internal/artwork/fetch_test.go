package artwork

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"testing"
)

type stubTransport struct {
	requests  []string
	responses map[string]*http.Response
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	url := req.URL.String()
	s.requests = append(s.requests, url)

	if resp, ok := s.responses[url]; ok {
		return resp, nil
	}
	return &http.Response{StatusCode: http.StatusNotFound, Body: http.NoBody}, nil
}

func imageResponse(t *testing.T, width, height int) *http.Response {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(buf.Bytes())),
	}
}

func newTestFetcher(transport http.RoundTripper) *Fetcher {
	return &Fetcher{httpClient: &http.Client{Transport: transport}}
}

func TestFetch_DownloadsAndAssesses(t *testing.T) {
	stub := &stubTransport{responses: map[string]*http.Response{
		"https://example.com/cover.png": imageResponse(t, 1200, 1200),
	}}
	f := newTestFetcher(stub)

	cover, err := f.Fetch(context.Background(), "https://example.com/cover.png")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if cover.Assessment.Quality != QualityHigh {
		t.Errorf("Quality = %q, want high", cover.Assessment.Quality)
	}
	if cover.SourceURL != "https://example.com/cover.png" {
		t.Errorf("SourceURL = %q", cover.SourceURL)
	}
}

func TestFetch_HTTPErrorIsImageError(t *testing.T) {
	f := newTestFetcher(&stubTransport{})

	_, err := f.Fetch(context.Background(), "https://example.com/missing.png")
	var ierr *ImageError
	if !errors.As(err, &ierr) {
		t.Fatalf("error = %v, want *ImageError", err)
	}
}

func TestFetch_EmptyURL(t *testing.T) {
	f := newTestFetcher(&stubTransport{})

	if _, err := f.Fetch(context.Background(), ""); err == nil {
		t.Fatal("Fetch(\"\") succeeded, want error")
	}
}

func TestFetchWithFallback_FallsBackOnce(t *testing.T) {
	stub := &stubTransport{responses: map[string]*http.Response{
		"https://example.com/600x600.png": imageResponse(t, 600, 600),
	}}
	f := newTestFetcher(stub)

	cover, err := f.FetchWithFallback(context.Background(),
		"https://example.com/1600x1600.png",
		"https://example.com/600x600.png")
	if err != nil {
		t.Fatalf("FetchWithFallback() error: %v", err)
	}

	if cover.SourceURL != "https://example.com/600x600.png" {
		t.Errorf("SourceURL = %q, want fallback URL", cover.SourceURL)
	}
	if len(stub.requests) != 2 {
		t.Errorf("made %d requests, want 2", len(stub.requests))
	}
}

func TestFetchWithFallback_InvalidImageTriggersFallback(t *testing.T) {
	stub := &stubTransport{responses: map[string]*http.Response{
		"https://example.com/hq.png":  imageResponse(t, 1200, 800),
		"https://example.com/std.png": imageResponse(t, 1000, 1000),
	}}
	f := newTestFetcher(stub)

	cover, err := f.FetchWithFallback(context.Background(),
		"https://example.com/hq.png",
		"https://example.com/std.png")
	if err != nil {
		t.Fatalf("FetchWithFallback() error: %v", err)
	}

	if cover.SourceURL != "https://example.com/std.png" {
		t.Errorf("SourceURL = %q, want fallback URL", cover.SourceURL)
	}
	if !cover.Assessment.IsValid {
		t.Error("returned cover is invalid, want the valid fallback")
	}
	if len(stub.requests) != 2 {
		t.Errorf("made %d requests, want 2", len(stub.requests))
	}
}

func TestFetchWithFallback_BothInvalid(t *testing.T) {
	stub := &stubTransport{responses: map[string]*http.Response{
		"https://example.com/hq.png":  imageResponse(t, 1200, 800),
		"https://example.com/std.png": imageResponse(t, 400, 400),
	}}
	f := newTestFetcher(stub)

	_, err := f.FetchWithFallback(context.Background(),
		"https://example.com/hq.png",
		"https://example.com/std.png")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.Assessment.Width != 400 {
		t.Errorf("Assessment.Width = %d, want the fallback's 400", verr.Assessment.Width)
	}
	if len(stub.requests) != 2 {
		t.Errorf("made %d requests, want exactly 2", len(stub.requests))
	}
}

func TestFetchWithFallback_InvalidWithoutFallbackURL(t *testing.T) {
	stub := &stubTransport{responses: map[string]*http.Response{
		"https://example.com/only.png": imageResponse(t, 1200, 800),
	}}
	f := newTestFetcher(stub)

	_, err := f.FetchWithFallback(context.Background(),
		"https://example.com/only.png",
		"https://example.com/only.png")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if len(stub.requests) != 1 {
		t.Errorf("made %d requests, want 1", len(stub.requests))
	}
}

func TestFetchWithFallback_NoSecondAttemptOnSuccess(t *testing.T) {
	stub := &stubTransport{responses: map[string]*http.Response{
		"https://example.com/hq.png": imageResponse(t, 1200, 1200),
	}}
	f := newTestFetcher(stub)

	cover, err := f.FetchWithFallback(context.Background(),
		"https://example.com/hq.png",
		"https://example.com/std.png")
	if err != nil {
		t.Fatalf("FetchWithFallback() error: %v", err)
	}

	if cover.SourceURL != "https://example.com/hq.png" {
		t.Errorf("SourceURL = %q, want HQ URL", cover.SourceURL)
	}
	if len(stub.requests) != 1 {
		t.Errorf("made %d requests, want 1", len(stub.requests))
	}
}

func TestFetchWithFallback_BothFail(t *testing.T) {
	stub := &stubTransport{}
	f := newTestFetcher(stub)

	_, err := f.FetchWithFallback(context.Background(),
		"https://example.com/hq.png",
		"https://example.com/std.png")
	var ierr *ImageError
	if !errors.As(err, &ierr) {
		t.Fatalf("error = %v, want *ImageError", err)
	}
	if len(stub.requests) != 2 {
		t.Errorf("made %d requests, want exactly 2", len(stub.requests))
	}
}

func TestFetchWithFallback_IdenticalURLsSingleAttempt(t *testing.T) {
	stub := &stubTransport{}
	f := newTestFetcher(stub)

	_, err := f.FetchWithFallback(context.Background(),
		"https://example.com/only.png",
		"https://example.com/only.png")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(stub.requests) != 1 {
		t.Errorf("made %d requests, want 1", len(stub.requests))
	}
}
