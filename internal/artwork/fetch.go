package artwork

import (
	"context"
	"io"
	"net/http"
	"time"
)

const (
	fetchTimeout = 15 * time.Second

	// Hard cap on downloaded image size. Provider art tops out well
	// below this.
	maxImageBytes = 20 << 20
)

// Fetcher downloads cover images and assesses them in one step.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a Fetcher with a default HTTP client.
func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// Cover is a downloaded image together with its assessment and the URL
// it was finally served from.
type Cover struct {
	Data       []byte
	Assessment Assessment
	SourceURL  string
}

// Fetch downloads a single image URL and assesses it. A download or
// decode failure returns an *ImageError.
func (f *Fetcher) Fetch(ctx context.Context, imageURL string) (*Cover, error) {
	if imageURL == "" {
		return nil, &ImageError{Reason: "no URL"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, http.NoBody)
	if err != nil {
		return nil, &ImageError{Reason: "request failed", Err: err}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &ImageError{Reason: "download failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &ImageError{Reason: "download failed"}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, &ImageError{Reason: "download failed", Err: err}
	}

	a := Assess(data)
	if a.Quality == QualityNone {
		return nil, &ImageError{Reason: "decode failed"}
	}

	return &Cover{Data: data, Assessment: a, SourceURL: imageURL}, nil
}

// FetchWithFallback tries the high-quality URL first and falls back to
// the standard URL exactly once when the first attempt fails to
// download, decode or pass validation. Equal URLs collapse to a single
// attempt. An image that decodes but stays invalid after the fallback
// is returned as a *ValidationError, never as a Cover.
func (f *Fetcher) FetchWithFallback(ctx context.Context, hqURL, stdURL string) (*Cover, error) {
	cover, err := f.Fetch(ctx, hqURL)
	if err == nil && cover.Assessment.IsValid {
		return cover, nil
	}

	if stdURL != "" && stdURL != hqURL {
		std, stdErr := f.Fetch(ctx, stdURL)
		switch {
		case stdErr == nil && std.Assessment.IsValid:
			return std, nil
		case stdErr == nil:
			return nil, &ValidationError{Assessment: std.Assessment}
		case err != nil:
			return nil, stdErr
		}
		// The first image decoded but failed validation and the
		// fallback could not be fetched at all.
	}

	if err != nil {
		return nil, err
	}
	return nil, &ValidationError{Assessment: cover.Assessment}
}
