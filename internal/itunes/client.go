// Package itunes queries the iTunes Search API for song, artist and
// album candidates and derives high-resolution artwork URLs.
package itunes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	baseURL   = "https://itunes.apple.com/search"
	userAgent = "coverbot/1.0 (https://github.com/t8wy/coverbot)"

	// US store gives the widest catalog coverage.
	storeCountry = "US"

	defaultLimit    = 10
	artistSongLimit = 20

	requestTimeout = 10 * time.Second
)

// ProviderError reports a network or HTTP failure against the search
// provider. Callers must treat it as distinct from an empty result set.
type ProviderError struct {
	Status int
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("search provider returned status %d", e.Status)
	}
	return fmt.Sprintf("search provider request failed: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Client provides access to the iTunes Search API.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new iTunes Search API client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Search runs a search for the given kind. It returns an empty slice
// (not an error) when the provider has no matches, and a *ProviderError
// on network or HTTP failure.
func (c *Client) Search(query string, kind Kind) ([]Candidate, error) {
	switch kind {
	case KindSong:
		return c.SearchSongs(query)
	case KindArtist:
		return c.SearchArtist(query)
	case KindAlbum:
		return c.SearchAlbums(query)
	default:
		return nil, fmt.Errorf("unknown search kind %q", kind)
	}
}

// SearchSongs searches for tracks by name. Entities without artwork
// are discarded.
func (c *Client) SearchSongs(query string) ([]Candidate, error) {
	resp, err := c.search(query, "song", defaultLimit)
	if err != nil {
		return nil, err
	}
	return convertSongs(resp.Results), nil
}

// SearchArtist resolves an artist identity first and, if found,
// re-queries the provider scoped to that artist's identifier. When no
// artist resolves the raw query falls back to a plain song search.
func (c *Client) SearchArtist(query string) ([]Candidate, error) {
	identity, err := c.search(query, "musicArtist", 1)
	if err != nil {
		return nil, err
	}

	if identity.ResultCount == 0 || len(identity.Results) == 0 {
		// No exact artist match; degrade to a song search on the raw text.
		resp, err := c.search(query, "song", defaultLimit)
		if err != nil {
			return nil, err
		}
		return convertSongs(resp.Results), nil
	}

	artistID := identity.Results[0].ArtistID
	resp, err := c.search("artistId:"+strconv.FormatInt(artistID, 10), "song", artistSongLimit)
	if err != nil {
		return nil, err
	}
	return convertSongs(resp.Results), nil
}

// SearchAlbums searches for album collections. Entities without
// artwork or whose collection type is not "Album" are discarded.
func (c *Client) SearchAlbums(query string) ([]Candidate, error) {
	resp, err := c.search(query, "album", defaultLimit)
	if err != nil {
		return nil, err
	}
	return convertAlbums(resp.Results), nil
}

// search performs one request against the search endpoint.
func (c *Client) search(term, entity string, limit int) (*searchResponse, error) {
	params := url.Values{}
	params.Set("term", term)
	params.Set("media", "music")
	params.Set("entity", entity)
	params.Set("country", storeCountry)
	params.Set("limit", strconv.Itoa(limit))

	reqURL := fmt.Sprintf("%s?%s", baseURL, params.Encode())

	req, err := http.NewRequest(http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &ProviderError{Status: resp.StatusCode}
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ProviderError{Err: fmt.Errorf("decode response: %w", err)}
	}

	return &result, nil
}

// convertSongs converts raw track entities to Candidates.
func convertSongs(results []entityResult) []Candidate {
	candidates := make([]Candidate, 0, len(results))

	for i := range results {
		r := &results[i]
		if r.WrapperType != "track" || r.Kind != "song" {
			continue
		}
		if r.ArtworkURL100 == "" {
			continue
		}

		candidates = append(candidates, Candidate{
			Title:        orUnknown(r.TrackName, "Unknown Title"),
			Artist:       orUnknown(r.ArtistName, "Unknown Artist"),
			Album:        orUnknown(r.CollectionName, "Unknown Album"),
			CoverURL:     r.ArtworkURL100,
			CoverURLHQ:   UpgradeArtworkURL(r.ArtworkURL100),
			PreviewURL:   r.PreviewURL,
			TrackID:      r.TrackID,
			CollectionID: r.CollectionID,
			ArtistID:     r.ArtistID,
			ReleaseDate:  r.ReleaseDate,
		})
	}

	return candidates
}

// convertAlbums converts raw collection entities to Candidates.
func convertAlbums(results []entityResult) []Candidate {
	candidates := make([]Candidate, 0, len(results))

	for i := range results {
		r := &results[i]
		if r.WrapperType != "collection" || r.CollectionType != "Album" {
			continue
		}
		if r.ArtworkURL100 == "" {
			continue
		}

		candidates = append(candidates, Candidate{
			Title:        orUnknown(r.CollectionName, "Unknown Album"),
			Artist:       orUnknown(r.ArtistName, "Unknown Artist"),
			CoverURL:     r.ArtworkURL100,
			CoverURLHQ:   UpgradeArtworkURL(r.ArtworkURL100),
			CollectionID: r.CollectionID,
			ArtistID:     r.ArtistID,
			TrackCount:   r.TrackCount,
			ReleaseDate:  r.ReleaseDate,
			Genre:        r.PrimaryGenreName,
		})
	}

	return candidates
}

func orUnknown(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
