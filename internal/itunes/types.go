package itunes

// Kind selects which entity type a search targets.
type Kind string

const (
	KindSong   Kind = "song"
	KindArtist Kind = "artist"
	KindAlbum  Kind = "album"
)

// Valid reports whether k is one of the three supported search kinds.
func (k Kind) Valid() bool {
	return k == KindSong || k == KindArtist || k == KindAlbum
}

// Candidate is a single search result with its artwork references.
// Immutable once returned; owned by the caller for the duration of a
// single search/selection cycle.
type Candidate struct {
	Title      string
	Artist     string
	Album      string
	CoverURL   string
	CoverURLHQ string
	PreviewURL string

	TrackID      int64
	CollectionID int64
	ArtistID     int64

	ReleaseDate string
	Genre       string
	TrackCount  int
}

// CoverURLFor returns the best artwork URL for a candidate.
// The high-quality URL is preferred when requested and present,
// then the standard URL. Returns empty string if neither exists.
func CoverURLFor(c Candidate, preferHighQuality bool) string {
	if preferHighQuality && c.CoverURLHQ != "" {
		return c.CoverURLHQ
	}
	return c.CoverURL
}

// searchResponse is the raw iTunes Search API response envelope.
type searchResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []entityResult `json:"results"`
}

// entityResult is a raw result entity. The API distinguishes entity
// types by wrapperType/kind/collectionType rather than by shape.
type entityResult struct {
	WrapperType      string `json:"wrapperType"`
	Kind             string `json:"kind"`
	CollectionType   string `json:"collectionType"`
	TrackName        string `json:"trackName"`
	ArtistName       string `json:"artistName"`
	CollectionName   string `json:"collectionName"`
	ArtworkURL100    string `json:"artworkUrl100"`
	PreviewURL       string `json:"previewUrl"`
	TrackID          int64  `json:"trackId"`
	CollectionID     int64  `json:"collectionId"`
	ArtistID         int64  `json:"artistId"`
	TrackCount       int    `json:"trackCount"`
	ReleaseDate      string `json:"releaseDate"`
	PrimaryGenreName string `json:"primaryGenreName"`
}
