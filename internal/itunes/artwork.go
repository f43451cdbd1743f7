package itunes

import "strings"

// Thumbnail and target size tokens embedded in iTunes artwork URLs.
// The provider serves the same image at many sizes by path segment,
// e.g. .../source/100x100bb.jpg → .../source/1600x1600bb.jpg.
const (
	thumbSizeToken = "100x100"
	hqSizeToken    = "1600x1600"
)

// UpgradeArtworkURL derives a high-resolution artwork URL from the
// provider's fixed 100x100 thumbnail URL by substituting the embedded
// size token. This is a heuristic textual transform against an external
// URL scheme: if the token is absent the URL is returned unchanged and
// no error is raised.
func UpgradeArtworkURL(artworkURL string) string {
	return strings.ReplaceAll(artworkURL, thumbSizeToken, hqSizeToken)
}
