package tags

import (
	"go.senan.xyz/taglib"
)

// taglibTags wraps a taglib result map with a lookup helper.
type taglibTags map[string][]string

// get returns the first value for any of the given keys.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// extractVorbis reads Ogg/Opus comment headers via TagLib.
func extractVorbis(path string) (Metadata, error) {
	return readTaglibMetadata(path)
}

// extractGeneric is the best-effort reader for unknown extensions. It
// copies scalar tag values only; no cover extraction is attempted.
func extractGeneric(path string) (Metadata, error) {
	return readTaglibMetadata(path)
}

func readTaglibMetadata(path string) (Metadata, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return Metadata{}, err
	}
	tags := taglibTags(rawTags)

	return Metadata{
		Title:  tags.get(taglib.Title),
		Artist: tags.get(taglib.Artist),
		Album:  tags.get(taglib.Album),
	}, nil
}
