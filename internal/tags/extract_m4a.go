package tags

import (
	"os"

	"github.com/dhowden/tag"
)

// extractM4A reads MP4 atoms via dhowden/tag, which exposes the covr
// atom as a Picture. Some M4A files (e.g. ffmpeg-created) defeat it;
// those fall back to the TagLib reader for metadata, without cover.
func extractM4A(path string) (Metadata, []byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, nil, "", err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		meta, tlErr := readTaglibMetadata(path)
		return meta, nil, "", tlErr
	}

	meta := Metadata{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
	}

	if pic := m.Picture(); pic != nil {
		return meta, pic.Data, pic.MIMEType, nil
	}
	return meta, nil, "", nil
}
