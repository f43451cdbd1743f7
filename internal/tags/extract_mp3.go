package tags

import (
	"github.com/bogem/id3v2/v2"
)

// extractMP3 reads ID3v2 text frames and the first attached picture.
// bogem/id3v2 handles UTF-16 encoded frames that trip up other
// readers.
func extractMP3(path string) (Metadata, []byte, string, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Metadata{}, nil, "", err
	}
	defer id3tag.Close()

	meta := Metadata{
		Title:  id3tag.Title(),
		Artist: id3tag.Artist(),
		Album:  id3tag.Album(),
	}

	for _, frame := range id3tag.GetFrames(id3tag.CommonID("Attached picture")) {
		pic, ok := frame.(id3v2.PictureFrame)
		if !ok {
			continue
		}
		return meta, pic.Picture, pic.MimeType, nil
	}

	return meta, nil, "", nil
}
