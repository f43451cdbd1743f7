package tags

import (
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
)

// extractFLAC walks the FLAC metadata blocks for the Vorbis comment
// block and the first picture block.
func extractFLAC(path string) (Metadata, []byte, string, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return Metadata{}, nil, "", err
	}

	var meta Metadata
	var cover []byte
	var mime string

	for _, block := range f.Meta {
		switch block.Type {
		case flac.VorbisComment:
			cmt, err := flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				continue
			}
			meta = Metadata{
				Title:  firstComment(cmt, flacvorbis.FIELD_TITLE),
				Artist: firstComment(cmt, flacvorbis.FIELD_ARTIST),
				Album:  firstComment(cmt, flacvorbis.FIELD_ALBUM),
			}

		case flac.Picture:
			if cover != nil {
				continue
			}
			pic, err := flacpicture.ParseFromMetaDataBlock(*block)
			if err != nil {
				continue
			}
			cover = pic.ImageData
			mime = pic.MIME
		}
	}

	return meta, cover, mime, nil
}

func firstComment(cmt *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := cmt.Get(field)
	if err != nil || len(values) == 0 {
		return ""
	}
	return values[0]
}
