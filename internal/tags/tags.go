// Package tags extracts metadata and embedded cover art from uploaded
// audio files. Dispatch is by file extension into per-format readers;
// unknown extensions fall back to a generic scalar-tag reader.
package tags

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/t8wy/coverbot/internal/artwork"
)

// File extensions with dedicated readers.
const (
	ExtMP3  = ".mp3"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
	ExtFLAC = ".flac"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtOPUS = ".opus"
)

// Metadata is the common schema every format reader maps into. Any
// field may be empty; at least one non-empty field counts as a
// successful extraction.
type Metadata struct {
	Title  string
	Artist string
	Album  string
}

// Empty reports whether no field decoded.
func (m Metadata) Empty() bool {
	return m.Title == "" && m.Artist == "" && m.Album == ""
}

// SearchQuery builds a provider query from whatever fields decoded.
func (m Metadata) SearchQuery() string {
	parts := make([]string, 0, 2)
	if m.Title != "" {
		parts = append(parts, m.Title)
	}
	if m.Artist != "" {
		parts = append(parts, m.Artist)
	} else if m.Album != "" {
		parts = append(parts, m.Album)
	}
	return strings.Join(parts, " ")
}

// Result is the outcome of one extraction. A decode failure is
// reported here rather than raised, so one bad file never aborts the
// enclosing request.
type Result struct {
	Success bool
	Err     string

	Metadata Metadata

	Cover        []byte
	CoverMIME    string
	CoverQuality artwork.Assessment
}

// HasCover reports whether embedded art was found.
func (r *Result) HasCover() bool {
	return len(r.Cover) > 0
}

// Extract reads metadata and the first embedded picture from an audio
// file. Partial metadata still counts as success; a file where nothing
// decodes comes back with Success=false and the reason in Err.
func Extract(path string) *Result {
	var (
		meta  Metadata
		cover []byte
		mime  string
		err   error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3:
		meta, cover, mime, err = extractMP3(path)
	case ExtM4A, ExtMP4:
		meta, cover, mime, err = extractM4A(path)
	case ExtFLAC:
		meta, cover, mime, err = extractFLAC(path)
	case ExtOGG, ExtOGA, ExtOPUS:
		// Vorbis comment containers carry no standardized embedded
		// picture, so this reader yields metadata only.
		meta, err = extractVorbis(path)
	default:
		meta, err = extractGeneric(path)
	}

	if err != nil {
		return &Result{Err: fmt.Sprintf("decode %s: %v", filepath.Base(path), err)}
	}
	if meta.Empty() && len(cover) == 0 {
		return &Result{Err: "no tags decoded"}
	}

	res := &Result{
		Success:   true,
		Metadata:  meta,
		Cover:     cover,
		CoverMIME: mime,
	}
	if len(cover) > 0 {
		res.CoverQuality = artwork.AssessEmbedded(cover)
	}
	return res
}
