package session

import "strings"

// SourceImage is the original encoded input. It is immutable: the bytes
// are copied on creation and only handed out as copies.
type SourceImage struct {
	name string
	data []byte
}

// NewSourceImage copies data into a new SourceImage.
func NewSourceImage(name string, data []byte) SourceImage {
	return SourceImage{
		name: name,
		data: append([]byte(nil), data...),
	}
}

// Name returns the display name, possibly empty.
func (s SourceImage) Name() string { return s.name }

// Size returns the original byte length.
func (s SourceImage) Size() int64 { return int64(len(s.data)) }

// Bytes returns a copy of the original encoded bytes.
func (s SourceImage) Bytes() []byte { return append([]byte(nil), s.data...) }

// DownloadName derives the artifact name for a compressed copy of name:
// the last extension is dropped and "_compressed.<ext>" appended.
//
//	photo.png      -> photo_compressed.jpg
//	archive.tar.gz -> archive.tar_compressed.jpg
//	photo          -> photo_compressed.jpg
//	""             -> compressed_image.jpg
func DownloadName(name, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "jpg"
	}
	if name == "" {
		return "compressed_image." + ext
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	return name + "_compressed." + ext
}
