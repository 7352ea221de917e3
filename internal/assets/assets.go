// Package assets extracts card art from packed asset bundles.
//
// Bundle parsing itself is delegated through the Unpacker seam; this
// package owns locating the bundle files for a card identifier and
// labeling the decoded images by role. The default Unpacker reads
// zip-container bundles.
package assets

import "image"

// ArtResult maps an image-role label to its decoded image. Roles that a
// bundle does not carry are absent from the map, never nil entries.
type ArtResult map[string]image.Image

// Asset is one named entry inside a bundle with decodable pixel data.
type Asset interface {
	// Path is the asset's container path inside the bundle.
	Path() string

	// Image decodes the asset's pixel data.
	Image() (image.Image, error)
}

// Bundle is an opened asset container. Callers must Close it.
type Bundle interface {
	// Assets lists the image-typed entries, in container order.
	Assets() []Asset

	Close() error
}

// Unpacker opens bundle files.
type Unpacker interface {
	Open(path string) (Bundle, error)
}
