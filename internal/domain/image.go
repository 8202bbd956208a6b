package domain

import (
	"io"
	"net/url"
	"strings"
)

// Image field kinds. "import" is an opaque passthrough identifier and is
// accepted for team member photos only.
const (
	ImageKindUpload = "upload"
	ImageKindURL    = "url"
	ImageKindImport = "import"
)

// PlaceholderImageURL is stored when a resource is created without any image.
const PlaceholderImageURL = "https://placehold.co/600x400?text=No+Image"

// ImageField is a resource attribute resolving to an uploaded file, an
// external URL, or an imported reference.
// swagger:model ImageField
type ImageField struct {
	Kind  string `json:"kind" bson:"kind"`
	Value string `json:"value" bson:"value"`
}

// PlaceholderImage returns the default url-kind image field.
func PlaceholderImage() ImageField {
	return ImageField{Kind: ImageKindURL, Value: PlaceholderImageURL}
}

// ValidImageURL reports whether s has an http(s) URL shape with a host.
func ValidImageURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// FileStore persists uploaded files and maps them to public paths.
type FileStore interface {
	Save(src io.Reader, originalName string) (publicPath string, err error)
	Remove(publicPath string) error
}
