// Package manifest holds the presentation-ready description of an object and its parts.
package manifest

// Metadata is a label/value pair shown alongside the object.
type Metadata struct {
	Label string
	Value string
}

// Container describes the object as a whole.
type Container struct {
	ResourceID       string
	Title            string
	Description      string
	DownloadFileName string
	Metadata         []Metadata
}

// Child is one viewable resource. Single objects have exactly one.
type Child struct {
	Label            string
	Sequence         string
	Description      string
	Format           string
	Type             string
	ResourceID       string
	DownloadFileName string
	ResourceURL      string
	ThumbnailURL     string
}

// Manifest is a container with its ordered children.
type Manifest struct {
	Container Container
	Children  []Child
}
