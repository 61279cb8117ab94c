package domain

// KeyPrefix namespaces every key this service writes to the shared store.
const KeyPrefix = "discovery:"

// Index selects which search index a request is served from.
type Index string

const (
	// IndexPublic holds published objects only.
	IndexPublic Index = "public"
	// IndexPrivate additionally holds unpublished objects; requires an API key.
	IndexPrivate Index = "private"
)
