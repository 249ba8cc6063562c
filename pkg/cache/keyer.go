package cache

// Keyer generates cache keys.
type Keyer interface {
	// DocumentKey returns the key of the serialized document built from the
	// description with the given hash.
	DocumentKey(descHash string) string

	// ArtifactKey returns the key of a rendered preview of the document
	// with the given hash.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Layout   string  `json:"layout,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DocumentKey returns "gdl:<descHash>".
func (DefaultKeyer) DocumentKey(descHash string) string {
	return "gdl:" + descHash
}

// ArtifactKey returns "<format>:<hash of docHash and opts>".
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey(opts.Format, docHash, opts)
}
