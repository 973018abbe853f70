package cache

// Keyer builds cache keys for each pipeline stage.
type Keyer interface {
	LayoutKey(sizesHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs besides the sizes that change a layout.
type LayoutKeyOpts struct {
	Strategy string `json:"strategy"`
	CenterX  int    `json:"center_x"`
	CenterY  int    `json:"center_y"`
}

// ArtifactKeyOpts are the inputs besides the layout that change an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Renderer string `json:"renderer,omitempty"`
	Labels   bool   `json:"labels,omitempty"`
	Seed     uint64 `json:"seed,omitempty"`
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey hashes the sizes hash with the layout options.
func (DefaultKeyer) LayoutKey(sizesHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sizesHash, opts)
}

// ArtifactKey hashes the layout hash with the artifact options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
