package cache

// Keyer generates cache keys for the three cacheable pipeline stages.
// Keys must be deterministic: the same inputs always map to the same key.
type Keyer interface {
	// BoundaryKey generates a key for parsed boundary geometry.
	// contentHash is the hash of the raw boundary file bytes.
	BoundaryKey(contentHash string, opts BoundaryKeyOpts) string

	// SceneKey generates a key for a sampled scene.
	// boundaryHash is the hash of the serialized region geometry.
	SceneKey(boundaryHash string, opts SceneKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	// sceneHash is the hash of the serialized scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// BoundaryKeyOpts are the loader parameters that affect parsed geometry.
type BoundaryKeyOpts struct {
	NameField string
	Names     []string
	Tolerance float64
}

// SceneKeyOpts are the grid, sampling, and framing parameters that affect
// a scene. Scenes are resolved to screen space, so frame geometry belongs
// here rather than in the artifact key.
type SceneKeyOpts struct {
	CellSize       float64
	Seed           uint64
	TouchPolicy    string
	Counts         []int
	Weights        []float64
	Placement      string
	PoissonSpacing float64
	Icons          []string
	Palette        string
	SizeMean       float64
	SizeSigma      float64
	SizeMin        float64
	SizeMax        float64
	Width          float64
	Margin         float64
}

// ArtifactKeyOpts are the render parameters that affect output bytes.
type ArtifactKeyOpts struct {
	Format     string
	Background string
	LandFill   string
	LandStroke string
	Caption    string
}

// DefaultKeyer generates hash-based keys with stage prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// BoundaryKey generates a key for parsed boundary geometry.
func (k *DefaultKeyer) BoundaryKey(contentHash string, opts BoundaryKeyOpts) string {
	return hashKey("boundary", contentHash, opts)
}

// SceneKey generates a key for a sampled scene.
func (k *DefaultKeyer) SceneKey(boundaryHash string, opts SceneKeyOpts) string {
	return hashKey("scene", boundaryHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
