package types

// Compilation represents the artifacts of a smart contract compilation.
type Compilation struct {
	// SourcePathToArtifact maps each compiled source file's path to its SourceArtifact, housing information
	// regarding source files, mappings, ASTs, and contracts.
	SourcePathToArtifact map[string]SourceArtifact

	// SourceIdToPath maps a solc-assigned source unit ID to the source path it corresponds to, so contract
	// references recorded by ID elsewhere (e.g. in ASTs) can be resolved back to a path.
	SourceIdToPath map[int]string
}

// NewCompilation returns a new, empty Compilation object.
func NewCompilation() *Compilation {
	// Create and return our compilation
	return &Compilation{
		SourcePathToArtifact: make(map[string]SourceArtifact),
		SourceIdToPath:       make(map[int]string),
	}
}
