package runner

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/crytic/dapptest/compilation/types"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

// artifactContract is the on-disk shape of one contract entry in a prebuilt artifact file: a JSON document mapping
// contract name to {abi, bytecode, runtime_bytecode, kind?, source_map?, compiler_version?}. Unknown fields are
// ignored. kind defaults to "contract" when absent, so existing artifacts without the field still load.
type artifactContract struct {
	Abi             json.RawMessage `json:"abi"`
	Bytecode        string          `json:"bytecode"`
	RuntimeBytecode string          `json:"runtime_bytecode"`
	Kind            string          `json:"kind,omitempty"`
	SourceMap       string          `json:"source_map,omitempty"`
	CompilerVersion string          `json:"compiler_version,omitempty"`
}

// LoadArtifact reads a prebuilt JSON artifact file and returns its contracts, keyed by name, ready to hand to
// MultiContractRunnerBuilder in place of a solc invocation. Modeled on the Rust original's DapptoolsArtifact.
func LoadArtifact(path string) (map[string]*types.CompiledContract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ArtifactError{Err: errors.WithStack(err)}
	}

	var raw map[string]artifactContract
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ArtifactError{Err: errors.WithStack(err)}
	}

	contracts := make(map[string]*types.CompiledContract, len(raw))
	for name, entry := range raw {
		contractAbi, err := abi.JSON(bytes.NewReader(entry.Abi))
		if err != nil {
			return nil, &AbiError{Err: errors.Wrapf(err, "contract %q", name)}
		}

		// Bytecode referencing an unlinked library carries "__$<hash>$__" placeholders, which are not valid hex
		// digits, so both fields are kept as hex text until ReplacePlaceholdersInBytecode resolves and decodes
		// them once deployment addresses are known.
		placeholders := types.ParseBytecodeForPlaceholders(entry.Bytecode)
		for placeholder := range types.ParseBytecodeForPlaceholders(entry.RuntimeBytecode) {
			placeholders[placeholder] = nil
		}

		kind := types.ContractKindContract
		if entry.Kind != "" {
			kind = types.ContractKindFromString(entry.Kind)
		}

		contracts[name] = &types.CompiledContract{
			Abi:                 contractAbi,
			InitBytecode:        []byte(strings.TrimPrefix(entry.Bytecode, "0x")),
			RuntimeBytecode:     []byte(strings.TrimPrefix(entry.RuntimeBytecode, "0x")),
			SrcMapsInit:         entry.SourceMap,
			Kind:                kind,
			LibraryPlaceholders: placeholders,
		}
	}

	// Artifact entries have no source-path grouping, so a library's fully qualified name is just its own key;
	// resolve every contract's placeholders against that flat namespace.
	availableLibraries := make(map[string]string)
	for name, contract := range contracts {
		if contract.Kind == types.ContractKindLibrary {
			availableLibraries[name] = name
		}
	}
	for _, contract := range contracts {
		types.MapPlaceholdersToLibraries(contract.LibraryPlaceholders, availableLibraries)
	}

	return contracts, nil
}
