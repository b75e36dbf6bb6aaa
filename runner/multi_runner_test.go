package runner

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/crytic/dapptest/compilation/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeArtifact serializes a name->{abi,bytecode,runtime_bytecode} map to a temporary JSON file and returns its
// path, exercising the same on-disk format LoadArtifact parses.
func writeArtifact(t *testing.T, contracts map[string]struct {
	Abi             string
	RuntimeBytecode []byte
}) string {
	t.Helper()

	type artifactEntry struct {
		Abi             json.RawMessage `json:"abi"`
		Bytecode        string          `json:"bytecode"`
		RuntimeBytecode string          `json:"runtime_bytecode"`
	}

	doc := make(map[string]artifactEntry, len(contracts))
	for name, c := range contracts {
		encoded := "0x" + hex.EncodeToString(c.RuntimeBytecode)
		doc[name] = artifactEntry{
			Abi:             json.RawMessage(c.Abi),
			Bytecode:        encoded,
			RuntimeBytecode: encoded,
		}
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "artifact.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestMultiContractRunnerTestsAllMatchingContracts(t *testing.T) {
	path := writeArtifact(t, map[string]struct {
		Abi             string
		RuntimeBytecode []byte
	}{
		"GreeterTest": {Abi: noArgsAbiJSON, RuntimeBytecode: alwaysSucceedsCode},
		"GmTest":      {Abi: singleTestAbiJSON, RuntimeBytecode: alwaysSucceedsCode},
	})

	multiRunner, err := NewMultiContractRunnerBuilder().WithArtifact(path).Build()
	require.NoError(t, err)

	results, err := multiRunner.Test(nil)
	require.NoError(t, err)

	require.Contains(t, results, "GreeterTest")
	require.Contains(t, results, "GmTest")
	assert.Len(t, results["GreeterTest"], 3)
	assert.Len(t, results["GmTest"], 1)
	for _, functionResults := range results {
		for _, result := range functionResults {
			assert.True(t, result.Success)
		}
	}
}

func TestMultiContractRunnerFiltersByPattern(t *testing.T) {
	path := writeArtifact(t, map[string]struct {
		Abi             string
		RuntimeBytecode []byte
	}{
		"GreeterTest": {Abi: noArgsAbiJSON, RuntimeBytecode: alwaysSucceedsCode},
		"GmTest":      {Abi: singleTestAbiJSON, RuntimeBytecode: alwaysSucceedsCode},
	})

	multiRunner, err := NewMultiContractRunnerBuilder().WithArtifact(path).Build()
	require.NoError(t, err)

	pattern := regexp.MustCompile("GmTest::.*")
	results, err := multiRunner.Test(pattern)
	require.NoError(t, err)

	assert.Len(t, results, 1)
	assert.Contains(t, results, "GmTest")
	assert.Len(t, results["GmTest"], 1)
}

func TestDeriveContractAddressSaltedByName(t *testing.T) {
	addrA := deriveContractAddress(alwaysSucceedsCode, "Alpha")
	addrB := deriveContractAddress(alwaysSucceedsCode, "Beta")
	assert.NotEqual(t, addrA, addrB, "identical bytecode under different names must not collide")

	addrARepeat := deriveContractAddress(alwaysSucceedsCode, "Alpha")
	assert.Equal(t, addrA, addrARepeat, "derivation must be deterministic")
}

// TestMultiContractRunnerLinksLibraryPlaceholderIntoRuntimeBytecode exercises library linking end to end through
// the artifact-loading path: a library is deployed, a dependent contract's unlinked runtime bytecode still carries
// the library's Solidity placeholder, and Build must rewrite that placeholder to the library's derived address
// before installing the dependent's code.
func TestMultiContractRunnerLinksLibraryPlaceholderIntoRuntimeBytecode(t *testing.T) {
	placeholder := types.GenerateLibraryPlaceholder("MathLib")
	placeholderPattern := "__$" + placeholder + "$__"
	require.Len(t, placeholderPattern, 40, "placeholder pattern must occupy the same width as a hex-encoded address")

	// STOP, then the unresolved placeholder occupying the 20-byte slot a linked CALL/DELEGATECALL target would sit
	// in. STOP halts execution before that slot is ever reached, so only its linked content needs checking.
	dependentRuntimeHex := "00" + placeholderPattern

	type artifactEntry struct {
		Abi             json.RawMessage `json:"abi"`
		Bytecode        string          `json:"bytecode"`
		RuntimeBytecode string          `json:"runtime_bytecode"`
		Kind            string          `json:"kind"`
	}
	doc := map[string]artifactEntry{
		"MathLib": {
			Abi:             json.RawMessage(`[]`),
			Bytecode:        "0x00",
			RuntimeBytecode: "0x00",
			Kind:            "library",
		},
		"Dependent": {
			Abi:             json.RawMessage(singleTestAbiJSON),
			Bytecode:        "0x00",
			RuntimeBytecode: "0x" + dependentRuntimeHex,
			Kind:            "contract",
		},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "artifact.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	multiRunner, err := NewMultiContractRunnerBuilder().WithArtifact(path).Build()
	require.NoError(t, err)

	libraryAddr, ok := multiRunner.addresses["MathLib"]
	require.True(t, ok, "library must be deployed and assigned an address")

	dependentAddr, ok := multiRunner.addresses["Dependent"]
	require.True(t, ok, "dependent contract must be deployed and assigned an address")

	deployedCode := multiRunner.adapter.State().GetCode(dependentAddr)
	require.Len(t, deployedCode, 21, "deployed code must be STOP followed by the resolved 20-byte address")
	assert.NotContains(t, string(deployedCode), "__$", "linked bytecode must not retain the literal placeholder text")
	assert.Equal(t, libraryAddr.Bytes(), deployedCode[1:], "placeholder slot must resolve to the library's deployed address")

	want := append([]byte{0x00}, libraryAddr.Bytes()...)
	assert.True(t, bytes.Equal(want, deployedCode))
}

func TestDeriveContractAddressUsesFirst20BytesOfHash(t *testing.T) {
	preimage := append(append([]byte{}, alwaysSucceedsCode...), []byte("Alpha")...)
	hash := crypto.Keccak256(preimage)

	want := common.BytesToAddress(hash[:20])
	got := deriveContractAddress(alwaysSucceedsCode, "Alpha")
	assert.Equal(t, want, got, "address must be the first 20 bytes of keccak256(runtime_bytecode || name)")

	wrong := common.BytesToAddress(hash[len(hash)-20:])
	assert.NotEqual(t, wrong, got, "must not use the last 20 bytes of the hash")
}
