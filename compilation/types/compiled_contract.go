package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"github.com/ethereum/go-ethereum/common"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"golang.org/x/exp/slices"
)

// CompiledContract represents a single contract unit from a smart contract compilation.
type CompiledContract struct {
	// Abi describes a contract's application binary interface, a structure used to describe information needed
	// to interact with the contract such as constructor and function definitions with input/output variable
	// information, event declarations, and fallback and receive methods.
	Abi abi.ABI

	// InitBytecode describes the bytecode used to deploy a contract.
	InitBytecode []byte

	// RuntimeBytecode represents the rudimentary bytecode to be expected once the contract has been successfully
	// deployed. This may differ at runtime based on constructor arguments, immutables, linked libraries, etc.
	RuntimeBytecode []byte

	// SrcMapsInit describes the source mappings to associate source file and bytecode segments in InitBytecode.
	SrcMapsInit string

	// SrcMapsRuntime describes the source mappings to associate source file and bytecode segments in RuntimeBytecode.
	SrcMapsRuntime string

	// Kind describes the kind of contract, i.e. contract, library, interface.
	Kind ContractKind

	// LibraryPlaceholders maps placeholder strings to library names (if known)
	// Format is map[placeholder]libraryName
	// When a contract has placeholders, these need to be resolved before deployment
	LibraryPlaceholders map[string]any
}

// ParseABIFromInterface parses a generic object into an abi.ABI and returns it, or an error if one occurs.
func ParseABIFromInterface(i any) (*abi.ABI, error) {
	var (
		result abi.ABI
		err    error
	)

	// If it's a string, just parse it. Otherwise, we assume it's an interface and serialize it into a string.
	if s, ok := i.(string); ok {
		result, err = abi.JSON(strings.NewReader(s))
		if err != nil {
			return nil, err
		}
	} else {
		var b []byte
		b, err = json.Marshal(i)
		if err != nil {
			return nil, err
		}
		result, err = abi.JSON(strings.NewReader(string(b)))
		if err != nil {
			return nil, err
		}
	}
	return &result, nil
}

// GetDeploymentMessageData is a helper method used create contract deployment message data for the given contract.
// This data can be set in transaction/message structs "data" field to indicate the packed init bytecode and constructor
// argument data to use.
func (c *CompiledContract) GetDeploymentMessageData(args []any) ([]byte, error) {
	// ABI encode constructor arguments and append them to the end of the bytecode
	initBytecodeWithArgs := slices.Clone(c.InitBytecode)
	if len(c.Abi.Constructor.Inputs) > 0 {
		data, err := c.Abi.Pack("", args...)
		if err != nil {
			return nil, fmt.Errorf("could not encode constructor arguments due to error: %v", err)
		}
		initBytecodeWithArgs = append(initBytecodeWithArgs, data...)
	}
	return initBytecodeWithArgs, nil
}

func ParseBytecodeForPlaceholders(bytecode string) map[string]any {
	// Identify all library placeholder substrings
	exp := regexp.MustCompile(`__(\$[0-9a-zA-Z]*\$|\w*)__`)
	substrings := exp.FindAllString(bytecode, -1)

	substringSet := make(map[string]any, 0)

	// If we have no matches, then no linking is required, so return an empty set
	if substrings == nil {
		return substringSet
	}

	// Identify all unique library substrings
	for _, substring := range substrings {
		// Strip all `_` and `$` from the substring
		substring = strings.ReplaceAll(strings.ReplaceAll(substring, "_", ""), "$", "")

		// Only add it to the set if it is not already in it
		if _, exists := substringSet[substring]; !exists {
			substringSet[substring] = nil
		}
	}

	return substringSet
}

// ReplacePlaceholdersInBytecode resolves library placeholders in both InitBytecode and RuntimeBytecode against
// deployedLibraries (keyed by library short name) and decodes both fields from hex text into raw bytecode bytes.
// It must be called exactly once per contract before deployment, even when the contract has no placeholders at
// all, since until this runs both fields hold hex text rather than decoded bytes.
func (c *CompiledContract) ReplacePlaceholdersInBytecode(deployedLibraries map[string]common.Address) error {
	initBytecode, err := linkAndDecodeBytecode(c.InitBytecode, c.LibraryPlaceholders, deployedLibraries)
	if err != nil {
		return fmt.Errorf("unable to link init bytecode: %v", err)
	}
	runtimeBytecode, err := linkAndDecodeBytecode(c.RuntimeBytecode, c.LibraryPlaceholders, deployedLibraries)
	if err != nil {
		return fmt.Errorf("unable to link runtime bytecode: %v", err)
	}
	c.InitBytecode = initBytecode
	c.RuntimeBytecode = runtimeBytecode
	return nil
}

// linkAndDecodeBytecode substitutes every resolvable library placeholder in bytecode (held as hex text, optionally
// "0x"-prefixed) with its deployed address, then decodes the result into raw bytecode bytes. A placeholder whose
// library is not present in deployedLibraries is left untouched, which causes the final decode to fail rather than
// deploy bytecode with garbage in the address slot.
func linkAndDecodeBytecode(bytecode []byte, placeholders map[string]any, deployedLibraries map[string]common.Address) ([]byte, error) {
	if len(bytecode) == 0 {
		return nil, nil
	}

	bytecodeHex := strings.TrimPrefix(string(bytecode), "0x")

	for placeholder, libNameAny := range placeholders {
		libName, ok := libNameAny.(string)
		if !ok || libName == "" {
			continue
		}

		libraryAddr, exists := deployedLibraries[libName]
		if !exists {
			continue
		}

		// The pattern in bytecode is "__$<placeholder>$__"
		placeholderPattern := fmt.Sprintf("__$%s$__", placeholder)

		// Get the address hex without "0x" prefix, left-padded to 40 characters (20 bytes)
		addrHex := libraryAddr.Hex()[2:]
		for len(addrHex) < 40 {
			addrHex = "0" + addrHex
		}

		bytecodeHex = strings.ReplaceAll(bytecodeHex, placeholderPattern, addrHex)
	}

	return hex.DecodeString(bytecodeHex)
}
