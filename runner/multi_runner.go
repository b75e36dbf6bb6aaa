package runner

import (
	"regexp"
	"sort"

	"github.com/crytic/dapptest/compilation/platforms"
	"github.com/crytic/dapptest/compilation/types"
	"github.com/crytic/dapptest/evm"
	"github.com/crytic/dapptest/fuzzing/contracts"
	"github.com/crytic/dapptest/fuzzing/fuzz"
	"github.com/crytic/dapptest/logging"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MultiContractRunnerBuilder configures and constructs a MultiContractRunner. It is the core's entire
// configuration surface: no file-based config format is introduced beyond the artifact file and CLI flags that
// populate this builder's fields.
type MultiContractRunnerBuilder struct {
	// Contracts is a glob pattern identifying the Solidity source file(s) to compile. Ignored if ArtifactPath is
	// set or NoCompile is true with no artifact provided.
	Contracts string
	// Remappings are import remappings passed through to the compiler.
	Remappings []string
	// ArtifactPath, if set, loads contracts from a prebuilt JSON artifact file instead of invoking a compiler.
	ArtifactPath string
	// Libraries maps a library's contract name to an address it is already deployed at, for libraries that are not
	// part of the current compilation/artifact set. Placeholders are resolved by contract name, so a key of the form
	// "path:Name" is never matched.
	Libraries map[string]common.Address
	// NoCompile skips compilation; ArtifactPath must be set in this case.
	NoCompile bool
	// Fuzzer configures property-based execution for fuzz tests. If nil, fuzz tests are skipped rather than run.
	Fuzzer *fuzz.Driver
	// BlockGasLimit bounds gas for calls that do not specify their own limit. Zero selects the adapter's default.
	BlockGasLimit uint64
}

// NewMultiContractRunnerBuilder returns an empty builder with no options set.
func NewMultiContractRunnerBuilder() *MultiContractRunnerBuilder {
	return &MultiContractRunnerBuilder{Libraries: make(map[string]common.Address)}
}

func (b *MultiContractRunnerBuilder) WithContracts(pattern string) *MultiContractRunnerBuilder {
	b.Contracts = pattern
	return b
}

func (b *MultiContractRunnerBuilder) WithRemappings(remappings []string) *MultiContractRunnerBuilder {
	b.Remappings = remappings
	return b
}

func (b *MultiContractRunnerBuilder) WithArtifact(path string) *MultiContractRunnerBuilder {
	b.ArtifactPath = path
	b.NoCompile = true
	return b
}

func (b *MultiContractRunnerBuilder) WithLibrary(fullyQualifiedName string, addr common.Address) *MultiContractRunnerBuilder {
	b.Libraries[fullyQualifiedName] = addr
	return b
}

func (b *MultiContractRunnerBuilder) WithFuzzer(driver *fuzz.Driver) *MultiContractRunnerBuilder {
	b.Fuzzer = driver
	return b
}

// MultiContractRunner owns every compiled contract for a run, their deployed addresses, the EVM adapter they share,
// and the optional fuzzer used for parameterised tests.
type MultiContractRunner struct {
	adapter   *evm.Executor
	contracts contracts.Contracts
	addresses map[string]common.Address
	fuzzer    *fuzz.Driver
	logger    *logging.Logger
}

// Build compiles or loads the configured contracts, derives a deterministic address for each, deploys libraries
// before their dependents, links placeholders, and installs every contract's runtime bytecode into a fresh adapter.
func (b *MultiContractRunnerBuilder) Build() (*MultiContractRunner, error) {
	loaded, err := b.loadContracts()
	if err != nil {
		return nil, err
	}

	ordered := orderLibrariesFirst(loaded)

	adapter, err := evm.NewExecutor(b.BlockGasLimit)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	addresses := make(map[string]common.Address, len(ordered))
	for name, addr := range b.Libraries {
		addresses[name] = addr
	}

	deployments := make([]evm.ContractDeployment, 0, len(ordered))
	for _, nc := range ordered {
		compiledContract := nc.CompiledContract()
		addr := deriveContractAddress(compiledContract.RuntimeBytecode, nc.Name())
		addresses[nc.Name()] = addr

		if compiledContract.Kind == types.ContractKindInterface {
			// Interfaces have no bytecode to deploy.
			continue
		}

		if err := compiledContract.ReplacePlaceholdersInBytecode(addresses); err != nil {
			return nil, &LinkError{ContractName: nc.Name(), Err: err}
		}
		deployments = append(deployments, evm.ContractDeployment{
			Address:     addr,
			RuntimeCode: compiledContract.RuntimeBytecode,
		})
	}

	if err := adapter.InitializeContracts(deployments); err != nil {
		return nil, errors.WithStack(err)
	}

	return &MultiContractRunner{
		adapter:   adapter,
		contracts: ordered,
		addresses: addresses,
		fuzzer:    b.Fuzzer,
		logger:    logging.GlobalLogger.NewSubLogger("module", "runner"),
	}, nil
}

// loadContracts obtains the compiled contract set either from a prebuilt artifact or by invoking the configured
// compilation platform, wrapping each in the fuzzing/contracts representation that pairs a contract with the source
// path it was defined in.
func (b *MultiContractRunnerBuilder) loadContracts() (contracts.Contracts, error) {
	if b.ArtifactPath != "" {
		contractMap, err := LoadArtifact(b.ArtifactPath)
		if err != nil {
			return nil, err
		}
		result := make(contracts.Contracts, 0, len(contractMap))
		for name, contract := range contractMap {
			result = append(result, contracts.NewContract(name, b.ArtifactPath, contract))
		}
		return result, nil
	}

	if b.NoCompile {
		return nil, &ArtifactError{Err: errors.New("NoCompile set without an ArtifactPath")}
	}

	solcConfig := platforms.NewSolcCompilationConfig(b.Contracts)
	compilations, _, err := solcConfig.Compile()
	if err != nil {
		return nil, &CompileError{Err: err}
	}

	var result contracts.Contracts
	for _, compilation := range compilations {
		for sourcePath, source := range compilation.SourcePathToArtifact {
			for name, contract := range source.Contracts {
				c := contract
				result = append(result, contracts.NewContract(name, sourcePath, &c))
			}
		}
	}
	return result, nil
}

// orderLibrariesFirst returns contracts in a stable order (sorted by name) with libraries preceding ordinary
// contracts and interfaces, so their addresses are available when linking dependents' placeholders.
func orderLibrariesFirst(all contracts.Contracts) contracts.Contracts {
	sorted := make(contracts.Contracts, len(all))
	copy(sorted, all)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })

	var libraries, others contracts.Contracts
	for _, c := range sorted {
		if c.CompiledContract().Kind == types.ContractKindLibrary {
			libraries = append(libraries, c)
		} else {
			others = append(others, c)
		}
	}
	return append(libraries, others...)
}

// deriveContractAddress computes a contract's deployment address as the first 20 bytes of
// keccak256(runtime_bytecode ‖ name). Salting with the contract name keeps the mapping deterministic while
// distinguishing contracts that happen to share identical runtime bytecode (e.g. two empty marker interfaces).
func deriveContractAddress(runtimeBytecode []byte, name string) common.Address {
	preimage := append(append([]byte{}, runtimeBytecode...), []byte(name)...)
	hash := crypto.Keccak256(preimage)
	return common.BytesToAddress(hash[:20])
}

// Test filters contracts to those with at least one function named test*, runs each through a ContractRunner, and
// aggregates results. pattern matches against "ContractName::functionName"; a nil pattern matches everything.
func (r *MultiContractRunner) Test(pattern *regexp.Regexp) (map[string]map[string]*TestResult, error) {
	runID := uuid.New()
	runLogger := r.logger.NewSubLogger("run", runID.String())
	runLogger.Info("starting test run")

	results := make(map[string]map[string]*TestResult)
	for _, nc := range r.contracts {
		compiledContract := nc.CompiledContract()
		if !hasTestFunction(compiledContract) {
			continue
		}

		addr, ok := r.addresses[nc.Name()]
		if !ok {
			return nil, &MissingAddress{ContractName: nc.Name()}
		}

		contractRunner := &ContractRunner{
			adapter:  r.adapter,
			name:     nc.Name(),
			contract: compiledContract,
			address:  addr,
			fuzzer:   r.fuzzer,
			logger:   runLogger.NewSubLogger("contract", nc.Name()),
		}

		contractResults, err := contractRunner.RunTests(pattern)
		if err != nil {
			return nil, err
		}
		if len(contractResults) > 0 {
			results[nc.Name()] = contractResults
		}
	}
	return results, nil
}

// hasTestFunction returns true if the contract's ABI declares at least one function whose name begins with "test".
func hasTestFunction(contract *types.CompiledContract) bool {
	for name := range contract.Abi.Methods {
		if isTestFunctionName(name) {
			return true
		}
	}
	return false
}
