package runner

import (
	"math/big"
	"strings"
	"testing"

	"github.com/crytic/dapptest/compilation/types"
	"github.com/crytic/dapptest/evm"
	"github.com/crytic/dapptest/fuzzing/fuzz"
	"github.com/crytic/dapptest/logging"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newContractRunner builds a ContractRunner bound to a single contract deployed at a fresh address in a fresh
// Executor, without going through the builder (no compilation or artifact file involved).
func newContractRunner(t *testing.T, name string, abiJSON string, runtimeCode []byte, fuzzer *fuzz.Driver) *ContractRunner {
	t.Helper()

	contractAbi, err := abi.JSON(strings.NewReader(abiJSON))
	require.NoError(t, err)

	adapter, err := evm.NewExecutor(0)
	require.NoError(t, err)

	addr := common.HexToAddress("0x00000000000000000000000000000000009999")
	require.NoError(t, adapter.InitializeContracts([]evm.ContractDeployment{
		{Address: addr, RuntimeCode: runtimeCode},
	}))

	return &ContractRunner{
		adapter:  adapter,
		name:     name,
		contract: &types.CompiledContract{Abi: contractAbi},
		address:  addr,
		fuzzer:   fuzzer,
		logger:   logging.GlobalLogger.NewSubLogger("contract", name),
	}
}

// S3: a testFail* function that reverts is reported as a pass (inversion).
func TestContractRunnerTestFailInvertsOnRevert(t *testing.T) {
	runner := newContractRunner(t, "FooTest", testFailAbiJSON, alwaysRevertsCode, nil)

	results, err := runner.RunTests(nil)
	require.NoError(t, err)

	require.Contains(t, results, "testFailX")
	assert.True(t, results["testFailX"].Success)
}

// S4: a testFail* function that does not revert is reported as a failure.
func TestContractRunnerTestFailFailsOnSuccess(t *testing.T) {
	runner := newContractRunner(t, "FooTest", testFailAbiJSON, alwaysSucceedsCode, nil)

	results, err := runner.RunTests(nil)
	require.NoError(t, err)

	require.Contains(t, results, "testFailX")
	assert.False(t, results["testFailX"].Success)
	require.NotNil(t, results["testFailX"].Reason)
}

// S5: a reverting setUp() fails every test in the contract with a fixed reason, without running them.
func TestContractRunnerSetUpRevertFailsAllTests(t *testing.T) {
	runner := newContractRunner(t, "GreeterTest", noArgsAbiJSON, alwaysRevertsCode, nil)

	results, err := runner.RunTests(nil)
	require.NoError(t, err)

	assert.Len(t, results, 3)
	for name, result := range results {
		assert.False(t, result.Success, "test %s should have failed due to setUp revert", name)
		require.NotNil(t, result.Reason)
		assert.Contains(t, *result.Reason, "setUp reverted")
	}
}

// S6: a fuzz test asserting x != 42 fails and shrinks its counterexample to exactly 42.
func TestContractRunnerFuzzShrinksToCounterexample(t *testing.T) {
	driver := &fuzz.Driver{Runs: 256, MaxShrinkIterations: 200, Seed: 1}
	runner := newContractRunner(t, "PropTest", fuzzPropertyAbiJSON, revertsIfEqualsCode(42), driver)

	results, err := runner.RunTests(nil)
	require.NoError(t, err)

	require.Contains(t, results, "testProp")
	result := results["testProp"]
	assert.False(t, result.Success)
	require.Len(t, result.Counterexample, 1)
	assert.Equal(t, 0, big.NewInt(42).Cmp(result.Counterexample[0].(*big.Int)))
}

// A unit test with no setUp() runs directly against the fresh deployment.
func TestContractRunnerUnitTestWithoutSetUp(t *testing.T) {
	runner := newContractRunner(t, "GmTest", singleTestAbiJSON, alwaysSucceedsCode, nil)

	results, err := runner.RunTests(nil)
	require.NoError(t, err)

	require.Contains(t, results, "testGm")
	assert.True(t, results["testGm"].Success)
}

// A fuzz test with no fuzzer configured is skipped rather than run, and still reports success.
func TestContractRunnerFuzzTestSkippedWithoutFuzzer(t *testing.T) {
	runner := newContractRunner(t, "PropTest", fuzzPropertyAbiJSON, revertsIfEqualsCode(42), nil)

	results, err := runner.RunTests(nil)
	require.NoError(t, err)

	require.Contains(t, results, "testProp")
	assert.True(t, results["testProp"].Success)
	assert.True(t, results["testProp"].Skipped)
}
