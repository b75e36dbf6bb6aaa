package runner

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/crytic/dapptest/compilation/types"
	"github.com/crytic/dapptest/evm"
	"github.com/crytic/dapptest/fuzzing/fuzz"
	"github.com/crytic/dapptest/logging"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
)

const (
	setUpFunctionName      = "setUp"
	testFunctionPrefix     = "test"
	testFailFunctionPrefix = "testFail"
)

// isTestFunctionName returns true if name follows the test-function naming convention.
func isTestFunctionName(name string) bool {
	return strings.HasPrefix(name, testFunctionPrefix)
}

// isTestFailFunctionName returns true if name follows the inverted-expectation testFail convention. Every
// testFail-prefixed name is also a test-function name, since testFailFunctionPrefix itself begins with
// testFunctionPrefix.
func isTestFailFunctionName(name string) bool {
	return strings.HasPrefix(name, testFailFunctionPrefix)
}

// ContractRunner drives one deployed contract through its setUp/test lifecycle: optional setup, per-test state
// isolation, unit and fuzz test dispatch, and result classification including the testFail inversion.
type ContractRunner struct {
	adapter  *evm.Executor
	name     string
	contract *types.CompiledContract
	address  common.Address
	fuzzer   *fuzz.Driver
	logger   *logging.Logger
}

// RunTests runs every test* function whose fully qualified name ("ContractName::functionName") matches pattern (a
// nil pattern matches everything), and returns their results keyed by function name.
func (r *ContractRunner) RunTests(pattern *regexp.Regexp) (map[string]*TestResult, error) {
	methods := r.matchingTestMethods(pattern)
	if len(methods) == 0 {
		return nil, nil
	}

	baseline, setupErr := r.runSetUp()
	if setupErr != nil {
		reason := setupErr.Error()
		results := make(map[string]*TestResult, len(methods))
		for _, method := range methods {
			results[method.Name] = &TestResult{Success: false, Reason: &reason}
		}
		return results, nil
	}

	results := make(map[string]*TestResult, len(methods))
	for _, method := range methods {
		r.adapter.Reset(baseline.Copy())
		results[method.Name] = r.runOne(&method)
	}
	return results, nil
}

// matchingTestMethods returns the contract's test* functions in stable (name-sorted) order, filtered by pattern.
func (r *ContractRunner) matchingTestMethods(pattern *regexp.Regexp) []abi.Method {
	var methods []abi.Method
	for name, method := range r.contract.Abi.Methods {
		if !isTestFunctionName(name) {
			continue
		}
		fullyQualifiedName := r.name + "::" + name
		if pattern != nil && !pattern.MatchString(fullyQualifiedName) {
			continue
		}
		methods = append(methods, method)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })
	return methods
}

// runSetUp invokes the contract's setUp() hook if declared, and returns the post-setup state as the baseline every
// test is restored to before it runs. A missing setUp() is not an error; a reverting one is fatal for every test in
// this contract.
func (r *ContractRunner) runSetUp() (*state.StateDB, error) {
	method, hasSetUp := r.contract.Abi.Methods[setUpFunctionName]
	if !hasSetUp {
		return r.adapter.Clone(), nil
	}

	_, reason, _, err := r.adapter.CallMethod(context.Background(), evm.CallMessage{To: &r.address}, &method, nil)
	if err != nil {
		return nil, err
	}
	if reason.IsFail() {
		return nil, &setUpRevertedError{reason: evm.DecodeRevertReason(reason, &r.contract.Abi)}
	}
	return r.adapter.Clone(), nil
}

// setUpRevertedError reports that a contract's setUp() hook reverted, making every test in the contract fail.
type setUpRevertedError struct {
	reason string
}

func (e *setUpRevertedError) Error() string {
	if e.reason == "" {
		return "setUp reverted"
	}
	return "setUp reverted: " + e.reason
}

// runOne executes a single test function. Zero-argument functions run once as a unit test; functions taking one or
// more arguments are dispatched through the configured fuzzer, or skipped if none is configured.
func (r *ContractRunner) runOne(method *abi.Method) *TestResult {
	if len(method.Inputs) == 0 {
		return r.runUnitTest(method)
	}
	return r.runFuzzTest(method)
}

// runUnitTest issues one call with no arguments and classifies the outcome, applying the testFail inversion.
func (r *ContractRunner) runUnitTest(method *abi.Method) *TestResult {
	_, reason, gasUsed, err := r.adapter.CallMethod(context.Background(), evm.CallMessage{To: &r.address}, method, nil)
	if err != nil {
		errStr := err.Error()
		return &TestResult{Success: false, Reason: &errStr}
	}

	success := reason.IsSuccess()
	if isTestFailFunctionName(method.Name) {
		success = !success
	}

	result := &TestResult{Success: success, GasUsed: gasUsed}
	if !success {
		result.Reason = failureReason(reason, &r.contract.Abi, isTestFailFunctionName(method.Name))
	}
	return result
}

// runFuzzTest drives method through the configured fuzz.Driver, restoring the adapter to the per-trial baseline
// before every property evaluation so no trial's state leaks into the next.
func (r *ContractRunner) runFuzzTest(method *abi.Method) *TestResult {
	if r.fuzzer == nil {
		return &TestResult{Success: true, Skipped: true}
	}

	baseline := r.adapter.Clone()
	testFail := isTestFailFunctionName(method.Name)

	var (
		lastGasUsed uint64
		lastArgs    []any
	)

	property := func(ctx context.Context, args []any) (fuzz.Outcome, error) {
		r.adapter.Reset(baseline.Copy())

		_, reason, gasUsed, err := r.adapter.CallMethod(ctx, evm.CallMessage{To: &r.address}, method, args)
		if err != nil {
			return fuzz.Outcome{}, err
		}

		passed := reason.IsSuccess()
		if testFail {
			passed = !passed
		}
		if passed {
			return fuzz.Outcome{Passed: true}, nil
		}

		// Only record gas/args for a failing trial: the shrinker may probe candidates that turn out to pass, and
		// those must not overwrite the counterexample belonging to the last trial that actually failed.
		lastGasUsed, lastArgs = gasUsed, args
		reasonPtr := failureReason(reason, &r.contract.Abi, testFail)
		return fuzz.Outcome{Passed: false, Reason: *reasonPtr}, nil
	}

	paramTypes := make([]abi.Type, len(method.Inputs))
	for i, input := range method.Inputs {
		paramTypes[i] = input.Type
	}

	outcome, err := r.fuzzer.Run(context.Background(), property, paramTypes)
	if err != nil {
		errStr := err.Error()
		return &TestResult{Success: false, Reason: &errStr}
	}

	if outcome.Passed {
		return &TestResult{Success: true, GasUsed: lastGasUsed}
	}

	reason := outcome.Reason
	return &TestResult{Success: false, Reason: &reason, GasUsed: lastGasUsed, Counterexample: lastArgs}
}

// failureReason decodes a human-readable explanation for a failing call. For a testFail-prefixed test that
// unexpectedly succeeded, reason.IsSuccess() is true and there is no revert data to decode, so a fixed explanation
// is returned instead.
func failureReason(reason evm.ReturnReason, contractAbi *abi.ABI, testFail bool) *string {
	if testFail && reason.IsSuccess() {
		msg := "expected call to revert, but it succeeded"
		return &msg
	}
	msg := evm.DecodeRevertReason(reason, contractAbi)
	if msg == "" {
		msg = "call reverted with no return data"
	}
	return &msg
}
