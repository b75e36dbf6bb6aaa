package cmd

import (
	"fmt"
	"regexp"
	"time"

	"github.com/crytic/dapptest/cmd/exitcodes"
	"github.com/crytic/dapptest/fuzzing/fuzz"
	"github.com/crytic/dapptest/runner"
	"github.com/spf13/cobra"
)

// testCmd runs every test* function across the configured contracts and reports pass/fail results.
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Compile contracts and run their test functions",
	Long:  "test compiles (or loads) a set of contracts, deploys them into an isolated EVM, and runs every test* function it finds.",
	RunE:  runTest,
}

var (
	testContractsFlag   string
	testRemappingsFlag  []string
	testArtifactFlag    string
	testNoCompileFlag   bool
	testPatternFlag     string
	testFuzzRunsFlag    int
	testFuzzSeedFlag    int64
	testFuzzShrinkLimit int
	testNoFuzzFlag      bool
)

func init() {
	testCmd.Flags().StringVar(&testContractsFlag, "contracts", "", "glob pattern identifying Solidity sources to compile")
	testCmd.Flags().StringSliceVar(&testRemappingsFlag, "remappings", nil, "import remappings passed through to the compiler")
	testCmd.Flags().StringVar(&testArtifactFlag, "artifact", "", "path to a prebuilt JSON artifact file, used instead of compiling")
	testCmd.Flags().BoolVar(&testNoCompileFlag, "no-compile", false, "skip compilation; requires --artifact")
	testCmd.Flags().StringVar(&testPatternFlag, "match", "", "regular expression filtering tests by ContractName::functionName")
	testCmd.Flags().IntVar(&testFuzzRunsFlag, "fuzz-runs", 256, "number of randomized trials per fuzz test")
	testCmd.Flags().Int64Var(&testFuzzSeedFlag, "fuzz-seed", 0, "seed for the fuzzer's random source (0 selects a time-derived seed)")
	testCmd.Flags().IntVar(&testFuzzShrinkLimit, "fuzz-shrink-limit", 500, "maximum shrink attempts against a failing fuzz input")
	testCmd.Flags().BoolVar(&testNoFuzzFlag, "no-fuzz", false, "skip fuzz tests instead of running them")

	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	builder := runner.NewMultiContractRunnerBuilder().
		WithContracts(testContractsFlag).
		WithRemappings(testRemappingsFlag)

	if testArtifactFlag != "" {
		builder = builder.WithArtifact(testArtifactFlag)
	} else if testNoCompileFlag {
		return exitcodes.NewErrorWithExitCode(fmt.Errorf("--no-compile requires --artifact"), exitcodes.ExitCodeGeneralError)
	}

	if !testNoFuzzFlag {
		seed := testFuzzSeedFlag
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		builder = builder.WithFuzzer(&fuzz.Driver{
			Runs:                testFuzzRunsFlag,
			MaxShrinkIterations: testFuzzShrinkLimit,
			Seed:                seed,
		})
	}

	multiRunner, err := builder.Build()
	if err != nil {
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeGeneralError)
	}

	var pattern *regexp.Regexp
	if testPatternFlag != "" {
		pattern, err = regexp.Compile(testPatternFlag)
		if err != nil {
			return exitcodes.NewErrorWithExitCode(fmt.Errorf("invalid --match pattern: %w", err), exitcodes.ExitCodeGeneralError)
		}
	}

	results, err := multiRunner.Test(pattern)
	if err != nil {
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeFuzzerError)
	}

	anyFailed := printResults(results)
	if anyFailed {
		return exitcodes.NewErrorWithExitCode(fmt.Errorf("one or more tests failed"), exitcodes.ExitCodeTestFailed)
	}
	return nil
}

// printResults renders a contract/function/TestResult tree to stdout and reports whether any non-skipped test
// failed.
func printResults(results map[string]map[string]*runner.TestResult) bool {
	anyFailed := false
	for contractName, functionResults := range results {
		fmt.Printf("%s\n", contractName)
		for functionName, result := range functionResults {
			status := "PASS"
			if result.Skipped {
				status = "SKIP"
			} else if !result.Success {
				status = "FAIL"
				anyFailed = true
			}
			fmt.Printf("  [%s] %s (gas: %d)\n", status, functionName, result.GasUsed)
			if result.Reason != nil {
				fmt.Printf("    reason: %s\n", *result.Reason)
			}
			if len(result.Counterexample) > 0 {
				fmt.Printf("    counterexample: %v\n", result.Counterexample)
			}
		}
	}
	return anyFailed
}
