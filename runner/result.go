package runner

// TestResult is the outcome of running one test function once (a unit test) or through a bounded series of fuzz
// trials (a fuzz test).
type TestResult struct {
	// Success is true if the test passed: for an ordinary test, the call succeeded; for a testFail-prefixed test,
	// the call reverted.
	Success bool
	// Reason is a human-readable explanation of a failure (a decoded revert string, panic reason, or hex-encoded
	// raw revert data). Nil on success.
	Reason *string
	// GasUsed is the execution gas consumed by the call that produced this result. For a fuzz test it is the gas of
	// the last failing trial, and zero when the fuzz test passed.
	GasUsed uint64
	// Counterexample holds the shrunk arguments that reproduced a fuzz test's failure. Nil for unit tests and for
	// fuzz tests that did not fail.
	Counterexample []any
	// Skipped is true for a fuzz test that could not run because no fuzz.Driver was configured on the runner.
	// Skipped tests are always reported as Success: true.
	Skipped bool
}
