// Package fuzz drives property-based trials over a test function's ABI-typed parameters, reusing the
// value-generation and shrinking machinery of fuzzing/valuegeneration.
package fuzz

import (
	"context"
	"math/rand"

	"github.com/crytic/dapptest/fuzzing/valuegeneration"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

// Outcome is the result of one property evaluation: whether it held, and, if not, a human-readable reason.
type Outcome struct {
	// Passed is true if the property held for the given arguments.
	Passed bool
	// Reason is a human-readable explanation for a failing outcome. Empty when Passed is true.
	Reason string
}

// Driver runs a bounded number of randomized trials against a property function, shrinking the first failing
// input set towards a minimal counterexample.
type Driver struct {
	// Runs is the number of randomized trials to attempt before concluding the property holds.
	Runs int
	// MaxShrinkIterations bounds how many shrink attempts are made against a failing input before giving up and
	// reporting the last-known-failing candidate.
	MaxShrinkIterations int
	// Seed seeds the driver's random source. Identical (seed, strategies, property) triples always produce
	// identical outcomes.
	Seed int64

	random *rand.Rand
}

// defaultRandomValueGeneratorConfig mirrors the teacher's fuzzer defaults for array/bytes/string sizing.
var defaultRandomValueGeneratorConfig = &valuegeneration.RandomValueGeneratorConfig{
	RandomArrayMinSize:  0,
	RandomArrayMaxSize:  10,
	RandomBytesMinSize:  0,
	RandomBytesMaxSize:  100,
	RandomStringMinSize: 0,
	RandomStringMaxSize: 100,
}

// defaultShrinkingValueMutatorConfig mirrors the teacher's shrinker defaults.
var defaultShrinkingValueMutatorConfig = &valuegeneration.ShrinkingValueMutatorConfig{
	ShrinkValueProbability: 0.1,
}

// Property is a test function's logic over decoded ABI arguments: it executes one call and reports whether the
// call's outcome counts as a pass or a failure.
type Property func(ctx context.Context, args []any) (Outcome, error)

// Run drives the property through up to d.Runs randomized trials over paramTypes. The first failing trial is
// shrunk towards a smaller counterexample (bounded by MaxShrinkIterations) before the final Outcome is returned.
// A nil error return from Run means the driver completed without a host-level failure; the returned Outcome
// reports whether the property held.
func (d *Driver) Run(ctx context.Context, property Property, paramTypes []abi.Type) (Outcome, error) {
	if d.random == nil {
		d.random = rand.New(rand.NewSource(d.Seed))
	}

	valueSet := valuegeneration.NewValueSet()
	generator := valuegeneration.NewRandomValueGenerator(defaultRandomValueGeneratorConfig, d.random)

	var (
		lastOutcome Outcome
		lastArgs    []any
		failed      bool
	)

	for trial := 0; trial < d.Runs; trial++ {
		if ctx.Err() != nil {
			return Outcome{}, errors.WithStack(ctx.Err())
		}

		args := generateArgs(generator, paramTypes)
		outcome, err := property(ctx, args)
		if err != nil {
			return Outcome{}, errors.Wrapf(err, "trial %d", trial)
		}
		recordAbiValues(valueSet, args)

		if !outcome.Passed {
			lastOutcome, lastArgs, failed = outcome, args, true
			break
		}
	}

	if !failed {
		return Outcome{Passed: true}, nil
	}

	shrunkArgs, shrunkOutcome, err := d.shrink(ctx, property, paramTypes, valueSet, lastArgs, lastOutcome)
	if err != nil {
		return Outcome{}, err
	}
	_ = shrunkArgs
	return shrunkOutcome, nil
}

// generateArgs produces one randomized argument per parameter type.
func generateArgs(generator *valuegeneration.RandomValueGenerator, paramTypes []abi.Type) []any {
	args := make([]any, len(paramTypes))
	for i := range paramTypes {
		args[i] = valuegeneration.GenerateAbiValue(generator, &paramTypes[i])
	}
	return args
}

// recordAbiValues feeds every generated argument into the value set so the shrinker (and any future generation
// biasing) can favor interesting literals observed during the run.
func recordAbiValues(valueSet *valuegeneration.ValueSet, args []any) {
	for _, arg := range args {
		valueSet.AddAbiValue(arg)
	}
}

// shrink repeatedly mutates the failing argument set towards smaller values, keeping any mutation that still fails
// the property. It always makes MaxShrinkIterations attempts (unless the context is cancelled or an error occurs);
// a rejected candidate does not end the loop early.
func (d *Driver) shrink(ctx context.Context, property Property, paramTypes []abi.Type, valueSet *valuegeneration.ValueSet, failingArgs []any, failingOutcome Outcome) ([]any, Outcome, error) {
	mutator := valuegeneration.NewShrinkingValueMutator(defaultShrinkingValueMutatorConfig, valueSet, d.random)
	generator := valuegeneration.NewRandomValueGenerator(defaultRandomValueGeneratorConfig, d.random)

	current := failingArgs
	currentOutcome := failingOutcome

	for iteration := 0; iteration < d.MaxShrinkIterations; iteration++ {
		if ctx.Err() != nil {
			return current, currentOutcome, errors.WithStack(ctx.Err())
		}

		candidate := make([]any, len(current))
		for i := range current {
			mutated, err := valuegeneration.MutateAbiValue(generator, mutator, &paramTypes[i], current[i])
			if err != nil {
				return current, currentOutcome, errors.Wrapf(err, "shrink iteration %d", iteration)
			}
			candidate[i] = mutated
		}

		outcome, err := property(ctx, candidate)
		if err != nil {
			return current, currentOutcome, errors.Wrapf(err, "shrink iteration %d", iteration)
		}

		if !outcome.Passed {
			current, currentOutcome = candidate, outcome
		}
	}

	return current, currentOutcome, nil
}
