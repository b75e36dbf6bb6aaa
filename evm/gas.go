package evm

import (
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/types"
)

// intrinsicGasFor computes the intrinsic gas cost (the per-byte calldata surcharge plus the flat call cost) that
// go-ethereum's state transition charges before execution begins. The adapter subtracts this from the raw
// pre/post-call gas delta so callers see only execution gas, mirroring the Rust original's
// dapp_utils::remove_extra_costs.
func intrinsicGasFor(calldata []byte, isContractCreation bool) (uint64, error) {
	return core.IntrinsicGas(calldata, types.AccessList{}, isContractCreation, true, true, true)
}

// executionGas returns the net execution gas for a call given the gas available before and after the state
// transition ran, with the intrinsic cost of calldata subtracted. It never returns a negative value: if the
// intrinsic cost alone would exceed the raw delta (possible for calls that revert before any opcode executes), zero
// is returned.
func executionGas(gasBefore, gasAfter uint64, calldata []byte) uint64 {
	rawUsed := gasBefore - gasAfter
	intrinsic, err := intrinsicGasFor(calldata, false)
	if err != nil || intrinsic > rawUsed {
		return 0
	}
	return rawUsed - intrinsic
}
