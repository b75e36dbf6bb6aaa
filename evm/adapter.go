// Package evm provides the uniform adapter over a bytecode virtual machine that the rest of the harness drives:
// installing contract code, dispatching calls, and cloning/restoring state between test invocations.
package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ContractDeployment pairs a contract's deployment address with the runtime bytecode that should be installed
// there. It is the unit InitializeContracts installs in one batch.
type ContractDeployment struct {
	// Address is the account the runtime code is installed at.
	Address common.Address
	// RuntimeCode is the bytecode the contract resolves to once deployed (not its init/constructor bytecode).
	RuntimeCode []byte
}

// CallMessage describes a single call dispatched through an Evm. It intentionally mirrors only the fields the
// adapter needs to execute a call; a caller who wants gas price/fee cap/nonce control beyond the defaults the
// adapter applies should not use this type directly.
type CallMessage struct {
	// From is the account that is considered the caller.
	From common.Address
	// To is the account the call targets. A nil To is a contract creation, which this adapter does not perform
	// (contract installation goes through InitializeContracts instead).
	To *common.Address
	// Value is the amount of wei sent along with the call.
	Value *big.Int
	// GasLimit bounds gas usage for the call. If zero, the adapter substitutes its configured block gas limit.
	GasLimit uint64
	// Calldata is the raw call data, typically selector||args.
	Calldata []byte
}

// ReturnReason classifies the outcome of a call: a VM-level revert/failure (VMErr non-nil) or success (VMErr nil).
// It deliberately does not distinguish revert from other VM execution errors (out of gas, invalid opcode, etc.) at
// this layer — callers needing that distinction inspect VMErr directly via errors.Is against core/vm sentinel
// errors.
type ReturnReason struct {
	// VMErr is the execution error reported by the VM, or nil on success.
	VMErr error
	// ReturnData is the raw bytes returned (or revert data) from the call.
	ReturnData []byte
}

// IsSuccess returns true if the call completed without a VM-level error.
func (r ReturnReason) IsSuccess() bool {
	return r.VMErr == nil
}

// IsFail returns true if the call reverted or otherwise failed at the VM level.
func (r ReturnReason) IsFail() bool {
	return r.VMErr != nil
}

// Evm is a capability set polymorphic over a state type S: a uniform interface over a bytecode virtual machine
// supporting state initialisation, call dispatch, state snapshot/restore, and success/revert classification. The
// one concrete implementation in this repository is Executor, parameterised over *state.StateDB.
type Evm[S any] interface {
	// InitializeContracts installs runtime bytecode at each given address. After it returns, every address in
	// deployments resolves to the given code; other state is untouched.
	InitializeContracts(deployments []ContractDeployment) error

	// State returns the adapter's current state. Callers should treat it as a read-only view; mutating it directly
	// bypasses the adapter's call accounting.
	State() S

	// Reset replaces the adapter's state wholesale with a previously captured one (e.g. from State() on a cloned
	// adapter, or a clone of State()).
	Reset(s S)

	// CallRaw dispatches a call and returns the raw return data, a reason describing success/failure, the gas
	// consumed (net of intrinsic calldata cost), and a host-level error. A host-level error indicates the call could
	// not be attempted at all (malformed message, context cancellation); a contract revert is reported through
	// ReturnReason, never as an error.
	CallRaw(ctx context.Context, msg CallMessage) (returnData []byte, reason ReturnReason, gasUsed uint64, err error)

	// CallMethod is a typed wrapper around CallRaw: it ABI-encodes args against method, dispatches the call, and
	// ABI-decodes the return data on success. On revert, decoded is nil and the caller should inspect reason/ err.
	CallMethod(ctx context.Context, msg CallMessage, method *abi.Method, args []any) (decoded []any, reason ReturnReason, gasUsed uint64, err error)
}
