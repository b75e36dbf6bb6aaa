package evm

import (
	"context"
	"math/big"

	"github.com/crytic/dapptest/logging"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/params"
	"github.com/pkg/errors"
)

// defaultBlockGasLimit is the gas limit applied to a call when the caller does not specify one in CallMessage.
const defaultBlockGasLimit = uint64(0xffffffffffff)

// Executor is the one concrete Evm implementation in this repository: an in-memory EVM backed directly by a
// *state.StateDB, with no block-chain, genesis, or consensus engine underneath it. It is grounded in the teacher's
// chain.TestChain.CallContract call pattern, but replaces that type's int-keyed Snapshot/RevertToSnapshot journal
// rollback with StateDB.Copy() value-semantic cloning, since this adapter is rolled back between fuzz iterations
// and test invocations rather than between blocks.
type Executor struct {
	state         *state.StateDB
	chainConfig   *params.ChainConfig
	blockContext  vm.BlockContext
	blockGasLimit uint64
	logger        *logging.Logger
}

// NewExecutor creates an Executor with a fresh, empty in-memory state. blockGasLimit bounds any call whose
// CallMessage does not specify its own gas limit; a zero value selects defaultBlockGasLimit.
func NewExecutor(blockGasLimit uint64) (*Executor, error) {
	if blockGasLimit == 0 {
		blockGasLimit = defaultBlockGasLimit
	}

	db := state.NewDatabase(rawdb.NewMemoryDatabase())
	stateDB, err := state.New(common.Hash{}, db, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Executor{
		state:         stateDB,
		chainConfig:   params.TestChainConfig,
		blockGasLimit: blockGasLimit,
		blockContext:  newStaticBlockContext(blockGasLimit),
		logger:        logging.GlobalLogger.NewSubLogger("module", "evm"),
	}, nil
}

// newStaticBlockContext builds a vm.BlockContext with no underlying chain: block hashes are always empty, the base
// fee is zero (so legacy zero-gas-price calls are not rejected), and the block number/time are fixed. None of the
// core's operations depend on block-level state, so a single static context is reused for every call.
func newStaticBlockContext(gasLimit uint64) vm.BlockContext {
	return vm.BlockContext{
		CanTransfer: core.CanTransfer,
		Transfer:    core.Transfer,
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
		Coinbase:    common.Address{},
		BlockNumber: big.NewInt(1),
		Time:        0,
		Difficulty:  big.NewInt(0),
		BaseFee:     big.NewInt(0),
		GasLimit:    gasLimit,
		Random:      &common.Hash{},
	}
}

// InitializeContracts installs runtime bytecode at each given address.
func (e *Executor) InitializeContracts(deployments []ContractDeployment) error {
	for _, deployment := range deployments {
		e.state.SetCode(deployment.Address, deployment.RuntimeCode)
	}
	return nil
}

// State returns the executor's current state database.
func (e *Executor) State() *state.StateDB {
	return e.state
}

// Reset replaces the executor's state database wholesale.
func (e *Executor) Reset(s *state.StateDB) {
	e.state = s
}

// Clone returns a deep copy of the executor's current state via state.StateDB.Copy(), suitable for use as a
// per-test baseline that Reset can later restore.
func (e *Executor) Clone() *state.StateDB {
	return e.state.Copy()
}

// CallRaw dispatches a call against the executor's current state.
func (e *Executor) CallRaw(ctx context.Context, msg CallMessage) ([]byte, ReturnReason, uint64, error) {
	if ctx.Err() != nil {
		return nil, ReturnReason{}, 0, errors.WithStack(ctx.Err())
	}

	gasLimit := msg.GasLimit
	if gasLimit == 0 {
		gasLimit = e.blockGasLimit
	}

	value := msg.Value
	if value == nil {
		value = big.NewInt(0)
	}

	coreMsg := &core.Message{
		To:                msg.To,
		From:              msg.From,
		Nonce:             e.state.GetNonce(msg.From),
		Value:             value,
		GasLimit:          gasLimit,
		GasPrice:          big.NewInt(0),
		GasFeeCap:         big.NewInt(0),
		GasTipCap:         big.NewInt(0),
		Data:              msg.Calldata,
		AccessList:        nil,
		SkipAccountChecks: true,
	}

	// Give the sender an effectively unlimited balance so insufficient-funds is never the cause of a test failure;
	// this core's gas accounting is the only resource constraint it models (§5: no gas/fee market concerns).
	e.state.SetBalance(msg.From, new(big.Int).Mul(big.NewInt(1_000_000_000), big.NewInt(1_000_000_000_000_000_000)))

	txContext := core.NewEVMTxContext(coreMsg)
	evm := vm.NewEVM(e.blockContext, txContext, e.state, e.chainConfig, vm.Config{NoBaseFee: true})

	gasPool := new(core.GasPool).AddGas(coreMsg.GasLimit)
	gasBefore := coreMsg.GasLimit

	result, err := core.ApplyMessage(evm, coreMsg, gasPool)
	if err != nil {
		return nil, ReturnReason{}, 0, errors.WithStack(err)
	}

	gasAfter := gasBefore - result.UsedGas
	gasUsed := executionGas(gasBefore, gasAfter, msg.Calldata)

	reason := ReturnReason{VMErr: result.Err, ReturnData: result.ReturnData}
	e.logger.Trace("call to ", msg.To, " used ", gasUsed, " gas")
	return result.ReturnData, reason, gasUsed, nil
}

// CallMethod ABI-encodes args against method, dispatches the call via CallRaw, and ABI-decodes the return data on
// success.
func (e *Executor) CallMethod(ctx context.Context, msg CallMessage, method *abi.Method, args []any) ([]any, ReturnReason, uint64, error) {
	packedArgs, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, ReturnReason{}, 0, errors.Wrapf(err, "failed to encode arguments for %s", method.Sig)
	}

	msg.Calldata = append(append([]byte{}, method.ID...), packedArgs...)

	returnData, reason, gasUsed, err := e.CallRaw(ctx, msg)
	if err != nil {
		return nil, reason, gasUsed, err
	}

	if reason.IsFail() {
		return nil, reason, gasUsed, nil
	}

	decoded, err := method.Outputs.Unpack(returnData)
	if err != nil {
		return nil, reason, gasUsed, errors.Wrapf(err, "failed to decode return data for %s", method.Sig)
	}
	return decoded, reason, gasUsed, nil
}

// compile-time assertion that Executor satisfies Evm[*state.StateDB].
var _ Evm[*state.StateDB] = (*Executor)(nil)
