package evm

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// returnsOneRuntimeCode is raw EVM bytecode for a trivial contract: PUSH1 1, PUSH1 0, MSTORE, PUSH1 32, PUSH1 0,
// RETURN. It has no constructor logic because it is installed directly as runtime code.
var returnsOneRuntimeCode = []byte{
	0x60, 0x01, // PUSH1 1
	0x60, 0x00, // PUSH1 0
	0x52,       // MSTORE
	0x60, 0x20, // PUSH1 32
	0x60, 0x00, // PUSH1 0
	0xf3, // RETURN
}

func TestExecutorInitializeAndCallRaw(t *testing.T) {
	executor, err := NewExecutor(0)
	require.NoError(t, err)

	addr := common.HexToAddress("0x00000000000000000000000000000000001234")
	require.NoError(t, executor.InitializeContracts([]ContractDeployment{
		{Address: addr, RuntimeCode: returnsOneRuntimeCode},
	}))

	returnData, reason, gasUsed, err := executor.CallRaw(context.Background(), CallMessage{
		From: common.Address{},
		To:   &addr,
	})
	require.NoError(t, err)
	assert.True(t, reason.IsSuccess())
	assert.False(t, reason.IsFail())
	assert.Greater(t, gasUsed, uint64(0))
	assert.Equal(t, new(big.Int).SetBytes(returnData).Uint64(), uint64(1))
}

func TestExecutorCloneAndReset(t *testing.T) {
	executor, err := NewExecutor(0)
	require.NoError(t, err)

	addr := common.HexToAddress("0x00000000000000000000000000000000005678")
	require.NoError(t, executor.InitializeContracts([]ContractDeployment{
		{Address: addr, RuntimeCode: returnsOneRuntimeCode},
	}))

	baseline := executor.Clone()

	// Mutate state past the baseline.
	executor.State().SetCode(addr, []byte{0x00})

	// Restoring the baseline should undo the mutation.
	executor.Reset(baseline)
	assert.Equal(t, returnsOneRuntimeCode, executor.State().GetCode(addr))
}

func TestExecutorCallMethodDecodesRevertReason(t *testing.T) {
	executor, err := NewExecutor(0)
	require.NoError(t, err)

	// Bytecode for a function that always reverts with Error("boom"):
	// selector doesn't matter here since CallMethod supplies it; this contract reverts unconditionally regardless
	// of calldata, returning the ABI-encoded Error(string) payload for "boom".
	revertingCode := buildRevertWithErrorStringCode("boom")

	addr := common.HexToAddress("0x0000000000000000000000000000000000abcd")
	require.NoError(t, executor.InitializeContracts([]ContractDeployment{
		{Address: addr, RuntimeCode: revertingCode},
	}))

	uintType, _ := abi.NewType("uint256", "", nil)
	method := abi.NewMethod("fail", "fail", abi.Function, "nonpayable", false, false, abi.Arguments{
		{Name: "x", Type: uintType},
	}, abi.Arguments{})

	_, reason, _, err := executor.CallMethod(context.Background(), CallMessage{To: &addr}, &method, []any{big.NewInt(1)})
	require.NoError(t, err)
	assert.True(t, reason.IsFail())
	assert.Equal(t, "boom", DecodeRevertReason(reason, nil))
}

// buildRevertWithErrorStringCode returns minimal bytecode that copies a pre-baked Error(string) revert payload into
// memory and reverts with it, regardless of calldata.
func buildRevertWithErrorStringCode(msg string) []byte {
	stringType, _ := abi.NewType("string", "", nil)
	errMethod := abi.NewMethod("Error", "Error", abi.Function, "", false, false, abi.Arguments{
		{Name: "", Type: stringType},
	}, abi.Arguments{})
	packed, _ := errMethod.Inputs.Pack(msg)
	payload := append(append([]byte{}, errMethod.ID...), packed...)

	// Write the payload into memory with PUSH32-chunked literal pushes via MSTORE (the payload is longer than 32
	// bytes for most messages, so it is padded to a 32-byte multiple), then REVERT with it.
	code := []byte{}
	for len(payload)%32 != 0 {
		payload = append(payload, 0)
	}
	for i := 0; i < len(payload); i += 32 {
		chunk := payload[i : i+32]
		code = append(code, 0x7f) // PUSH32
		code = append(code, chunk...)
		code = append(code, pushOffset(i)...)
		code = append(code, 0x52) // MSTORE
	}
	code = append(code, pushOffset(len(payload))...)
	code = append(code, 0x60, 0x00) // PUSH1 0
	code = append(code, 0xfd)       // REVERT
	return code
}

// pushOffset returns bytecode pushing a small offset onto the stack using PUSH2 for simplicity.
func pushOffset(offset int) []byte {
	return []byte{0x61, byte(offset >> 8), byte(offset)}
}
