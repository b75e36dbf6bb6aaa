package evm

import (
	"encoding/hex"
	"fmt"

	"github.com/crytic/dapptest/compilation/abiutils"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// DecodeRevertReason attempts to produce a human-readable explanation for a failed call's return data. If the
// return data is a standard Solidity Error(string) payload, the decoded string is returned; a Panic(uint256) payload
// yields the panic code's description from abiutils.GetPanicReason. If a contractAbi is supplied and the return data
// matches one of its custom error definitions, a formatted representation of that error is returned. Otherwise
// non-empty return data is returned hex-encoded with a "0x" prefix, and empty return data yields "".
func DecodeRevertReason(reason ReturnReason, contractAbi *abi.ABI) string {
	if reason.IsSuccess() {
		return ""
	}

	if msg := abiutils.GetSolidityRevertErrorString(reason.VMErr, reason.ReturnData); msg != nil {
		return *msg
	}

	if panicCode := abiutils.GetSolidityPanicCode(reason.VMErr, reason.ReturnData, false); panicCode != nil {
		return abiutils.GetPanicReason(panicCode.Uint64())
	}

	if contractAbi != nil {
		if customErr, args := abiutils.GetSolidityCustomRevertError(contractAbi, reason.VMErr, reason.ReturnData); customErr != nil {
			return formatCustomError(customErr, args)
		}
	}

	if len(reason.ReturnData) == 0 {
		return ""
	}
	return "0x" + hex.EncodeToString(reason.ReturnData)
}

// formatCustomError renders a resolved custom Solidity error and its unpacked arguments as a readable string, e.g.
// InsufficientBalance(100, 50).
func formatCustomError(customErr *abi.Error, args []any) string {
	name := customErr.Name
	if len(args) == 0 {
		return name + "()"
	}
	out := name + "("
	for i, arg := range args {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%v", arg)
	}
	return out + ")"
}
