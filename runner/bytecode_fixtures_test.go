package runner

// alwaysSucceedsCode is runtime bytecode that halts immediately without consuming calldata: STOP.
var alwaysSucceedsCode = []byte{0x00}

// alwaysRevertsCode is runtime bytecode that reverts unconditionally with no return data: PUSH1 0, PUSH1 0, REVERT.
var alwaysRevertsCode = []byte{0x60, 0x00, 0x60, 0x00, 0xfd}

// revertsIfEqualsCode returns runtime bytecode for a single uint256-parameter function that reverts if the first
// argument (calldata bytes 4:36) equals want, and succeeds otherwise. want must fit in a single byte for this
// minimal fixture (PUSH1 comparand).
//
//	PUSH1 0x04        ; offset of the first argument word
//	CALLDATALOAD      ; x
//	PUSH1 want
//	EQ
//	PUSH1 <jumpdest>
//	JUMPI
//	STOP
//	JUMPDEST
//	PUSH1 0
//	PUSH1 0
//	REVERT
func revertsIfEqualsCode(want byte) []byte {
	return []byte{
		0x60, 0x04, // PUSH1 0x04
		0x35,       // CALLDATALOAD
		0x60, want, // PUSH1 want
		0x14,       // EQ
		0x60, 0x0a, // PUSH1 0x0a (jumpdest offset)
		0x57, // JUMPI
		0x00, // STOP
		0x5b, // JUMPDEST
		0x60, 0x00,
		0x60, 0x00,
		0xfd, // REVERT
	}
}

// noArgsAbiJSON is a minimal ABI for a contract exposing setUp and three zero-argument test* functions, matching the
// GreeterTest fixture shape.
const noArgsAbiJSON = `[
	{"type":"function","name":"setUp","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"testGreeting","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"testIsNotEmpty","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"testSetGreeting","inputs":[],"outputs":[],"stateMutability":"nonpayable"}
]`

// singleTestAbiJSON is a minimal ABI for a contract exposing one zero-argument test function, matching the GmTest
// fixture shape.
const singleTestAbiJSON = `[
	{"type":"function","name":"testGm","inputs":[],"outputs":[],"stateMutability":"nonpayable"}
]`

// testFailAbiJSON is a minimal ABI for a contract exposing one zero-argument testFail* function.
const testFailAbiJSON = `[
	{"type":"function","name":"testFailX","inputs":[],"outputs":[],"stateMutability":"nonpayable"}
]`

// fuzzPropertyAbiJSON is a minimal ABI for a contract exposing one uint256-parameter fuzz test function.
const fuzzPropertyAbiJSON = `[
	{"type":"function","name":"testProp","inputs":[{"name":"x","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"}
]`
