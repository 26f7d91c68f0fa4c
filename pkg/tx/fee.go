package tx

// RequiredFee returns the exact minimum fee for a fully built transaction at
// the given fee rate (base units per byte of SigningBytes). Output values are
// fixed-width in the serialization, so adjusting an output value afterwards
// does not change the size this was computed from.
func RequiredFee(transaction *Transaction, feeRate uint64) uint64 {
	return uint64(len(transaction.SigningBytes())) * feeRate
}

// EstimateTxFee returns an upper-bound fee for a transaction with the given
// number of inputs and plain outputs at the given fee rate, before the draft
// exists. Used for pre-sizing funding requirements; the final fee always
// comes from RequiredFee on the built draft.
//
// Layout per SigningBytes: version(4) + inputCount(4) + inputs(36*n) +
// outputCount(4) + outputs(perOut*n) + locktime(8). perOutput assumes a
// tokenless P2PKH output (8 value + 1 type + 4 len + 20 addr + 1 flag);
// extraOutputBytes adds per-output slack for token-carrying outputs
// (45 fixed token bytes + commitment length).
func EstimateTxFee(numInputs, numOutputs int, feeRate uint64, extraOutputBytes ...int) uint64 {
	const overhead = 4 + 4 + 4 + 8
	const perInput = 32 + 4
	const perOutput = 8 + 1 + 4 + 20 + 1

	extra := 0
	if len(extraOutputBytes) > 0 {
		extra = extraOutputBytes[0]
	}

	size := overhead + perInput*numInputs + (perOutput+extra)*numOutputs
	return uint64(size) * feeRate
}
