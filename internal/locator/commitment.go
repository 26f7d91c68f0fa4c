package locator

import (
	"encoding/binary"

	"github.com/nomen-protocol/nomen-go/internal/name"
)

// Commitment layouts used by the registry's tokens. The counter token
// carries a bare 8-byte big-endian registration count; auction and
// ownership tokens carry the 8-byte registration id followed by the ASCII
// name bytes.

const registrationIDSize = 8

// CounterCommitment encodes the registration count.
func CounterCommitment(count uint64) []byte {
	buf := make([]byte, registrationIDSize)
	binary.BigEndian.PutUint64(buf, count)
	return buf
}

// DecodeCounter decodes a counter commitment.
func DecodeCounter(commitment []byte) (uint64, bool) {
	if len(commitment) != registrationIDSize {
		return 0, false
	}
	return binary.BigEndian.Uint64(commitment), true
}

// NameCommitment encodes a registration id and name, the layout shared by
// auction and ownership tokens.
func NameCommitment(registrationID uint64, n string) []byte {
	buf := make([]byte, registrationIDSize+len(n))
	binary.BigEndian.PutUint64(buf, registrationID)
	copy(buf[registrationIDSize:], name.Bytes(n))
	return buf
}

// DecodeNameCommitment decodes an auction or ownership commitment.
func DecodeNameCommitment(commitment []byte) (registrationID uint64, n string, ok bool) {
	if len(commitment) <= registrationIDSize {
		return 0, "", false
	}
	return binary.BigEndian.Uint64(commitment),
		string(commitment[registrationIDSize:]),
		true
}
