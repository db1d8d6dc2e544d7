package checker

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// DelegationRecord mirrors the fixed 96-byte on-chain record layout:
// bytes 0-7 discriminator, 8-39 validator identity, 40-95 opaque metadata.
type DelegationRecord struct {
	Discriminator     [8]byte
	ValidatorIdentity solana.PublicKey
	Metadata          [56]byte
}

// DecodeRecord parses raw account data into a DelegationRecord. Data of any
// length other than RecordSize yields (nil, false) - a short or oversized
// account is "no record", not an error. The discriminator value is passed
// through without validation, so any 96-byte account is accepted
// structurally.
func DecodeRecord(data []byte) (*DelegationRecord, bool) {
	if len(data) != RecordSize {
		return nil, false
	}

	var rec DelegationRecord
	if err := bin.NewBinDecoder(data).Decode(&rec); err != nil {
		return nil, false
	}
	return &rec, true
}
