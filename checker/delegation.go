package checker

import "github.com/gagliardetto/solana-go"

// DelegationProgramID is the on-chain program owning per-account delegation
// records. Overridable per Resolver via WithProgramID.
var DelegationProgramID = solana.MustPublicKeyFromBase58("DELeGGvXpWV2fqJUhqcF5ZSYMS4JTLjteaAMARRSaeSh")

const (
	// DelegationSeed is the fixed seed prefixing record address derivation.
	DelegationSeed = "delegation"

	// RecordSize is the exact byte length of a well-formed delegation record.
	// Anything else is treated as "no record", never parsed partially.
	RecordSize = 96
)

// DelegationStatus is the two-state outcome of a delegation check.
type DelegationStatus string

const (
	StatusDelegated    DelegationStatus = "delegated"
	StatusNotDelegated DelegationStatus = "not_delegated"
)

// RecordAccount carries the on-chain metadata of the record account, taken
// verbatim from the confirmed read. It is populated whenever the account
// exists with funds, even if its data is not a well-formed record.
type RecordAccount struct {
	Lamports   uint64           `json:"lamports"`
	Owner      solana.PublicKey `json:"owner"`
	DataLength int              `json:"dataLength"`
	Executable bool             `json:"executable"`
	RentEpoch  uint64           `json:"rentEpoch"`
}

// DelegationResult is the outcome of checking a single account. Values are
// created per query and never mutated afterwards.
type DelegationResult struct {
	Account           solana.PublicKey  `json:"account"`
	RecordAddress     solana.PublicKey  `json:"recordAddress"`
	Status            DelegationStatus  `json:"status"`
	RecordAccount     *RecordAccount    `json:"recordAccount,omitempty"`
	ValidatorIdentity *solana.PublicKey `json:"validatorIdentity,omitempty"`
	Discriminator     []byte            `json:"discriminator,omitempty"`
}

// Delegated reports whether the account is delegated.
func (r DelegationResult) Delegated() bool {
	return r.Status == StatusDelegated
}

// Resolved reports whether this result came from an actual lookup. Batch
// placeholder slots for accounts that failed to resolve carry a zero
// account key.
func (r DelegationResult) Resolved() bool {
	return !r.Account.IsZero()
}
