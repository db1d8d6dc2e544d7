package api

// Delegation represents a single delegation check result in API responses
type Delegation struct {
	Account           string         `json:"account"`
	RecordAddress     string         `json:"record_address,omitempty"`
	Status            string         `json:"status"`
	ValidatorIdentity string         `json:"validator_identity,omitempty"`
	Discriminator     string         `json:"discriminator,omitempty"` // hex-encoded
	Record            *RecordAccount `json:"record,omitempty"`
}

// RecordAccount carries the record account's on-chain metadata
type RecordAccount struct {
	Lamports   uint64 `json:"lamports"`
	Owner      string `json:"owner"`
	DataLength int    `json:"data_length"`
	Executable bool   `json:"executable"`
	RentEpoch  uint64 `json:"rent_epoch"`
}

// DelegationsResponse represents the API response format for the batch route
type DelegationsResponse struct {
	Data []Delegation `json:"data"`
}
