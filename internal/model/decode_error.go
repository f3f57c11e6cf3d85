package model

// DecodeError records a decode or join failure for a swap log. Failures are
// logged and the record skipped; they never abort a fetch.
type DecodeError struct {
	BlockNumber uint64 `json:"block_number"`
	LogIndex    uint64 `json:"log_index"`
	Address     string `json:"address"`
	Reason      string `json:"reason"`
}
