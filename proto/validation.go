package proto

// ValidationChannel is the message channel name the validation widget posts
// its completion and expiry events on.
const ValidationChannel = "callbackHandler"

type ValidationStatus string

const (
	ValidationStatus_Succeeded ValidationStatus = "succeeded"
	ValidationStatus_Failed    ValidationStatus = "failed"
	ValidationStatus_Pending   ValidationStatus = "pending"
)

func (s ValidationStatus) Valid() bool {
	switch s {
	case ValidationStatus_Succeeded, ValidationStatus_Failed, ValidationStatus_Pending:
		return true
	}
	return false
}

func (s ValidationStatus) String() string {
	return string(s)
}

// ValidationResult is the outcome of a single-shot validation flow. It is
// decoded from the JSON remainder of an onComplete:/onExpired: message and
// lives only for the duration of one callback invocation.
type ValidationResult struct {
	Status       ValidationStatus `json:"status"`
	ValidationID string           `json:"validationID"`
}
