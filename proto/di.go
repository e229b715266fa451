package proto

// DIChannel is the message channel name the digital identity frontend posts
// its lifecycle events on.
const DIChannel = "WebViewSDK"

// LifecycleEvent is the event name field of a digital identity message,
// the first of the two comma-separated fields on the wire.
type LifecycleEvent string

const (
	LifecycleEvent_StepsCompleted   LifecycleEvent = "truora.steps.completed"
	LifecycleEvent_ProcessSucceeded LifecycleEvent = "truora.process.succeeded"
	LifecycleEvent_ProcessFailed    LifecycleEvent = "truora.process.failed"
)

func (e LifecycleEvent) String() string {
	return string(e)
}

// DIResult identifies the digital identity process a lifecycle event refers
// to. Transient, same lifecycle as ValidationResult.
type DIResult struct {
	ProcessID string `json:"processID"`
}
