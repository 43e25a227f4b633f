package upstream

// Outcome classifies a single upstream attempt. The fallback decision in the
// proxy is a pure function of this tag.
type Outcome int

const (
	// OutcomeSuccess carries a parsed upstream body in Result.Message.
	OutcomeSuccess Outcome = iota
	// OutcomeDegraded means the caller must fall back to a mock answer:
	// auth failure, server error, unreachable host, timeout, or forced mock
	// mode. Never surfaced to the end caller as an error.
	OutcomeDegraded
	// OutcomeError is any other non-200 status. It is propagated to the
	// caller with the original status and body, not masked.
	OutcomeError
)

// Result is the tagged outcome of one upstream call. Consumed immediately by
// the Task Proxy.
type Result struct {
	Outcome Outcome
	Message *Message // set when Outcome == OutcomeSuccess

	// Set when Outcome == OutcomeError.
	Status int
	Detail string

	// Reason is logging context for degraded outcomes.
	Reason string
}
