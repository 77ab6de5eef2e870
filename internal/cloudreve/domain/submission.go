package domain

// SubmissionResult describes an accepted remote-download submission.
type SubmissionResult struct {
	// Attempts is how many submissions were sent before acceptance (1 or 2).
	Attempts int
	// Msg is the service's message, when it sent one.
	Msg string
}
