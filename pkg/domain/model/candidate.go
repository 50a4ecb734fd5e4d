package model

// FormatOptions carries rendering hints for one candidate
type FormatOptions struct {
	Alias        string
	MultiProject bool
}

// Candidate is one fetched issue bound to the target it came from.
// Candidates are transient: created per invocation, discarded after output.
type Candidate struct {
	Issue  *Issue
	Target Target
	Format FormatOptions
}
