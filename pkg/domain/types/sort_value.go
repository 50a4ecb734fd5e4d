package types

// SortValue represents the sort key for issue listing
type SortValue string

const (
	SortDate     SortValue = "date"     // most recently seen first
	SortNew      SortValue = "new"      // most recently created first
	SortPriority SortValue = "priority" // highest priority first
	SortFreq     SortValue = "freq"     // highest event count first
	SortUser     SortValue = "user"     // most affected users first
)

// String returns the string representation of the sort value
func (s SortValue) String() string {
	return string(s)
}

// IsValid checks if the sort value is valid
func (s SortValue) IsValid() bool {
	switch s {
	case SortDate, SortNew, SortPriority, SortFreq, SortUser:
		return true
	default:
		return false
	}
}

// SortValues returns all valid sort values
func SortValues() []SortValue {
	return []SortValue{SortDate, SortNew, SortPriority, SortFreq, SortUser}
}
