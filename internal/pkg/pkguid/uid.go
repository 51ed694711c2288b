package pkguid

// StringID generates unique string identifiers.
type StringID interface {
	// Generate generates a unique identifier as a string.
	Generate() string
}

// NumberID generates unique numeric identifiers.
//
// Implementations may fail on environmental faults (for example a broken
// system clock), so errors are part of the contract.
type NumberID interface {
	// NextID generates a unique identifier as a uint64 number.
	NextID() (uint64, error)
}
