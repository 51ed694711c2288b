package entity

// MintEvent is published after each mint batch for audit bookkeeping.
type MintEvent struct {
	EventID  string
	Instance uint16
	Count    int
	MintedAt int64
}
