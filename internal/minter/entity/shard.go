package entity

// Shard is one registered generator inside this process. A process may
// hold many shards as long as each carries a distinct instance number.
type Shard struct {
	Instance  uint16
	CreatedAt int64

	// Stats are maintained by the audit consumer, not on the mint path.
	Minted       int64
	LastMintedAt int64
}
