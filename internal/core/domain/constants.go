package domain

const (
	ExternalChain uint32 = 0
	InternalChain uint32 = 1

	// DefaultStopGap is the number of consecutive unused addresses probed
	// before a branch scan is considered complete.
	DefaultStopGap = 5
	// DefaultFeeTarget is the confirmation target, in blocks, used when
	// none is given.
	DefaultFeeTarget = 2
	// DefaultParallelism bounds the number of wallets built concurrently.
	DefaultParallelism = 4
)

// Branches lists the chains of an account in scan order.
var Branches = []uint32{ExternalChain, InternalChain}
