package lgmp

import "github.com/lgmp-go/lgmp/internal/constants"

// Re-exported protocol constants for the public API.
const (
	MaxQueues       = constants.MaxQueues
	MaxSubscribers  = constants.MaxSubscribers
	MaxMessageAge   = constants.MaxMessageAge
	MaxQueueTimeout = constants.MaxQueueTimeout
)
