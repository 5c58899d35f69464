package keys

import (
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxListing is used for prefixing cached listing views
	PfxListing = "listing"
	// PfxReconcileLock guards the settlement reconciler across settler replicas
	PfxReconcileLock = "reconcileLock"

	// ChannelListingEvents is the pub/sub channel of listing events
	ChannelListingEvents = "listing-events"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix returns the first component of a redis key
func GetPrefix(key string) string {
	if i := strings.Index(key, ":"); i >= 0 {
		return key[:i]
	}
	return key
}
