package redis

const (
	// KeyPrefixLink is the prefix for link keys
	KeyPrefixLink = "linkvault:link:"
	// KeyLinksByCreated is the sorted set of link IDs scored by creation time
	KeyLinksByCreated = "linkvault:links:by_created"
)

// LinkKey returns the Redis key for a link by ID
func LinkKey(id string) string {
	return KeyPrefixLink + id
}

// LinksByCreatedKey returns the key of the creation-time index
func LinksByCreatedKey() string {
	return KeyLinksByCreated
}
