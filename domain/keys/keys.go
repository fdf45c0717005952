package keys

import (
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxNonce is used for prefixing login nonce redis key
	PfxNonce = "nonce"
	// PfxLock is used for prefixing item lease keys
	PfxLock = "lock"
	// PfxNotification is used for prefixing notification pub/sub channels
	PfxNotification = "notification"
	// PfxErc721Interface is used for prefixing cached supportsInterface results
	PfxErc721Interface = "erc721iface"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix returns the first component of a key, used as a metrics tag
func GetPrefix(key string) string {
	if i := strings.Index(key, ":"); i > 0 {
		return key[:i]
	}
	return key
}
