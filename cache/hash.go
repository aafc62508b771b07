package cache

import (
	"fmt"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns highwayhash-64 of data parts, each part is length prefixed
func Hash(parts ...[]byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	for _, part := range parts {
		if _, err = fmt.Fprintf(hash, "%d:", len(part)); err != nil {
			return 0, err
		}
		if _, err = hash.Write(part); err != nil {
			return 0, err
		}
	}
	return hash.Sum64(), nil
}

// Key returns cache key of a transform input
func Key(moduleID, fingerprint string, source []byte) (string, error) {
	sum, err := Hash([]byte(moduleID), []byte(fingerprint), source)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", sum), nil
}
