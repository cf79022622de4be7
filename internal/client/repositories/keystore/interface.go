// Package keystore implements the local keyed storage: namespaced key→value
// records where every value is a UTF-8 JSON document.
package keystore

import "context"

// Namespaces of the local store. Credentials and the session live apart from
// medication data so that wiping one kind never touches the other.
const (
	NamespaceAuth        = "auth"
	NamespaceMedications = "medications"
)

// Repository is a namespaced key→JSON store.
//
// Get returns (nil, nil) when the key is absent: absence is an expected state
// for most callers, not an error.
type Repository interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
	ListPrefix(ctx context.Context, namespace, prefix string) (map[string][]byte, error)
	DeletePrefix(ctx context.Context, namespace, prefix string) error
}
