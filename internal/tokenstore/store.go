package tokenstore

import "context"

// Store persists one bearer credential per portal client. Implementations are
// purely mechanical: no validation or expiry inspection happens here, and the
// credential is treated as an opaque string.
type Store interface {
	Save(ctx context.Context, clientID, credential string) error
	Load(ctx context.Context, clientID string) (credential string, ok bool, err error)
	Clear(ctx context.Context, clientID string) error
}
