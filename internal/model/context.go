package model

import "context"

// ContextManager stores the authenticated requester in a request context.
type ContextManager interface {
	SetRequesterToContext(ctx context.Context, requester Requester) context.Context
	GetRequesterFromContext(ctx context.Context) (Requester, bool)
}
