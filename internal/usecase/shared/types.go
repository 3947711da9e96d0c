package shared

import "github.com/google/uuid"

// RequestMeta carries the per-request caller context down the call chain
// explicitly. Nothing in the saga reads ambient request state.
type RequestMeta struct {
	OrderNumber   string
	UserID        uuid.UUID
	UserSessionID string
	StoreNumber   string
}
