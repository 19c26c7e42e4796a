package orchestrators

import (
	"context"
	"log/slog"
)

// Deleter removes one record by id.
type Deleter interface {
	Delete(ctx context.Context, id int64) error
}

// DeleteDeps holds dependencies for Delete.
type DeleteDeps struct {
	Store Deleter
}

// ExecuteDelete removes record id of the named resource.
// POST: The store error is returned unchanged so callers can map not-found
func ExecuteDelete(ctx context.Context, resource string, id int64, deps DeleteDeps) error {
	if err := deps.Store.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("record_event", "event", "record_deleted", "resource", resource, "id", id)
	return nil
}
