package services

import (
	"context"
	"errors"

	apperrors "storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"
)

// StoreResolver turns a caller-supplied reference, either a friendly custom
// path or a raw store id, into exactly one store record.
type StoreResolver struct {
	stores repository.StoreRepo
}

func NewStoreResolver(stores repository.StoreRepo) *StoreResolver {
	return &StoreResolver{stores: stores}
}

// Resolve looks the reference up as a custom path first, then falls back to
// a raw id lookup. The path has to win: a store must be able to claim a
// friendly URL even if its text collides with another store's raw id, and
// the id fallback keeps old hash-based links working. Collaborator outages
// surface as ErrStoreUnreachable, never as not-found, so a valid store is
// never told "does not exist" during an outage.
func (r *StoreResolver) Resolve(ctx context.Context, reference string) (*models.Store, error) {
	store, err := r.stores.FindByCustomPath(ctx, reference)
	if err == nil {
		return store, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnreachable, err)
	}

	store, err = r.stores.FindByID(ctx, reference)
	if err == nil {
		return store, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnreachable, err)
	}
	return nil, apperrors.ErrStoreNotFound
}
