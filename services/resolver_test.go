package services

import (
	"context"
	"errors"
	"testing"

	apperrors "storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStoreRepo implements repository.StoreRepo for resolver tests.
type fakeStoreRepo struct {
	byPath map[string]*models.Store
	byID   map[string]*models.Store
	err    error
}

func (f *fakeStoreRepo) FindByID(ctx context.Context, id string) (*models.Store, error) {
	if f.err != nil {
		return nil, f.err
	}
	if store, ok := f.byID[id]; ok {
		return store, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStoreRepo) FindByCustomPath(ctx context.Context, path string) (*models.Store, error) {
	if f.err != nil {
		return nil, f.err
	}
	if store, ok := f.byPath[path]; ok {
		return store, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStoreRepo) Create(ctx context.Context, store *models.Store) error { return nil }
func (f *fakeStoreRepo) UpdateSettings(ctx context.Context, id string, updates map[string]interface{}) error {
	return nil
}
func (f *fakeStoreRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }
func (f *fakeStoreRepo) FindAll(ctx context.Context) ([]models.Store, error)         { return nil, nil }

func TestResolveCustomPathWinsOverID(t *testing.T) {
	// Store A claims the path "shop1"; store B's raw id is literally
	// "shop1". The path lookup has to win.
	storeA := &models.Store{ID: "a", CustomPath: "shop1"}
	storeB := &models.Store{ID: "shop1"}
	repo := &fakeStoreRepo{
		byPath: map[string]*models.Store{"shop1": storeA},
		byID:   map[string]*models.Store{"a": storeA, "shop1": storeB},
	}

	resolver := NewStoreResolver(repo)
	store, err := resolver.Resolve(context.Background(), "shop1")

	require.NoError(t, err)
	assert.Equal(t, "a", store.ID)
}

func TestResolveFallsBackToID(t *testing.T) {
	storeB := &models.Store{ID: "abc123"}
	repo := &fakeStoreRepo{
		byPath: map[string]*models.Store{},
		byID:   map[string]*models.Store{"abc123": storeB},
	}

	resolver := NewStoreResolver(repo)
	store, err := resolver.Resolve(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, "abc123", store.ID)
}

func TestResolveNotFound(t *testing.T) {
	resolver := NewStoreResolver(&fakeStoreRepo{})

	_, err := resolver.Resolve(context.Background(), "nowhere")

	assert.ErrorIs(t, err, apperrors.ErrStoreNotFound)
}

func TestResolveUnreachableIsNotNotFound(t *testing.T) {
	repo := &fakeStoreRepo{err: errors.New("connection refused")}
	resolver := NewStoreResolver(repo)

	_, err := resolver.Resolve(context.Background(), "shop1")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnreachable)
	assert.NotErrorIs(t, err, apperrors.ErrStoreNotFound)
}
