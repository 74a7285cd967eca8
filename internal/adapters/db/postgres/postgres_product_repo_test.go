package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	customErrors "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/catalog/model"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/catalog/repo"
)

func soup() *model.Product {
	return &model.Product{Name: "Soup", Price: 12.5, Description: "hot", Category: "starters", Available: true}
}

func TestPostgresProductRepo_CRUD(t *testing.T) {
	r := NewPostgresProductRepo(setupDB(t))
	ctx := context.Background()

	p := soup()
	require.NoError(t, r.CreateProduct(ctx, p))
	require.NotZero(t, p.ID)

	got, err := r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Soup", got.Name)

	got.Available = false
	got.Price = 14
	require.NoError(t, r.UpdateProduct(ctx, got))

	got, _ = r.GetProduct(ctx, p.ID)
	require.False(t, got.Available)
	require.Equal(t, 14.0, got.Price)

	avail, err := r.ListAvailable(ctx)
	require.NoError(t, err)
	require.Empty(t, avail)

	all, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, r.DeleteProduct(ctx, p.ID))
	_, err = r.GetProduct(ctx, p.ID)
	require.True(t, customErrors.IsNotFound(err))

	require.True(t, customErrors.IsNotFound(r.DeleteProduct(ctx, p.ID)))
	require.True(t, customErrors.IsNotFound(r.UpdateProduct(ctx, model.Product{ID: 999, Name: "x", Price: 1})))
}

func TestPostgresProductRepo_TransactionRollsBack(t *testing.T) {
	r := NewPostgresProductRepo(setupDB(t))
	ctx := context.Background()
	boom := errors.New("boom")

	err := r.Transaction(ctx, func(tx repo.ProductRepo) error {
		if err := tx.CreateProduct(ctx, soup()); err != nil {
			return err
		}
		if err := tx.AppendLog(ctx, &model.ChangeLogEntry{UserID: uuid.New(), Log: "added", Date: time.Now()}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, _ := r.ListProducts(ctx)
	require.Empty(t, all)
	logs, _ := r.ListLog(ctx)
	require.Empty(t, logs)
}

func TestPostgresProductRepo_LogNewestFirst(t *testing.T) {
	r := NewPostgresProductRepo(setupDB(t))
	ctx := context.Background()
	uid := uuid.New()

	require.NoError(t, r.AppendLog(ctx, &model.ChangeLogEntry{UserID: uid, Log: "first", Date: time.Now()}))
	require.NoError(t, r.AppendLog(ctx, &model.ChangeLogEntry{UserID: uid, Log: "second", Date: time.Now()}))

	logs, err := r.ListLog(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, "second", logs[0].Log)
}

func TestPostgresProductRepo_CreateKeepsUnavailable(t *testing.T) {
	r := NewPostgresProductRepo(setupDB(t))
	ctx := context.Background()

	hidden := soup()
	hidden.Name = "Secret"
	hidden.Available = false
	require.NoError(t, r.CreateProduct(ctx, hidden))
	require.NoError(t, r.CreateProduct(ctx, soup()))

	got, err := r.GetProduct(ctx, hidden.ID)
	require.NoError(t, err)
	require.False(t, got.Available)

	avail, err := r.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, avail, 1)
	require.Equal(t, "Soup", avail[0].Name)
}
