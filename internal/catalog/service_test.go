package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlot/dealership-backend/pkg/db/dbtest"
	"github.com/openlot/dealership-backend/pkg/db/models"
	pkgerrors "github.com/openlot/dealership-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestAddVocabularyEntries(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	ford, err := svc.AddMake(ctx, "Ford")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, ford.ID)
	assert.Equal(t, "Ford", ford.String())

	escape, err := svc.AddModel(ctx, ford.ID, "Escape")
	require.NoError(t, err)
	assert.Equal(t, ford.ID, escape.MakeID)

	red, err := svc.AddColor(ctx, "Red")
	require.NoError(t, err)
	assert.Equal(t, "Red", red.String())

	stored, err := repo.FindMakeByName(ctx, "Ford")
	require.NoError(t, err)
	assert.Equal(t, ford.ID, stored.ID)

	colors, err := repo.ListColors(ctx)
	require.NoError(t, err)
	require.Len(t, colors, 1)
	assert.Equal(t, red.ID, colors[0].ID)

	storedColor, err := repo.FindColorByName(ctx, "Red")
	require.NoError(t, err)
	assert.Equal(t, red.ID, storedColor.ID)

	_, err = repo.FindColorByName(ctx, "Mauve")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestAddRejectsEmptyNames(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddMake(ctx, "")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = svc.AddColor(ctx, "")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = svc.AddModel(ctx, uuid.Nil, "Escape")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestAddModelRequiresExistingMake(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddModel(context.Background(), uuid.New(), "Escape")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestRemoveMakeCascadesModels(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	ford, err := svc.AddMake(ctx, "Ford")
	require.NoError(t, err)
	_, err = svc.AddModel(ctx, ford.ID, "Escape")
	require.NoError(t, err)
	_, err = svc.AddModel(ctx, ford.ID, "Fusion")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMake(ctx, ford.ID))

	remaining, err := repo.ListModelsByMake(ctx, ford.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestRemoveProtectedWhileCarReferences(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	ford, err := svc.AddMake(ctx, "Ford")
	require.NoError(t, err)
	escape, err := svc.AddModel(ctx, ford.ID, "Escape")
	require.NoError(t, err)
	black, err := svc.AddColor(ctx, "Black")
	require.NoError(t, err)

	owner := &models.Owner{ID: uuid.New(), Email: "sbuschemi@comcast.org", PasswordHash: "x"}
	require.NoError(t, repo.db.Create(owner).Error)
	dealership := &models.Dealership{
		ID:              uuid.New(),
		Name:            "Rick's Loyal Car Emporium",
		YearEstablished: 1988,
		OwnerID:         owner.ID,
	}
	require.NoError(t, repo.db.Create(dealership).Error)
	car := &models.Car{
		ID:             uuid.New(),
		DealershipID:   dealership.ID,
		MakeID:         ford.ID,
		ModelID:        escape.ID,
		ColorID:        black.ID,
		Year:           2007,
		Mileage:        100005,
		ListPriceCents: 400000,
	}
	require.NoError(t, repo.db.Create(car).Error)

	assert.True(t, pkgerrors.HasCode(svc.RemoveMake(ctx, ford.ID), pkgerrors.CodeProtected))
	assert.True(t, pkgerrors.HasCode(svc.RemoveModel(ctx, escape.ID), pkgerrors.CodeProtected))
	assert.True(t, pkgerrors.HasCode(svc.RemoveColor(ctx, black.ID), pkgerrors.CodeProtected))

	require.NoError(t, repo.db.Delete(car).Error)

	require.NoError(t, svc.RemoveColor(ctx, black.ID))
	require.NoError(t, svc.RemoveModel(ctx, escape.ID))
	require.NoError(t, svc.RemoveMake(ctx, ford.ID))
}
