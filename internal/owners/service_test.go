package owners

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlot/dealership-backend/pkg/config"
	"github.com/openlot/dealership-backend/pkg/db/dbtest"
	"github.com/openlot/dealership-backend/pkg/db/models"
	pkgerrors "github.com/openlot/dealership-backend/pkg/errors"
	"github.com/openlot/dealership-backend/pkg/security"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)
	return svc, repo
}

func validInput() RegisterInput {
	return RegisterInput{
		Email:     "sbuschemi@comcast.org",
		FirstName: "Steve",
		LastName:  "Buschemi",
		Password:  "IWasGreatInTheIsland2005!",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	owner, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, owner.ID)
	assert.True(t, strings.HasPrefix(owner.PasswordHash, "$argon2id$"))

	ok, err := security.VerifyPassword("IWasGreatInTheIsland2005!", owner.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := repo.FindByEmail(ctx, "sbuschemi@comcast.org")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, stored.ID)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _ := newTestService(t)

	input := validInput()
	input.Email = "not-an-email"
	_, err := svc.Register(context.Background(), input)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	input = validInput()
	input.Password = "short"
	_, err = svc.Register(context.Background(), input)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validInput())
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))
}

func TestDeleteProtectedWhileDealershipExists(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	owner, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	dealership := &models.Dealership{
		ID:              uuid.New(),
		Name:            "Rick's Loyal Car Emporium",
		YearEstablished: 1988,
		OwnerID:         owner.ID,
	}
	require.NoError(t, repo.db.Create(dealership).Error)

	err = svc.Delete(ctx, owner.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeProtected))

	require.NoError(t, repo.db.Delete(dealership).Error)
	require.NoError(t, svc.Delete(ctx, owner.ID))

	_, err = svc.Get(ctx, owner.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}
