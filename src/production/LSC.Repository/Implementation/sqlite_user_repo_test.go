package implementation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
	interfaces "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Repository/Interfaces"
)

func TestSQLiteUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteUserRepository(newTestDB(t), time.Second)

	_, err := repo.GetByEmail(ctx, "jane@example.com")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	created, err := repo.Create(ctx, lscmodels.NewUser("Jane Doe", "Jane@Example.com", "+1 555 0100", "hash"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.UserID)
	assert.Equal(t, "jane@example.com", created.Email)

	found, err := repo.GetByEmail(ctx, " JANE@example.COM ")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, found.UserID)
	assert.Equal(t, "hash", found.PasswordHash)

	_, err = repo.Create(ctx, lscmodels.NewUser("Other", "jane@example.com", "+1 2", "hash2"))
	assert.ErrorIs(t, err, interfaces.ErrDuplicate)
}
