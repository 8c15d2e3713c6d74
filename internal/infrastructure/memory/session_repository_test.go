package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/infrastructure/memory"
)

func TestSessionRepo_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository()
	s := &entity.Session{ID: "s1", CompanyID: "c1", UserID: "u1", UserName: "Ana", Role: entity.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, repo.Save(ctx, s))
	s.UserName = "mutado"

	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.UserName, "se guarda una copia")

	require.NoError(t, repo.Delete(ctx, "s1"))
	got, err = repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepo_VencidaNoSeCarga(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository()
	require.NoError(t, repo.Save(ctx, &entity.Session{ID: "s1", ExpiresAt: time.Now().Add(-time.Second)}))

	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, repo.Len(), "la sesión vencida se descarta")
}
