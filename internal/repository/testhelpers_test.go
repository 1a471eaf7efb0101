//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/spycat-agency/service-mission/internal/common/config"
	"github.com/spycat-agency/service-mission/internal/common/database"
	catDomain "github.com/spycat-agency/service-mission/internal/domain/cat"
	missionDomain "github.com/spycat-agency/service-mission/internal/domain/mission"
	"github.com/spycat-agency/service-mission/internal/repository"
	"github.com/spycat-agency/service-mission/internal/schema"
)

// setupDB starts a PostgreSQL container, applies the schema and returns a
// connected pool. The container is terminated when the test ends.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "spycats",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Host:        host,
		Port:        port.Port(),
		User:        "test",
		Password:    "test",
		DBName:      "spycats",
		AdminDBName: "postgres",
		SSLMode:     "disable",
	}

	log := zap.NewNop()
	var db *gorm.DB
	require.Eventually(t, func() bool {
		db, err = database.Connect(cfg, log)
		return err == nil
	}, 30*time.Second, time.Second, "PostgreSQL not ready for connections")
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, schema.EnsureSchema(cfg, log))
	return db
}

func seedCat(t *testing.T, repo *repository.GormCatRepository, name string) *catDomain.Cat {
	t.Helper()
	c, err := catDomain.NewCat(name, 5, "Siamese", 700)
	require.NoError(t, err)
	saved, err := repo.Create(context.Background(), c)
	require.NoError(t, err)
	return saved
}

func seedMission(t *testing.T, repo *repository.GormMissionRepository, cat *int64, targets int) *missionDomain.Mission {
	t.Helper()
	list := make([]*missionDomain.Target, targets)
	for i := range list {
		target, err := missionDomain.NewTarget("Target", "Norway", missionDomain.StatusPending)
		require.NoError(t, err)
		list[i] = target
	}
	m, err := missionDomain.NewMission(cat, missionDomain.StatusPending, "Operation Fjord", list)
	require.NoError(t, err)

	id, err := repo.Create(context.Background(), m)
	require.NoError(t, err)
	stored, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return stored
}
