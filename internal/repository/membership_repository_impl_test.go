package repository

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnst/self-enrollment/internal/model"
)

// setupPostgres connects to DATABASE_URL and loads db/schema.sql into a
// throwaway schema that is dropped when the test ends.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(admin.Close)

	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
	})

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	ddl, err := os.ReadFile("../../db/schema.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(ddl))
	require.NoError(t, err)

	return pool
}

func insertCourse(t *testing.T, pool *pgxpool.Pool, slug string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO courses (id, slug, title, start_at, end_at) VALUES ($1, $2, $3, $4, $5)`,
		id, slug, slug, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)

	return id
}

func TestMembershipRepositoryCreateIfAbsent(t *testing.T) {
	pool := setupPostgres(t)
	repo := NewMembershipRepositoryImpl(pool)
	ctx := context.Background()
	courseID := insertCourse(t, pool, "bio_101")
	userID := uuid.New()
	params := &model.CreateMembershipParams{CourseID: courseID, UserID: userID, Role: model.RoleStudent}

	exists, err := repo.Exists(ctx, courseID, userID)
	require.NoError(t, err)
	assert.False(t, exists)

	m, created, err := repo.CreateIfAbsent(ctx, params)
	require.NoError(t, err)
	require.True(t, created)
	assert.Equal(t, courseID, m.CourseID)
	assert.Equal(t, userID, m.UserID)
	assert.Equal(t, model.RoleStudent, m.Role)

	m, created, err = repo.CreateIfAbsent(ctx, params)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, m)

	exists, err = repo.Exists(ctx, courseID, userID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMembershipRepositoryCreateIfAbsentConcurrent(t *testing.T) {
	pool := setupPostgres(t)
	repo := NewMembershipRepositoryImpl(pool)
	courseID := insertCourse(t, pool, "bio_101")
	userID := uuid.New()

	const attempts = 20

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		errs    []error
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, ok, err := repo.CreateIfAbsent(context.Background(), &model.CreateMembershipParams{
				CourseID: courseID,
				UserID:   userID,
				Role:     model.RoleStudent,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			}
			if ok {
				created++
			}
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Equal(t, 1, created)

	var rows int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT count(*) FROM courses_users WHERE course_id = $1 AND user_id = $2`, courseID, userID).Scan(&rows))
	assert.Equal(t, 1, rows)
}
