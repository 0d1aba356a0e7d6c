package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
)

func userRows(active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "school_id", "active", "created_at", "updated_at"}).
		AddRow("u1", "alice", "alice@example.com", "hash", "school_admin", "school-1", active, time.Now(), time.Now())
}

func TestUserRepositoryFindByEmailIncludesInactive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	// No active filter here; the login path reports deactivation itself.
	mock.ExpectQuery("FROM users WHERE email = \\$1 LIMIT 1").
		WithArgs("alice@example.com").
		WillReturnRows(userRows(false))

	user, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, user.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindProfile(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "school_id", "active", "created_at", "updated_at", "school_name"}).
		AddRow("u1", "alice", "alice@example.com", "hash", "school_admin", "school-1", true, time.Now(), time.Now(), "North High")
	mock.ExpectQuery("FROM users u\\s+LEFT JOIN schools s ON s.id = u.school_id\\s+WHERE u.id = \\$1 AND u.active = true").
		WithArgs("u1").
		WillReturnRows(rows)

	profile, err := repo.FindProfile(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, profile.SchoolName)
	assert.Equal(t, "North High", *profile.SchoolName)
}

func TestUserRepositoryExistsByUsernameOrEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT 1 FROM users WHERE \\(username = \\$1 OR email = \\$2\\) AND active = true LIMIT 1").
		WithArgs("alice", "alice@example.com").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.ExistsByUsernameOrEmail(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	schoolID := "school-1"
	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "alice", "alice@example.com", "hash", "school_admin", schoolID, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Role: models.RoleSchoolAdmin, SchoolID: &schoolID}
	err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
