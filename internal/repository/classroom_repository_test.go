package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
)

func classroomRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "school_id", "capacity", "resources", "active", "created_at", "updated_at", "school_name"}).
		AddRow("class-1", "Room A", "school-1", 30, pq.StringArray{"projector"}, true, time.Now(), time.Now(), "North High")
}

func TestClassroomRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectQuery("FROM classrooms c\\s+JOIN schools s ON s.id = c.school_id\\s+WHERE c.id = \\$1 AND c.active = true").
		WithArgs("class-1").
		WillReturnRows(classroomRows())

	detail, err := repo.FindByID(context.Background(), "class-1")
	require.NoError(t, err)
	assert.Equal(t, "Room A", detail.Name)
	assert.Equal(t, "North High", detail.SchoolName)
	assert.Equal(t, pq.StringArray{"projector"}, detail.Resources)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryListFiltersBySchool(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectQuery("WHERE c.active = true AND c.school_id = \\$1 ORDER BY c.created_at DESC").
		WithArgs("school-1").
		WillReturnRows(classroomRows())

	classrooms, err := repo.List(context.Background(), models.ClassroomFilter{SchoolID: "school-1"})
	require.NoError(t, err)
	assert.Len(t, classrooms, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryCountBySchool(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM classrooms WHERE school_id = \\$1 AND active = true").
		WithArgs("school-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountBySchool(context.Background(), "school-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestClassroomRepositoryCreateDefaultsResources(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectExec("INSERT INTO classrooms").
		WithArgs(sqlmock.AnyArg(), "Room A", "school-1", 30, sqlmock.AnyArg(), true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	classroom := &models.Classroom{Name: "Room A", SchoolID: "school-1", Capacity: 30}
	err := repo.Create(context.Background(), classroom)
	require.NoError(t, err)
	assert.NotNil(t, classroom.Resources, "resources default to an empty array")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryExistsByNameInSchool(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectQuery("SELECT 1 FROM classrooms WHERE name = \\$1 AND school_id = \\$2 AND active = true LIMIT 1").
		WithArgs("Room A", "school-1").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.ExistsByNameInSchool(context.Background(), "Room A", "school-1", "")
	require.NoError(t, err)
	assert.False(t, exists)
}
