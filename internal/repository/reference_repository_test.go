package repository

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceRepositoryLoad(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReferenceRepository(db)

	mock.ExpectQuery("FROM subjects").WillReturnRows(sqlmock.NewRows([]string{"id", "name", "requires_lab"}).AddRow("S1", "Physics", true))
	mock.ExpectQuery("FROM faculty").WillReturnRows(sqlmock.NewRows([]string{"id", "name", "subject_id", "email"}).
		AddRow("F2", "Dr. Rao", "S1", "rao@example.edu").
		AddRow("F1", "Dr. Smith", "S1", "smith@example.edu"))
	mock.ExpectQuery("FROM batches").WillReturnRows(sqlmock.NewRows([]string{"id", "name", "size"}).AddRow("B1", "CS-2025", 60))
	mock.ExpectQuery("FROM classrooms").WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_lab", "capacity"}).AddRow("R1", "Room 101", false, 60))
	mock.ExpectQuery("FROM clubs").WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("C1", "Chess Club"))
	mock.ExpectQuery("FROM coordinators").WillReturnRows(sqlmock.NewRows([]string{"id", "name", "club_id", "email"}).AddRow("K1", "Asha", "C1", "asha@example.edu"))

	tables, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tables.Faculty, 2)
	assert.Equal(t, "F2", tables.Faculty[0].ID)
	assert.True(t, tables.Subjects[0].RequiresLab)
	assert.Equal(t, "C1", tables.Coordinators[0].ClubID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceRepositoryLoadError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReferenceRepository(db)

	mock.ExpectQuery("FROM subjects").WillReturnError(errors.New("relation does not exist"))

	_, err := repo.Load(context.Background())
	assert.ErrorContains(t, err, "load subjects")
}
