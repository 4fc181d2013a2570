package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"carewatch/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTodosRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresTodosRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return db, mock, NewPostgresTodosRepository(db)
}

func TestInsertTodo_Success(t *testing.T) {
	db, mock, repo := setupTodosRepo(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO todos`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.InsertTodo(context.Background(), time.Now(), &domain.TodoItem{
		TodoID:    "todo-1",
		Title:     "Medication round",
		CreatedAt: time.Now(),
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTodo_NotFound(t *testing.T) {
	db, mock, repo := setupTodosRepo(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE todos`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateTodo(context.Background(), &domain.TodoItem{
		TodoID: "missing",
		Title:  "x",
	})

	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTodo_Success(t *testing.T) {
	db, mock, repo := setupTodosRepo(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM todos`).
		WithArgs("todo-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteTodo(context.Background(), "todo-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTodo_NotFound(t *testing.T) {
	db, mock, repo := setupTodosRepo(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM todos`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteTodo(context.Background(), "missing")

	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTodos(t *testing.T) {
	db, mock, repo := setupTodosRepo(t)
	defer db.Close()

	shiftDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"todo_id", "title", "completed", "assignee", "due_at", "created_at",
	}).
		AddRow("todo-1", "Medication round", true, "nurse-kim", nil, shiftDate.Add(8*time.Hour)).
		AddRow("todo-2", "Vitals check", false, "", nil, shiftDate.Add(9*time.Hour))

	mock.ExpectQuery(`SELECT`).
		WithArgs(shiftDate).
		WillReturnRows(rows)

	todos, err := repo.ListTodos(context.Background(), shiftDate)

	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "Medication round", todos[0].Title)
	assert.True(t, todos[0].Completed)
	assert.Equal(t, "nurse-kim", todos[0].Assignee)
	assert.Nil(t, todos[0].DueAt)

	require.NoError(t, mock.ExpectationsWereMet())
}
