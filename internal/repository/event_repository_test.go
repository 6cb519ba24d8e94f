package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

var (
	eventInsertRe  = regexp.MustCompile(regexp.QuoteMeta("INSERT INTO events (title, description, location, event_time) VALUES (?,?,?,?)"))
	eventSelectRe  = regexp.MustCompile(regexp.QuoteMeta("SELECT id,title,description,location,event_time,created_at FROM events WHERE id=? LIMIT 1"))
	eventContentRe = regexp.MustCompile(regexp.QuoteMeta("SELECT id FROM events WHERE title=? AND description=? AND location=? AND event_time=? LIMIT 1"))
	eventUpdateRe  = regexp.MustCompile(regexp.QuoteMeta("UPDATE events SET title=?, description=?, location=?, event_time=? WHERE id=?"))
	eventDeleteRe  = regexp.MustCompile(regexp.QuoteMeta("DELETE FROM events WHERE id=?"))
)

var (
	testEventTime = time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)
	testCreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
)

func TestEventRepoCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns stored row", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(eventInsertRe.String()).
			WithArgs("Concert", "Live music", "Hall A", testEventTime).
			WillReturnResult(sqlmock.NewResult(5, 1))
		mock.ExpectQuery(eventSelectRe.String()).WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "location", "event_time", "created_at"}).
				AddRow(5, "Concert", "Live music", "Hall A", testEventTime, testCreatedAt))

		e, err := NewEventRepo(db).Create(ctx, "Concert", "Live music", "Hall A", testEventTime)
		require.NoError(t, err)
		require.Equal(t, uint64(5), e.ID)
		require.Equal(t, "Concert", e.Title)
		require.Equal(t, testEventTime, e.EventTime)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate tuple maps to ErrEventExists", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(eventInsertRe.String()).
			WillReturnError(duplicateKeyErr("events.uq_events_content"))

		_, err := NewEventRepo(db).Create(ctx, "Concert", "Live music", "Hall A", testEventTime)
		require.ErrorIs(t, err, ErrEventExists)
	})
}

func TestEventRepoExistsByContent(t *testing.T) {
	ctx := context.Background()

	t.Run("present tuple", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(eventContentRe.String()).
			WithArgs("Concert", "Live music", "Hall A", testEventTime).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

		ok, err := NewEventRepo(db).ExistsByContent(ctx, "Concert", "Live music", "Hall A", testEventTime)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("absent tuple", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(eventContentRe.String()).WillReturnError(sql.ErrNoRows)

		ok, err := NewEventRepo(db).ExistsByContent(ctx, "Concert", "Live music", "Hall A", testEventTime)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestEventRepoGetByID(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(eventSelectRe.String()).WithArgs(404).WillReturnError(sql.ErrNoRows)

	_, err := NewEventRepo(db).GetByID(context.Background(), 404)
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventRepoUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(eventUpdateRe.String()).
			WithArgs("Concert", "Live music", "Hall B", testEventTime, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewEventRepo(db).Update(ctx, 5, "Concert", "Live music", "Hall B", testEventTime)
		require.NoError(t, err)
	})

	t.Run("missing id maps to ErrEventNotFound", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(eventUpdateRe.String()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM events WHERE id=? LIMIT 1")).
			WithArgs(404).WillReturnError(sql.ErrNoRows)

		err := NewEventRepo(db).Update(ctx, 404, "Concert", "Live music", "Hall B", testEventTime)
		require.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("no-op update with identical values is not an error", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(eventUpdateRe.String()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM events WHERE id=? LIMIT 1")).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

		err := NewEventRepo(db).Update(ctx, 5, "Concert", "Live music", "Hall B", testEventTime)
		require.NoError(t, err)
	})

	t.Run("content collision maps to ErrEventExists", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(eventUpdateRe.String()).
			WillReturnError(duplicateKeyErr("events.uq_events_content"))

		err := NewEventRepo(db).Update(ctx, 5, "Concert", "Live music", "Hall B", testEventTime)
		require.ErrorIs(t, err, ErrEventExists)
	})
}

func TestEventRepoDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(eventDeleteRe.String()).WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewEventRepo(db).Delete(ctx, 5))
	})

	t.Run("missing id maps to ErrEventNotFound", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(eventDeleteRe.String()).WithArgs(404).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, NewEventRepo(db).Delete(ctx, 404), ErrEventNotFound)
	})

	t.Run("referenced event maps to ErrConflict", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(eventDeleteRe.String()).WithArgs(5).
			WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row: a foreign key constraint fails (fk_bookings_event)"})

		require.ErrorIs(t, NewEventRepo(db).Delete(ctx, 5), ErrConflict)
	})
}
