package repository

import (
	"context"
	"database/sql"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func duplicateKeyErr(key string) error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-2' for key '" + key + "'"}
}

var (
	bookingInsertRe = regexp.MustCompile(regexp.QuoteMeta("INSERT INTO bookings (user_id, event_id) VALUES (?,?)"))
	bookingIDRe     = regexp.MustCompile(regexp.QuoteMeta("SELECT id FROM bookings WHERE user_id=? AND event_id=? LIMIT 1"))
	bookingJoinRe   = regexp.MustCompile(regexp.QuoteMeta("FROM bookings b JOIN events e ON e.id=b.event_id WHERE b.user_id=?"))
)

func TestBookingRepoCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns new id", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(bookingInsertRe.String()).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(10, 1))

		id, err := NewBookingRepo(db).Create(ctx, 1, 2)
		require.NoError(t, err)
		require.Equal(t, uint64(10), id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate pair maps to ErrBookingExists", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(bookingInsertRe.String()).
			WithArgs(1, 2).
			WillReturnError(duplicateKeyErr("bookings.uq_bookings_user_event"))

		_, err := NewBookingRepo(db).Create(ctx, 1, 2)
		require.ErrorIs(t, err, ErrBookingExists)
	})

	t.Run("unknown event maps to ErrEventNotFound", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(bookingInsertRe.String()).
			WithArgs(1, 999).
			WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row: a foreign key constraint fails (fk_bookings_event)"})

		_, err := NewBookingRepo(db).Create(ctx, 1, 999)
		require.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("driver error passes through", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(bookingInsertRe.String()).
			WillReturnError(sql.ErrConnDone)

		_, err := NewBookingRepo(db).Create(ctx, 1, 2)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrBookingExists)
	})
}

// The uniqueness invariant lives in the unique key, so a burst of
// concurrent creations for one (user, event) pair must yield exactly
// one success with every loser seeing ErrBookingExists.
func TestBookingRepoCreateConcurrent(t *testing.T) {
	const n = 8
	db, mock := newMock(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectExec(bookingInsertRe.String()).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(10, 1))
	for i := 0; i < n-1; i++ {
		mock.ExpectExec(bookingInsertRe.String()).
			WithArgs(1, 2).
			WillReturnError(duplicateKeyErr("bookings.uq_bookings_user_event"))
	}

	repo := NewBookingRepo(db)
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), 1, 2)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, dup int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case err == ErrBookingExists:
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, n-1, dup)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepoGetByUserAndEvent(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found returns joined view", func(t *testing.T) {
		db, mock := newMock(t)
		rows := sqlmock.NewRows([]string{"b.id", "e.id", "e.title", "e.description", "e.location", "e.event_time", "e.created_at"}).
			AddRow(10, 2, "Concert", "Live music", "Hall A", when, created)
		mock.ExpectQuery(bookingJoinRe.String()).WithArgs(1, 2).WillReturnRows(rows)

		bw, err := NewBookingRepo(db).GetByUserAndEvent(ctx, 1, 2)
		require.NoError(t, err)
		require.Equal(t, uint64(10), bw.BookingID)
		require.Equal(t, uint64(2), bw.Event.ID)
		require.Equal(t, "Concert", bw.Event.Title)
		require.Equal(t, when, bw.Event.EventTime)
	})

	t.Run("absent pair maps to ErrBookingNotFound", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(bookingJoinRe.String()).WithArgs(1, 2).WillReturnError(sql.ErrNoRows)

		_, err := NewBookingRepo(db).GetByUserAndEvent(ctx, 1, 2)
		require.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestBookingRepoListByUser(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock := newMock(t)
	rows := sqlmock.NewRows([]string{"b.id", "e.id", "e.title", "e.description", "e.location", "e.event_time", "e.created_at"}).
		AddRow(10, 2, "Concert", "Live music", "Hall A", when, when).
		AddRow(11, 3, "Workshop", "Pottery", "Studio B", when, when)
	mock.ExpectQuery(bookingJoinRe.String()).WithArgs(1).WillReturnRows(rows)

	list, err := NewBookingRepo(db).ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, uint64(10), list[0].BookingID)
	require.Equal(t, "Workshop", list[1].Event.Title)
}

func TestBookingRepoListByUserEmpty(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(bookingJoinRe.String()).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"b.id", "e.id", "e.title", "e.description", "e.location", "e.event_time", "e.created_at"}))

	list, err := NewBookingRepo(db).ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestBookingRepoDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and returns freed id", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(bookingIDRe.String()).WithArgs(1, 2).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id=? AND user_id=?")).
			WithArgs(10, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		id, err := NewBookingRepo(db).Delete(ctx, 1, 2)
		require.NoError(t, err)
		require.Equal(t, uint64(10), id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent pair maps to ErrBookingNotFound", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(bookingIDRe.String()).WithArgs(1, 2).WillReturnError(sql.ErrNoRows)

		_, err := NewBookingRepo(db).Delete(ctx, 1, 2)
		require.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("losing a delete race maps to ErrBookingNotFound", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(bookingIDRe.String()).WithArgs(1, 2).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id=? AND user_id=?")).
			WithArgs(10, 1).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := NewBookingRepo(db).Delete(ctx, 1, 2)
		require.ErrorIs(t, err, ErrBookingNotFound)
	})
}
