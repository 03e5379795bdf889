package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"seapass-backend/config"
	"seapass-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore connects to the database named by TEST_DATABASE_URL
// (TEST_DB_DRIVER selects mysql or postgres) and empties the booking tables.
// The test is skipped when no database is configured.
func newTestStore(t *testing.T) *GormStore {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping store integration test")
	}
	driver := os.Getenv("TEST_DB_DRIVER")
	if driver == "" {
		driver = config.DriverMySQL
	}

	db, err := config.ConnectDatabase(context.Background(), config.DBConfig{
		Driver:          driver,
		URL:             url,
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnectTimeout:  5 * time.Second,
		AutoMigrate:     true,
		Seed:            true,
		LogLevel:        "silent",
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec("DELETE FROM reserva").Error)
	require.NoError(t, db.Exec("DELETE FROM usuario").Error)

	s, err := New(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return s
}

func createUser(t *testing.T, s *GormStore, email string) uint {
	t.Helper()
	id, err := s.CreateUser(context.Background(), models.CreateUserRequest{
		Name: "Ana", Email: email, Password: "abc",
	})
	require.NoError(t, err)
	return id
}

func TestGormStore_ReservationRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s, "ana@x.com")

	req := models.CreateReservationRequest{
		Hotel:       "Copacabana Palace",
		RoomType:    "Suite",
		CheckIn:     "2024-06-01",
		CheckOut:    "2024-06-05",
		Guests:      &models.GuestCount{Adults: 2, Children: 1},
		TotalAmount: 1500.50,
		UserID:      int64(userID),
	}

	var id uint
	err := s.InTx(ctx, func(tx Store) error {
		var err error
		id, err = tx.CreateReservation(ctx, req)
		return err
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	rows, err := s.ListReservations(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	got := rows[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Copacabana Palace", got.Hotel)
	assert.Equal(t, "Suite", got.RoomType)
	assert.Equal(t, "2024-06-01", got.CheckIn.Format(models.DateLayout))
	assert.Equal(t, "2024-06-05", got.CheckOut.Format(models.DateLayout))
	assert.Equal(t, 2, got.Adults)
	assert.Equal(t, 1, got.Children)
	assert.InDelta(t, 1500.50, got.Total, 0.001)
	assert.Equal(t, models.StatusPending, got.Status)
	require.NotNil(t, got.UserName)
	assert.Equal(t, "Ana", *got.UserName)
	assert.Equal(t, "ana@x.com", *got.UserEmail)

	second, err := s.CreateReservation(ctx, req)
	require.NoError(t, err)
	assert.Greater(t, second, id)
}

func TestGormStore_ForeignKeyViolationRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.InTx(ctx, func(tx Store) error {
		_, err := tx.CreateReservation(ctx, models.CreateReservationRequest{
			Hotel: "X", RoomType: "Y", CheckIn: "2024-06-01", CheckOut: "2024-06-02", UserID: 999999,
		})
		return err
	})
	require.Error(t, err)
	assert.True(t, models.IsQuery(err))

	rows, err := s.ListReservations(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGormStore_InvalidInputTouchesNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateReservation(ctx, models.CreateReservationRequest{Hotel: "X"})
	assert.True(t, models.IsValidation(err))

	rows, err := s.ListReservations(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGormStore_GuestsDefaultToZero(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s, "bia@x.com")

	_, err := s.CreateReservation(ctx, models.CreateReservationRequest{
		Hotel: "Fasano", RoomType: "Standard", CheckIn: "2024-07-01", CheckOut: "2024-07-03", UserID: int64(userID),
	})
	require.NoError(t, err)

	rows, err := s.ListReservations(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Adults)
	assert.Equal(t, 0, rows[0].Children)
}

func TestGormStore_Users(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := createUser(t, s, "ana@x.com")
	second := createUser(t, s, "caio@x.com")
	assert.Greater(t, second, first)

	_, err := s.CreateUser(ctx, models.CreateUserRequest{Name: "Ana 2", Email: "ana@x.com", Password: "x"})
	assert.True(t, models.IsQuery(err), "duplicate email must be a query error, got %v", err)

	passengers, err := s.ListPassengers(ctx)
	require.NoError(t, err)
	require.Len(t, passengers, 2)
	assert.Equal(t, first, passengers[0].ID)
	assert.Equal(t, second, passengers[1].ID)
}

func TestGormStore_HotelsSeededAndPing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	hotels, err := s.ListHotels(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, hotels)
}

func TestGormStore_ReadsInsideTransactionSeeItsWrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s, "dan@x.com")

	rollback := errors.New("rollback")
	err := s.InTx(ctx, func(tx Store) error {
		_, err := tx.CreateReservation(ctx, models.CreateReservationRequest{
			Hotel: "Fasano", RoomType: "Standard", CheckIn: "2024-07-01", CheckOut: "2024-07-03", UserID: int64(userID),
		})
		require.NoError(t, err)

		rows, err := tx.ListReservations(ctx)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		return rollback
	})
	require.Error(t, err)

	rows, err := s.ListReservations(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
