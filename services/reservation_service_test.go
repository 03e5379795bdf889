package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"seapass-backend/models"
	"seapass-backend/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func copacabana(userID int64) models.CreateReservationRequest {
	return models.CreateReservationRequest{
		Hotel:       "Copacabana Palace",
		RoomType:    "Suite",
		CheckIn:     "2024-06-01",
		CheckOut:    "2024-06-05",
		Guests:      &models.GuestCount{Adults: 2, Children: 1},
		TotalAmount: 1500.50,
		UserID:      userID,
	}
}

func TestCreateReservation_InvalidNeverOpensTransaction(t *testing.T) {
	m := new(storetest.MockStore)
	svc := NewReservationService(m)

	_, err := svc.CreateReservation(context.Background(), models.CreateReservationRequest{Hotel: "X"})

	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
	assert.Equal(t, models.MsgMissingReservationFields, err.Error())
	m.AssertNotCalled(t, "InTx", mock.Anything)
	m.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
}

func TestCreateUser_InvalidNeverOpensTransaction(t *testing.T) {
	m := new(storetest.MockStore)
	svc := NewReservationService(m)

	_, err := svc.CreateUser(context.Background(), models.CreateUserRequest{Name: "Ana"})

	assert.True(t, models.IsValidation(err))
	m.AssertNotCalled(t, "InTx", mock.Anything)
}

func TestCreateReservation_DelegatesInsideTransaction(t *testing.T) {
	ctx := context.Background()
	req := copacabana(1)

	m := new(storetest.MockStore)
	m.On("InTx", ctx).Return(nil).Once()
	m.On("CreateReservation", ctx, req).Return(uint(42), nil).Once()

	id, err := NewReservationService(m).CreateReservation(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	m.AssertExpectations(t)
}

func TestCreateReservation_BeginFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	connErr := &models.ConnectionError{Op: "begin", Err: errors.New("connection refused")}

	m := new(storetest.MockStore)
	m.On("InTx", ctx).Return(connErr).Once()

	_, err := NewReservationService(m).CreateReservation(ctx, copacabana(1))

	assert.True(t, models.IsConnection(err))
	m.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
}

func TestCreateReservation_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := storetest.NewMemoryStore()
	svc := NewReservationService(mem)

	userID, err := svc.CreateUser(ctx, models.CreateUserRequest{Name: "Ana", Email: "ana@x.com", Password: "abc"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), userID)

	seen := map[uint]bool{}
	for i := 0; i < 3; i++ {
		id, err := svc.CreateReservation(ctx, copacabana(int64(userID)))
		require.NoError(t, err)
		assert.False(t, seen[id], "id %d reused", id)
		seen[id] = true
	}

	list, err := svc.ListReservations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	got := list[0]
	assert.Equal(t, uint(1), got.ID)
	assert.Equal(t, "Copacabana Palace", got.Hotel)
	assert.Equal(t, "Suite", got.RoomType)
	assert.Equal(t, "2024-06-01", got.CheckIn)
	assert.Equal(t, "2024-06-05", got.CheckOut)
	assert.Equal(t, models.GuestCount{Adults: 2, Children: 1}, got.Guests)
	assert.Equal(t, "1500.5", got.TotalAmount)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, models.GuestInfo{Name: "Ana", Email: "ana@x.com"}, got.GuestInfo)
	assert.Equal(t, 4, mem.Commits)
}

func TestCreateReservation_UnknownUserRollsBack(t *testing.T) {
	ctx := context.Background()
	mem := storetest.NewMemoryStore()
	svc := NewReservationService(mem)

	_, err := svc.CreateReservation(ctx, copacabana(77))

	require.Error(t, err)
	assert.True(t, models.IsQuery(err))
	assert.Contains(t, err.Error(), "foreign key")
	assert.Equal(t, 1, mem.Rollbacks)
	assert.Equal(t, 0, mem.ReservationCount())
}

func TestCreateReservation_FailureIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem := storetest.NewMemoryStore()
	svc := NewReservationService(mem)

	userID, err := svc.CreateUser(ctx, models.CreateUserRequest{Name: "Ana", Email: "ana@x.com", Password: "abc"})
	require.NoError(t, err)
	_, err = svc.CreateReservation(ctx, copacabana(int64(userID)))
	require.NoError(t, err)

	for _, bad := range []models.CreateReservationRequest{
		{Hotel: "X"},
		{RoomType: "Suite", CheckIn: "2024-06-01", CheckOut: "2024-06-02", UserID: int64(userID)},
		{Hotel: "X", RoomType: "Suite", CheckOut: "2024-06-02", UserID: int64(userID)},
		{Hotel: "X", RoomType: "Suite", CheckIn: "2024-06-01", UserID: int64(userID)},
		{Hotel: "X", RoomType: "Suite", CheckIn: "2024-06-01", CheckOut: "2024-06-02"},
	} {
		_, err := svc.CreateReservation(ctx, bad)
		assert.True(t, models.IsValidation(err))
	}
	assert.Equal(t, 1, mem.ReservationCount())
	assert.Equal(t, 0, mem.Rollbacks)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewReservationService(storetest.NewMemoryStore())

	req := models.CreateUserRequest{Name: "Ana", Email: "ana@x.com", Password: "abc"}
	_, err := svc.CreateUser(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, req)
	assert.True(t, models.IsQuery(err))
}

func TestListReservations_StoreErrorPassesThrough(t *testing.T) {
	ctx := context.Background()
	mem := storetest.NewMemoryStore()
	mem.Down = true

	_, err := NewReservationService(mem).ListReservations(ctx)
	assert.True(t, models.IsConnection(err))
}

func TestListReservations_OrphanIsQueryError(t *testing.T) {
	mem := storetest.NewMemoryStore()
	mem.AddOrphanReservation(9)

	_, err := NewReservationService(mem).ListReservations(context.Background())
	assert.True(t, models.IsQuery(err))
}

func TestShapeReservation(t *testing.T) {
	name, email := "Ana", "ana@x.com"
	row := models.ReservationRow{
		ID:        3,
		Hotel:     "Fasano",
		RoomType:  "Standard",
		CheckIn:   time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC),
		Total:     200,
		Status:    "Pendente",
		UserName:  &name,
		UserEmail: &email,
	}

	got := ShapeReservation(row)
	assert.Equal(t, "2024-07-01", got.CheckIn)
	assert.Equal(t, "2024-07-03", got.CheckOut)
	assert.Equal(t, models.GuestCount{}, got.Guests)
	assert.Equal(t, "200", got.TotalAmount)
	assert.Equal(t, "Ana", got.GuestInfo.Name)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1500.5", FormatAmount(1500.50))
	assert.Equal(t, "0.1", FormatAmount(0.1))
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "99.99", FormatAmount(99.99))
}

func TestHealth(t *testing.T) {
	mem := storetest.NewMemoryStore()
	svc := NewReservationService(mem)
	assert.NoError(t, svc.Health(context.Background()))

	mem.Down = true
	assert.True(t, models.IsConnection(svc.Health(context.Background())))
}
