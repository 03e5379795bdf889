// Package storetest provides store.Store doubles for service and handler tests:
// a testify mock for interaction checks and an in-memory store for round trips.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"seapass-backend/models"
	"seapass-backend/store"

	"github.com/stretchr/testify/mock"
)

// MockStore mocks the reservation store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListPassengers(ctx context.Context) ([]models.Passenger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Passenger), args.Error(1)
}

func (m *MockStore) ListReservations(ctx context.Context) ([]models.ReservationRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReservationRow), args.Error(1)
}

func (m *MockStore) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Hotel), args.Error(1)
}

func (m *MockStore) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (uint, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockStore) CreateUser(ctx context.Context, req models.CreateUserRequest) (uint, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uint), args.Error(1)
}

// InTx fails with the configured error, or runs fn against the mock itself.
func (m *MockStore) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MemoryStore is an in-memory store.Store enforcing the same foreign key
// and unique email constraints as the real schema. Writes made inside
// InTx become visible only when fn succeeds.
type MemoryStore struct {
	mu sync.Mutex

	users        []models.User
	hotels       []models.Hotel
	reservations []models.Reservation
	nextUser     uint
	nextRes      uint

	// Down makes every call fail with a ConnectionError.
	Down bool

	Commits   int
	Rollbacks int
}

var _ store.Store = (*MemoryStore)(nil)

func NewMemoryStore(hotels ...models.Hotel) *MemoryStore {
	return &MemoryStore{hotels: hotels}
}

var errUnreachable = errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")

func (m *MemoryStore) down(op string) error {
	if m.Down {
		return &models.ConnectionError{Op: op, Err: errUnreachable}
	}
	return nil
}

func (m *MemoryStore) ListPassengers(ctx context.Context) ([]models.Passenger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.down("list passengers"); err != nil {
		return nil, err
	}

	out := make([]models.Passenger, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, models.Passenger{ID: u.ID, Name: u.Name})
	}
	return out, nil
}

func (m *MemoryStore) ListReservations(ctx context.Context) ([]models.ReservationRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.down("list reservations"); err != nil {
		return nil, err
	}

	out := make([]models.ReservationRow, 0, len(m.reservations))
	for _, r := range m.reservations {
		u, ok := m.user(r.UserID)
		if !ok {
			return nil, &models.QueryError{
				Op:  "list reservations",
				Err: fmt.Errorf("reserva %d referencia usuario inexistente (usuario_id=%d)", r.ID, r.UserID),
			}
		}
		name, email := u.Name, u.Email
		out = append(out, models.ReservationRow{
			ID:        r.ID,
			Hotel:     r.Hotel,
			RoomType:  r.RoomType,
			CheckIn:   r.CheckInTime(),
			CheckOut:  r.CheckOutTime(),
			Adults:    r.Adults,
			Children:  r.Children,
			Total:     r.Total,
			Status:    r.Status,
			UserID:    r.UserID,
			UserName:  &name,
			UserEmail: &email,
		})
	}
	return out, nil
}

func (m *MemoryStore) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.down("list hotels"); err != nil {
		return nil, err
	}
	return append([]models.Hotel{}, m.hotels...), nil
}

func (m *MemoryStore) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.down("create reservation"); err != nil {
		return 0, err
	}

	r, err := req.ToModel()
	if err != nil {
		return 0, err
	}
	if _, ok := m.user(r.UserID); !ok {
		return 0, &models.QueryError{
			Op:  "create reservation",
			Err: errors.New(`insert or update on table "reserva" violates foreign key constraint "fk_reserva_user"`),
		}
	}
	if r.HotelID != nil && !m.hasHotel(*r.HotelID) {
		return 0, &models.QueryError{
			Op:  "create reservation",
			Err: errors.New(`insert or update on table "reserva" violates foreign key constraint "fk_reserva_hotel_info"`),
		}
	}

	m.nextRes++
	r.ID = m.nextRes
	r.CreatedAt = time.Now()
	m.reservations = append(m.reservations, r)
	return r.ID, nil
}

func (m *MemoryStore) CreateUser(ctx context.Context, req models.CreateUserRequest) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.down("create user"); err != nil {
		return 0, err
	}
	if err := req.Validate(); err != nil {
		return 0, err
	}
	for _, u := range m.users {
		if u.Email == req.Email {
			return 0, &models.QueryError{
				Op:  "create user",
				Err: errors.New(`duplicate key value violates unique constraint "idx_usuario_email"`),
			}
		}
	}

	m.nextUser++
	m.users = append(m.users, models.User{
		ID:       m.nextUser,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	return m.nextUser, nil
}

func (m *MemoryStore) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.down("begin"); err != nil {
		return err
	}

	tx := &MemoryStore{
		users:        append([]models.User{}, m.users...),
		hotels:       append([]models.Hotel{}, m.hotels...),
		reservations: append([]models.Reservation{}, m.reservations...),
		nextUser:     m.nextUser,
		nextRes:      m.nextRes,
	}
	if err := fn(tx); err != nil {
		m.Rollbacks++
		return err
	}

	m.users, m.reservations = tx.users, tx.reservations
	m.nextUser, m.nextRes = tx.nextUser, tx.nextRes
	m.Commits++
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.down("ping")
}

// ReservationCount reads the committed row count.
func (m *MemoryStore) ReservationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reservations)
}

// AddOrphanReservation inserts a row whose owner does not exist, as a
// database without the foreign key would allow.
func (m *MemoryStore) AddOrphanReservation(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRes++
	m.reservations = append(m.reservations, models.Reservation{ID: m.nextRes, UserID: userID, Hotel: "X", RoomType: "Y"})
}

func (m *MemoryStore) user(id uint) (models.User, bool) {
	for _, u := range m.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (m *MemoryStore) hasHotel(id uint) bool {
	for _, h := range m.hotels {
		if h.ID == id {
			return true
		}
	}
	return false
}
