// Package store is the reservation persistence layer. Writes and simple
// reads go through GORM; the joined reservation listing goes through sqlx.
// Both share the same *sql.DB pool.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"seapass-backend/models"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is what the service layer needs from persistence.
type Store interface {
	ListPassengers(ctx context.Context) ([]models.Passenger, error)
	ListReservations(ctx context.Context) ([]models.ReservationRow, error)
	ListHotels(ctx context.Context) ([]models.Hotel, error)
	CreateReservation(ctx context.Context, req models.CreateReservationRequest) (uint, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) (uint, error)

	// InTx runs fn against a store bound to one transaction; reads and
	// writes made through tx share it. The transaction commits when fn
	// returns nil and rolls back otherwise, including on panic.
	InTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

type GormStore struct {
	db  *gorm.DB
	rdb *sqlx.DB
}

func New(db *gorm.DB) (*GormStore, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: raw sql.DB: %w", err)
	}
	return &GormStore{
		db:  db,
		rdb: sqlx.NewDb(sqlDB, db.Dialector.Name()),
	}, nil
}

func (s *GormStore) ListPassengers(ctx context.Context) ([]models.Passenger, error) {
	passengers := []models.Passenger{}
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id", "nome").
		Order("id").
		Scan(&passengers).Error
	if err != nil {
		return nil, classify("list passengers", err)
	}
	return passengers, nil
}

const listReservationsQuery = `
SELECT r.id, r.hotel, r.tipo_quarto, r.checkin, r.checkout,
       COALESCE(r.adultos, 0)  AS adultos,
       COALESCE(r.criancas, 0) AS criancas,
       COALESCE(r.total, 0)    AS total,
       COALESCE(r.status, '')  AS status,
       r.usuario_id,
       u.nome  AS usuario_nome,
       u.email AS usuario_email
FROM reserva r
LEFT JOIN usuario u ON u.id = r.usuario_id
ORDER BY r.id`

// ListReservations runs on the connection GORM holds, so inside InTx it
// reads through the transaction; sqlx maps the rows by their db tags.
func (s *GormStore) ListReservations(ctx context.Context) ([]models.ReservationRow, error) {
	cur, err := s.db.WithContext(ctx).Raw(listReservationsQuery).Rows()
	if err != nil {
		return nil, classify("list reservations", err)
	}
	defer cur.Close()

	rows := []models.ReservationRow{}
	if err := sqlx.StructScan(cur, &rows); err != nil {
		return nil, classify("list reservations", err)
	}

	for _, r := range rows {
		if r.UserName == nil || r.UserEmail == nil {
			return nil, &models.QueryError{
				Op:  "list reservations",
				Err: fmt.Errorf("reserva %d referencia usuario inexistente (usuario_id=%d)", r.ID, r.UserID),
			}
		}
	}
	return rows, nil
}

func (s *GormStore) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	hotels := []models.Hotel{}
	if err := s.db.WithContext(ctx).Order("id").Find(&hotels).Error; err != nil {
		return nil, classify("list hotels", err)
	}
	return hotels, nil
}

// CreateReservation inserts one row. The generated id comes back with the
// INSERT itself (RETURNING on postgres, the OK packet's insert id on mysql).
func (s *GormStore) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (uint, error) {
	reservation, err := req.ToModel()
	if err != nil {
		return 0, err
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&reservation).Error; err != nil {
		return 0, classify("create reservation", err)
	}
	return reservation.ID, nil
}

var hashPassword = bcrypt.GenerateFromPassword

func (s *GormStore) CreateUser(ctx context.Context, req models.CreateUserRequest) (uint, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	hash, err := hashPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return 0, models.NewValidationError("Senha muito longa (máximo 72 bytes)")
		}
		return 0, &models.InternalError{Op: "hash password", Err: err}
	}

	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Password: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return 0, classify("create user", err)
	}
	return user.ID, nil
}

func (s *GormStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, rdb: s.rdb})
	})
	return classify("transaction", err)
}

func (s *GormStore) Ping(ctx context.Context) error {
	if err := s.rdb.PingContext(ctx); err != nil {
		return &models.ConnectionError{Op: "ping", Err: err}
	}
	return nil
}
