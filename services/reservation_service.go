package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"seapass-backend/models"
	"seapass-backend/store"
)

// ReservationService validates write payloads, owns the transaction boundary
// and shapes store rows into response objects. It keeps no per-request state.
type ReservationService struct {
	Store store.Store
}

func NewReservationService(s store.Store) *ReservationService {
	return &ReservationService{Store: s}
}

func (s *ReservationService) ListPassengers(ctx context.Context) ([]models.Passenger, error) {
	return s.Store.ListPassengers(ctx)
}

func (s *ReservationService) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	return s.Store.ListHotels(ctx)
}

func (s *ReservationService) ListReservations(ctx context.Context) ([]models.ReservationResponse, error) {
	rows, err := s.Store.ListReservations(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.ReservationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ShapeReservation(r))
	}
	return out, nil
}

// ShapeReservation nests guest counts and owner info, renders dates without
// a time part and the total as a decimal string.
func ShapeReservation(r models.ReservationRow) models.ReservationResponse {
	resp := models.ReservationResponse{
		ID:          r.ID,
		Hotel:       r.Hotel,
		RoomType:    r.RoomType,
		CheckIn:     formatDate(r.CheckIn),
		CheckOut:    formatDate(r.CheckOut),
		Guests:      models.GuestCount{Adults: r.Adults, Children: r.Children},
		TotalAmount: FormatAmount(r.Total),
		Status:      r.Status,
	}
	if r.UserName != nil {
		resp.GuestInfo.Name = *r.UserName
	}
	if r.UserEmail != nil {
		resp.GuestInfo.Email = *r.UserEmail
	}
	return resp
}

// FormatAmount prints the shortest decimal that round-trips: 1500.50 -> "1500.5".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(models.DateLayout)
}

// CreateReservation validates first and never opens a transaction for an
// invalid payload.
func (s *ReservationService) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (uint, error) {
	reservation, err := req.ToModel()
	if err != nil {
		return 0, err
	}

	// date order is not enforced, only logged
	if !reservation.CheckOutTime().After(reservation.CheckInTime()) {
		slog.WarnContext(ctx, "reservation dates not in order",
			"checkin", req.CheckIn, "checkout", req.CheckOut, "usuario_id", req.UserID)
	}

	var id uint
	err = s.Store.InTx(ctx, func(tx store.Store) error {
		var err error
		id, err = tx.CreateReservation(ctx, req)
		return err
	})
	if err != nil {
		slog.ErrorContext(ctx, "create reservation rolled back", "error", err, "usuario_id", req.UserID)
		return 0, err
	}
	return id, nil
}

func (s *ReservationService) CreateUser(ctx context.Context, req models.CreateUserRequest) (uint, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	var id uint
	err := s.Store.InTx(ctx, func(tx store.Store) error {
		var err error
		id, err = tx.CreateUser(ctx, req)
		return err
	})
	if err != nil {
		slog.ErrorContext(ctx, "create user rolled back", "error", err)
		return 0, err
	}
	return id, nil
}

func (s *ReservationService) Health(ctx context.Context) error {
	return s.Store.Ping(ctx)
}
