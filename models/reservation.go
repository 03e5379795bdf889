package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending = "Pendente"
	DateLayout    = "2006-01-02"
)

// Reservation targets either a structured hotel (HotelID) or just the
// free-text name in Hotel. Hotel is always filled.
type Reservation struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	UserID   uint           `gorm:"column:usuario_id;not null;index" json:"usuario_id"`
	HotelID  *uint          `gorm:"column:hotel_id;index" json:"hotel_id,omitempty"`
	Hotel    string         `gorm:"column:hotel;size:150;not null" json:"hotel"`
	RoomType string         `gorm:"column:tipo_quarto;size:50;not null" json:"roomType"`
	CheckIn  datatypes.Date `gorm:"column:checkin;not null" json:"checkin"`
	CheckOut datatypes.Date `gorm:"column:checkout;not null" json:"checkout"`
	Adults   int            `gorm:"column:adultos;default:0" json:"adults"`
	Children int            `gorm:"column:criancas;default:0" json:"children"`
	Total    float64        `gorm:"column:total;type:decimal(12,2);default:0" json:"total"`
	Status   string         `gorm:"column:status;size:30;default:Pendente" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	User      User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	HotelInfo *Hotel `gorm:"foreignKey:HotelID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (Reservation) TableName() string { return "reserva" }

func (r Reservation) CheckInTime() time.Time  { return time.Time(r.CheckIn) }
func (r Reservation) CheckOutTime() time.Time { return time.Time(r.CheckOut) }

type GuestCount struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateReservationRequest is the POST /api/reservas payload.
type CreateReservationRequest struct {
	Hotel       string      `json:"hotel"`
	HotelID     *uint       `json:"hotel_id,omitempty"`
	RoomType    string      `json:"roomType"`
	CheckIn     string      `json:"checkin"`
	CheckOut    string      `json:"checkout"`
	Guests      *GuestCount `json:"guests"`
	TotalAmount float64     `json:"totalAmount"`
	UserID      int64       `json:"usuario_id"`
}

// UnmarshalJSON accepts totalAmount and usuario_id either as JSON numbers
// or as numeric strings ("2937.00", "1").
func (r *CreateReservationRequest) UnmarshalJSON(data []byte) error {
	type plain CreateReservationRequest
	aux := struct {
		*plain
		TotalAmount json.Number `json:"totalAmount"`
		UserID      json.Number `json:"usuario_id"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.TotalAmount, r.UserID = 0, 0
	if aux.TotalAmount != "" {
		v, err := aux.TotalAmount.Float64()
		if err != nil {
			return fmt.Errorf("totalAmount: %w", err)
		}
		r.TotalAmount = v
	}
	if aux.UserID != "" {
		v, err := aux.UserID.Int64()
		if err != nil {
			return fmt.Errorf("usuario_id: %w", err)
		}
		r.UserID = v
	}
	return nil
}

func (r CreateReservationRequest) Validate() error {
	_, err := r.ToModel()
	return err
}

// ToModel checks the required-field contract and builds the row to insert.
func (r CreateReservationRequest) ToModel() (Reservation, error) {
	hotel := strings.TrimSpace(r.Hotel)
	roomType := strings.TrimSpace(r.RoomType)
	if hotel == "" || roomType == "" ||
		strings.TrimSpace(r.CheckIn) == "" || strings.TrimSpace(r.CheckOut) == "" ||
		r.UserID <= 0 {
		return Reservation{}, NewValidationError(MsgMissingReservationFields)
	}

	checkIn, err := ParseDate(r.CheckIn)
	if err != nil {
		return Reservation{}, NewValidationError(fmt.Sprintf("Data de checkin inválida: %s", r.CheckIn))
	}
	checkOut, err := ParseDate(r.CheckOut)
	if err != nil {
		return Reservation{}, NewValidationError(fmt.Sprintf("Data de checkout inválida: %s", r.CheckOut))
	}

	var guests GuestCount
	if r.Guests != nil {
		guests = *r.Guests
	}
	if guests.Adults < 0 || guests.Children < 0 {
		return Reservation{}, NewValidationError("Quantidade de hóspedes inválida")
	}
	if r.TotalAmount < 0 {
		return Reservation{}, NewValidationError("Valor total inválido")
	}

	return Reservation{
		UserID:   uint(r.UserID),
		HotelID:  r.HotelID,
		Hotel:    hotel,
		RoomType: roomType,
		CheckIn:  datatypes.Date(checkIn),
		CheckOut: datatypes.Date(checkOut),
		Adults:   guests.Adults,
		Children: guests.Children,
		Total:    r.TotalAmount,
		Status:   StatusPending,
	}, nil
}

// ParseDate accepts a calendar date, or an RFC 3339 timestamp whose date
// part is kept. The result is always midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ReservationRow is the joined reservation + owner projection read by the store.
// Owner columns are nullable so a dangling usuario_id can be detected.
type ReservationRow struct {
	ID        uint      `db:"id"`
	Hotel     string    `db:"hotel"`
	RoomType  string    `db:"tipo_quarto"`
	CheckIn   time.Time `db:"checkin"`
	CheckOut  time.Time `db:"checkout"`
	Adults    int       `db:"adultos"`
	Children  int       `db:"criancas"`
	Total     float64   `db:"total"`
	Status    string    `db:"status"`
	UserID    uint      `db:"usuario_id"`
	UserName  *string   `db:"usuario_nome"`
	UserEmail *string   `db:"usuario_email"`
}

// ReservationResponse is one element of GET /api/reservas.
type ReservationResponse struct {
	ID          uint       `json:"id"`
	Hotel       string     `json:"hotel"`
	RoomType    string     `json:"roomType"`
	CheckIn     string     `json:"checkin"`
	CheckOut    string     `json:"checkout"`
	Guests      GuestCount `json:"guests"`
	TotalAmount string     `json:"totalAmount"`
	Status      string     `json:"status"`
	GuestInfo   GuestInfo  `json:"guestInfo"`
}
