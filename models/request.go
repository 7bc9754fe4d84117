package models

import "time"

// Travel product categories a request can target.
const (
	ModalityFlights  = "flights"
	ModalityLodging  = "lodging"
	ModalityPackages = "packages"
)

// Request lifecycle states. Transitions are driven only by the workflow
// engine; finalized and cancelled are terminal.
const (
	RequestStatusPending   = "pending"
	RequestStatusSearching = "searching"
	RequestStatusFinalized = "finalized"
	RequestStatusCancelled = "cancelled"
)

// ValidModality reports whether m is one of the recognized travel products.
func ValidModality(m string) bool {
	return m == ModalityFlights || m == ModalityLodging || m == ModalityPackages
}

// Request is a single travel intent submitted by a user.
type Request struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"userId"`
	Modality    string    `bson:"modality" json:"modality"`
	Origin      string    `bson:"origin,omitempty" json:"origin,omitempty"`
	Destination string    `bson:"destination,omitempty" json:"destination,omitempty"`
	SurpriseMe  bool      `bson:"surprise_me" json:"surpriseMe"`
	DateIn      string    `bson:"date_in,omitempty" json:"dateIn,omitempty"`
	DateOut     string    `bson:"date_out,omitempty" json:"dateOut,omitempty"`
	PartySize   *int      `bson:"party_size,omitempty" json:"partySize,omitempty"`
	Class       string    `bson:"class,omitempty" json:"class,omitempty"`
	StarRating  *int      `bson:"star_rating,omitempty" json:"starRating,omitempty"`
	Budget      *float64  `bson:"budget,omitempty" json:"budget,omitempty"`
	Email       string    `bson:"email,omitempty" json:"email,omitempty"`
	Mode        string    `bson:"mode,omitempty" json:"mode,omitempty"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
