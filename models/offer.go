package models

import "time"

// Offer states keep the original Spanish vocabulary: clients and the
// provider wire format both speak it. Transitions are one-directional in
// the sense that nothing ever goes back to Disponible.
const (
	OfferDisponible = "Disponible"
	OfferReservado  = "Reservado"
	OfferCancelado  = "Cancelado"
)

// Offer is one candidate result a provider returned for a request. UserID
// is denormalized from the owning request so listings are a single query.
type Offer struct {
	ID           string    `bson:"id" json:"id"`
	RequestID    string    `bson:"request_id" json:"requestId"`
	UserID       string    `bson:"user_id" json:"userId"`
	Modality     string    `bson:"modality" json:"modality"`
	RutaODestino string    `bson:"ruta_o_destino,omitempty" json:"rutaODestino,omitempty"`
	Fecha        string    `bson:"fecha,omitempty" json:"fecha,omitempty"`
	Clase        string    `bson:"clase,omitempty" json:"clase,omitempty"`
	Pax          *int      `bson:"pax,omitempty" json:"pax,omitempty"`
	PrecioUSD    *float64  `bson:"precio_usd,omitempty" json:"precioUSD,omitempty"`
	Estado       string    `bson:"estado" json:"estado"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// RawOffer is the provider-side shape of an offer, before it is tied to a
// request. Numeric fields tolerate junk: a provider sending a string where
// a number belongs yields an absent field, not a dropped batch.
type RawOffer struct {
	RutaODestino string        `json:"rutaODestino"`
	Fecha        string        `json:"fecha"`
	Clase        string        `json:"clase"`
	Pax          OptionalInt   `json:"pax"`
	PrecioUSD    OptionalFloat `json:"precioUSD"`
	Estado       string        `json:"estado"`
}
