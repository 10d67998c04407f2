package domain

import "time"

type ServiceType string

const (
	ServiceLlegada     ServiceType = "Llegada"
	ServiceSalida      ServiceType = "Salida"
	ServiceInterhotel  ServiceType = "Interhotel"
	ServiceTourPrivado ServiceType = "Tour Privado"
	ServiceMarina      ServiceType = "Marina"
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceLlegada, ServiceSalida, ServiceInterhotel, ServiceTourPrivado, ServiceMarina:
		return true
	}
	return false
}

type TripType string

const (
	TripOneWay    TripType = "one_way"
	TripRoundTrip TripType = "round_trip"
)

func (t TripType) Valid() bool {
	return t == TripOneWay || t == TripRoundTrip
}

type VehicleType string

const (
	VehicleVan      VehicleType = "Van"
	VehicleSprinter VehicleType = "Sprinter"
	VehicleSuburban VehicleType = "Suburban"
	VehicleToyota   VehicleType = "Toyota"
)

func (v VehicleType) Valid() bool {
	switch v {
	case VehicleVan, VehicleSprinter, VehicleSuburban, VehicleToyota:
		return true
	}
	return false
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyMXN Currency = "MXN"
)

func (c Currency) Valid() bool {
	return c == CurrencyUSD || c == CurrencyMXN
}

type PaymentStatus string

const (
	PaymentPendiente PaymentStatus = "Pendiente"
	PaymentPagado    PaymentStatus = "Pagado"
	PaymentCancelado PaymentStatus = "Cancelado"
	PaymentNoShow    PaymentStatus = "No Show"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPendiente, PaymentPagado, PaymentCancelado, PaymentNoShow:
		return true
	}
	return false
}

// EmailNA is the sentinel stored when a client has no email. It is a
// first-class value, distinct from an empty string.
const EmailNA = "N/A"

// Booking is one transport-service record.
type Booking struct {
	ID                   int64         `json:"id"`
	CreatedAt            time.Time     `json:"created_at"`
	ClientName           string        `json:"client_name"`
	ClientPhone          string        `json:"client_phone"`
	ClientEmail          string        `json:"client_email"`
	Agency               string        `json:"agency"`
	Provider             string        `json:"provider"`
	ServiceType          ServiceType   `json:"service_type"`
	TripType             TripType      `json:"trip_type"`
	ServiceDate          time.Time     `json:"service_date"`
	PickupLocation       string        `json:"pickup_location"`
	PickupLocationURL    string        `json:"pickup_location_url"`
	Destination          string        `json:"destination"`
	DestinationURL       string        `json:"destination_url"`
	ReturnPickupTime     string        `json:"return_pickup_time"`
	FlightNumber         string        `json:"flight_number"`
	Passengers           int           `json:"passengers"`
	VehicleType          VehicleType   `json:"vehicle_type"`
	Balance              float64       `json:"balance"`
	BalanceCurrency      Currency      `json:"balance_currency"`
	PaymentStatus        PaymentStatus `json:"payment_status"`
	ReportAmount         float64       `json:"report_amount"`
	ReportProviderAmount float64       `json:"report_provider_amount"`
	Notes                string        `json:"notes"`
	LastEdited           *time.Time    `json:"last_edited"`
}

// Reference is the booking code printed on vouchers.
func (b Booking) Reference() string {
	return bookingReference(b.ID)
}
