package services

import (
	"fmt"
	"strconv"
	"strings"

	"transport-crm/internal/domain"
	"transport-crm/internal/repositories"
	"transport-crm/internal/utils"
)

// BookingInput carries the raw form fields as submitted. Normalization into
// a typed domain.Booking happens in normalize below.
type BookingInput struct {
	ClientName           string `json:"client_name"`
	ClientPhone          string `json:"client_phone"`
	ClientEmail          string `json:"client_email"`
	EmailNA              bool   `json:"email_na"`
	Agency               string `json:"agency"`
	Provider             string `json:"provider"`
	ServiceType          string `json:"service_type"`
	TripType             string `json:"trip_type"`
	ServiceDate          string `json:"service_date"`
	PickupLocation       string `json:"pickup_location"`
	PickupLocationURL    string `json:"pickup_location_url"`
	Destination          string `json:"destination"`
	DestinationURL       string `json:"destination_url"`
	ReturnPickupTime     string `json:"return_pickup_time"`
	FlightNumber         string `json:"flight_number"`
	Passengers           string `json:"passengers"`
	VehicleType          string `json:"vehicle_type"`
	Balance              string `json:"balance"`
	BalanceCurrency      string `json:"balance_currency"`
	PaymentStatus        string `json:"payment_status"`
	ReportAmount         string `json:"report_amount"`
	ReportProviderAmount string `json:"report_provider_amount"`
	Notes                string `json:"notes"`
}

// ListResult is what the list view renders: one page of rows, pagination
// figures, the totals of the visible page and the totals of the whole
// filtered set (the latter shared verbatim with the CSV export).
type ListResult struct {
	Rows       []domain.Booking `json:"rows"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
	PageTotals domain.Totals    `json:"page_totals"`
	Totals     domain.Totals    `json:"totals"`
}

type BookingService struct {
	Repo      repositories.BookingRepository
	RequestID string
}

func (s BookingService) Create(input BookingInput) (int64, error) {
	b, setReturn, err := normalize(input)
	if err != nil {
		return 0, err
	}
	if !setReturn {
		b.ReturnPickupTime = ""
	}
	id, err := s.Repo.Insert(b)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "bookings", "create", fmt.Sprintf("id=%d", id))
	return id, nil
}

func (s BookingService) Update(id int64, input BookingInput) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	b, setReturn, err := normalize(input)
	if err != nil {
		return err
	}
	if err := s.Repo.Update(id, b, setReturn); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "bookings", "update", fmt.Sprintf("id=%d", id))
	return nil
}

func (s BookingService) Get(id int64) (domain.Booking, error) {
	if id <= 0 {
		return domain.Booking{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	return s.Repo.GetByID(id)
}

func (s BookingService) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "bookings", "delete", fmt.Sprintf("id=%d", id))
	return nil
}

func (s BookingService) SetPaymentStatus(id int64, status string) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	st := domain.PaymentStatus(strings.TrimSpace(status))
	if !st.Valid() {
		return domain.ValidationError{Field: "payment_status", Msg: "unknown status"}
	}
	if err := s.Repo.UpdatePaymentStatus(id, st); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "bookings", "payment_status", fmt.Sprintf("id=%d status=%s", id, st))
	return nil
}

func (s BookingService) List(f domain.BookingFilter, page int) (ListResult, error) {
	rows, total, err := s.Repo.List(f, page)
	if err != nil {
		return ListResult{}, err
	}
	all, err := s.Repo.ListAll(f)
	if err != nil {
		return ListResult{}, err
	}
	if page < 1 {
		page = 1
	}
	return ListResult{
		Rows:       rows,
		Page:       page,
		PageSize:   domain.PageSize,
		Total:      total,
		TotalPages: domain.TotalPages(total),
		PageTotals: domain.SumTotals(rows),
		Totals:     domain.SumTotals(all),
	}, nil
}

// normalize sanitizes and coerces raw form input into a well-typed booking.
// The bool result reports whether return_pickup_time should be written
// (round trip with a value supplied).
func normalize(in BookingInput) (domain.Booking, bool, error) {
	var b domain.Booking

	b.ClientName = utils.SanitizeText(in.ClientName)
	if b.ClientName == "" {
		return b, false, domain.ValidationError{Field: "client_name", Msg: "required"}
	}
	b.ClientPhone = utils.SanitizeText(in.ClientPhone)
	if b.ClientPhone == "" {
		return b, false, domain.ValidationError{Field: "client_phone", Msg: "required"}
	}

	// The "no email" checkbox always wins over any typed value. Otherwise
	// the trimmed value is stored as given; malformed addresses are not
	// rejected.
	if in.EmailNA {
		b.ClientEmail = domain.EmailNA
	} else {
		b.ClientEmail = utils.SanitizeText(in.ClientEmail)
	}

	b.Agency = utils.SanitizeText(in.Agency)
	b.Provider = utils.SanitizeText(in.Provider)
	if b.Provider == "" {
		return b, false, domain.ValidationError{Field: "provider", Msg: "required"}
	}

	b.ServiceType = domain.ServiceType(utils.TrimOrEmpty(in.ServiceType))
	if !b.ServiceType.Valid() {
		return b, false, domain.ValidationError{Field: "service_type", Msg: "unknown service type"}
	}
	b.TripType = domain.TripType(utils.TrimOrEmpty(in.TripType))
	if !b.TripType.Valid() {
		return b, false, domain.ValidationError{Field: "trip_type", Msg: "unknown trip type"}
	}

	serviceDate, err := utils.ParseDateTime(in.ServiceDate)
	if err != nil {
		return b, false, domain.ValidationError{Field: "service_date", Msg: "required", Err: err}
	}
	b.ServiceDate = serviceDate

	b.PickupLocation = utils.SanitizeText(in.PickupLocation)
	if b.PickupLocation == "" {
		return b, false, domain.ValidationError{Field: "pickup_location", Msg: "required"}
	}
	b.Destination = utils.SanitizeText(in.Destination)
	if b.Destination == "" {
		return b, false, domain.ValidationError{Field: "destination", Msg: "required"}
	}
	b.PickupLocationURL = utils.SanitizeURL(in.PickupLocationURL)
	b.DestinationURL = utils.SanitizeURL(in.DestinationURL)

	b.FlightNumber = utils.SanitizeText(in.FlightNumber)

	pax, err := strconv.Atoi(utils.TrimOrEmpty(in.Passengers))
	if err != nil || pax <= 0 {
		return b, false, domain.ValidationError{Field: "passengers", Msg: "must be a positive integer"}
	}
	b.Passengers = pax

	b.VehicleType = domain.VehicleType(utils.TrimOrEmpty(in.VehicleType))
	if !b.VehicleType.Valid() {
		return b, false, domain.ValidationError{Field: "vehicle_type", Msg: "unknown vehicle type"}
	}

	b.Balance = utils.ParseMoney(in.Balance)
	b.ReportAmount = utils.ParseMoney(in.ReportAmount)
	b.ReportProviderAmount = utils.ParseMoney(in.ReportProviderAmount)

	b.BalanceCurrency = domain.Currency(utils.TrimOrEmpty(in.BalanceCurrency))
	if b.BalanceCurrency == "" {
		b.BalanceCurrency = domain.CurrencyUSD
	}
	if !b.BalanceCurrency.Valid() {
		return b, false, domain.ValidationError{Field: "balance_currency", Msg: "must be USD or MXN"}
	}

	b.PaymentStatus = domain.PaymentStatus(utils.TrimOrEmpty(in.PaymentStatus))
	if b.PaymentStatus == "" {
		b.PaymentStatus = domain.PaymentPendiente
	}
	if !b.PaymentStatus.Valid() {
		return b, false, domain.ValidationError{Field: "payment_status", Msg: "unknown status"}
	}

	b.Notes = utils.SanitizeText(in.Notes)

	setReturn := false
	if b.TripType == domain.TripRoundTrip {
		clock, err := utils.NormalizeClock(in.ReturnPickupTime)
		if err != nil {
			return b, false, domain.ValidationError{Field: "return_pickup_time", Msg: "unrecognized time", Err: err}
		}
		if clock != "" {
			b.ReturnPickupTime = clock
			setReturn = true
		}
	}

	return b, setReturn, nil
}
