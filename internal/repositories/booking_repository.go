package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "transport-crm/internal/config"
	intdb "transport-crm/internal/db"
	"transport-crm/internal/domain"
	"transport-crm/internal/utils"

	"github.com/jinzhu/now"
)

// BookingRepository persists transport-service bookings. A zero value falls
// back to the shared connection, which lets tests inject their own DB.
type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, created_at, client_name, client_phone,
		COALESCE(client_email, ''), COALESCE(agency, ''), COALESCE(provider, ''),
		service_type, trip_type, service_date,
		pickup_location, COALESCE(pickup_location_url, ''),
		destination, COALESCE(destination_url, ''),
		COALESCE(return_pickup_time, ''), COALESCE(flight_number, ''),
		passengers, COALESCE(vehicle_type, ''),
		COALESCE(balance, 0), COALESCE(balance_currency, 'USD'),
		COALESCE(payment_status, 'Pendiente'),
		COALESCE(report_amount, 0), COALESCE(report_provider_amount, 0),
		COALESCE(notes, ''), last_edited`

// Insert writes a new booking. last_edited is never set on insert;
// created_at comes from the column default.
func (r BookingRepository) Insert(b domain.Booking) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO `+intdb.BookingsTable+` (
			client_name, client_phone, client_email, agency, provider,
			service_type, trip_type, service_date,
			pickup_location, pickup_location_url, destination, destination_url,
			return_pickup_time, flight_number, passengers, vehicle_type,
			balance, balance_currency, payment_status,
			report_amount, report_provider_amount, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.ClientName, b.ClientPhone, b.ClientEmail, b.Agency, b.Provider,
		string(b.ServiceType), string(b.TripType), utils.FormatDateTime(b.ServiceDate),
		b.PickupLocation, b.PickupLocationURL, b.Destination, b.DestinationURL,
		intdb.NullIfEmpty(b.ReturnPickupTime), b.FlightNumber, b.Passengers, string(b.VehicleType),
		b.Balance, string(b.BalanceCurrency), string(b.PaymentStatus),
		b.ReportAmount, b.ReportProviderAmount, b.Notes,
	)
	if err != nil {
		return 0, domain.PersistenceError{Op: "insert booking", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.PersistenceError{Op: "insert booking", Err: err}
	}
	return id, nil
}

// Update replaces every mutable field by id and always stamps last_edited.
// return_pickup_time is only written when setReturnTime is true; otherwise
// the stored value is left alone.
func (r BookingRepository) Update(id int64, b domain.Booking, setReturnTime bool) error {
	sets := []string{
		"client_name=?", "client_phone=?", "client_email=?", "agency=?", "provider=?",
		"service_type=?", "trip_type=?", "service_date=?",
		"pickup_location=?", "pickup_location_url=?", "destination=?", "destination_url=?",
		"flight_number=?", "passengers=?", "vehicle_type=?",
		"balance=?", "balance_currency=?", "payment_status=?",
		"report_amount=?", "report_provider_amount=?", "notes=?",
	}
	args := []any{
		b.ClientName, b.ClientPhone, b.ClientEmail, b.Agency, b.Provider,
		string(b.ServiceType), string(b.TripType), utils.FormatDateTime(b.ServiceDate),
		b.PickupLocation, b.PickupLocationURL, b.Destination, b.DestinationURL,
		b.FlightNumber, b.Passengers, string(b.VehicleType),
		b.Balance, string(b.BalanceCurrency), string(b.PaymentStatus),
		b.ReportAmount, b.ReportProviderAmount, b.Notes,
	}
	if setReturnTime {
		sets = append(sets, "return_pickup_time=?")
		args = append(args, intdb.NullIfEmpty(b.ReturnPickupTime))
	}
	sets = append(sets, "last_edited=NOW()")
	args = append(args, id)

	res, err := r.db().Exec(
		`UPDATE `+intdb.BookingsTable+` SET `+strings.Join(sets, ", ")+` WHERE id=?`,
		args...,
	)
	if err != nil {
		return domain.PersistenceError{Op: "update booking", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// UpdatePaymentStatus flips only payment_status. It does not stamp
// last_edited, matching the list view's quick status control.
func (r BookingRepository) UpdatePaymentStatus(id int64, status domain.PaymentStatus) error {
	_, err := r.db().Exec(
		`UPDATE `+intdb.BookingsTable+` SET payment_status=? WHERE id=?`,
		string(status), id,
	)
	if err != nil {
		return domain.PersistenceError{Op: "update payment status", Err: err}
	}
	return nil
}

// Delete removes a booking by id. Deleting an id that is already gone is a
// successful no-op.
func (r BookingRepository) Delete(id int64) error {
	_, err := r.db().Exec(`DELETE FROM `+intdb.BookingsTable+` WHERE id=?`, id)
	if err != nil {
		return domain.PersistenceError{Op: "delete booking", Err: err}
	}
	return nil
}

func (r BookingRepository) GetByID(id int64) (domain.Booking, error) {
	row := r.db().QueryRow(
		`SELECT `+bookingColumns+` FROM `+intdb.BookingsTable+` WHERE id=? LIMIT 1`, id,
	)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return domain.Booking{}, domain.PersistenceError{Op: "get booking", Err: err}
	}
	return b, nil
}

// List returns one page of filtered bookings plus the filtered total count.
// Rows are ordered service_date descending, insertion order breaking ties.
func (r BookingRepository) List(f domain.BookingFilter, page int) ([]domain.Booking, int, error) {
	if page < 1 {
		page = 1
	}
	where, args := buildFilter(f)

	var total int
	if err := r.db().QueryRow(
		`SELECT COUNT(*) FROM `+intdb.BookingsTable+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, domain.PersistenceError{Op: "count bookings", Err: err}
	}

	offset := (page - 1) * domain.PageSize
	listArgs := append(append([]any{}, args...), domain.PageSize, offset)
	rows, err := r.db().Query(
		`SELECT `+bookingColumns+` FROM `+intdb.BookingsTable+where+
			` ORDER BY service_date DESC, id ASC LIMIT ? OFFSET ?`,
		listArgs...,
	)
	if err != nil {
		return nil, 0, domain.PersistenceError{Op: "list bookings", Err: err}
	}
	defer rows.Close()

	out, err := collectBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListAll applies the same predicate as List with no pagination. Used by the
// CSV export and by full-filter totals.
func (r BookingRepository) ListAll(f domain.BookingFilter) ([]domain.Booking, error) {
	where, args := buildFilter(f)
	rows, err := r.db().Query(
		`SELECT `+bookingColumns+` FROM `+intdb.BookingsTable+where+
			` ORDER BY service_date DESC, id ASC`,
		args...,
	)
	if err != nil {
		return nil, domain.PersistenceError{Op: "list bookings", Err: err}
	}
	defer rows.Close()

	return collectBookings(rows)
}

// buildFilter assembles the WHERE clause as a conjunction of the optional
// predicates. The month predicate wins over the day predicate. An active
// date predicate with an unparsable value matches no rows, never all rows.
func buildFilter(f domain.BookingFilter) (string, []any) {
	clauses := []string{}
	args := []any{}

	if f.MonthActive() {
		if start, err := utils.ParseMonth(f.Month); err == nil {
			// EndOfMonth knows month lengths and leap years; formatting
			// truncates it to the last second, which is the resolution of
			// service_date.
			monthEnd := now.With(start).EndOfMonth()
			clauses = append(clauses, "service_date >= ? AND service_date <= ?")
			args = append(args,
				utils.FormatDateTime(start),
				utils.FormatDateTime(monthEnd),
			)
		} else {
			clauses = append(clauses, "1=0")
		}
	} else if f.Date != "" {
		if day, err := utils.ParseDate(f.Date); err == nil {
			clauses = append(clauses, "DATE(service_date) = ?")
			args = append(args, utils.FormatDate(day))
		} else {
			clauses = append(clauses, "1=0")
		}
	}

	if f.Agency != "" {
		clauses = append(clauses, "agency LIKE ?")
		args = append(args, likePattern(f.Agency))
	}
	if f.Provider != "" {
		clauses = append(clauses, "provider LIKE ?")
		args = append(args, likePattern(f.Provider))
	}
	if f.Vehicle != "" {
		clauses = append(clauses, "vehicle_type = ?")
		args = append(args, f.Vehicle)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var (
		b                              domain.Booking
		serviceType, tripType, vehicle string
		currency, status, returnTime   string
		lastEdited                     sql.NullTime
	)
	if err := row.Scan(
		&b.ID, &b.CreatedAt, &b.ClientName, &b.ClientPhone,
		&b.ClientEmail, &b.Agency, &b.Provider,
		&serviceType, &tripType, &b.ServiceDate,
		&b.PickupLocation, &b.PickupLocationURL,
		&b.Destination, &b.DestinationURL,
		&returnTime, &b.FlightNumber,
		&b.Passengers, &vehicle,
		&b.Balance, &currency, &status,
		&b.ReportAmount, &b.ReportProviderAmount,
		&b.Notes, &lastEdited,
	); err != nil {
		return domain.Booking{}, err
	}
	b.ServiceType = domain.ServiceType(serviceType)
	b.TripType = domain.TripType(tripType)
	b.VehicleType = domain.VehicleType(vehicle)
	b.BalanceCurrency = domain.Currency(currency)
	b.PaymentStatus = domain.PaymentStatus(status)
	b.ReturnPickupTime = returnTime
	if lastEdited.Valid {
		t := lastEdited.Time
		b.LastEdited = &t
	}
	return b, nil
}

func collectBookings(rows *sql.Rows) ([]domain.Booking, error) {
	out := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.PersistenceError{Op: "scan booking", Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.PersistenceError{Op: "list bookings", Err: err}
	}
	return out, nil
}
