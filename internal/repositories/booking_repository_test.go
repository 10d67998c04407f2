package repositories

import (
	"testing"
	"time"

	"transport-crm/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookingCols = []string{
	"id", "created_at", "client_name", "client_phone", "client_email",
	"agency", "provider", "service_type", "trip_type", "service_date",
	"pickup_location", "pickup_location_url", "destination", "destination_url",
	"return_pickup_time", "flight_number", "passengers", "vehicle_type",
	"balance", "balance_currency", "payment_status",
	"report_amount", "report_provider_amount", "notes", "last_edited",
}

func bookingRow(rows *sqlmock.Rows, id int64, balance float64, currency string) *sqlmock.Rows {
	return rows.AddRow(
		id, time.Now(), "Cliente", "998-000-0000", "N/A",
		"SolTravel", "TransCabo", "Llegada", "round_trip", time.Now(),
		"Aeropuerto CUN", "", "Hotel Sol", "",
		"14:30:00", "AM123", 3, "Van",
		balance, currency, "Pendiente",
		50.0, 0.0, "", nil,
	)
}

func testBooking() domain.Booking {
	return domain.Booking{
		ClientName:      "Cliente",
		ClientPhone:     "998-000-0000",
		ClientEmail:     "N/A",
		Provider:        "TransCabo",
		ServiceType:     domain.ServiceLlegada,
		TripType:        domain.TripOneWay,
		ServiceDate:     time.Date(2025, 3, 15, 9, 30, 0, 0, time.Local),
		PickupLocation:  "Aeropuerto CUN",
		Destination:     "Hotel Sol",
		Passengers:      3,
		VehicleType:     domain.VehicleVan,
		Balance:         100,
		BalanceCurrency: domain.CurrencyMXN,
		PaymentStatus:   domain.PaymentPendiente,
	}
}

func TestInsertReturnsNewID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))

	repo := BookingRepository{DB: db}
	id, err := repo.Insert(testBooking())
	if err != nil {
		t.Fatalf("insert error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStampsLastEdited(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE bookings SET .*last_edited=NOW\(\) WHERE id=\?`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := BookingRepository{DB: db}
	if err := repo.Update(7, testBooking(), false); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateMissingIDIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := BookingRepository{DB: db}
	err = repo.Update(999, testBooking(), false)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteAbsentIDIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// two deletes of the same id: first removes the row, second matches
	// nothing; both succeed
	mock.ExpectExec("DELETE FROM bookings WHERE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM bookings WHERE").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := BookingRepository{DB: db}
	if err := repo.Delete(5); err != nil {
		t.Fatalf("first delete error: %v", err)
	}
	if err := repo.Delete(5); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WillReturnRows(sqlmock.NewRows(bookingCols))

	repo := BookingRepository{DB: db}
	_, err = repo.GetByID(999)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestGetByIDPreservesReturnPickupTime(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingCols), 7, 100, "MXN"))

	repo := BookingRepository{DB: db}
	b, err := repo.GetByID(7)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if b.ReturnPickupTime != "14:30:00" {
		t.Fatalf("return pickup time not preserved, got %q", b.ReturnPickupTime)
	}
	if b.LastEdited != nil {
		t.Fatalf("last_edited should be nil for never-edited booking")
	}
}

func TestListMonthFilterBeatsDayFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	f := domain.BookingFilter{
		DateFilterType: domain.DateFilterMonth,
		Month:          "2025-03",
		Date:           "2025-03-15", // must be ignored
	}
	start := "2025-03-01 00:00:00"
	end := "2025-03-31 23:59:59"

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE service_date >= \? AND service_date <= \?`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE service_date >= \? AND service_date <= \? ORDER BY service_date DESC, id ASC`).
		WithArgs(start, end, domain.PageSize, 0).
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingCols), 1, 100, "MXN"))

	repo := BookingRepository{DB: db}
	rows, total, err := repo.List(f, 1)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expected 1 row/total, got rows=%d total=%d", len(rows), total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListFebruaryMonthRangeEndsOnTheRightDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	f := domain.BookingFilter{DateFilterType: domain.DateFilterMonth, Month: "2024-02"}
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE service_date >= \? AND service_date <= \?`).
		WithArgs("2024-02-01 00:00:00", "2024-02-29 23:59:59"). // leap year
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE service_date >= \? AND service_date <= \?`).
		WithArgs("2024-02-01 00:00:00", "2024-02-29 23:59:59", domain.PageSize, 0).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	repo := BookingRepository{DB: db}
	if _, _, err := repo.List(f, 1); err != nil {
		t.Fatalf("list error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListInvalidMonthMatchesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	f := domain.BookingFilter{DateFilterType: domain.DateFilterMonth, Month: "banana"}
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE 1=0`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE 1=0 ORDER BY`).
		WithArgs(domain.PageSize, 0).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	repo := BookingRepository{DB: db}
	rows, total, err := repo.List(f, 1)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatalf("garbage month must match no rows, got rows=%d total=%d", len(rows), total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListAllInvalidDayMatchesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE 1=0 ORDER BY`).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	repo := BookingRepository{DB: db}
	rows, err := repo.ListAll(domain.BookingFilter{Date: "not-a-date"})
	if err != nil {
		t.Fatalf("listAll error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("garbage day must match no rows, got %d", len(rows))
	}
}

func TestListDayFilterUsesCalendarDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE DATE\(service_date\) = \?`).
		WithArgs("2025-03-15").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE DATE\(service_date\) = \?`).
		WithArgs("2025-03-15", domain.PageSize, 0).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	repo := BookingRepository{DB: db}
	rows, total, err := repo.List(domain.BookingFilter{Date: "2025-03-15"}, 1)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatalf("expected empty page, got rows=%d total=%d", len(rows), total)
	}
}

func TestListSecondPageOffset(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(65))
	mock.ExpectQuery(`SELECT (.+) FROM bookings ORDER BY service_date DESC, id ASC LIMIT \? OFFSET \?`).
		WithArgs(domain.PageSize, domain.PageSize).
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingCols), 31, 100, "USD"))

	repo := BookingRepository{DB: db}
	_, total, err := repo.List(domain.BookingFilter{}, 2)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 65 {
		t.Fatalf("expected filtered total 65, got %d", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListAllAgencySubstring(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE agency LIKE \? ORDER BY`).
		WithArgs("%Sol%").
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingCols), 1, 100, "MXN"))

	repo := BookingRepository{DB: db}
	rows, err := repo.ListAll(domain.BookingFilter{Agency: "Sol"})
	if err != nil {
		t.Fatalf("listAll error: %v", err)
	}
	if len(rows) != 1 || rows[0].Agency != "SolTravel" {
		t.Fatalf("expected the SolTravel booking, got %+v", rows)
	}
}
