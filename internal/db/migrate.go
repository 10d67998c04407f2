package db

import (
	"database/sql"
	"fmt"
	"log"
)

const BookingsTable = "bookings"

// Migration is one step in the ordered startup migration list.
// Every step must be individually idempotent so the whole list can run on
// each process start.
type Migration struct {
	ID  string
	Run func(db *sql.DB) error
}

// Migrations returns the ordered list applied at startup.
func Migrations() []Migration {
	return []Migration{
		{ID: "001_create_bookings", Run: createBookingsTable},
		{ID: "002_add_report_amount", Run: addReportAmount},
		{ID: "003_add_report_provider_amount", Run: addReportProviderAmount},
		{ID: "004_normalize_legacy_enums", Run: normalizeLegacyEnumValues},
		{ID: "005_create_users", Run: createUsersTable},
	}
}

// RunMigrations applies every migration in order. Only the initial table
// creation is fatal; later steps log and continue so a failed legacy
// migration never blocks request handling for unrelated fields.
func RunMigrations(db *sql.DB) error {
	for i, m := range Migrations() {
		if err := m.Run(db); err != nil {
			if i == 0 {
				return fmt.Errorf("migration %s: %w", m.ID, err)
			}
			log.Printf("[MIGRATE] step=%s skipped: %v", m.ID, err)
		}
	}
	return nil
}

func createBookingsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ` + BookingsTable + ` (
			id MEDIUMINT NOT NULL AUTO_INCREMENT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			client_name VARCHAR(100) NOT NULL,
			client_phone VARCHAR(20) NOT NULL,
			client_email VARCHAR(100),
			agency VARCHAR(100),
			provider VARCHAR(100),
			service_type VARCHAR(50) NOT NULL,
			trip_type VARCHAR(20) NOT NULL DEFAULT 'one_way',
			service_date DATETIME NOT NULL,
			pickup_location TEXT NOT NULL,
			pickup_location_url TEXT,
			destination TEXT NOT NULL,
			destination_url TEXT,
			return_pickup_time TIME NULL,
			flight_number VARCHAR(20),
			passengers INT NOT NULL,
			vehicle_type VARCHAR(50),
			balance DECIMAL(10,2),
			balance_currency ENUM('USD','MXN') DEFAULT 'USD',
			payment_status VARCHAR(20) DEFAULT 'Pendiente',
			report_amount DECIMAL(10,2) DEFAULT 0.00,
			report_provider_amount DECIMAL(10,2) DEFAULT 0.00,
			notes TEXT,
			last_edited DATETIME NULL,
			PRIMARY KEY (id)
		) CHARACTER SET utf8mb4
	`)
	return err
}

// ensureColumn adds a column only when schema introspection says it is
// missing, so re-running on every start is a no-op.
func ensureColumn(db *sql.DB, column, definition, after string) error {
	if HasColumn(db, BookingsTable, column) {
		return nil
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", BookingsTable, column, definition)
	if after != "" {
		stmt += " AFTER " + after
	}
	_, err := db.Exec(stmt)
	return err
}

func addReportAmount(db *sql.DB) error {
	return ensureColumn(db, "report_amount", "DECIMAL(10,2) DEFAULT 0.00", "payment_status")
}

func addReportProviderAmount(db *sql.DB) error {
	return ensureColumn(db, "report_provider_amount", "DECIMAL(10,2) DEFAULT 0.00", "report_amount")
}

// normalizeLegacyEnumValues rewrites lowercase legacy enum values to their
// canonical display-cased forms. After the first run the WHERE clauses match
// nothing, so the rewrite is idempotent.
func normalizeLegacyEnumValues(db *sql.DB) error {
	rewrites := []struct {
		column string
		from   string
		to     string
	}{
		{"payment_status", "pending", "Pendiente"},
		{"payment_status", "paid", "Pagado"},
		{"payment_status", "cancelled", "Cancelado"},
		{"service_type", "llegada", "Llegada"},
		{"service_type", "salida", "Salida"},
		{"service_type", "interhotel", "Interhotel"},
		{"service_type", "tour_privado", "Tour Privado"},
		{"service_type", "marina", "Marina"},
		{"vehicle_type", "van", "Van"},
		{"vehicle_type", "sprinter", "Sprinter"},
		{"vehicle_type", "suburban", "Suburban"},
		{"vehicle_type", "toyota", "Toyota"},
	}
	for _, rw := range rewrites {
		stmt := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?", BookingsTable, rw.column, rw.column)
		if _, err := db.Exec(stmt, rw.to, rw.from); err != nil {
			return err
		}
	}
	return nil
}

func createUsersTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id BIGINT NOT NULL AUTO_INCREMENT,
			name VARCHAR(100) NOT NULL,
			username VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL,
			phone VARCHAR(20),
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'staff',
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY uq_users_email (email),
			UNIQUE KEY uq_users_username (username)
		) CHARACTER SET utf8mb4
	`)
	return err
}
