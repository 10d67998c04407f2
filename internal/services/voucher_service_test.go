package services

import (
	"strings"
	"testing"
	"time"

	"transport-crm/internal/domain"
)

func voucherLoader(id int64) (domain.Booking, error) {
	return domain.Booking{
		ID:               id,
		ClientName:       "Ana Pérez",
		ClientPhone:      "998-123-4567",
		ClientEmail:      domain.EmailNA,
		Provider:         "TransCabo",
		ServiceType:      domain.ServiceLlegada,
		TripType:         domain.TripRoundTrip,
		ServiceDate:      time.Date(2025, 3, 15, 9, 30, 0, 0, time.Local),
		PickupLocation:   "Aeropuerto CUN",
		Destination:      "Hotel Sol",
		ReturnPickupTime: "14:30:00",
		Passengers:       3,
		VehicleType:      domain.VehicleVan,
		Balance:          150,
		BalanceCurrency:  domain.CurrencyUSD,
		PaymentStatus:    domain.PaymentPendiente,
	}, nil
}

func TestVoucherHTMLContainsBookingDetails(t *testing.T) {
	svc := VoucherService{Loader: voucherLoader}

	html, err := svc.RenderHTML(7)
	if err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	out := string(html)
	for _, want := range []string{"SRV7", "Ana Pérez", "N/A", "Aeropuerto CUN", "Hotel Sol", "14:30", "150.00 USD"} {
		if !strings.Contains(out, want) {
			t.Fatalf("voucher HTML missing %q", want)
		}
	}
}

func TestVoucherPDFGenerates(t *testing.T) {
	svc := VoucherService{Loader: voucherLoader}

	pdf, filename, err := svc.RenderPDF(7)
	if err != nil {
		t.Fatalf("RenderPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("RenderPDF returned empty data")
	}
	if filename != "servicio_7.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestVoucherNotFoundPropagates(t *testing.T) {
	svc := VoucherService{Loader: func(int64) (domain.Booking, error) {
		return domain.Booking{}, domain.NotFoundError{Resource: "booking"}
	}}

	if _, err := svc.RenderHTML(99); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if _, _, err := svc.RenderPDF(99); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
