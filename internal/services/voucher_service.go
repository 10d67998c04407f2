package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"transport-crm/internal/domain"
	"transport-crm/internal/repositories"
	"transport-crm/internal/utils"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	companyEmail = "bookings@transport-crm.local"
	companyPhone = "+52 998 000 0000"

	policyTextEN = "Free cancellation up to 24 hours before pickup. No refunds for no-shows."
	policyTextES = "Cancelación gratuita hasta 24 horas antes de la recogida. Sin reembolso por no presentarse."
)

// VoucherService renders the printable voucher and the downloadable PDF for
// a single booking. Loader lets tests feed a booking without a database.
type VoucherService struct {
	Repo      repositories.BookingRepository
	RequestID string
	Loader    func(int64) (domain.Booking, error)
}

func (s VoucherService) load(id int64) (domain.Booking, error) {
	if s.Loader != nil {
		return s.Loader(id)
	}
	return s.Repo.GetByID(id)
}

// RenderHTML produces the bilingual print voucher.
func (s VoucherService) RenderHTML(id int64) ([]byte, error) {
	b, err := s.load(id)
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "voucher", "render_html", fmt.Sprintf("id=%d", id))

	var buf bytes.Buffer
	if err := voucherTmpl.Execute(&buf, voucherData(b)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPDF builds a real PDF of the voucher with a QR code of the booking
// reference.
func (s VoucherService) RenderPDF(id int64) ([]byte, string, error) {
	b, err := s.load(id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "voucher", "render_pdf", fmt.Sprintf("id=%d", id))
	return buildVoucherPDF(b)
}

type voucherView struct {
	Reference     string
	Date          string
	Time          string
	Balance       string
	Currency      string
	ClientName    string
	ClientPhone   string
	ClientEmail   string
	Agency        string
	Provider      string
	ServiceType   string
	TripType      string
	RoundTrip     bool
	ReturnTime    string
	Pickup        string
	PickupURL     string
	Dropoff       string
	DropoffURL    string
	FlightNumber  string
	Passengers    int
	Vehicle       string
	PaymentStatus string
	Notes         string
	CompanyEmail  string
	CompanyPhone  string
	PolicyEN      string
	PolicyES      string
}

func voucherData(b domain.Booking) voucherView {
	tripType := "One Way"
	if b.TripType == domain.TripRoundTrip {
		tripType = "Round Trip"
	}
	return voucherView{
		Reference:     b.Reference(),
		Date:          b.ServiceDate.Format("02 Jan 2006"),
		Time:          utils.FormatTimeHM(b.ServiceDate),
		Balance:       utils.FormatMoney(b.Balance),
		Currency:      string(b.BalanceCurrency),
		ClientName:    b.ClientName,
		ClientPhone:   b.ClientPhone,
		ClientEmail:   safe(b.ClientEmail, domain.EmailNA),
		Agency:        b.Agency,
		Provider:      b.Provider,
		ServiceType:   string(b.ServiceType),
		TripType:      tripType,
		RoundTrip:     b.TripType == domain.TripRoundTrip,
		ReturnTime:    utils.ClockHM(b.ReturnPickupTime),
		Pickup:        b.PickupLocation,
		PickupURL:     b.PickupLocationURL,
		Dropoff:       b.Destination,
		DropoffURL:    b.DestinationURL,
		FlightNumber:  b.FlightNumber,
		Passengers:    b.Passengers,
		Vehicle:       string(b.VehicleType),
		PaymentStatus: string(b.PaymentStatus),
		Notes:         b.Notes,
		CompanyEmail:  companyEmail,
		CompanyPhone:  companyPhone,
		PolicyEN:      policyTextEN,
		PolicyES:      policyTextES,
	}
}

var voucherTmpl = template.Must(template.New("voucher").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<title>Servicio {{.Reference}}</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; font-size: 13px; color: #333; }
.voucher { border: 1px solid #e0e0e0; border-radius: 12px; padding: 24px; }
.header { display: flex; justify-content: space-between; border-bottom: 1px solid #e0e0e0; margin-bottom: 24px; padding-bottom: 12px; }
.reference { text-align: right; }
.reference .code { font-size: 20px; font-weight: 600; letter-spacing: 1px; }
.balance { font-size: 22px; font-weight: 800; }
.card { border: 1px solid #e0e0e0; border-radius: 8px; padding: 12px; margin-bottom: 16px; }
.card-title { font-weight: 600; margin-bottom: 8px; }
.label-secondary { color: #888; font-size: 11px; margin-left: 6px; }
.status { display: inline-block; border-radius: 4px; padding: 4px 8px; color: #fff; font-weight: 800; font-size: 12px; }
.status-Pagado { background: #28a745; }
.status-Pendiente { background: #ffc107; }
.status-other { background: #dc3545; }
.policy { font-size: 11px; color: #666; margin-top: 24px; }
@media print { .no-print { display: none; } }
</style>
</head>
<body>
<div class="voucher">
  <div class="header">
    <div>
      {{.CompanyEmail}}<br>
      {{.CompanyPhone}}
    </div>
    <div class="reference">
      <div class="balance">{{.Balance}} {{.Currency}}</div>
      <div><strong>FECHA / DATE:</strong> {{.Date}}</div>
      <div><strong>BOOKING REFERENCE:</strong> <span class="code">{{.Reference}}</span></div>
      <div class="status {{if eq .PaymentStatus "Pagado"}}status-Pagado{{else if eq .PaymentStatus "Pendiente"}}status-Pendiente{{else}}status-other{{end}}">{{.PaymentStatus}}</div>
    </div>
  </div>

  <div class="card">
    <div class="card-title">Trip Route<span class="label-secondary">Ruta del Servicio</span></div>
    <div><strong>Pickup / Punto de Recogida:</strong> {{.Pickup}}
      {{if .PickupURL}}<a href="{{.PickupURL}}" target="_blank">Ver mapa</a>{{end}}</div>
    <div><strong>Dropoff / Punto de Destino:</strong> {{.Dropoff}}
      {{if .DropoffURL}}<a href="{{.DropoffURL}}" target="_blank">Ver mapa</a>{{end}}</div>
    {{if .RoundTrip}}{{if .ReturnTime}}<div><strong>Return Pickup / Hora de Regreso:</strong> {{.ReturnTime}}</div>{{end}}{{end}}
  </div>

  <div class="card">
    <div class="card-title">Passenger Details<span class="label-secondary">Detalles del Pasajero</span></div>
    <div><strong>Name / Nombre:</strong> {{.ClientName}}</div>
    <div><strong>Phone / Teléfono:</strong> {{.ClientPhone}}</div>
    <div><strong>Email / Correo:</strong> {{.ClientEmail}}</div>
    {{if .Agency}}<div><strong>Agency / Agencia:</strong> {{.Agency}}</div>{{end}}
  </div>

  <div class="card">
    <div class="card-title">Service Details<span class="label-secondary">Detalles del Servicio</span></div>
    <div><strong>Date &amp; Time / Fecha y Hora:</strong> {{.Date}}, {{.Time}}</div>
    <div><strong>Service / Servicio:</strong> {{.ServiceType}} ({{.TripType}})</div>
    <div><strong>Vehicle / Vehículo:</strong> {{.Vehicle}}</div>
    <div><strong>Passengers / Pasajeros:</strong> {{.Passengers}} pax</div>
    {{if .FlightNumber}}<div><strong>Flight / Vuelo:</strong> {{.FlightNumber}}</div>{{end}}
    <div><strong>Provider / Proveedor:</strong> {{.Provider}}</div>
  </div>

  {{if .Notes}}
  <div class="card">
    <div class="card-title">Notes<span class="label-secondary">Observaciones</span></div>
    <div>{{.Notes}}</div>
  </div>
  {{end}}

  <div class="policy">
    {{.PolicyEN}}<br>
    {{.PolicyES}}
  </div>
</div>
<button class="no-print" onclick="window.print()">Imprimir / Print</button>
</body>
</html>
`))

func buildVoucherPDF(b domain.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Voucher "+b.Reference(), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRANSPORT SERVICE VOUCHER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	tripType := "One Way"
	if b.TripType == domain.TripRoundTrip {
		tripType = "Round Trip"
	}
	lines := []string{
		fmt.Sprintf("Booking Reference : %s", b.Reference()),
		fmt.Sprintf("Fecha / Date      : %s", b.ServiceDate.Format("02 Jan 2006")),
		fmt.Sprintf("Hora / Time       : %s", utils.FormatTimeHM(b.ServiceDate)),
		fmt.Sprintf("Cliente           : %s", safe(b.ClientName, "-")),
		fmt.Sprintf("Teléfono          : %s", safe(b.ClientPhone, "-")),
		fmt.Sprintf("Email             : %s", safe(b.ClientEmail, domain.EmailNA)),
		fmt.Sprintf("Servicio          : %s (%s)", b.ServiceType, tripType),
		fmt.Sprintf("Pickup            : %s", safe(b.PickupLocation, "-")),
		fmt.Sprintf("Destino           : %s", safe(b.Destination, "-")),
		fmt.Sprintf("Pasajeros         : %d", b.Passengers),
		fmt.Sprintf("Unidad            : %s", safe(string(b.VehicleType), "-")),
		fmt.Sprintf("Balance           : %s %s", utils.FormatMoney(b.Balance), b.BalanceCurrency),
		fmt.Sprintf("Estatus de Pago   : %s", b.PaymentStatus),
	}
	if b.FlightNumber != "" {
		lines = append(lines, fmt.Sprintf("Vuelo             : %s", b.FlightNumber))
	}
	if b.TripType == domain.TripRoundTrip && b.ReturnPickupTime != "" {
		lines = append(lines, fmt.Sprintf("Hora de Regreso   : %s", utils.ClockHM(b.ReturnPickupTime)))
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	if b.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Observaciones: "+b.Notes, "", "", false)
	}

	png, err := qrcode.Encode(b.Reference(), qrcode.Medium, 256)
	if err == nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("voucher-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("voucher-qr", 160, 20, 30, 30, false, opts, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, policyTextEN+"\n"+policyTextES, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("servicio_%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
