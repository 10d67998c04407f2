package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"transport-crm/internal/domain"
	"transport-crm/internal/repositories"
	"transport-crm/internal/utils"
)

// ExportFilename is the attachment name of the CSV download.
const ExportFilename = "servicios_transportes.csv"

var csvHeader = []string{
	"Fecha", "Nombre", "PAX", "Hora (24H)", "Lugar", "Destino",
	"Agencia", "Proveedor", "Servicio", "Tipo de Unidad",
	"Balance MXN", "Balance USD", "Reporte (MXN)",
	"Reporte Proveedor", "Estatus de Pago", "Observaciones",
}

type ExportService struct {
	Repo      repositories.BookingRepository
	RequestID string
}

// ExportCSV renders every booking matching the filter (no pagination) plus a
// trailing totals row. Totals come from the same SumTotals the list view
// uses, so screen and export can never disagree.
func (s ExportService) ExportCSV(f domain.BookingFilter) ([]byte, error) {
	rows, err := s.Repo.ListAll(f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, b := range rows {
		if err := w.Write(csvRecord(b)); err != nil {
			return nil, err
		}
	}
	if err := w.Write(totalsRecord(domain.SumTotals(rows))); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "export", "csv", fmt.Sprintf("rows=%d", len(rows)))
	return buf.Bytes(), nil
}

func csvRecord(b domain.Booking) []string {
	balanceMXN := ""
	balanceUSD := ""
	if b.BalanceCurrency == domain.CurrencyMXN {
		balanceMXN = utils.FormatMoney(b.Balance)
	} else {
		balanceUSD = utils.FormatMoney(b.Balance)
	}
	return []string{
		utils.FormatDateDMY(b.ServiceDate),
		b.ClientName,
		fmt.Sprintf("%d", b.Passengers),
		utils.FormatTimeHM(b.ServiceDate),
		b.PickupLocation,
		b.Destination,
		b.Agency,
		b.Provider,
		string(b.ServiceType),
		string(b.VehicleType),
		balanceMXN,
		balanceUSD,
		utils.FormatMoney(b.ReportAmount),
		utils.FormatMoney(b.ReportProviderAmount),
		string(b.PaymentStatus),
		b.Notes,
	}
}

func totalsRecord(t domain.Totals) []string {
	return []string{
		"Totales", "", "", "", "", "", "", "", "", "",
		utils.FormatMoney(t.BalanceMXN),
		utils.FormatMoney(t.BalanceUSD),
		utils.FormatMoney(t.ReportAmount),
		utils.FormatMoney(t.ReportProviderAmount),
		"", "",
	}
}
