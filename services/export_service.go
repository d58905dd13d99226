// services/export_service.go
package services

import (
	"fmt"

	"github.com/jszwec/csvutil"

	"github.com/puertodata/contenedores/backend/models"
)

// exportRow mirrors the detail table projection for the CSV download: same
// column order, same display headers, resolved descriptions, empty strings
// for absent values.
type exportRow struct {
	Operator        string `csv:"Operador"`
	LoadingPort     string `csv:"Puerto Carga"`
	DischargePort   string `csv:"Puerto Descarga"`
	ArrivalDate     string `csv:"Fch. Llegada"`
	ArrivalTime     string `csv:"Hr. Llegada"`
	DepartureDate   string `csv:"Fch. Salida"`
	DepartureTime   string `csv:"Hr. Salida"`
	Status          string `csv:"Estatus"`
	Content         string `csv:"Contenido"`
	PortRegister    string `csv:"Pto. Registro"`
	ShipName        string `csv:"Nombre Navio"`
	ContainerNumber string `csv:"No. Contenedor"`
	Size            string `csv:"Tamaño"`
	Type            string `csv:"Tipo"`
	Temperature     string `csv:"Temperatura"`
	Description     string `csv:"Descripción"`
	DgnCode         string `csv:"Cód. DGN"`
	Imo             string `csv:"IMO"`
	CallSign        string `csv:"Distintivo"`
	TripNumber      string `csv:"No. Viaje"`
	DeliveryPort    string `csv:"Pto. Entrega"`
	Dock            string `csv:"Muelle"`
	VisitNo         string `csv:"No. Visita"`
	EqdQual         string `csv:"Eqd-Qual"`
}

// ExportCSV renders the filtered detail table as a CSV document, for the
// dashboard's download button.
func ExportCSV(snap *models.Snapshot, req models.ReportRequest) ([]byte, error) {
	enriched := Enrich(snap.Records, snap.Lookups)
	filtered := Apply(enriched, req.Filters, req.Dates)

	rows := make([]exportRow, len(filtered))
	for i := range filtered {
		r := &filtered[i]
		rows[i] = exportRow{
			Operator:        r.Operator,
			LoadingPort:     r.LoadingPortName,
			DischargePort:   r.DischargePortName,
			ArrivalDate:     formatDate(r.ArrivalDate),
			ArrivalTime:     r.ArrivalTime,
			DepartureDate:   formatDate(r.DepartureDate),
			DepartureTime:   r.DepartureTime,
			Status:          r.StatusDesc,
			Content:         r.ContentDesc,
			PortRegister:    r.PortRegisterName,
			ShipName:        r.ShipName,
			ContainerNumber: r.ContainerNumber,
			Size:            r.Size,
			Type:            r.Type,
			Temperature:     r.Temperature,
			Description:     r.Description,
			DgnCode:         r.DgnCode,
			Imo:             r.Imo,
			CallSign:        r.CallSign,
			TripNumber:      r.TripNumber,
			DeliveryPort:    r.DeliveryPort,
			Dock:            r.Dock,
			VisitNo:         r.VisitNo,
			EqdQual:         r.EqdQualDesc,
		}
	}

	out, err := csvutil.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export CSV: %w", err)
	}
	return out, nil
}
