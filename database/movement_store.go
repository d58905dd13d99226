// database/movement_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/puertodata/contenedores/backend/config"
	"github.com/puertodata/contenedores/backend/models"
)

// movementColumns is the fixed projection read from movimiento_contenedores.
// Order here must match the Scan order in FetchMovements.
const movementColumns = `id, operator, trip_number, ship_name, loading_port, discharge_port,
	delivery_port, dock, arrival_date, arrival_time, departure_date, departure_time,
	container_number, size, type, status, full_empty, temperature, description,
	dgn_code, imo, call_sign, visit_no, eqd_qual, port_register`

// FetchMovements reads the full movements table, most recent first.
// Date columns are free-form in the source data, so they are scanned as text
// and coerced to calendar dates; anything unparseable becomes nil, never an
// error.
func FetchMovements(db *sql.DB) ([]models.MovementRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM movimiento_contenedores ORDER BY id DESC", movementColumns)
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query movimiento_contenedores: %w", err)
	}
	defer rows.Close()

	var records []models.MovementRecord
	for rows.Next() {
		var r models.MovementRecord
		var (
			operator, tripNumber, shipName, loadingPort, dischargePort sql.NullString
			deliveryPort, dock, arrivalDate, arrivalTime               sql.NullString
			departureDate, departureTime, containerNumber, size        sql.NullString
			typ, status, fullEmpty, temperature, description           sql.NullString
			dgnCode, imo, callSign, visitNo, eqdQual, portRegister     sql.NullString
		)
		err := rows.Scan(
			&r.ID, &operator, &tripNumber, &shipName, &loadingPort, &dischargePort,
			&deliveryPort, &dock, &arrivalDate, &arrivalTime, &departureDate, &departureTime,
			&containerNumber, &size, &typ, &status, &fullEmpty, &temperature, &description,
			&dgnCode, &imo, &callSign, &visitNo, &eqdQual, &portRegister,
		)
		if err != nil {
			log.Printf("ERROR: Failed to scan movement row: %v", err)
			continue
		}
		r.Operator = operator.String
		r.TripNumber = tripNumber.String
		r.ShipName = shipName.String
		r.LoadingPort = loadingPort.String
		r.DischargePort = dischargePort.String
		r.DeliveryPort = deliveryPort.String
		r.Dock = dock.String
		r.ArrivalDate = coerceDate(arrivalDate)
		r.ArrivalTime = arrivalTime.String
		r.DepartureDate = coerceDate(departureDate)
		r.DepartureTime = departureTime.String
		r.ContainerNumber = containerNumber.String
		r.Size = size.String
		r.Type = typ.String
		r.Status = status.String
		r.FullEmpty = fullEmpty.String
		r.Temperature = temperature.String
		r.Description = description.String
		r.DgnCode = dgnCode.String
		r.Imo = imo.String
		r.CallSign = callSign.String
		r.VisitNo = visitNo.String
		r.EqdQual = eqdQual.String
		r.PortRegister = portRegister.String
		records = append(records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", err)
	}
	return records, nil
}

// dateLayouts covers the formats observed in the source table. parseTime=true
// normalizes real DATE/DATETIME columns to the first two; the rest show up in
// rows that were bulk-imported as text.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

// coerceDate turns a raw date value into a calendar date. Invalid or empty
// input yields nil, not an error: a record with a bad date still belongs in
// the dashboard, it just drops out of the date-based views.
func coerceDate(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	s := strings.TrimSpace(v.String)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// FetchLookup reads a two-column reference table in full into a code map.
// Rows with a NULL code are skipped; a NULL description maps to "".
func FetchLookup(db *sql.DB, table, codeCol, descCol string) (map[string]string, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM %s", codeCol, descCol, table)
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookup table %s: %w", table, err)
	}
	defer rows.Close()

	lookup := make(map[string]string)
	for rows.Next() {
		var code, desc sql.NullString
		if err := rows.Scan(&code, &desc); err != nil {
			log.Printf("ERROR: Failed to scan %s row: %v", table, err)
			continue
		}
		if !code.Valid {
			continue
		}
		lookup[code.String] = desc.String
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", table, err)
	}
	return lookup, nil
}

// LoadSnapshot is the single atomic load step: connect, read the movements
// table and the four lookup tables, disconnect. Any failure returns a nil
// snapshot and a descriptive error; there are no retries here — the next
// attempt happens on cache expiry or manual refresh.
func LoadSnapshot(cfg config.DatabaseConfig) (*models.Snapshot, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	records, err := FetchMovements(db)
	if err != nil {
		return nil, err
	}

	statusMap, err := FetchLookup(db, "estatus_contenedor", "code", "description")
	if err != nil {
		return nil, err
	}
	contentMap, err := FetchLookup(db, "contenido_contenedor", "code", "description")
	if err != nil {
		return nil, err
	}
	portMap, err := FetchLookup(db, "puertosInternacionales", "codPaisPuerto", "descripcion")
	if err != nil {
		return nil, err
	}
	equipMap, err := FetchLookup(db, "calificador_de_equipo", "code", "description")
	if err != nil {
		return nil, err
	}

	log.Printf("Store: Loaded %d movements, %d status codes, %d content codes, %d ports, %d equipment qualifiers",
		len(records), len(statusMap), len(contentMap), len(portMap), len(equipMap))

	return &models.Snapshot{
		Records: records,
		Lookups: models.Lookups{
			Status:    statusMap,
			Content:   contentMap,
			Port:      portMap,
			Equipment: equipMap,
		},
		LoadedAt: time.Now(),
	}, nil
}
