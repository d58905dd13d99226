// models/movement.go
package models

import "time"

// MovementRecord represents one row of the movimiento_contenedores table:
// a single logged event of a container arriving at / departing from a port.
// Date columns in the source table are free-form and frequently empty or
// malformed, so they are carried as *time.Time (nil = absent, never an error).
type MovementRecord struct {
	ID int64 `db:"id"`

	Operator        string     `db:"operator"`
	TripNumber      string     `db:"trip_number"`
	ShipName        string     `db:"ship_name"`
	LoadingPort     string     `db:"loading_port"`
	DischargePort   string     `db:"discharge_port"`
	DeliveryPort    string     `db:"delivery_port"`
	Dock            string     `db:"dock"`
	ArrivalDate     *time.Time `db:"arrival_date"`
	ArrivalTime     string     `db:"arrival_time"`
	DepartureDate   *time.Time `db:"departure_date"`
	DepartureTime   string     `db:"departure_time"`
	ContainerNumber string     `db:"container_number"`
	Size            string     `db:"size"`
	Type            string     `db:"type"`
	Status          string     `db:"status"`
	FullEmpty       string     `db:"full_empty"`
	Temperature     string     `db:"temperature"`
	Description     string     `db:"description"`
	DgnCode         string     `db:"dgn_code"`
	Imo             string     `db:"imo"`
	CallSign        string     `db:"call_sign"`
	VisitNo         string     `db:"visit_no"`
	EqdQual         string     `db:"eqd_qual"`
	PortRegister    string     `db:"port_register"`

	// Derived fields, populated by services.Enrich from the lookup tables.
	// Not present in the source table.
	StatusDesc        string `db:"-"`
	ContentDesc       string `db:"-"`
	LoadingPortName   string `db:"-"`
	DischargePortName string `db:"-"`
	DeliveryPortName  string `db:"-"`
	PortRegisterName  string `db:"-"`
	EqdQualDesc       string `db:"-"`
}

// Lookups holds the four code-to-description reference tables, read in full
// on every load. A lookup map is never partially applied: enrichment either
// resolves a code or substitutes the documented fallback.
type Lookups struct {
	Status    map[string]string // estatus_contenedor
	Content   map[string]string // contenido_contenedor
	Port      map[string]string // puertosInternacionales
	Equipment map[string]string // calificador_de_equipo
}

// Snapshot is one atomic load result: the full record set plus the lookup
// tables it was loaded with. Snapshots are immutable after creation and are
// replaced wholesale on cache expiry or manual refresh, never updated in place.
type Snapshot struct {
	Records  []MovementRecord
	Lookups  Lookups
	LoadedAt time.Time
}
