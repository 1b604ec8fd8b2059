package store

// IncidentStatus is the lifecycle state of a reported incident.
type IncidentStatus string

const (
	IncidentStatusPending    IncidentStatus = "PENDIENTE"
	IncidentStatusInProgress IncidentStatus = "EN_PROCESO"
	IncidentStatusResolved   IncidentStatus = "RESUELTA"
	IncidentStatusClosed     IncidentStatus = "CERRADA"
	IncidentStatusCancelled  IncidentStatus = "CANCELADA"
)

// IncidentStatuses lists every valid status, in lifecycle order.
var IncidentStatuses = []IncidentStatus{
	IncidentStatusPending,
	IncidentStatusInProgress,
	IncidentStatusResolved,
	IncidentStatusClosed,
	IncidentStatusCancelled,
}

// IncidentPriority is the urgency level of an incident.
type IncidentPriority string

const (
	IncidentPriorityLow    IncidentPriority = "BAJA"
	IncidentPriorityMedium IncidentPriority = "MEDIA"
	IncidentPriorityHigh   IncidentPriority = "ALTA"
	IncidentPriorityUrgent IncidentPriority = "URGENTE"
)

// IncidentPriorities lists every valid priority, lowest first.
var IncidentPriorities = []IncidentPriority{
	IncidentPriorityLow,
	IncidentPriorityMedium,
	IncidentPriorityHigh,
	IncidentPriorityUrgent,
}

// IncidentCategory classifies incidents (e.g. Mantención, Seguridad).
type IncidentCategory struct {
	ID        int32
	Name      string
	CreatedTs int64
}

type FindIncidentCategory struct {
	ID        *int32
	NameLike  *string
	NameEqual *string // case-insensitive exact match
}

type Incident struct {
	ID            int32
	CondominiumID int32
	CategoryID    int32
	ReporterID    int32
	Title         string
	Description   string
	Status        IncidentStatus
	Priority      IncidentPriority
	Address       *string
	Latitude      *float64
	Longitude     *float64
	ReportedTs    int64
	ClosedTs      *int64
	CreatedTs     int64
	UpdatedTs     int64

	// Populated by ListIncidents with JOINs.
	CondominiumName string
	CategoryName    string
	ReporterName    string
}

type FindIncident struct {
	ID                  *int32
	CondominiumID       *int32
	CondominiumNameLike *string
	CategoryID          *int32
	Status              *IncidentStatus
	Priority            *IncidentPriority
	ExcludeStatuses     []IncidentStatus
	SearchTerm          *string // substring match on title or description
	ReportedAfterTs     *int64
	Limit               *int
}

// IncidentLog is a follow-up entry (bitácora) attached to an incident.
type IncidentLog struct {
	ID         int32
	IncidentID int32
	Action     string
	Detail     string
	CreatedTs  int64
}

type FindIncidentLog struct {
	IncidentID *int32
}
