package store

// SanctionType mirrors the amonestación types of the back office.
type SanctionType string

const (
	SanctionTypeVerbal     SanctionType = "VERBAL"
	SanctionTypeWritten    SanctionType = "ESCRITA"
	SanctionTypeFine       SanctionType = "MULTA"
	SanctionTypeSuspension SanctionType = "SUSPENSION"
)

// SanctionTypes lists every valid sanction type.
var SanctionTypes = []SanctionType{
	SanctionTypeVerbal,
	SanctionTypeWritten,
	SanctionTypeFine,
	SanctionTypeSuspension,
}

// Sanction is a formal warning or fine issued to a resident.
// The offender is recorded by name/RUT rather than user reference because
// sanctions can target non-registered occupants.
type Sanction struct {
	ID                int32
	CondominiumID     int32
	ReporterID        int32
	Type              SanctionType
	Reason            string
	ReasonDetail      *string
	OffenderFirstName string
	OffenderLastName  string
	OffenderRUT       string
	ApartmentNumber   *string
	SanctionTs        int64
	PaymentDueTs      *int64 // only meaningful for fines
	CreatedTs         int64
	UpdatedTs         int64

	// Populated by ListSanctions with JOINs.
	CondominiumName string
	ReporterName    string
}

type FindSanction struct {
	ID              *int32
	CondominiumID   *int32
	SanctionAfterTs *int64
}
