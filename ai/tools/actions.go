package tools

// Action identifiers shared between propose tools, pending proposals and
// execute functions. These are internal keys, never exposed to the model as
// callable names.
const (
	ActionCreateCondominium = "create_condominium"
	ActionCreateUser        = "create_user"
	ActionCreateMeeting     = "create_meeting"
	ActionCreateIncident    = "create_incident"
	ActionCreateCategory    = "create_category"
	ActionCreateSanction    = "create_sanction"
	ActionCreateLogEntry    = "create_log_entry"
)

// Resolved argument sets. Entity references are primary keys by the time a
// proposal is encoded; execute functions trust them as-is.

type CreateCondominiumArgs struct {
	RUT          string `json:"rut"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	RegionID     int32  `json:"region_id"`
	CommuneID    int32  `json:"commune_id"`
	ContactEmail string `json:"contact_email"`
}

type CreateUserArgs struct {
	CondominiumID int32  `json:"condominium_id"`
	FirstNames    string `json:"first_names"`
	LastName      string `json:"last_name"`
	RUT           string `json:"rut"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Residence     string `json:"residence,omitempty"`
	Role          string `json:"role"`
}

type CreateMeetingArgs struct {
	CondominiumID int32   `json:"condominium_id"`
	Topic         string  `json:"topic"`
	ScheduledTs   int64   `json:"scheduled_ts"`
	Location      string  `json:"location"`
	Description   *string `json:"description,omitempty"`
}

type CreateIncidentArgs struct {
	CondominiumID int32  `json:"condominium_id"`
	CategoryID    int32  `json:"category_id"`
	ReporterID    int32  `json:"reporter_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
}

type CreateCategoryArgs struct {
	Name string `json:"name"`
}

type CreateSanctionArgs struct {
	CondominiumID     int32   `json:"condominium_id"`
	ReporterID        int32   `json:"reporter_id"`
	Type              string  `json:"type"`
	Reason            string  `json:"reason"`
	ReasonDetail      *string `json:"reason_detail,omitempty"`
	OffenderFirstName string  `json:"offender_first_name"`
	OffenderLastName  string  `json:"offender_last_name"`
	OffenderRUT       string  `json:"offender_rut"`
	ApartmentNumber   *string `json:"apartment_number,omitempty"`
	SanctionTs        int64   `json:"sanction_ts"`
	PaymentDueTs      *int64  `json:"payment_due_ts,omitempty"`
}

type CreateLogEntryArgs struct {
	IncidentID int32  `json:"incident_id"`
	Action     string `json:"action"`
	Detail     string `json:"detail"`
}
