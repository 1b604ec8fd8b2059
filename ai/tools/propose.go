package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/quilicura/micondominio/store"
)

// Propose tools validate a mutation request, resolve every entity reference
// to a primary key, and return a confirmation envelope. They never write.

func proposal(action string, resolvedArgs any, summary string) *Result {
	raw, err := json.Marshal(resolvedArgs)
	if err != nil {
		return Errorf("failed to encode proposal arguments: %v", err)
	}
	return Confirm(&Proposal{Action: action, Args: raw, Summary: summary})
}

// parseDate accepts "2006-01-02" and "2006-01-02 15:04" in local time.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or YYYY-MM-DD HH:MM", value)
}

// ProposeCreateCondominiumTool proposes registering a new condominium.
type ProposeCreateCondominiumTool struct {
	store DomainStore
}

func (t *ProposeCreateCondominiumTool) Name() string { return "propose_create_condominium" }

func (t *ProposeCreateCondominiumTool) Description() string {
	return "Propose registering a new condominium. The user must confirm before anything is written."
}

func (t *ProposeCreateCondominiumTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"rut": {"type": "string", "description": "Chilean RUT of the administration entity"},
			"address": {"type": "string"},
			"region": {"type": "string", "description": "Region name"},
			"commune": {"type": "string", "description": "Commune name, must belong to the region"},
			"contact_email": {"type": "string"}
		},
		"required": ["name", "rut", "address", "region", "commune", "contact_email"]
	}`
}

func (t *ProposeCreateCondominiumTool) NeedsPrincipal() bool { return false }

type proposeCondominiumInput struct {
	Name         string `json:"name"`
	RUT          string `json:"rut"`
	Address      string `json:"address"`
	Region       string `json:"region"`
	Commune      string `json:"commune"`
	ContactEmail string `json:"contact_email"`
}

func (t *ProposeCreateCondominiumTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input proposeCondominiumInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}
	if input.Name == "" || input.RUT == "" || input.Address == "" || input.ContactEmail == "" {
		return Errorf("name, rut, address and contact_email are required")
	}

	existing, err := t.store.ListCondominiums(ctx, &store.FindCondominium{NameLike: &input.Name})
	if err != nil {
		return Errorf("failed to check existing condominiums: %v", err)
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, input.Name) {
			return Errorf("a condominium named %q already exists", c.Name)
		}
	}

	region, errResult := resolveRegion(ctx, t.store, input.Region)
	if errResult != nil {
		return errResult
	}
	commune, errResult := resolveCommune(ctx, t.store, region.ID, input.Commune)
	if errResult != nil {
		return errResult
	}

	resolved := CreateCondominiumArgs{
		RUT:          input.RUT,
		Name:         input.Name,
		Address:      input.Address,
		RegionID:     region.ID,
		CommuneID:    commune.ID,
		ContactEmail: input.ContactEmail,
	}
	summary := fmt.Sprintf("¿Confirmas crear el condominio '%s' en %s, %s (%s)?",
		input.Name, input.Address, commune.Name, region.Name)
	return proposal(ActionCreateCondominium, resolved, summary)
}

// ProposeCreateUserTool proposes registering a resident or administrator.
type ProposeCreateUserTool struct {
	store DomainStore
}

func (t *ProposeCreateUserTool) Name() string { return "propose_create_user" }

func (t *ProposeCreateUserTool) Description() string {
	return "Propose registering a new user (resident or administrator) in a condominium. The user must confirm before anything is written."
}

func (t *ProposeCreateUserTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"first_names": {"type": "string"},
			"last_name": {"type": "string"},
			"rut": {"type": "string"},
			"email": {"type": "string"},
			"condominium": {"type": "string", "description": "Condominium name"},
			"role": {"type": "string", "enum": ["PROPIETARIO", "ARRENDATARIO", "ADMINISTRADOR"]},
			"phone": {"type": "string"},
			"residence": {"type": "string", "description": "Apartment or house number"}
		},
		"required": ["first_names", "last_name", "rut", "email", "condominium", "role"]
	}`
}

func (t *ProposeCreateUserTool) NeedsPrincipal() bool { return false }

type proposeUserInput struct {
	FirstNames  string `json:"first_names"`
	LastName    string `json:"last_name"`
	RUT         string `json:"rut"`
	Email       string `json:"email"`
	Condominium string `json:"condominium"`
	Role        string `json:"role"`
	Phone       string `json:"phone,omitempty"`
	Residence   string `json:"residence,omitempty"`
}

func (t *ProposeCreateUserTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input proposeUserInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}
	if input.FirstNames == "" || input.LastName == "" || input.RUT == "" || input.Email == "" {
		return Errorf("first_names, last_name, rut and email are required")
	}

	role := store.UserRole(input.Role)
	if role != store.UserRoleOwner && role != store.UserRoleTenant && role != store.UserRoleAdmin {
		return Errorf("unknown role %q; valid: PROPIETARIO, ARRENDATARIO, ADMINISTRADOR", input.Role)
	}

	condominium, errResult := resolveCondominium(ctx, t.store, input.Condominium)
	if errResult != nil {
		return errResult
	}

	resolved := CreateUserArgs{
		CondominiumID: condominium.ID,
		FirstNames:    input.FirstNames,
		LastName:      input.LastName,
		RUT:           input.RUT,
		Email:         input.Email,
		Phone:         input.Phone,
		Residence:     input.Residence,
		Role:          string(role),
	}
	summary := fmt.Sprintf("¿Confirmas registrar a %s %s (%s) como %s en '%s'?",
		input.FirstNames, input.LastName, input.RUT, role, condominium.Name)
	return proposal(ActionCreateUser, resolved, summary)
}

// ProposeCreateMeetingTool proposes scheduling a meeting.
type ProposeCreateMeetingTool struct {
	store DomainStore
}

func (t *ProposeCreateMeetingTool) Name() string { return "propose_create_meeting" }

func (t *ProposeCreateMeetingTool) Description() string {
	return "Propose scheduling a meeting for a condominium. The user must confirm before anything is written."
}

func (t *ProposeCreateMeetingTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"condominium": {"type": "string", "description": "Condominium name"},
			"topic": {"type": "string"},
			"date": {"type": "string", "description": "YYYY-MM-DD or YYYY-MM-DD HH:MM"},
			"location": {"type": "string"},
			"description": {"type": "string"}
		},
		"required": ["condominium", "topic", "date", "location"]
	}`
}

func (t *ProposeCreateMeetingTool) NeedsPrincipal() bool { return false }

type proposeMeetingInput struct {
	Condominium string `json:"condominium"`
	Topic       string `json:"topic"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
}

func (t *ProposeCreateMeetingTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input proposeMeetingInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}
	if input.Topic == "" || input.Location == "" {
		return Errorf("topic and location are required")
	}

	scheduled, err := parseDate(input.Date)
	if err != nil {
		return Errorf("%v", err)
	}

	condominium, errResult := resolveCondominium(ctx, t.store, input.Condominium)
	if errResult != nil {
		return errResult
	}

	resolved := CreateMeetingArgs{
		CondominiumID: condominium.ID,
		Topic:         input.Topic,
		ScheduledTs:   scheduled.Unix(),
		Location:      input.Location,
	}
	if input.Description != "" {
		resolved.Description = &input.Description
	}
	summary := fmt.Sprintf("¿Confirmas agendar la reunión '%s' en '%s' el %s en %s?",
		input.Topic, condominium.Name, scheduled.Format("2006-01-02 15:04"), input.Location)
	return proposal(ActionCreateMeeting, resolved, summary)
}

// ProposeCreateIncidentTool proposes reporting an incident. The reporter is
// always the calling principal, never a model-supplied value.
type ProposeCreateIncidentTool struct {
	store DomainStore
}

func (t *ProposeCreateIncidentTool) Name() string { return "propose_create_incident" }

func (t *ProposeCreateIncidentTool) Description() string {
	return "Propose reporting a new incident in a condominium. The reporter is the signed-in user. The user must confirm before anything is written."
}

func (t *ProposeCreateIncidentTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"condominium": {"type": "string", "description": "Condominium name"},
			"category": {"type": "string", "description": "Incident category name"},
			"title": {"type": "string"},
			"description": {"type": "string"},
			"priority": {"type": "string", "enum": ["BAJA", "MEDIA", "ALTA", "URGENTE"], "description": "Default MEDIA"}
		},
		"required": ["condominium", "category", "title", "description"]
	}`
}

func (t *ProposeCreateIncidentTool) NeedsPrincipal() bool { return true }

type proposeIncidentInput struct {
	Condominium string `json:"condominium"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
}

func (t *ProposeCreateIncidentTool) Run(ctx context.Context, inv *Invocation, args json.RawMessage) *Result {
	if inv == nil || inv.Principal == nil {
		return Errorf("no signed-in user to report the incident")
	}

	var input proposeIncidentInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}
	if input.Title == "" || input.Description == "" {
		return Errorf("title and description are required")
	}

	priority := store.IncidentPriorityMedium
	if input.Priority != "" {
		priority = store.IncidentPriority(input.Priority)
		if !validIncidentPriority(priority) {
			return Errorf("unknown priority %q; valid: %s", input.Priority, joinNames(incidentPriorityNames()))
		}
	}

	condominium, errResult := resolveCondominium(ctx, t.store, input.Condominium)
	if errResult != nil {
		return errResult
	}
	category, errResult := resolveCategory(ctx, t.store, input.Category)
	if errResult != nil {
		return errResult
	}

	resolved := CreateIncidentArgs{
		CondominiumID: condominium.ID,
		CategoryID:    category.ID,
		ReporterID:    inv.Principal.ID,
		Title:         input.Title,
		Description:   input.Description,
		Priority:      string(priority),
	}
	summary := fmt.Sprintf("¿Confirmas crear la incidencia '%s' (%s, prioridad %s) en '%s'?",
		input.Title, category.Name, priority, condominium.Name)
	return proposal(ActionCreateIncident, resolved, summary)
}

// ProposeCreateCategoryTool proposes adding an incident category.
type ProposeCreateCategoryTool struct {
	store DomainStore
}

func (t *ProposeCreateCategoryTool) Name() string { return "propose_create_category" }

func (t *ProposeCreateCategoryTool) Description() string {
	return "Propose adding a new incident category. The user must confirm before anything is written."
}

func (t *ProposeCreateCategoryTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"name": {"type": "string"}
		},
		"required": ["name"]
	}`
}

func (t *ProposeCreateCategoryTool) NeedsPrincipal() bool { return false }

type proposeCategoryInput struct {
	Name string `json:"name"`
}

func (t *ProposeCreateCategoryTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input proposeCategoryInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Errorf("name is required")
	}

	existing, err := t.store.ListIncidentCategories(ctx, &store.FindIncidentCategory{NameEqual: &name})
	if err != nil {
		return Errorf("failed to check existing categories: %v", err)
	}
	if len(existing) > 0 {
		return Errorf("category %q already exists", existing[0].Name)
	}

	resolved := CreateCategoryArgs{Name: name}
	summary := fmt.Sprintf("¿Confirmas crear la categoría de incidencias '%s'?", name)
	return proposal(ActionCreateCategory, resolved, summary)
}

// ProposeCreateSanctionTool proposes issuing a sanction. A fine (MULTA) must
// carry a payment due date.
type ProposeCreateSanctionTool struct {
	store DomainStore
}

func (t *ProposeCreateSanctionTool) Name() string { return "propose_create_sanction" }

func (t *ProposeCreateSanctionTool) Description() string {
	return "Propose issuing a sanction (VERBAL, ESCRITA, MULTA, SUSPENSION) against a resident. Fines require a payment due date. The user must confirm before anything is written."
}

func (t *ProposeCreateSanctionTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"condominium": {"type": "string", "description": "Condominium name"},
			"type": {"type": "string", "enum": ["VERBAL", "ESCRITA", "MULTA", "SUSPENSION"]},
			"reason": {"type": "string"},
			"reason_detail": {"type": "string"},
			"offender_first_name": {"type": "string"},
			"offender_last_name": {"type": "string"},
			"offender_rut": {"type": "string"},
			"apartment_number": {"type": "string"},
			"payment_due_date": {"type": "string", "description": "YYYY-MM-DD, required for MULTA"}
		},
		"required": ["condominium", "type", "reason", "offender_first_name", "offender_last_name", "offender_rut"]
	}`
}

func (t *ProposeCreateSanctionTool) NeedsPrincipal() bool { return true }

type proposeSanctionInput struct {
	Condominium       string `json:"condominium"`
	Type              string `json:"type"`
	Reason            string `json:"reason"`
	ReasonDetail      string `json:"reason_detail,omitempty"`
	OffenderFirstName string `json:"offender_first_name"`
	OffenderLastName  string `json:"offender_last_name"`
	OffenderRUT       string `json:"offender_rut"`
	ApartmentNumber   string `json:"apartment_number,omitempty"`
	PaymentDueDate    string `json:"payment_due_date,omitempty"`
}

func (t *ProposeCreateSanctionTool) Run(ctx context.Context, inv *Invocation, args json.RawMessage) *Result {
	if inv == nil || inv.Principal == nil {
		return Errorf("no signed-in user to issue the sanction")
	}

	var input proposeSanctionInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}
	if input.Reason == "" || input.OffenderFirstName == "" || input.OffenderLastName == "" || input.OffenderRUT == "" {
		return Errorf("reason, offender_first_name, offender_last_name and offender_rut are required")
	}

	sanctionType := store.SanctionType(input.Type)
	valid := false
	for _, st := range store.SanctionTypes {
		if sanctionType == st {
			valid = true
			break
		}
	}
	if !valid {
		return Errorf("unknown sanction type %q; valid: VERBAL, ESCRITA, MULTA, SUSPENSION", input.Type)
	}

	var paymentDueTs *int64
	if sanctionType == store.SanctionTypeFine {
		if input.PaymentDueDate == "" {
			return Errorf("a fine (MULTA) requires payment_due_date")
		}
		due, err := parseDate(input.PaymentDueDate)
		if err != nil {
			return Errorf("%v", err)
		}
		ts := due.Unix()
		paymentDueTs = &ts
	} else if input.PaymentDueDate != "" {
		due, err := parseDate(input.PaymentDueDate)
		if err != nil {
			return Errorf("%v", err)
		}
		ts := due.Unix()
		paymentDueTs = &ts
	}

	condominium, errResult := resolveCondominium(ctx, t.store, input.Condominium)
	if errResult != nil {
		return errResult
	}

	resolved := CreateSanctionArgs{
		CondominiumID:     condominium.ID,
		ReporterID:        inv.Principal.ID,
		Type:              string(sanctionType),
		Reason:            input.Reason,
		OffenderFirstName: input.OffenderFirstName,
		OffenderLastName:  input.OffenderLastName,
		OffenderRUT:       input.OffenderRUT,
		SanctionTs:        time.Now().Unix(),
		PaymentDueTs:      paymentDueTs,
	}
	if input.ReasonDetail != "" {
		resolved.ReasonDetail = &input.ReasonDetail
	}
	if input.ApartmentNumber != "" {
		resolved.ApartmentNumber = &input.ApartmentNumber
	}

	summary := fmt.Sprintf("¿Confirmas registrar una amonestación %s contra %s %s (%s) en '%s' por '%s'?",
		sanctionType, input.OffenderFirstName, input.OffenderLastName, input.OffenderRUT,
		condominium.Name, input.Reason)
	return proposal(ActionCreateSanction, resolved, summary)
}

// ProposeCreateLogEntryTool proposes appending a follow-up entry to an
// incident's log.
type ProposeCreateLogEntryTool struct {
	store DomainStore
}

func (t *ProposeCreateLogEntryTool) Name() string { return "propose_create_log_entry" }

func (t *ProposeCreateLogEntryTool) Description() string {
	return "Propose appending a follow-up entry (bitácora) to an incident. The user must confirm before anything is written."
}

func (t *ProposeCreateLogEntryTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"incident_id": {"type": "integer"},
			"action": {"type": "string", "description": "Short action label, e.g. 'Visita técnica'"},
			"detail": {"type": "string"}
		},
		"required": ["incident_id", "action", "detail"]
	}`
}

func (t *ProposeCreateLogEntryTool) NeedsPrincipal() bool { return false }

type proposeLogEntryInput struct {
	IncidentID int32  `json:"incident_id"`
	Action     string `json:"action"`
	Detail     string `json:"detail"`
}

func (t *ProposeCreateLogEntryTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input proposeLogEntryInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}
	if input.IncidentID == 0 || input.Action == "" || input.Detail == "" {
		return Errorf("incident_id, action and detail are required")
	}

	incidents, err := t.store.ListIncidents(ctx, &store.FindIncident{ID: &input.IncidentID})
	if err != nil {
		return Errorf("failed to look up incident: %v", err)
	}
	if len(incidents) == 0 {
		return Errorf("incident %d not found", input.IncidentID)
	}
	incident := incidents[0]

	resolved := CreateLogEntryArgs{
		IncidentID: incident.ID,
		Action:     input.Action,
		Detail:     input.Detail,
	}
	summary := fmt.Sprintf("¿Confirmas agregar la entrada '%s' a la bitácora de la incidencia #%d '%s'?",
		input.Action, incident.ID, incident.Title)
	return proposal(ActionCreateLogEntry, resolved, summary)
}
