package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/quilicura/micondominio/store"
)

const (
	// Page cap for the open-incident listing.
	openIncidentsPageSize = 20

	// Default and maximum result counts for searches and detailed listings.
	defaultListLimit = 10
	maxListLimit     = 50
)

// closedIncidentStatuses are excluded when listing what is still actionable.
var closedIncidentStatuses = []store.IncidentStatus{
	store.IncidentStatusResolved,
	store.IncidentStatusClosed,
	store.IncidentStatusCancelled,
}

type incidentSummary struct {
	ID          int32  `json:"id"`
	Title       string `json:"title"`
	Condominium string `json:"condominium"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Reporter    string `json:"reporter"`
	ReportedAt  string `json:"reported_at"`
}

func summarizeIncident(i *store.Incident) incidentSummary {
	return incidentSummary{
		ID:          i.ID,
		Title:       i.Title,
		Condominium: i.CondominiumName,
		Category:    i.CategoryName,
		Status:      string(i.Status),
		Priority:    string(i.Priority),
		Reporter:    i.ReporterName,
		ReportedAt:  time.Unix(i.ReportedTs, 0).Format("2006-01-02 15:04"),
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// ListOpenIncidentsTool lists incidents that are still actionable.
type ListOpenIncidentsTool struct {
	store DomainStore
}

func (t *ListOpenIncidentsTool) Name() string { return "list_open_incidents" }

func (t *ListOpenIncidentsTool) Description() string {
	return "List incidents that are not yet resolved, closed or cancelled, newest first. Optionally filter by condominium name."
}

func (t *ListOpenIncidentsTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"condominium": {"type": "string", "description": "Condominium name or fragment to filter by"}
		}
	}`
}

func (t *ListOpenIncidentsTool) NeedsPrincipal() bool { return false }

type listOpenIncidentsInput struct {
	Condominium string `json:"condominium,omitempty"`
}

func (t *ListOpenIncidentsTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input listOpenIncidentsInput
	if len(args) > 0 {
		if err := json.Unmarshal(args, &input); err != nil {
			return Errorf("invalid arguments: %v", err)
		}
	}

	find := &store.FindIncident{ExcludeStatuses: closedIncidentStatuses}
	if input.Condominium != "" {
		condominium, errResult := resolveCondominium(ctx, t.store, input.Condominium)
		if errResult != nil {
			return errResult
		}
		find.CondominiumID = &condominium.ID
	}

	incidents, err := t.store.ListIncidents(ctx, find)
	if err != nil {
		return Errorf("failed to list incidents: %v", err)
	}

	total := len(incidents)
	if len(incidents) > openIncidentsPageSize {
		incidents = incidents[:openIncidentsPageSize]
	}
	rows := make([]incidentSummary, len(incidents))
	for i, incident := range incidents {
		rows[i] = summarizeIncident(incident)
	}

	return Success(map[string]any{
		"total":     total,
		"shown":     len(rows),
		"incidents": rows,
	})
}

// SearchIncidentsTool searches incidents by substring on title/description.
type SearchIncidentsTool struct {
	store DomainStore
}

func (t *SearchIncidentsTool) Name() string { return "search_incidents" }

func (t *SearchIncidentsTool) Description() string {
	return "Search incidents whose title or description contains the given text, newest first."
}

func (t *SearchIncidentsTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "Text to search for"},
			"limit": {"type": "integer", "description": "Max results, default 10, max 50"}
		},
		"required": ["query"]
	}`
}

func (t *SearchIncidentsTool) NeedsPrincipal() bool { return false }

type searchIncidentsInput struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

func (t *SearchIncidentsTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input searchIncidentsInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}
	if input.Query == "" {
		return Errorf("query is required")
	}

	limit := clampLimit(input.Limit)
	incidents, err := t.store.ListIncidents(ctx, &store.FindIncident{
		SearchTerm: &input.Query,
		Limit:      &limit,
	})
	if err != nil {
		return Errorf("failed to search incidents: %v", err)
	}

	rows := make([]incidentSummary, len(incidents))
	for i, incident := range incidents {
		rows[i] = summarizeIncident(incident)
	}
	return Success(map[string]any{
		"query":     input.Query,
		"count":     len(rows),
		"incidents": rows,
	})
}

// ListIncidentsDetailedTool lists incidents with full detail and filters.
type ListIncidentsDetailedTool struct {
	store DomainStore
}

func (t *ListIncidentsDetailedTool) Name() string { return "list_incidents_detailed" }

func (t *ListIncidentsDetailedTool) Description() string {
	return "List incidents with full details. Filter by condominium, status (PENDIENTE, EN_PROCESO, RESUELTA, CERRADA, CANCELADA) and priority (BAJA, MEDIA, ALTA, URGENTE)."
}

func (t *ListIncidentsDetailedTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"condominium": {"type": "string", "description": "Condominium name or fragment"},
			"status": {"type": "string", "enum": ["PENDIENTE", "EN_PROCESO", "RESUELTA", "CERRADA", "CANCELADA"]},
			"priority": {"type": "string", "enum": ["BAJA", "MEDIA", "ALTA", "URGENTE"]},
			"limit": {"type": "integer", "description": "Max results, default 10, max 50"}
		}
	}`
}

func (t *ListIncidentsDetailedTool) NeedsPrincipal() bool { return false }

type listIncidentsDetailedInput struct {
	Condominium string `json:"condominium,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

type incidentDetail struct {
	incidentSummary
	Description string  `json:"description"`
	Address     *string `json:"address,omitempty"`
}

func (t *ListIncidentsDetailedTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input listIncidentsDetailedInput
	if len(args) > 0 {
		if err := json.Unmarshal(args, &input); err != nil {
			return Errorf("invalid arguments: %v", err)
		}
	}

	limit := clampLimit(input.Limit)
	find := &store.FindIncident{Limit: &limit}

	if input.Condominium != "" {
		condominium, errResult := resolveCondominium(ctx, t.store, input.Condominium)
		if errResult != nil {
			return errResult
		}
		find.CondominiumID = &condominium.ID
	}
	if input.Status != "" {
		status := store.IncidentStatus(input.Status)
		if !validIncidentStatus(status) {
			return Errorf("unknown status %q; valid: %s", input.Status, joinNames(incidentStatusNames()))
		}
		find.Status = &status
	}
	if input.Priority != "" {
		priority := store.IncidentPriority(input.Priority)
		if !validIncidentPriority(priority) {
			return Errorf("unknown priority %q; valid: %s", input.Priority, joinNames(incidentPriorityNames()))
		}
		find.Priority = &priority
	}

	incidents, err := t.store.ListIncidents(ctx, find)
	if err != nil {
		return Errorf("failed to list incidents: %v", err)
	}

	rows := make([]incidentDetail, len(incidents))
	for i, incident := range incidents {
		rows[i] = incidentDetail{
			incidentSummary: summarizeIncident(incident),
			Description:     incident.Description,
			Address:         incident.Address,
		}
	}
	return Success(map[string]any{
		"count":     len(rows),
		"incidents": rows,
	})
}

// RecommendIncidentSolutionTool surfaces how similar incidents were resolved.
type RecommendIncidentSolutionTool struct {
	store DomainStore
}

func (t *RecommendIncidentSolutionTool) Name() string { return "recommend_incident_solution" }

func (t *RecommendIncidentSolutionTool) Description() string {
	return "For a given incident, show its follow-up log and how resolved incidents in the same category were handled, as raw material for a recommendation."
}

func (t *RecommendIncidentSolutionTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"incident_id": {"type": "integer", "description": "Incident ID"}
		},
		"required": ["incident_id"]
	}`
}

func (t *RecommendIncidentSolutionTool) NeedsPrincipal() bool { return false }

type recommendSolutionInput struct {
	IncidentID int32 `json:"incident_id"`
}

func (t *RecommendIncidentSolutionTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input recommendSolutionInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}
	if input.IncidentID == 0 {
		return Errorf("incident_id is required")
	}

	incidents, err := t.store.ListIncidents(ctx, &store.FindIncident{ID: &input.IncidentID})
	if err != nil {
		return Errorf("failed to look up incident: %v", err)
	}
	if len(incidents) == 0 {
		return Errorf("incident %d not found", input.IncidentID)
	}
	incident := incidents[0]

	logs, err := t.store.ListIncidentLogs(ctx, &store.FindIncidentLog{IncidentID: &incident.ID})
	if err != nil {
		return Errorf("failed to load incident log: %v", err)
	}
	logRows := make([]map[string]string, len(logs))
	for i, entry := range logs {
		logRows[i] = map[string]string{
			"action": entry.Action,
			"detail": entry.Detail,
			"at":     time.Unix(entry.CreatedTs, 0).Format("2006-01-02 15:04"),
		}
	}

	resolved := store.IncidentStatusResolved
	limit := defaultListLimit
	similar, err := t.store.ListIncidents(ctx, &store.FindIncident{
		CategoryID: &incident.CategoryID,
		Status:     &resolved,
		Limit:      &limit,
	})
	if err != nil {
		return Errorf("failed to load similar incidents: %v", err)
	}
	similarRows := make([]incidentSummary, 0, len(similar))
	for _, s := range similar {
		if s.ID == incident.ID {
			continue
		}
		similarRows = append(similarRows, summarizeIncident(s))
	}

	return Success(map[string]any{
		"incident":         summarizeIncident(incident),
		"description":      incident.Description,
		"log":              logRows,
		"similar_resolved": similarRows,
	})
}

func validIncidentStatus(s store.IncidentStatus) bool {
	for _, status := range store.IncidentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func validIncidentPriority(p store.IncidentPriority) bool {
	for _, priority := range store.IncidentPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

func incidentStatusNames() []string {
	names := make([]string, len(store.IncidentStatuses))
	for i, s := range store.IncidentStatuses {
		names[i] = string(s)
	}
	return names
}

func incidentPriorityNames() []string {
	names := make([]string, len(store.IncidentPriorities))
	for i, p := range store.IncidentPriorities {
		names[i] = string(p)
	}
	return names
}
