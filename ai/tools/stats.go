package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/quilicura/micondominio/store"
)

const (
	// Page cap for the recent-sanctions listing.
	recentSanctionsPageSize = 15

	// Default analysis window for incident trends.
	defaultTrendDays = 30
)

// DashboardStatsTool returns the aggregate counters behind the dashboard.
type DashboardStatsTool struct {
	store DomainStore
}

func (t *DashboardStatsTool) Name() string { return "get_dashboard_stats" }

func (t *DashboardStatsTool) Description() string {
	return "Aggregate counters: condominiums, registered users, incidents by status, total sanctions and upcoming meetings."
}

func (t *DashboardStatsTool) Parameters() string {
	return `{"type": "object", "properties": {}}`
}

func (t *DashboardStatsTool) NeedsPrincipal() bool { return false }

func (t *DashboardStatsTool) Run(ctx context.Context, _ *Invocation, _ json.RawMessage) *Result {
	condominiums, err := t.store.ListCondominiums(ctx, &store.FindCondominium{})
	if err != nil {
		return Errorf("failed to count condominiums: %v", err)
	}
	users, err := t.store.ListUsers(ctx, &store.FindUser{})
	if err != nil {
		return Errorf("failed to count users: %v", err)
	}
	incidents, err := t.store.ListIncidents(ctx, &store.FindIncident{})
	if err != nil {
		return Errorf("failed to count incidents: %v", err)
	}
	sanctions, err := t.store.ListSanctions(ctx, &store.FindSanction{})
	if err != nil {
		return Errorf("failed to count sanctions: %v", err)
	}
	meetings, err := t.store.ListMeetings(ctx, &store.FindMeeting{})
	if err != nil {
		return Errorf("failed to count meetings: %v", err)
	}

	byStatus := map[string]int{}
	open := 0
	for _, incident := range incidents {
		byStatus[string(incident.Status)]++
		if incident.Status == store.IncidentStatusPending || incident.Status == store.IncidentStatusInProgress {
			open++
		}
	}

	upcoming := 0
	now := time.Now().Unix()
	for _, meeting := range meetings {
		if meeting.Status == store.MeetingStatusScheduled && meeting.ScheduledTs >= now {
			upcoming++
		}
	}

	return Success(map[string]any{
		"condominiums":        len(condominiums),
		"users":               len(users),
		"incidents_total":     len(incidents),
		"incidents_open":      open,
		"incidents_by_status": byStatus,
		"sanctions":           len(sanctions),
		"upcoming_meetings":   upcoming,
	})
}

// IncidentTrendsTool aggregates recent incidents by category and priority.
type IncidentTrendsTool struct {
	store DomainStore
}

func (t *IncidentTrendsTool) Name() string { return "analyze_incident_trends" }

func (t *IncidentTrendsTool) Description() string {
	return "Aggregate incidents reported in the last N days (default 30) by category and priority."
}

func (t *IncidentTrendsTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"days": {"type": "integer", "description": "Analysis window in days, default 30"}
		}
	}`
}

func (t *IncidentTrendsTool) NeedsPrincipal() bool { return false }

type incidentTrendsInput struct {
	Days int `json:"days,omitempty"`
}

func (t *IncidentTrendsTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input incidentTrendsInput
	if len(args) > 0 {
		if err := json.Unmarshal(args, &input); err != nil {
			return Errorf("invalid arguments: %v", err)
		}
	}
	days := input.Days
	if days <= 0 {
		days = defaultTrendDays
	}

	since := time.Now().AddDate(0, 0, -days).Unix()
	incidents, err := t.store.ListIncidents(ctx, &store.FindIncident{ReportedAfterTs: &since})
	if err != nil {
		return Errorf("failed to list incidents: %v", err)
	}

	byCategory := map[string]int{}
	byPriority := map[string]int{}
	byCondominium := map[string]int{}
	for _, incident := range incidents {
		byCategory[incident.CategoryName]++
		byPriority[string(incident.Priority)]++
		byCondominium[incident.CondominiumName]++
	}

	return Success(map[string]any{
		"window_days":    days,
		"total":          len(incidents),
		"by_category":    byCategory,
		"by_priority":    byPriority,
		"by_condominium": byCondominium,
	})
}

// CondominiumIncidentStatsTool breaks down one condominium's incidents.
type CondominiumIncidentStatsTool struct {
	store DomainStore
}

func (t *CondominiumIncidentStatsTool) Name() string { return "get_condominium_incident_stats" }

func (t *CondominiumIncidentStatsTool) Description() string {
	return "Incident counts by status and priority for a single condominium, resolved by name."
}

func (t *CondominiumIncidentStatsTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"condominium": {"type": "string", "description": "Condominium name or fragment"}
		},
		"required": ["condominium"]
	}`
}

func (t *CondominiumIncidentStatsTool) NeedsPrincipal() bool { return false }

type condominiumStatsInput struct {
	Condominium string `json:"condominium"`
}

func (t *CondominiumIncidentStatsTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input condominiumStatsInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}

	condominium, errResult := resolveCondominium(ctx, t.store, input.Condominium)
	if errResult != nil {
		return errResult
	}

	incidents, err := t.store.ListIncidents(ctx, &store.FindIncident{CondominiumID: &condominium.ID})
	if err != nil {
		return Errorf("failed to list incidents: %v", err)
	}

	byStatus := map[string]int{}
	byPriority := map[string]int{}
	for _, incident := range incidents {
		byStatus[string(incident.Status)]++
		byPriority[string(incident.Priority)]++
	}

	return Success(map[string]any{
		"condominium": condominium.Name,
		"total":       len(incidents),
		"by_status":   byStatus,
		"by_priority": byPriority,
	})
}

// RecentSanctionsTool lists the latest sanctions.
type RecentSanctionsTool struct {
	store DomainStore
}

func (t *RecentSanctionsTool) Name() string { return "get_recent_sanctions" }

func (t *RecentSanctionsTool) Description() string {
	return "List the most recent sanctions, newest first. Optionally filter by condominium name and restrict to the last N days."
}

func (t *RecentSanctionsTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"condominium": {"type": "string", "description": "Condominium name or fragment to filter by"},
			"days": {"type": "integer", "description": "Only include sanctions issued within the last N days"}
		}
	}`
}

func (t *RecentSanctionsTool) NeedsPrincipal() bool { return false }

type recentSanctionsInput struct {
	Condominium string `json:"condominium,omitempty"`
	Days        int    `json:"days,omitempty"`
}

type sanctionSummary struct {
	ID          int32  `json:"id"`
	Type        string `json:"type"`
	Reason      string `json:"reason"`
	Offender    string `json:"offender"`
	Condominium string `json:"condominium"`
	Reporter    string `json:"reporter"`
	Date        string `json:"date"`
}

func (t *RecentSanctionsTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input recentSanctionsInput
	if len(args) > 0 {
		if err := json.Unmarshal(args, &input); err != nil {
			return Errorf("invalid arguments: %v", err)
		}
	}

	find := &store.FindSanction{}
	if input.Condominium != "" {
		condominium, errResult := resolveCondominium(ctx, t.store, input.Condominium)
		if errResult != nil {
			return errResult
		}
		find.CondominiumID = &condominium.ID
	}
	if input.Days < 0 {
		return Errorf("days must be a positive number")
	}
	if input.Days > 0 {
		after := time.Now().AddDate(0, 0, -input.Days).Unix()
		find.SanctionAfterTs = &after
	}

	sanctions, err := t.store.ListSanctions(ctx, find)
	if err != nil {
		return Errorf("failed to list sanctions: %v", err)
	}

	total := len(sanctions)
	if len(sanctions) > recentSanctionsPageSize {
		sanctions = sanctions[:recentSanctionsPageSize]
	}
	rows := make([]sanctionSummary, len(sanctions))
	for i, sanction := range sanctions {
		rows[i] = sanctionSummary{
			ID:          sanction.ID,
			Type:        string(sanction.Type),
			Reason:      sanction.Reason,
			Offender:    sanction.OffenderFirstName + " " + sanction.OffenderLastName,
			Condominium: sanction.CondominiumName,
			Reporter:    sanction.ReporterName,
			Date:        time.Unix(sanction.SanctionTs, 0).Format("2006-01-02"),
		}
	}

	return Success(map[string]any{
		"total":     total,
		"shown":     len(rows),
		"sanctions": rows,
	})
}
