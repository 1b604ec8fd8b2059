// Package tools implements the assistant's tool catalog: read-only query
// tools, propose tools that validate a mutation and ask for confirmation,
// and execute functions that perform the confirmed write.
//
// Tools never raise domain failures as Go errors. Lookup misses, ambiguous
// name matches and bad arguments come back as structured error payloads so
// the dispatcher can hand them to the model and let it recover.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quilicura/micondominio/store"
)

// Invocation carries per-call context into a tool. It is built by the
// dispatcher for every call; tools never reach into globals for the caller.
type Invocation struct {
	// Principal is the authenticated staff user driving the conversation.
	// Nil unless the tool declares NeedsPrincipal.
	Principal *store.User
}

// Proposal is a validated mutation awaiting user confirmation. Args holds the
// fully resolved argument set for the matching execute function; entity
// references are already primary keys.
type Proposal struct {
	Action  string          `json:"action"`
	Args    json.RawMessage `json:"args"`
	Summary string          `json:"summary"`
}

// Result is the outcome of a single tool call. Exactly one of Payload, Err or
// Proposal is meaningful.
type Result struct {
	Payload  any
	Err      string
	Proposal *Proposal
}

// Success wraps a payload result.
func Success(payload any) *Result {
	return &Result{Payload: payload}
}

// Errorf builds a structured error result.
func Errorf(format string, args ...any) *Result {
	return &Result{Err: fmt.Sprintf(format, args...)}
}

// Confirm wraps a proposal result.
func Confirm(proposal *Proposal) *Result {
	return &Result{Proposal: proposal}
}

// RequiresConfirmation reports whether the result carries a pending proposal.
func (r *Result) RequiresConfirmation() bool {
	return r.Proposal != nil
}

// Render serializes the result for the model's tool-result message.
func (r *Result) Render() string {
	if r.Err != "" {
		out, _ := json.Marshal(map[string]string{"error": r.Err})
		return string(out)
	}
	if r.Proposal != nil {
		out, _ := json.Marshal(map[string]any{
			"requires_confirmation": true,
			"action":                r.Proposal.Action,
			"summary":               r.Proposal.Summary,
		})
		return string(out)
	}
	out, err := json.Marshal(r.Payload)
	if err != nil {
		return `{"error": "unserializable tool result"}`
	}
	return string(out)
}

// Tool is one named operation exposed to the model.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema for the tool's argument object.
	Parameters() string
	// NeedsPrincipal declares whether Run requires Invocation.Principal.
	NeedsPrincipal() bool
	Run(ctx context.Context, inv *Invocation, args json.RawMessage) *Result
}

// ExecuteResult is the outcome of a confirmed mutation.
type ExecuteResult struct {
	Message string
	ID      int32
	Err     string
}

// ExecuteFunc performs the single write behind a confirmed proposal. It is
// keyed by action identifier and is never visible to the model.
type ExecuteFunc func(ctx context.Context, inv *Invocation, args json.RawMessage) *ExecuteResult

// DomainStore is the slice of the store the tool catalog consumes.
// *store.Store satisfies it.
type DomainStore interface {
	ListRegions(ctx context.Context, find *store.FindRegion) ([]*store.Region, error)
	ListCommunes(ctx context.Context, find *store.FindCommune) ([]*store.Commune, error)
	CreateCondominium(ctx context.Context, create *store.Condominium) (*store.Condominium, error)
	ListCondominiums(ctx context.Context, find *store.FindCondominium) ([]*store.Condominium, error)
	CreateUser(ctx context.Context, create *store.User) (*store.User, error)
	ListUsers(ctx context.Context, find *store.FindUser) ([]*store.User, error)
	CreateIncidentCategory(ctx context.Context, create *store.IncidentCategory) (*store.IncidentCategory, error)
	ListIncidentCategories(ctx context.Context, find *store.FindIncidentCategory) ([]*store.IncidentCategory, error)
	CreateIncident(ctx context.Context, create *store.Incident) (*store.Incident, error)
	ListIncidents(ctx context.Context, find *store.FindIncident) ([]*store.Incident, error)
	CreateIncidentLog(ctx context.Context, create *store.IncidentLog) (*store.IncidentLog, error)
	ListIncidentLogs(ctx context.Context, find *store.FindIncidentLog) ([]*store.IncidentLog, error)
	CreateSanction(ctx context.Context, create *store.Sanction) (*store.Sanction, error)
	ListSanctions(ctx context.Context, find *store.FindSanction) ([]*store.Sanction, error)
	CreateMeeting(ctx context.Context, create *store.Meeting) (*store.Meeting, error)
	ListMeetings(ctx context.Context, find *store.FindMeeting) ([]*store.Meeting, error)
}
