package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quilicura/micondominio/store"
)

func TestProposeCreateCategory(t *testing.T) {
	m := newMemStore()
	seedMemStore(m)
	ctx := context.Background()
	tool := &ProposeCreateCategoryTool{store: m}

	t.Run("valid name yields a proposal and writes nothing", func(t *testing.T) {
		result := tool.Run(ctx, nil, json.RawMessage(`{"name": "Ascensores"}`))
		require.True(t, result.RequiresConfirmation())
		assert.Equal(t, ActionCreateCategory, result.Proposal.Action)
		assert.Contains(t, result.Proposal.Summary, "Ascensores")
		assert.Equal(t, 0, m.createCalls, "propose tools must never write")
	})

	t.Run("duplicate name is rejected case-insensitively", func(t *testing.T) {
		result := tool.Run(ctx, nil, json.RawMessage(`{"name": "seguridad"}`))
		require.False(t, result.RequiresConfirmation())
		assert.Contains(t, result.Err, "already exists")
	})
}

func TestProposeCreateSanction_FineRequiresDueDate(t *testing.T) {
	m := newMemStore()
	seedMemStore(m)
	ctx := context.Background()
	tool := &ProposeCreateSanctionTool{store: m}
	inv := &Invocation{Principal: &store.User{ID: 42}}

	base := map[string]any{
		"condominium":         "Los Aromos",
		"type":                "MULTA",
		"reason":              "Ruidos molestos",
		"offender_first_name": "María",
		"offender_last_name":  "Riquelme",
		"offender_rut":        "15.444.555-6",
	}

	t.Run("fine without due date is rejected", func(t *testing.T) {
		args, _ := json.Marshal(base)
		result := tool.Run(ctx, inv, args)
		require.False(t, result.RequiresConfirmation())
		assert.Contains(t, result.Err, "payment_due_date")
	})

	t.Run("fine with due date is proposed", func(t *testing.T) {
		withDue := map[string]any{}
		for k, v := range base {
			withDue[k] = v
		}
		withDue["payment_due_date"] = "2026-10-01"
		args, _ := json.Marshal(withDue)
		result := tool.Run(ctx, inv, args)
		require.True(t, result.RequiresConfirmation())

		var resolved CreateSanctionArgs
		require.NoError(t, json.Unmarshal(result.Proposal.Args, &resolved))
		assert.Equal(t, int32(42), resolved.ReporterID, "reporter is the principal, not a model value")
		require.NotNil(t, resolved.PaymentDueTs)
	})

	t.Run("verbal warning needs no due date", func(t *testing.T) {
		verbal := map[string]any{}
		for k, v := range base {
			verbal[k] = v
		}
		verbal["type"] = "VERBAL"
		args, _ := json.Marshal(verbal)
		result := tool.Run(ctx, inv, args)
		require.True(t, result.RequiresConfirmation())
	})

	t.Run("principal is mandatory", func(t *testing.T) {
		args, _ := json.Marshal(base)
		result := tool.Run(ctx, nil, args)
		require.False(t, result.RequiresConfirmation())
		assert.NotEmpty(t, result.Err)
	})
}

func TestProposeCreateIncident_ReporterIsPrincipal(t *testing.T) {
	m := newMemStore()
	seedMemStore(m)
	ctx := context.Background()
	tool := &ProposeCreateIncidentTool{store: m}
	inv := &Invocation{Principal: &store.User{ID: 7}}

	result := tool.Run(ctx, inv, json.RawMessage(`{
		"condominium": "Altos del Mar",
		"category": "Seguridad",
		"title": "Luminaria quemada",
		"description": "Pasillo torre B sin luz"
	}`))
	require.True(t, result.RequiresConfirmation())

	var resolved CreateIncidentArgs
	require.NoError(t, json.Unmarshal(result.Proposal.Args, &resolved))
	assert.Equal(t, int32(7), resolved.ReporterID)
	assert.Equal(t, string(store.IncidentPriorityMedium), resolved.Priority, "priority defaults to MEDIA")
	assert.Equal(t, 0, m.createCalls)
}

func TestProposeCreateUser_RoleValidation(t *testing.T) {
	m := newMemStore()
	seedMemStore(m)
	ctx := context.Background()
	tool := &ProposeCreateUserTool{store: m}

	result := tool.Run(ctx, nil, json.RawMessage(`{
		"first_names": "Ana",
		"last_name": "Vera",
		"rut": "17.888.999-0",
		"email": "ana.vera@example.cl",
		"condominium": "Los Aromos",
		"role": "CONSERJE"
	}`))
	require.False(t, result.RequiresConfirmation())
	assert.Contains(t, result.Err, "unknown role")
}

func TestProposeCreateMeeting_DateParsing(t *testing.T) {
	m := newMemStore()
	seedMemStore(m)
	ctx := context.Background()
	tool := &ProposeCreateMeetingTool{store: m}

	result := tool.Run(ctx, nil, json.RawMessage(`{
		"condominium": "Los Aromos",
		"topic": "Asamblea",
		"date": "mañana",
		"location": "Salón de eventos"
	}`))
	require.False(t, result.RequiresConfirmation())
	assert.Contains(t, result.Err, "invalid date")

	result = tool.Run(ctx, nil, json.RawMessage(`{
		"condominium": "Los Aromos",
		"topic": "Asamblea",
		"date": "2026-09-15 19:00",
		"location": "Salón de eventos"
	}`))
	require.True(t, result.RequiresConfirmation())
}

func TestProposeThenExecute_CreatesExactlyOneRow(t *testing.T) {
	m := newMemStore()
	seedMemStore(m)
	ctx := context.Background()
	registry := NewRegistry(m)

	tool, ok := registry.Get("propose_create_category")
	require.True(t, ok)
	result := tool.Run(ctx, nil, json.RawMessage(`{"name": "Jardines"}`))
	require.True(t, result.RequiresConfirmation())
	require.Equal(t, 0, m.createCalls)

	execute, ok := registry.Executor(result.Proposal.Action)
	require.True(t, ok)
	outcome := execute(ctx, &Invocation{}, result.Proposal.Args)
	require.Empty(t, outcome.Err)
	assert.Contains(t, outcome.Message, "Jardines")
	assert.Equal(t, 1, m.createCalls)

	categories, err := m.ListIncidentCategories(ctx, &store.FindIncidentCategory{NameEqual: strPtr("Jardines")})
	require.NoError(t, err)
	require.Len(t, categories, 1)
}

func strPtr(s string) *string { return &s }
