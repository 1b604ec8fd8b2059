package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quilicura/micondominio/internal/profile"
	"github.com/quilicura/micondominio/internal/version"
	"github.com/quilicura/micondominio/store"
)

func newTestDB(t *testing.T) store.Driver {
	return newTestDBWithMode(t, "dev")
}

func newTestDBWithMode(t *testing.T, mode string) store.Driver {
	t.Helper()
	driver, err := NewDB(&profile.Profile{
		Mode:   mode,
		DSN:    filepath.Join(t.TempDir(), "test.db"),
		Driver: "sqlite",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = driver.Close() })
	require.NoError(t, driver.Migrate(context.Background()))
	return driver
}

func TestMigrateIsIdempotent(t *testing.T) {
	driver := newTestDB(t)
	require.NoError(t, driver.Migrate(context.Background()))
}

func TestMigrateVersionGate(t *testing.T) {
	ctx := context.Background()
	tableExists := func(t *testing.T, driver store.Driver, table string) bool {
		t.Helper()
		var name string
		err := driver.GetDB().QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err == sql.ErrNoRows {
			return false
		}
		require.NoError(t, err)
		return true
	}

	t.Run("records the applied version", func(t *testing.T) {
		driver := newTestDB(t)
		var recorded string
		require.NoError(t, driver.GetDB().QueryRowContext(ctx, "SELECT version FROM migration_history").Scan(&recorded))
		assert.Equal(t, version.GetCurrentVersion("dev"), recorded)
	})

	t.Run("prod skips an already applied version", func(t *testing.T) {
		driver := newTestDBWithMode(t, "prod")
		_, err := driver.GetDB().ExecContext(ctx, "DROP TABLE meeting")
		require.NoError(t, err)

		require.NoError(t, driver.Migrate(ctx))
		assert.False(t, tableExists(t, driver, "meeting"))
	})

	t.Run("dev reapplies the schema", func(t *testing.T) {
		driver := newTestDB(t)
		_, err := driver.GetDB().ExecContext(ctx, "DROP TABLE meeting")
		require.NoError(t, err)

		require.NoError(t, driver.Migrate(ctx))
		assert.True(t, tableExists(t, driver, "meeting"))
	})
}

func TestDomainRoundTrip(t *testing.T) {
	driver := newTestDB(t)
	ctx := context.Background()
	now := time.Now().Unix()

	region, err := driver.CreateRegion(ctx, &store.Region{Code: "RM", Name: "Región Metropolitana", CreatedTs: now, UpdatedTs: now})
	require.NoError(t, err)
	require.NotZero(t, region.ID)

	commune, err := driver.CreateCommune(ctx, &store.Commune{RegionID: region.ID, Name: "Quilicura", CreatedTs: now, UpdatedTs: now})
	require.NoError(t, err)

	condominium, err := driver.CreateCondominium(ctx, &store.Condominium{
		RUT:          "76.123.456-7",
		Name:         "Los Aromos",
		Address:      "Av. Las Torres 1250",
		RegionID:     region.ID,
		CommuneID:    commune.ID,
		ContactEmail: "admin@losaromos.cl",
		CreatedTs:    now,
		UpdatedTs:    now,
	})
	require.NoError(t, err)

	t.Run("list joins region and commune names", func(t *testing.T) {
		fragment := "aromos"
		list, err := driver.ListCondominiums(ctx, &store.FindCondominium{NameLike: &fragment})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Región Metropolitana", list[0].RegionName)
		assert.Equal(t, "Quilicura", list[0].CommuneName)
	})

	user, err := driver.CreateUser(ctx, &store.User{
		CondominiumID: condominium.ID,
		FirstNames:    "Pedro",
		LastName:      "Soto",
		RUT:           "14.222.333-4",
		Email:         "pedro.soto@example.cl",
		PasswordHash:  "x",
		Role:          store.UserRoleOwner,
		AccountStatus: store.AccountStatusActive,
		CreatedTs:     now,
		UpdatedTs:     now,
	})
	require.NoError(t, err)

	t.Run("user email lookup is case-insensitive", func(t *testing.T) {
		email := "PEDRO.SOTO@example.cl"
		list, err := driver.ListUsers(ctx, &store.FindUser{Email: &email})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, user.ID, list[0].ID)
		assert.Equal(t, "Los Aromos", list[0].CondominiumName)
	})

	category, err := driver.CreateIncidentCategory(ctx, &store.IncidentCategory{Name: "Mantención", CreatedTs: now})
	require.NoError(t, err)

	t.Run("category exact match ignores case", func(t *testing.T) {
		name := "mantención"
		list, err := driver.ListIncidentCategories(ctx, &store.FindIncidentCategory{NameEqual: &name})
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	incident, err := driver.CreateIncident(ctx, &store.Incident{
		CondominiumID: condominium.ID,
		CategoryID:    category.ID,
		ReporterID:    user.ID,
		Title:         "Filtración en estacionamiento",
		Description:   "Muro norte nivel -1",
		Status:        store.IncidentStatusPending,
		Priority:      store.IncidentPriorityHigh,
		ReportedTs:    now,
		CreatedTs:     now,
		UpdatedTs:     now,
	})
	require.NoError(t, err)

	t.Run("incident filters", func(t *testing.T) {
		term := "filtración"
		list, err := driver.ListIncidents(ctx, &store.FindIncident{SearchTerm: &term})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Pedro Soto", list[0].ReporterName)
		assert.Equal(t, "Mantención", list[0].CategoryName)

		excluded, err := driver.ListIncidents(ctx, &store.FindIncident{
			ExcludeStatuses: []store.IncidentStatus{store.IncidentStatusPending},
		})
		require.NoError(t, err)
		assert.Empty(t, excluded)
	})

	t.Run("incident log", func(t *testing.T) {
		_, err := driver.CreateIncidentLog(ctx, &store.IncidentLog{
			IncidentID: incident.ID,
			Action:     "derivación",
			Detail:     "Caso derivado a mantención.",
			CreatedTs:  now,
		})
		require.NoError(t, err)

		logs, err := driver.ListIncidentLogs(ctx, &store.FindIncidentLog{IncidentID: &incident.ID})
		require.NoError(t, err)
		require.Len(t, logs, 1)
	})
}

func TestChatRoundTrip(t *testing.T) {
	driver := newTestDB(t)
	ctx := context.Background()
	now := time.Now().Unix()

	region, err := driver.CreateRegion(ctx, &store.Region{Code: "RM", Name: "Región Metropolitana", CreatedTs: now, UpdatedTs: now})
	require.NoError(t, err)
	commune, err := driver.CreateCommune(ctx, &store.Commune{RegionID: region.ID, Name: "Santiago", CreatedTs: now, UpdatedTs: now})
	require.NoError(t, err)
	condominium, err := driver.CreateCondominium(ctx, &store.Condominium{
		RUT: "1-9", Name: "Central", Address: "Calle 1", RegionID: region.ID, CommuneID: commune.ID,
		ContactEmail: "a@b.cl", CreatedTs: now, UpdatedTs: now,
	})
	require.NoError(t, err)
	user, err := driver.CreateUser(ctx, &store.User{
		CondominiumID: condominium.ID, FirstNames: "Ana", LastName: "Vera", RUT: "1-9",
		Email: "ana@b.cl", PasswordHash: "x", Role: store.UserRoleAdmin,
		AccountStatus: store.AccountStatusActive, CreatedTs: now, UpdatedTs: now,
	})
	require.NoError(t, err)

	session, err := driver.CreateChatSession(ctx, &store.ChatSession{
		UID: "abc123", UserID: user.ID, Title: "Chat 1", Active: true, CreatedTs: now, UpdatedTs: now,
	})
	require.NoError(t, err)

	t.Run("active filter", func(t *testing.T) {
		active := true
		list, err := driver.ListChatSessions(ctx, &store.FindChatSession{UserID: &user.ID, Active: &active})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, list[0].Active)
	})

	t.Run("pending action survives the round trip", func(t *testing.T) {
		pending := json.RawMessage(`{"action":"create_category","args":{"name":"Jardines"},"summary":"¿Confirmas?"}`)
		tokens := int32(15)
		_, err := driver.CreateChatMessage(ctx, &store.ChatMessage{
			SessionID:     session.ID,
			Role:          store.MessageRoleAssistant,
			Content:       "¿Confirmas crear la categoría 'Jardines'?",
			TokensUsed:    &tokens,
			PendingAction: pending,
			CreatedTs:     now,
		})
		require.NoError(t, err)

		messages, err := driver.ListChatMessages(ctx, &store.FindChatMessage{SessionID: &session.ID})
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.JSONEq(t, string(pending), string(messages[0].PendingAction))
		require.NotNil(t, messages[0].TokensUsed)
		assert.Equal(t, int32(15), *messages[0].TokensUsed)
	})

	t.Run("deactivate", func(t *testing.T) {
		inactive := false
		later := now + 10
		updated, err := driver.UpdateChatSession(ctx, &store.UpdateChatSession{
			ID: session.ID, Active: &inactive, UpdatedTs: &later,
		})
		require.NoError(t, err)
		assert.False(t, updated.Active)
		assert.Equal(t, later, updated.UpdatedTs)
	})
}
