package tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quilicura/micondominio/store"
)

func TestRecentSanctions_DayWindow(t *testing.T) {
	m := newMemStore()
	seedMemStore(m)
	now := time.Now().Unix()
	condoID := m.condos[0].ID

	m.sanctions = append(m.sanctions,
		&store.Sanction{
			ID: m.id(), CondominiumID: condoID, Type: store.SanctionTypeVerbal,
			Reason: "Ruidos molestos", OffenderFirstName: "Juan", OffenderLastName: "Pérez",
			SanctionTs: now, CondominiumName: m.condos[0].Name,
		},
		&store.Sanction{
			ID: m.id(), CondominiumID: condoID, Type: store.SanctionTypeWritten,
			Reason: "Mascota sin correa", OffenderFirstName: "Rosa", OffenderLastName: "Díaz",
			SanctionTs: time.Now().AddDate(0, 0, -40).Unix(), CondominiumName: m.condos[0].Name,
		},
	)

	tool := &RecentSanctionsTool{store: m}
	ctx := context.Background()

	t.Run("no window lists everything", func(t *testing.T) {
		result := tool.Run(ctx, nil, json.RawMessage(`{}`))
		require.Empty(t, result.Err)
		payload, ok := result.Payload.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 2, payload["total"])
	})

	t.Run("days window excludes old sanctions", func(t *testing.T) {
		result := tool.Run(ctx, nil, json.RawMessage(`{"days": 30}`))
		require.Empty(t, result.Err)
		payload, ok := result.Payload.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 1, payload["total"])
		rows, ok := payload["sanctions"].([]sanctionSummary)
		require.True(t, ok)
		require.Len(t, rows, 1)
		assert.Equal(t, "Ruidos molestos", rows[0].Reason)
	})

	t.Run("negative days is rejected", func(t *testing.T) {
		result := tool.Run(ctx, nil, json.RawMessage(`{"days": -7}`))
		assert.Contains(t, result.Err, "days")
	})
}
