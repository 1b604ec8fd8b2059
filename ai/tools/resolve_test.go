package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quilicura/micondominio/store"
)

func TestResolveCondominium(t *testing.T) {
	m := newMemStore()
	seedMemStore(m)
	ctx := context.Background()

	t.Run("fragment resolves single match", func(t *testing.T) {
		condominium, errResult := resolveCondominium(ctx, m, "aromos")
		require.Nil(t, errResult)
		assert.Equal(t, "Los Aromos", condominium.Name)
	})

	t.Run("no match lists available names", func(t *testing.T) {
		_, errResult := resolveCondominium(ctx, m, "Las Encinas")
		require.NotNil(t, errResult)
		assert.Contains(t, errResult.Err, "Los Aromos")
		assert.Contains(t, errResult.Err, "Altos del Mar")
	})

	t.Run("ambiguous fragment enumerates matches", func(t *testing.T) {
		_, errResult := resolveCondominium(ctx, m, "os")
		require.NotNil(t, errResult)
		assert.Contains(t, errResult.Err, "ambiguous")
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, errResult := resolveCondominium(ctx, m, "  ")
		require.NotNil(t, errResult)
	})
}

func TestResolveCategory_ExactBeatsFragment(t *testing.T) {
	m := newMemStore()
	seedMemStore(m)
	m.categories = append(m.categories, &store.IncidentCategory{ID: m.id(), Name: "Seguridad Perimetral"})
	ctx := context.Background()

	category, errResult := resolveCategory(ctx, m, "Seguridad")
	require.Nil(t, errResult)
	assert.Equal(t, "Seguridad", category.Name)

	_, errResult = resolveCategory(ctx, m, "Segu")
	require.NotNil(t, errResult)
	assert.Contains(t, errResult.Err, "ambiguous")
}

func TestResolveCommune_ScopedToRegion(t *testing.T) {
	m := newMemStore()
	seedMemStore(m)
	ctx := context.Background()

	region, errResult := resolveRegion(ctx, m, "Metropolitana")
	require.Nil(t, errResult)

	_, errResult = resolveCommune(ctx, m, region.ID, "Viña")
	require.NotNil(t, errResult, "commune of another region must not resolve")
	assert.Contains(t, errResult.Err, "Quilicura")

	commune, errResult := resolveCommune(ctx, m, region.ID, "Quili")
	require.Nil(t, errResult)
	assert.Equal(t, "Quilicura", commune.Name)
}

func TestResolveUser_UnionOfFirstAndLastName(t *testing.T) {
	m := newMemStore()
	seedMemStore(m)
	ctx := context.Background()

	user, errResult := resolveUser(ctx, m, "Soto")
	require.Nil(t, errResult)
	assert.Equal(t, "Pedro Soto", user.FullName())

	// "Carolina" appears in first names only; no duplicate from the union.
	user, errResult = resolveUser(ctx, m, "carolina")
	require.Nil(t, errResult)
	assert.Equal(t, "Carolina Fuentes", user.FullName())

	_, errResult = resolveUser(ctx, m, "Inexistente")
	require.NotNil(t, errResult)
}
