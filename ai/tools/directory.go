package tools

import (
	"context"
	"encoding/json"

	"github.com/quilicura/micondominio/store"
)

type condominiumSummary struct {
	ID      int32  `json:"id"`
	Name    string `json:"name"`
	RUT     string `json:"rut"`
	Address string `json:"address"`
	Commune string `json:"commune"`
	Region  string `json:"region"`
	Email   string `json:"contact_email"`
}

func summarizeCondominium(c *store.Condominium) condominiumSummary {
	return condominiumSummary{
		ID:      c.ID,
		Name:    c.Name,
		RUT:     c.RUT,
		Address: c.Address,
		Commune: c.CommuneName,
		Region:  c.RegionName,
		Email:   c.ContactEmail,
	}
}

// ListCondominiumsTool lists managed condominiums.
type ListCondominiumsTool struct {
	store DomainStore
}

func (t *ListCondominiumsTool) Name() string { return "list_condominiums" }

func (t *ListCondominiumsTool) Description() string {
	return "List managed condominiums with address, commune and region."
}

func (t *ListCondominiumsTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"limit": {"type": "integer", "description": "Max results, default 10, max 50"}
		}
	}`
}

func (t *ListCondominiumsTool) NeedsPrincipal() bool { return false }

type listCondominiumsInput struct {
	Limit int `json:"limit,omitempty"`
}

func (t *ListCondominiumsTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input listCondominiumsInput
	if len(args) > 0 {
		if err := json.Unmarshal(args, &input); err != nil {
			return Errorf("invalid arguments: %v", err)
		}
	}

	condominiums, err := t.store.ListCondominiums(ctx, &store.FindCondominium{})
	if err != nil {
		return Errorf("failed to list condominiums: %v", err)
	}

	total := len(condominiums)
	limit := clampLimit(input.Limit)
	if len(condominiums) > limit {
		condominiums = condominiums[:limit]
	}
	rows := make([]condominiumSummary, len(condominiums))
	for i, c := range condominiums {
		rows[i] = summarizeCondominium(c)
	}

	return Success(map[string]any{
		"total":        total,
		"shown":        len(rows),
		"condominiums": rows,
	})
}

// ListCondominiumsByRegionTool lists condominiums within a region.
type ListCondominiumsByRegionTool struct {
	store DomainStore
}

func (t *ListCondominiumsByRegionTool) Name() string { return "list_condominiums_by_region" }

func (t *ListCondominiumsByRegionTool) Description() string {
	return "List condominiums located in a region, resolved by region name."
}

func (t *ListCondominiumsByRegionTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"region": {"type": "string", "description": "Region name or fragment"}
		},
		"required": ["region"]
	}`
}

func (t *ListCondominiumsByRegionTool) NeedsPrincipal() bool { return false }

type listByRegionInput struct {
	Region string `json:"region"`
}

func (t *ListCondominiumsByRegionTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input listByRegionInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}

	region, errResult := resolveRegion(ctx, t.store, input.Region)
	if errResult != nil {
		return errResult
	}

	condominiums, err := t.store.ListCondominiums(ctx, &store.FindCondominium{RegionNameLike: &region.Name})
	if err != nil {
		return Errorf("failed to list condominiums: %v", err)
	}

	rows := make([]condominiumSummary, len(condominiums))
	for i, c := range condominiums {
		rows[i] = summarizeCondominium(c)
	}
	return Success(map[string]any{
		"region":       region.Name,
		"count":        len(rows),
		"condominiums": rows,
	})
}

// FindCondominiumTool resolves a single condominium by name.
type FindCondominiumTool struct {
	store DomainStore
}

func (t *FindCondominiumTool) Name() string { return "find_condominium" }

func (t *FindCondominiumTool) Description() string {
	return "Find a single condominium by name. Fails with the list of options when the name is missing or ambiguous."
}

func (t *FindCondominiumTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "description": "Condominium name or fragment"}
		},
		"required": ["name"]
	}`
}

func (t *FindCondominiumTool) NeedsPrincipal() bool { return false }

type findByNameInput struct {
	Name string `json:"name"`
}

func (t *FindCondominiumTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input findByNameInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}

	condominium, errResult := resolveCondominium(ctx, t.store, input.Name)
	if errResult != nil {
		return errResult
	}
	return Success(summarizeCondominium(condominium))
}

// ListCategoriesTool lists incident categories.
type ListCategoriesTool struct {
	store DomainStore
}

func (t *ListCategoriesTool) Name() string { return "list_categories" }

func (t *ListCategoriesTool) Description() string {
	return "List the incident categories available for classification."
}

func (t *ListCategoriesTool) Parameters() string {
	return `{"type": "object", "properties": {}}`
}

func (t *ListCategoriesTool) NeedsPrincipal() bool { return false }

func (t *ListCategoriesTool) Run(ctx context.Context, _ *Invocation, _ json.RawMessage) *Result {
	categories, err := t.store.ListIncidentCategories(ctx, &store.FindIncidentCategory{})
	if err != nil {
		return Errorf("failed to list categories: %v", err)
	}

	rows := make([]map[string]any, len(categories))
	for i, category := range categories {
		rows[i] = map[string]any{"id": category.ID, "name": category.Name}
	}
	return Success(map[string]any{
		"count":      len(rows),
		"categories": rows,
	})
}

// FindCategoryTool resolves a single category by name.
type FindCategoryTool struct {
	store DomainStore
}

func (t *FindCategoryTool) Name() string { return "find_category" }

func (t *FindCategoryTool) Description() string {
	return "Find a single incident category by name. Fails with the list of options when the name is missing or ambiguous."
}

func (t *FindCategoryTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "description": "Category name or fragment"}
		},
		"required": ["name"]
	}`
}

func (t *FindCategoryTool) NeedsPrincipal() bool { return false }

func (t *FindCategoryTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input findByNameInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}

	category, errResult := resolveCategory(ctx, t.store, input.Name)
	if errResult != nil {
		return errResult
	}
	return Success(map[string]any{"id": category.ID, "name": category.Name})
}

// FindUserTool resolves a single registered user by name.
type FindUserTool struct {
	store DomainStore
}

func (t *FindUserTool) Name() string { return "find_user" }

func (t *FindUserTool) Description() string {
	return "Find a single registered user by first or last name. Fails with the list of matches when ambiguous."
}

func (t *FindUserTool) Parameters() string {
	return `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "description": "First or last name, or a fragment"}
		},
		"required": ["name"]
	}`
}

func (t *FindUserTool) NeedsPrincipal() bool { return false }

func (t *FindUserTool) Run(ctx context.Context, _ *Invocation, args json.RawMessage) *Result {
	var input findByNameInput
	if err := json.Unmarshal(args, &input); err != nil {
		return Errorf("invalid arguments: %v", err)
	}

	user, errResult := resolveUser(ctx, t.store, input.Name)
	if errResult != nil {
		return errResult
	}
	return Success(map[string]any{
		"id":          user.ID,
		"name":        user.FullName(),
		"rut":         user.RUT,
		"email":       user.Email,
		"role":        string(user.Role),
		"condominium": user.CondominiumName,
		"residence":   user.Residence,
	})
}
