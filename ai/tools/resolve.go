package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/quilicura/micondominio/store"
)

// Name-fragment resolution shared by the catalog. Zero or ambiguous matches
// come back as an error Result enumerating the options, never as a guess.

func resolveCondominium(ctx context.Context, s DomainStore, name string) (*store.Condominium, *Result) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Errorf("condominium name is required")
	}
	matches, err := s.ListCondominiums(ctx, &store.FindCondominium{NameLike: &name})
	if err != nil {
		return nil, Errorf("failed to look up condominiums: %v", err)
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		all, err := s.ListCondominiums(ctx, &store.FindCondominium{})
		if err != nil {
			return nil, Errorf("failed to look up condominiums: %v", err)
		}
		return nil, Errorf("no condominium matches %q; available: %s", name, joinNames(condominiumNames(all)))
	default:
		return nil, Errorf("condominium name %q is ambiguous; matches: %s", name, joinNames(condominiumNames(matches)))
	}
}

func resolveCategory(ctx context.Context, s DomainStore, name string) (*store.IncidentCategory, *Result) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Errorf("category name is required")
	}
	// Exact (case-insensitive) match wins before fragment matching, so
	// "Seguridad" does not trip over "Seguridad Perimetral".
	exact, err := s.ListIncidentCategories(ctx, &store.FindIncidentCategory{NameEqual: &name})
	if err != nil {
		return nil, Errorf("failed to look up categories: %v", err)
	}
	if len(exact) == 1 {
		return exact[0], nil
	}
	matches, err := s.ListIncidentCategories(ctx, &store.FindIncidentCategory{NameLike: &name})
	if err != nil {
		return nil, Errorf("failed to look up categories: %v", err)
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		all, err := s.ListIncidentCategories(ctx, &store.FindIncidentCategory{})
		if err != nil {
			return nil, Errorf("failed to look up categories: %v", err)
		}
		return nil, Errorf("no category matches %q; available: %s", name, joinNames(categoryNames(all)))
	default:
		return nil, Errorf("category name %q is ambiguous; matches: %s", name, joinNames(categoryNames(matches)))
	}
}

func resolveRegion(ctx context.Context, s DomainStore, name string) (*store.Region, *Result) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Errorf("region name is required")
	}
	matches, err := s.ListRegions(ctx, &store.FindRegion{NameLike: &name})
	if err != nil {
		return nil, Errorf("failed to look up regions: %v", err)
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		all, err := s.ListRegions(ctx, &store.FindRegion{})
		if err != nil {
			return nil, Errorf("failed to look up regions: %v", err)
		}
		return nil, Errorf("no region matches %q; available: %s", name, joinNames(regionNames(all)))
	default:
		return nil, Errorf("region name %q is ambiguous; matches: %s", name, joinNames(regionNames(matches)))
	}
}

func resolveCommune(ctx context.Context, s DomainStore, regionID int32, name string) (*store.Commune, *Result) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Errorf("commune name is required")
	}
	matches, err := s.ListCommunes(ctx, &store.FindCommune{RegionID: &regionID, NameLike: &name})
	if err != nil {
		return nil, Errorf("failed to look up communes: %v", err)
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		all, err := s.ListCommunes(ctx, &store.FindCommune{RegionID: &regionID})
		if err != nil {
			return nil, Errorf("failed to look up communes: %v", err)
		}
		return nil, Errorf("no commune matches %q in that region; available: %s", name, joinNames(communeNames(all)))
	default:
		return nil, Errorf("commune name %q is ambiguous; matches: %s", name, joinNames(communeNames(matches)))
	}
}

// resolveUser matches a free-text name against first names and last name.
func resolveUser(ctx context.Context, s DomainStore, name string) (*store.User, *Result) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Errorf("user name is required")
	}
	byFirst, err := s.ListUsers(ctx, &store.FindUser{FirstNamesLike: &name})
	if err != nil {
		return nil, Errorf("failed to look up users: %v", err)
	}
	byLast, err := s.ListUsers(ctx, &store.FindUser{LastNameLike: &name})
	if err != nil {
		return nil, Errorf("failed to look up users: %v", err)
	}

	seen := map[int32]bool{}
	matches := []*store.User{}
	for _, u := range append(byFirst, byLast...) {
		if !seen[u.ID] {
			seen[u.ID] = true
			matches = append(matches, u)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, Errorf("no user matches %q", name)
	default:
		return nil, Errorf("user name %q is ambiguous; matches: %s", name, joinNames(userNames(matches)))
	}
}

func condominiumNames(list []*store.Condominium) []string {
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name
	}
	return names
}

func categoryNames(list []*store.IncidentCategory) []string {
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name
	}
	return names
}

func regionNames(list []*store.Region) []string {
	names := make([]string, len(list))
	for i, r := range list {
		names[i] = r.Name
	}
	return names
}

func communeNames(list []*store.Commune) []string {
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name
	}
	return names
}

func userNames(list []*store.User) []string {
	names := make([]string, len(list))
	for i, u := range list {
		names[i] = fmt.Sprintf("%s (%s)", u.FullName(), u.CondominiumName)
	}
	return names
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
