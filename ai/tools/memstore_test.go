package tools

import (
	"context"
	"strings"

	"github.com/quilicura/micondominio/store"
)

// memStore is an in-memory DomainStore mirroring the filter semantics of the
// database drivers, enough for exercising the catalog without a database.
type memStore struct {
	regions     []*store.Region
	communes    []*store.Commune
	condos      []*store.Condominium
	users       []*store.User
	categories  []*store.IncidentCategory
	incidents   []*store.Incident
	logs        []*store.IncidentLog
	sanctions   []*store.Sanction
	meetings    []*store.Meeting
	nextID      int32
	createCalls int
}

func newMemStore() *memStore {
	return &memStore{nextID: 1}
}

func (m *memStore) id() int32 {
	id := m.nextID
	m.nextID++
	return id
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (m *memStore) ListRegions(_ context.Context, find *store.FindRegion) ([]*store.Region, error) {
	list := []*store.Region{}
	for _, r := range m.regions {
		if find.ID != nil && r.ID != *find.ID {
			continue
		}
		if find.NameLike != nil && !containsFold(r.Name, *find.NameLike) {
			continue
		}
		list = append(list, r)
	}
	return list, nil
}

func (m *memStore) ListCommunes(_ context.Context, find *store.FindCommune) ([]*store.Commune, error) {
	list := []*store.Commune{}
	for _, c := range m.communes {
		if find.ID != nil && c.ID != *find.ID {
			continue
		}
		if find.RegionID != nil && c.RegionID != *find.RegionID {
			continue
		}
		if find.NameLike != nil && !containsFold(c.Name, *find.NameLike) {
			continue
		}
		list = append(list, c)
	}
	return list, nil
}

func (m *memStore) CreateCondominium(_ context.Context, create *store.Condominium) (*store.Condominium, error) {
	create.ID = m.id()
	m.createCalls++
	m.condos = append(m.condos, create)
	return create, nil
}

func (m *memStore) ListCondominiums(_ context.Context, find *store.FindCondominium) ([]*store.Condominium, error) {
	list := []*store.Condominium{}
	for _, c := range m.condos {
		if find.ID != nil && c.ID != *find.ID {
			continue
		}
		if find.NameLike != nil && !containsFold(c.Name, *find.NameLike) {
			continue
		}
		if find.RegionNameLike != nil && !containsFold(c.RegionName, *find.RegionNameLike) {
			continue
		}
		list = append(list, c)
	}
	return list, nil
}

func (m *memStore) CreateUser(_ context.Context, create *store.User) (*store.User, error) {
	create.ID = m.id()
	m.createCalls++
	m.users = append(m.users, create)
	return create, nil
}

func (m *memStore) ListUsers(_ context.Context, find *store.FindUser) ([]*store.User, error) {
	list := []*store.User{}
	for _, u := range m.users {
		if find.ID != nil && u.ID != *find.ID {
			continue
		}
		if find.Email != nil && !strings.EqualFold(u.Email, *find.Email) {
			continue
		}
		if find.CondominiumID != nil && u.CondominiumID != *find.CondominiumID {
			continue
		}
		if find.FirstNamesLike != nil && !containsFold(u.FirstNames, *find.FirstNamesLike) {
			continue
		}
		if find.LastNameLike != nil && !containsFold(u.LastName, *find.LastNameLike) {
			continue
		}
		list = append(list, u)
	}
	return list, nil
}

func (m *memStore) CreateIncidentCategory(_ context.Context, create *store.IncidentCategory) (*store.IncidentCategory, error) {
	create.ID = m.id()
	m.createCalls++
	m.categories = append(m.categories, create)
	return create, nil
}

func (m *memStore) ListIncidentCategories(_ context.Context, find *store.FindIncidentCategory) ([]*store.IncidentCategory, error) {
	list := []*store.IncidentCategory{}
	for _, c := range m.categories {
		if find.ID != nil && c.ID != *find.ID {
			continue
		}
		if find.NameLike != nil && !containsFold(c.Name, *find.NameLike) {
			continue
		}
		if find.NameEqual != nil && !strings.EqualFold(c.Name, *find.NameEqual) {
			continue
		}
		list = append(list, c)
	}
	return list, nil
}

func (m *memStore) CreateIncident(_ context.Context, create *store.Incident) (*store.Incident, error) {
	create.ID = m.id()
	m.createCalls++
	m.incidents = append(m.incidents, create)
	return create, nil
}

func (m *memStore) ListIncidents(_ context.Context, find *store.FindIncident) ([]*store.Incident, error) {
	list := []*store.Incident{}
	for _, i := range m.incidents {
		if find.ID != nil && i.ID != *find.ID {
			continue
		}
		if find.CondominiumID != nil && i.CondominiumID != *find.CondominiumID {
			continue
		}
		if find.CondominiumNameLike != nil && !containsFold(i.CondominiumName, *find.CondominiumNameLike) {
			continue
		}
		if find.CategoryID != nil && i.CategoryID != *find.CategoryID {
			continue
		}
		if find.Status != nil && i.Status != *find.Status {
			continue
		}
		if find.Priority != nil && i.Priority != *find.Priority {
			continue
		}
		excluded := false
		for _, status := range find.ExcludeStatuses {
			if i.Status == status {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		if find.SearchTerm != nil && !containsFold(i.Title, *find.SearchTerm) && !containsFold(i.Description, *find.SearchTerm) {
			continue
		}
		if find.ReportedAfterTs != nil && i.ReportedTs < *find.ReportedAfterTs {
			continue
		}
		list = append(list, i)
	}
	if find.Limit != nil && len(list) > *find.Limit {
		list = list[:*find.Limit]
	}
	return list, nil
}

func (m *memStore) CreateIncidentLog(_ context.Context, create *store.IncidentLog) (*store.IncidentLog, error) {
	create.ID = m.id()
	m.createCalls++
	m.logs = append(m.logs, create)
	return create, nil
}

func (m *memStore) ListIncidentLogs(_ context.Context, find *store.FindIncidentLog) ([]*store.IncidentLog, error) {
	list := []*store.IncidentLog{}
	for _, l := range m.logs {
		if find.IncidentID != nil && l.IncidentID != *find.IncidentID {
			continue
		}
		list = append(list, l)
	}
	return list, nil
}

func (m *memStore) CreateSanction(_ context.Context, create *store.Sanction) (*store.Sanction, error) {
	create.ID = m.id()
	m.createCalls++
	m.sanctions = append(m.sanctions, create)
	return create, nil
}

func (m *memStore) ListSanctions(_ context.Context, find *store.FindSanction) ([]*store.Sanction, error) {
	list := []*store.Sanction{}
	for _, s := range m.sanctions {
		if find.ID != nil && s.ID != *find.ID {
			continue
		}
		if find.CondominiumID != nil && s.CondominiumID != *find.CondominiumID {
			continue
		}
		if find.SanctionAfterTs != nil && s.SanctionTs < *find.SanctionAfterTs {
			continue
		}
		list = append(list, s)
	}
	return list, nil
}

func (m *memStore) CreateMeeting(_ context.Context, create *store.Meeting) (*store.Meeting, error) {
	create.ID = m.id()
	m.createCalls++
	m.meetings = append(m.meetings, create)
	return create, nil
}

func (m *memStore) ListMeetings(_ context.Context, find *store.FindMeeting) ([]*store.Meeting, error) {
	list := []*store.Meeting{}
	for _, meeting := range m.meetings {
		if find.ID != nil && meeting.ID != *find.ID {
			continue
		}
		if find.CondominiumID != nil && meeting.CondominiumID != *find.CondominiumID {
			continue
		}
		list = append(list, meeting)
	}
	return list, nil
}

// seedMemStore loads a small fixture: two regions with communes, two
// condominiums, two categories, two users and three incidents.
func seedMemStore(m *memStore) {
	rm := &store.Region{ID: m.id(), Code: "RM", Name: "Región Metropolitana"}
	v := &store.Region{ID: m.id(), Code: "V", Name: "Región de Valparaíso"}
	m.regions = append(m.regions, rm, v)

	quilicura := &store.Commune{ID: m.id(), RegionID: rm.ID, Name: "Quilicura"}
	santiago := &store.Commune{ID: m.id(), RegionID: rm.ID, Name: "Santiago"}
	vina := &store.Commune{ID: m.id(), RegionID: v.ID, Name: "Viña del Mar"}
	m.communes = append(m.communes, quilicura, santiago, vina)

	aromos := &store.Condominium{ID: m.id(), Name: "Los Aromos", Address: "Av. Las Torres 1250", RegionID: rm.ID, CommuneID: quilicura.ID, RegionName: rm.Name, CommuneName: quilicura.Name}
	altos := &store.Condominium{ID: m.id(), Name: "Altos del Mar", Address: "Calle Los Pinos 480", RegionID: v.ID, CommuneID: vina.ID, RegionName: v.Name, CommuneName: vina.Name}
	m.condos = append(m.condos, aromos, altos)

	mantencion := &store.IncidentCategory{ID: m.id(), Name: "Mantención"}
	seguridad := &store.IncidentCategory{ID: m.id(), Name: "Seguridad"}
	m.categories = append(m.categories, mantencion, seguridad)

	pedro := &store.User{ID: m.id(), CondominiumID: aromos.ID, FirstNames: "Pedro", LastName: "Soto", Role: store.UserRoleOwner, CondominiumName: aromos.Name}
	carolina := &store.User{ID: m.id(), CondominiumID: aromos.ID, FirstNames: "Carolina", LastName: "Fuentes", Role: store.UserRoleAdmin, CondominiumName: aromos.Name}
	m.users = append(m.users, pedro, carolina)

	m.incidents = append(m.incidents,
		&store.Incident{ID: m.id(), CondominiumID: aromos.ID, CategoryID: mantencion.ID, ReporterID: pedro.ID, Title: "Filtración en estacionamiento", Description: "Muro norte nivel -1", Status: store.IncidentStatusPending, Priority: store.IncidentPriorityHigh, CondominiumName: aromos.Name, CategoryName: mantencion.Name, ReporterName: pedro.FullName()},
		&store.Incident{ID: m.id(), CondominiumID: aromos.ID, CategoryID: mantencion.ID, ReporterID: pedro.ID, Title: "Quincho dañado", Description: "Quemador izquierdo no enciende", Status: store.IncidentStatusResolved, Priority: store.IncidentPriorityLow, CondominiumName: aromos.Name, CategoryName: mantencion.Name, ReporterName: pedro.FullName()},
		&store.Incident{ID: m.id(), CondominiumID: altos.ID, CategoryID: seguridad.ID, ReporterID: carolina.ID, Title: "Portón no cierra", Description: "Acceso vehicular intermitente", Status: store.IncidentStatusPending, Priority: store.IncidentPriorityUrgent, CondominiumName: altos.Name, CategoryName: seguridad.Name, ReporterName: carolina.FullName()},
	)
}
