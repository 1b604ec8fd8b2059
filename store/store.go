package store

import (
	"context"

	"github.com/quilicura/micondominio/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) CreateRegion(ctx context.Context, create *Region) (*Region, error) {
	return s.driver.CreateRegion(ctx, create)
}

func (s *Store) ListRegions(ctx context.Context, find *FindRegion) ([]*Region, error) {
	return s.driver.ListRegions(ctx, find)
}

func (s *Store) CreateCommune(ctx context.Context, create *Commune) (*Commune, error) {
	return s.driver.CreateCommune(ctx, create)
}

func (s *Store) ListCommunes(ctx context.Context, find *FindCommune) ([]*Commune, error) {
	return s.driver.ListCommunes(ctx, find)
}

func (s *Store) CreateCondominium(ctx context.Context, create *Condominium) (*Condominium, error) {
	return s.driver.CreateCondominium(ctx, create)
}

func (s *Store) ListCondominiums(ctx context.Context, find *FindCondominium) ([]*Condominium, error) {
	return s.driver.ListCondominiums(ctx, find)
}

func (s *Store) CreateUser(ctx context.Context, create *User) (*User, error) {
	return s.driver.CreateUser(ctx, create)
}

func (s *Store) ListUsers(ctx context.Context, find *FindUser) ([]*User, error) {
	return s.driver.ListUsers(ctx, find)
}

// GetUser returns the single user matching find, or nil when absent.
func (s *Store) GetUser(ctx context.Context, find *FindUser) (*User, error) {
	list, err := s.driver.ListUsers(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) CreateIncidentCategory(ctx context.Context, create *IncidentCategory) (*IncidentCategory, error) {
	return s.driver.CreateIncidentCategory(ctx, create)
}

func (s *Store) ListIncidentCategories(ctx context.Context, find *FindIncidentCategory) ([]*IncidentCategory, error) {
	return s.driver.ListIncidentCategories(ctx, find)
}

func (s *Store) CreateIncident(ctx context.Context, create *Incident) (*Incident, error) {
	return s.driver.CreateIncident(ctx, create)
}

func (s *Store) ListIncidents(ctx context.Context, find *FindIncident) ([]*Incident, error) {
	return s.driver.ListIncidents(ctx, find)
}

func (s *Store) CreateIncidentLog(ctx context.Context, create *IncidentLog) (*IncidentLog, error) {
	return s.driver.CreateIncidentLog(ctx, create)
}

func (s *Store) ListIncidentLogs(ctx context.Context, find *FindIncidentLog) ([]*IncidentLog, error) {
	return s.driver.ListIncidentLogs(ctx, find)
}

func (s *Store) CreateSanction(ctx context.Context, create *Sanction) (*Sanction, error) {
	return s.driver.CreateSanction(ctx, create)
}

func (s *Store) ListSanctions(ctx context.Context, find *FindSanction) ([]*Sanction, error) {
	return s.driver.ListSanctions(ctx, find)
}

func (s *Store) CreateMeeting(ctx context.Context, create *Meeting) (*Meeting, error) {
	return s.driver.CreateMeeting(ctx, create)
}

func (s *Store) ListMeetings(ctx context.Context, find *FindMeeting) ([]*Meeting, error) {
	return s.driver.ListMeetings(ctx, find)
}

func (s *Store) CreateChatSession(ctx context.Context, create *ChatSession) (*ChatSession, error) {
	return s.driver.CreateChatSession(ctx, create)
}

func (s *Store) ListChatSessions(ctx context.Context, find *FindChatSession) ([]*ChatSession, error) {
	return s.driver.ListChatSessions(ctx, find)
}

func (s *Store) UpdateChatSession(ctx context.Context, update *UpdateChatSession) (*ChatSession, error) {
	return s.driver.UpdateChatSession(ctx, update)
}

func (s *Store) CreateChatMessage(ctx context.Context, create *ChatMessage) (*ChatMessage, error) {
	return s.driver.CreateChatMessage(ctx, create)
}

func (s *Store) ListChatMessages(ctx context.Context, find *FindChatMessage) ([]*ChatMessage, error) {
	return s.driver.ListChatMessages(ctx, find)
}
