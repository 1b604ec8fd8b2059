package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for database drivers.
type Driver interface {
	GetDB() *sql.DB
	Close() error
	Migrate(ctx context.Context) error

	// Geography
	CreateRegion(ctx context.Context, create *Region) (*Region, error)
	ListRegions(ctx context.Context, find *FindRegion) ([]*Region, error)
	CreateCommune(ctx context.Context, create *Commune) (*Commune, error)
	ListCommunes(ctx context.Context, find *FindCommune) ([]*Commune, error)

	// Condominiums
	CreateCondominium(ctx context.Context, create *Condominium) (*Condominium, error)
	ListCondominiums(ctx context.Context, find *FindCondominium) ([]*Condominium, error)

	// Users
	CreateUser(ctx context.Context, create *User) (*User, error)
	ListUsers(ctx context.Context, find *FindUser) ([]*User, error)

	// Incidents
	CreateIncidentCategory(ctx context.Context, create *IncidentCategory) (*IncidentCategory, error)
	ListIncidentCategories(ctx context.Context, find *FindIncidentCategory) ([]*IncidentCategory, error)
	CreateIncident(ctx context.Context, create *Incident) (*Incident, error)
	ListIncidents(ctx context.Context, find *FindIncident) ([]*Incident, error)
	CreateIncidentLog(ctx context.Context, create *IncidentLog) (*IncidentLog, error)
	ListIncidentLogs(ctx context.Context, find *FindIncidentLog) ([]*IncidentLog, error)

	// Sanctions
	CreateSanction(ctx context.Context, create *Sanction) (*Sanction, error)
	ListSanctions(ctx context.Context, find *FindSanction) ([]*Sanction, error)

	// Meetings
	CreateMeeting(ctx context.Context, create *Meeting) (*Meeting, error)
	ListMeetings(ctx context.Context, find *FindMeeting) ([]*Meeting, error)

	// Assistant conversations
	CreateChatSession(ctx context.Context, create *ChatSession) (*ChatSession, error)
	ListChatSessions(ctx context.Context, find *FindChatSession) ([]*ChatSession, error)
	UpdateChatSession(ctx context.Context, update *UpdateChatSession) (*ChatSession, error)
	CreateChatMessage(ctx context.Context, create *ChatMessage) (*ChatMessage, error)
	ListChatMessages(ctx context.Context, find *FindChatMessage) ([]*ChatMessage, error)
}
