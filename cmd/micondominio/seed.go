package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/quilicura/micondominio/store"
)

// seedCmd loads demo data: a couple of Chilean regions with their communes,
// two condominiums, incident categories, users and a handful of incidents.
// Safe to run only against an empty database.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data into an empty database",
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile := loadProfile()

		ctx := context.Background()
		storeInstance, err := newStore(instanceProfile)
		if err != nil {
			slog.Error("failed to create store", "error", err)
			return
		}
		defer storeInstance.Close()

		if err := storeInstance.Migrate(ctx); err != nil {
			slog.Error("failed to migrate", "error", err)
			return
		}
		if err := seed(ctx, storeInstance); err != nil {
			slog.Error("failed to seed", "error", err)
			return
		}
		fmt.Println("Demo data loaded.")
		fmt.Println("Sign in with admin@micondominio.cl / admin123")
	},
}

func seed(ctx context.Context, s *store.Store) error {
	existing, err := s.ListCondominiums(ctx, &store.FindCondominium{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return fmt.Errorf("database already contains %d condominiums, refusing to seed", len(existing))
	}

	now := time.Now().Unix()

	metropolitana, err := s.CreateRegion(ctx, &store.Region{Code: "RM", Name: "Región Metropolitana", CreatedTs: now, UpdatedTs: now})
	if err != nil {
		return err
	}
	valparaiso, err := s.CreateRegion(ctx, &store.Region{Code: "V", Name: "Región de Valparaíso", CreatedTs: now, UpdatedTs: now})
	if err != nil {
		return err
	}

	communes := map[string]*store.Commune{}
	for _, c := range []struct {
		region *store.Region
		name   string
	}{
		{metropolitana, "Santiago"},
		{metropolitana, "Quilicura"},
		{metropolitana, "Providencia"},
		{metropolitana, "Maipú"},
		{valparaiso, "Valparaíso"},
		{valparaiso, "Viña del Mar"},
	} {
		commune, err := s.CreateCommune(ctx, &store.Commune{
			RegionID:  c.region.ID,
			Name:      c.name,
			CreatedTs: now,
			UpdatedTs: now,
		})
		if err != nil {
			return err
		}
		communes[c.name] = commune
	}

	losAromos, err := s.CreateCondominium(ctx, &store.Condominium{
		RUT:          "76.123.456-7",
		Name:         "Los Aromos",
		Address:      "Av. Las Torres 1250",
		RegionID:     metropolitana.ID,
		CommuneID:    communes["Quilicura"].ID,
		ContactEmail: "administracion@losaromos.cl",
		CreatedTs:    now,
		UpdatedTs:    now,
	})
	if err != nil {
		return err
	}
	altosDelMar, err := s.CreateCondominium(ctx, &store.Condominium{
		RUT:          "77.987.654-3",
		Name:         "Altos del Mar",
		Address:      "Calle Los Pinos 480",
		RegionID:     valparaiso.ID,
		CommuneID:    communes["Viña del Mar"].ID,
		ContactEmail: "contacto@altosdelmar.cl",
		CreatedTs:    now,
		UpdatedTs:    now,
	})
	if err != nil {
		return err
	}

	categories := map[string]*store.IncidentCategory{}
	for _, name := range []string{"Mantención", "Seguridad", "Ruidos molestos", "Áreas comunes", "Estacionamientos"} {
		category, err := s.CreateIncidentCategory(ctx, &store.IncidentCategory{Name: name, CreatedTs: now})
		if err != nil {
			return err
		}
		categories[name] = category
	}

	hash := func(password string) (string, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return string(h), err
	}

	adminHash, err := hash("admin123")
	if err != nil {
		return err
	}
	residentHash, err := hash("vecino123")
	if err != nil {
		return err
	}

	admin, err := s.CreateUser(ctx, &store.User{
		CondominiumID: losAromos.ID,
		FirstNames:    "Carolina",
		LastName:      "Fuentes",
		RUT:           "12.345.678-9",
		Email:         "admin@micondominio.cl",
		Phone:         "+56 9 8765 4321",
		Residence:     "Oficina administración",
		PasswordHash:  adminHash,
		Role:          store.UserRoleAdmin,
		AccountStatus: store.AccountStatusActive,
		CreatedTs:     now,
		UpdatedTs:     now,
	})
	if err != nil {
		return err
	}

	residents := []struct {
		condominium *store.Condominium
		firstNames  string
		lastName    string
		rut         string
		email       string
		residence   string
		role        store.UserRole
	}{
		{losAromos, "Pedro", "Soto", "14.222.333-4", "pedro.soto@example.cl", "Depto 302", store.UserRoleOwner},
		{losAromos, "María José", "Riquelme", "15.444.555-6", "mj.riquelme@example.cl", "Depto 1104", store.UserRoleTenant},
		{altosDelMar, "Jorge", "Carrasco", "16.666.777-8", "jorge.carrasco@example.cl", "Casa 12", store.UserRoleOwner},
	}
	users := []*store.User{}
	for _, r := range residents {
		user, err := s.CreateUser(ctx, &store.User{
			CondominiumID: r.condominium.ID,
			FirstNames:    r.firstNames,
			LastName:      r.lastName,
			RUT:           r.rut,
			Email:         r.email,
			Residence:     r.residence,
			PasswordHash:  residentHash,
			Role:          r.role,
			AccountStatus: store.AccountStatusActive,
			CreatedTs:     now,
			UpdatedTs:     now,
		})
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	incidents := []struct {
		condominium *store.Condominium
		category    string
		title       string
		description string
		status      store.IncidentStatus
		priority    store.IncidentPriority
		daysAgo     int
	}{
		{losAromos, "Mantención", "Filtración en estacionamiento subterráneo", "Se observa filtración de agua en el muro norte del nivel -1.", store.IncidentStatusPending, store.IncidentPriorityHigh, 2},
		{losAromos, "Ruidos molestos", "Fiesta pasada la medianoche en depto 1104", "Vecinos reclaman música a alto volumen hasta las 03:00.", store.IncidentStatusInProgress, store.IncidentPriorityMedium, 5},
		{losAromos, "Áreas comunes", "Quincho con quemador dañado", "El quemador izquierdo del quincho no enciende.", store.IncidentStatusResolved, store.IncidentPriorityLow, 20},
		{altosDelMar, "Seguridad", "Portón de acceso vehicular no cierra", "El portón queda abierto de forma intermitente.", store.IncidentStatusPending, store.IncidentPriorityUrgent, 1},
	}
	for i, inc := range incidents {
		reporter := users[i%len(users)]
		reportedTs := time.Now().AddDate(0, 0, -inc.daysAgo).Unix()
		incident, err := s.CreateIncident(ctx, &store.Incident{
			CondominiumID: inc.condominium.ID,
			CategoryID:    categories[inc.category].ID,
			ReporterID:    reporter.ID,
			Title:         inc.title,
			Description:   inc.description,
			Status:        inc.status,
			Priority:      inc.priority,
			ReportedTs:    reportedTs,
			CreatedTs:     reportedTs,
			UpdatedTs:     reportedTs,
		})
		if err != nil {
			return err
		}
		if inc.status != store.IncidentStatusPending {
			if _, err := s.CreateIncidentLog(ctx, &store.IncidentLog{
				IncidentID: incident.ID,
				Action:     "derivación",
				Detail:     "Caso derivado al equipo de mantención.",
				CreatedTs:  reportedTs + 3600,
			}); err != nil {
				return err
			}
		}
	}

	dueTs := time.Now().AddDate(0, 1, 0).Unix()
	if _, err := s.CreateSanction(ctx, &store.Sanction{
		CondominiumID:     losAromos.ID,
		ReporterID:        admin.ID,
		Type:              store.SanctionTypeFine,
		Reason:            "Ruidos molestos reiterados",
		OffenderFirstName: "María José",
		OffenderLastName:  "Riquelme",
		OffenderRUT:       "15.444.555-6",
		SanctionTs:        now,
		PaymentDueTs:      &dueTs,
		CreatedTs:         now,
		UpdatedTs:         now,
	}); err != nil {
		return err
	}

	meetingTs := time.Now().AddDate(0, 0, 14).Unix()
	if _, err := s.CreateMeeting(ctx, &store.Meeting{
		CondominiumID: losAromos.ID,
		Topic:         "Asamblea ordinaria de copropietarios",
		ScheduledTs:   meetingTs,
		Location:      "Salón de eventos",
		Status:        store.MeetingStatusScheduled,
		CreatedTs:     now,
		UpdatedTs:     now,
	}); err != nil {
		return err
	}

	return nil
}
