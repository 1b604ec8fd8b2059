package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quilicura/micondominio/store"
)

// Execute functions perform the single write behind a confirmed proposal.
// Arguments arrive exactly as the matching propose tool resolved them.

func executeFailure(format string, args ...any) *ExecuteResult {
	return &ExecuteResult{Err: fmt.Sprintf(format, args...)}
}

func executeCreateCondominium(s DomainStore) ExecuteFunc {
	return func(ctx context.Context, _ *Invocation, raw json.RawMessage) *ExecuteResult {
		var args CreateCondominiumArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return executeFailure("invalid proposal arguments: %v", err)
		}

		now := time.Now().Unix()
		created, err := s.CreateCondominium(ctx, &store.Condominium{
			RUT:          args.RUT,
			Name:         args.Name,
			Address:      args.Address,
			RegionID:     args.RegionID,
			CommuneID:    args.CommuneID,
			ContactEmail: args.ContactEmail,
			CreatedTs:    now,
			UpdatedTs:    now,
		})
		if err != nil {
			return executeFailure("no se pudo crear el condominio: %v", err)
		}
		return &ExecuteResult{
			ID:      created.ID,
			Message: fmt.Sprintf("Condominio '%s' creado con ID %d.", created.Name, created.ID),
		}
	}
}

func executeCreateUser(s DomainStore) ExecuteFunc {
	return func(ctx context.Context, _ *Invocation, raw json.RawMessage) *ExecuteResult {
		var args CreateUserArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return executeFailure("invalid proposal arguments: %v", err)
		}

		now := time.Now().Unix()
		created, err := s.CreateUser(ctx, &store.User{
			CondominiumID: args.CondominiumID,
			FirstNames:    args.FirstNames,
			LastName:      args.LastName,
			RUT:           args.RUT,
			Email:         args.Email,
			Phone:         args.Phone,
			Residence:     args.Residence,
			Role:          store.UserRole(args.Role),
			AccountStatus: store.AccountStatusActive,
			CreatedTs:     now,
			UpdatedTs:     now,
		})
		if err != nil {
			return executeFailure("no se pudo registrar el usuario: %v", err)
		}
		return &ExecuteResult{
			ID:      created.ID,
			Message: fmt.Sprintf("Usuario %s registrado con ID %d.", created.FullName(), created.ID),
		}
	}
}

func executeCreateMeeting(s DomainStore) ExecuteFunc {
	return func(ctx context.Context, _ *Invocation, raw json.RawMessage) *ExecuteResult {
		var args CreateMeetingArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return executeFailure("invalid proposal arguments: %v", err)
		}

		now := time.Now().Unix()
		created, err := s.CreateMeeting(ctx, &store.Meeting{
			CondominiumID: args.CondominiumID,
			Topic:         args.Topic,
			ScheduledTs:   args.ScheduledTs,
			Location:      args.Location,
			Description:   args.Description,
			Status:        store.MeetingStatusScheduled,
			CreatedTs:     now,
			UpdatedTs:     now,
		})
		if err != nil {
			return executeFailure("no se pudo agendar la reunión: %v", err)
		}
		return &ExecuteResult{
			ID: created.ID,
			Message: fmt.Sprintf("Reunión '%s' agendada para el %s con ID %d.",
				created.Topic, time.Unix(created.ScheduledTs, 0).Format("2006-01-02 15:04"), created.ID),
		}
	}
}

func executeCreateIncident(s DomainStore) ExecuteFunc {
	return func(ctx context.Context, _ *Invocation, raw json.RawMessage) *ExecuteResult {
		var args CreateIncidentArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return executeFailure("invalid proposal arguments: %v", err)
		}

		now := time.Now().Unix()
		created, err := s.CreateIncident(ctx, &store.Incident{
			CondominiumID: args.CondominiumID,
			CategoryID:    args.CategoryID,
			ReporterID:    args.ReporterID,
			Title:         args.Title,
			Description:   args.Description,
			Status:        store.IncidentStatusPending,
			Priority:      store.IncidentPriority(args.Priority),
			ReportedTs:    now,
			CreatedTs:     now,
			UpdatedTs:     now,
		})
		if err != nil {
			return executeFailure("no se pudo crear la incidencia: %v", err)
		}
		return &ExecuteResult{
			ID:      created.ID,
			Message: fmt.Sprintf("Incidencia '%s' creada con ID %d.", created.Title, created.ID),
		}
	}
}

func executeCreateCategory(s DomainStore) ExecuteFunc {
	return func(ctx context.Context, _ *Invocation, raw json.RawMessage) *ExecuteResult {
		var args CreateCategoryArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return executeFailure("invalid proposal arguments: %v", err)
		}

		created, err := s.CreateIncidentCategory(ctx, &store.IncidentCategory{
			Name:      args.Name,
			CreatedTs: time.Now().Unix(),
		})
		if err != nil {
			return executeFailure("no se pudo crear la categoría: %v", err)
		}
		return &ExecuteResult{
			ID:      created.ID,
			Message: fmt.Sprintf("Categoría '%s' creada con ID %d.", created.Name, created.ID),
		}
	}
}

func executeCreateSanction(s DomainStore) ExecuteFunc {
	return func(ctx context.Context, _ *Invocation, raw json.RawMessage) *ExecuteResult {
		var args CreateSanctionArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return executeFailure("invalid proposal arguments: %v", err)
		}

		now := time.Now().Unix()
		created, err := s.CreateSanction(ctx, &store.Sanction{
			CondominiumID:     args.CondominiumID,
			ReporterID:        args.ReporterID,
			Type:              store.SanctionType(args.Type),
			Reason:            args.Reason,
			ReasonDetail:      args.ReasonDetail,
			OffenderFirstName: args.OffenderFirstName,
			OffenderLastName:  args.OffenderLastName,
			OffenderRUT:       args.OffenderRUT,
			ApartmentNumber:   args.ApartmentNumber,
			SanctionTs:        args.SanctionTs,
			PaymentDueTs:      args.PaymentDueTs,
			CreatedTs:         now,
			UpdatedTs:         now,
		})
		if err != nil {
			return executeFailure("no se pudo registrar la amonestación: %v", err)
		}
		return &ExecuteResult{
			ID: created.ID,
			Message: fmt.Sprintf("Amonestación %s registrada contra %s %s con ID %d.",
				created.Type, created.OffenderFirstName, created.OffenderLastName, created.ID),
		}
	}
}

func executeCreateLogEntry(s DomainStore) ExecuteFunc {
	return func(ctx context.Context, _ *Invocation, raw json.RawMessage) *ExecuteResult {
		var args CreateLogEntryArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return executeFailure("invalid proposal arguments: %v", err)
		}

		created, err := s.CreateIncidentLog(ctx, &store.IncidentLog{
			IncidentID: args.IncidentID,
			Action:     args.Action,
			Detail:     args.Detail,
			CreatedTs:  time.Now().Unix(),
		})
		if err != nil {
			return executeFailure("no se pudo agregar la entrada a la bitácora: %v", err)
		}
		return &ExecuteResult{
			ID:      created.ID,
			Message: fmt.Sprintf("Entrada '%s' agregada a la bitácora de la incidencia #%d.", created.Action, created.IncidentID),
		}
	}
}
