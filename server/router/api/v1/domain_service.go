package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/quilicura/micondominio/store"
)

type condominiumPayload struct {
	ID           int32  `json:"id"`
	RUT          string `json:"rut"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Region       string `json:"region"`
	Commune      string `json:"commune"`
	ContactEmail string `json:"contact_email"`
}

type incidentPayload struct {
	ID          int32  `json:"id"`
	Condominium string `json:"condominium"`
	Category    string `json:"category"`
	Reporter    string `json:"reporter"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	ReportedTs  int64  `json:"reported_ts"`
}

// ListCondominiums returns condominiums, optionally filtered by name.
func (s *APIV1Service) ListCondominiums(c echo.Context) error {
	find := &store.FindCondominium{}
	if name := c.QueryParam("name"); name != "" {
		find.NameLike = &name
	}

	condominiums, err := s.Store.ListCondominiums(c.Request().Context(), find)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list condominiums").SetInternal(err)
	}

	payload := make([]*condominiumPayload, 0, len(condominiums))
	for _, condominium := range condominiums {
		payload = append(payload, &condominiumPayload{
			ID:           condominium.ID,
			RUT:          condominium.RUT,
			Name:         condominium.Name,
			Address:      condominium.Address,
			Region:       condominium.RegionName,
			Commune:      condominium.CommuneName,
			ContactEmail: condominium.ContactEmail,
		})
	}
	return c.JSON(http.StatusOK, payload)
}

// ListIncidents returns incidents filtered by the query parameters
// condominium_id, status and priority.
func (s *APIV1Service) ListIncidents(c echo.Context) error {
	find := &store.FindIncident{}
	if raw := c.QueryParam("condominium_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid condominium_id")
		}
		id32 := int32(id)
		find.CondominiumID = &id32
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := store.IncidentStatus(raw)
		if !validIncidentStatus(status) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		find.Status = &status
	}
	if raw := c.QueryParam("priority"); raw != "" {
		priority := store.IncidentPriority(raw)
		if !validIncidentPriority(priority) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid priority")
		}
		find.Priority = &priority
	}

	incidents, err := s.Store.ListIncidents(c.Request().Context(), find)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list incidents").SetInternal(err)
	}

	payload := make([]*incidentPayload, 0, len(incidents))
	for _, incident := range incidents {
		payload = append(payload, &incidentPayload{
			ID:          incident.ID,
			Condominium: incident.CondominiumName,
			Category:    incident.CategoryName,
			Reporter:    incident.ReporterName,
			Title:       incident.Title,
			Description: incident.Description,
			Status:      string(incident.Status),
			Priority:    string(incident.Priority),
			ReportedTs:  incident.ReportedTs,
		})
	}
	return c.JSON(http.StatusOK, payload)
}

func validIncidentStatus(status store.IncidentStatus) bool {
	for _, s := range store.IncidentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func validIncidentPriority(priority store.IncidentPriority) bool {
	for _, p := range store.IncidentPriorities {
		if p == priority {
			return true
		}
	}
	return false
}
