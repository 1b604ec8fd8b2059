package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/quilicura/micondominio/store"
)

func (d *DB) CreateRegion(ctx context.Context, create *store.Region) (*store.Region, error) {
	stmt := `
		INSERT INTO region (code, name, created_ts, updated_ts)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.Code,
		create.Name,
		create.CreatedTs,
		create.UpdatedTs,
	).Scan(&create.ID); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListRegions(ctx context.Context, find *store.FindRegion) ([]*store.Region, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.NameLike; v != nil {
		where, args = append(where, "name LIKE ?"), append(args, "%"+*v+"%")
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, code, name, created_ts, updated_ts
		FROM region
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY id`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*store.Region{}
	for rows.Next() {
		region := &store.Region{}
		if err := rows.Scan(
			&region.ID,
			&region.Code,
			&region.Name,
			&region.CreatedTs,
			&region.UpdatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, region)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) CreateCommune(ctx context.Context, create *store.Commune) (*store.Commune, error) {
	stmt := `
		INSERT INTO commune (region_id, name, created_ts, updated_ts)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.RegionID,
		create.Name,
		create.CreatedTs,
		create.UpdatedTs,
	).Scan(&create.ID); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListCommunes(ctx context.Context, find *store.FindCommune) ([]*store.Commune, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.RegionID; v != nil {
		where, args = append(where, "region_id = ?"), append(args, *v)
	}
	if v := find.NameLike; v != nil {
		where, args = append(where, "name LIKE ?"), append(args, "%"+*v+"%")
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, region_id, name, created_ts, updated_ts
		FROM commune
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY name`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*store.Commune{}
	for rows.Next() {
		commune := &store.Commune{}
		if err := rows.Scan(
			&commune.ID,
			&commune.RegionID,
			&commune.Name,
			&commune.CreatedTs,
			&commune.UpdatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, commune)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) CreateCondominium(ctx context.Context, create *store.Condominium) (*store.Condominium, error) {
	stmt := `
		INSERT INTO condominium (rut, name, address, region_id, commune_id, contact_email, created_ts, updated_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.RUT,
		create.Name,
		create.Address,
		create.RegionID,
		create.CommuneID,
		create.ContactEmail,
		create.CreatedTs,
		create.UpdatedTs,
	).Scan(&create.ID); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListCondominiums(ctx context.Context, find *store.FindCondominium) ([]*store.Condominium, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "condominium.id = ?"), append(args, *v)
	}
	if v := find.NameLike; v != nil {
		where, args = append(where, "condominium.name LIKE ?"), append(args, "%"+*v+"%")
	}
	if v := find.RegionNameLike; v != nil {
		where, args = append(where, "region.name LIKE ?"), append(args, "%"+*v+"%")
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT
			condominium.id,
			condominium.rut,
			condominium.name,
			condominium.address,
			condominium.region_id,
			condominium.commune_id,
			condominium.contact_email,
			condominium.created_ts,
			condominium.updated_ts,
			region.name AS region_name,
			commune.name AS commune_name
		FROM condominium
		JOIN region ON region.id = condominium.region_id
		JOIN commune ON commune.id = condominium.commune_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY condominium.name`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*store.Condominium{}
	for rows.Next() {
		condominium := &store.Condominium{}
		if err := rows.Scan(
			&condominium.ID,
			&condominium.RUT,
			&condominium.Name,
			&condominium.Address,
			&condominium.RegionID,
			&condominium.CommuneID,
			&condominium.ContactEmail,
			&condominium.CreatedTs,
			&condominium.UpdatedTs,
			&condominium.RegionName,
			&condominium.CommuneName,
		); err != nil {
			return nil, err
		}
		list = append(list, condominium)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) CreateUser(ctx context.Context, create *store.User) (*store.User, error) {
	stmt := `
		INSERT INTO user (condominium_id, first_names, last_name, rut, email, phone, residence, password_hash, role, account_status, created_ts, updated_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.CondominiumID,
		create.FirstNames,
		create.LastName,
		create.RUT,
		create.Email,
		create.Phone,
		create.Residence,
		create.PasswordHash,
		create.Role,
		create.AccountStatus,
		create.CreatedTs,
		create.UpdatedTs,
	).Scan(&create.ID); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListUsers(ctx context.Context, find *store.FindUser) ([]*store.User, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "user.id = ?"), append(args, *v)
	}
	if v := find.CondominiumID; v != nil {
		where, args = append(where, "user.condominium_id = ?"), append(args, *v)
	}
	if v := find.Email; v != nil {
		where, args = append(where, "LOWER(user.email) = LOWER(?)"), append(args, *v)
	}
	if v := find.FirstNamesLike; v != nil {
		where, args = append(where, "user.first_names LIKE ?"), append(args, "%"+*v+"%")
	}
	if v := find.LastNameLike; v != nil {
		where, args = append(where, "user.last_name LIKE ?"), append(args, "%"+*v+"%")
	}
	if v := find.CondominiumNameLike; v != nil {
		where, args = append(where, "condominium.name LIKE ?"), append(args, "%"+*v+"%")
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT
			user.id,
			user.condominium_id,
			user.first_names,
			user.last_name,
			user.rut,
			user.email,
			user.phone,
			user.residence,
			user.password_hash,
			user.role,
			user.account_status,
			user.created_ts,
			user.updated_ts,
			condominium.name AS condominium_name
		FROM user
		JOIN condominium ON condominium.id = user.condominium_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY user.last_name, user.first_names`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*store.User{}
	for rows.Next() {
		user := &store.User{}
		if err := rows.Scan(
			&user.ID,
			&user.CondominiumID,
			&user.FirstNames,
			&user.LastName,
			&user.RUT,
			&user.Email,
			&user.Phone,
			&user.Residence,
			&user.PasswordHash,
			&user.Role,
			&user.AccountStatus,
			&user.CreatedTs,
			&user.UpdatedTs,
			&user.CondominiumName,
		); err != nil {
			return nil, err
		}
		list = append(list, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) CreateIncidentCategory(ctx context.Context, create *store.IncidentCategory) (*store.IncidentCategory, error) {
	stmt := `
		INSERT INTO incident_category (name, created_ts)
		VALUES (?, ?)
		RETURNING id
	`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.Name,
		create.CreatedTs,
	).Scan(&create.ID); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListIncidentCategories(ctx context.Context, find *store.FindIncidentCategory) ([]*store.IncidentCategory, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.NameLike; v != nil {
		where, args = append(where, "name LIKE ?"), append(args, "%"+*v+"%")
	}
	if v := find.NameEqual; v != nil {
		where, args = append(where, "LOWER(name) = LOWER(?)"), append(args, *v)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, created_ts
		FROM incident_category
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY name`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*store.IncidentCategory{}
	for rows.Next() {
		category := &store.IncidentCategory{}
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) CreateIncident(ctx context.Context, create *store.Incident) (*store.Incident, error) {
	stmt := `
		INSERT INTO incident (condominium_id, category_id, reporter_id, title, description, status, priority, address, latitude, longitude, reported_ts, closed_ts, created_ts, updated_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.CondominiumID,
		create.CategoryID,
		create.ReporterID,
		create.Title,
		create.Description,
		create.Status,
		create.Priority,
		create.Address,
		create.Latitude,
		create.Longitude,
		create.ReportedTs,
		create.ClosedTs,
		create.CreatedTs,
		create.UpdatedTs,
	).Scan(&create.ID); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListIncidents(ctx context.Context, find *store.FindIncident) ([]*store.Incident, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "incident.id = ?"), append(args, *v)
	}
	if v := find.CondominiumID; v != nil {
		where, args = append(where, "incident.condominium_id = ?"), append(args, *v)
	}
	if v := find.CondominiumNameLike; v != nil {
		where, args = append(where, "condominium.name LIKE ?"), append(args, "%"+*v+"%")
	}
	if v := find.CategoryID; v != nil {
		where, args = append(where, "incident.category_id = ?"), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "incident.status = ?"), append(args, *v)
	}
	if v := find.Priority; v != nil {
		where, args = append(where, "incident.priority = ?"), append(args, *v)
	}
	if v := find.ExcludeStatuses; len(v) > 0 {
		placeholders := []string{}
		for _, status := range v {
			placeholders, args = append(placeholders, "?"), append(args, status)
		}
		where = append(where, fmt.Sprintf("incident.status NOT IN (%s)", strings.Join(placeholders, ", ")))
	}
	if v := find.SearchTerm; v != nil {
		where = append(where, "(incident.title LIKE ? OR incident.description LIKE ?)")
		args = append(args, "%"+*v+"%", "%"+*v+"%")
	}
	if v := find.ReportedAfterTs; v != nil {
		where, args = append(where, "incident.reported_ts >= ?"), append(args, *v)
	}

	query := `
		SELECT
			incident.id,
			incident.condominium_id,
			incident.category_id,
			incident.reporter_id,
			incident.title,
			incident.description,
			incident.status,
			incident.priority,
			incident.address,
			incident.latitude,
			incident.longitude,
			incident.reported_ts,
			incident.closed_ts,
			incident.created_ts,
			incident.updated_ts,
			condominium.name AS condominium_name,
			incident_category.name AS category_name,
			user.first_names || ' ' || user.last_name AS reporter_name
		FROM incident
		JOIN condominium ON condominium.id = incident.condominium_id
		JOIN incident_category ON incident_category.id = incident.category_id
		JOIN user ON user.id = incident.reporter_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY incident.reported_ts DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*store.Incident{}
	for rows.Next() {
		incident := &store.Incident{}
		if err := rows.Scan(
			&incident.ID,
			&incident.CondominiumID,
			&incident.CategoryID,
			&incident.ReporterID,
			&incident.Title,
			&incident.Description,
			&incident.Status,
			&incident.Priority,
			&incident.Address,
			&incident.Latitude,
			&incident.Longitude,
			&incident.ReportedTs,
			&incident.ClosedTs,
			&incident.CreatedTs,
			&incident.UpdatedTs,
			&incident.CondominiumName,
			&incident.CategoryName,
			&incident.ReporterName,
		); err != nil {
			return nil, err
		}
		list = append(list, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) CreateIncidentLog(ctx context.Context, create *store.IncidentLog) (*store.IncidentLog, error) {
	stmt := `
		INSERT INTO incident_log (incident_id, action, detail, created_ts)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.IncidentID,
		create.Action,
		create.Detail,
		create.CreatedTs,
	).Scan(&create.ID); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListIncidentLogs(ctx context.Context, find *store.FindIncidentLog) ([]*store.IncidentLog, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.IncidentID; v != nil {
		where, args = append(where, "incident_id = ?"), append(args, *v)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, incident_id, action, detail, created_ts
		FROM incident_log
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY created_ts DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*store.IncidentLog{}
	for rows.Next() {
		log := &store.IncidentLog{}
		if err := rows.Scan(
			&log.ID,
			&log.IncidentID,
			&log.Action,
			&log.Detail,
			&log.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) CreateSanction(ctx context.Context, create *store.Sanction) (*store.Sanction, error) {
	stmt := `
		INSERT INTO sanction (condominium_id, reporter_id, type, reason, reason_detail, offender_first_name, offender_last_name, offender_rut, apartment_number, sanction_ts, payment_due_ts, created_ts, updated_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.CondominiumID,
		create.ReporterID,
		create.Type,
		create.Reason,
		create.ReasonDetail,
		create.OffenderFirstName,
		create.OffenderLastName,
		create.OffenderRUT,
		create.ApartmentNumber,
		create.SanctionTs,
		create.PaymentDueTs,
		create.CreatedTs,
		create.UpdatedTs,
	).Scan(&create.ID); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListSanctions(ctx context.Context, find *store.FindSanction) ([]*store.Sanction, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "sanction.id = ?"), append(args, *v)
	}
	if v := find.CondominiumID; v != nil {
		where, args = append(where, "sanction.condominium_id = ?"), append(args, *v)
	}
	if v := find.SanctionAfterTs; v != nil {
		where, args = append(where, "sanction.sanction_ts >= ?"), append(args, *v)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT
			sanction.id,
			sanction.condominium_id,
			sanction.reporter_id,
			sanction.type,
			sanction.reason,
			sanction.reason_detail,
			sanction.offender_first_name,
			sanction.offender_last_name,
			sanction.offender_rut,
			sanction.apartment_number,
			sanction.sanction_ts,
			sanction.payment_due_ts,
			sanction.created_ts,
			sanction.updated_ts,
			condominium.name AS condominium_name,
			user.first_names || ' ' || user.last_name AS reporter_name
		FROM sanction
		JOIN condominium ON condominium.id = sanction.condominium_id
		JOIN user ON user.id = sanction.reporter_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY sanction.sanction_ts DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*store.Sanction{}
	for rows.Next() {
		sanction := &store.Sanction{}
		if err := rows.Scan(
			&sanction.ID,
			&sanction.CondominiumID,
			&sanction.ReporterID,
			&sanction.Type,
			&sanction.Reason,
			&sanction.ReasonDetail,
			&sanction.OffenderFirstName,
			&sanction.OffenderLastName,
			&sanction.OffenderRUT,
			&sanction.ApartmentNumber,
			&sanction.SanctionTs,
			&sanction.PaymentDueTs,
			&sanction.CreatedTs,
			&sanction.UpdatedTs,
			&sanction.CondominiumName,
			&sanction.ReporterName,
		); err != nil {
			return nil, err
		}
		list = append(list, sanction)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) CreateMeeting(ctx context.Context, create *store.Meeting) (*store.Meeting, error) {
	stmt := `
		INSERT INTO meeting (condominium_id, topic, scheduled_ts, location, description, status, created_ts, updated_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.CondominiumID,
		create.Topic,
		create.ScheduledTs,
		create.Location,
		create.Description,
		create.Status,
		create.CreatedTs,
		create.UpdatedTs,
	).Scan(&create.ID); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListMeetings(ctx context.Context, find *store.FindMeeting) ([]*store.Meeting, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "meeting.id = ?"), append(args, *v)
	}
	if v := find.CondominiumID; v != nil {
		where, args = append(where, "meeting.condominium_id = ?"), append(args, *v)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT
			meeting.id,
			meeting.condominium_id,
			meeting.topic,
			meeting.scheduled_ts,
			meeting.location,
			meeting.description,
			meeting.status,
			meeting.created_ts,
			meeting.updated_ts,
			condominium.name AS condominium_name
		FROM meeting
		JOIN condominium ON condominium.id = meeting.condominium_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY meeting.scheduled_ts DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*store.Meeting{}
	for rows.Next() {
		meeting := &store.Meeting{}
		if err := rows.Scan(
			&meeting.ID,
			&meeting.CondominiumID,
			&meeting.Topic,
			&meeting.ScheduledTs,
			&meeting.Location,
			&meeting.Description,
			&meeting.Status,
			&meeting.CreatedTs,
			&meeting.UpdatedTs,
			&meeting.CondominiumName,
		); err != nil {
			return nil, err
		}
		list = append(list, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
