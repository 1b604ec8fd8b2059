package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/quilicura/micondominio/store"
)

func (d *DB) CreateRegion(ctx context.Context, create *store.Region) (*store.Region, error) {
	fields := []string{"code", "name", "created_ts", "updated_ts"}
	args := []any{create.Code, create.Name, create.CreatedTs, create.UpdatedTs}
	stmt := `INSERT INTO region (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create region: %w", err)
	}
	return create, nil
}

func (d *DB) ListRegions(ctx context.Context, find *store.FindRegion) ([]*store.Region, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.NameLike != nil {
		where, args = append(where, "name ILIKE "+placeholder(len(args)+1)), append(args, "%"+*find.NameLike+"%")
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, code, name, created_ts, updated_ts
		FROM region
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Region, 0)
	for rows.Next() {
		region := &store.Region{}
		if err := rows.Scan(&region.ID, &region.Code, &region.Name, &region.CreatedTs, &region.UpdatedTs); err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		list = append(list, region)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate regions: %w", err)
	}
	return list, nil
}

func (d *DB) CreateCommune(ctx context.Context, create *store.Commune) (*store.Commune, error) {
	fields := []string{"region_id", "name", "created_ts", "updated_ts"}
	args := []any{create.RegionID, create.Name, create.CreatedTs, create.UpdatedTs}
	stmt := `INSERT INTO commune (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create commune: %w", err)
	}
	return create, nil
}

func (d *DB) ListCommunes(ctx context.Context, find *store.FindCommune) ([]*store.Commune, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.RegionID != nil {
		where, args = append(where, "region_id = "+placeholder(len(args)+1)), append(args, *find.RegionID)
	}
	if find.NameLike != nil {
		where, args = append(where, "name ILIKE "+placeholder(len(args)+1)), append(args, "%"+*find.NameLike+"%")
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, region_id, name, created_ts, updated_ts
		FROM commune
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY name`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list communes: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Commune, 0)
	for rows.Next() {
		commune := &store.Commune{}
		if err := rows.Scan(&commune.ID, &commune.RegionID, &commune.Name, &commune.CreatedTs, &commune.UpdatedTs); err != nil {
			return nil, fmt.Errorf("failed to scan commune: %w", err)
		}
		list = append(list, commune)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate communes: %w", err)
	}
	return list, nil
}

func (d *DB) CreateCondominium(ctx context.Context, create *store.Condominium) (*store.Condominium, error) {
	fields := []string{"rut", "name", "address", "region_id", "commune_id", "contact_email", "created_ts", "updated_ts"}
	args := []any{create.RUT, create.Name, create.Address, create.RegionID, create.CommuneID, create.ContactEmail, create.CreatedTs, create.UpdatedTs}
	stmt := `INSERT INTO condominium (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create condominium: %w", err)
	}
	return create, nil
}

func (d *DB) ListCondominiums(ctx context.Context, find *store.FindCondominium) ([]*store.Condominium, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "c.id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.NameLike != nil {
		where, args = append(where, "c.name ILIKE "+placeholder(len(args)+1)), append(args, "%"+*find.NameLike+"%")
	}
	if find.RegionNameLike != nil {
		where, args = append(where, "r.name ILIKE "+placeholder(len(args)+1)), append(args, "%"+*find.RegionNameLike+"%")
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT
			c.id, c.rut, c.name, c.address, c.region_id, c.commune_id, c.contact_email, c.created_ts, c.updated_ts,
			r.name AS region_name,
			co.name AS commune_name
		FROM condominium c
		JOIN region r ON r.id = c.region_id
		JOIN commune co ON co.id = c.commune_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY c.name`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list condominiums: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Condominium, 0)
	for rows.Next() {
		c := &store.Condominium{}
		if err := rows.Scan(
			&c.ID, &c.RUT, &c.Name, &c.Address, &c.RegionID, &c.CommuneID, &c.ContactEmail, &c.CreatedTs, &c.UpdatedTs,
			&c.RegionName, &c.CommuneName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan condominium: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate condominiums: %w", err)
	}
	return list, nil
}

func (d *DB) CreateUser(ctx context.Context, create *store.User) (*store.User, error) {
	fields := []string{"condominium_id", "first_names", "last_name", "rut", "email", "phone", "residence", "password_hash", "role", "account_status", "created_ts", "updated_ts"}
	args := []any{create.CondominiumID, create.FirstNames, create.LastName, create.RUT, create.Email, create.Phone, create.Residence, create.PasswordHash, create.Role, create.AccountStatus, create.CreatedTs, create.UpdatedTs}
	stmt := `INSERT INTO "user" (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return create, nil
}

func (d *DB) ListUsers(ctx context.Context, find *store.FindUser) ([]*store.User, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "u.id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.CondominiumID != nil {
		where, args = append(where, "u.condominium_id = "+placeholder(len(args)+1)), append(args, *find.CondominiumID)
	}
	if find.Email != nil {
		where, args = append(where, "LOWER(u.email) = LOWER("+placeholder(len(args)+1)+")"), append(args, *find.Email)
	}
	if find.FirstNamesLike != nil {
		where, args = append(where, "u.first_names ILIKE "+placeholder(len(args)+1)), append(args, "%"+*find.FirstNamesLike+"%")
	}
	if find.LastNameLike != nil {
		where, args = append(where, "u.last_name ILIKE "+placeholder(len(args)+1)), append(args, "%"+*find.LastNameLike+"%")
	}
	if find.CondominiumNameLike != nil {
		where, args = append(where, "c.name ILIKE "+placeholder(len(args)+1)), append(args, "%"+*find.CondominiumNameLike+"%")
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT
			u.id, u.condominium_id, u.first_names, u.last_name, u.rut, u.email, u.phone, u.residence,
			u.password_hash, u.role, u.account_status, u.created_ts, u.updated_ts,
			c.name AS condominium_name
		FROM "user" u
		JOIN condominium c ON c.id = u.condominium_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY u.last_name, u.first_names`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	list := make([]*store.User, 0)
	for rows.Next() {
		u := &store.User{}
		if err := rows.Scan(
			&u.ID, &u.CondominiumID, &u.FirstNames, &u.LastName, &u.RUT, &u.Email, &u.Phone, &u.Residence,
			&u.PasswordHash, &u.Role, &u.AccountStatus, &u.CreatedTs, &u.UpdatedTs,
			&u.CondominiumName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return list, nil
}

func (d *DB) CreateIncidentCategory(ctx context.Context, create *store.IncidentCategory) (*store.IncidentCategory, error) {
	stmt := `INSERT INTO incident_category (name, created_ts)
		VALUES (` + placeholders(2) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, create.Name, create.CreatedTs).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create incident_category: %w", err)
	}
	return create, nil
}

func (d *DB) ListIncidentCategories(ctx context.Context, find *store.FindIncidentCategory) ([]*store.IncidentCategory, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.NameLike != nil {
		where, args = append(where, "name ILIKE "+placeholder(len(args)+1)), append(args, "%"+*find.NameLike+"%")
	}
	if find.NameEqual != nil {
		where, args = append(where, "LOWER(name) = LOWER("+placeholder(len(args)+1)+")"), append(args, *find.NameEqual)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, created_ts
		FROM incident_category
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY name`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list incident_categories: %w", err)
	}
	defer rows.Close()

	list := make([]*store.IncidentCategory, 0)
	for rows.Next() {
		category := &store.IncidentCategory{}
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedTs); err != nil {
			return nil, fmt.Errorf("failed to scan incident_category: %w", err)
		}
		list = append(list, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incident_categories: %w", err)
	}
	return list, nil
}

func (d *DB) CreateIncident(ctx context.Context, create *store.Incident) (*store.Incident, error) {
	fields := []string{"condominium_id", "category_id", "reporter_id", "title", "description", "status", "priority", "address", "latitude", "longitude", "reported_ts", "closed_ts", "created_ts", "updated_ts"}
	args := []any{create.CondominiumID, create.CategoryID, create.ReporterID, create.Title, create.Description, create.Status, create.Priority, create.Address, create.Latitude, create.Longitude, create.ReportedTs, create.ClosedTs, create.CreatedTs, create.UpdatedTs}
	stmt := `INSERT INTO incident (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}
	return create, nil
}

func (d *DB) ListIncidents(ctx context.Context, find *store.FindIncident) ([]*store.Incident, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "i.id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.CondominiumID != nil {
		where, args = append(where, "i.condominium_id = "+placeholder(len(args)+1)), append(args, *find.CondominiumID)
	}
	if find.CondominiumNameLike != nil {
		where, args = append(where, "c.name ILIKE "+placeholder(len(args)+1)), append(args, "%"+*find.CondominiumNameLike+"%")
	}
	if find.CategoryID != nil {
		where, args = append(where, "i.category_id = "+placeholder(len(args)+1)), append(args, *find.CategoryID)
	}
	if find.Status != nil {
		where, args = append(where, "i.status = "+placeholder(len(args)+1)), append(args, *find.Status)
	}
	if find.Priority != nil {
		where, args = append(where, "i.priority = "+placeholder(len(args)+1)), append(args, *find.Priority)
	}
	if len(find.ExcludeStatuses) > 0 {
		marks := []string{}
		for _, status := range find.ExcludeStatuses {
			marks, args = append(marks, placeholder(len(args)+1)), append(args, status)
		}
		where = append(where, "i.status NOT IN ("+strings.Join(marks, ", ")+")")
	}
	if find.SearchTerm != nil {
		term := "%" + *find.SearchTerm + "%"
		where = append(where, "(i.title ILIKE "+placeholder(len(args)+1)+" OR i.description ILIKE "+placeholder(len(args)+2)+")")
		args = append(args, term, term)
	}
	if find.ReportedAfterTs != nil {
		where, args = append(where, "i.reported_ts >= "+placeholder(len(args)+1)), append(args, *find.ReportedAfterTs)
	}

	query := `
		SELECT
			i.id, i.condominium_id, i.category_id, i.reporter_id, i.title, i.description,
			i.status, i.priority, i.address, i.latitude, i.longitude,
			i.reported_ts, i.closed_ts, i.created_ts, i.updated_ts,
			c.name AS condominium_name,
			cat.name AS category_name,
			u.first_names || ' ' || u.last_name AS reporter_name
		FROM incident i
		JOIN condominium c ON c.id = i.condominium_id
		JOIN incident_category cat ON cat.id = i.category_id
		JOIN "user" u ON u.id = i.reporter_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY i.reported_ts DESC`
	if find.Limit != nil {
		query += fmt.Sprintf(" LIMIT %d", *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Incident, 0)
	for rows.Next() {
		i := &store.Incident{}
		if err := rows.Scan(
			&i.ID, &i.CondominiumID, &i.CategoryID, &i.ReporterID, &i.Title, &i.Description,
			&i.Status, &i.Priority, &i.Address, &i.Latitude, &i.Longitude,
			&i.ReportedTs, &i.ClosedTs, &i.CreatedTs, &i.UpdatedTs,
			&i.CondominiumName, &i.CategoryName, &i.ReporterName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		list = append(list, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incidents: %w", err)
	}
	return list, nil
}

func (d *DB) CreateIncidentLog(ctx context.Context, create *store.IncidentLog) (*store.IncidentLog, error) {
	fields := []string{"incident_id", "action", "detail", "created_ts"}
	args := []any{create.IncidentID, create.Action, create.Detail, create.CreatedTs}
	stmt := `INSERT INTO incident_log (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create incident_log: %w", err)
	}
	return create, nil
}

func (d *DB) ListIncidentLogs(ctx context.Context, find *store.FindIncidentLog) ([]*store.IncidentLog, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.IncidentID != nil {
		where, args = append(where, "incident_id = "+placeholder(len(args)+1)), append(args, *find.IncidentID)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, incident_id, action, detail, created_ts
		FROM incident_log
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY created_ts DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list incident_logs: %w", err)
	}
	defer rows.Close()

	list := make([]*store.IncidentLog, 0)
	for rows.Next() {
		log := &store.IncidentLog{}
		if err := rows.Scan(&log.ID, &log.IncidentID, &log.Action, &log.Detail, &log.CreatedTs); err != nil {
			return nil, fmt.Errorf("failed to scan incident_log: %w", err)
		}
		list = append(list, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incident_logs: %w", err)
	}
	return list, nil
}

func (d *DB) CreateSanction(ctx context.Context, create *store.Sanction) (*store.Sanction, error) {
	fields := []string{"condominium_id", "reporter_id", "type", "reason", "reason_detail", "offender_first_name", "offender_last_name", "offender_rut", "apartment_number", "sanction_ts", "payment_due_ts", "created_ts", "updated_ts"}
	args := []any{create.CondominiumID, create.ReporterID, create.Type, create.Reason, create.ReasonDetail, create.OffenderFirstName, create.OffenderLastName, create.OffenderRUT, create.ApartmentNumber, create.SanctionTs, create.PaymentDueTs, create.CreatedTs, create.UpdatedTs}
	stmt := `INSERT INTO sanction (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create sanction: %w", err)
	}
	return create, nil
}

func (d *DB) ListSanctions(ctx context.Context, find *store.FindSanction) ([]*store.Sanction, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "s.id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.CondominiumID != nil {
		where, args = append(where, "s.condominium_id = "+placeholder(len(args)+1)), append(args, *find.CondominiumID)
	}
	if find.SanctionAfterTs != nil {
		where, args = append(where, "s.sanction_ts >= "+placeholder(len(args)+1)), append(args, *find.SanctionAfterTs)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT
			s.id, s.condominium_id, s.reporter_id, s.type, s.reason, s.reason_detail,
			s.offender_first_name, s.offender_last_name, s.offender_rut, s.apartment_number,
			s.sanction_ts, s.payment_due_ts, s.created_ts, s.updated_ts,
			c.name AS condominium_name,
			u.first_names || ' ' || u.last_name AS reporter_name
		FROM sanction s
		JOIN condominium c ON c.id = s.condominium_id
		JOIN "user" u ON u.id = s.reporter_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY s.sanction_ts DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sanctions: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Sanction, 0)
	for rows.Next() {
		s := &store.Sanction{}
		if err := rows.Scan(
			&s.ID, &s.CondominiumID, &s.ReporterID, &s.Type, &s.Reason, &s.ReasonDetail,
			&s.OffenderFirstName, &s.OffenderLastName, &s.OffenderRUT, &s.ApartmentNumber,
			&s.SanctionTs, &s.PaymentDueTs, &s.CreatedTs, &s.UpdatedTs,
			&s.CondominiumName, &s.ReporterName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sanction: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sanctions: %w", err)
	}
	return list, nil
}

func (d *DB) CreateMeeting(ctx context.Context, create *store.Meeting) (*store.Meeting, error) {
	fields := []string{"condominium_id", "topic", "scheduled_ts", "location", "description", "status", "created_ts", "updated_ts"}
	args := []any{create.CondominiumID, create.Topic, create.ScheduledTs, create.Location, create.Description, create.Status, create.CreatedTs, create.UpdatedTs}
	stmt := `INSERT INTO meeting (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}
	return create, nil
}

func (d *DB) ListMeetings(ctx context.Context, find *store.FindMeeting) ([]*store.Meeting, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "m.id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.CondominiumID != nil {
		where, args = append(where, "m.condominium_id = "+placeholder(len(args)+1)), append(args, *find.CondominiumID)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT
			m.id, m.condominium_id, m.topic, m.scheduled_ts, m.location, m.description, m.status,
			m.created_ts, m.updated_ts,
			c.name AS condominium_name
		FROM meeting m
		JOIN condominium c ON c.id = m.condominium_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY m.scheduled_ts DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Meeting, 0)
	for rows.Next() {
		m := &store.Meeting{}
		if err := rows.Scan(
			&m.ID, &m.CondominiumID, &m.Topic, &m.ScheduledTs, &m.Location, &m.Description, &m.Status,
			&m.CreatedTs, &m.UpdatedTs,
			&m.CondominiumName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meetings: %w", err)
	}
	return list, nil
}
