package sqlite

import (
	"context"
	"strings"

	"github.com/quilicura/micondominio/store"
)

func (d *DB) CreateChatSession(ctx context.Context, create *store.ChatSession) (*store.ChatSession, error) {
	stmt := `
		INSERT INTO chat_session (uid, user_id, title, active, created_ts, updated_ts)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID,
		create.UserID,
		create.Title,
		create.Active,
		create.CreatedTs,
		create.UpdatedTs,
	).Scan(&create.ID); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListChatSessions(ctx context.Context, find *store.FindChatSession) ([]*store.ChatSession, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = ?"), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}
	if v := find.Active; v != nil {
		where, args = append(where, "active = ?"), append(args, *v)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, uid, user_id, title, active, created_ts, updated_ts
		FROM chat_session
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY updated_ts DESC, id DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*store.ChatSession{}
	for rows.Next() {
		session := &store.ChatSession{}
		if err := rows.Scan(
			&session.ID,
			&session.UID,
			&session.UserID,
			&session.Title,
			&session.Active,
			&session.CreatedTs,
			&session.UpdatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) UpdateChatSession(ctx context.Context, update *store.UpdateChatSession) (*store.ChatSession, error) {
	set, args := []string{}, []any{}
	if v := update.Title; v != nil {
		set, args = append(set, "title = ?"), append(args, *v)
	}
	if v := update.Active; v != nil {
		set, args = append(set, "active = ?"), append(args, *v)
	}
	if v := update.UpdatedTs; v != nil {
		set, args = append(set, "updated_ts = ?"), append(args, *v)
	}
	args = append(args, update.ID)

	session := &store.ChatSession{}
	if err := d.db.QueryRowContext(ctx, `
		UPDATE chat_session
		SET `+strings.Join(set, ", ")+`
		WHERE id = ?
		RETURNING id, uid, user_id, title, active, created_ts, updated_ts`,
		args...,
	).Scan(
		&session.ID,
		&session.UID,
		&session.UserID,
		&session.Title,
		&session.Active,
		&session.CreatedTs,
		&session.UpdatedTs,
	); err != nil {
		return nil, err
	}
	return session, nil
}

func (d *DB) CreateChatMessage(ctx context.Context, create *store.ChatMessage) (*store.ChatMessage, error) {
	var pendingAction *string
	if len(create.PendingAction) != 0 {
		s := string(create.PendingAction)
		pendingAction = &s
	}

	stmt := `
		INSERT INTO chat_message (session_id, role, content, tokens_used, pending_action, created_ts)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.SessionID,
		create.Role,
		create.Content,
		create.TokensUsed,
		pendingAction,
		create.CreatedTs,
	).Scan(&create.ID); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListChatMessages(ctx context.Context, find *store.FindChatMessage) ([]*store.ChatMessage, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.SessionID; v != nil {
		where, args = append(where, "session_id = ?"), append(args, *v)
	}
	if v := find.Role; v != nil {
		where, args = append(where, "role = ?"), append(args, *v)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, tokens_used, pending_action, created_ts
		FROM chat_message
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY id`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*store.ChatMessage{}
	for rows.Next() {
		message := &store.ChatMessage{}
		var pendingAction *string
		if err := rows.Scan(
			&message.ID,
			&message.SessionID,
			&message.Role,
			&message.Content,
			&message.TokensUsed,
			&pendingAction,
			&message.CreatedTs,
		); err != nil {
			return nil, err
		}
		if pendingAction != nil {
			message.PendingAction = []byte(*pendingAction)
		}
		list = append(list, message)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
