package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/quilicura/micondominio/store"
)

func (d *DB) CreateChatSession(ctx context.Context, create *store.ChatSession) (*store.ChatSession, error) {
	fields := []string{"uid", "user_id", "title", "active", "created_ts", "updated_ts"}
	args := []any{create.UID, create.UserID, create.Title, create.Active, create.CreatedTs, create.UpdatedTs}
	stmt := `INSERT INTO chat_session (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create chat_session: %w", err)
	}
	return create, nil
}

func (d *DB) ListChatSessions(ctx context.Context, find *store.FindChatSession) ([]*store.ChatSession, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.UID != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *find.UID)
	}
	if find.UserID != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *find.UserID)
	}
	if find.Active != nil {
		where, args = append(where, "active = "+placeholder(len(args)+1)), append(args, *find.Active)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, uid, user_id, title, active, created_ts, updated_ts
		FROM chat_session
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY updated_ts DESC, id DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat_sessions: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ChatSession, 0)
	for rows.Next() {
		session := &store.ChatSession{}
		if err := rows.Scan(
			&session.ID, &session.UID, &session.UserID, &session.Title, &session.Active,
			&session.CreatedTs, &session.UpdatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chat_session: %w", err)
		}
		list = append(list, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat_sessions: %w", err)
	}
	return list, nil
}

func (d *DB) UpdateChatSession(ctx context.Context, update *store.UpdateChatSession) (*store.ChatSession, error) {
	set, args := []string{}, []any{}
	if update.Title != nil {
		set, args = append(set, "title = "+placeholder(len(args)+1)), append(args, *update.Title)
	}
	if update.Active != nil {
		set, args = append(set, "active = "+placeholder(len(args)+1)), append(args, *update.Active)
	}
	if update.UpdatedTs != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *update.UpdatedTs)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	args = append(args, update.ID)
	stmt := `UPDATE chat_session SET ` + strings.Join(set, ", ") + `
		WHERE id = ` + placeholder(len(args)) + `
		RETURNING id, uid, user_id, title, active, created_ts, updated_ts`
	session := &store.ChatSession{}
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&session.ID, &session.UID, &session.UserID, &session.Title, &session.Active,
		&session.CreatedTs, &session.UpdatedTs,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("chat_session not found")
		}
		return nil, fmt.Errorf("failed to update chat_session: %w", err)
	}
	return session, nil
}

func (d *DB) CreateChatMessage(ctx context.Context, create *store.ChatMessage) (*store.ChatMessage, error) {
	var pendingAction *string
	if len(create.PendingAction) != 0 {
		s := string(create.PendingAction)
		pendingAction = &s
	}

	fields := []string{"session_id", "role", "content", "tokens_used", "pending_action", "created_ts"}
	args := []any{create.SessionID, create.Role, create.Content, create.TokensUsed, pendingAction, create.CreatedTs}
	stmt := `INSERT INTO chat_message (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create chat_message: %w", err)
	}
	return create, nil
}

func (d *DB) ListChatMessages(ctx context.Context, find *store.FindChatMessage) ([]*store.ChatMessage, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.SessionID != nil {
		where, args = append(where, "session_id = "+placeholder(len(args)+1)), append(args, *find.SessionID)
	}
	if find.Role != nil {
		where, args = append(where, "role = "+placeholder(len(args)+1)), append(args, *find.Role)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, tokens_used, pending_action, created_ts
		FROM chat_message
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat_messages: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ChatMessage, 0)
	for rows.Next() {
		message := &store.ChatMessage{}
		var pendingAction *string
		if err := rows.Scan(
			&message.ID, &message.SessionID, &message.Role, &message.Content,
			&message.TokensUsed, &pendingAction, &message.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chat_message: %w", err)
		}
		if pendingAction != nil {
			message.PendingAction = []byte(*pendingAction)
		}
		list = append(list, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat_messages: %w", err)
	}
	return list, nil
}
