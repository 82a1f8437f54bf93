package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createMessage = `
INSERT INTO messages (sender_id, receiver_id, body, image_key)
VALUES ($1, $2, $3, $4)
RETURNING id, sender_id, receiver_id, body, image_key, seen, created_at
`

// CreateMessageParams holds the fields for a new message. At least one of
// Body and ImageKey must be non-empty; the table enforces the same check.
type CreateMessageParams struct {
	SenderID   pgtype.UUID
	ReceiverID pgtype.UUID
	Body       string
	ImageKey   string
}

// CreateMessage persists a new message and returns the full row, including
// the generated id and timestamp.
func (s *Store) CreateMessage(ctx context.Context, arg CreateMessageParams) (Message, error) {
	row := s.pool.QueryRow(ctx, createMessage, arg.SenderID, arg.ReceiverID, arg.Body, arg.ImageKey)

	var m Message
	err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.ImageKey, &m.Seen, &m.CreatedAt)
	return m, err
}

const listConversation = `
SELECT id, sender_id, receiver_id, body, image_key, seen, created_at
FROM messages
WHERE (sender_id = $1 AND receiver_id = $2)
   OR (sender_id = $2 AND receiver_id = $1)
ORDER BY created_at ASC
`

// ListConversation returns every message exchanged between the two users,
// oldest first. Per-conversation ordering is this sort, not delivery order
// over the live channel.
func (s *Store) ListConversation(ctx context.Context, a, b pgtype.UUID) ([]Message, error) {
	rows, err := s.pool.Query(ctx, listConversation, a, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.ImageKey, &m.Seen, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

const markConversationSeen = `
UPDATE messages
SET seen = true
WHERE sender_id = $1 AND receiver_id = $2 AND seen = false
`

// MarkConversationSeen flips every unseen message from sender to receiver to
// seen in one write. Returns the number of rows updated.
func (s *Store) MarkConversationSeen(ctx context.Context, senderID, receiverID pgtype.UUID) (int64, error) {
	tag, err := s.pool.Exec(ctx, markConversationSeen, senderID, receiverID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const markMessageSeen = `
UPDATE messages
SET seen = true
WHERE id = $1
RETURNING id, sender_id, receiver_id, body, image_key, seen, created_at
`

// MarkMessageSeen flips a single message to seen. Marking an already-seen
// message is a no-op that still succeeds. Returns ErrNotFound when the id
// does not exist.
func (s *Store) MarkMessageSeen(ctx context.Context, id pgtype.UUID) (Message, error) {
	row := s.pool.QueryRow(ctx, markMessageSeen, id)

	var m Message
	err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.ImageKey, &m.Seen, &m.CreatedAt)
	return m, err
}

const countUnseenBySender = `
SELECT sender_id, COUNT(*)
FROM messages
WHERE receiver_id = $1 AND seen = false
GROUP BY sender_id
`

// CountUnseenBySender returns, for the given viewer, the number of unseen
// messages grouped by counterpart sender. Senders with zero unseen messages
// are absent from the map. Nothing is cached; every roster fetch recomputes
// from the seen flags.
func (s *Store) CountUnseenBySender(ctx context.Context, receiverID pgtype.UUID) (map[string]int64, error) {
	rows, err := s.pool.Query(ctx, countUnseenBySender, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var senderID pgtype.UUID
		var count int64
		if err := rows.Scan(&senderID, &count); err != nil {
			return nil, err
		}
		counts[senderID.String()] = count
	}
	return counts, rows.Err()
}
