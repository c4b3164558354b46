package llmc

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// Write schema. New files always use string-keyed tables with JSON-encoded
// sub-structures; the alternate dialect below exists for reading only.
const writeSchema = `
CREATE TABLE messages (
	id          TEXT PRIMARY KEY,
	role        TEXT NOT NULL,
	content     TEXT NOT NULL,
	timestamp   TEXT NOT NULL,
	parent_id   TEXT,
	attachments TEXT,
	metadata    TEXT
);
CREATE TABLE attachments (
	id           TEXT PRIMARY KEY,
	filename     TEXT NOT NULL,
	content_type TEXT NOT NULL,
	size         INTEGER NOT NULL,
	data         BLOB NOT NULL,
	created_at   TEXT,
	metadata     TEXT
);
CREATE INDEX idx_messages_timestamp ON messages(timestamp);
CREATE INDEX idx_messages_parent_id ON messages(parent_id);
`

func createSchema(db *sql.DB) error {
	_, err := db.Exec(writeSchema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func insertMessages(db *sql.DB, messages []Message) error {
	for i, m := range messages {
		var attachmentsJSON, metadataJSON *string
		if len(m.Attachments) > 0 {
			b, err := json.Marshal(m.Attachments)
			if err != nil {
				return fmt.Errorf("message %d: encode attachments: %w", i, err)
			}
			s := string(b)
			attachmentsJSON = &s
		}
		if len(m.Metadata) > 0 {
			b, err := json.Marshal(m.Metadata)
			if err != nil {
				return fmt.Errorf("message %d: encode metadata: %w", i, err)
			}
			s := string(b)
			metadataJSON = &s
		}

		var parentID *string
		if m.ParentID != "" {
			parentID = &m.ParentID
		}

		_, err := db.Exec(
			`INSERT INTO messages (id, role, content, timestamp, parent_id, attachments, metadata)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.ID, string(m.Role), m.Content, m.Timestamp, parentID, attachmentsJSON, metadataJSON)
		if err != nil {
			return fmt.Errorf("insert message %q: %w", m.ID, err)
		}
	}
	return nil
}

func insertAttachments(db *sql.DB, attachments []Attachment) error {
	for _, a := range attachments {
		var metadataJSON *string
		if len(a.Metadata) > 0 {
			b, err := json.Marshal(a.Metadata)
			if err != nil {
				return fmt.Errorf("attachment %q: encode metadata: %w", a.ID, err)
			}
			s := string(b)
			metadataJSON = &s
		}

		var createdAt *string
		if a.CreatedAt != "" {
			createdAt = &a.CreatedAt
		}

		_, err := db.Exec(
			`INSERT INTO attachments (id, filename, content_type, size, data, created_at, metadata)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Filename, a.ContentType, a.Size, a.Data, createdAt, metadataJSON)
		if err != nil {
			return fmt.Errorf("insert attachment %q: %w", a.ID, err)
		}
	}
	return nil
}

// detectDialectAndLoad reads messages and attachments out of an opened store,
// resolving which of the two known schema dialects it uses. Detection is a
// deliberate fail-and-retry probe: the surrogate-key dialect's query runs
// first, and a missing-relation error selects the string-key write schema
// instead.
func detectDialectAndLoad(db *sql.DB) ([]Message, []Attachment, error) {
	messages, err := loadSurrogateMessages(db)
	if err != nil {
		if !isMissingRelation(err) {
			return nil, nil, err
		}
		messages, err = loadNativeMessages(db)
		if err != nil {
			if isMissingRelation(err) {
				return nil, nil, wrapFormat(err, "unsupported database schema")
			}
			return nil, nil, err
		}
	}

	attachments, err := loadAttachments(db)
	if err != nil {
		return nil, nil, err
	}
	return messages, attachments, nil
}

// isMissingRelation reports whether err is SQLite's missing table or column
// condition, the signal that a dialect probe hit the wrong schema.
func isMissingRelation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such table") || strings.Contains(msg, "no such column")
}

// loadSurrogateMessages reads the alternate dialect: integer surrogate keys,
// an explicit sequence column, and attachments joined through a message_id
// foreign key. String IDs are synthesized with fixed prefixes so parent and
// attachment references stay consistent with the canonical entity shape.
func loadSurrogateMessages(db *sql.DB) ([]Message, error) {
	rows, err := db.Query(`
		SELECT m.id, m.role, m.content, m.timestamp, m.parent_id, m.metadata,
		       GROUP_CONCAT(a.id) AS attachment_ids
		FROM messages m
		LEFT JOIN attachments a ON a.message_id = m.id
		GROUP BY m.id, m.role, m.content, m.timestamp, m.parent_id, m.metadata
		ORDER BY m.sequence, m.timestamp`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var id int64
		var role, content, timestamp string
		var parentID sql.NullInt64
		var metadataJSON, attachmentIDs sql.NullString

		if err := rows.Scan(&id, &role, &content, &timestamp, &parentID, &metadataJSON, &attachmentIDs); err != nil {
			return nil, err
		}

		m := Message{
			ID:        fmt.Sprintf("%s%d", messageIDPrefix, id),
			Role:      Role(role),
			Content:   content,
			Timestamp: timestamp,
		}
		if parentID.Valid {
			m.ParentID = fmt.Sprintf("%s%d", messageIDPrefix, parentID.Int64)
		}
		if attachmentIDs.Valid && attachmentIDs.String != "" {
			for _, aid := range strings.Split(attachmentIDs.String, ",") {
				if aid != "" {
					m.Attachments = append(m.Attachments, attachmentIDPrefix+aid)
				}
			}
		}
		// Malformed metadata JSON is dropped, not fatal.
		if metadataJSON.Valid && metadataJSON.String != "" {
			json.Unmarshal([]byte(metadataJSON.String), &m.Metadata)
		}

		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// loadNativeMessages reads the write schema: string primary keys and a JSON
// array of attachment IDs on each message row.
func loadNativeMessages(db *sql.DB) ([]Message, error) {
	rows, err := db.Query(`
		SELECT id, role, content, timestamp, parent_id, attachments, metadata
		FROM messages
		ORDER BY timestamp`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		var role string
		var parentID, attachmentsJSON, metadataJSON sql.NullString

		if err := rows.Scan(&m.ID, &role, &m.Content, &m.Timestamp, &parentID, &attachmentsJSON, &metadataJSON); err != nil {
			return nil, err
		}
		m.Role = Role(role)
		if parentID.Valid {
			m.ParentID = parentID.String
		}
		if attachmentsJSON.Valid && attachmentsJSON.String != "" {
			if err := json.Unmarshal([]byte(attachmentsJSON.String), &m.Attachments); err != nil {
				return nil, wrapFormat(err, "message %q: invalid attachment ID list", m.ID)
			}
		}
		if metadataJSON.Valid && metadataJSON.String != "" {
			json.Unmarshal([]byte(metadataJSON.String), &m.Metadata)
		}

		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// loadAttachments probes the surrogate dialect (checksum column, integer
// keys) first, then the write schema (created_at column). A store with no
// attachments table at all simply has no attachments.
func loadAttachments(db *sql.DB) ([]Attachment, error) {
	attachments, err := loadSurrogateAttachments(db)
	if err == nil {
		return attachments, nil
	}
	if !isMissingRelation(err) {
		return nil, err
	}

	attachments, err = loadNativeAttachments(db)
	if err == nil {
		return attachments, nil
	}
	if isMissingRelation(err) {
		return nil, nil
	}
	return nil, err
}

func loadSurrogateAttachments(db *sql.DB) ([]Attachment, error) {
	rows, err := db.Query(`
		SELECT id, filename, content_type, size, data, checksum, metadata
		FROM attachments`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []Attachment
	for rows.Next() {
		var id int64
		var a Attachment
		var checksum, metadataJSON sql.NullString

		if err := rows.Scan(&id, &a.Filename, &a.ContentType, &a.Size, &a.Data, &checksum, &metadataJSON); err != nil {
			return nil, err
		}
		a.ID = fmt.Sprintf("%s%d", attachmentIDPrefix, id)
		if metadataJSON.Valid && metadataJSON.String != "" {
			json.Unmarshal([]byte(metadataJSON.String), &a.Metadata)
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

func loadNativeAttachments(db *sql.DB) ([]Attachment, error) {
	rows, err := db.Query(`
		SELECT id, filename, content_type, size, data, created_at, metadata
		FROM attachments`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []Attachment
	for rows.Next() {
		var a Attachment
		var createdAt, metadataJSON sql.NullString

		if err := rows.Scan(&a.ID, &a.Filename, &a.ContentType, &a.Size, &a.Data, &createdAt, &metadataJSON); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			a.CreatedAt = createdAt.String
		}
		if metadataJSON.Valid && metadataJSON.String != "" {
			json.Unmarshal([]byte(metadataJSON.String), &a.Metadata)
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}
