package llmc

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// The store section is materialized through a transient on-disk SQLite
// database scoped to a single parse or write call. The staging file is
// created fresh, exclusively owned by the call, and removed on every exit
// path.

// stagingFile reserves a temp path for the staging database and returns it
// with its cleanup func.
func stagingFile() (string, func(), error) {
	f, err := os.CreateTemp("", "llmc-store-*.db")
	if err != nil {
		return "", nil, fmt.Errorf("create staging file: %w", err)
	}
	path := f.Name()
	f.Close()
	return path, func() { os.Remove(path) }, nil
}

// renderStore serializes a conversation's messages and attachments into a
// standalone SQLite database image stamped with the variant's application ID.
func renderStore(conv *Conversation, v Variant) ([]byte, error) {
	path, cleanup, err := stagingFile()
	if err != nil {
		return nil, err
	}
	defer cleanup()
	os.Remove(path) // sqlite must create the database itself

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open staging db: %w", err)
	}

	err = func() error {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA application_id = %d;", v.AppID)); err != nil {
			return fmt.Errorf("set application ID: %w", err)
		}
		if err := createSchema(db); err != nil {
			return err
		}
		if err := insertMessages(db, conv.Messages); err != nil {
			return err
		}
		return insertAttachments(db, conv.Attachments)
	}()
	if cerr := db.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close staging db: %w", cerr)
	}
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read staging db: %w", err)
	}
	return data, nil
}

// loadStore opens the store section bytes as a SQLite database, verifies the
// variant's application ID, and loads messages and attachments through the
// dialect probe.
func loadStore(data []byte, v Variant) ([]Message, []Attachment, error) {
	path, cleanup, err := stagingFile()
	if err != nil {
		return nil, nil, err
	}
	defer cleanup()

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, nil, fmt.Errorf("write staging db: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open staging db: %w", err)
	}
	defer db.Close()

	var appID int32
	if err := db.QueryRow("PRAGMA application_id;").Scan(&appID); err != nil {
		return nil, nil, wrapFormat(err, "unreadable store section")
	}
	if appID != v.AppID {
		return nil, nil, formatErrf("invalid store application ID: %#x", uint32(appID))
	}

	return detectDialectAndLoad(db)
}
