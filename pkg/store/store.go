// Package store keeps serialized GDL documents so that they can be listed and
// fetched again later, e.g. by the HTTP API or a viewer.
//
// Three backends implement [Store]:
//   - [MemoryStore]: in-process, for tests and a server without a database
//   - [FileStore]: one JSON file per document, used by the CLI
//   - [MongoStore]: shared storage for the HTTP server
//
// Documents are keyed by the hash of their GDL text. Saving a document whose
// text is already stored returns the existing record instead of a duplicate.
//
// # Usage
//
//	rec := store.NewRecord(g.Title(), g.String())
//	if err := s.Save(ctx, rec); err != nil {
//	    return err
//	}
//	fmt.Println(rec.ID) // stable for identical text
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gdlkit/pkg/cache"
	"github.com/matzehuels/gdlkit/pkg/errors"
)

// Record is a stored document.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Hash      string    `json:"hash" bson:"hash"`
	GDL       string    `json:"gdl,omitempty" bson:"gdl,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewRecord creates a record for the given document text with a fresh ID.
func NewRecord(title, gdl string) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Title:     title,
		Hash:      cache.Hash([]byte(gdl)),
		GDL:       gdl,
		CreatedAt: time.Now().UTC(),
	}
}

// Summary returns a copy of r without its document text.
func (r *Record) Summary() *Record {
	s := *r
	s.GDL = ""
	return &s
}

// Store is the interface for document storage backends.
type Store interface {
	// Save stores rec. If a record with the same hash exists, rec is
	// overwritten with the stored record and nothing is written.
	Save(ctx context.Context, rec *Record) error

	// Get returns the record with the given ID. A missing record is an
	// error with code NOT_FOUND.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first, without their
	// document text. A limit of zero or less means no limit.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Close releases the backend's resources.
	Close() error
}

// DefaultListLimit is used by callers that do not choose a limit.
const DefaultListLimit = 50

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "document %s not found", id)
}

// ValidateID reports whether id is a well-formed record ID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid document id %q", id)
	}
	return nil
}
