package expense

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/MeKo-Tech/receiptly/internal/extract"
)

const expensesBucket = "expenses"

// Store persists expenses in a bbolt database, one JSON value per record.
type Store struct {
	db *bbolt.DB
}

// OpenStore opens (or creates) the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening expense database: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(expensesBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating expenses bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save validates and persists an expense.
func (s *Store) Save(e *Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshaling expense: %w", err)
		}
		return tx.Bucket([]byte(expensesBucket)).Put([]byte(e.ID), data)
	})
}

// Get retrieves an expense by ID; returns nil when not found.
func (s *Store) Get(id string) (*Expense, error) {
	var e *Expense
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(expensesBucket)).Get([]byte(id))
		if data == nil {
			return nil
		}
		e = &Expense{}
		return json.Unmarshal(data, e)
	})
	if err != nil {
		return nil, fmt.Errorf("reading expense %s: %w", id, err)
	}
	return e, nil
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Category   extract.Category
	YearPrefix string // matches expenses whose date starts with "YYYY"
}

// List returns all matching expenses, newest first.
func (s *Store) List(filter Filter) ([]*Expense, error) {
	var out []*Expense
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(expensesBucket)).ForEach(func(_, data []byte) error {
			var e Expense
			if err := json.Unmarshal(data, &e); err != nil {
				return fmt.Errorf("unmarshaling expense: %w", err)
			}
			if filter.Category != "" && e.Category != filter.Category {
				return nil
			}
			if filter.YearPrefix != "" && !strings.HasPrefix(e.Date, filter.YearPrefix) {
				return nil
			}
			out = append(out, &e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Delete removes an expense; deleting a missing ID is not an error.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(expensesBucket)).Delete([]byte(id))
	})
}
