package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"elvcatalog/internal/models"
)

// ContactStore manages contact form messages.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore returns a new ContactStore.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, name, email, phone, subject, message, status, created_at`

func scanContact(row scanner) (*models.Contact, error) {
	var c models.Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.Status, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all contact messages, newest first.
func (s *ContactStore) List() ([]models.Contact, error) {
	rows, err := s.db.Query(`SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var items []models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID returns a contact message by ID. Returns nil if not found.
func (s *ContactStore) FindByID(id uuid.UUID) (*models.Contact, error) {
	c, err := scanContact(s.db.QueryRow(`SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return c, nil
}

// Create inserts a contact message.
func (s *ContactStore) Create(c *models.Contact) (*models.Contact, error) {
	created, err := scanContact(s.db.QueryRow(`
		INSERT INTO contacts (name, email, phone, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+contactColumns,
		c.Name, c.Email, c.Phone, c.Subject, c.Message, c.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return created, nil
}

// UpdateStatus sets the status of a contact message.
func (s *ContactStore) UpdateStatus(id uuid.UUID, status models.ContactStatus) error {
	result, err := s.db.Exec(`UPDATE contacts SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update contact status: %w", err)
	}
	return affectedOne("update contact status", result)
}

// Delete removes a contact message.
func (s *ContactStore) Delete(id uuid.UUID) error {
	result, err := s.db.Exec(`DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return affectedOne("delete contact", result)
}
