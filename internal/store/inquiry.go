package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"elvcatalog/internal/models"
)

// InquiryStore manages product inquiries. product_id is cleared when the
// product is deleted; product_name keeps the snapshot.
type InquiryStore struct {
	db *sql.DB
}

// NewInquiryStore returns a new InquiryStore.
func NewInquiryStore(db *sql.DB) *InquiryStore {
	return &InquiryStore{db: db}
}

const inquiryColumns = `id, name, email, mobile, company, product_id, product_name, message, status, created_at`

func scanInquiry(row scanner) (*models.ProductInquiry, error) {
	var i models.ProductInquiry
	err := row.Scan(
		&i.ID, &i.Name, &i.Email, &i.Mobile, &i.Company,
		&i.ProductID, &i.ProductName, &i.Message, &i.Status, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// List returns all inquiries, newest first.
func (s *InquiryStore) List() ([]models.ProductInquiry, error) {
	rows, err := s.db.Query(`SELECT ` + inquiryColumns + ` FROM product_inquiries ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var items []models.ProductInquiry
	for rows.Next() {
		i, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		items = append(items, *i)
	}
	return items, rows.Err()
}

// FindByID returns an inquiry by ID. Returns nil if not found.
func (s *InquiryStore) FindByID(id uuid.UUID) (*models.ProductInquiry, error) {
	i, err := scanInquiry(s.db.QueryRow(`SELECT `+inquiryColumns+` FROM product_inquiries WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find inquiry: %w", err)
	}
	return i, nil
}

// Create inserts an inquiry.
func (s *InquiryStore) Create(i *models.ProductInquiry) (*models.ProductInquiry, error) {
	created, err := scanInquiry(s.db.QueryRow(`
		INSERT INTO product_inquiries (name, email, mobile, company, product_id, product_name, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+inquiryColumns,
		i.Name, i.Email, i.Mobile, i.Company, i.ProductID, i.ProductName, i.Message, i.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	return created, nil
}

// UpdateStatus sets the status of an inquiry.
func (s *InquiryStore) UpdateStatus(id uuid.UUID, status models.InquiryStatus) error {
	result, err := s.db.Exec(`UPDATE product_inquiries SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update inquiry status: %w", err)
	}
	return affectedOne("update inquiry status", result)
}

// Delete removes an inquiry.
func (s *InquiryStore) Delete(id uuid.UUID) error {
	result, err := s.db.Exec(`DELETE FROM product_inquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	return affectedOne("delete inquiry", result)
}
