// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package leads persists visitor contact messages, product inquiries and
// newsletter subscriptions, and drives their admin status changes.
//
// Validation is deliberately minimal: required fields must be non-blank,
// nothing else is checked.
package leads

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"elvcatalog/internal/models"
)

// ContactRepository persists contact messages.
type ContactRepository interface {
	List() ([]models.Contact, error)
	FindByID(id uuid.UUID) (*models.Contact, error)
	Create(c *models.Contact) (*models.Contact, error)
	UpdateStatus(id uuid.UUID, status models.ContactStatus) error
	Delete(id uuid.UUID) error
}

// InquiryRepository persists product inquiries.
type InquiryRepository interface {
	List() ([]models.ProductInquiry, error)
	FindByID(id uuid.UUID) (*models.ProductInquiry, error)
	Create(i *models.ProductInquiry) (*models.ProductInquiry, error)
	UpdateStatus(id uuid.UUID, status models.InquiryStatus) error
	Delete(id uuid.UUID) error
}

// SubscriptionRepository persists newsletter subscriptions. E-mails are
// unique.
type SubscriptionRepository interface {
	List() ([]models.Subscription, error)
	FindByID(id uuid.UUID) (*models.Subscription, error)
	FindByEmail(email string) (*models.Subscription, error)
	Create(s *models.Subscription) (*models.Subscription, error)
	SetActive(id uuid.UUID, active bool) error
	Delete(id uuid.UUID) error
}

// ProductFinder resolves the product an inquiry refers to.
type ProductFinder interface {
	FindByID(id uuid.UUID) (*models.Product, error)
}

// Service handles lead intake and admin follow-up.
type Service struct {
	contacts      ContactRepository
	inquiries     InquiryRepository
	subscriptions SubscriptionRepository
	products      ProductFinder
}

// NewService creates a new Service.
func NewService(contacts ContactRepository, inquiries InquiryRepository, subscriptions SubscriptionRepository, products ProductFinder) *Service {
	return &Service{contacts: contacts, inquiries: inquiries, subscriptions: subscriptions, products: products}
}

// ContactInput is a submitted contact form.
type ContactInput struct {
	Name    string `json:"name" schema:"name"`
	Email   string `json:"email" schema:"email"`
	Phone   string `json:"phone" schema:"phone"`
	Subject string `json:"subject" schema:"subject"`
	Message string `json:"message" schema:"message"`
}

// InquiryInput is a submitted product enquiry form.
type InquiryInput struct {
	Name      string     `json:"name" schema:"name"`
	Email     string     `json:"email" schema:"email"`
	Mobile    string     `json:"mobile" schema:"mobile"`
	Company   string     `json:"company" schema:"company"`
	ProductID *uuid.UUID `json:"productId" schema:"productId"`
	Message   string     `json:"message" schema:"message"`
}

// field pairs a form field name with its submitted value.
type field struct {
	name, value string
}

// required returns a ValidationError for the first blank field.
func required(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return models.Invalid(f.name, "This field is required")
		}
	}
	return nil
}

// --- Contacts ---

// SubmitContact stores a contact message with status new.
func (s *Service) SubmitContact(in ContactInput) (*models.Contact, error) {
	err := required(
		field{"name", in.Name},
		field{"email", in.Email},
		field{"phone", in.Phone},
		field{"subject", in.Subject},
		field{"message", in.Message},
	)
	if err != nil {
		return nil, err
	}
	return s.contacts.Create(&models.Contact{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
		Status:  models.ContactStatusNew,
	})
}

// ListContacts returns all contact messages, newest first.
func (s *Service) ListContacts() ([]models.Contact, error) {
	return s.contacts.List()
}

// GetContact returns a contact message without changing its status.
func (s *Service) GetContact(id uuid.UUID) (*models.Contact, error) {
	c, err := s.contacts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, models.ErrNotFound
	}
	return c, nil
}

// SetContactStatus moves a contact message to any valid status.
func (s *Service) SetContactStatus(id uuid.UUID, status models.ContactStatus) (*models.Contact, error) {
	if !status.Valid() {
		return nil, models.Invalid("status", "Status must be new, read or replied")
	}
	c, err := s.GetContact(id)
	if err != nil {
		return nil, err
	}
	if err := s.contacts.UpdateStatus(id, status); err != nil {
		return nil, fmt.Errorf("update contact status: %w", err)
	}
	c.Status = status
	return c, nil
}

// DeleteContact removes a contact message in any status.
func (s *Service) DeleteContact(id uuid.UUID) error {
	return s.contacts.Delete(id)
}

// --- Product inquiries ---

// SubmitInquiry stores a product inquiry with status new. The product's
// name is copied so the inquiry stays readable after the product is gone.
func (s *Service) SubmitInquiry(in InquiryInput) (*models.ProductInquiry, error) {
	err := required(
		field{"name", in.Name},
		field{"email", in.Email},
		field{"mobile", in.Mobile},
	)
	if err != nil {
		return nil, err
	}
	if in.ProductID == nil {
		return nil, models.Invalid("productId", "This field is required")
	}
	if err := required(field{"message", in.Message}); err != nil {
		return nil, err
	}

	p, err := s.products.FindByID(*in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load inquiry product: %w", err)
	}
	if p == nil {
		return nil, models.Invalid("productId", "Product does not exist")
	}

	return s.inquiries.Create(&models.ProductInquiry{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Mobile:      strings.TrimSpace(in.Mobile),
		Company:     strings.TrimSpace(in.Company),
		ProductID:   &p.ID,
		ProductName: p.Name,
		Message:     strings.TrimSpace(in.Message),
		Status:      models.InquiryStatusNew,
	})
}

// ListInquiries returns all product inquiries, newest first.
func (s *Service) ListInquiries() ([]models.ProductInquiry, error) {
	return s.inquiries.List()
}

// OpenInquiry returns an inquiry for the admin detail view. Opening a new
// inquiry marks it contacted.
func (s *Service) OpenInquiry(id uuid.UUID) (*models.ProductInquiry, error) {
	i, err := s.inquiries.FindByID(id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, models.ErrNotFound
	}
	if i.Status == models.InquiryStatusNew {
		if err := s.inquiries.UpdateStatus(id, models.InquiryStatusContacted); err != nil {
			return nil, fmt.Errorf("mark inquiry contacted: %w", err)
		}
		i.Status = models.InquiryStatusContacted
	}
	return i, nil
}

// SetInquiryStatus moves an inquiry to any valid status.
func (s *Service) SetInquiryStatus(id uuid.UUID, status models.InquiryStatus) (*models.ProductInquiry, error) {
	if !status.Valid() {
		return nil, models.Invalid("status", "Status must be new, contacted or closed")
	}
	i, err := s.inquiries.FindByID(id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, models.ErrNotFound
	}
	if err := s.inquiries.UpdateStatus(id, status); err != nil {
		return nil, fmt.Errorf("update inquiry status: %w", err)
	}
	i.Status = status
	return i, nil
}

// DeleteInquiry removes an inquiry in any status.
func (s *Service) DeleteInquiry(id uuid.UUID) error {
	return s.inquiries.Delete(id)
}

// --- Subscriptions ---

// Subscribe records an e-mail address. An existing address is returned
// as is, reactivated if it had been switched off.
func (s *Service) Subscribe(email string) (*models.Subscription, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, models.Invalid("email", "This field is required")
	}

	existing, err := s.subscriptions.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.IsActive {
			if err := s.subscriptions.SetActive(existing.ID, true); err != nil {
				return nil, fmt.Errorf("reactivate subscription: %w", err)
			}
			existing.IsActive = true
		}
		return existing, nil
	}
	return s.subscriptions.Create(&models.Subscription{Email: email, IsActive: true})
}

// ListSubscriptions returns all subscriptions, newest first.
func (s *Service) ListSubscriptions() ([]models.Subscription, error) {
	return s.subscriptions.List()
}

// SetSubscriptionActive switches a subscription on or off.
func (s *Service) SetSubscriptionActive(id uuid.UUID, active bool) (*models.Subscription, error) {
	sub, err := s.subscriptions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, models.ErrNotFound
	}
	if err := s.subscriptions.SetActive(id, active); err != nil {
		return nil, fmt.Errorf("update subscription: %w", err)
	}
	sub.IsActive = active
	return sub, nil
}

// DeleteSubscription removes a subscription.
func (s *Service) DeleteSubscription(id uuid.UUID) error {
	return s.subscriptions.Delete(id)
}
