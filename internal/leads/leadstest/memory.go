// Package leadstest provides in-memory lead repositories for tests.
package leadstest

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"elvcatalog/internal/leads"
	"elvcatalog/internal/models"
)

// Leads holds contacts, inquiries and subscriptions in memory.
type Leads struct {
	mu            sync.Mutex
	contacts      map[uuid.UUID]models.Contact
	inquiries     map[uuid.UUID]models.ProductInquiry
	subscriptions map[uuid.UUID]models.Subscription

	// Writes counts successful status and active-flag updates.
	Writes int
}

// New returns empty lead tables.
func New() *Leads {
	return &Leads{
		contacts:      make(map[uuid.UUID]models.Contact),
		inquiries:     make(map[uuid.UUID]models.ProductInquiry),
		subscriptions: make(map[uuid.UUID]models.Subscription),
	}
}

// Service wires a leads.Service over l and products.
func (l *Leads) Service(products leads.ProductFinder) *leads.Service {
	return leads.NewService(contactRepo{l}, inquiryRepo{l}, subscriptionRepo{l}, products)
}

// clock returns strictly increasing timestamps so newest-first ordering is
// deterministic.
var (
	clockMu sync.Mutex
	last    time.Time
)

func now() time.Time {
	clockMu.Lock()
	defer clockMu.Unlock()
	t := time.Now()
	if !t.After(last) {
		t = last.Add(time.Microsecond)
	}
	last = t
	return t
}

type contactRepo struct{ l *Leads }

func (r contactRepo) List() ([]models.Contact, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	out := make([]models.Contact, 0, len(r.l.contacts))
	for _, c := range r.l.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r contactRepo) FindByID(id uuid.UUID) (*models.Contact, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	c, ok := r.l.contacts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r contactRepo) Create(c *models.Contact) (*models.Contact, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	out := *c
	out.ID = uuid.New()
	out.CreatedAt = now()
	r.l.contacts[out.ID] = out
	return &out, nil
}

func (r contactRepo) UpdateStatus(id uuid.UUID, status models.ContactStatus) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	c, ok := r.l.contacts[id]
	if !ok {
		return models.ErrNotFound
	}
	c.Status = status
	r.l.contacts[id] = c
	r.l.Writes++
	return nil
}

func (r contactRepo) Delete(id uuid.UUID) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if _, ok := r.l.contacts[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.l.contacts, id)
	return nil
}

type inquiryRepo struct{ l *Leads }

func (r inquiryRepo) List() ([]models.ProductInquiry, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	out := make([]models.ProductInquiry, 0, len(r.l.inquiries))
	for _, i := range r.l.inquiries {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r inquiryRepo) FindByID(id uuid.UUID) (*models.ProductInquiry, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	i, ok := r.l.inquiries[id]
	if !ok {
		return nil, nil
	}
	return &i, nil
}

func (r inquiryRepo) Create(i *models.ProductInquiry) (*models.ProductInquiry, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	out := *i
	out.ID = uuid.New()
	out.CreatedAt = now()
	r.l.inquiries[out.ID] = out
	return &out, nil
}

func (r inquiryRepo) UpdateStatus(id uuid.UUID, status models.InquiryStatus) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	i, ok := r.l.inquiries[id]
	if !ok {
		return models.ErrNotFound
	}
	i.Status = status
	r.l.inquiries[id] = i
	r.l.Writes++
	return nil
}

func (r inquiryRepo) Delete(id uuid.UUID) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if _, ok := r.l.inquiries[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.l.inquiries, id)
	return nil
}

type subscriptionRepo struct{ l *Leads }

func (r subscriptionRepo) List() ([]models.Subscription, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	out := make([]models.Subscription, 0, len(r.l.subscriptions))
	for _, s := range r.l.subscriptions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r subscriptionRepo) FindByID(id uuid.UUID) (*models.Subscription, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	s, ok := r.l.subscriptions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r subscriptionRepo) FindByEmail(email string) (*models.Subscription, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	for _, s := range r.l.subscriptions {
		if s.Email == email {
			return &s, nil
		}
	}
	return nil, nil
}

func (r subscriptionRepo) Create(s *models.Subscription) (*models.Subscription, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	for _, other := range r.l.subscriptions {
		if other.Email == s.Email {
			return nil, models.ErrDuplicateEmail
		}
	}
	out := *s
	out.ID = uuid.New()
	out.CreatedAt = now()
	r.l.subscriptions[out.ID] = out
	return &out, nil
}

func (r subscriptionRepo) SetActive(id uuid.UUID, active bool) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	s, ok := r.l.subscriptions[id]
	if !ok {
		return models.ErrNotFound
	}
	s.IsActive = active
	r.l.subscriptions[id] = s
	r.l.Writes++
	return nil
}

func (r subscriptionRepo) Delete(id uuid.UUID) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if _, ok := r.l.subscriptions[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.l.subscriptions, id)
	return nil
}
