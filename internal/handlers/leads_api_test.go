package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"elvcatalog/internal/leads"
	"elvcatalog/internal/models"
)

// ------------------------------------------------------------------------
// Contacts
// ------------------------------------------------------------------------

func validContact() map[string]any {
	return map[string]any{
		"name":    "Ana Pop",
		"email":   "ana@example.com",
		"phone":   "+40 700 000 000",
		"subject": "Quote",
		"message": "We need 20 cameras.",
	}
}

func TestSubmitContact(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/contacts", validContact())

	wantStatus(t, rec, http.StatusCreated)
	got := decodeJSON[leads.ContactJSON](t, rec)
	if got.Status != "new" {
		t.Errorf("status: got %q, want new", got.Status)
	}
	if got.Name != "Ana Pop" {
		t.Errorf("name: got %q", got.Name)
	}
}

func TestSubmitContact_MissingFields(t *testing.T) {
	for _, field := range []string{"name", "email", "phone", "subject", "message"} {
		t.Run(field, func(t *testing.T) {
			env := newTestEnv(t)
			body := validContact()
			delete(body, field)

			rec := env.doJSON(t, http.MethodPost, "/api/contacts", body)

			wantStatus(t, rec, http.StatusBadRequest)
			if got := decodeJSON[errorBody](t, rec); got.Field != field {
				t.Errorf("field: got %q, want %q", got.Field, field)
			}
		})
	}
}

func TestSubmitContact_Form(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doForm(http.MethodPost, "/api/contacts", url.Values{
		"name": {"Ana"}, "email": {"ana@example.com"}, "phone": {"1"},
		"subject": {"Hi"}, "message": {"Hello"},
	})

	wantStatus(t, rec, http.StatusCreated)
}

func TestContactAdminFlow(t *testing.T) {
	env := newTestEnv(t)
	created := decodeJSON[leads.ContactJSON](t, env.doJSON(t, http.MethodPost, "/api/contacts", validContact()))
	path := "/api/contacts/" + created.ID.String()

	list := decodeJSON[[]leads.ContactJSON](t, env.doJSON(t, http.MethodGet, "/api/contacts", nil))
	if len(list) != 1 {
		t.Fatalf("list: got %d, want 1", len(list))
	}

	// Reading a contact leaves it new.
	got := decodeJSON[leads.ContactJSON](t, env.doJSON(t, http.MethodGet, path, nil))
	if got.Status != "new" {
		t.Errorf("status after GET: got %q, want new", got.Status)
	}

	rec := env.doJSON(t, http.MethodPatch, path, map[string]any{"status": "replied"})
	wantStatus(t, rec, http.StatusOK)
	if got := decodeJSON[leads.ContactJSON](t, rec); got.Status != "replied" {
		t.Errorf("status after PATCH: got %q, want replied", got.Status)
	}

	rec = env.doJSON(t, http.MethodPatch, path, map[string]any{"status": "archived"})
	wantStatus(t, rec, http.StatusBadRequest)

	rec = env.doJSON(t, http.MethodPatch, path, map[string]any{})
	wantStatus(t, rec, http.StatusBadRequest)

	wantStatus(t, env.doJSON(t, http.MethodDelete, path, nil), http.StatusOK)
	wantStatus(t, env.doJSON(t, http.MethodGet, path, nil), http.StatusNotFound)
}

// ------------------------------------------------------------------------
// Product inquiries
// ------------------------------------------------------------------------

func TestSubmitInquiry(t *testing.T) {
	env := newTestEnv(t)
	c := env.category(t, "Intercom", models.DisplayTypeProducts)
	p := env.product(t, c.ID, nil, "Door Station")

	tests := []struct {
		name      string
		body      map[string]any
		status    int
		wantField string
	}{
		{"valid", map[string]any{
			"name": "Ion", "email": "ion@example.com", "mobile": "0700", "company": "ACME",
			"productId": p.ID, "message": "Price for 10 units?",
		}, http.StatusCreated, ""},
		{"missing product", map[string]any{
			"name": "Ion", "email": "ion@example.com", "mobile": "0700", "message": "?",
		}, http.StatusBadRequest, "productId"},
		{"unknown product", map[string]any{
			"name": "Ion", "email": "ion@example.com", "mobile": "0700",
			"productId": uuid.New(), "message": "?",
		}, http.StatusBadRequest, "productId"},
		{"missing mobile", map[string]any{
			"name": "Ion", "email": "ion@example.com", "productId": p.ID, "message": "?",
		}, http.StatusBadRequest, "mobile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.doJSON(t, http.MethodPost, "/api/product-inquiries", tt.body)
			wantStatus(t, rec, tt.status)
			if tt.wantField != "" {
				if got := decodeJSON[errorBody](t, rec); got.Field != tt.wantField {
					t.Errorf("field: got %q, want %q", got.Field, tt.wantField)
				}
				return
			}
			got := decodeJSON[leads.InquiryJSON](t, rec)
			if got.ProductName != "Door Station" {
				t.Errorf("productName: got %q", got.ProductName)
			}
		})
	}
}

func TestInquiryOpenMarksContacted(t *testing.T) {
	env := newTestEnv(t)
	c := env.category(t, "Intercom", models.DisplayTypeProducts)
	p := env.product(t, c.ID, nil, "Door Station")
	created := decodeJSON[leads.InquiryJSON](t, env.doJSON(t, http.MethodPost, "/api/product-inquiries", map[string]any{
		"name": "Ion", "email": "ion@example.com", "mobile": "0700", "productId": p.ID, "message": "Hi",
	}))
	path := "/api/product-inquiries/" + created.ID.String()

	got := decodeJSON[leads.InquiryJSON](t, env.doJSON(t, http.MethodGet, path, nil))
	if got.Status != "contacted" {
		t.Errorf("status after open: got %q, want contacted", got.Status)
	}

	rec := env.doJSON(t, http.MethodPatch, path, map[string]any{"status": "closed"})
	wantStatus(t, rec, http.StatusOK)

	// Opening again does not reopen a closed inquiry.
	got = decodeJSON[leads.InquiryJSON](t, env.doJSON(t, http.MethodGet, path, nil))
	if got.Status != "closed" {
		t.Errorf("status after second open: got %q, want closed", got.Status)
	}

	wantStatus(t, env.doJSON(t, http.MethodDelete, path, nil), http.StatusOK)
	wantStatus(t, env.doJSON(t, http.MethodGet, path, nil), http.StatusNotFound)
}

// ------------------------------------------------------------------------
// Subscriptions
// ------------------------------------------------------------------------

func TestSubscribe(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/subscriptions", map[string]any{"email": "  Buyer@Example.com "})
	wantStatus(t, rec, http.StatusCreated)
	first := decodeJSON[leads.SubscriptionJSON](t, rec)
	if first.Email != "buyer@example.com" {
		t.Errorf("email: got %q, want lowercased", first.Email)
	}

	// Subscribing twice returns the same row.
	rec = env.doJSON(t, http.MethodPost, "/api/subscriptions", map[string]any{"email": "buyer@example.com"})
	wantStatus(t, rec, http.StatusCreated)
	if again := decodeJSON[leads.SubscriptionJSON](t, rec); again.ID != first.ID {
		t.Errorf("resubscribe created a new row")
	}

	wantStatus(t, env.doJSON(t, http.MethodPost, "/api/subscriptions", map[string]any{"email": ""}), http.StatusBadRequest)
}

func TestSubscriptionAdminFlow(t *testing.T) {
	env := newTestEnv(t)
	created := decodeJSON[leads.SubscriptionJSON](t, env.doJSON(t, http.MethodPost, "/api/subscriptions", map[string]any{"email": "a@example.com"}))
	path := "/api/subscriptions/" + created.ID.String()

	rec := env.doJSON(t, http.MethodPatch, path, map[string]any{"isActive": false})
	wantStatus(t, rec, http.StatusOK)
	if got := decodeJSON[leads.SubscriptionJSON](t, rec); got.IsActive {
		t.Error("subscription still active after PATCH")
	}

	wantStatus(t, env.doJSON(t, http.MethodPatch, path, map[string]any{}), http.StatusBadRequest)

	list := decodeJSON[[]leads.SubscriptionJSON](t, env.doJSON(t, http.MethodGet, "/api/subscriptions", nil))
	if len(list) != 1 {
		t.Errorf("list: got %d, want 1", len(list))
	}

	wantStatus(t, env.doJSON(t, http.MethodDelete, path, nil), http.StatusOK)
	wantStatus(t, env.doJSON(t, http.MethodDelete, path, nil), http.StatusNotFound)
}
