package leads_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"elvcatalog/internal/catalog"
	"elvcatalog/internal/catalog/catalogtest"
	"elvcatalog/internal/leads"
	"elvcatalog/internal/leads/leadstest"
	"elvcatalog/internal/models"
)

func newService(t *testing.T) (*leads.Service, *leadstest.Leads, *models.Product) {
	t.Helper()
	mem := catalogtest.New()
	svc := mem.Service(&catalogtest.Assets{})
	name := "Accessories"
	dt := models.DisplayTypeProducts
	cat, err := svc.CreateCategory(t.Context(), catalog.CategoryInput{Name: &name, DisplayType: &dt})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	pname := "Cable Tester"
	in := catalog.ProductInput{Name: &pname, CategoryID: &cat.ID}
	in.Images[0] = &catalog.Upload{Filename: "a.jpg"}
	p, err := svc.CreateProduct(t.Context(), in)
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	l := leadstest.New()
	return l.Service(mem.Products()), l, p
}

func TestSubmitContact(t *testing.T) {
	svc, _, _ := newService(t)
	valid := leads.ContactInput{Name: "Ana", Email: "not-an-email", Phone: "0700", Subject: "Quote", Message: " Hi "}

	c, err := svc.SubmitContact(valid)
	if err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}
	if c.Status != models.ContactStatusNew || c.Message != "Hi" || c.Email != "not-an-email" {
		t.Errorf("got %+v", c)
	}

	tests := []struct {
		field string
		edit  func(*leads.ContactInput)
	}{
		{"name", func(in *leads.ContactInput) { in.Name = "" }},
		{"email", func(in *leads.ContactInput) { in.Email = "  " }},
		{"phone", func(in *leads.ContactInput) { in.Phone = "" }},
		{"subject", func(in *leads.ContactInput) { in.Subject = "" }},
		{"message", func(in *leads.ContactInput) { in.Message = "\n" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			in := valid
			tt.edit(&in)
			_, err := svc.SubmitContact(in)
			var ve *models.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("err = %v, want ValidationError on %s", err, tt.field)
			}
		})
	}
}

func TestContactStatusIsManual(t *testing.T) {
	svc, _, _ := newService(t)
	c, err := svc.SubmitContact(leads.ContactInput{Name: "a", Email: "b", Phone: "c", Subject: "d", Message: "e"})
	if err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}

	got, err := svc.GetContact(c.ID)
	if err != nil || got.Status != models.ContactStatusNew {
		t.Fatalf("GetContact = %+v, %v; want status new", got, err)
	}

	for _, status := range []models.ContactStatus{models.ContactStatusReplied, models.ContactStatusNew, models.ContactStatusRead} {
		got, err := svc.SetContactStatus(c.ID, status)
		if err != nil || got.Status != status {
			t.Errorf("SetContactStatus(%s) = %+v, %v", status, got, err)
		}
	}

	var ve *models.ValidationError
	if _, err := svc.SetContactStatus(c.ID, "archived"); !errors.As(err, &ve) {
		t.Errorf("err = %v, want ValidationError", err)
	}
	if _, err := svc.SetContactStatus(uuid.New(), models.ContactStatusRead); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSubmitInquiry(t *testing.T) {
	svc, _, p := newService(t)

	i, err := svc.SubmitInquiry(leads.InquiryInput{Name: "Ana", Email: "a@b", Mobile: "07", ProductID: &p.ID, Message: "Price?"})
	if err != nil {
		t.Fatalf("SubmitInquiry: %v", err)
	}
	if i.Status != models.InquiryStatusNew || i.ProductName != "Cable Tester" || *i.ProductID != p.ID {
		t.Errorf("got %+v", i)
	}

	missing := uuid.New()
	tests := []struct {
		name  string
		in    leads.InquiryInput
		field string
	}{
		{"no mobile", leads.InquiryInput{Name: "a", Email: "b", ProductID: &p.ID, Message: "m"}, "mobile"},
		{"no product", leads.InquiryInput{Name: "a", Email: "b", Mobile: "c", Message: "m"}, "productId"},
		{"unknown product", leads.InquiryInput{Name: "a", Email: "b", Mobile: "c", ProductID: &missing, Message: "m"}, "productId"},
		{"no message", leads.InquiryInput{Name: "a", Email: "b", Mobile: "c", ProductID: &p.ID}, "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitInquiry(tt.in)
			var ve *models.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("err = %v, want ValidationError on %s", err, tt.field)
			}
		})
	}
}

func TestOpenInquiryMarksContacted(t *testing.T) {
	svc, mem, p := newService(t)
	i, err := svc.SubmitInquiry(leads.InquiryInput{Name: "a", Email: "b", Mobile: "c", ProductID: &p.ID, Message: "m"})
	if err != nil {
		t.Fatalf("SubmitInquiry: %v", err)
	}

	got, err := svc.OpenInquiry(i.ID)
	if err != nil || got.Status != models.InquiryStatusContacted {
		t.Fatalf("OpenInquiry = %+v, %v; want contacted", got, err)
	}

	if _, err := svc.SetInquiryStatus(i.ID, models.InquiryStatusClosed); err != nil {
		t.Fatalf("SetInquiryStatus: %v", err)
	}
	writes := mem.Writes
	got, err = svc.OpenInquiry(i.ID)
	if err != nil || got.Status != models.InquiryStatusClosed {
		t.Errorf("OpenInquiry on closed = %+v, %v", got, err)
	}
	if mem.Writes != writes {
		t.Error("opening a non-new inquiry should not write")
	}

	if _, err := svc.OpenInquiry(uuid.New()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSetInquiryStatusIdempotent(t *testing.T) {
	svc, _, p := newService(t)
	i, err := svc.SubmitInquiry(leads.InquiryInput{Name: "a", Email: "b", Mobile: "c", ProductID: &p.ID, Message: "m"})
	if err != nil {
		t.Fatalf("SubmitInquiry: %v", err)
	}

	for range 2 {
		got, err := svc.SetInquiryStatus(i.ID, models.InquiryStatusClosed)
		if err != nil || got.Status != models.InquiryStatusClosed {
			t.Fatalf("SetInquiryStatus = %+v, %v", got, err)
		}
	}
	got, err := svc.SetInquiryStatus(i.ID, models.InquiryStatusNew)
	if err != nil || got.Status != models.InquiryStatusNew {
		t.Errorf("closed -> new = %+v, %v", got, err)
	}
}

func TestDeleteLeadsFromAnyStatus(t *testing.T) {
	svc, _, p := newService(t)
	i, _ := svc.SubmitInquiry(leads.InquiryInput{Name: "a", Email: "b", Mobile: "c", ProductID: &p.ID, Message: "m"})
	if _, err := svc.SetInquiryStatus(i.ID, models.InquiryStatusClosed); err != nil {
		t.Fatalf("SetInquiryStatus: %v", err)
	}
	if err := svc.DeleteInquiry(i.ID); err != nil {
		t.Fatalf("DeleteInquiry: %v", err)
	}
	list, _ := svc.ListInquiries()
	if len(list) != 0 {
		t.Errorf("inquiries = %d, want 0", len(list))
	}

	c, _ := svc.SubmitContact(leads.ContactInput{Name: "a", Email: "b", Phone: "c", Subject: "d", Message: "e"})
	if err := svc.DeleteContact(c.ID); err != nil {
		t.Fatalf("DeleteContact: %v", err)
	}
	if err := svc.DeleteContact(c.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSubscribe(t *testing.T) {
	svc, _, _ := newService(t)

	s, err := svc.Subscribe("  News@Example.com ")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if s.Email != "news@example.com" || !s.IsActive {
		t.Errorf("got %+v", s)
	}

	if _, err := svc.SetSubscriptionActive(s.ID, false); err != nil {
		t.Fatalf("SetSubscriptionActive: %v", err)
	}
	again, err := svc.Subscribe("news@example.com")
	if err != nil {
		t.Fatalf("Subscribe again: %v", err)
	}
	if again.ID != s.ID || !again.IsActive {
		t.Errorf("resubscribe = %+v, want reactivated %s", again, s.ID)
	}
	list, _ := svc.ListSubscriptions()
	if len(list) != 1 {
		t.Errorf("subscriptions = %d, want 1", len(list))
	}

	var ve *models.ValidationError
	if _, err := svc.Subscribe(" "); !errors.As(err, &ve) {
		t.Errorf("err = %v, want ValidationError", err)
	}
	if err := svc.DeleteSubscription(s.ID); err != nil {
		t.Errorf("DeleteSubscription: %v", err)
	}
}
