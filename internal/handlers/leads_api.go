package handlers

import (
	"net/http"

	"elvcatalog/internal/leads"
	"elvcatalog/internal/models"
)

// LeadsAPI serves the lead intake endpoints. Submissions are public;
// everything else runs behind VerifyAuth.
type LeadsAPI struct {
	svc *leads.Service
}

// NewLeadsAPI creates a new LeadsAPI handler group.
func NewLeadsAPI(svc *leads.Service) *LeadsAPI {
	return &LeadsAPI{svc: svc}
}

type statusRequest struct {
	Status *string `json:"status" schema:"status"`
}

func (req statusRequest) value() (string, error) {
	if req.Status == nil || *req.Status == "" {
		return "", models.Invalid("status", "This field is required")
	}
	return *req.Status, nil
}

type subscribeRequest struct {
	Email string `json:"email" schema:"email"`
}

type subscriptionPatch struct {
	IsActive *bool `json:"isActive" schema:"isActive"`
}

func checkContact(in leads.ContactInput) error {
	return checkLimits(
		limit{"name", &in.Name, maxLeadFieldLen},
		limit{"email", &in.Email, maxLeadFieldLen},
		limit{"phone", &in.Phone, maxLeadFieldLen},
		limit{"subject", &in.Subject, maxLeadFieldLen},
		limit{"message", &in.Message, maxMessageLen},
	)
}

// checkInquiry bounds field lengths. A blank productId is treated as absent.
func checkInquiry(in *leads.InquiryInput) error {
	in.ProductID = optionalID(in.ProductID)
	return checkLimits(
		limit{"name", &in.Name, maxLeadFieldLen},
		limit{"email", &in.Email, maxLeadFieldLen},
		limit{"mobile", &in.Mobile, maxLeadFieldLen},
		limit{"company", &in.Company, maxLeadFieldLen},
		limit{"message", &in.Message, maxMessageLen},
	)
}

// --- Contacts ---

// SubmitContact stores a contact form submission.
func (l *LeadsAPI) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var in leads.ContactInput
	if _, err := decodeBody(w, r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := checkContact(in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	c, err := l.svc.SubmitContact(in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, leads.ContactResponse(*c))
}

// ListContacts returns every contact message, newest first.
func (l *LeadsAPI) ListContacts(w http.ResponseWriter, r *http.Request) {
	cs, err := l.svc.ListContacts()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads.ContactResponses(cs))
}

// GetContact returns a contact message. Reading does not change its status.
func (l *LeadsAPI) GetContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	c, err := l.svc.GetContact(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads.ContactResponse(*c))
}

// PatchContact sets the status of a contact message.
func (l *LeadsAPI) PatchContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req statusRequest
	if _, err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	status, err := req.value()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	c, err := l.svc.SetContactStatus(id, models.ContactStatus(status))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads.ContactResponse(*c))
}

// DeleteContact removes a contact message.
func (l *LeadsAPI) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := l.svc.DeleteContact(id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "Contact deleted successfully"})
}

// --- Product inquiries ---

// SubmitInquiry stores a product enquiry.
func (l *LeadsAPI) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var in leads.InquiryInput
	if _, err := decodeBody(w, r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := checkInquiry(&in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	i, err := l.svc.SubmitInquiry(in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, leads.InquiryResponse(*i))
}

// ListInquiries returns every product inquiry, newest first.
func (l *LeadsAPI) ListInquiries(w http.ResponseWriter, r *http.Request) {
	is, err := l.svc.ListInquiries()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads.InquiryResponses(is))
}

// GetInquiry opens an inquiry; a new one becomes contacted.
func (l *LeadsAPI) GetInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	i, err := l.svc.OpenInquiry(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads.InquiryResponse(*i))
}

// PatchInquiry sets the status of an inquiry.
func (l *LeadsAPI) PatchInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req statusRequest
	if _, err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	status, err := req.value()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	i, err := l.svc.SetInquiryStatus(id, models.InquiryStatus(status))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads.InquiryResponse(*i))
}

// DeleteInquiry removes an inquiry.
func (l *LeadsAPI) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := l.svc.DeleteInquiry(id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "Inquiry deleted successfully"})
}

// --- Subscriptions ---

// Subscribe records a newsletter sign-up.
func (l *LeadsAPI) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if _, err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := checkLimits(limit{"email", &req.Email, maxLeadFieldLen}); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s, err := l.svc.Subscribe(req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, leads.SubscriptionResponse(*s))
}

// ListSubscriptions returns every subscription, newest first.
func (l *LeadsAPI) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ss, err := l.svc.ListSubscriptions()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads.SubscriptionResponses(ss))
}

// PatchSubscription switches a subscription on or off.
func (l *LeadsAPI) PatchSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req subscriptionPatch
	if _, err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if req.IsActive == nil {
		writeServiceError(w, r, models.Invalid("isActive", "This field is required"))
		return
	}
	s, err := l.svc.SetSubscriptionActive(id, *req.IsActive)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads.SubscriptionResponse(*s))
}

// DeleteSubscription removes a subscription.
func (l *LeadsAPI) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := l.svc.DeleteSubscription(id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "Subscription deleted successfully"})
}
