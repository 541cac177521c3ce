package leads

import (
	"time"

	"github.com/google/uuid"

	"elvcatalog/internal/models"
)

type ContactJSON struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type InquiryJSON struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Mobile      string     `json:"mobile"`
	Company     string     `json:"company"`
	ProductID   *uuid.UUID `json:"productId"`
	ProductName string     `json:"productName"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type SubscriptionJSON struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func ContactResponse(c models.Contact) ContactJSON {
	return ContactJSON{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   c.Subject,
		Message:   c.Message,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

func InquiryResponse(i models.ProductInquiry) InquiryJSON {
	return InquiryJSON{
		ID:          i.ID,
		Name:        i.Name,
		Email:       i.Email,
		Mobile:      i.Mobile,
		Company:     i.Company,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Message:     i.Message,
		Status:      string(i.Status),
		CreatedAt:   i.CreatedAt,
	}
}

func SubscriptionResponse(s models.Subscription) SubscriptionJSON {
	return SubscriptionJSON{ID: s.ID, Email: s.Email, IsActive: s.IsActive, CreatedAt: s.CreatedAt}
}

func ContactResponses(cs []models.Contact) []ContactJSON {
	out := make([]ContactJSON, 0, len(cs))
	for _, c := range cs {
		out = append(out, ContactResponse(c))
	}
	return out
}

func InquiryResponses(is []models.ProductInquiry) []InquiryJSON {
	out := make([]InquiryJSON, 0, len(is))
	for _, i := range is {
		out = append(out, InquiryResponse(i))
	}
	return out
}

func SubscriptionResponses(ss []models.Subscription) []SubscriptionJSON {
	out := make([]SubscriptionJSON, 0, len(ss))
	for _, s := range ss {
		out = append(out, SubscriptionResponse(s))
	}
	return out
}
