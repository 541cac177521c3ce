// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"elvcatalog/internal/catalog"
	"elvcatalog/internal/leads"
	"elvcatalog/internal/models"
	"elvcatalog/internal/render"
)

// maxMetaDescription trims descriptions used as <meta name="description">.
const maxMetaDescription = 160

// Site serves the server-rendered storefront: marketing pages, the
// catalog tree and the visitor forms.
type Site struct {
	renderer *render.Renderer
	resolver *catalog.Resolver
	leads    *leads.Service
}

// NewSite creates a new Site handler group.
func NewSite(renderer *render.Renderer, resolver *catalog.Resolver, leadsSvc *leads.Service) *Site {
	return &Site{renderer: renderer, resolver: resolver, leads: leadsSvc}
}

// base builds the page data every storefront page shares. The category
// menu is decoration, so a store failure only drops it.
func (s *Site) base(r *http.Request, section, title string) *render.PageData {
	cats, err := s.resolver.Categories()
	if err != nil {
		slog.Warn("load category menu failed", "error", err)
	}
	return &render.PageData{
		Title:      title,
		Section:    section,
		Categories: cats,
		Flash:      flashFromQuery(r.URL.Query()),
	}
}

// flashFromQuery turns the post-redirect-get markers into a notice.
func flashFromQuery(q url.Values) *render.Flash {
	switch {
	case q.Get("sent") == "1":
		return &render.Flash{Type: "success", Message: "Thank you, we will get back to you shortly."}
	case q.Get("inquiry") == "sent":
		return &render.Flash{Type: "success", Message: "Your enquiry has been sent. Our sales team will contact you."}
	case q.Get("subscribed") == "1":
		return &render.Flash{Type: "success", Message: "Thanks for subscribing."}
	case q.Get("subscribed") == "0":
		return &render.Flash{Type: "error", Message: "Please enter a valid email address."}
	}
	return nil
}

// Page returns a handler for a static marketing page.
func (s *Site) Page(name, section, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderer.Page(w, http.StatusOK, name, s.base(r, section, title))
	}
}

// NotFound renders the storefront 404 page.
func (s *Site) NotFound(w http.ResponseWriter, r *http.Request) {
	s.renderer.Page(w, http.StatusNotFound, "not_found", s.base(r, "", "Not found"))
}

func (s *Site) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("storefront request failed", "path", r.URL.Path, "error", err)
	s.renderer.Page(w, http.StatusInternalServerError, "error", &render.PageData{Title: "Error"})
}

// --- Catalog ---

// Products renders the category index.
func (s *Site) Products(w http.ResponseWriter, r *http.Request) {
	cats, err := s.resolver.Categories()
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	data := s.base(r, "products", "Products")
	data.Categories = cats
	s.renderer.Page(w, http.StatusOK, "products", data)
}

// Catalog renders /products/{category}[/{segment}[/{product}]] from the
// resolver outcome.
func (s *Site) Catalog(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(chi.URLParam(r, "*"))
	res, err := s.resolver.Resolve(chi.URLParam(r, "category"), segments...)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.renderResolution(w, r, http.StatusOK, res, nil)
}

// renderResolution picks the template for res. form is set when a failed
// enquiry is shown again.
func (s *Site) renderResolution(w http.ResponseWriter, r *http.Request, status int, res *catalog.Resolution, form *formState) {
	if !res.Kind.Found() {
		s.NotFound(w, r)
		return
	}

	data := s.base(r, "products", "")
	data.Data = map[string]any{"res": res, "path": r.URL.Path}

	var name string
	switch res.Kind {
	case catalog.KindSubcategoryListing, catalog.KindProductListing:
		name = "category"
		data.Title = res.Category.Name
		data.Description = metaDescription(res.Category.Description)
	case catalog.KindSubcategoryDetail:
		name = "subcategory"
		data.Title = firstNonEmpty(res.SubCategory.SEO.Title, res.SubCategory.Name)
		data.Description = metaDescription(firstNonEmpty(res.SubCategory.SEO.Description, res.SubCategory.Description))
	case catalog.KindProductDetail:
		name = "product"
		data.Title = firstNonEmpty(res.Product.SEO.Title, res.Product.Name)
		data.Description = metaDescription(firstNonEmpty(res.Product.SEO.Description, res.Product.Description))
	}

	if form != nil {
		data.Data["path"] = form.returnPath
		data.Form = form.values
		data.Errors = form.errors
	}
	s.renderer.Page(w, status, name, data)
}

// --- Forms ---

// formState carries a rejected submission back into its page.
type formState struct {
	values     map[string]string
	errors     map[string]string
	returnPath string
}

func newFormState(r *http.Request, err error) (*formState, bool) {
	var valErr *models.ValidationError
	if !errors.As(err, &valErr) {
		return nil, false
	}
	st := &formState{values: map[string]string{}, errors: map[string]string{}}
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			st.values[k] = vs[0]
		}
	}
	field := valErr.Field
	if field == "" {
		field = "message"
	}
	st.errors[field] = valErr.Message
	return st, true
}

// ContactSubmit stores the contact form and redirects back with a notice.
func (s *Site) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	var in leads.ContactInput
	_, err := decodeBody(w, r, &in)
	if err == nil {
		err = checkContact(in)
	}
	if err == nil {
		_, err = s.leads.SubmitContact(in)
	}
	if err != nil {
		st, ok := newFormState(r, err)
		if !ok {
			s.serverError(w, r, err)
			return
		}
		data := s.base(r, "contact", "Contact")
		data.Form, data.Errors = st.values, st.errors
		s.renderer.Page(w, http.StatusBadRequest, "contact", data)
		return
	}
	http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
}

// InquirySubmit stores a product enquiry and returns to the product page.
func (s *Site) InquirySubmit(w http.ResponseWriter, r *http.Request) {
	var in leads.InquiryInput
	_, err := decodeBody(w, r, &in)
	returnPath := safeProductPath(r.PostFormValue("return"))
	if err == nil {
		err = checkInquiry(&in)
	}
	if err == nil {
		_, err = s.leads.SubmitInquiry(in)
	}
	if err == nil {
		http.Redirect(w, r, returnPath+"?inquiry=sent", http.StatusSeeOther)
		return
	}

	st, ok := newFormState(r, err)
	if !ok {
		s.serverError(w, r, err)
		return
	}
	st.returnPath = returnPath

	segments := pathSegments(strings.TrimPrefix(returnPath, "/products"))
	if len(segments) == 0 {
		s.NotFound(w, r)
		return
	}
	res, rerr := s.resolver.Resolve(segments[0], segments[1:]...)
	if rerr != nil {
		s.serverError(w, r, rerr)
		return
	}
	if res.Kind != catalog.KindProductDetail {
		s.NotFound(w, r)
		return
	}
	s.renderResolution(w, r, http.StatusBadRequest, res, st)
}

// Subscribe records the footer sign-up and redirects home with a notice.
func (s *Site) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	_, err := decodeBody(w, r, &req)
	if err == nil {
		err = checkLimits(limit{"email", &req.Email, maxLeadFieldLen})
	}
	if err == nil {
		_, err = s.leads.Subscribe(req.Email)
	}
	if err != nil {
		if _, ok := newFormState(r, err); !ok {
			s.serverError(w, r, err)
			return
		}
		http.Redirect(w, r, "/?subscribed=0", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/?subscribed=1", http.StatusSeeOther)
}

// safeProductPath keeps redirects on the storefront catalog.
func safeProductPath(p string) string {
	if !strings.HasPrefix(p, "/products/") || strings.HasPrefix(p, "//") || strings.ContainsAny(p, "?#\\") {
		return "/products"
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// metaDescription flattens s to one line of at most maxMetaDescription runes.
func metaDescription(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxMetaDescription {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:maxMetaDescription-1])) + "…"
}
