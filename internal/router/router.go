// Package router sets up all HTTP routes and middleware chains for the
// ELV catalog. It organizes routes into the JSON API, with public reads and
// admin-only mutations, and the server-rendered storefront.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"elvcatalog/internal/handlers"
	"elvcatalog/internal/middleware"
)

// Deps carries the handler groups and guards the router mounts.
type Deps struct {
	Sessions middleware.SessionVerifier
	Catalog  *handlers.CatalogAPI
	Leads    *handlers.LeadsAPI
	Auth     *handlers.Auth
	Site     *handlers.Site
	Static   fs.FS

	// LoginLimiter throttles admin sign-in; LeadLimiter throttles the
	// public lead forms. Either may be nil.
	LoginLimiter *middleware.RateLimiter
	LeadLimiter  *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", handlers.Health)
	if d.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(d.Static))))
	}

	requireAdmin := middleware.VerifyAuth(d.Sessions)
	leadLimit := limit(d.LeadLimiter)

	r.Route("/api", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.With(limit(d.LoginLimiter)).Post("/login", d.Auth.Login)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/logout", d.Auth.Logout)
				r.Get("/me", d.Auth.Me)
				r.Post("/2fa/setup", d.Auth.TwoFASetup)
				r.Post("/2fa/enable", d.Auth.TwoFAEnable)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", d.Catalog.ListCategories)
			r.Get("/{id}", d.Catalog.GetCategory)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", d.Catalog.CreateCategory)
				r.Put("/{id}", d.Catalog.UpdateCategory)
				r.Delete("/{id}", d.Catalog.DeleteCategory)
			})
		})

		r.Route("/subcategories", func(r chi.Router) {
			r.Get("/", d.Catalog.ListSubCategories)
			r.Get("/{id}", d.Catalog.GetSubCategory)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", d.Catalog.CreateSubCategory)
				r.Put("/{id}", d.Catalog.UpdateSubCategory)
				r.Delete("/{id}", d.Catalog.DeleteSubCategory)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", d.Catalog.ListProducts)
			r.Get("/{id}", d.Catalog.GetProduct)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", d.Catalog.CreateProduct)
				r.Put("/{id}", d.Catalog.UpdateProduct)
				r.Delete("/{id}", d.Catalog.DeleteProduct)
			})
		})

		r.Get("/catalog/{category}", d.Catalog.Resolve)
		r.Get("/catalog/{category}/*", d.Catalog.Resolve)

		// Leads: anyone may submit, only admins read and triage.
		r.Route("/contacts", func(r chi.Router) {
			r.With(leadLimit).Post("/", d.Leads.SubmitContact)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/", d.Leads.ListContacts)
				r.Get("/{id}", d.Leads.GetContact)
				r.Patch("/{id}", d.Leads.PatchContact)
				r.Delete("/{id}", d.Leads.DeleteContact)
			})
		})

		r.Route("/product-inquiries", func(r chi.Router) {
			r.With(leadLimit).Post("/", d.Leads.SubmitInquiry)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/", d.Leads.ListInquiries)
				r.Get("/{id}", d.Leads.GetInquiry)
				r.Patch("/{id}", d.Leads.PatchInquiry)
				r.Delete("/{id}", d.Leads.DeleteInquiry)
			})
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.With(leadLimit).Post("/", d.Leads.Subscribe)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/", d.Leads.ListSubscriptions)
				r.Patch("/{id}", d.Leads.PatchSubscription)
				r.Delete("/{id}", d.Leads.DeleteSubscription)
			})
		})

		r.NotFound(apiNotFound)
	})

	// Storefront.
	r.Get("/", d.Site.Page("home", "home", "ELV Solutions & Products"))
	r.Get("/about", d.Site.Page("about", "about", "About Us"))
	r.Get("/contact", d.Site.Page("contact", "contact", "Contact"))
	r.Get("/customized-solutions", d.Site.Page("customized_solutions", "customized-solutions", "Customized Solutions"))
	r.Get("/elv-solutions", d.Site.Page("elv_solutions", "elv-solutions", "ELV Solutions"))
	r.Get("/audio-visual", d.Site.Page("audio_visual", "audio-visual", "Audio Visual"))

	r.Get("/products", d.Site.Products)
	r.Get("/products/{category}", d.Site.Catalog)
	r.Get("/products/{category}/*", d.Site.Catalog)

	r.With(leadLimit).Post("/contact", d.Site.ContactSubmit)
	r.With(leadLimit).Post("/inquiry", d.Site.InquirySubmit)
	r.With(leadLimit).Post("/subscribe", d.Site.Subscribe)

	r.NotFound(d.Site.NotFound)

	return r
}

// limit returns rl's middleware, or a pass-through when rl is nil.
func limit(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Middleware
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not found"}` + "\n"))
}
