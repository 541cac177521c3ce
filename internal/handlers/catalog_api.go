// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"elvcatalog/internal/catalog"
	"elvcatalog/internal/models"
)

// CatalogAPI serves the catalog JSON endpoints: public reads, the route
// resolver, and admin mutations.
type CatalogAPI struct {
	svc      *catalog.Service
	resolver *catalog.Resolver
}

// NewCatalogAPI creates a new CatalogAPI handler group.
func NewCatalogAPI(svc *catalog.Service, resolver *catalog.Resolver) *CatalogAPI {
	return &CatalogAPI{svc: svc, resolver: resolver}
}

// --- Request bodies ---

type seoRequest struct {
	Title       string `json:"title" schema:"title"`
	Description string `json:"description" schema:"description"`
	Keywords    string `json:"keywords" schema:"keywords"`
}

func (s *seoRequest) model() *models.SEO {
	if s == nil {
		return nil
	}
	return &models.SEO{
		Title:       strings.TrimSpace(s.Title),
		Description: strings.TrimSpace(s.Description),
		Keywords:    strings.TrimSpace(s.Keywords),
	}
}

type categoryRequest struct {
	Name        *string `json:"name" schema:"name"`
	Description *string `json:"description" schema:"description"`
	DisplayType *string `json:"displayType" schema:"displayType"`
	IsActive    *bool   `json:"isActive" schema:"isActive"`
	RemoveImage bool    `json:"removeImage" schema:"removeImage"`
}

type subCategoryRequest struct {
	Name        *string     `json:"name" schema:"name"`
	Description *string     `json:"description" schema:"description"`
	CategoryID  *uuid.UUID  `json:"categoryId" schema:"categoryId"`
	IsActive    *bool       `json:"isActive" schema:"isActive"`
	SEO         *seoRequest `json:"seo" schema:"seo"`
	RemoveImage bool        `json:"removeImage" schema:"removeImage"`
}

type productRequest struct {
	Name             *string      `json:"name" schema:"name"`
	Description      *string      `json:"description" schema:"description"`
	KeyFeatures      *featureList `json:"keyFeatures" schema:"-"`
	CategoryID       *uuid.UUID   `json:"categoryId" schema:"categoryId"`
	SubCategoryID    *uuid.UUID   `json:"subcategoryId" schema:"subcategoryId"`
	ClearSubCategory bool         `json:"clearSubcategory" schema:"clearSubcategory"`
	SEO              *seoRequest  `json:"seo" schema:"seo"`
	RemoveImage1     bool         `json:"removeImage1" schema:"removeImage1"`
	RemoveImage2     bool         `json:"removeImage2" schema:"removeImage2"`
	RemoveImage3     bool         `json:"removeImage3" schema:"removeImage3"`
	RemoveImage4     bool         `json:"removeImage4" schema:"removeImage4"`
	RemovePDF        bool         `json:"removePdf" schema:"removePdf"`
}

// featureList accepts either a JSON array or a newline-separated string.
type featureList []string

func (f *featureList) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*f = catalog.ParseKeyFeatures(text)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("keyFeatures must be a string or an array of strings")
	}
	*f = catalog.ParseKeyFeatures(catalog.JoinKeyFeatures(list))
	return nil
}

// --- Categories ---

// ListCategories returns all categories. ?active=true keeps active ones;
// ?slug= returns the single matching category instead of a list.
func (a *CatalogAPI) ListCategories(w http.ResponseWriter, r *http.Request) {
	if s := r.URL.Query().Get("slug"); s != "" {
		c, err := a.svc.CategoryBySlug(s)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, catalog.CategoryResponse(*c))
		return
	}

	cats, err := a.svc.ListCategories(activeOnly(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.CategoryResponses(cats))
}

// GetCategory returns one category.
func (a *CatalogAPI) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	c, err := a.svc.Category(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.CategoryResponse(*c))
}

// CreateCategory creates a category from JSON or multipart (field "image").
func (a *CatalogAPI) CreateCategory(w http.ResponseWriter, r *http.Request) {
	in, err := a.categoryInput(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	c, err := a.svc.CreateCategory(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, catalog.CategoryResponse(*c))
}

// UpdateCategory applies the submitted fields to a category.
func (a *CatalogAPI) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	in, err := a.categoryInput(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	c, err := a.svc.UpdateCategory(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.CategoryResponse(*c))
}

// DeleteCategory removes an empty category.
func (a *CatalogAPI) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := a.svc.DeleteCategory(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "Category deleted successfully"})
}

func (a *CatalogAPI) categoryInput(w http.ResponseWriter, r *http.Request) (catalog.CategoryInput, error) {
	var req categoryRequest
	if _, err := decodeBody(w, r, &req); err != nil {
		return catalog.CategoryInput{}, err
	}
	if err := checkLimits(
		limit{"name", req.Name, maxNameLen},
		limit{"description", req.Description, maxDescriptionLen},
	); err != nil {
		return catalog.CategoryInput{}, err
	}
	image, err := formUpload(r, "image")
	if err != nil {
		return catalog.CategoryInput{}, err
	}

	in := catalog.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
		Image:       image,
		RemoveImage: req.RemoveImage,
	}
	if req.DisplayType != nil {
		dt := models.DisplayType(strings.TrimSpace(*req.DisplayType))
		in.DisplayType = &dt
	}
	return in, nil
}

// --- Subcategories ---

// ListSubCategories returns subcategories, optionally of ?category={id}.
func (a *CatalogAPI) ListSubCategories(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryID(r, "category")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	subs, err := a.svc.ListSubCategories(categoryID, activeOnly(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.SubCategoryResponses(subs))
}

// GetSubCategory returns one subcategory with its parent category.
func (a *CatalogAPI) GetSubCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	sc, err := a.svc.SubCategory(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	a.writeSubCategory(w, r, http.StatusOK, sc)
}

// CreateSubCategory creates a subcategory under a subcategories-mode category.
func (a *CatalogAPI) CreateSubCategory(w http.ResponseWriter, r *http.Request) {
	in, err := a.subCategoryInput(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	sc, err := a.svc.CreateSubCategory(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	a.writeSubCategory(w, r, http.StatusCreated, sc)
}

// UpdateSubCategory applies the submitted fields to a subcategory.
func (a *CatalogAPI) UpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	in, err := a.subCategoryInput(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	sc, err := a.svc.UpdateSubCategory(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	a.writeSubCategory(w, r, http.StatusOK, sc)
}

// DeleteSubCategory removes a subcategory without products.
func (a *CatalogAPI) DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := a.svc.DeleteSubCategory(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "Subcategory deleted successfully"})
}

func (a *CatalogAPI) subCategoryInput(w http.ResponseWriter, r *http.Request) (catalog.SubCategoryInput, error) {
	var req subCategoryRequest
	if _, err := decodeBody(w, r, &req); err != nil {
		return catalog.SubCategoryInput{}, err
	}
	seo := req.SEO.model()
	if err := checkLimits(
		limit{"name", req.Name, maxNameLen},
		limit{"description", req.Description, maxDescriptionLen},
	); err != nil {
		return catalog.SubCategoryInput{}, err
	}
	if err := checkSEO(seo); err != nil {
		return catalog.SubCategoryInput{}, err
	}
	image, err := formUpload(r, "image")
	if err != nil {
		return catalog.SubCategoryInput{}, err
	}
	return catalog.SubCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  optionalID(req.CategoryID),
		IsActive:    req.IsActive,
		SEO:         seo,
		Image:       image,
		RemoveImage: req.RemoveImage,
	}, nil
}

func (a *CatalogAPI) writeSubCategory(w http.ResponseWriter, r *http.Request, status int, sc *models.SubCategory) {
	cat, err := a.svc.Category(sc.CategoryID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, status, catalog.SubCategoryResponse(*sc, cat))
}

// --- Products ---

// ListProducts returns products filtered by ?category= or ?subcategory=.
// ?slug= returns the single matching product with its parents instead.
func (a *CatalogAPI) ListProducts(w http.ResponseWriter, r *http.Request) {
	if s := r.URL.Query().Get("slug"); s != "" {
		p, err := a.svc.ProductBySlug(s)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		a.writeProduct(w, r, http.StatusOK, p)
		return
	}

	var f catalog.ProductFilter
	var err error
	if f.CategoryID, err = queryID(r, "category"); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if f.SubCategoryID, err = queryID(r, "subcategory"); err != nil {
		writeServiceError(w, r, err)
		return
	}
	products, err := a.svc.ListProducts(f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.ProductResponses(products))
}

// GetProduct returns one product with its category and subcategory.
func (a *CatalogAPI) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	p, err := a.svc.Product(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	a.writeProduct(w, r, http.StatusOK, p)
}

// CreateProduct creates a product. Multipart bodies carry image1..image4
// and pdf; image1 is required.
func (a *CatalogAPI) CreateProduct(w http.ResponseWriter, r *http.Request) {
	in, err := a.productInput(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	p, err := a.svc.CreateProduct(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	a.writeProduct(w, r, http.StatusCreated, p)
}

// UpdateProduct applies the submitted fields and files to a product.
func (a *CatalogAPI) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	in, err := a.productInput(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	p, err := a.svc.UpdateProduct(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	a.writeProduct(w, r, http.StatusOK, p)
}

// DeleteProduct removes a product and its stored assets.
func (a *CatalogAPI) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := a.svc.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "Product deleted successfully"})
}

func (a *CatalogAPI) productInput(w http.ResponseWriter, r *http.Request) (catalog.ProductInput, error) {
	var req productRequest
	form, err := decodeBody(w, r, &req)
	if err != nil {
		return catalog.ProductInput{}, err
	}
	if form != nil {
		applyProductForm(&req, form)
	}

	in := catalog.ProductInput{
		Name:             req.Name,
		Description:      req.Description,
		CategoryID:       optionalID(req.CategoryID),
		SubCategoryID:    optionalID(req.SubCategoryID),
		ClearSubCategory: req.ClearSubCategory,
		SEO:              req.SEO.model(),
		RemoveImages:     [models.MaxProductImages]bool{req.RemoveImage1, req.RemoveImage2, req.RemoveImage3, req.RemoveImage4},
		RemovePDF:        req.RemovePDF,
	}
	if req.KeyFeatures != nil {
		in.KeyFeatures = []string(*req.KeyFeatures)
	}

	if err := checkLimits(
		limit{"name", in.Name, maxNameLen},
		limit{"description", in.Description, maxDescriptionLen},
	); err != nil {
		return catalog.ProductInput{}, err
	}
	if err := checkSEO(in.SEO); err != nil {
		return catalog.ProductInput{}, err
	}
	if err := checkKeyFeatures(in.KeyFeatures); err != nil {
		return catalog.ProductInput{}, err
	}

	for i := range in.Images {
		if in.Images[i], err = formUpload(r, "image"+strconv.Itoa(i+1)); err != nil {
			return catalog.ProductInput{}, err
		}
	}
	if in.PDF, err = formUpload(r, "pdf"); err != nil {
		return catalog.ProductInput{}, err
	}
	return in, nil
}

// applyProductForm handles the form fields the schema decoder cannot:
// keyFeatures as a textarea or repeated field, and an empty subcategoryId
// meaning "detach".
func applyProductForm(req *productRequest, form url.Values) {
	if vs, ok := form["keyFeatures"]; ok {
		features := featureList(catalog.ParseKeyFeatures(strings.Join(vs, "\n")))
		req.KeyFeatures = &features
	}
	if vs, ok := form["subcategoryId"]; ok && len(vs) > 0 && strings.TrimSpace(vs[0]) == "" {
		req.SubCategoryID = nil
		req.ClearSubCategory = true
	}
}

func (a *CatalogAPI) writeProduct(w http.ResponseWriter, r *http.Request, status int, p *models.Product) {
	cat, sub, err := a.svc.Parents(p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, status, catalog.ProductResponse(*p, cat, sub))
}

// --- Resolver ---

// resolutionNotFound is the 404 body of /api/catalog.
type resolutionNotFound struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Resolve walks /api/catalog/{category}/... like the storefront does and
// returns the outcome as JSON.
func (a *CatalogAPI) Resolve(w http.ResponseWriter, r *http.Request) {
	res, err := a.resolver.Resolve(chi.URLParam(r, "category"), pathSegments(chi.URLParam(r, "*"))...)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !res.Kind.Found() {
		writeJSON(w, http.StatusNotFound, resolutionNotFound{Error: "Not found", Kind: res.Kind.String()})
		return
	}
	writeJSON(w, http.StatusOK, catalog.ResolutionResponse(res))
}

// pathSegments splits a wildcard remainder, dropping empty segments so a
// trailing slash is ignored.
func pathSegments(rest string) []string {
	var out []string
	for _, s := range strings.Split(rest, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// activeOnly reads ?active=true.
func activeOnly(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("active"))
	return v
}
