package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"elvcatalog/internal/catalog"
	"elvcatalog/internal/catalog/catalogtest"
	"elvcatalog/internal/models"
)

func ptr[T any](v T) *T { return &v }

func image(name string) *catalog.Upload {
	return &catalog.Upload{Filename: name, Data: []byte("img")}
}

type fixture struct {
	t      *testing.T
	ctx    context.Context
	mem    *catalogtest.Catalog
	assets *catalogtest.Assets
	svc    *catalog.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := catalogtest.New()
	assets := &catalogtest.Assets{}
	return &fixture{t: t, ctx: context.Background(), mem: mem, assets: assets, svc: mem.Service(assets)}
}

func (f *fixture) category(name string, dt models.DisplayType) *models.Category {
	f.t.Helper()
	c, err := f.svc.CreateCategory(f.ctx, catalog.CategoryInput{Name: ptr(name), DisplayType: &dt, Image: image("cat.png")})
	if err != nil {
		f.t.Fatalf("CreateCategory(%q): %v", name, err)
	}
	return c
}

func (f *fixture) subcategory(name string, categoryID uuid.UUID) *models.SubCategory {
	f.t.Helper()
	sc, err := f.svc.CreateSubCategory(f.ctx, catalog.SubCategoryInput{Name: ptr(name), CategoryID: &categoryID})
	if err != nil {
		f.t.Fatalf("CreateSubCategory(%q): %v", name, err)
	}
	return sc
}

func (f *fixture) product(name string, categoryID uuid.UUID, subID *uuid.UUID) *models.Product {
	f.t.Helper()
	in := catalog.ProductInput{Name: ptr(name), CategoryID: &categoryID, SubCategoryID: subID}
	in.Images[0] = image("front.jpg")
	p, err := f.svc.CreateProduct(f.ctx, in)
	if err != nil {
		f.t.Fatalf("CreateProduct(%q): %v", name, err)
	}
	return p
}
