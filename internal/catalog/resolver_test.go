package catalog_test

import (
	"errors"
	"testing"

	"elvcatalog/internal/catalog"
	"elvcatalog/internal/models"
)

func TestResolveProductsMode(t *testing.T) {
	f := newFixture(t)
	cat := f.category("Accessories", models.DisplayTypeProducts)
	p1 := f.product("Cable Tester", cat.ID, nil)
	f.product("Crimp Tool", cat.ID, nil)
	r := f.mem.Resolver()

	res, err := r.Resolve("accessories")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Kind != catalog.KindProductListing {
		t.Fatalf("kind = %v, want product_listing", res.Kind)
	}
	if len(res.Products) != 2 {
		t.Errorf("products = %d, want 2", len(res.Products))
	}

	res, err = r.Resolve("accessories", p1.Slug)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Kind != catalog.KindProductDetail || res.Product.ID != p1.ID {
		t.Errorf("got %v, want product_detail for %s", res.Kind, p1.Slug)
	}

	res, err = r.Resolve("accessories", "nonexistent")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Kind != catalog.KindNotFound {
		t.Errorf("kind = %v, want not_found", res.Kind)
	}
}

func TestResolveSubcategoriesMode(t *testing.T) {
	f := newFixture(t)
	cat := f.category("Cameras", models.DisplayTypeSubcategories)
	dome := f.subcategory("Dome Cameras", cat.ID)
	bullet := f.subcategory("Bullet Cameras", cat.ID)
	dm100 := f.product("DM-100", cat.ID, &dome.ID)
	f.product("DM-200", cat.ID, &dome.ID)
	f.product("BL-1", cat.ID, &bullet.ID)
	r := f.mem.Resolver()

	res, err := r.Resolve("cameras")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Kind != catalog.KindSubcategoryListing || len(res.SubCategories) != 2 {
		t.Fatalf("got %v with %d subcategories, want subcategory_listing with 2", res.Kind, len(res.SubCategories))
	}

	res, err = r.Resolve("cameras", "dome-cameras")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Kind != catalog.KindSubcategoryDetail {
		t.Fatalf("kind = %v, want subcategory_detail", res.Kind)
	}
	if res.SubCategory.ID != dome.ID {
		t.Errorf("subcategory = %s, want %s", res.SubCategory.Slug, dome.Slug)
	}
	if len(res.Products) != 2 {
		t.Fatalf("products = %d, want 2", len(res.Products))
	}
	for _, p := range res.Products {
		if !p.InSubCategory(dome.ID) {
			t.Errorf("product %s is not in %s", p.Slug, dome.Slug)
		}
	}

	res, err = r.Resolve("cameras", "dome-cameras", dm100.Slug)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Kind != catalog.KindProductDetail || res.Product.ID != dm100.ID {
		t.Fatalf("got %v, want product_detail for dm-100", res.Kind)
	}
	if res.SubCategory == nil || res.SubCategory.ID != dome.ID {
		t.Error("product detail should carry the product's stored subcategory")
	}
}

func TestResolveFallsThroughToProduct(t *testing.T) {
	f := newFixture(t)
	cat := f.category("Cameras", models.DisplayTypeSubcategories)
	f.subcategory("Dome Cameras", cat.ID)
	direct := f.product("Camera Mount", cat.ID, nil)

	res, err := f.mem.Resolver().Resolve("cameras", direct.Slug)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Kind != catalog.KindProductDetail || res.Product.ID != direct.ID {
		t.Errorf("got %v, want product_detail for %s", res.Kind, direct.Slug)
	}
	if res.SubCategory != nil {
		t.Error("directly placed product should have no subcategory")
	}
}

func TestResolveSubcategoryWinsOverProduct(t *testing.T) {
	f := newFixture(t)
	cat := f.category("Cameras", models.DisplayTypeSubcategories)
	sub := f.subcategory("Thermal", cat.ID)
	other := f.category("Sensors", models.DisplayTypeProducts)
	f.product("Thermal", other.ID, nil)

	res, err := f.mem.Resolver().Resolve("cameras", "thermal")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Kind != catalog.KindSubcategoryDetail || res.SubCategory.ID != sub.ID {
		t.Errorf("kind = %v, want subcategory_detail", res.Kind)
	}
}

func TestResolveRejectsProductFromOtherCategory(t *testing.T) {
	f := newFixture(t)
	cameras := f.category("Cameras", models.DisplayTypeSubcategories)
	f.subcategory("Dome", cameras.ID)
	access := f.category("Access Control", models.DisplayTypeProducts)
	reader := f.product("Card Reader", access.ID, nil)
	r := f.mem.Resolver()

	for _, segs := range [][]string{{reader.Slug}, {"dome", reader.Slug}} {
		res, err := r.Resolve("cameras", segs...)
		if err != nil {
			t.Fatalf("Resolve(%v): %v", segs, err)
		}
		if res.Kind != catalog.KindNotFound {
			t.Errorf("Resolve(%v) kind = %v, want not_found", segs, res.Kind)
		}
	}
}

func TestResolveNotFound(t *testing.T) {
	f := newFixture(t)
	cat := f.category("Cameras", models.DisplayTypeSubcategories)
	hidden := f.category("Hidden", models.DisplayTypeProducts)
	if _, err := f.svc.UpdateCategory(f.ctx, hidden.ID, catalog.CategoryInput{IsActive: ptr(false)}); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	sub := f.subcategory("Retired", cat.ID)
	if _, err := f.svc.UpdateSubCategory(f.ctx, sub.ID, catalog.SubCategoryInput{IsActive: ptr(false)}); err != nil {
		t.Fatalf("UpdateSubCategory: %v", err)
	}
	r := f.mem.Resolver()

	tests := []struct {
		name string
		cat  string
		rest []string
		want catalog.Kind
	}{
		{"unknown category", "nope", nil, catalog.KindCategoryNotFound},
		{"inactive category", "hidden", nil, catalog.KindCategoryNotFound},
		{"unknown segment", "cameras", []string{"nope"}, catalog.KindNotFound},
		{"inactive subcategory", "cameras", []string{"retired"}, catalog.KindNotFound},
		{"unknown product", "cameras", []string{"retired", "nope"}, catalog.KindNotFound},
		{"too many segments", "cameras", []string{"a", "b", "c"}, catalog.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resolve(tt.cat, tt.rest...)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if res.Kind != tt.want {
				t.Errorf("kind = %v, want %v", res.Kind, tt.want)
			}
			if res.Kind.Found() {
				t.Error("Found() = true for a not-found outcome")
			}
		})
	}
}

func TestResolveStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.category("Cameras", models.DisplayTypeSubcategories)
	boom := errors.New("connection refused")
	f.mem.Err = boom

	if _, err := f.mem.Resolver().Resolve("cameras"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped store error", err)
	}
}

func TestKindString(t *testing.T) {
	if got := catalog.KindSubcategoryDetail.String(); got != "subcategory_detail" {
		t.Errorf("String() = %q", got)
	}
	if got := catalog.Kind(99).String(); got != "kind(99)" {
		t.Errorf("String() = %q", got)
	}
}
