package handlers

import (
	"net/http"
	"testing"

	"bistro-backend/models"
)

func TestGetCategoriesOrdered(t *testing.T) {
	db := freshDB(t)
	r := setupCategoryRouter(db)

	db.Create(&models.Category{Name: "Desserts", Position: 2})
	db.Create(&models.Category{Name: "Starters", Position: 0})
	db.Create(&models.Category{Name: "Mains", Position: 1})

	w := jsonRequest(t, r, http.MethodGet, "/api/categories", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := parseResponseArray(t, w)
	if len(body) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(body))
	}
	if body[0]["name"] != "Starters" || body[1]["name"] != "Mains" || body[2]["name"] != "Desserts" {
		t.Errorf("expected position order, got %v, %v, %v", body[0]["name"], body[1]["name"], body[2]["name"])
	}
}

func TestGetCategoryWithProducts(t *testing.T) {
	db := freshDB(t)
	r := setupCategoryRouter(db)

	category := seedCategory(t, db, "Mains")
	seedProduct(t, db, "Margherita", category.ID, 9.5)

	w := jsonRequest(t, r, http.MethodGet, "/api/categories/"+category.ID.String(), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := parseResponse(t, w)
	products, ok := body["products"].([]interface{})
	if !ok || len(products) != 1 {
		t.Errorf("expected the category to include its product, got %v", body["products"])
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	db := freshDB(t)
	r := setupCategoryRouter(db)

	w := jsonRequest(t, r, http.MethodGet, "/api/categories/00000000-0000-0000-0000-000000000000", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCreateCategory(t *testing.T) {
	db := freshDB(t)
	_, token := seedTestUser(t, db, "admin@bistro.local", "admin")
	r := setupCategoryRouter(db)

	w := authRequest(t, r, http.MethodPost, "/api/admin/categories", token, map[string]interface{}{
		"name":        "Drinks",
		"description": "Cold and hot drinks",
		"position":    3,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body := parseResponse(t, w)
	if body["name"] != "Drinks" {
		t.Errorf("expected name Drinks, got %v", body["name"])
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	db := freshDB(t)
	_, token := seedTestUser(t, db, "admin@bistro.local", "admin")
	r := setupCategoryRouter(db)
	seedCategory(t, db, "Drinks")

	w := authRequest(t, r, http.MethodPost, "/api/admin/categories", token, map[string]interface{}{
		"name": "Drinks",
	})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestCreateCategoryRequiresName(t *testing.T) {
	db := freshDB(t)
	_, token := seedTestUser(t, db, "admin@bistro.local", "admin")
	r := setupCategoryRouter(db)

	w := authRequest(t, r, http.MethodPost, "/api/admin/categories", token, map[string]interface{}{
		"description": "no name",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateCategoryPartial(t *testing.T) {
	db := freshDB(t)
	_, token := seedTestUser(t, db, "admin@bistro.local", "admin")
	r := setupCategoryRouter(db)
	category := seedCategory(t, db, "Mains")

	w := authRequest(t, r, http.MethodPut, "/api/admin/categories/"+category.ID.String(), token, map[string]interface{}{
		"position": 5,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Category
	db.First(&updated, "id = ?", category.ID)
	if updated.Position != 5 {
		t.Errorf("expected position 5, got %d", updated.Position)
	}
	if updated.Name != "Mains" {
		t.Errorf("expected name to be untouched, got %q", updated.Name)
	}
}

func TestDeleteCategoryBlockedByProducts(t *testing.T) {
	db := freshDB(t)
	_, token := seedTestUser(t, db, "admin@bistro.local", "admin")
	r := setupCategoryRouter(db)
	category := seedCategory(t, db, "Mains")
	seedProduct(t, db, "Margherita", category.ID, 9.5)

	w := authRequest(t, r, http.MethodDelete, "/api/admin/categories/"+category.ID.String(), token, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	body := parseResponse(t, w)
	if body["product_count"] != float64(1) {
		t.Errorf("expected product_count 1, got %v", body["product_count"])
	}

	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count != 1 {
		t.Error("expected the category to survive")
	}
}

func TestDeleteCategoryEmpty(t *testing.T) {
	db := freshDB(t)
	_, token := seedTestUser(t, db, "admin@bistro.local", "admin")
	r := setupCategoryRouter(db)
	category := seedCategory(t, db, "Mains")

	w := authRequest(t, r, http.MethodDelete, "/api/admin/categories/"+category.ID.String(), token, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count != 0 {
		t.Error("expected the category to be deleted")
	}
}

func TestCategoryWriteRequiresAuth(t *testing.T) {
	db := freshDB(t)
	r := setupCategoryRouter(db)

	w := jsonRequest(t, r, http.MethodPost, "/api/admin/categories", map[string]interface{}{
		"name": "Drinks",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
