package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/muhe-mall/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCartRepository(db), db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, slug string, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Slug:     slug,
		Name:     "商品 " + slug,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Stock:    stock,
		IsActive: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestCartRepositoryFindItemMatchesVariant(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	product := createCartTestProduct(t, db, "apple", 10)

	cart := models.Cart{Token: "guest-token-1"}
	if err := repo.Create(&cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	item := models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Variant:   "1kg",
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  2,
	}
	if err := repo.CreateItem(&item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	found, err := repo.FindItem(cart.ID, product.ID, "1kg")
	if err != nil {
		t.Fatalf("find item failed: %v", err)
	}
	if found == nil {
		t.Fatal("expected item for matching variant")
	}
	if found.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", found.Quantity)
	}

	missing, err := repo.FindItem(cart.ID, product.ID, "500g")
	if err != nil {
		t.Fatalf("find item failed: %v", err)
	}
	if missing != nil {
		t.Fatal("expected no item for different variant")
	}
}

func TestCartRepositoryClearByCartRemovesOnlyOwnItems(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	product := createCartTestProduct(t, db, "banana", 10)

	cart1 := models.Cart{Token: "guest-token-a"}
	cart2 := models.Cart{Token: "guest-token-b"}
	if err := repo.Create(&cart1); err != nil {
		t.Fatalf("create cart1 failed: %v", err)
	}
	if err := repo.Create(&cart2); err != nil {
		t.Fatalf("create cart2 failed: %v", err)
	}

	for _, cartID := range []uint{cart1.ID, cart2.ID} {
		item := models.CartItem{
			CartID:    cartID,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  1,
		}
		if err := repo.CreateItem(&item); err != nil {
			t.Fatalf("create item failed: %v", err)
		}
	}

	if err := repo.ClearByCart(cart1.ID); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}

	items1, err := repo.ListItems(cart1.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items1) != 0 {
		t.Fatalf("expected cart1 empty, got %d items", len(items1))
	}

	items2, err := repo.ListItems(cart2.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items2) != 1 {
		t.Fatalf("expected cart2 untouched, got %d items", len(items2))
	}
}

func TestCartRepositoryDeleteStaleGuestCarts(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	product := createCartTestProduct(t, db, "cherry", 10)

	userID := uint(7)
	stale := models.Cart{Token: "stale-guest"}
	fresh := models.Cart{Token: "fresh-guest"}
	owned := models.Cart{Token: "user-cart", UserID: &userID}
	for _, cart := range []*models.Cart{&stale, &fresh, &owned} {
		if err := repo.Create(cart); err != nil {
			t.Fatalf("create cart failed: %v", err)
		}
		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  1,
		}
		if err := repo.CreateItem(&item); err != nil {
			t.Fatalf("create item failed: %v", err)
		}
	}

	old := time.Now().Add(-48 * time.Hour)
	if err := db.Model(&models.Cart{}).Where("id IN ?", []uint{stale.ID, owned.ID}).Update("updated_at", old).Error; err != nil {
		t.Fatalf("backdate carts failed: %v", err)
	}

	purged, err := repo.DeleteStaleGuestCarts(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("delete stale carts failed: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged cart, got %d", purged)
	}

	if got, err := repo.GetByToken("stale-guest"); err != nil || got != nil {
		t.Fatalf("expected stale guest cart removed, got %v err %v", got, err)
	}
	if got, err := repo.GetByToken("fresh-guest"); err != nil || got == nil {
		t.Fatalf("expected fresh guest cart kept, err %v", err)
	}
	if got, err := repo.GetByUserID(userID); err != nil || got == nil {
		t.Fatalf("expected user cart kept, err %v", err)
	}

	staleItems, err := repo.ListItems(stale.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(staleItems) != 0 {
		t.Fatalf("expected stale cart items removed, got %d", len(staleItems))
	}
}
