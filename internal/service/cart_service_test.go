package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewCartService(cartRepo, productRepo), db
}

func createServiceTestProduct(t *testing.T, db *gorm.DB, slug string, price int64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Slug:     slug,
		Name:     "商品 " + slug,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Stock:    stock,
		IsActive: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestCartAddSameProductVariantMergesQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createServiceTestProduct(t, db, "apple", 10, 100)

	ref := CartRef{UserID: 1}
	if _, err := svc.AddItem(ref, AddCartItemInput{ProductID: product.ID, Variant: "1kg", Quantity: 2}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.AddItem(ref, AddCartItemInput{ProductID: product.ID, Variant: "1kg", Quantity: 3}); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	detail := svc.GetDetail(ref)
	if len(detail.Items) != 1 {
		t.Fatalf("expected one merged row, got %d", len(detail.Items))
	}
	if detail.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", detail.Items[0].Quantity)
	}
}

func TestCartAddDifferentVariantsKeepSeparateRows(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createServiceTestProduct(t, db, "banana", 8, 100)

	ref := CartRef{UserID: 1}
	if _, err := svc.AddItem(ref, AddCartItemInput{ProductID: product.ID, Variant: "500g", Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddItem(ref, AddCartItemInput{ProductID: product.ID, Variant: "1kg", Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	detail := svc.GetDetail(ref)
	if len(detail.Items) != 2 {
		t.Fatalf("expected two rows, got %d", len(detail.Items))
	}
}

func TestSubtotalSumsSimpleFold(t *testing.T) {
	items := []models.CartItem{
		{Price: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)), Quantity: 2},
		{Price: models.NewMoneyFromDecimal(decimal.NewFromInt(500)), Quantity: 3},
	}
	subtotal := Subtotal(items)
	if !subtotal.Decimal.Equal(decimal.NewFromInt(3500)) {
		t.Fatalf("expected subtotal 3500, got %s", subtotal.String())
	}
}

func TestCartUpdateQuantityOverwrites(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createServiceTestProduct(t, db, "cherry", 20, 100)

	ref := CartRef{UserID: 1}
	if _, err := svc.AddItem(ref, AddCartItemInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	detail := svc.GetDetail(ref)
	if len(detail.Items) != 1 {
		t.Fatalf("expected one row, got %d", len(detail.Items))
	}
	itemID := detail.Items[0].ID

	if err := svc.UpdateItemQuantity(ref, itemID, 7); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	detail = svc.GetDetail(ref)
	if detail.Items[0].Quantity != 7 {
		t.Fatalf("expected overwritten quantity 7, got %d", detail.Items[0].Quantity)
	}

	// 数量降到 0 视为删除
	if err := svc.UpdateItemQuantity(ref, itemID, 0); err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	detail = svc.GetDetail(ref)
	if len(detail.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(detail.Items))
	}
}

func TestCartGuestResolveIssuesToken(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createServiceTestProduct(t, db, "durian", 30, 100)

	cart, err := svc.AddItem(CartRef{}, AddCartItemInput{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("guest add failed: %v", err)
	}
	if cart.Token == "" {
		t.Fatal("expected guest cart token issued")
	}
	if cart.UserID != nil {
		t.Fatal("expected guest cart without user")
	}

	// 携带令牌再次加购命中同一购物车
	again, err := svc.AddItem(CartRef{Token: cart.Token}, AddCartItemInput{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("guest re-add failed: %v", err)
	}
	if again.ID != cart.ID {
		t.Fatalf("expected same guest cart, got %d and %d", cart.ID, again.ID)
	}
}

func TestMergeGuestCartSumsQuantities(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createServiceTestProduct(t, db, "eggplant", 5, 100)
	other := createServiceTestProduct(t, db, "fig", 12, 100)

	guest, err := svc.AddItem(CartRef{}, AddCartItemInput{ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("guest add failed: %v", err)
	}
	if _, err := svc.AddItem(CartRef{Token: guest.Token}, AddCartItemInput{ProductID: other.ID, Quantity: 1}); err != nil {
		t.Fatalf("guest add failed: %v", err)
	}

	userRef := CartRef{UserID: 9}
	if _, err := svc.AddItem(userRef, AddCartItemInput{ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("user add failed: %v", err)
	}

	if err := svc.MergeGuestCart(9, guest.Token); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	detail := svc.GetDetail(userRef)
	if len(detail.Items) != 2 {
		t.Fatalf("expected two rows after merge, got %d", len(detail.Items))
	}
	for _, item := range detail.Items {
		switch item.ProductID {
		case product.ID:
			if item.Quantity != 5 {
				t.Fatalf("expected merged quantity 5, got %d", item.Quantity)
			}
		case other.ID:
			if item.Quantity != 1 {
				t.Fatalf("expected quantity 1, got %d", item.Quantity)
			}
		}
	}

	// 并入后游客购物车销毁
	gone, err := svc.cartRepo.GetByToken(guest.Token)
	if err != nil {
		t.Fatalf("lookup guest cart failed: %v", err)
	}
	if gone != nil {
		t.Fatal("expected guest cart removed after merge")
	}
}
