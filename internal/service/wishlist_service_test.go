package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/queue"
	"github.com/muhe-mall/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupWishlistServiceTest(t *testing.T) (*WishlistService, *CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:wishlist_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	cartService := NewCartService(cartRepo, productRepo)

	// 队列关闭时转移同步执行
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	wishlistService := NewWishlistService(wishlistRepo, productRepo, cartService, queueClient)
	return wishlistService, cartService, db
}

func createWishlistWithItems(t *testing.T, svc *WishlistService, db *gorm.DB, userID uint, stocks []int) (*models.Wishlist, []models.Product) {
	t.Helper()
	wishlist, err := svc.Create(userID, CreateWishlistInput{Name: "周末采购"})
	if err != nil {
		t.Fatalf("create wishlist failed: %v", err)
	}
	products := make([]models.Product, 0, len(stocks))
	for i, stock := range stocks {
		product := models.Product{
			Slug:     fmt.Sprintf("wish-product-%d-%d", wishlist.ID, i),
			Name:     fmt.Sprintf("心愿商品%d", i),
			Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(int64(10 * (i + 1)))),
			Stock:    stock,
			IsActive: true,
		}
		if err := db.Create(&product).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
		products = append(products, product)
		if _, err := svc.AddItem(userID, wishlist.ID, AddWishlistItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
			t.Fatalf("add wishlist item failed: %v", err)
		}
	}
	return wishlist, products
}

func TestTransferFiltersOutOfStockItems(t *testing.T) {
	svc, cartService, db := setupWishlistServiceTest(t)
	wishlist, products := createWishlistWithItems(t, svc, db, 1, []int{10, 0, 5})

	summary, err := svc.TransferToCart(1, wishlist.ID, nil, nil)
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	if summary.Success+summary.Failed != 2 {
		t.Fatalf("expected success+failed == 2, got %d+%d", summary.Success, summary.Failed)
	}
	if summary.Skipped != 1 {
		t.Fatalf("expected 1 skipped, got %d", summary.Skipped)
	}
	if summary.Total != 2 {
		t.Fatalf("expected total 2 attempted, got %d", summary.Total)
	}

	// 售罄商品绝不进入购物车
	detail := cartService.GetDetail(CartRef{UserID: 1})
	if len(detail.Items) != 2 {
		t.Fatalf("expected 2 cart rows, got %d", len(detail.Items))
	}
	for _, item := range detail.Items {
		if item.ProductID == products[1].ID {
			t.Fatal("out-of-stock product must never reach the cart")
		}
	}
}

func TestTransferEmitsSequentialProgress(t *testing.T) {
	svc, _, db := setupWishlistServiceTest(t)
	wishlist, _ := createWishlistWithItems(t, svc, db, 1, []int{10, 10, 10})

	var events []TransferProgress
	summary, err := svc.TransferToCart(1, wishlist.ID, nil, func(p TransferProgress) {
		events = append(events, p)
	})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if summary.Success != 3 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 progress events, got %d", len(events))
	}
	for i, event := range events {
		if event.Index != i+1 {
			t.Fatalf("expected ordered progress, event %d has index %d", i, event.Index)
		}
		if event.Total != 3 {
			t.Fatalf("expected total 3, got %d", event.Total)
		}
		if !event.Success {
			t.Fatalf("expected success event, got %+v", event)
		}
	}
}

func TestTransferMergesIntoExistingCartRows(t *testing.T) {
	svc, cartService, db := setupWishlistServiceTest(t)
	wishlist, products := createWishlistWithItems(t, svc, db, 1, []int{10})

	// 购物车里已有同一商品
	if _, err := cartService.AddItem(CartRef{UserID: 1}, AddCartItemInput{ProductID: products[0].ID, Quantity: 2}); err != nil {
		t.Fatalf("pre-add failed: %v", err)
	}

	if _, err := svc.TransferToCart(1, wishlist.ID, nil, nil); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	detail := cartService.GetDetail(CartRef{UserID: 1})
	if len(detail.Items) != 1 {
		t.Fatalf("expected merged single row, got %d", len(detail.Items))
	}
	if detail.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3 after merge, got %d", detail.Items[0].Quantity)
	}
}

func TestTransferRejectsForeignWishlist(t *testing.T) {
	svc, _, db := setupWishlistServiceTest(t)
	wishlist, _ := createWishlistWithItems(t, svc, db, 1, []int{10})

	if _, err := svc.TransferToCart(2, wishlist.ID, nil, nil); err != ErrWishlistNotFound {
		t.Fatalf("expected ErrWishlistNotFound, got %v", err)
	}
}

func TestStartTransferFallsBackToSyncWithoutQueue(t *testing.T) {
	svc, _, db := setupWishlistServiceTest(t)
	wishlist, _ := createWishlistWithItems(t, svc, db, 1, []int{10, 10})

	transferID, summary, err := svc.StartTransfer(context.Background(), 1, wishlist.ID, nil)
	if err != nil {
		t.Fatalf("start transfer failed: %v", err)
	}
	if transferID == "" {
		t.Fatal("expected transfer id")
	}
	if summary == nil {
		t.Fatal("expected inline summary when queue disabled")
	}
	if summary.Success != 2 {
		t.Fatalf("expected 2 succeeded, got %d", summary.Success)
	}
}

func TestWishlistDeleteRemovesItems(t *testing.T) {
	svc, _, db := setupWishlistServiceTest(t)
	wishlist, _ := createWishlistWithItems(t, svc, db, 1, []int{10, 10})

	if err := svc.Delete(1, wishlist.ID); err != nil {
		t.Fatalf("delete wishlist failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.WishlistItem{}).Where("wishlist_id = ?", wishlist.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cascading item delete, got %d rows", count)
	}
}
