package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/muhe-mall/internal/constants"
	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *CartService, *AddressService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderService := NewOrderService(orderRepo, cartRepo, productRepo, addressRepo)
	cartService := NewCartService(cartRepo, productRepo)
	addressService := NewAddressService(addressRepo)
	return orderService, cartService, addressService, db
}

func TestCreateFromCartSnapshotsAndClears(t *testing.T) {
	orderService, cartService, addressService, db := setupOrderServiceTest(t)
	product := createServiceTestProduct(t, db, "grape", 1000, 10)
	cheap := createServiceTestProduct(t, db, "haw", 500, 10)

	ref := CartRef{UserID: 1}
	if _, err := cartService.AddItem(ref, AddCartItemInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := cartService.AddItem(ref, AddCartItemInput{ProductID: cheap.ID, Quantity: 3}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	address, err := addressService.Create(1, AddressInput{
		Recipient: "张三",
		Phone:     "13800000000",
		Address:   "幸福路 1 号",
		City:      "上海",
		Country:   "CN",
		IsDefault: true,
	})
	if err != nil {
		t.Fatalf("create address failed: %v", err)
	}

	order, err := orderService.CreateFromCart(1, CreateOrderInput{})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending order, got %s", order.Status)
	}
	if !order.Subtotal.Decimal.Equal(decimal.NewFromInt(3500)) {
		t.Fatalf("expected subtotal 3500, got %s", order.Subtotal.String())
	}
	if order.Recipient != address.Recipient || order.City != address.City {
		t.Fatal("expected address snapshot on order")
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}

	// 下单后购物车清空、库存扣减
	detail := cartService.GetDetail(ref)
	if len(detail.Items) != 0 {
		t.Fatalf("expected cart cleared, got %d items", len(detail.Items))
	}
	var stocked models.Product
	if err := db.First(&stocked, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if stocked.Stock != 8 {
		t.Fatalf("expected stock 8 after order, got %d", stocked.Stock)
	}
}

func TestCreateFromCartFailsWhenStockShort(t *testing.T) {
	orderService, cartService, addressService, db := setupOrderServiceTest(t)
	product := createServiceTestProduct(t, db, "kiwi", 100, 1)

	ref := CartRef{UserID: 1}
	if _, err := cartService.AddItem(ref, AddCartItemInput{ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := addressService.Create(1, AddressInput{
		Recipient: "李四",
		Phone:     "13900000000",
		Address:   "平安街 2 号",
		City:      "北京",
		Country:   "CN",
	}); err != nil {
		t.Fatalf("create address failed: %v", err)
	}

	if _, err := orderService.CreateFromCart(1, CreateOrderInput{}); !errors.Is(err, ErrProductOutOfStock) {
		t.Fatalf("expected ErrProductOutOfStock, got %v", err)
	}

	// 失败的下单不清空购物车、不扣库存
	detail := cartService.GetDetail(ref)
	if len(detail.Items) != 1 {
		t.Fatalf("expected cart intact, got %d items", len(detail.Items))
	}
	var stocked models.Product
	if err := db.First(&stocked, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if stocked.Stock != 1 {
		t.Fatalf("expected stock unchanged, got %d", stocked.Stock)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	orderService, cartService, addressService, db := setupOrderServiceTest(t)
	product := createServiceTestProduct(t, db, "lemon", 100, 10)

	if _, err := cartService.AddItem(CartRef{UserID: 1}, AddCartItemInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := addressService.Create(1, AddressInput{
		Recipient: "王五",
		Phone:     "13700000000",
		Address:   "长安街 3 号",
		City:      "北京",
		Country:   "CN",
	}); err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	order, err := orderService.CreateFromCart(1, CreateOrderInput{})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// 待支付不能直接发货
	if _, err := orderService.UpdateStatus(order.ID, constants.OrderStatusShipped); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}

	paid, err := orderService.UpdateStatus(order.ID, constants.OrderStatusPaid)
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if paid.PaidAt == nil {
		t.Fatal("expected paid_at set")
	}

	shipped, err := orderService.UpdateStatus(order.ID, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("mark shipped failed: %v", err)
	}
	if shipped.ShippedAt == nil {
		t.Fatal("expected shipped_at set")
	}

	if _, err := orderService.UpdateStatus(order.ID, constants.OrderStatusCanceled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected shipped order not cancelable, got %v", err)
	}
}

func TestCancelRestoresStock(t *testing.T) {
	orderService, cartService, addressService, db := setupOrderServiceTest(t)
	product := createServiceTestProduct(t, db, "mango", 100, 10)

	if _, err := cartService.AddItem(CartRef{UserID: 1}, AddCartItemInput{ProductID: product.ID, Quantity: 4}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := addressService.Create(1, AddressInput{
		Recipient: "赵六",
		Phone:     "13600000000",
		Address:   "人民路 4 号",
		City:      "广州",
		Country:   "CN",
	}); err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	order, err := orderService.CreateFromCart(1, CreateOrderInput{})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := orderService.CancelByUser(1, order.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	var stocked models.Product
	if err := db.First(&stocked, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if stocked.Stock != 10 {
		t.Fatalf("expected stock restored to 10, got %d", stocked.Stock)
	}
}
