package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/muhe-mall/internal/constants"
	"github.com/muhe-mall/internal/logger"
	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateOrderInput 下单输入
type CreateOrderInput struct {
	AddressID uint
	Remark    string
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	addressRepo repository.AddressRepository
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	addressRepo repository.AddressRepository,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
	}
}

// 订单状态机：键为当前状态，值为允许迁移到的状态
var orderStatusTransitions = map[string][]string{
	constants.OrderStatusPending: {constants.OrderStatusPaid, constants.OrderStatusCanceled},
	constants.OrderStatusPaid:    {constants.OrderStatusShipped, constants.OrderStatusCanceled},
	constants.OrderStatusShipped: {constants.OrderStatusDelivered},
}

// CreateFromCart 从购物车下单
// 地址快照、库存扣减、订单落库与清空购物车在同一事务内完成
func (s *OrderService) CreateFromCart(userID uint, input CreateOrderInput) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartEmpty
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	var address *models.Address
	if input.AddressID > 0 {
		address, err = s.addressRepo.GetByIDForUser(input.AddressID, userID)
	} else {
		address, err = s.addressRepo.GetDefault(userID)
	}
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	orderNo, err := generateOrderNo()
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	itemCount := 0
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		itemCount += item.Quantity
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Variant:   item.Variant,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Image:     item.Image,
		})
	}

	order := &models.Order{
		OrderNo:        orderNo,
		UserID:         userID,
		Status:         constants.OrderStatusPending,
		Subtotal:       models.NewMoneyFromDecimal(subtotal),
		ItemCount:      itemCount,
		Recipient:      address.Recipient,
		Phone:          address.Phone,
		Address:        address.Address,
		Neighborhood:   address.Neighborhood,
		City:           address.City,
		State:          address.State,
		PostalCode:     address.PostalCode,
		Country:        address.Country,
		AdditionalInfo: address.AdditionalInfo,
		Remark:         strings.TrimSpace(input.Remark),
		Items:          orderItems,
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		productTx := s.productRepo.WithTx(tx)
		for _, item := range items {
			affected, err := productTx.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w: product %d", ErrProductOutOfStock, item.ProductID)
			}
		}
		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearByCart(cart.ID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(userID uint, page, pageSize int, status string) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.orderRepo.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   strings.TrimSpace(status),
	})
}

// GetForUser 获取用户订单详情
func (s *OrderService) GetForUser(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// TrackByOrderNo 按订单号查询订单（归属校验）
func (s *OrderService) TrackByOrderNo(userID uint, orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// CancelByUser 用户取消待支付订单，取消时回补库存
func (s *OrderService) CancelByUser(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderStatusInvalid
	}
	return s.transition(order, constants.OrderStatusCanceled)
}

// List 管理端订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// Get 管理端获取订单
func (s *OrderService) Get(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus 管理端推进订单状态
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.transition(order, strings.TrimSpace(strings.ToLower(status)))
}

// transition 校验并执行状态迁移
func (s *OrderService) transition(order *models.Order, target string) (*models.Order, error) {
	allowed := false
	for _, next := range orderStatusTransitions[order.Status] {
		if next == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	fields := map[string]interface{}{"status": target, "updated_at": now}
	switch target {
	case constants.OrderStatusPaid:
		fields["paid_at"] = now
	case constants.OrderStatusShipped:
		fields["shipped_at"] = now
	}
	if err := s.orderRepo.UpdateFields(order.ID, fields); err != nil {
		return nil, err
	}

	// 取消订单时回补库存，回补失败不阻塞取消
	if target == constants.OrderStatusCanceled {
		for _, item := range order.Items {
			if err := s.productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				logger.Warnw("order_cancel_restock_failed", "order_id", order.ID, "product_id", item.ProductID, "error", err)
			}
		}
	}

	order.Status = target
	order.UpdatedAt = now
	switch target {
	case constants.OrderStatusPaid:
		order.PaidAt = &now
	case constants.OrderStatusShipped:
		order.ShippedAt = &now
	}
	return order, nil
}

// generateOrderNo 生成订单号：MH + 时间戳 + 6 位随机数
func generateOrderNo() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("MH%s%06d", time.Now().Format("20060102150405"), n.Int64()), nil
}
