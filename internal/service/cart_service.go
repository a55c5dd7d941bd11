package service

import (
	"strings"
	"time"

	"github.com/muhe-mall/internal/logger"
	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartRef 购物车归属：登录用户按 UserID，游客按 Token
type CartRef struct {
	UserID uint
	Token  string
}

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	ProductID uint
	Variant   string
	Quantity  int
}

// CartDetail 购物车详情（用于响应）
type CartDetail struct {
	CartID   uint              `json:"cart_id"`
	Token    string            `json:"token,omitempty"`
	Items    []models.CartItem `json:"items"`
	Subtotal models.Money      `json:"subtotal"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ResolveCart 获取归属对应的购物车，不存在时创建
// 游客首次加购时签发随机令牌，由客户端持有
func (s *CartService) ResolveCart(ref CartRef) (*models.Cart, error) {
	if ref.UserID > 0 {
		cart, err := s.cartRepo.GetByUserID(ref.UserID)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
		userID := ref.UserID
		cart = &models.Cart{UserID: &userID, Token: uuid.NewString()}
		if err := s.cartRepo.Create(cart); err != nil {
			return nil, err
		}
		return cart, nil
	}

	token := strings.TrimSpace(ref.Token)
	if token != "" {
		cart, err := s.cartRepo.GetByToken(token)
		if err != nil {
			return nil, err
		}
		if cart != nil && cart.UserID == nil {
			return cart, nil
		}
	}
	cart := &models.Cart{Token: uuid.NewString()}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetDetail 获取购物车详情
// 读取失败时降级为空购物车，仅记录日志
func (s *CartService) GetDetail(ref CartRef) CartDetail {
	cart, err := s.ResolveCart(ref)
	if err != nil {
		logger.Warnw("cart_resolve_failed", "user_id", ref.UserID, "error", err)
		return CartDetail{Items: []models.CartItem{}, Subtotal: models.NewMoneyFromDecimal(decimal.Zero)}
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		logger.Warnw("cart_items_list_failed", "cart_id", cart.ID, "error", err)
		items = []models.CartItem{}
	}
	detail := CartDetail{
		CartID:   cart.ID,
		Items:    items,
		Subtotal: Subtotal(items),
	}
	if cart.UserID == nil {
		detail.Token = cart.Token
	}
	return detail
}

// AddItem 加购
// 同一 (购物车, 商品, 规格) 合并为一行，数量累加
func (s *CartService) AddItem(ref CartRef, input AddCartItemInput) (*models.Cart, error) {
	if input.ProductID == 0 || input.Quantity <= 0 {
		return nil, ErrCartItemInvalid
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}

	cart, err := s.ResolveCart(ref)
	if err != nil {
		return nil, err
	}

	variant := strings.TrimSpace(input.Variant)
	existing, err := s.cartRepo.FindItem(cart.ID, input.ProductID, variant)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.cartRepo.UpdateItemQuantity(existing.ID, existing.Quantity+input.Quantity); err != nil {
			return nil, err
		}
		if err := s.cartRepo.Touch(cart.ID); err != nil {
			logger.Warnw("cart_touch_failed", "cart_id", cart.ID, "error", err)
		}
		return cart, nil
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	now := time.Now()
	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Variant:   variant,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  input.Quantity,
		Unit:      product.Unit,
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cartRepo.CreateItem(item); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Touch(cart.ID); err != nil {
		logger.Warnw("cart_touch_failed", "cart_id", cart.ID, "error", err)
	}
	return cart, nil
}

// UpdateItemQuantity 覆写购物车项数量
// 服务层不设下限，数量归一由调用方负责，0 及以下视为删除
func (s *CartService) UpdateItemQuantity(ref CartRef, itemID uint, quantity int) error {
	if itemID == 0 {
		return ErrCartItemInvalid
	}
	cart, item, err := s.ownedItem(ref, itemID)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		if err := s.cartRepo.DeleteItem(item.ID); err != nil {
			return err
		}
		return s.cartRepo.Touch(cart.ID)
	}
	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return err
	}
	return s.cartRepo.Touch(cart.ID)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(ref CartRef, itemID uint) error {
	if itemID == 0 {
		return ErrCartItemInvalid
	}
	cart, item, err := s.ownedItem(ref, itemID)
	if err != nil {
		return err
	}
	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return err
	}
	return s.cartRepo.Touch(cart.ID)
}

// Clear 清空购物车
func (s *CartService) Clear(ref CartRef) error {
	cart, err := s.ResolveCart(ref)
	if err != nil {
		return err
	}
	if err := s.cartRepo.ClearByCart(cart.ID); err != nil {
		return err
	}
	return s.cartRepo.Touch(cart.ID)
}

// MergeGuestCart 登录时把游客购物车并入用户购物车
// 与加购使用同一合并规则，并入完成后删除游客购物车
func (s *CartService) MergeGuestCart(userID uint, guestToken string) error {
	if userID == 0 || strings.TrimSpace(guestToken) == "" {
		return nil
	}
	guest, err := s.cartRepo.GetByToken(strings.TrimSpace(guestToken))
	if err != nil {
		return err
	}
	if guest == nil || guest.UserID != nil {
		return nil
	}
	items, err := s.cartRepo.ListItems(guest.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return s.cartRepo.DeleteCart(guest.ID)
	}

	target, err := s.ResolveCart(CartRef{UserID: userID})
	if err != nil {
		return err
	}
	for _, item := range items {
		existing, err := s.cartRepo.FindItem(target.ID, item.ProductID, item.Variant)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := s.cartRepo.UpdateItemQuantity(existing.ID, existing.Quantity+item.Quantity); err != nil {
				return err
			}
			continue
		}
		now := time.Now()
		merged := models.CartItem{
			CartID:    target.ID,
			ProductID: item.ProductID,
			Variant:   item.Variant,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Image:     item.Image,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.cartRepo.CreateItem(&merged); err != nil {
			return err
		}
	}
	if err := s.cartRepo.DeleteCart(guest.ID); err != nil {
		return err
	}
	return s.cartRepo.Touch(target.ID)
}

// PurgeStaleGuestCarts 清理超过保留期的游客购物车
func (s *CartService) PurgeStaleGuestCarts(ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		return 0, nil
	}
	return s.cartRepo.DeleteStaleGuestCarts(time.Now().Add(-ttl))
}

// Subtotal 小计 = Σ(单价 × 数量)
func Subtotal(items []models.CartItem) models.Money {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return models.NewMoneyFromDecimal(sum)
}

// ownedItem 校验购物车项归属，防止越权操作他人购物车
func (s *CartService) ownedItem(ref CartRef, itemID uint) (*models.Cart, *models.CartItem, error) {
	cart, err := s.ResolveCart(ref)
	if err != nil {
		return nil, nil, err
	}
	item, err := s.cartRepo.GetItemByID(itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil || item.CartID != cart.ID {
		return nil, nil, ErrCartItemNotFound
	}
	return cart, item, nil
}
