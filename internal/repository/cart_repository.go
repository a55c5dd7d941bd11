package repository

import (
	"errors"
	"time"

	"github.com/muhe-mall/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByToken(token string) (*models.Cart, error)
	GetByUserID(userID uint) (*models.Cart, error)
	GetByID(id uint) (*models.Cart, error)
	Create(cart *models.Cart) error
	Touch(cartID uint) error
	ListItems(cartID uint) ([]models.CartItem, error)
	FindItem(cartID, productID uint, variant string) (*models.CartItem, error)
	GetItemByID(itemID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	UpdateItem(item *models.CartItem) error
	DeleteItem(itemID uint) error
	ClearByCart(cartID uint) error
	DeleteCart(cartID uint) error
	DeleteStaleGuestCarts(before time.Time) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByToken 根据游客令牌获取购物车
func (r *GormCartRepository) GetByToken(token string) (*models.Cart, error) {
	if token == "" {
		return nil, nil
	}
	var cart models.Cart
	if err := r.db.Where("token = ?", token).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetByUserID 根据用户获取购物车
func (r *GormCartRepository) GetByUserID(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, nil
	}
	var cart models.Cart
	if err := r.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetByID 根据 ID 获取购物车
func (r *GormCartRepository) GetByID(id uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.First(&cart, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// Touch 刷新购物车活跃时间，游客购物车按该时间清理
func (r *GormCartRepository) Touch(cartID uint) error {
	if cartID == 0 {
		return nil
	}
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).Update("updated_at", time.Now()).Error
}

// ListItems 获取购物车项列表
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("cart_id = ?", cartID).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindItem 按 (购物车, 商品, 规格) 查找购物车项
// 同一组合至多一行，加购合并依赖该约束
func (r *GormCartRepository) FindItem(cartID, productID uint, variant string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ? AND variant = ?", cartID, productID, variant).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemByID 根据 ID 获取购物车项
func (r *GormCartRepository) GetItemByID(itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Preload("Product").First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 新增购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateItemQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity).Error
}

// UpdateItem 更新购物车项
func (r *GormCartRepository) UpdateItem(item *models.CartItem) error {
	return r.db.Save(item).Error
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}

// ClearByCart 清空购物车
func (r *GormCartRepository) ClearByCart(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// DeleteCart 删除购物车及其明细
func (r *GormCartRepository) DeleteCart(cartID uint) error {
	if cartID == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Cart{}, cartID).Error
	})
}

// DeleteStaleGuestCarts 清理长时间未活跃的游客购物车
func (r *GormCartRepository) DeleteStaleGuestCarts(before time.Time) (int64, error) {
	var carts []models.Cart
	if err := r.db.Where("user_id IS NULL AND updated_at < ?", before).Find(&carts).Error; err != nil {
		return 0, err
	}
	if len(carts) == 0 {
		return 0, nil
	}
	ids := make([]uint, 0, len(carts))
	for _, c := range carts {
		ids = append(ids, c.ID)
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id IN ?", ids).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Cart{}).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}
