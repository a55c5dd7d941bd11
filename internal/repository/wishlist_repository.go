package repository

import (
	"errors"

	"github.com/muhe-mall/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository 心愿单数据访问接口
type WishlistRepository interface {
	ListByUser(userID uint) ([]models.Wishlist, error)
	GetByID(id uint) (*models.Wishlist, error)
	GetByIDForUser(id, userID uint) (*models.Wishlist, error)
	Create(wishlist *models.Wishlist) error
	Update(wishlist *models.Wishlist) error
	Delete(id uint) error
	ListItems(wishlistID uint) ([]models.WishlistItem, error)
	ListItemsByIDs(wishlistID uint, itemIDs []uint) ([]models.WishlistItem, error)
	FindItem(wishlistID, productID uint, variant string) (*models.WishlistItem, error)
	CreateItem(item *models.WishlistItem) error
	UpdateItem(item *models.WishlistItem) error
	DeleteItem(itemID uint) error
	DeleteItems(wishlistID uint, itemIDs []uint) error
	CountItems(wishlistID uint) (int64, error)
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// ListByUser 获取用户的心愿单列表
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.Wishlist, error) {
	wishlists := make([]models.Wishlist, 0)
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&wishlists).Error; err != nil {
		return nil, err
	}
	return wishlists, nil
}

// GetByID 根据 ID 获取心愿单
func (r *GormWishlistRepository) GetByID(id uint) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := r.db.First(&wishlist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wishlist, nil
}

// GetByIDForUser 获取属于指定用户的心愿单
func (r *GormWishlistRepository) GetByIDForUser(id, userID uint) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&wishlist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wishlist, nil
}

// Create 创建心愿单
func (r *GormWishlistRepository) Create(wishlist *models.Wishlist) error {
	return r.db.Create(wishlist).Error
}

// Update 更新心愿单
func (r *GormWishlistRepository) Update(wishlist *models.Wishlist) error {
	return r.db.Save(wishlist).Error
}

// Delete 删除心愿单及其条目
func (r *GormWishlistRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wishlist_id = ?", id).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Wishlist{}, id).Error
	})
}

// ListItems 获取心愿单条目，按加入时间排序
func (r *GormWishlistRepository) ListItems(wishlistID uint) ([]models.WishlistItem, error) {
	items := make([]models.WishlistItem, 0)
	if err := r.db.Preload("Product").Where("wishlist_id = ?", wishlistID).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListItemsByIDs 获取心愿单中指定的条目
func (r *GormWishlistRepository) ListItemsByIDs(wishlistID uint, itemIDs []uint) ([]models.WishlistItem, error) {
	if len(itemIDs) == 0 {
		return []models.WishlistItem{}, nil
	}
	items := make([]models.WishlistItem, 0)
	if err := r.db.Preload("Product").Where("wishlist_id = ? AND id IN ?", wishlistID, itemIDs).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindItem 按 (心愿单, 商品, 规格) 查找条目
func (r *GormWishlistRepository) FindItem(wishlistID, productID uint, variant string) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.Where("wishlist_id = ? AND product_id = ? AND variant = ?", wishlistID, productID, variant).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem 新增心愿单条目
func (r *GormWishlistRepository) CreateItem(item *models.WishlistItem) error {
	return r.db.Create(item).Error
}

// UpdateItem 更新心愿单条目
func (r *GormWishlistRepository) UpdateItem(item *models.WishlistItem) error {
	return r.db.Save(item).Error
}

// DeleteItem 删除心愿单条目
func (r *GormWishlistRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.WishlistItem{}, itemID).Error
}

// DeleteItems 批量删除心愿单条目
func (r *GormWishlistRepository) DeleteItems(wishlistID uint, itemIDs []uint) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.db.Where("wishlist_id = ? AND id IN ?", wishlistID, itemIDs).Delete(&models.WishlistItem{}).Error
}

// CountItems 统计心愿单条目数
func (r *GormWishlistRepository) CountItems(wishlistID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.WishlistItem{}).Where("wishlist_id = ?", wishlistID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
