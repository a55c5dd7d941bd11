package repository

import (
	"errors"

	"github.com/muhe-mall/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 收货地址数据访问接口
type AddressRepository interface {
	ListByUser(userID uint) ([]models.Address, error)
	GetByIDForUser(id, userID uint) (*models.Address, error)
	GetDefault(userID uint) (*models.Address, error)
	Create(address *models.Address) error
	Update(address *models.Address) error
	SetDefault(userID, addressID uint) error
	Delete(userID, addressID uint) error
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// ListByUser 获取用户地址列表，默认地址排最前
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.Address, error) {
	addresses := make([]models.Address, 0)
	if err := r.db.Where("user_id = ?", userID).Order("is_default DESC, created_at DESC, id DESC").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetByIDForUser 获取属于指定用户的地址
func (r *GormAddressRepository) GetByIDForUser(id, userID uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// GetDefault 获取用户默认地址，未设置时回退到最近创建的地址
func (r *GormAddressRepository) GetDefault(userID uint) (*models.Address, error) {
	var address models.Address
	err := r.db.Where("user_id = ? AND is_default = ?", userID, true).First(&address).Error
	if err == nil {
		return &address, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	err = r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// Create 创建地址
// 若新地址为默认地址，同一事务内清除该用户其他默认标记
func (r *GormAddressRepository) Create(address *models.Address) error {
	if address == nil {
		return nil
	}
	if !address.IsDefault {
		return r.db.Create(address).Error
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("user_id = ? AND is_default = ?", address.UserID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Create(address).Error
	})
}

// Update 更新地址
// 若更新后为默认地址，同一事务内清除该用户其他默认标记
func (r *GormAddressRepository) Update(address *models.Address) error {
	if address == nil {
		return nil
	}
	if !address.IsDefault {
		return r.db.Save(address).Error
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("user_id = ? AND id != ? AND is_default = ?", address.UserID, address.ID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Save(address).Error
	})
}

// SetDefault 设置默认地址
// 清除旧默认与设置新默认在同一事务内完成，任一步失败整体回滚
func (r *GormAddressRepository) SetDefault(userID, addressID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Address{}).
			Where("user_id = ? AND id != ? AND is_default = ?", userID, addressID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Address{}).
			Where("id = ?", addressID).
			Update("is_default", true).Error
	})
}

// Delete 删除地址
// 删除的是默认地址时，将最近创建的剩余地址提升为默认
func (r *GormAddressRepository) Delete(userID, addressID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Address{}, addressID).Error; err != nil {
			return err
		}
		if !address.IsDefault {
			return nil
		}
		var latest models.Address
		err := tx.Where("user_id = ?", userID).Order("created_at DESC, id DESC").First(&latest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&models.Address{}).Where("id = ?", latest.ID).Update("is_default", true).Error
	})
}
