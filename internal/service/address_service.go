package service

import (
	"strings"

	"github.com/muhe-mall/internal/logger"
	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/repository"
)

// AddressInput 地址输入
type AddressInput struct {
	Name           string
	Recipient      string
	Phone          string
	Address        string
	Neighborhood   string
	City           string
	State          string
	PostalCode     string
	Country        string
	AdditionalInfo string
	IsDefault      bool
}

// AddressService 收货地址服务
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// ListByUser 获取用户地址列表
// 读取失败时降级为空列表，仅记录日志
func (s *AddressService) ListByUser(userID uint) []models.Address {
	if userID == 0 {
		return []models.Address{}
	}
	addresses, err := s.addressRepo.ListByUser(userID)
	if err != nil {
		logger.Warnw("address_list_failed", "user_id", userID, "error", err)
		return []models.Address{}
	}
	return addresses
}

// GetDefault 获取默认地址，未设置时回退到最近创建的地址
// 读取失败时返回 nil，仅记录日志
func (s *AddressService) GetDefault(userID uint) *models.Address {
	if userID == 0 {
		return nil
	}
	address, err := s.addressRepo.GetDefault(userID)
	if err != nil {
		logger.Warnw("address_default_failed", "user_id", userID, "error", err)
		return nil
	}
	return address
}

// Create 新增地址
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}
	address := buildAddress(userID, input)
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Update 更新地址
func (s *AddressService) Update(userID, addressID uint, input AddressInput) (*models.Address, error) {
	existing, err := s.addressRepo.GetByIDForUser(addressID, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrAddressNotFound
	}
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}
	updated := buildAddress(userID, input)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.addressRepo.Update(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// SetDefault 设置默认地址
// 清除旧默认与设置新默认在仓库层同一事务内完成
func (s *AddressService) SetDefault(userID, addressID uint) error {
	existing, err := s.addressRepo.GetByIDForUser(addressID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAddressNotFound
	}
	return s.addressRepo.SetDefault(userID, addressID)
}

// Delete 删除地址
// 删除默认地址时仓库层把最近创建的剩余地址提升为默认
func (s *AddressService) Delete(userID, addressID uint) error {
	existing, err := s.addressRepo.GetByIDForUser(addressID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAddressNotFound
	}
	return s.addressRepo.Delete(userID, addressID)
}

func validateAddressInput(input AddressInput) error {
	if strings.TrimSpace(input.Recipient) == "" ||
		strings.TrimSpace(input.Phone) == "" ||
		strings.TrimSpace(input.Address) == "" ||
		strings.TrimSpace(input.City) == "" ||
		strings.TrimSpace(input.Country) == "" {
		return ErrInvalidInput
	}
	return nil
}

func buildAddress(userID uint, input AddressInput) *models.Address {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = strings.TrimSpace(input.Recipient)
	}
	return &models.Address{
		UserID:         userID,
		Name:           name,
		Recipient:      strings.TrimSpace(input.Recipient),
		Phone:          strings.TrimSpace(input.Phone),
		Address:        strings.TrimSpace(input.Address),
		Neighborhood:   strings.TrimSpace(input.Neighborhood),
		City:           strings.TrimSpace(input.City),
		State:          strings.TrimSpace(input.State),
		PostalCode:     strings.TrimSpace(input.PostalCode),
		Country:        strings.TrimSpace(input.Country),
		AdditionalInfo: strings.TrimSpace(input.AdditionalInfo),
		IsDefault:      input.IsDefault,
	}
}
