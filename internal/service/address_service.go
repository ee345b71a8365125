package service

import (
	"strings"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"

	"gorm.io/gorm"
)

// AddressService 收货地址服务
type AddressService struct {
	repo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(repo repository.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

// AddressInput 地址参数，指针为空表示不修改
type AddressInput struct {
	Name          *string
	AddressType   *string
	RecipientName *string
	PhoneNumber   *string
	AddressLine1  *string
	AddressLine2  *string
	City          *string
	StateProvince *string
	PostalCode    *string
	Country       *string
	IsDefault     *bool
}

// List 启用地址
func (s *AddressService) List(userID uint) ([]models.Address, error) {
	return s.repo.ListActive(userID)
}

// Get 获取地址
func (s *AddressService) Get(userID, id uint) (*models.Address, error) {
	address, err := s.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

// GetDefault 获取默认地址
func (s *AddressService) GetDefault(userID uint) (*models.Address, error) {
	address, err := s.repo.GetDefault(userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

// Create 新增地址
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	address := &models.Address{
		UserID:      userID,
		AddressType: constants.AddressTypeHome,
		Country:     constants.AddressCountryDefault,
		IsActive:    true,
	}
	if err := applyAddressInput(address, input); err != nil {
		return nil, err
	}
	if err := validateAddress(address); err != nil {
		return nil, err
	}
	if err := s.save(address, true); err != nil {
		return nil, err
	}
	return address, nil
}

// Update 更新地址
func (s *AddressService) Update(userID, id uint, input AddressInput) (*models.Address, error) {
	address, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if err := applyAddressInput(address, input); err != nil {
		return nil, err
	}
	if err := validateAddress(address); err != nil {
		return nil, err
	}
	if err := s.save(address, false); err != nil {
		return nil, err
	}
	return address, nil
}

// SetDefault 设为默认地址
func (s *AddressService) SetDefault(userID, id uint) (*models.Address, error) {
	address, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	address.IsDefault = true
	if err := s.save(address, false); err != nil {
		return nil, err
	}
	return address, nil
}

// Delete 删除地址
func (s *AddressService) Delete(userID, id uint) error {
	if _, err := s.Get(userID, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// save 写入地址；默认地址在同一事务中取消其他默认
func (s *AddressService) save(address *models.Address, create bool) error {
	return s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var err error
		if create {
			err = repo.Create(address)
		} else {
			err = repo.Update(address)
		}
		if err != nil {
			return err
		}
		if address.IsDefault {
			return repo.ClearDefault(address.UserID, address.ID)
		}
		return nil
	})
}

func applyAddressInput(address *models.Address, input AddressInput) error {
	assign := func(target *string, value *string) {
		if value != nil {
			*target = strings.TrimSpace(*value)
		}
	}
	assign(&address.Name, input.Name)
	assign(&address.RecipientName, input.RecipientName)
	assign(&address.PhoneNumber, input.PhoneNumber)
	assign(&address.AddressLine1, input.AddressLine1)
	assign(&address.AddressLine2, input.AddressLine2)
	assign(&address.City, input.City)
	assign(&address.StateProvince, input.StateProvince)
	assign(&address.PostalCode, input.PostalCode)
	assign(&address.Country, input.Country)
	if input.AddressType != nil {
		addressType := strings.ToLower(strings.TrimSpace(*input.AddressType))
		switch addressType {
		case constants.AddressTypeHome, constants.AddressTypeWork, constants.AddressTypeOther:
			address.AddressType = addressType
		default:
			return ErrAddressInvalid
		}
	}
	if input.IsDefault != nil {
		address.IsDefault = *input.IsDefault
	}
	if address.Country == "" {
		address.Country = constants.AddressCountryDefault
	}
	return nil
}

func validateAddress(address *models.Address) error {
	required := []string{address.Name, address.RecipientName, address.PhoneNumber, address.AddressLine1, address.City}
	for _, value := range required {
		if value == "" {
			return ErrAddressInvalid
		}
	}
	if len([]rune(address.PhoneNumber)) > 20 || len([]rune(address.Name)) > 100 {
		return ErrAddressInvalid
	}
	return nil
}
