package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	ListByIDs(ids []uint) ([]models.User, error)
	ListActiveIDs() ([]uint, error)
	Create(user *models.User) error
	Update(user *models.User) error
	List(filter UserListFilter) ([]models.User, int64, error)
	BatchSetActive(userIDs []uint, active bool) (int64, error)
	BatchVerify(userIDs []uint) (int64, error)
	GetMembership(userID uint) (*models.UserMembership, error)
	GetMembershipForUpdate(userID uint) (*models.UserMembership, error)
	SaveMembership(membership *models.UserMembership) error
	ListMemberships(filter MembershipListFilter) ([]models.UserMembership, int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormUserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) *GormUserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// Transaction 执行事务
func (r *GormUserRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func (r *GormUserRepository) first(query *gorm.DB) (*models.User, error) {
	var user models.User
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	return r.first(r.db.Preload("Membership").Where("id = ?", id))
}

// GetByUsername 根据用户名获取用户
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.first(r.db.Preload("Membership").Where("username = ?", strings.TrimSpace(username)))
}

// GetByEmail 根据校园邮箱获取用户
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.first(r.db.Where("ait_email = ?", strings.ToLower(strings.TrimSpace(email))))
}

// ExistsByUsername 用户名是否已存在
func (r *GormUserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	if err := r.db.Unscoped().Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail 邮箱是否已存在
func (r *GormUserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Unscoped().Model(&models.User{}).
		Where("ait_email = ? OR email = ?", email, email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByIDs 批量获取用户
func (r *GormUserRepository) ListByIDs(ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListActiveIDs 获取全部启用用户 ID
func (r *GormUserRepository) ListActiveIDs() ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&models.User{}).Where("is_active = ?", true).Order("id asc").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Omit(clause.Associations).Save(user).Error
}

// List 用户列表
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	query = whereLike(query, filter.Search, "username", "email", "first_name", "last_name")
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var users []models.User
	if err := query.Preload("Membership").Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// BatchSetActive 批量启用/停用用户，停用时同时吊销已签发 Token
func (r *GormUserRepository) BatchSetActive(userIDs []uint, active bool) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	now := time.Now()
	updates := map[string]interface{}{
		"is_active":  active,
		"updated_at": now,
	}
	if !active {
		updates["token_invalid_before"] = now
		updates["token_version"] = gorm.Expr("token_version + 1")
	}
	result := r.db.Model(&models.User{}).Where("id IN ?", userIDs).Updates(updates)
	return result.RowsAffected, result.Error
}

// BatchVerify 批量标记用户已验证
func (r *GormUserRepository) BatchVerify(userIDs []uint) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.User{}).Where("id IN ?", userIDs).Updates(map[string]interface{}{
		"is_verified": true,
		"updated_at":  time.Now(),
	})
	return result.RowsAffected, result.Error
}

// GetMembership 获取用户会员
func (r *GormUserRepository) GetMembership(userID uint) (*models.UserMembership, error) {
	var membership models.UserMembership
	if err := r.db.Where("user_id = ?", userID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

// GetMembershipForUpdate 事务内加行锁读取会员（sqlite 忽略锁）
func (r *GormUserRepository) GetMembershipForUpdate(userID uint) (*models.UserMembership, error) {
	query := r.db
	if dbDialectName(r.db) != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var membership models.UserMembership
	if err := query.Where("user_id = ?", userID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

// SaveMembership 保存会员
func (r *GormUserRepository) SaveMembership(membership *models.UserMembership) error {
	if membership == nil {
		return nil
	}
	if membership.ID == 0 {
		return r.db.Create(membership).Error
	}
	return r.db.Omit(clause.Associations).Save(membership).Error
}

// ListMemberships 会员列表
func (r *GormUserRepository) ListMemberships(filter MembershipListFilter) ([]models.UserMembership, int64, error) {
	query := r.db.Model(&models.UserMembership{})
	if filter.ValidOnly != nil {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		if *filter.ValidOnly {
			query = query.Where("is_active = ? AND end_date > ?", true, now)
		} else {
			query = query.Where("is_active = ? OR end_date <= ?", false, now)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var memberships []models.UserMembership
	if err := query.Preload("User").Order("created_at DESC").Find(&memberships).Error; err != nil {
		return nil, 0, err
	}
	return memberships, total, nil
}
