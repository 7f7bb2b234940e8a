package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"SwipeEstate/models"
	"SwipeEstate/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultExternalName = "Telegram User"

type AccountService struct {
	DB     *gorm.DB
	Tokens *utils.TokenManager
	Logger *zap.Logger
}

func NewAccountService(db *gorm.DB, tokens *utils.TokenManager, logger *zap.Logger) *AccountService {
	return &AccountService{DB: db, Tokens: tokens, Logger: logger}
}

type RegisterInput struct {
	Role     string
	Name     string
	Email    *string
	Phone    *string
	Password string
}

type ExternalLoginInput struct {
	TelegramID string
	Phone      *string
	Name       *string
	Role       *string
}

// Register creates an account. Email and phone must not belong to anyone else.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if !models.IsValidRole(in.Role) {
		return nil, newError(ErrValidation, "unknown role")
	}
	email := normalize(in.Email)
	phone := normalize(in.Phone)

	db := s.DB.WithContext(ctx)
	if email != nil {
		taken, err := exists(db.Model(&models.User{}).Where("email = ?", *email))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, newError(ErrConflict, "User with this email already exists")
		}
	}
	if phone != nil {
		taken, err := exists(db.Model(&models.User{}).Where("phone = ?", *phone))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, newError(ErrConflict, "User with this phone already exists")
		}
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Role:         in.Role,
		Name:         in.Name,
		Email:        email,
		Phone:        phone,
		PasswordHash: &hashed,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(ErrConflict, "User with this email or phone already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.Logger.Info("account registered", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return &user, nil
}

// Login accepts either the email or the phone as identifier.
func (s *AccountService) Login(ctx context.Context, identifier, password string) (string, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).
		Where("email = ? OR phone = ?", identifier, identifier).
		Limit(1).
		Find(&users).Error
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	if len(users) == 0 {
		return "", newError(ErrUnauthorized, "Incorrect username or password")
	}
	user := users[0]

	hash := ""
	if user.PasswordHash != nil {
		hash = *user.PasswordHash
	}
	if !utils.CheckPassword(hash, password) {
		return "", newError(ErrUnauthorized, "Incorrect username or password")
	}
	if !user.IsActive {
		return "", newError(ErrUnauthorized, "Account is deactivated")
	}

	return s.Tokens.IssueToken(user.ID, 0)
}

// LoginOrCreateViaExternal resolves a bot user by telegram id, then by phone
// (binding the telegram id to the match), and otherwise creates a fresh
// active account. A returning user whose telegram id changed and whose phone
// does not match ends up with a second account.
func (s *AccountService) LoginOrCreateViaExternal(ctx context.Context, in ExternalLoginInput) (string, error) {
	if in.TelegramID == "" {
		return "", newError(ErrValidation, "telegram_id is required")
	}
	phone := normalize(in.Phone)

	var user models.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := firstUser(tx.Where("telegram_id = ?", in.TelegramID))
		if err != nil {
			return err
		}

		if found == nil && phone != nil {
			found, err = firstUser(tx.Where("phone = ?", *phone))
			if err != nil {
				return err
			}
			if found != nil {
				found.TelegramID = &in.TelegramID
				if err := tx.Model(found).Update("telegram_id", in.TelegramID).Error; err != nil {
					return fmt.Errorf("bind telegram id: %w", err)
				}
			}
		}

		if found == nil {
			role := models.RoleTenant
			if in.Role != nil && *in.Role != "" {
				role = *in.Role
			}
			if !models.IsValidRole(role) || role == models.RoleAdmin {
				return newError(ErrValidation, "unknown role")
			}
			name := defaultExternalName
			if n := normalize(in.Name); n != nil {
				name = *n
			}
			found = &models.User{
				Role:       role,
				Name:       name,
				Phone:      phone,
				TelegramID: &in.TelegramID,
				IsActive:   true,
			}
			if err := tx.Create(found).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return newError(ErrConflict, "account for this telegram id already exists")
				}
				return fmt.Errorf("create external user: %w", err)
			}
			s.Logger.Info("account provisioned from bot", zap.Uint("user_id", found.ID))
		}

		user = *found
		return nil
	})
	if err != nil {
		return "", err
	}

	if !user.IsActive {
		return "", newError(ErrUnauthorized, "Account is deactivated")
	}
	return s.Tokens.IssueToken(user.ID, 0)
}

func (s *AccountService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "User not found")
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate resolves a bearer token to an active account.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.Tokens.DecodeToken(token)
	if err != nil {
		return nil, newError(ErrUnauthorized, "Could not validate credentials")
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, newError(ErrUnauthorized, "Could not validate credentials")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrUnauthorized, "Could not validate credentials")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, newError(ErrUnauthorized, "Account is deactivated")
	}
	return user, nil
}

func (s *AccountService) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&users).Error
	return users, err
}

// SetRoleAndActive applies only the fields that are set.
func (s *AccountService) SetRoleAndActive(ctx context.Context, id uint, role *string, active *bool) (*models.User, error) {
	if role != nil && !models.IsValidRole(*role) {
		return nil, newError(ErrValidation, "unknown role")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if role != nil {
		updates["role"] = *role
		user.Role = *role
	}
	if active != nil {
		updates["is_active"] = *active
		user.IsActive = *active
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.DB.WithContext(ctx).Model(&models.User{ID: id}).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.Logger.Info("account updated by admin", zap.Uint("user_id", id), zap.Any("changes", updates))
	return s.Get(ctx, id)
}

func normalize(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func exists(q *gorm.DB) (bool, error) {
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func firstUser(q *gorm.DB) (*models.User, error) {
	var users []models.User
	if err := q.Limit(1).Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}
