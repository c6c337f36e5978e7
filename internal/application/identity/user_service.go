package identity

import (
	"context"
	"strings"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles account administration. All operations require an
// administrator principal.
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates a new account
func (s *UserService) Create(ctx context.Context, actor identity.Principal, req CreateUserRequest) (*UserInfo, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, strings.ToLower(req.Username))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	var user *identity.User
	if req.Admin {
		user, err = identity.NewAdminUser(req.Username, req.Email, req.Password)
	} else {
		user, err = identity.NewUser(req.Username, req.Email, req.Password)
	}
	if err != nil {
		return nil, err
	}

	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("username", user.Username),
		zap.String("created_by", actor.Username))

	info := ToUserInfo(user)
	return &info, nil
}

// GetByID retrieves an account by ID
func (s *UserService) GetByID(ctx context.Context, actor identity.Principal, userID uuid.UUID) (*UserInfo, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, shared.ErrForbidden
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// List returns all accounts. Non-admins may list accounts too: names are
// needed to label record ownership across the UI.
func (s *UserService) List(ctx context.Context) ([]UserInfo, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserInfos(users), nil
}

// Update updates an account's profile fields
func (s *UserService) Update(ctx context.Context, actor identity.Principal, userID uuid.UUID, req UpdateUserRequest) (*UserInfo, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Active != nil && *req.Active != user.Active {
		if *req.Active {
			err = user.Activate()
		} else {
			err = user.Deactivate()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	info := ToUserInfo(user)
	return &info, nil
}

// Delete removes an account. Prospects the user owned become unowned,
// interactions the user recorded are removed, and project notes survive
// with their creator cleared.
func (s *UserService) Delete(ctx context.Context, actor identity.Principal, userID uuid.UUID) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}
	if actor.UserID == userID {
		return shared.NewDomainError("CANNOT_DELETE", "Cannot delete your own account")
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("User deleted",
		zap.String("user_id", userID.String()),
		zap.String("deleted_by", actor.Username))
	return nil
}
