package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"orcado_server/database"
	"orcado_server/lib"
	"orcado_server/structs"
	"orcado_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and account approval. New accounts
// start unapproved and cannot log in until an admin approves them; emails on
// the admin allowlist skip the gate and get the admin role.
type AuthService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	users  *database.UserRepository
}

func NewAuthService(logger *gecho.Logger, cfg *structs.Config, users *database.UserRepository) *AuthService {
	return &AuthService{
		logger: logger,
		cfg:    cfg,
		users:  users,
	}
}

func (as *AuthService) Register(ctx context.Context, request *structs.RegisterRequest) (*tables.User, error) {
	email := lib.NormalizeEmail(request.Email)

	if _, err := as.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email is already registered", lib.ErrConflict)
	} else if !errors.Is(err, lib.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &tables.User{
		Id:           uuid.New(),
		Name:         request.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         tables.RoleClient,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if slices.Contains(as.cfg.Auth.AdminEmails, email) {
		user.Role = tables.RoleAdmin
		user.Approved = true
	}

	if err := as.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	as.logger.Info("User registered",
		gecho.Field("user_id", user.Id),
		gecho.Field("role", user.Role),
		gecho.Field("approved", user.Approved))

	return user, nil
}

func (as *AuthService) Login(ctx context.Context, request *structs.LoginRequest) (*tables.AuthResponse, error) {
	user, err := as.users.GetByEmail(ctx, lib.NormalizeEmail(request.Email))
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			return nil, lib.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, lib.ErrInvalidCredentials
	}

	if !user.Approved {
		return nil, lib.ErrNotApproved
	}

	token, err := lib.CreateToken(user.Id, user.Email, user.Role, as.cfg.Auth.TokenSecret, as.cfg.Auth.TokenExpiry)
	if err != nil {
		return nil, err
	}

	if err := as.users.TouchLastLogin(ctx, user.Id); err != nil {
		as.logger.Warn("Failed to update last login", gecho.Field("error", err))
	}

	return &tables.AuthResponse{User: user, Token: token}, nil
}

func (as *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*tables.User, error) {
	return as.users.GetByID(ctx, id)
}

// ListPendingUsers returns accounts still waiting for approval.
func (as *AuthService) ListPendingUsers(ctx context.Context) ([]tables.User, error) {
	return as.users.ListPending(ctx)
}

// ApproveUser lets an approved account log in from now on.
func (as *AuthService) ApproveUser(ctx context.Context, id uuid.UUID) error {
	if err := as.users.SetApproved(ctx, id, true); err != nil {
		return err
	}

	as.logger.Info("User approved", gecho.Field("user_id", id))
	return nil
}
