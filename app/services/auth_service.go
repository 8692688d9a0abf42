package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/pkg/auth"
)

// SellerStore is the slice of the seller repository the auth service needs.
type SellerStore interface {
	Create(ctx context.Context, s models.Seller) (models.Seller, error)
	FindByEmail(ctx context.Context, email string) (models.Seller, error)
}

type AuthService struct {
	sellers SellerStore
}

func NewAuthService(sellers SellerStore) *AuthService {
	return &AuthService{sellers: sellers}
}

type RegisterInput struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	BusinessName string `json:"businessName" validate:"nullable,max=120"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult carries the signed token with the seller it identifies.
type AuthResult struct {
	Token  string        `json:"token"`
	Seller models.Seller `json:"seller"`
}

// Register creates a seller account and signs them in immediately.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("auth: hash password: %w", err)
	}

	seller, err := s.sellers.Create(ctx, models.Seller{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Password:     hash,
		BusinessName: strings.TrimSpace(in.BusinessName),
	})
	if err != nil {
		return AuthResult{}, err
	}

	return s.issue(seller)
}

// Login verifies credentials. A missing account and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	seller, err := s.sellers.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if errors.Is(err, models.ErrNotFound) {
		return AuthResult{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, err
	}

	if !auth.CheckPassword(seller.Password, in.Password) {
		return AuthResult{}, models.ErrInvalidCredentials
	}

	return s.issue(seller)
}

func (s *AuthService) issue(seller models.Seller) (AuthResult, error) {
	token, err := auth.GenerateToken(seller.ID.Hex(), seller.Email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return AuthResult{Token: token, Seller: seller}, nil
}
