package service

import (
	"context"
	"fmt"
	"time"

	"tribe-chatbot-be/internal/dto"
	"tribe-chatbot-be/internal/model"
	"tribe-chatbot-be/internal/repository/contract"
	"tribe-chatbot-be/internal/repository/specification"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	companyRepo contract.CompanyRepository
	jwtSecret   string
}

func NewAuthService(companyRepo contract.CompanyRepository, jwtSecret string) IAuthService {
	return &authService{
		companyRepo: companyRepo,
		jwtSecret:   jwtSecret,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	existing, err := s.companyRepo.FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	company := &model.Company{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hash),
		Description: req.Description,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	return &dto.RegisterCompanyResponse{Id: company.Id}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	company, err := s.companyRepo.FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(company.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"company_id": company.Id.String(),
		"exp":        time.Now().Add(12 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     signedToken,
		CompanyId: company.Id,
	}, nil
}
