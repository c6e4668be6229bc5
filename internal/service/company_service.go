package service

import (
	"context"

	"tribe-chatbot-be/internal/dto"
	"tribe-chatbot-be/internal/repository/contract"
	"tribe-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ICompanyService interface {
	Show(ctx context.Context, id uuid.UUID) (*dto.CompanyResponse, error)
	Update(ctx context.Context, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyService struct {
	companyRepo contract.CompanyRepository
}

func NewCompanyService(companyRepo contract.CompanyRepository) ICompanyService {
	return &companyService{companyRepo: companyRepo}
}

func (s *companyService) Show(ctx context.Context, id uuid.UUID) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}

	return &dto.CompanyResponse{
		Id:          company.Id,
		Name:        company.Name,
		Email:       company.Email,
		Description: company.Description,
		CreatedAt:   company.CreatedAt,
	}, nil
}

func (s *companyService) Update(ctx context.Context, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}

	company.Name = req.Name
	company.Description = req.Description
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	return &dto.CompanyResponse{
		Id:          company.Id,
		Name:        company.Name,
		Email:       company.Email,
		Description: company.Description,
		CreatedAt:   company.CreatedAt,
	}, nil
}

func (s *companyService) Delete(ctx context.Context, id uuid.UUID) error {
	company, err := s.companyRepo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if company == nil {
		return ErrNotFound
	}
	return s.companyRepo.Delete(ctx, id)
}
