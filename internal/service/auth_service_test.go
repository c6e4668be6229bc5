package service

import (
	"context"
	"testing"

	"tribe-chatbot-be/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeCompanyRepoImpl()
	svc := NewAuthService(repo, "test-secret")

	registered, err := svc.Register(context.Background(), &dto.RegisterCompanyRequest{
		Name:     "Acme",
		Email:    "owner@acme.test",
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	// Password is stored hashed, never verbatim.
	assert.NotEqual(t, "correct-horse", repo.storedPassword("owner@acme.test"))

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "owner@acme.test",
		Password: "correct-horse",
	})
	assert.NoError(t, err)
	assert.Equal(t, registered.Id, res.CompanyId)

	token, err := jwt.Parse(res.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, registered.Id.String(), claims["company_id"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeCompanyRepoImpl()
	svc := NewAuthService(repo, "test-secret")

	req := &dto.RegisterCompanyRequest{Name: "Acme", Email: "owner@acme.test", Password: "correct-horse"}
	_, err := svc.Register(context.Background(), req)
	assert.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeCompanyRepoImpl()
	svc := NewAuthService(repo, "test-secret")

	_, err := svc.Register(context.Background(), &dto.RegisterCompanyRequest{
		Name: "Acme", Email: "owner@acme.test", Password: "correct-horse",
	})
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "owner@acme.test", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@acme.test", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
