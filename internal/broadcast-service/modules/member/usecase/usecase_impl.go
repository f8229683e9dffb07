package usecase

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/member/domain"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/member/repository"
	"github.com/meetnear/broadcast-service/pkg/shared"
	"github.com/meetnear/broadcast-service/pkg/tracer"
)

// TokenSigner sign token claim into jwt string
type TokenSigner interface {
	GenerateToken(ctx context.Context, claim *shared.TokenClaim) (string, error)
}

type memberUsecaseImpl struct {
	repo  repository.MemberRepository
	token TokenSigner
}

// NewMemberUsecase usecase impl constructor
func NewMemberUsecase(repo repository.MemberRepository, token TokenSigner) MemberUsecase {
	return &memberUsecaseImpl{
		repo:  repo,
		token: token,
	}
}

func (uc *memberUsecaseImpl) Register(ctx context.Context, payload *domain.RegisterRequest) (data *domain.Member, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "MemberUsecase:Register")
	defer func() { trace.SetError(err); trace.Finish() }()

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if existing, err := uc.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailAlreadyRegistered
	} else if err != nil && err != mongo.ErrNoDocuments {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	data = &domain.Member{
		Email:    email,
		FullName: payload.FullName,
		Password: string(hashed),
	}
	if err := uc.repo.Insert(ctx, data); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	return data, nil
}

func (uc *memberUsecaseImpl) Login(ctx context.Context, payload *domain.LoginRequest) (data *domain.LoginResponse, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "MemberUsecase:Login")
	defer func() { trace.SetError(err); trace.Finish() }()

	member, err := uc.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrWrongCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(payload.Password)); err != nil {
		return nil, ErrWrongCredentials
	}

	claim := &shared.TokenClaim{Role: "member", Email: member.Email}
	claim.Subject = member.ID.Hex()
	tokenString, err := uc.token.GenerateToken(ctx, claim)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{Token: tokenString}, nil
}
