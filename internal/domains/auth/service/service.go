package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"lifeguard/infras/jwt"
	"lifeguard/infras/otel"
	adminModel "lifeguard/internal/domains/admin/model"
	adminRepo "lifeguard/internal/domains/admin/repository"
	"lifeguard/internal/domains/auth/model/dto"
	"lifeguard/shared"
	"lifeguard/shared/constant"
	gDto "lifeguard/shared/dto"
	"lifeguard/shared/failure"
	"lifeguard/shared/password"
	"lifeguard/shared/timezone"
	"lifeguard/shared/validator"

	"github.com/rs/zerolog/log"
)

const errInvalidCredentials = "invalid email or password"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AdminResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, adminID string) error
	Me(ctx context.Context, adminID string) (dto.AdminResponse, error)
}

type serviceImpl struct {
	adminRepo  adminRepo.Admin
	jwtService jwt.JWT
	clock      timezone.Clock
	otel       otel.Otel
}

func New(adminRepo adminRepo.Admin, jwt jwt.JWT, clock timezone.Clock, otel otel.Otel) Auth {
	return &serviceImpl{
		adminRepo:  adminRepo,
		jwtService: jwt,
		clock:      clock,
		otel:       otel,
	}
}

func filterBy(field, value string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    adminModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); role != constant.RoleSuperAdmin {
		return res, failure.Forbidden("only a superadmin can register admins")
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = password.CheckStrength(req.Password); err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	exists, err := s.adminRepo.Exist(ctx, filterBy(adminModel.FieldEmail, strings.ToLower(strings.TrimSpace(req.Email))))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if admin exists")

		return res, fmt.Errorf("failed to check if admin exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := req.ToModel(shared.UserFromContext(ctx), hashedPassword, s.clock.Now())

	if err = s.adminRepo.Insert(ctx, admin); err != nil {
		log.Error().Err(err).Msg("failed to create admin")

		return res, fmt.Errorf("failed to create admin: %w", err)
	}

	res.FromModel(admin)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	emailFilter := filterBy(adminModel.FieldEmail, strings.ToLower(strings.TrimSpace(req.Email)))

	admin, err := s.adminRepo.Get(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized(errInvalidCredentials)
	}

	if err = password.Verify(req.Password, admin.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(errInvalidCredentials)
	}

	if !admin.Active {
		return res, failure.Forbidden("admin account is deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(admin.ID, admin.Email, admin.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: s.clock.Now()}
	updatedFields := shared.TransformFields(lastLogin, admin.ID)

	if err = s.adminRepo.Update(ctx, updatedFields, filterBy(adminModel.FieldID, admin.ID)); err != nil {
		log.Warn().Err(err).Str("admin_id", admin.ID).Msg("failed to update last login")

		return res, fmt.Errorf("failed to update last login: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, adminID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	if err = password.CheckStrength(req.NewPassword); err != nil {
		return failure.BadRequest(err) //nolint:wrapcheck
	}

	filter := filterBy(adminModel.FieldID, adminID)

	admin, err := s.adminRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return failure.NotFound("admin not found")
	}

	if err = password.Verify(req.CurrentPassword, admin.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, adminID)

	if err = s.adminRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) Me(ctx context.Context, adminID string) (res dto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Me")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.adminRepo.Get(ctx, filterBy(adminModel.FieldID, adminID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return res, failure.NotFound("admin not found")
	}

	res.FromModel(admin)

	return res, nil
}
