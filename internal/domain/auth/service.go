package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/omspos/oms-api/internal/authz"
	"github.com/omspos/oms-api/internal/pkg/jwt"
	"github.com/omspos/oms-api/internal/pkg/password"
)

// Credential is the minimal account projection the login flow needs.
type Credential struct {
	UserID       uuid.UUID
	Username     string
	PasswordHash string
	Role         string
	OperatorID   uuid.NullUUID
	OutletID     uuid.NullUUID
}

// CredentialStore resolves accounts for login and refresh. The user
// domain provides the implementation through an adapter.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*Credential, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Credential, error)
}

type refreshRecord struct {
	UserID string `json:"user_id"`
}

type Service struct {
	store CredentialStore
	jwt   *jwt.Service
	redis *redis.Client
}

// NewService accepts a nil redis client; refresh tokens are then not
// persisted and every session lasts only as long as the access token.
func NewService(store CredentialStore, jwtService *jwt.Service, redisClient *redis.Client) *Service {
	return &Service{store: store, jwt: jwtService, redis: redisClient}
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	cred, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		// Burn a hash comparison anyway so a missing username costs the
		// same as a wrong password.
		password.Verify(req.Password, "$2a$12$000000000000000000000uGZLKQwhzQGkGmGZGxGZGxGZGxGZGxGa")
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, cred.PasswordHash) {
		log.Warn().Str("username", req.Username).Msg("failed login attempt")
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, cred)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", cred.UserID.String()).
		Str("username", cred.Username).
		Str("role", cred.Role).
		Msg("user logged in")

	return tokens, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a
// fresh pair is issued. A token can only be used once.
func (s *Service) Refresh(ctx context.Context, req *RefreshRequest) (*TokenResponse, error) {
	if s.redis == nil {
		return nil, ErrInvalidRefreshToken
	}

	key := refreshKey(req.RefreshToken)
	raw, err := s.redis.GetDel(ctx, key).Result()
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	var record refreshRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, ErrInvalidRefreshToken
	}
	userID, err := uuid.Parse(record.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	cred, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrInvalidRefreshToken
	}
	return s.issueTokens(ctx, cred)
}

// Logout revokes the presented refresh token. Access tokens are left to
// expire on their own.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if s.redis == nil || refreshToken == "" {
		return nil
	}
	if err := s.redis.Del(ctx, refreshKey(refreshToken)).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Me shapes the resolved identity for the profile endpoint.
func Me(identity *authz.Identity) *MeResponse {
	permissions := make([]string, 0, len(identity.Permissions))
	for p := range identity.Permissions {
		permissions = append(permissions, string(p))
	}

	resp := &MeResponse{
		UserID:      identity.UserID,
		Username:    identity.Username,
		Role:        string(identity.Role),
		Permissions: permissions,
	}
	if identity.OperatorID.Valid {
		operatorID := identity.OperatorID.UUID
		resp.OperatorID = &operatorID
	}
	if identity.OutletID.Valid {
		outletID := identity.OutletID.UUID
		resp.OutletID = &outletID
	}
	return resp
}

func (s *Service) issueTokens(ctx context.Context, cred *Credential) (*TokenResponse, error) {
	var operatorID, outletID *uuid.UUID
	if cred.OperatorID.Valid {
		operatorID = &cred.OperatorID.UUID
	}
	if cred.OutletID.Valid {
		outletID = &cred.OutletID.UUID
	}

	accessToken, err := s.jwt.GenerateAccessToken(cred.UserID, cred.Role, operatorID, outletID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if s.redis != nil {
		record, err := json.Marshal(refreshRecord{UserID: cred.UserID.String()})
		if err != nil {
			return nil, fmt.Errorf("failed to encode refresh record: %w", err)
		}
		if err := s.redis.Set(ctx, refreshKey(refreshToken), record, s.jwt.GetRefreshTTL()).Err(); err != nil {
			return nil, fmt.Errorf("failed to store refresh token: %w", err)
		}
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwt.GetAccessTTL().Seconds()),
	}, nil
}

func refreshKey(token string) string {
	return "refresh:" + jwt.HashRefreshToken(token)
}
