package service

import (
	"context"
	"errors"

	"github.com/monkroe/crypto-tracker-sub000/internal/apperrors"
	"github.com/monkroe/crypto-tracker-sub000/internal/repository"
	"github.com/monkroe/crypto-tracker-sub000/internal/secrets"
)

// settingOracleAPIKey is the system_setting key under which the encrypted
// price-oracle API key is stored.
const settingOracleAPIKey = "oracle_api_key"

// SettingsService stores and retrieves encrypted application settings.
// A nil keeper disables the encrypted store entirely (no FERNET_KEY set).
type SettingsService struct {
	settingRepo *repository.SettingRepository
	keeper      *secrets.Keeper
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingRepo *repository.SettingRepository, keeper *secrets.Keeper) *SettingsService {
	return &SettingsService{
		settingRepo: settingRepo,
		keeper:      keeper,
	}
}

// OracleAPIKey returns the stored oracle API key, or "" when none is stored
// or the encrypted store is disabled.
func (s *SettingsService) OracleAPIKey() (string, error) {
	if s.keeper == nil {
		return "", nil
	}

	token, err := s.settingRepo.Get(settingOracleAPIKey)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return s.keeper.Decrypt(token)
}

// StoreOracleAPIKey encrypts and persists the oracle API key.
func (s *SettingsService) StoreOracleAPIKey(ctx context.Context, key string) error {
	if s.keeper == nil {
		return errors.New("encrypted setting store is disabled: no fernet key configured")
	}

	token, err := s.keeper.Encrypt(key)
	if err != nil {
		return err
	}
	return s.settingRepo.Set(ctx, settingOracleAPIKey, token)
}
