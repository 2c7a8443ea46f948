package config

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups the app's secrets in the OS keychain.
const KeyringService = "scholarscout"

func keyringAccount(provider string) string {
	return "llm:" + strings.ToLower(strings.TrimSpace(provider))
}

// APIKey returns the stored key for provider, or "" when none is stored.
func APIKey(provider string) (string, error) {
	key, err := keyring.Get(KeyringService, keyringAccount(provider))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

// SetAPIKey stores key for provider.
func SetAPIKey(provider, key string) error {
	if strings.TrimSpace(provider) == "" {
		return errors.New("provider is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, keyringAccount(provider), strings.TrimSpace(key))
}

// DeleteAPIKey removes the stored key for provider.
func DeleteAPIKey(provider string) error {
	err := keyring.Delete(KeyringService, keyringAccount(provider))
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
