package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	defaultSecretService = "cycledash"
	defaultTokenUser     = "service_token"
	defaultDBKeyUser     = "db_key"
)

var (
	keyringGet = keyring.Get
	keyringSet = keyring.Set
)

// LoadToken loads the optional Cycle Service bearer token.
//
// Order of precedence:
// 1) CYCLEDASH_TOKEN environment variable.
// 2) system credential store item referenced by service/account.
//
// The service does not require authentication, so a missing token is not
// an error; an empty string means "send no Authorization header".
func LoadToken() (string, error) {
	if token := strings.TrimSpace(os.Getenv("CYCLEDASH_TOKEN")); token != "" {
		return token, nil
	}

	token, err := loadFromKeyring(defaultTokenUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

// SaveToken stores the service token in the system credential store.
func SaveToken(token string) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return errors.New("service token cannot be empty")
	}
	return saveToKeyring(defaultTokenUser, trimmed)
}

// LoadDBKey loads the local preferences database key.
func LoadDBKey() (string, error) {
	key, err := loadFromKeyring(defaultDBKeyUser)
	if err != nil {
		return "", err
	}
	return key, nil
}

// SaveDBKey stores the local preferences database key.
func SaveDBKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return errors.New("db key cannot be empty")
	}
	return saveToKeyring(defaultDBKeyUser, trimmed)
}

func loadFromKeyring(account string) (string, error) {
	service := envOrDefault("CYCLEDASH_KEYCHAIN_SERVICE", defaultSecretService)

	secret, err := keyringGet(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf(
			"failed to read keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}
	return strings.TrimSpace(secret), nil
}

func saveToKeyring(account, value string) error {
	service := envOrDefault("CYCLEDASH_KEYCHAIN_SERVICE", defaultSecretService)

	if err := keyringSet(service, account, value); err != nil {
		return fmt.Errorf(
			"failed to store keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
