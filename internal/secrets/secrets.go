// Package secrets encrypts values stored in the system_setting table, so the
// price-oracle API key never sits in the database as plaintext.
package secrets

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// ErrDecryptFailed indicates the token could not be verified with the
// configured key.
var ErrDecryptFailed = errors.New("failed to decrypt secret")

// Keeper encrypts and decrypts short secrets with a single fernet key.
type Keeper struct {
	key *fernet.Key
}

// NewKeeper decodes a base64 fernet key (as produced by fernet.Key.Encode).
func NewKeeper(encodedKey string) (*Keeper, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet key: %w", err)
	}
	return &Keeper{key: key}, nil
}

// Encrypt signs and encrypts plain into a fernet token.
func (k *Keeper) Encrypt(plain string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plain), k.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token. Tokens do not expire: a TTL
// of zero disables the fernet timestamp check, since stored settings live
// until replaced.
func (k *Keeper) Decrypt(token string) (string, error) {
	plain := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{k.key})
	if plain == nil {
		return "", ErrDecryptFailed
	}
	return string(plain), nil
}
