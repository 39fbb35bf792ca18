package gpg

import (
	"context"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// SignatureSuffix is appended to the artifact path to name its detached signature
const SignatureSuffix = ".asc"

// Signer produces ASCII-armored detached signatures with a single private key
type Signer struct {
	entity *openpgp.Entity
}

// NewSigner loads the first private key found in the armored key file at keyPath.
// An encrypted key is unlocked with passphrase.
func NewSigner(keyPath string, passphrase []byte) (*Signer, error) {
	//nolint:gosec // G304: keyPath is user-provided signing key
	f, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	var entity *openpgp.Entity
	for _, e := range keyring {
		if e.PrivateKey != nil {
			entity = e
			break
		}
	}
	if entity == nil {
		return nil, fmt.Errorf("no private key found in %s", keyPath)
	}

	if entity.PrivateKey.Encrypted {
		if len(passphrase) == 0 {
			return nil, fmt.Errorf("private key in %s is encrypted and no passphrase was given", keyPath)
		}
		if err := entity.DecryptPrivateKeys(passphrase); err != nil {
			return nil, fmt.Errorf("failed to decrypt private key: %w", err)
		}
	}

	return &Signer{entity: entity}, nil
}

// KeyID returns the signing key id in upper-case hex
func (s *Signer) KeyID() string {
	return fmt.Sprintf("%X", s.entity.PrimaryKey.KeyId)
}

// SignDetached writes an armored detached signature of filePath to filePath + ".asc"
func (s *Signer) SignDetached(_ context.Context, filePath string) (string, error) {
	//nolint:gosec // G304: filePath is the packaged artifact
	data, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer data.Close()

	sigPath := filePath + SignatureSuffix
	//nolint:gosec // G304: sigPath is derived from the packaged artifact
	out, err := os.Create(sigPath)
	if err != nil {
		return "", fmt.Errorf("failed to create signature file: %w", err)
	}

	if err := openpgp.ArmoredDetachSign(out, s.entity, data, nil); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("failed to sign %s: %w", filePath, err)
	}

	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to write signature file: %w", err)
	}

	return sigPath, nil
}
