// Package gpg provides OpenPGP detached signing and verification of release artifacts.
package gpg

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

var armorHeader = []byte("-----BEGIN PGP")

// Verifier checks detached signatures of packaged drivers against trusted keys
type Verifier struct {
	trusted openpgp.EntityList
}

// NewVerifier loads the trusted public keys from keyPaths, armored or binary
func NewVerifier(keyPaths ...string) (*Verifier, error) {
	v := &Verifier{}
	for _, p := range keyPaths {
		keys, err := readKeyFile(p)
		if err != nil {
			return nil, err
		}
		v.trusted = append(v.trusted, keys...)
	}
	if len(v.trusted) == 0 {
		return nil, errors.New("no trusted keys given")
	}
	return v, nil
}

func readKeyFile(keyPath string) (openpgp.EntityList, error) {
	//nolint:gosec // G304: keyPath is the user-selected public key
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	var keys openpgp.EntityList
	if bytes.HasPrefix(bytes.TrimSpace(data), armorHeader) {
		keys, err = openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	} else {
		keys, err = openpgp.ReadKeyRing(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse key file %s: %w", keyPath, err)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no keys found in %s", keyPath)
	}
	return keys, nil
}

// VerifyDetached checks sigPath against filePath and returns the signing key id
// in upper-case hex
func (v *Verifier) VerifyDetached(filePath, sigPath string) (string, error) {
	//nolint:gosec // G304: sigPath is the user-selected signature
	sigFile, err := os.Open(sigPath)
	if err != nil {
		return "", fmt.Errorf("failed to open signature file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer sigFile.Close()

	//nolint:gosec // G304: filePath is the artifact under verification
	dataFile, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open data file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer dataFile.Close()

	sig := bufio.NewReader(sigFile)
	head, _ := sig.Peek(len(armorHeader))

	var signer *openpgp.Entity
	if bytes.Equal(head, armorHeader) {
		signer, err = openpgp.CheckArmoredDetachedSignature(v.trusted, dataFile, sig, nil)
	} else {
		signer, err = openpgp.CheckDetachedSignature(v.trusted, dataFile, sig, nil)
	}
	if err != nil {
		return "", fmt.Errorf("signature verification failed: %w", err)
	}

	return fmt.Sprintf("%X", signer.PrimaryKey.KeyId), nil
}
