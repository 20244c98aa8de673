package keygen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"
)

// KeyPair holds an RSA key pair in ready-to-use formats.
type KeyPair struct {
	// PrivateKey is the RSA private key in PEM-encoded PKCS#1 format.
	PrivateKey []byte
	// PublicKey is the public key in OpenSSH authorized_keys format.
	PublicKey []byte
}

// GenerateRSAKeyPair generates a new RSA key pair with the specified bit size.
// Common bit sizes are 2048 (minimum recommended) and 4096 (high security).
func GenerateRSAKeyPair(bits int) (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA private key: %w", err)
	}

	if err := privateKey.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate RSA private key: %w", err)
	}

	privDER := x509.MarshalPKCS1PrivateKey(privateKey)
	privBlock := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: privDER,
	}
	privateKeyPEM := pem.EncodeToMemory(&privBlock)

	publicRsaKey, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}

	pubKeyBytes := ssh.MarshalAuthorizedKey(publicRsaKey)

	return &KeyPair{
		PrivateKey: privateKeyPEM,
		PublicKey:  pubKeyBytes,
	}, nil
}

// MetadataEntry formats the public key as a Compute Engine ssh-keys
// metadata value: "username:ssh-rsa AAAA... username".
func (kp *KeyPair) MetadataEntry(user string) string {
	key := strings.TrimSpace(string(kp.PublicKey))
	return fmt.Sprintf("%s:%s %s", user, key, user)
}

// WriteFiles persists the key pair to disk. The private key is written
// with 0600 permissions.
func (kp *KeyPair) WriteFiles(privatePath, publicPath string) error {
	if err := os.WriteFile(privatePath, kp.PrivateKey, 0600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(publicPath, kp.PublicKey, 0644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}
	return nil
}

// LoadKeyPair reads an existing key pair from disk and validates that the
// private key parses as an SSH key.
func LoadKeyPair(privatePath, publicPath string) (*KeyPair, error) {
	priv, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	if _, err := ssh.ParsePrivateKey(priv); err != nil {
		return nil, fmt.Errorf("failed to parse private key %s: %w", privatePath, err)
	}

	pub, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key: %w", err)
	}
	if _, _, _, _, err := ssh.ParseAuthorizedKey(pub); err != nil {
		return nil, fmt.Errorf("failed to parse public key %s: %w", publicPath, err)
	}

	return &KeyPair{PrivateKey: priv, PublicKey: pub}, nil
}
