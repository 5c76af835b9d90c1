package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

const rsaKeyBits = 2048

type signingKeys struct {
	private *rsa.PrivateKey
	public  *rsa.PublicKey
}

// loadSigningKeys reads base64-encoded PEM keys from JWT_PRIVATE_KEY and JWT_PUBLIC_KEY.
// Without them a fresh pair is generated, except in production.
func loadSigningKeys(production bool) (signingKeys, error) {
	privB64, pubB64 := os.Getenv("JWT_PRIVATE_KEY"), os.Getenv("JWT_PUBLIC_KEY")

	if privB64 == "" || pubB64 == "" {
		if production {
			return signingKeys{}, errors.New("JWT_PRIVATE_KEY and JWT_PUBLIC_KEY are required in production")
		}
		slog.Info("generating an ephemeral JWT key pair, sessions end on restart")
		priv, pub, err := GenerateRSAKeyPair()
		return signingKeys{private: priv, public: pub}, err
	}

	priv, err := decodePEM("JWT_PRIVATE_KEY", privB64, parsePrivateKey)
	if err != nil {
		return signingKeys{}, err
	}
	pub, err := decodePEM("JWT_PUBLIC_KEY", pubB64, parsePublicKey)
	if err != nil {
		return signingKeys{}, err
	}
	if !priv.PublicKey.Equal(pub) {
		return signingKeys{}, errors.New("JWT_PUBLIC_KEY does not match JWT_PRIVATE_KEY")
	}

	return signingKeys{private: priv, public: pub}, nil
}

// GenerateRSAKeyPair generates a new RSA key pair
func GenerateRSAKeyPair() (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate RSA key pair: %w", err)
	}
	return privateKey, &privateKey.PublicKey, nil
}

func decodePEM[K any](name, encoded string, parse func([]byte) (K, error)) (K, error) {
	var zero K

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return zero, fmt.Errorf("%s is not valid base64: %w", name, err)
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return zero, fmt.Errorf("%s holds no PEM block", name)
	}

	key, err := parse(block.Bytes)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	return key, nil
}

// parsePrivateKey accepts PKCS#1 and PKCS#8 encodings
func parsePrivateKey(der []byte) (*rsa.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}

	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("not an RSA private key")
	}
	return rsaKey, nil
}

func parsePublicKey(der []byte) (*rsa.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}
	return rsaKey, nil
}
