package config

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Replay signs the parameters needed to rebuild a finished game (seed plus
// configuration) so a shared replay link cannot be tampered into an invalid
// or different session.
type Replay struct {
	publicKey     *rsa.PublicKey
	privateKey    *rsa.PrivateKey
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

type ReplayClaims struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	MineCount  int    `json:"mine_count"`
	Seed       string `json:"seed"`
	Difficulty string `json:"difficulty"`
	jwt.RegisteredClaims
}

func loadPrivateKey() (*rsa.PrivateKey, error) {
	privateKeyStr, ok := os.LookupEnv("REPLAY_PRIVATE_KEY")
	if ok {
		return jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyStr))
	}
	privateKeyPath, ok := os.LookupEnv("REPLAY_PRIVATE_KEY_FILE")
	if !ok {
		return nil, fmt.Errorf("no REPLAY_PRIVATE_KEY or REPLAY_PRIVATE_KEY_FILE env variable set")
	}
	privateKeyBytes, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read replay private key: %w", err)
	}
	return jwt.ParseRSAPrivateKeyFromPEM(privateKeyBytes)
}

func loadPublicKey() (*rsa.PublicKey, error) {
	publicKeyStr, ok := os.LookupEnv("REPLAY_PUBLIC_KEY")
	if ok {
		return jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyStr))
	}
	publicKeyPath, ok := os.LookupEnv("REPLAY_PUBLIC_KEY_FILE")
	if !ok {
		return nil, fmt.Errorf("no REPLAY_PUBLIC_KEY or REPLAY_PUBLIC_KEY_FILE env variable set")
	}
	publicKeyBytes, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read replay public key: %w", err)
	}
	return jwt.ParseRSAPublicKeyFromPEM(publicKeyBytes)
}

func NewReplay() (*Replay, error) {
	privateKey, err := loadPrivateKey()
	if err != nil {
		return nil, err
	}

	publicKey, err := loadPublicKey()
	if err != nil {
		return nil, err
	}

	r := &Replay{
		privateKey:    privateKey,
		publicKey:     publicKey,
		signingMethod: jwt.GetSigningMethod("RS256"),
		tokenLifetime: time.Hour * 24 * 30,
	}

	return r, nil
}

func (r *Replay) Sign(claims ReplayClaims) (string, error) {
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(r.tokenLifetime))
	return jwt.NewWithClaims(r.signingMethod, claims).SignedString(r.privateKey)
}

func (r *Replay) Parse(tokenString string) (*ReplayClaims, error) {
	var claims ReplayClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			return r.publicKey, nil
		},
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid replay token")
	}
	return &claims, nil
}
