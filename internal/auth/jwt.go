package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/akarpov/minesweeper-ai/internal/config"
)

var signingMethod = jwt.GetSigningMethod("RS256")

type PlayerClaims struct {
	PlayerId int    `json:"player_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWT signs and verifies player tokens and manages the cookie pair that
// carries them: "auth" (header.payload, readable by the frontend) and
// "sign" (signature, httpOnly).
type JWT struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	lifetime   time.Duration
	secure     bool
}

// ssh-keygen -t rsa -m pem -f jwt-private-key.pem
// openssl rsa -in jwt-private-key.pem -pubout -out jwt-public-key.pem
func NewJWT(cfg config.JwtConfig, secure bool) (*JWT, error) {
	privateKeyBytes, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read JWT private key: %w", err)
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("unable to parse JWT private key: %w", err)
	}
	publicKeyBytes, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read JWT public key: %w", err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("unable to parse JWT public key: %w", err)
	}
	return &JWT{
		privateKey: privateKey,
		publicKey:  publicKey,
		lifetime:   cfg.TokenLifetime.Duration,
		secure:     secure,
	}, nil
}

func (j *JWT) CreateToken(playerId int, username string) (string, error) {
	claims := PlayerClaims{
		playerId,
		username,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(signingMethod, claims)
	return token.SignedString(j.privateKey)
}

func (j *JWT) SetCookies(w http.ResponseWriter, token string) {
	parts := strings.Split(token, ".")
	header, payload, signature := parts[0], parts[1], parts[2]
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    header + "." + payload,
		Secure:   j.secure,
		Expires:  time.Now().Add(j.lifetime),
		SameSite: http.SameSiteNoneMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     "/",
		Value:    signature,
		Secure:   j.secure,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (j *JWT) ClearCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		MaxAge:   -1,
		Secure:   j.secure,
		SameSite: http.SameSiteNoneMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     "/",
		MaxAge:   -1,
		Secure:   j.secure,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// RefreshCookies re-issues the cookie pair for already validated claims,
// extending the session lifetime.
func (j *JWT) RefreshCookies(w http.ResponseWriter, claims PlayerClaims) error {
	token, err := j.CreateToken(claims.PlayerId, claims.Username)
	if err != nil {
		return err
	}
	j.SetCookies(w, token)
	return nil
}

func (j *JWT) keyFunc(t *jwt.Token) (any, error) {
	return j.publicKey, nil
}

func (j *JWT) ParseCookies(r *http.Request) (*PlayerClaims, error) {
	authCookie, err := r.Cookie("auth")
	if err != nil {
		return nil, err
	}
	signCookie, err := r.Cookie("sign")
	if err != nil {
		return nil, err
	}
	tokenString := authCookie.Value + "." + signCookie.Value
	token, err := jwt.ParseWithClaims(tokenString, &PlayerClaims{}, j.keyFunc)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*PlayerClaims)
	if !ok {
		return nil, errors.New("unknown claims type")
	}
	return claims, nil
}
