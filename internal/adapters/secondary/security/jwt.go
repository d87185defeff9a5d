package security

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
)

// UserClaims : les claims posés par le fournisseur d'identité externe.
// On ne lit que ce dont on a besoin (le Subject fait foi).
type UserClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTVerifier ne fait QUE la moitié validation : les tokens sont émis par le
// service d'identité externe avec sa clé privée, ici on ne détient que la
// clé publique.
type JWTVerifier struct {
	publicKey *rsa.PublicKey
}

func NewJWTVerifier(publicKeyPEM []byte) (*JWTVerifier, error) {
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return &JWTVerifier{publicKey: pubKey}, nil
}

// NewJWTVerifierFromFile charge la clé publique PEM depuis le disque.
func NewJWTVerifierFromFile(path string) (*JWTVerifier, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key %s: %w", path, err)
	}
	return NewJWTVerifier(pem)
}

// Validate vérifie la signature et renvoie l'UserID (Subject).
func (v *JWTVerifier) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Sécurité critique : refuser tout autre algo que RSA.
		// Empêche les attaques où l'attaquant force l'algo à "none" ou "HS256".
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.publicKey, nil
	})
	if err != nil {
		// Token expiré ou signature invalide : c'est le cas anonyme pour le
		// middleware, ErrUnauthenticated pour les mutations.
		return "", errors.Join(domain.ErrUnauthenticated, err)
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid && claims.Subject != "" {
		return claims.Subject, nil
	}
	return "", domain.ErrUnauthenticated
}
