package formtoken

import (
	"carepulse-service/internal/app/contracts"
	"carepulse-service/internal/pkg/exceptions"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const issuer = "carepulse-service"

type formTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewFormTokenService signs form tokens with HS256. Every issued token gets
// a fresh jti, which doubles as the form instance id.
func NewFormTokenService(secret string, ttl time.Duration) (contracts.FormTokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("form token secret is empty")
	}
	return &formTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *formTokenService) Issue(claims contracts.FormClaims) (string, error) {
	now := s.now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(s.secret)
	if err != nil {
		return "", exceptions.ErrFormTokenGenerate(err)
	}
	return signed, nil
}

func (s *formTokenService) Verify(token string) (*contracts.FormClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, exceptions.ErrFormTokenMissing(nil)
	}

	claims := new(contracts.FormClaims)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, exceptions.ErrFormTokenInvalid(err)
	}
	if !parsed.Valid || claims.Issuer != issuer || claims.ID == "" {
		return nil, exceptions.ErrFormTokenInvalid(fmt.Errorf("token claims rejected"))
	}
	return claims, nil
}
