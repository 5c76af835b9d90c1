package services

import (
	"crypto/rsa"
	"testing"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	service    TokenServiceInterface
	user       *models.User
}

func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) SetupTest() {
	var err error
	s.privateKey, s.publicKey, err = config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.service = s.newService("finance-tracker", s.privateKey, s.publicKey, 24*time.Hour)
	s.user = &models.User{
		ID:    uuid.New(),
		Name:  "Priya Shah",
		Email: "priya@example.com",
	}
}

func (s *TokenServiceTestSuite) newService(issuer string, priv *rsa.PrivateKey, pub *rsa.PublicKey, ttl time.Duration) TokenServiceInterface {
	return NewTokenService(&config.JWTConfig{
		PrivateKey:          priv,
		PublicKey:           pub,
		Issuer:              issuer,
		AccessTokenDuration: ttl,
	})
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken_RoundTrip() {
	token, expiresAt, err := s.service.GenerateAccessToken(s.user)
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.WithinDuration(time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := s.service.ValidateAccessToken(token)
	s.Require().NoError(err)
	s.Equal(s.user.ID.String(), claims.Subject)
	s.Equal(s.user.ID.String(), claims.UserID)
	s.Equal(s.user.Email, claims.Email)
	s.Equal(s.user.Name, claims.Name)
	s.Equal(TokenTypeAccess, claims.TokenType)
	s.Equal("finance-tracker", claims.Issuer)
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken_RejectsMissingUser() {
	for _, user := range []*models.User{nil, {Email: "ghost@example.com"}} {
		token, _, err := s.service.GenerateAccessToken(user)
		s.Error(err)
		s.Empty(token)
	}
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken_UniqueTokenIDs() {
	first, _, err := s.service.GenerateAccessToken(s.user)
	s.Require().NoError(err)
	second, _, err := s.service.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	firstID, err := s.service.GetJTI(first)
	s.Require().NoError(err)
	secondID, err := s.service.GetJTI(second)
	s.Require().NoError(err)

	s.NotEqual(firstID, secondID)
	_, err = uuid.Parse(firstID)
	s.NoError(err)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Rejects() {
	otherPriv, otherPub, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	foreignKey, _, err := s.newService("finance-tracker", otherPriv, otherPub, time.Hour).GenerateAccessToken(s.user)
	s.Require().NoError(err)
	foreignIssuer, _, err := s.newService("someone-else", s.privateKey, s.publicKey, time.Hour).GenerateAccessToken(s.user)
	s.Require().NoError(err)

	hmacSigned, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "finance-tracker",
			Subject:   s.user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenType: TokenTypeAccess,
	}).SignedString([]byte("shared-secret"))
	s.Require().NoError(err)

	wrongType, err := jwt.NewWithClaims(jwt.SigningMethodRS256, models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "finance-tracker",
			Subject:   s.user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenType: "refresh",
	}).SignedString(s.privateKey)
	s.Require().NoError(err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrEmptyToken},
		{"garbage", "invalid.token.format", ErrInvalidToken},
		{"bad signature", "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature", ErrInvalidToken},
		{"other key", foreignKey, ErrInvalidToken},
		{"other issuer", foreignIssuer, ErrInvalidToken},
		{"hmac", hmacSigned, ErrInvalidToken},
		{"wrong type", wrongType, ErrInvalidTokenType},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			claims, err := s.service.ValidateAccessToken(tt.token)
			s.ErrorIs(err, tt.want)
			s.Nil(claims)
		})
	}
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Expired() {
	short := s.newService("finance-tracker", s.privateKey, s.publicKey, time.Millisecond)
	token, _, err := short.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	time.Sleep(10 * time.Millisecond)

	claims, err := short.ValidateAccessToken(token)
	s.ErrorIs(err, ErrExpiredToken)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader() {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc.def.ghi", "abc.def.ghi", true},
		{"BEARER  abc.def.ghi ", "abc.def.ghi", true},
		{"abc.def.ghi", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
	}

	for _, tt := range tests {
		token, err := s.service.ExtractTokenFromHeader(tt.header)
		if tt.ok {
			s.NoError(err, tt.header)
			s.Equal(tt.want, token)
		} else {
			s.ErrorIs(err, ErrInvalidAuthHeader, tt.header)
			s.Empty(token)
		}
	}
}

func (s *TokenServiceTestSuite) TestGetTokenExpiry() {
	token, expiresAt, err := s.service.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	expiry, err := s.service.GetTokenExpiry(token)
	s.NoError(err)
	s.WithinDuration(expiresAt, expiry, time.Second)

	_, err = s.service.GetTokenExpiry("")
	s.ErrorIs(err, ErrEmptyToken)
}

func (s *TokenServiceTestSuite) TestGetJTI_ExpiredTokenStillReadable() {
	short := s.newService("finance-tracker", s.privateKey, s.publicKey, time.Millisecond)
	token, _, err := short.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	time.Sleep(10 * time.Millisecond)

	jti, err := short.GetJTI(token)
	s.NoError(err)
	s.NotEmpty(jti)
}

func BenchmarkTokenService_ValidateAccessToken(b *testing.B) {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	if err != nil {
		b.Fatal(err)
	}

	ts := NewTokenService(&config.JWTConfig{
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "finance-tracker",
		AccessTokenDuration: time.Hour,
	})

	token, _, err := ts.GenerateAccessToken(&models.User{ID: uuid.New(), Email: "bench@example.com"})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ts.ValidateAccessToken(token); err != nil {
			b.Fatal(err)
		}
	}
}
