package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridplace-dev/gridplace/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := New("test-secret", time.Hour)

	tokenString, err := svc.NewToken(domain.Actor{Id: 42, Name: "alice", Admin: true})
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := svc.DecodeToken(tokenString)
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["uid"])
	assert.Equal(t, "alice", claims["name"])
	assert.Equal(t, true, claims["admin"])
}

func TestDecodeTokenForeignSignature(t *testing.T) {
	issuer := New("secret-a", time.Hour)
	verifier := New("secret-b", time.Hour)

	tokenString, err := issuer.NewToken(domain.Actor{Id: 1, Name: "alice"})
	require.NoError(t, err)

	_, err = verifier.DecodeToken(tokenString)
	require.Error(t, err)
}

func TestDecodeTokenExpired(t *testing.T) {
	svc := New("test-secret", -time.Minute)

	tokenString, err := svc.NewToken(domain.Actor{Id: 1, Name: "alice"})
	require.NoError(t, err)

	_, err = svc.DecodeToken(tokenString)
	require.Error(t, err)
}

func TestDecodeTokenGarbage(t *testing.T) {
	svc := New("test-secret", time.Hour)

	_, err := svc.DecodeToken("not.a.token")
	require.Error(t, err)
}
