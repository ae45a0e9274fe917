package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() TokenService {
	return TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "dramahub-test",
		Duration: time.Hour,
	}
}

func TestSignAndParse(t *testing.T) {
	ts := testTokens()
	u := &User{
		ID:           "u1",
		Username:     "drama_fan",
		Email:        "fan@example.com",
		TokenVersion: 3,
	}

	token, exp, err := ts.Sign(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ts.Parse(token)
	require.NoError(t, err)

	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "drama_fan", claims.Username)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, "dramahub-test", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	token, _, err := testTokens().Sign(&User{ID: "u1"})
	require.NoError(t, err)

	other := TokenService{Secret: []byte("different"), Issuer: "x", Duration: time.Hour}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	ts := testTokens()
	ts.Duration = -time.Minute

	token, _, err := ts.Sign(&User{ID: "u1"})
	require.NoError(t, err)

	_, err = ts.Parse(token)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := testTokens().Parse("not.a.token")
	assert.Error(t, err)
}
