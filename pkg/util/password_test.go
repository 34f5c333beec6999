package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "Valid password",
			password: "senha-segura-123",
		},
		{
			name:     "Empty password",
			password: "",
		},
		{
			name:     "CNPJ as initial password",
			password: "12345678000199",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)
			assert.Contains(t, hash, "$2a$")
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	password := "minhaSenhaSegura123"
	hash, err := HashPassword(password)
	assert.NoError(t, err)

	tests := []struct {
		name           string
		hashedPassword string
		password       string
		want           bool
	}{
		{
			name:           "Correct password",
			hashedPassword: hash,
			password:       password,
			want:           true,
		},
		{
			name:           "Wrong password",
			hashedPassword: hash,
			password:       "senhaErrada",
			want:           false,
		},
		{
			name:           "Empty password",
			hashedPassword: hash,
			password:       "",
			want:           false,
		},
		{
			name:           "Invalid hash",
			hashedPassword: "not-a-bcrypt-hash",
			password:       password,
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifyPassword(tt.hashedPassword, tt.password)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateRecoveryToken(t *testing.T) {
	token, err := GenerateRecoveryToken()
	assert.NoError(t, err)
	assert.Len(t, token, 6)
	for _, r := range token {
		assert.True(t, r >= '0' && r <= '9')
	}
}
