package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateRecoveryToken gera o token numérico de 6 dígitos enviado por
// e-mail na recuperação de senha
func GenerateRecoveryToken() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
