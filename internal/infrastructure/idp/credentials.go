package idp

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// credentialAlphabet is 33 symbols: digits 2-9 and the uppercase
// letters minus O. Dropping 0, 1 and O keeps a credential read over
// the phone safe from 0/O and 1/l transcription slips.
const credentialAlphabet = "23456789ABCDEFGHIJKLMNPQRSTUVWXYZ"

const (
	credentialLength    = 12
	credentialBlockSize = 4
)

// CredentialGenerator produces temporary credentials for self-service
// sign-ups, formatted in hyphenated blocks (e.g. A2B3-C4D5-E6F7).
type CredentialGenerator struct{}

// NewCredentialGenerator creates a new CredentialGenerator
func NewCredentialGenerator() *CredentialGenerator {
	return &CredentialGenerator{}
}

// Generate returns a new random credential
func (g *CredentialGenerator) Generate() (string, error) {
	max := big.NewInt(int64(len(credentialAlphabet)))

	var sb strings.Builder
	for i := 0; i < credentialLength; i++ {
		if i > 0 && i%credentialBlockSize == 0 {
			sb.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(credentialAlphabet[n.Int64()])
	}
	return sb.String(), nil
}
