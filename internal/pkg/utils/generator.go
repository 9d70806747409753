package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// GeneratePseudonym returns a pseudonym of the form PREFIX-00000 .. PREFIX-99999.
func GeneratePseudonym(prefix string, bucket int) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(bucket)))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%05d", prefix, n.Int64()), nil
}
