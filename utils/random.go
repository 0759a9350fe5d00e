package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns n characters from an unambiguous upper-case
// alphabet.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	limit := big.NewInt(int64(len(alphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic("failed to read random bytes")
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b)
}

// GenerateOrderNumber looks like ORD-20240615-7K3QZ.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), GenerateRandomString(5))
}
