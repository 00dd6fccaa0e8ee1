package lib

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderNumber generates an order number in the format
// ORC-YYYYMMDD-NNN where NNN is a random three-digit suffix. The suffix alone
// does not guarantee uniqueness; callers rely on the unique constraint on
// order_number and regenerate on collision.
func GenerateOrderNumber() string {
	datePart := time.Now().Format("20060102")

	n, err := rand.Int(rand.Reader, big.NewInt(900))
	suffix := int64(100)
	if err == nil {
		suffix = n.Int64() + 100
	}

	return fmt.Sprintf("ORC-%s-%03d", datePart, suffix)
}
