package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// refAlphabet omits 0/O/1/I to keep references readable over the phone.
const refAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const refLength = 6

// NewBookingRef generates a human-readable booking reference such as
// "KN-3F8K2M". It is distinct from the storage identifier.
func NewBookingRef() string {
	buf := make([]byte, refLength)
	max := big.NewInt(int64(len(refAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken.
			panic(fmt.Sprintf("booking ref generation failed: %v", err))
		}
		buf[i] = refAlphabet[n.Int64()]
	}
	return "KN-" + string(buf)
}
