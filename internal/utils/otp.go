package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OTPValidity is how long an issued code stays valid.
const OTPValidity = 10 * time.Minute

// GenerateOTP returns a uniformly distributed 6-digit code in the range
// 100000-999999, so the code never shrinks under leading-zero truncation.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// OTPExpiry returns the absolute expiry instant for a code issued now.
func OTPExpiry() time.Time {
	return time.Now().Add(OTPValidity)
}
