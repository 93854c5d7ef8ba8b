package security

import "golang.org/x/crypto/bcrypt"

// VerifyWebhookSecret checks the raw shared secret a payment gateway sends
// with each callback against the bcrypt hash held in configuration.
func VerifyWebhookSecret(secretHash, secret string) bool {
	if secretHash == "" || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(secretHash), []byte(secret)) == nil
}
