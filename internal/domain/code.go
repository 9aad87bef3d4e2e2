package domain

// PendingCode is a one-time verification code issued for an email address.
// The email is the unique key: issuing a new code replaces any pending one.
// ExpiresAt is a Unix timestamp; when the store is DynamoDB-backed it doubles
// as the table's TTL attribute.
type PendingCode struct {
	Email     string `json:"email" dynamodbav:"email"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"`
}
