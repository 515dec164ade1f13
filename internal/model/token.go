package model

// A Token represents a database record of an issued bearer token.
// Only the digest of the secret part is stored.
type Token struct {
	Base `msgpack:",inline" storm:"inline"`

	UserID    string `json:"user_id"    msgpack:"user_id"    storm:"index"`
	Digest    string `json:"digest"     msgpack:"digest"`
	UserAgent string `json:"user_agent" msgpack:"user_agent"`
}

// GetUserID returns the ID of the token's owner.
func (m *Token) GetUserID() string {
	return m.UserID
}
