package domain

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"time"
)

// Country is an owned resource. Owner is the username of the account that
// created it; mutation is restricted to that account.
type Country struct {
	ID         string
	Name       string
	Flag       string
	Population int64
	Region     string
	Capital    string
	Currency   string
	TopLevel   string
	Language1  string
	Language2  string
	Language3  string
	Owner      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

var countryIDPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// ValidCountryID reports whether id is a well-formed country id
// (24 hex characters). Malformed ids are rejected before any lookup.
func ValidCountryID(id string) bool {
	return countryIDPattern.MatchString(id)
}

// NewCountryID returns a fresh 24-hex-character id.
func NewCountryID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
