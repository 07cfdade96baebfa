package trader

import (
	"crypto/sha512"
	"encoding/hex"
	"net/url"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Credentials per-account Upbit API keys.
type Credentials struct {
	AccessKey string
	SecretKey string
}

// token builds the single-use bearer token Upbit expects: a JWT carrying the
// access key, a fresh nonce and the SHA-512 hex digest of the url-encoded
// request parameters, signed with the account secret. Generated fresh per
// request; never reused as a session.
func (c Credentials) token(params url.Values) (string, error) {
	digest := sha512.Sum512([]byte(params.Encode()))

	claims := jwt.MapClaims{
		"access_key":     c.AccessKey,
		"nonce":          uuid.NewString(),
		"query_hash":     hex.EncodeToString(digest[:]),
		"query_hash_alg": "SHA512",
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign request token")
	}

	return signed, nil
}
