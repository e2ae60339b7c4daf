package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrMalformedToken = errors.New("malformed page token")

type EncryptMode func(cipher.Block) (cipher.AEAD, error)

type EncryptionTokenMarshaler struct {
	Mode EncryptMode
}

func NewGCM() *EncryptionTokenMarshaler {
	return &EncryptionTokenMarshaler{
		Mode: cipher.NewGCM,
	}
}

func (em *EncryptionTokenMarshaler) aead(scope string) (cipher.AEAD, error) {
	key := sha256.Sum256([]byte(scope))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return em.Mode(block)
}

// Marshal returns nil for an empty key so callers can tell the last page.
func (em *EncryptionTokenMarshaler) Marshal(scope string, lastKey map[string]types.AttributeValue) ([]byte, error) {
	if len(lastKey) == 0 {
		return nil, nil
	}
	// Press keys are plain strings.
	var plain map[string]string
	if err := attributevalue.UnmarshalMap(lastKey, &plain); err != nil {
		return nil, err
	}
	serialized, err := json.Marshal(plain)
	if err != nil {
		return nil, err
	}
	aead, err := em.aead(scope)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	sealed := aead.Seal(nonce, nonce, serialized, nil)
	encoded := make([]byte, base64.RawURLEncoding.EncodedLen(len(sealed)))
	base64.RawURLEncoding.Encode(encoded, sealed)
	return encoded, nil
}

func (em *EncryptionTokenMarshaler) Unmarshal(scope string, token []byte) (map[string]types.AttributeValue, error) {
	if len(token) == 0 {
		return nil, nil
	}
	sealed := make([]byte, base64.RawURLEncoding.DecodedLen(len(token)))
	n, err := base64.RawURLEncoding.Decode(sealed, token)
	if err != nil {
		return nil, ErrMalformedToken
	}
	sealed = sealed[:n]
	aead, err := em.aead(scope)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, ErrMalformedToken
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	serialized, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, err
	}
	var plain map[string]string
	if err := json.Unmarshal(serialized, &plain); err != nil {
		return nil, err
	}
	return attributevalue.MarshalMap(plain)
}
