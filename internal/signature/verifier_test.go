package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerify_ValidSignature(t *testing.T) {
	body := []byte(`{"id":501,"number":"WEB-501"}`)
	v := NewVerifier("shhh")

	assert.True(t, v.Verify(body, sign("shhh", body)))
}

func TestVerify_TamperedBody(t *testing.T) {
	body := []byte(`{"id":501,"number":"WEB-501"}`)
	v := NewVerifier("shhh")
	sig := sign("shhh", body)

	tampered := make([]byte, len(body))
	copy(tampered, body)
	tampered[8] = '2'

	assert.False(t, v.Verify(tampered, sig))
}

func TestVerify_WrongSecret(t *testing.T) {
	body := []byte(`{"id":501}`)
	v := NewVerifier("shhh")

	assert.False(t, v.Verify(body, sign("other", body)))
}

func TestVerify_MalformedSignature(t *testing.T) {
	body := []byte(`{"id":501}`)
	v := NewVerifier("shhh")

	assert.False(t, v.Verify(body, ""))
	assert.False(t, v.Verify(body, "not-base64!!!"))
	assert.False(t, v.Verify(body, sign("shhh", body)[:10]))
}

func TestVerify_EmptySecretStillVerifies(t *testing.T) {
	body := []byte(`{"id":501}`)
	v := NewVerifier("")

	assert.True(t, v.Verify(body, sign("", body)))
	assert.False(t, v.Verify(body, sign("shhh", body)))
}
