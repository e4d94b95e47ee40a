package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, paymentID, requestID, ts string) string {
	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", paymentID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return fmt.Sprintf("ts=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestParseSignatureHeader(t *testing.T) {
	ts, v1, err := ParseSignatureHeader("ts=1700000000,v1=abcdef")
	assert.NoError(t, err)
	assert.Equal(t, "1700000000", ts)
	assert.Equal(t, "abcdef", v1)

	//空白混じりでも読める
	ts, v1, err = ParseSignatureHeader(" ts=1700000000 , v1=abcdef ")
	assert.NoError(t, err)
	assert.Equal(t, "1700000000", ts)
	assert.Equal(t, "abcdef", v1)

	for _, header := range []string{"", "ts=1700000000", "v1=abcdef", "garbage"} {
		_, _, err := ParseSignatureHeader(header)
		assert.ErrorIs(t, err, ErrSignatureMalformed, header)
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	const secret = "webhook-secret"

	header := sign(secret, "pay-1", "req-1", "1700000000")
	assert.NoError(t, VerifyWebhookSignature(header, "req-1", "pay-1", secret))

	//鍵が違えば不一致
	assert.ErrorIs(t, VerifyWebhookSignature(header, "req-1", "pay-1", "other-secret"), ErrSignatureMismatch)

	//別の支払いIDへの流用（リプレイ）は不一致
	assert.ErrorIs(t, VerifyWebhookSignature(header, "req-1", "pay-2", secret), ErrSignatureMismatch)

	//request-idの差し替えも不一致
	assert.ErrorIs(t, VerifyWebhookSignature(header, "req-2", "pay-1", secret), ErrSignatureMismatch)

	//tsの改ざんも不一致
	tampered := sign(secret, "pay-1", "req-1", "1700000000")
	tampered = "ts=1700009999," + tampered[len("ts=1700000000,"):]
	assert.ErrorIs(t, VerifyWebhookSignature(tampered, "req-1", "pay-1", secret), ErrSignatureMismatch)

	//hexでないv1は形式エラー
	assert.ErrorIs(t, VerifyWebhookSignature("ts=1700000000,v1=zzzz", "req-1", "pay-1", secret), ErrSignatureMalformed)
}
