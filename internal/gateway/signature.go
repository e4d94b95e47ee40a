package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// webhookの署名ヘッダは「ts=<unix秒>,v1=<hex hmac>」形式。
// HMACの対象は id:{paymentId};request-id:{requestId};ts:{ts}; の正規文字列。
var (
	ErrSignatureMalformed = errors.New("gateway: malformed signature header")
	ErrSignatureMismatch  = errors.New("gateway: signature mismatch")
)

// ParseSignatureHeaderはtsとv1を取り出す。どちらか欠けたらエラー。
func ParseSignatureHeader(header string) (ts string, v1 string, err error) {
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "ts":
			ts = kv[1]
		case "v1":
			v1 = kv[1]
		}
	}
	if ts == "" || v1 == "" {
		return "", "", ErrSignatureMalformed
	}
	return ts, v1, nil
}

// VerifyWebhookSignatureは署名を再計算して定数時間比較する。
// 公開エンドポイントの唯一の認証なので、状態変更より必ず先に呼ぶ。
func VerifyWebhookSignature(signatureHeader, requestID, paymentID, secret string) error {
	ts, v1, err := ParseSignatureHeader(signatureHeader)
	if err != nil {
		return err
	}

	expected, err := hex.DecodeString(v1)
	if err != nil {
		return ErrSignatureMalformed
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", paymentID, requestID, ts)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	if !hmac.Equal(mac.Sum(nil), expected) {
		return ErrSignatureMismatch
	}
	return nil
}
