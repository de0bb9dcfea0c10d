package respond

import (
	"regexp"
)

var (
	// Google APIキーパターン
	googleKeyPattern = regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`)

	// サービスアカウントの秘密鍵ブロック
	pemBlockPattern = regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----[\s\S]*?-----END [A-Z ]*PRIVATE KEY-----`)

	// DSN内のパスワード（redis://, smtp:// など）
	dsnPasswordPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)

	// Bearerトークン
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.]+`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = pemBlockPattern.ReplaceAllString(msg, "-----PRIVATE KEY****-----")
	msg = googleKeyPattern.ReplaceAllString(msg, "AIza****")
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")

	return msg
}
