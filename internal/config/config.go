package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // DSN丸ごと指定（あれば最優先）
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート
	PostgresSSLMode  string // disableなど

	JWTSecret string // JWT署名シークレット

	GatewayBaseURL       string // 決済ゲートウェイAPIのベースURL
	GatewayAccessToken   string // ゲートウェイAPIトークン
	GatewayWebhookSecret string // webhook署名検証のシークレット
	SweepSecret          string // sweepトリガーの共有シークレット

	OrderExpiry time.Duration // 未払い注文の有効期限
	UploadDir   string        // 領収書の保存先ディレクトリ
	PublicURL   string        // 保存ファイルの公開URLベース
	FrontendURL string        // 決済後の戻り先URLベース
}

// Loadは環境変数から設定を読む
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "app"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GatewayBaseURL:       getenv("GATEWAY_BASE_URL", "https://api.mercadopago.com"),
		GatewayAccessToken:   os.Getenv("GATEWAY_ACCESS_TOKEN"),
		GatewayWebhookSecret: os.Getenv("GATEWAY_WEBHOOK_SECRET"),
		SweepSecret:          os.Getenv("SWEEP_SECRET"),

		UploadDir:   getenv("UPLOAD_DIR", "./uploads"),
		PublicURL:   getenv("PUBLIC_URL", "http://localhost:8080"),
		FrontendURL: getenv("FE_URL", "http://localhost:3000"),
	}

	pgPort, err := atoiEnv("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	cfg.PostgresPort = pgPort

	expiryMin, err := atoiEnv("ORDER_EXPIRY_MINUTES", 24*60)
	if err != nil {
		return Config{}, err
	}
	cfg.OrderExpiry = time.Duration(expiryMin) * time.Minute

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GatewayWebhookSecret == "" {
		return Config{}, fmt.Errorf("GATEWAY_WEBHOOK_SECRET is required")
	}
	if cfg.SweepSecret == "" {
		return Config{}, fmt.Errorf("SWEEP_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
