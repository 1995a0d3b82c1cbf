package model

// Config CLI用設定
type Config struct {
	LogLevel string   `toml:"log_level" split_words:"true" default:"info"`
	Exchange Exchange `toml:"exchange"`
}

// Exchange 取引所向け設定
type Exchange struct {
	BaseURL        string `toml:"base_url" split_words:"true"`
	APIKey         string `toml:"api_key" envconfig:"API_KEY"`
	APISecret      string `toml:"api_secret" envconfig:"API_SECRET"`
	TimeoutSeconds int    `toml:"timeout_seconds" split_words:"true" default:"30"`
}

// HasCredentials 認証情報が揃っているか
func (e *Exchange) HasCredentials() bool {
	return e.APIKey != "" && e.APISecret != ""
}

// DB DB用設定
type DB struct {
	Host     string `toml:"host" required:"true"`
	Port     int    `toml:"port" required:"true"`
	Name     string `toml:"name" required:"true"`
	UserName string `toml:"user_name" split_words:"true" required:"true"`
	Password string `toml:"password" required:"true"`
}

// Watch スプレッド監視用設定
type Watch struct {
	// 移動平均に使う履歴の長さ
	HistorySize int `toml:"history_size" split_words:"true" default:"30"`
	// 移動平均の何倍を超えたら通知するか
	AlertRatio float64 `toml:"alert_ratio" split_words:"true" default:"2.0"`
	// SlackのIncomingWebhookのURL（空なら通知しない）
	SlackURL string `toml:"slack_url" split_words:"true"`
}
