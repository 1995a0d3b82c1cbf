package domain

// Logger ロガー
//
// 実装は認証情報（APIキー・シークレット・署名）を出力してはならない。
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
