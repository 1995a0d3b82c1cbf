package log

import "fmt"

const (
	red   = "\x1b[31m"
	green = "\x1b[32m"
	cyan  = "\x1b[36m"
	reset = "\x1b[0m"
)

func Red(format string, a ...interface{}) string {
	return fmt.Sprintf(red+format+reset, a...)
}

func Green(format string, a ...interface{}) string {
	return fmt.Sprintf(green+format+reset, a...)
}

func Cyan(format string, a ...interface{}) string {
	return fmt.Sprintf(cyan+format+reset, a...)
}

// Status 成否に応じて緑か赤で表示
func Status(ok bool, format string, a ...interface{}) string {
	if ok {
		return Green(format, a...)
	}
	return Red(format, a...)
}
