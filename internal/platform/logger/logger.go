package logger

import (
	"io"
	"log/slog"
	"os"
)

// New は JSON 構造化ログを出力する slog.Logger を生成します。
// w が nil の場合は標準出力に書き込みます。
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// SetupDefault は New で生成したロガーをグローバルロガーとして設定し、返します。
func SetupDefault(w io.Writer, level slog.Leveler) *slog.Logger {
	l := New(w, level)
	slog.SetDefault(l)
	return l
}
