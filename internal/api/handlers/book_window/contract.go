package book_window

import (
	"context"

	bookWindow "github.com/m04kA/interview-slots/internal/usecase/book_window"
)

type BookWindowUseCase interface {
	Execute(ctx context.Context, req *bookWindow.Request) (*bookWindow.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
