package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/interview-slots/internal/api/middleware"
	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/integrations/events"
)

var (
	ErrMissingParam = errors.New("missing parameter")
	ErrInvalidParam = errors.New("invalid parameter")
)

// PathInt64 положительный int64 из переменной маршрута
func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return parsePositive(name, raw)
}

// QueryInt64 необязательный положительный int64 из query; nil если параметра нет
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := parsePositive(name, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// QueryDate обязательная дата YYYY-MM-DD из query
func QueryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return ParseDate(raw)
}

// ParseDate дата YYYY-MM-DD как полночь UTC
func ParseDate(raw string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidParam, raw)
	}
	return date, nil
}

// ActorContext контекст запроса с ID пользователя для событий
func ActorContext(r *http.Request) context.Context {
	ctx := r.Context()
	if userID, ok := middleware.GetUserID(ctx); ok {
		return events.WithActor(ctx, userID)
	}
	return ctx
}

// RequestID ID запроса для строк лога
func RequestID(r *http.Request) string {
	return middleware.GetRequestID(r.Context())
}

func parsePositive(name, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}
	return v, nil
}
