package booking

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках хранилища
	ErrInternal = errors.New("booking.service: internal error")
)
