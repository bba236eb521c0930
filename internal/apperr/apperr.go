package apperr

import (
	"errors"
	"net/http"
)

// Kind enumerates the failure categories the API reports to clients.
// Each kind carries the localized user-facing text the web client shows;
// anything unrecognized collapses into KindUnknown instead of leaking
// backend message strings.
type Kind string

const (
	KindInvalidCredentials Kind = "AUTH_INVALID_CREDENTIALS"
	KindEmailNotConfirmed  Kind = "AUTH_EMAIL_NOT_CONFIRMED"
	KindUserExists         Kind = "AUTH_USER_EXISTS"
	KindInvalidEmail       Kind = "AUTH_INVALID_EMAIL"
	KindRateLimited        Kind = "AUTH_RATE_LIMIT"
	KindUnauthorized       Kind = "AUTH_REQUIRED"
	KindSeatTaken          Kind = "SEAT_TAKEN"
	KindSeatReserved       Kind = "SEAT_RESERVED"
	KindOptionFloor        Kind = "SURVEY_OPTION_FLOOR"
	KindBadInput           Kind = "BAD_INPUT"
	KindNotFound           Kind = "NOT_FOUND"
	KindUnknown            Kind = "UNKNOWN_ERROR"
)

var messages = map[Kind]string{
	KindInvalidCredentials: "이메일 또는 비밀번호가 올바르지 않습니다.",
	KindEmailNotConfirmed:  "이메일 인증이 완료되지 않았습니다. 이메일을 확인해주세요.",
	KindUserExists:         "이미 가입된 이메일입니다.",
	KindInvalidEmail:       "유효하지 않은 이메일 형식입니다.",
	KindRateLimited:        "너무 많은 요청이 있었습니다. 잠시 후 다시 시도해주세요.",
	KindUnauthorized:       "로그인이 필요합니다.",
	KindSeatTaken:          "이미 사용 중인 좌석입니다.",
	KindSeatReserved:       "선택할 수 없는 좌석입니다.",
	KindOptionFloor:        "선택지는 최소 1개 이상이어야 합니다.",
	KindBadInput:           "입력값을 확인해주세요.",
	KindNotFound:           "요청한 정보를 찾을 수 없습니다.",
	KindUnknown:            "예상치 못한 오류가 발생했습니다.",
}

var statuses = map[Kind]int{
	KindInvalidCredentials: http.StatusUnauthorized,
	KindEmailNotConfirmed:  http.StatusForbidden,
	KindUserExists:         http.StatusConflict,
	KindInvalidEmail:       http.StatusBadRequest,
	KindRateLimited:        http.StatusTooManyRequests,
	KindUnauthorized:       http.StatusUnauthorized,
	KindSeatTaken:          http.StatusConflict,
	KindSeatReserved:       http.StatusBadRequest,
	KindOptionFloor:        http.StatusBadRequest,
	KindBadInput:           http.StatusBadRequest,
	KindNotFound:           http.StatusNotFound,
	KindUnknown:            http.StatusInternalServerError,
}

// Error pairs a kind with its underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with a kind. A nil err still produces a usable error.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf extracts the kind from err, defaulting to KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Message returns the localized user-facing text for a kind.
func (k Kind) Message() string {
	if msg, ok := messages[k]; ok {
		return msg
	}
	return messages[KindUnknown]
}

// HTTPStatus returns the response status for a kind.
func (k Kind) HTTPStatus() int {
	if status, ok := statuses[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}
