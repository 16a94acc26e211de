package entity

import "errors"

var (
	ErrInvalidType       = errors.New("invalid image type")
	ErrTooLarge          = errors.New("image too large")
	ErrCameraUnavailable = errors.New("camera unavailable")
	ErrUploadFailed      = errors.New("upload failed")

	// ErrBusy возвращается, если запрос на анализ уже в полёте.
	ErrBusy = errors.New("analysis already in progress")
	// ErrCancelled ответ пришёл после Reset и был отброшен.
	ErrCancelled = errors.New("analysis cancelled")
)

// Тексты, которые видит пользователь на панели ошибки.
const (
	MsgInvalidType       = "Invalid file type. Please upload an image (PNG, JPG, JPEG, GIF)"
	MsgTooLarge          = "File too large. Maximum size is 16MB"
	MsgCameraUnavailable = "Could not access camera. Please ensure camera permissions are granted."
	MsgUploadFailed      = "Upload failed"
)

// UserError ошибка, которую показывают пользователю.
type UserError struct {
	Kind    error
	Message string
	Err     error
}

// NewUserError создаёт ошибку заданного вида.
func NewUserError(kind error, message string, cause error) *UserError {
	return &UserError{Kind: kind, Message: message, Err: cause}
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

// Unwrap позволяет errors.Is сравнивать и вид, и причину.
func (e *UserError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// UserMessage возвращает текст для панели ошибки.
func UserMessage(err error) string {
	var ue *UserError
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	return MsgUploadFailed
}
