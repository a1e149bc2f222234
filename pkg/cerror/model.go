package cerror

import (
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type CustomError struct {
	HttpStatusCode int             `json:"-"`
	Message        string          `json:"message"`
	LogSeverity    zapcore.Level   `json:"-"`
	LogFields      []zapcore.Field `json:"-"`
}

type Response struct {
	Message string `json:"message"`
}

func NewError(httpStatusCode int, message string, fields ...zap.Field) *CustomError {
	return &CustomError{
		HttpStatusCode: httpStatusCode,
		Message:        message,
		LogSeverity:    zapcore.ErrorLevel,
		LogFields:      fields,
	}
}

func (cerr *CustomError) Error() string {
	return cerr.Message
}

// Is matches on status and message, so copies decorated with WithFields or
// SetSeverity still compare equal to the predefined errors.
func (cerr *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}

	return cerr.HttpStatusCode == t.HttpStatusCode && cerr.Message == t.Message
}

func (cerr *CustomError) SetSeverity(severity zapcore.Level) *CustomError {
	copied := *cerr
	copied.LogSeverity = severity
	return &copied
}

func (cerr *CustomError) WithFields(fields ...zap.Field) *CustomError {
	copied := *cerr
	copied.LogFields = append(append([]zapcore.Field{}, cerr.LogFields...), fields...)
	return &copied
}

func (cerr *CustomError) SerializeCerror() []byte {
	marshalledToByte, _ := json.Marshal(&Response{Message: cerr.Message})
	return marshalledToByte
}
