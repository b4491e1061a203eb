package serverutils

// Envelope is the uniform JSON response wrapper for the REST surface.
type Envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func SuccessResponse[T any](message string, data T) Envelope[T] {
	return Envelope[T]{
		Message: message,
		Data:    data,
	}
}

type ErrorEnvelope struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func ErrorResponse(message string, errs any) ErrorEnvelope {
	return ErrorEnvelope{
		Message: message,
		Errors:  errs,
	}
}
