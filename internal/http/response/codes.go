package response

// Business status codes carried in the response envelope.
const (
	CodeOK              = 0
	CodeBadRequest      = 40000
	CodeUnauthorized    = 40100
	CodeForbidden       = 40300
	CodeNotFound        = 40400
	CodeConflict        = 40900
	CodeUnprocessable   = 42200
	CodeTooManyRequests = 42900
	CodeInternal        = 50000
)
