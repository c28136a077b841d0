package domain

const (
	StatusClass2xx   = "2xx"
	StatusClass3xx   = "3xx"
	StatusClass4xx   = "4xx"
	StatusClass5xx   = "5xx"
	StatusClassOther = "other"
)

// StatusClasses lists the buckets in reporting order.
var StatusClasses = []string{
	StatusClass2xx,
	StatusClass3xx,
	StatusClass4xx,
	StatusClass5xx,
	StatusClassOther,
}

const (
	StatusFilterError   = "error"
	StatusFilterSuccess = "success"
)

// ErrorStatusThreshold separates failed calls from successful ones.
const ErrorStatusThreshold = 400

func StatusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return StatusClass2xx
	case status >= 300 && status < 400:
		return StatusClass3xx
	case status >= 400 && status < 500:
		return StatusClass4xx
	case status >= 500:
		return StatusClass5xx
	default:
		return StatusClassOther
	}
}

func IsErrorStatus(status int) bool {
	return status >= ErrorStatusThreshold
}
