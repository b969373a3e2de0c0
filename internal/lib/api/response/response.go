package response

type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

const (
	StatusOk      = "Ok"
	StatusWarning = "Warning"
	StatusError   = "Error"
)

func Ok(data interface{}) Response {
	return Response{
		Status: StatusOk,
		Data:   data,
	}
}

// Warning reports a terminal but non-failing outcome, such as an empty result.
func Warning(msg string) Response {
	return Response{
		Status: StatusWarning,
		Error:  msg,
	}
}

func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}
