package http

type rpcErr struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type methodOut struct {
	Method  string `json:"method"`
	Label   string `json:"label"`
	Default bool   `json:"default"`
}

type typedDataReq struct {
	JSON string `json:"json"`
	// Live selects edit-in-progress checking, where blank text is not an error.
	Live bool `json:"live"`
}

type validateResp struct {
	Valid bool   `json:"valid"`
	Kind  string `json:"kind,omitempty"`
	Error string `json:"error,omitempty"`
}

type formatResp struct {
	JSON string `json:"json"`
}

type signReq struct {
	Method string `json:"method"`
	JSON   string `json:"json"`
}

type connectReq struct {
	Account string `json:"account"`
}
