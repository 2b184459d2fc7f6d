package models

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Response is the envelope every JSON endpoint of the web API answers with.
// Data is left raw because its shape depends on the endpoint and, for the
// login API, arrives as an encrypted string.
type Response struct {
	ErrorCode    int             `json:"error_code"`
	ErrorMessage string          `json:"error_message"`
	Data         json.RawMessage `json:"data"`
}

// OK reports whether the server signalled success.
func (r Response) OK() bool {
	return r.ErrorCode == 0
}

// HasData reports whether the response carries a non-null data field.
func (r Response) HasData() bool {
	v := gjson.ParseBytes(r.Data)
	return v.Exists() && v.Type != gjson.Null
}

// Get looks up path inside Data using gjson syntax.
func (r Response) Get(path string) gjson.Result {
	if len(r.Data) == 0 {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.Data, path)
}

// DataString returns Data when it is a JSON string, such as an encrypted
// payload.
func (r Response) DataString() (string, bool) {
	v := gjson.ParseBytes(r.Data)
	if v.Type != gjson.String {
		return "", false
	}
	return v.String(), true
}
