package models

// UploadEvent is delivered when the server finishes processing an uploaded
// file and reports its final location.
type UploadEvent struct {
	FileURL string `json:"fileUrl"`
	FileID  string `json:"fileId"`
}

// UploadHandler is registered per pending upload and fires at most once.
type UploadHandler func(UploadEvent)
