package models

import (
	"encoding/json"
	"time"
)

// StoredSession is the persisted form of a [Session].
//
// Cookies holds the cookie store in its JSON layout and ServiceMap the
// encoded zpw_service_map_v3, so the record can be restored without another
// QR login.
type StoredSession struct {
	IMEI        string          `json:"imei"`
	UserAgent   string          `json:"user_agent"`
	Language    string          `json:"language"`
	Cookies     json.RawMessage `json:"cookies"`
	SecretKey   string          `json:"secret_key,omitempty"`
	ServiceMap  json.RawMessage `json:"service_map,omitempty"`
	UserID      string          `json:"user_id"`
	DisplayName string          `json:"display_name"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
