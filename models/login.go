package models

import (
	"encoding/json"
	"time"
)

// DeviceIdentity is the per-login client fingerprint sent with the cookie
// login request. It is computed locally and never changes after creation.
type DeviceIdentity struct {
	Zcid       string
	ZcidExt    string
	EncVersion string
}

// Params returns the identity as request parameters.
func (d DeviceIdentity) Params() map[string]string {
	return map[string]string{
		"zcid":     d.Zcid,
		"zcid_ext": d.ZcidExt,
		"enc_ver":  d.EncVersion,
	}
}

// UserInfo is the logged-in account profile returned by the user-info
// endpoint.
type UserInfo struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// LoginInfo is the decrypted payload of a successful cookie login.
type LoginInfo struct {
	SecretKey  string              `json:"zpw_enk"`
	ServiceMap map[string][]string `json:"zpw_service_map_v3"`
	UID        string              `json:"uid"`
	Send2MeID  string              `json:"send2me_id"`
	PublicIP   string              `json:"public_ip"`
	Language   string              `json:"language"`
}

// ServerInfo carries the client settings returned by getServerInfo. Settings
// are kept raw because their shape changes between server releases.
type ServerInfo struct {
	Settings     json.RawMessage `json:"settings"`
	ExtraVersion json.RawMessage `json:"extra_ver,omitempty"`
	FetchedAt    time.Time       `json:"-"`
}
