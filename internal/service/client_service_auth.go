package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jonboulle/clockwork"
	"github.com/tidwall/gjson"

	"github.com/MKhiriev/go-zca/internal/adapter"
	"github.com/MKhiriev/go-zca/internal/crypto"
	"github.com/MKhiriev/go-zca/internal/logger"
	"github.com/MKhiriev/go-zca/models"
)

const computerName = "Web"

// loginPayload is encrypted into the params argument of getLoginInfo.
// Field order is part of the wire format.
type loginPayload struct {
	ComputerName string `json:"computer_name"`
	IMEI         string `json:"imei"`
	Language     string `json:"language"`
	Ts           int64  `json:"ts"`
}

type authService struct {
	adapter    adapter.AuthAdapter
	deriver    crypto.KeyDeriver
	apiType    int
	apiVersion int
	clock      clockwork.Clock
	logger     *logger.Logger
}

// NewAuthService creates an AuthService. A nil clock selects the real one.
func NewAuthService(authAdapter adapter.AuthAdapter, deriver crypto.KeyDeriver, apiType, apiVersion int, clock clockwork.Clock, log *logger.Logger) AuthService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &authService{
		adapter:    authAdapter,
		deriver:    deriver,
		apiType:    apiType,
		apiVersion: apiVersion,
		clock:      clock,
		logger:     log.GetComponentLogger("auth"),
	}
}

func (a *authService) bind(session *models.Session) {
	a.adapter.SetCookieJar(session.Cookies)
	a.adapter.SetUserAgent(session.UserAgent)
}

// Login implements [AuthService].
//
// The request carries the derived identity, the encrypted payload, type and
// client_version, signed with Sign("getlogininfo", ...); nretry is added
// after signing. The answer's data is a ciphertext under the same derived
// key whose JSON holds zpw_enk and zpw_service_map_v3, either at the top
// level or below "data".
func (a *authService) Login(ctx context.Context, session *models.Session) (models.LoginInfo, error) {
	a.bind(session)

	ts := a.clock.Now().UnixMilli()
	identity, key, err := a.deriver.Derive(a.apiType, session.IMEI, ts)
	if err != nil {
		return models.LoginInfo{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	codec, err := crypto.NewDeviceCodec(key)
	if err != nil {
		return models.LoginInfo{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	payload, err := json.Marshal(loginPayload{
		ComputerName: computerName,
		IMEI:         session.IMEI,
		Language:     session.Language,
		Ts:           ts,
	})
	if err != nil {
		return models.LoginInfo{}, fmt.Errorf("%w: marshal payload: %v", ErrLoginFailed, err)
	}

	encrypted, err := codec.Encode(payload)
	if err != nil {
		return models.LoginInfo{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	params := identity.Params()
	params["params"] = encrypted
	params["type"] = strconv.Itoa(a.apiType)
	params["client_version"] = strconv.Itoa(a.apiVersion)
	params["signkey"] = crypto.Sign("getlogininfo", params)
	params["nretry"] = "0"

	resp, err := a.adapter.LoginInfo(ctx, params)
	if err != nil {
		return models.LoginInfo{}, mapAdapterError(ErrLoginFailed, err)
	}
	if !resp.OK() {
		return models.LoginInfo{}, models.NewAPIError(ErrLoginFailed, resp)
	}

	data, ok := resp.DataString()
	if !ok {
		return models.LoginInfo{}, fmt.Errorf("%w: data is not an encrypted string", ErrLoginFailed)
	}

	plain, err := codec.DecodeParam(data)
	if err != nil {
		return models.LoginInfo{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	info, err := parseLoginInfo(plain)
	if err != nil {
		return models.LoginInfo{}, err
	}

	if err = session.SetCredentials(info.SecretKey, info.ServiceMap); err != nil {
		return models.LoginInfo{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	a.logger.Info().
		Str("uid", info.UID).
		Int("services", len(info.ServiceMap)).
		Msg("cookie login succeeded")

	return info, nil
}

func parseLoginInfo(plain []byte) (models.LoginInfo, error) {
	if !gjson.ValidBytes(plain) {
		return models.LoginInfo{}, fmt.Errorf("%w: decrypted data is not JSON", ErrLoginFailed)
	}

	root := gjson.ParseBytes(plain)
	if code := root.Get("error_code"); code.Exists() && code.Int() != 0 {
		return models.LoginInfo{}, &models.APIError{
			Err:     ErrLoginFailed,
			Code:    int(code.Int()),
			Message: root.Get("error_message").String(),
		}
	}

	node := root.Get("data")
	if !node.Get("zpw_enk").Exists() {
		node = root
	}

	var info models.LoginInfo
	if err := json.Unmarshal([]byte(node.Raw), &info); err != nil {
		return models.LoginInfo{}, fmt.Errorf("%w: decode login info: %v", ErrLoginFailed, err)
	}
	return info, nil
}

// ServerInfo implements [AuthService]. The signkey covers imei, type,
// client_version and computer_name only.
func (a *authService) ServerInfo(ctx context.Context, session *models.Session) (models.ServerInfo, error) {
	a.bind(session)

	params := map[string]string{
		"imei":           session.IMEI,
		"type":           strconv.Itoa(a.apiType),
		"client_version": strconv.Itoa(a.apiVersion),
		"computer_name":  computerName,
	}
	params["signkey"] = crypto.Sign("getserverinfo", params)

	resp, err := a.adapter.ServerInfo(ctx, params)
	if err != nil {
		return models.ServerInfo{}, mapAdapterError(ErrServerInfoFailed, err)
	}
	if !resp.HasData() {
		return models.ServerInfo{}, models.NewAPIError(ErrServerInfoFailed, resp)
	}

	info := models.ServerInfo{FetchedAt: a.clock.Now()}
	if v := resp.Get("settings"); v.Exists() {
		info.Settings = json.RawMessage(v.Raw)
	}
	if v := resp.Get("extra_ver"); v.Exists() {
		info.ExtraVersion = json.RawMessage(v.Raw)
	}
	return info, nil
}

// ValidateCookies implements [AuthService].
func (a *authService) ValidateCookies(ctx context.Context, session *models.Session) (models.UserInfo, error) {
	a.bind(session)

	resp, err := a.adapter.UserInfo(ctx)
	if err != nil {
		return models.UserInfo{}, mapAdapterError(ErrLoginIncomplete, err)
	}

	user, err := decodeUserInfo(resp)
	if err != nil {
		return models.UserInfo{}, err
	}

	session.UserInfo = *user
	return *user, nil
}
