package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-zca/internal/config"
	"github.com/MKhiriev/go-zca/internal/cookie"
	"github.com/MKhiriev/go-zca/internal/logger"
	"github.com/MKhiriev/go-zca/internal/utils"
	"github.com/MKhiriev/go-zca/models"
)

var _ AuthAdapter = (*httpAuthAdapter)(nil)

type httpAuthAdapter struct {
	// client follows redirects, noRedirect hands 3xx responses back as is.
	// Both store cookies through jarProxy.
	client     *utils.HTTPClient
	noRedirect *utils.HTTPClient

	idBase   string
	chatBase string
	jrBase   string
	wpaBase  string

	apiType    int
	apiVersion int

	mu        sync.RWMutex
	jar       *cookie.Jar
	userAgent string

	logger *logger.Logger
}

// NewHTTPAuthAdapter constructs the resty implementation of [AuthAdapter].
// It normalises every base URL in adapterCfg and starts with an empty
// cookie store and appCfg.UserAgent.
//
// Returns an error wrapping [ErrInvalidBaseURL] if a base URL is missing or
// cannot be parsed.
func NewHTTPAuthAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, log *logger.Logger) (AuthAdapter, error) {
	bases := make([]string, 0, 4)
	for _, raw := range []string{adapterCfg.IDBaseURL, adapterCfg.ChatBaseURL, adapterCfg.JRBaseURL, adapterCfg.WPABaseURL} {
		base, err := normalizeBaseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid adapter base url: %w", err)
		}
		bases = append(bases, base)
	}

	h := &httpAuthAdapter{
		idBase:     bases[0],
		chatBase:   bases[1],
		jrBase:     bases[2],
		wpaBase:    bases[3],
		apiType:    appCfg.APIType,
		apiVersion: appCfg.APIVersion,
		jar:        cookie.New(),
		userAgent:  appCfg.UserAgent,
		logger:     log,
	}

	jar := jarProxy{h}
	h.client = utils.NewHTTPClient(utils.WithTimeout(adapterCfg.RequestTimeout))
	h.client.SetCookieJar(jar)
	h.noRedirect = utils.NewHTTPClient(utils.WithTimeout(adapterCfg.RequestTimeout), utils.WithoutRedirects())
	h.noRedirect.SetCookieJar(jar)

	return h, nil
}

// SetCookieJar implements [AuthAdapter]. A nil jar is replaced by an empty
// one.
func (h *httpAuthAdapter) SetCookieJar(jar *cookie.Jar) {
	if jar == nil {
		jar = cookie.New()
	}
	h.mu.Lock()
	h.jar = jar
	h.mu.Unlock()
}

// CookieJar implements [AuthAdapter].
func (h *httpAuthAdapter) CookieJar() *cookie.Jar {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.jar
}

// SetUserAgent implements [AuthAdapter].
func (h *httpAuthAdapter) SetUserAgent(userAgent string) {
	h.mu.Lock()
	h.userAgent = userAgent
	h.mu.Unlock()
}

// LoadLoginPage implements [AuthAdapter]. It GETs the account page that
// continues to the chat host and returns the HTML body.
func (h *httpAuthAdapter) LoadLoginPage(ctx context.Context) (string, error) {
	resp, err := h.request(ctx, h.client, documentHeaders("")).
		Get(accountPage(h.idBase, continueChat))
	if err != nil {
		return "", fmt.Errorf("load login page request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return resp.String(), nil
}

// AccountLoginInfo implements [AuthAdapter]. It posts to
// POST /account/logininfo.
func (h *httpAuthAdapter) AccountLoginInfo(ctx context.Context, version, imei string) (models.Response, error) {
	return h.postForm(ctx, "/account/logininfo", accountPage(h.idBase, continuePC), map[string]string{
		"continue": continuePC,
		"v":        version,
		"imei":     imei,
	})
}

// VerifyClient implements [AuthAdapter]. It posts to
// POST /account/verify-client.
func (h *httpAuthAdapter) VerifyClient(ctx context.Context, version, imei string) (models.Response, error) {
	return h.postForm(ctx, "/account/verify-client", accountPage(h.idBase, continuePC), map[string]string{
		"type":     "device",
		"continue": continuePC,
		"v":        version,
		"imei":     imei,
	})
}

// GenerateQRCode implements [AuthAdapter]. It posts to
// POST /account/authen/qr/generate.
func (h *httpAuthAdapter) GenerateQRCode(ctx context.Context, version, imei string) (models.Response, error) {
	return h.postForm(ctx, "/account/authen/qr/generate", accountPage(h.idBase, continuePC), map[string]string{
		"continue": continuePC,
		"v":        version,
		"imei":     imei,
	})
}

// WaitingScan implements [AuthAdapter]. It posts to
// POST /account/authen/qr/waiting-scan.
func (h *httpAuthAdapter) WaitingScan(ctx context.Context, version, imei, code string) (models.Response, error) {
	return h.postForm(ctx, "/account/authen/qr/waiting-scan", accountPage(h.idBase, continueChat), map[string]string{
		"code":     code,
		"continue": continueChat,
		"v":        version,
		"imei":     imei,
	})
}

// WaitingConfirm implements [AuthAdapter]. It posts to
// POST /account/authen/qr/waiting-confirm.
func (h *httpAuthAdapter) WaitingConfirm(ctx context.Context, version, imei, code string) (models.Response, error) {
	return h.postForm(ctx, "/account/authen/qr/waiting-confirm", accountPage(h.idBase, continueChat), map[string]string{
		"code":     code,
		"gToken":   "",
		"gAction":  "CONFIRM_QR",
		"continue": continueChat,
		"v":        version,
		"imei":     imei,
	})
}

// CheckSession implements [AuthAdapter]. It GETs /account/checksession with
// redirects disabled; cookies set by the 3xx response itself are kept. Any
// status is returned to the caller, only transport failures are errors.
func (h *httpAuthAdapter) CheckSession(ctx context.Context) (int, error) {
	target := h.idBase + "/account/checksession?continue=" + url.QueryEscape(continueChatPage)

	resp, err := h.request(ctx, h.noRedirect, documentHeaders(accountPage(h.idBase, continueChat))).
		Get(target)
	if err != nil {
		return 0, fmt.Errorf("check session request: %w", err)
	}

	h.logger.Debug().
		Int("status", resp.StatusCode()).
		Str("location", resp.Header().Get("Location")).
		Msg("session checked")

	return resp.StatusCode(), nil
}

// UserInfo implements [AuthAdapter]. It GETs /jr/userinfo on the jr host.
func (h *httpAuthAdapter) UserInfo(ctx context.Context) (models.Response, error) {
	resp, err := h.request(ctx, h.client, apiHeaders("same-site", h.chatBase+"/")).
		Get(h.jrBase + "/jr/userinfo")
	if err != nil {
		return models.Response{}, fmt.Errorf("user info request: %w", err)
	}
	return decodeResponse(resp)
}

// LoginInfo implements [AuthAdapter]. It GETs /api/login/getLoginInfo on the
// wpa host; zpw_ver and zpw_type are added unless params carry them.
func (h *httpAuthAdapter) LoginInfo(ctx context.Context, params map[string]string) (models.Response, error) {
	return h.getAPI(ctx, "/api/login/getLoginInfo", params)
}

// ServerInfo implements [AuthAdapter]. It GETs /api/login/getServerInfo on
// the wpa host.
func (h *httpAuthAdapter) ServerInfo(ctx context.Context, params map[string]string) (models.Response, error) {
	return h.getAPI(ctx, "/api/login/getServerInfo", params)
}

func (h *httpAuthAdapter) getAPI(ctx context.Context, path string, params map[string]string) (models.Response, error) {
	target, err := makeURL(h.wpaBase+path, params, h.apiVersion, h.apiType)
	if err != nil {
		return models.Response{}, err
	}

	resp, err := h.request(ctx, h.client, apiHeaders("same-site", h.chatBase+"/")).Get(target)
	if err != nil {
		return models.Response{}, fmt.Errorf("%s request: %w", path, err)
	}
	return decodeResponse(resp)
}

func (h *httpAuthAdapter) postForm(ctx context.Context, path, referer string, form map[string]string) (models.Response, error) {
	resp, err := h.request(ctx, h.client, apiHeaders("same-origin", referer)).
		SetHeader("Content-Type", formURLEncoded).
		SetFormData(form).
		Post(h.idBase + path)
	if err != nil {
		return models.Response{}, fmt.Errorf("%s request: %w", path, err)
	}
	return decodeResponse(resp)
}

func (h *httpAuthAdapter) request(ctx context.Context, c *utils.HTTPClient, headers map[string]string) *resty.Request {
	h.mu.RLock()
	ua := h.userAgent
	h.mu.RUnlock()

	req := c.R().SetContext(ctx).SetHeaders(headers)
	if ua != "" {
		req.SetHeader("User-Agent", ua)
	}
	return req
}

func decodeResponse(resp *resty.Response) (models.Response, error) {
	if err := mapHTTPError(resp); err != nil {
		return models.Response{}, err
	}

	var out models.Response
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return models.Response{}, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, resp.Request.URL, err)
	}
	return out, nil
}

// jarProxy lets both resty clients share whichever cookie store the adapter
// currently holds.
type jarProxy struct {
	h *httpAuthAdapter
}

func (p jarProxy) SetCookies(u *url.URL, cookies []*http.Cookie) {
	p.h.CookieJar().SetCookies(u, cookies)
}

func (p jarProxy) Cookies(u *url.URL) []*http.Cookie {
	return p.h.CookieJar().Cookies(u)
}
