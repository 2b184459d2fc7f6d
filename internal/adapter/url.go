package adapter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty address", ErrInvalidBaseURL)
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: address must include host and scheme", ErrInvalidBaseURL)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// makeURL appends params to base and adds zpw_ver and zpw_type unless
// base or params already carry them.
func makeURL(base string, params map[string]string, apiVersion, apiType int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", base, err)
	}

	q := u.Query()
	for k, v := range params {
		q.Add(k, v)
	}
	if !q.Has("zpw_ver") {
		q.Set("zpw_ver", strconv.Itoa(apiVersion))
	}
	if !q.Has("zpw_type") {
		q.Set("zpw_type", strconv.Itoa(apiType))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// accountPage renders the account page URL with an escaped continue target.
func accountPage(idBase, target string) string {
	return idBase + "/account?continue=" + url.QueryEscape(target)
}
