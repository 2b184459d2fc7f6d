// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cookie

import (
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Jar is a concurrency-safe cookie store. It satisfies net/http.CookieJar so
// it can be attached to resty clients directly, and it can be enumerated and
// serialized, which net/http/cookiejar does not allow. The zero value is an
// empty jar using the real clock.
type Jar struct {
	mu      sync.RWMutex
	clock   clockwork.Clock
	entries map[string]*entry
}

type entry struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  time.Time
	Secure   bool
	HttpOnly bool
	HostOnly bool
}

// Option configures a Jar.
type Option func(*Jar)

// WithClock overrides the clock used to expire cookies.
func WithClock(clock clockwork.Clock) Option {
	return func(j *Jar) {
		j.clock = clock
	}
}

// New returns an empty Jar.
func New(opts ...Option) *Jar {
	j := &Jar{
		clock:   clockwork.NewRealClock(),
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// SetCookies stores cookies received in a response from u.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if u == nil || len(cookies) == 0 {
		return
	}

	host := canonicalHost(u.Hostname())
	now := j.now()

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.entries == nil {
		j.entries = make(map[string]*entry)
	}

	for _, c := range cookies {
		e, ok := newEntry(c, host, defaultPath(u.Path), now)
		if !ok {
			continue
		}

		key := e.key()
		if !e.Expires.IsZero() && !e.Expires.After(now) {
			delete(j.entries, key)
			continue
		}
		j.entries[key] = e
	}
}

// Cookies returns the cookies to send in a request to u.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	if u == nil {
		return nil
	}

	host := canonicalHost(u.Hostname())
	secure := u.Scheme == "https" || u.Scheme == "wss"
	reqPath := u.Path
	if reqPath == "" {
		reqPath = "/"
	}
	now := j.now()

	j.mu.RLock()
	selected := make([]*entry, 0, len(j.entries))
	for _, e := range j.entries {
		if e.expired(now) || (e.Secure && !secure) {
			continue
		}
		if !e.matchesHost(host) || !pathMatch(reqPath, e.Path) {
			continue
		}
		selected = append(selected, e)
	}
	j.mu.RUnlock()

	sort.Slice(selected, func(a, b int) bool {
		if len(selected[a].Path) != len(selected[b].Path) {
			return len(selected[a].Path) > len(selected[b].Path)
		}
		return selected[a].Name < selected[b].Name
	})

	out := make([]*http.Cookie, 0, len(selected))
	for _, e := range selected {
		out = append(out, &http.Cookie{Name: e.Name, Value: e.Value})
	}
	return out
}

// AddSetCookie parses a raw Set-Cookie header value received from rawURL
// and stores the cookie.
func (j *Jar) AddSetCookie(header, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}

	c, err := http.ParseSetCookie(header)
	if err != nil {
		return err
	}

	j.SetCookies(u, []*http.Cookie{c})
	return nil
}

// CookieHeader renders the Cookie request header value for rawURL.
// It returns an empty string when nothing matches.
func (j *Jar) CookieHeader(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	cookies := j.Cookies(u)
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

// Get returns the value of the first unexpired cookie with the given name.
func (j *Jar) Get(name string) (string, bool) {
	now := j.now()

	j.mu.RLock()
	defer j.mu.RUnlock()

	for _, e := range j.entries {
		if e.Name == name && !e.expired(now) {
			return e.Value, true
		}
	}
	return "", false
}

// Len reports the number of stored cookies, expired ones included.
func (j *Jar) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Clear drops every cookie.
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = make(map[string]*entry)
}

func (j *Jar) now() time.Time {
	if j.clock == nil {
		return time.Now()
	}
	return j.clock.Now()
}

func newEntry(c *http.Cookie, host, defPath string, now time.Time) (*entry, bool) {
	if c == nil || c.Name == "" {
		return nil, false
	}

	e := &entry{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}

	domain := canonicalHost(strings.TrimPrefix(c.Domain, "."))
	switch {
	case domain == "":
		e.Domain = host
		e.HostOnly = true
	case domainMatch(host, domain):
		e.Domain = domain
	default:
		return nil, false
	}

	if e.Path == "" || !strings.HasPrefix(e.Path, "/") {
		e.Path = defPath
	}

	switch {
	case c.MaxAge < 0:
		e.Expires = now.Add(-time.Second)
	case c.MaxAge > 0:
		e.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	case !c.Expires.IsZero():
		e.Expires = c.Expires
	}

	return e, true
}

func (e *entry) key() string {
	return e.Domain + ";" + e.Path + ";" + e.Name
}

func (e *entry) expired(now time.Time) bool {
	return !e.Expires.IsZero() && !e.Expires.After(now)
}

func (e *entry) matchesHost(host string) bool {
	if e.HostOnly {
		return host == e.Domain
	}
	return domainMatch(host, e.Domain)
}

func canonicalHost(host string) string {
	return strings.ToLower(strings.TrimSuffix(host, "."))
}

func domainMatch(host, domain string) bool {
	if host == domain {
		return true
	}
	return strings.HasSuffix(host, "."+domain)
}

func defaultPath(p string) string {
	if p == "" || p[0] != '/' {
		return "/"
	}
	dir := path.Dir(p)
	if dir == "." {
		return "/"
	}
	return dir
}

func pathMatch(reqPath, cookiePath string) bool {
	if reqPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(reqPath, cookiePath) {
		return false
	}
	return strings.HasSuffix(cookiePath, "/") || reqPath[len(cookiePath)] == '/'
}
