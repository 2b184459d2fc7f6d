// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"slices"
	"sync"

	"github.com/MKhiriev/go-zca/internal/cookie"
)

// ErrIncompleteCredentials is returned by [Session.SetCredentials] when the
// secret key or the service map is missing.
var ErrIncompleteCredentials = errors.New("secret key and service map must be set together")

// Credentials are the values issued by the login API after a successful
// cookie login. SecretKey is the base64-encoded session key (zpw_enk) used
// by the envelope codec; ServiceMap maps a service name to its endpoint URLs.
type Credentials struct {
	SecretKey  string
	ServiceMap map[string][]string
}

// Session is the authenticated state produced by a login flow and consumed
// by every downstream API call.
//
// IMEI, UserAgent and Cookies are fixed once the session is created. The
// credentials pair is written only through SetCredentials, so a reader never
// observes a secret key without its service map or the other way round.
type Session struct {
	IMEI      string
	UserAgent string
	Language  string
	Cookies   *cookie.Jar
	UserInfo  UserInfo

	mu          sync.RWMutex
	credentials *Credentials
}

// NewSession creates an unauthenticated session bound to the given device
// identity and cookie store. A nil jar is replaced with an empty one.
func NewSession(imei, userAgent, language string, cookies *cookie.Jar) *Session {
	if cookies == nil {
		cookies = cookie.New()
	}
	return &Session{
		IMEI:      imei,
		UserAgent: userAgent,
		Language:  language,
		Cookies:   cookies,
	}
}

// SetCredentials atomically stores the secret key together with the service
// map. Both must be non-empty.
func (s *Session) SetCredentials(secretKey string, serviceMap map[string][]string) error {
	if secretKey == "" || len(serviceMap) == 0 {
		return ErrIncompleteCredentials
	}

	creds := &Credentials{
		SecretKey:  secretKey,
		ServiceMap: cloneServiceMap(serviceMap),
	}

	s.mu.Lock()
	s.credentials = creds
	s.mu.Unlock()
	return nil
}

// Credentials returns a copy of the stored credentials and whether they are
// set.
func (s *Session) Credentials() (Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.credentials == nil {
		return Credentials{}, false
	}
	return Credentials{
		SecretKey:  s.credentials.SecretKey,
		ServiceMap: cloneServiceMap(s.credentials.ServiceMap),
	}, true
}

func cloneServiceMap(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for name, urls := range in {
		out[name] = slices.Clone(urls)
	}
	return out
}

// IsAuthenticated reports whether the session carries credentials.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credentials != nil
}

// ServiceURL returns the first endpoint registered for service, if any.
func (s *Session) ServiceURL(service string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.credentials == nil {
		return "", false
	}
	urls := s.credentials.ServiceMap[service]
	if len(urls) == 0 {
		return "", false
	}
	return urls[0], true
}
