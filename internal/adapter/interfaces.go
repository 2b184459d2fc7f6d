// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer used by the login flows of
// the chat web API.
//
// The primary abstraction is [AuthAdapter], which decouples the service layer
// from resty and from the concrete hosts. Every JSON endpoint answers with a
// [models.Response] envelope; the adapter only maps transport failures
// (non-2xx statuses, undecodable bodies) to the sentinels in errors.go and
// leaves error_code interpretation to the caller.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-zca/internal/cookie"
	"github.com/MKhiriev/go-zca/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_adapter_mock.go -package=mock

// AuthAdapter defines every HTTP call the QR and cookie login flows make.
// Implementations attach the current cookie store and user agent to each
// request and record every Set-Cookie they receive.
type AuthAdapter interface {
	// SetCookieJar replaces the cookie store used by subsequent requests.
	SetCookieJar(jar *cookie.Jar)

	// CookieJar returns the cookie store currently in use.
	CookieJar() *cookie.Jar

	// SetUserAgent sets the User-Agent sent with subsequent requests.
	SetUserAgent(userAgent string)

	// LoadLoginPage fetches the account login page and returns its HTML.
	LoadLoginPage(ctx context.Context) (string, error)

	// AccountLoginInfo posts the account logininfo form.
	AccountLoginInfo(ctx context.Context, version, imei string) (models.Response, error)

	// VerifyClient posts the device verification form.
	VerifyClient(ctx context.Context, version, imei string) (models.Response, error)

	// GenerateQRCode asks the server for a new login QR code.
	GenerateQRCode(ctx context.Context, version, imei string) (models.Response, error)

	// WaitingScan long-polls until the QR code identified by code is scanned.
	WaitingScan(ctx context.Context, version, imei, code string) (models.Response, error)

	// WaitingConfirm long-polls until the scanned QR code is confirmed or
	// declined on the phone.
	WaitingConfirm(ctx context.Context, version, imei, code string) (models.Response, error)

	// CheckSession requests the session check page without following
	// redirects and returns the HTTP status.
	CheckSession(ctx context.Context) (int, error)

	// UserInfo fetches the logged-in account summary.
	UserInfo(ctx context.Context) (models.Response, error)

	// LoginInfo calls getLoginInfo with already signed query params.
	LoginInfo(ctx context.Context, params map[string]string) (models.Response, error)

	// ServerInfo calls getServerInfo with already signed query params.
	ServerInfo(ctx context.Context, params map[string]string) (models.Response, error)
}
