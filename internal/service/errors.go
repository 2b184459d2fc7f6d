package service

import "errors"

var (
	ErrVersionDetectionFailed = errors.New("cannot detect login page version")
	ErrLoginInfoFailed        = errors.New("account logininfo failed")
	ErrVerifyClientFailed     = errors.New("verify client failed")
	ErrQRGenerationFailed     = errors.New("unable to generate QR code")
	ErrWaitingScanFailed      = errors.New("waiting for QR scan failed")
	ErrSessionCheckFailed     = errors.New("check session failed")
	ErrConfirmationFailed     = errors.New("QR confirmation failed")
	ErrLoginIncomplete        = errors.New("login incomplete")

	ErrLoginFailed      = errors.New("cookie login failed")
	ErrServerInfoFailed = errors.New("failed to fetch server info")
	ErrSessionRejected  = errors.New("session rejected by server")
	ErrNoStoredSession  = errors.New("no stored session")
)
