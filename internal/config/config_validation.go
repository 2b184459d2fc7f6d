// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate rejects merged values no source may produce, such as negative
// durations. Field-level rules live on [ClientConfig].
func (cfg *StructuredConfig) validate() error {
	if cfg.App.QRDeadline < 0 || cfg.App.PollInterval < 0 || cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidLoginConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
	}
	for name, raw := range map[string]string{
		"id":   cfg.Adapter.IDBaseURL,
		"chat": cfg.Adapter.ChatBaseURL,
		"jr":   cfg.Adapter.JRBaseURL,
		"wpa":  cfg.Adapter.WPABaseURL,
	} {
		if !isHTTPURL(raw) {
			return fmt.Errorf("%w: %s base url %q", ErrInvalidAdapterConfigs, name, raw)
		}
	}

	if cfg.App.APIType <= 0 || cfg.App.APIVersion <= 0 {
		return fmt.Errorf("%w: api type and version must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.UserAgent == "" || cfg.App.Language == "" {
		return fmt.Errorf("%w: user agent and language are required", ErrInvalidAppConfigs)
	}
	if cfg.App.QRDeadline <= 0 || cfg.App.PollInterval <= 0 {
		return ErrInvalidLoginConfigs
	}

	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
