// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-zca/internal/service"
	"github.com/MKhiriev/go-zca/models"
)

// ErrUserQuit is returned when the user leaves the program before a session
// was established.
var ErrUserQuit = errors.New("user quit")

func humanizeLoginError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или сервер недоступен"
	}

	var apiErr *models.APIError
	switch {
	case errors.Is(err, service.ErrVersionDetectionFailed):
		return "Не удалось определить версию страницы входа"
	case errors.Is(err, service.ErrSessionRejected):
		return "Сервер отклонил сессию, войдите заново"
	case errors.As(err, &apiErr):
		return apiErr.Error()
	}

	return err.Error()
}
