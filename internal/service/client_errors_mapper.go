// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-zca/internal/adapter"
)

// mapAdapterError tags a transport error with the step that failed. The
// adapter sentinel stays reachable through errors.Is; rejected credentials
// additionally match ErrSessionRejected. Context errors pass through as is.
func mapAdapterError(step, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w: %w", step, ErrSessionRejected, err)
	default:
		return fmt.Errorf("%w: %w", step, err)
	}
}
