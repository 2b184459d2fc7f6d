// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-zca/models"
)

const sessionsTable = "sessions"

var sessionColumns = []string{
	"imei",
	"user_agent",
	"language",
	"cookies",
	"secret_key",
	"service_map",
	"user_id",
	"display_name",
	"updated_at",
}

// sqlite uses ? placeholders
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildUpsertSessionQuery(s models.StoredSession) (string, []any, error) {
	updates := make([]string, 0, len(sessionColumns)-1)
	for _, c := range sessionColumns[1:] {
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", c, c))
	}

	query, args, err := builder.
		Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(
			s.IMEI,
			s.UserAgent,
			s.Language,
			rawOrDefault(s.Cookies, "[]"),
			s.SecretKey,
			rawOrDefault(s.ServiceMap, "{}"),
			s.UserID,
			s.DisplayName,
			s.UpdatedAt.UTC(),
		).
		Suffix("ON CONFLICT (imei) DO UPDATE SET " + strings.Join(updates, ", ")).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectLatestSessionQuery() (string, []any, error) {
	query, args, err := builder.
		Select(sessionColumns...).
		From(sessionsTable).
		OrderBy("updated_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteSessionQuery(imei string) (string, []any, error) {
	query, args, err := builder.
		Delete(sessionsTable).
		Where(sq.Eq{"imei": imei}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func rawOrDefault(raw []byte, def string) string {
	if len(raw) == 0 {
		return def
	}
	return string(raw)
}
