/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package factories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/suparena/primed/errors"
	"github.com/suparena/primed/registry"
)

// Names the factories are installed under
const (
	NameDecimal  = "PrimedDecimal"
	NameID       = "PrimedId"
	NameUUID     = "PrimedUUID"
	NameDate     = "PrimedDate"
	NameDateTime = "PrimedDateTime"
)

// DefaultID is produced by ID when no identifier is supplied.
const DefaultID = "-1"

// now is replaced in tests.
var now = time.Now

// Install registers every factory in r under its Name constant.
func Install(r *registry.Registry) error {
	for name, fn := range map[string]any{
		NameDecimal:  Decimal,
		NameID:       ID,
		NameUUID:     UUID,
		NameDate:     Date,
		NameDateTime: DateTime,
	} {
		if err := r.RegisterTransformer(name, fn); err != nil {
			return fmt.Errorf("failed to install %s: %w", name, err)
		}
	}
	return nil
}

// Decimal converts a number, numeric string or decimal into a decimal.Decimal.
// It returns zero when called without a value.
func Decimal(value ...any) (decimal.Decimal, error) {
	if len(value) == 0 {
		return decimal.Zero, nil
	}

	switch v := value[0].(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return v, nil
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, nil
		}
		return *v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case json.Number:
		return parseDecimal(v.String())
	case string:
		return parseDecimal(v)
	default:
		return decimal.Zero, errors.NewValidationError("decimal", fmt.Sprintf("unsupported value %T", v))
	}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.NewValidationError("decimal", err.Error())
	}
	return d, nil
}

// ID returns the supplied identifier, or DefaultID when it is missing or empty.
func ID(value ...string) string {
	if len(value) > 0 && value[0] != "" {
		return value[0]
	}
	return DefaultID
}

// UUID returns the supplied UUID after checking it is a version 4 UUID, or a
// fresh random one when it is missing or empty.
func UUID(value ...string) (strfmt.UUID4, error) {
	if len(value) == 0 || value[0] == "" {
		return strfmt.UUID4(uuid.NewString()), nil
	}
	if !strfmt.IsUUID4(value[0]) {
		return "", errors.NewValidationError("uuid", fmt.Sprintf("%q is not a version 4 UUID", value[0]))
	}
	return strfmt.UUID4(value[0]), nil
}

// Date converts a time, date, RFC 3339 string or Unix millisecond count into a
// time.Time. It returns the current time when called without a value.
func Date(value ...any) (time.Time, error) {
	if len(value) == 0 {
		return now(), nil
	}

	switch v := value[0].(type) {
	case nil:
		return now(), nil
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return now(), nil
		}
		return *v, nil
	case strfmt.Date:
		return time.Time(v), nil
	case strfmt.DateTime:
		return time.Time(v), nil
	case int64:
		return time.UnixMilli(v), nil
	case int:
		return time.UnixMilli(int64(v)), nil
	case float64:
		return time.UnixMilli(int64(v)), nil
	case json.Number:
		ms, err := v.Int64()
		if err != nil {
			return time.Time{}, errors.NewValidationError("date", err.Error())
		}
		return time.UnixMilli(ms), nil
	case string:
		if t, err := time.Parse(strfmt.RFC3339FullDate, v); err == nil {
			return t, nil
		}
		dt, err := strfmt.ParseDateTime(v)
		if err != nil {
			return time.Time{}, errors.NewValidationError("date", err.Error())
		}
		return time.Time(dt), nil
	default:
		return time.Time{}, errors.NewValidationError("date", fmt.Sprintf("unsupported value %T", v))
	}
}

// DateTime converts a time or ISO 8601 string into a strfmt.DateTime. It
// returns the current time when called without a value.
func DateTime(value ...any) (strfmt.DateTime, error) {
	if len(value) == 0 {
		return strfmt.DateTime(now()), nil
	}

	switch v := value[0].(type) {
	case nil:
		return strfmt.DateTime(now()), nil
	case strfmt.DateTime:
		return v, nil
	case *strfmt.DateTime:
		if v == nil {
			return strfmt.DateTime(now()), nil
		}
		return *v, nil
	case time.Time:
		return strfmt.DateTime(v), nil
	case string:
		dt, err := strfmt.ParseDateTime(v)
		if err != nil {
			return strfmt.DateTime{}, errors.NewValidationError("datetime", err.Error())
		}
		return dt, nil
	default:
		return strfmt.DateTime{}, errors.NewValidationError("datetime", fmt.Sprintf("unsupported value %T", v))
	}
}
