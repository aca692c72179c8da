package helper

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =======================
// STRING
// =======================

// RawStringToNull treats the empty string as NULL.
func RawStringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func StringToNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func NullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// NullStringValue returns "" for NULL.
func NullStringValue(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// =======================
// UUID
// =======================

func StringToUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// =======================
// DECIMAL (Postgres NUMERIC)
// =======================

// NumericToDecimal parses a NUMERIC column scanned as text. Invalid input yields zero.
func NumericToDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func NullNumericToDecimal(ns sql.NullString) decimal.NullDecimal {
	if !ns.Valid {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// DecimalToNumeric formats money with two fraction digits for NUMERIC(12,2).
func DecimalToNumeric(d decimal.Decimal) string {
	return d.StringFixed(2)
}
