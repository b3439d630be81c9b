package models

import "database/sql"

// NewNullString returns a valid sql.NullString, or an invalid one for "".
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NewNullFloat64 wraps a *float64 into sql.NullFloat64.
func NewNullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// StrOrNil returns nil for an invalid NullString, useful for JSON responses.
func StrOrNil(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
