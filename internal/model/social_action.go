package model

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Hours is a number of community-service hours. Decoding never fails:
// anything that is not a finite number (or numeric string) becomes zero.
type Hours float64

// CoerceHours converts a loosely typed value to Hours, degrading to zero.
func CoerceHours(v any) Hours {
	switch x := v.(type) {
	case nil, bool:
		return 0
	case string:
		v = strings.TrimSpace(x)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Hours(f)
}

// UnmarshalJSON coerces numbers and numeric strings; everything else is zero.
func (h *Hours) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*h = 0
		return nil
	}
	*h = CoerceHours(v)
	return nil
}

// SocialActionRecord tracks a student's community service placement and hours.
// Total hours are derived on read and never stored.
type SocialActionRecord struct {
	StudentID        string    `json:"student_id"`
	Place            string    `json:"place"`
	AcceptanceLetter bool      `json:"acceptance_letter"`
	Unit1Hours       Hours     `json:"unit1_hours"`
	Unit2Hours       Hours     `json:"unit2_hours"`
	Unit3Hours       Hours     `json:"unit3_hours"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UpdateSocialActionRequest carries the fields changed in one edit; nil fields are left as they are.
type UpdateSocialActionRequest struct {
	Place            *string `json:"place" binding:"omitempty,max=200"`
	AcceptanceLetter *bool   `json:"acceptance_letter"`
	Unit1Hours       *Hours  `json:"unit1_hours"`
	Unit2Hours       *Hours  `json:"unit2_hours"`
	Unit3Hours       *Hours  `json:"unit3_hours"`
}

// Apply returns rec with the request's non-nil fields written over it.
func (r UpdateSocialActionRequest) Apply(rec SocialActionRecord) SocialActionRecord {
	if r.Place != nil {
		rec.Place = strings.TrimSpace(*r.Place)
	}
	if r.AcceptanceLetter != nil {
		rec.AcceptanceLetter = *r.AcceptanceLetter
	}
	if r.Unit1Hours != nil {
		rec.Unit1Hours = *r.Unit1Hours
	}
	if r.Unit2Hours != nil {
		rec.Unit2Hours = *r.Unit2Hours
	}
	if r.Unit3Hours != nil {
		rec.Unit3Hours = *r.Unit3Hours
	}
	return rec
}
