package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexFloat accepts a JSON number or a numeric string. Infinities and NaN are rejected.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("not a finite number: %q", s)
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

const (
	AlertAbove  = "above"
	AlertBelow  = "below"
	AlertChange = "change"
)

// AlertRequest is the POST /api/alerts/register body.
type AlertRequest struct {
	Base      string     `json:"base" validate:"required,alpha,len=3"`
	Target    string     `json:"target" validate:"required,alpha,len=3"`
	AlertType string     `json:"alert_type" validate:"required,oneof=above below change"`
	Email     string     `json:"email" validate:"required,email"`
	Threshold *FlexFloat `json:"threshold" validate:"required,gt=0"`
}

// AlertPayload is the normalized body forwarded to the backend.
type AlertPayload struct {
	Base      string  `json:"base"`
	Target    string  `json:"target"`
	AlertType string  `json:"alert_type"`
	Email     string  `json:"email"`
	Threshold float64 `json:"threshold"`
}

// Payload upper-cases the pair and unwraps the threshold.
func (r AlertRequest) Payload() AlertPayload {
	p := AlertPayload{
		Base:      strings.ToUpper(r.Base),
		Target:    strings.ToUpper(r.Target),
		AlertType: strings.ToLower(r.AlertType),
		Email:     r.Email,
	}
	if r.Threshold != nil {
		p.Threshold = float64(*r.Threshold)
	}
	return p
}
