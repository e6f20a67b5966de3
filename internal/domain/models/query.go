package models

import (
	"net/url"
	"strings"

	"FxDash/pkg/util"
)

// AnalyticsQuery is the normalized request for one analytics resource.
// It is immutable: With returns a modified copy.
type AnalyticsQuery struct {
	base   string
	target string
	params map[string]string
}

// NewAnalyticsQuery upper-cases the pair, substitutes the default pair for
// blanks and drops empty params.
func NewAnalyticsQuery(base, target string, params map[string]string) AnalyticsQuery {
	q := AnalyticsQuery{
		base:   util.UpperCode(base, DefaultBase),
		target: util.UpperCode(target, DefaultTarget),
		params: make(map[string]string, len(params)),
	}
	for k, v := range params {
		if v = strings.TrimSpace(v); v != "" {
			q.params[k] = v
		}
	}
	return q
}

func (q AnalyticsQuery) Base() string   { return q.base }
func (q AnalyticsQuery) Target() string { return q.target }

// Param returns the named optional parameter or "".
func (q AnalyticsQuery) Param(key string) string { return q.params[key] }

// IntParam parses a positive int param, treating invalid input as absent.
func (q AnalyticsQuery) IntParam(key string, def int) int {
	return util.ParsePositiveIntDefault(q.params[key], def)
}

// With returns a copy with key set to value.
func (q AnalyticsQuery) With(key, value string) AnalyticsQuery {
	params := make(map[string]string, len(q.params)+1)
	for k, v := range q.params {
		params[k] = v
	}
	params[key] = value
	return AnalyticsQuery{base: q.base, target: q.target, params: params}
}

// Values renders the optional params as URL query values.
func (q AnalyticsQuery) Values() url.Values {
	v := make(url.Values, len(q.params))
	for k, p := range q.params {
		v.Set(k, p)
	}
	return v
}

// PairPath renders "/{base}/{target}" with both segments escaped.
func (q AnalyticsQuery) PairPath() string {
	return "/" + url.PathEscape(q.base) + "/" + url.PathEscape(q.target)
}
