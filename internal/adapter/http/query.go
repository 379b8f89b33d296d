package http

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/couchcryptid/coffee-catalog/internal/domain"
)

// queryError reports a malformed query parameter.
type queryError struct {
	param string
	msg   string
}

func (e *queryError) Error() string { return fmt.Sprintf("query parameter %s: %s", e.param, e.msg) }

// parseCriteria maps query parameters onto filter criteria. Set parameters
// repeat (?process=Washed&process=Natural). A range with one bound leaves the
// other end open.
func parseCriteria(q url.Values) (domain.Criteria, error) {
	var crit domain.Criteria
	var err error

	if crit.Processes, err = parseEnum(q, "process", domain.ParseProcess); err != nil {
		return crit, err
	}
	if crit.Categories, err = parseEnum(q, "category", domain.ParseCategory); err != nil {
		return crit, err
	}
	if crit.Mouthfeels, err = parseEnum(q, "mouthfeel", domain.ParseMouthfeel); err != nil {
		return crit, err
	}
	if crit.Bodies, err = parseEnum(q, "body", domain.ParseBody); err != nil {
		return crit, err
	}
	crit.Origins = q["origin"]
	crit.Roasters = q["roaster"]
	crit.Producers = q["producer"]

	ranges := []struct {
		name string
		dst  **domain.Range
	}{
		{"price", &crit.Price},
		{"rating", &crit.Rating},
		{"acidity", &crit.Acidity},
		{"sweetness", &crit.Sweetness},
		{"bitterness", &crit.Bitterness},
	}
	for _, r := range ranges {
		if *r.dst, err = parseRange(q, r.name); err != nil {
			return crit, err
		}
	}
	return crit, nil
}

func parseEnum[T any](q url.Values, param string, parse func(string) (T, error)) ([]T, error) {
	raw := q[param]
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]T, 0, len(raw))
	for _, v := range raw {
		parsed, err := parse(v)
		if err != nil {
			return nil, &queryError{param: param, msg: err.Error()}
		}
		out = append(out, parsed)
	}
	return out, nil
}

func parseRange(q url.Values, name string) (*domain.Range, error) {
	minRaw, maxRaw := q.Get(name+"_min"), q.Get(name+"_max")
	if minRaw == "" && maxRaw == "" {
		return nil, nil
	}
	r := domain.Unbounded()
	if minRaw != "" {
		v, err := parseFloat(name+"_min", minRaw)
		if err != nil {
			return nil, err
		}
		r.Min = v
	}
	if maxRaw != "" {
		v, err := parseFloat(name+"_max", maxRaw)
		if err != nil {
			return nil, err
		}
		r.Max = v
	}
	if r.Min > r.Max {
		return nil, &queryError{param: name, msg: fmt.Sprintf("min %g exceeds max %g", r.Min, r.Max)}
	}
	return &r, nil
}

func parseFloat(param, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &queryError{param: param, msg: fmt.Sprintf("%q is not a number", raw)}
	}
	return v, nil
}
