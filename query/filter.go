// Package query translates request filter parameters into typed storage
// queries. Filter operators arrive as bracketed key suffixes
// (price[gte]=100) and are parsed into tagged conditions instead of being
// spliced into the storage query as strings.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"storefront/apperr"
)

type Op int

const (
	OpEq Op = iota
	OpGt
	OpGte
	OpLt
	OpLte
	OpIn
)

var opNames = map[string]Op{
	"gt":  OpGt,
	"gte": OpGte,
	"lt":  OpLt,
	"lte": OpLte,
	"in":  OpIn,
}

var opMongo = map[Op]string{
	OpGt:  "$gt",
	OpGte: "$gte",
	OpLt:  "$lt",
	OpLte: "$lte",
	OpIn:  "$in",
}

type Condition struct {
	Field string
	Op    Op
	Value any
}

type SortKey struct {
	Field string
	Desc  bool
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Query is the parsed form of a product listing request: filter conditions,
// field projection, sort keys and the requested page window.
type Query struct {
	Conditions []Condition
	Select     []string
	Sort       []SortKey
	Page       int
	Limit      int
}

// reserved keys carry query controls, never filters
var reserved = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

// ParseValues builds a Query from raw URL query parameters. Every
// non-reserved key becomes a filter condition: bare keys match exactly,
// keys of the form field[op] with op in gt/gte/lt/lte/in compare. Malformed
// bracket syntax fails with an invalid-input error rather than being passed
// through to storage.
func ParseValues(values url.Values) (Query, error) {
	q := Query{
		Page:  intOrDefault(values.Get("page"), DefaultPage),
		Limit: intOrDefault(values.Get("limit"), DefaultLimit),
	}

	if sel := values.Get("select"); sel != "" {
		q.Select = splitList(sel)
	}

	if s := values.Get("sort"); s != "" {
		for _, field := range splitList(s) {
			key := SortKey{Field: field}
			if strings.HasPrefix(field, "-") {
				key = SortKey{Field: field[1:], Desc: true}
			}
			if key.Field != "" {
				q.Sort = append(q.Sort, key)
			}
		}
	}
	if len(q.Sort) == 0 {
		// newest first when the caller does not ask otherwise
		q.Sort = []SortKey{{Field: "createdAt", Desc: true}}
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		if !reserved[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		field, op, err := parseKey(key)
		if err != nil {
			return Query{}, err
		}
		for _, raw := range values[key] {
			cond := Condition{Field: field, Op: op}
			if op == OpIn {
				members := []any{}
				for _, m := range splitList(raw) {
					members = append(members, coerce(m))
				}
				cond.Value = members
			} else {
				cond.Value = coerce(raw)
			}
			q.Conditions = append(q.Conditions, cond)
		}
	}

	return q, nil
}

// parseKey splits "price[gte]" into field and operator. Bare keys are
// exact matches.
func parseKey(key string) (string, Op, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		if strings.ContainsAny(key, "]") || key == "" {
			return "", 0, apperr.Invalid("malformed filter parameter %q", key)
		}
		return key, OpEq, nil
	}

	if open == 0 || !strings.HasSuffix(key, "]") {
		return "", 0, apperr.Invalid("malformed filter parameter %q", key)
	}
	field := key[:open]
	name := key[open+1 : len(key)-1]
	if strings.ContainsAny(field, "[]") || strings.ContainsAny(name, "[]") {
		return "", 0, apperr.Invalid("malformed filter parameter %q", key)
	}
	op, ok := opNames[name]
	if !ok {
		return "", 0, apperr.Invalid("unknown filter operator %q", name)
	}
	return field, op, nil
}

// coerce maps a raw parameter value onto the storage type it compares
// against. Documents store numbers and booleans natively, so "100" has to
// become a number before $gte will behave numerically.
func coerce(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	return raw
}

func intOrDefault(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// FilterDoc serializes the conditions to the driver's filter document.
// Multiple operators on one field merge into a single operator document, so
// price[gte]=10&price[lte]=50 becomes one bounded range.
func (q Query) FilterDoc() bson.M {
	filter := bson.M{}
	for _, c := range q.Conditions {
		if c.Op == OpEq {
			filter[c.Field] = c.Value
			continue
		}
		doc, ok := filter[c.Field].(bson.M)
		if !ok {
			doc = bson.M{}
			filter[c.Field] = doc
		}
		doc[opMongo[c.Op]] = c.Value
	}
	return filter
}

// SortDoc serializes the sort keys in order.
func (q Query) SortDoc() bson.D {
	doc := bson.D{}
	for _, key := range q.Sort {
		dir := 1
		if key.Desc {
			dir = -1
		}
		doc = append(doc, bson.E{Key: key.Field, Value: dir})
	}
	return doc
}

// Projection returns the field selection document, or nil when the caller
// wants whole documents.
func (q Query) Projection() bson.M {
	if len(q.Select) == 0 {
		return nil
	}
	proj := bson.M{}
	for _, field := range q.Select {
		proj[field] = 1
	}
	return proj
}
