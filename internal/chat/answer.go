package chat

import (
	"errors"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	errNotJSON     = errors.New("answer is not a JSON object")
	errEmptyAnswer = errors.New("answer is empty")
)

// ParseAnswer decodes {"answer": string, "sources": [int]} and keeps only
// integer sources in [0, n), first occurrence wins.
func ParseAnswer(raw string, n int) (string, []int, error) {
	if !gjson.Valid(raw) {
		return "", nil, errNotJSON
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return "", nil, errNotJSON
	}

	answer := doc.Get("answer")
	if answer.Type != gjson.String || strings.TrimSpace(answer.String()) == "" {
		return "", nil, errEmptyAnswer
	}

	sources := make([]int, 0)
	seen := make(map[int]struct{})
	doc.Get("sources").ForEach(func(_, v gjson.Result) bool {
		if v.Type != gjson.Number {
			return true
		}
		f := v.Float()
		if f != math.Trunc(f) || f < 0 || f >= float64(n) {
			return true
		}
		idx := int(f)
		if _, dup := seen[idx]; dup {
			return true
		}
		seen[idx] = struct{}{}
		sources = append(sources, idx)
		return true
	})

	return answer.String(), sources, nil
}
