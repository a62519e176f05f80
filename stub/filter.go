package stub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	nt "atelier/entity"
)

type listQuery struct {
	page      int
	pageSize  int
	filters   []nt.WireFilter
	sortField string
	sortOrder string
}

func parseListQuery(request *http.Request) (query listQuery, err error) {

	vals := request.URL.Query()

	query.page, _ = strconv.Atoi(vals.Get("page"))
	if query.page < 1 {
		query.page = 1
	}
	query.pageSize, _ = strconv.Atoi(vals.Get("page_size"))
	if query.pageSize < 1 {
		query.pageSize = 20
	}
	query.sortField = vals.Get("sort_field")
	query.sortOrder = vals.Get("sort_order")

	raw := vals.Get("filters")
	if raw != "" {
		err = json.Unmarshal([]byte(raw), &query.filters)
		err = errors.Wrapf(err, "failed to unmarshal filters")
	}
	return
}

func matchAll(record map[string]any, filters []nt.WireFilter, textsKey string) bool {
	for _, flt := range filters {
		if !match(record, flt, textsKey) {
			return false
		}
	}
	return true
}

// match evaluates one wire filter. A name filter searches localized texts,
// scoped to its language when one is attached; a language_id filter asks
// whether the record carries a text in that language.
func match(record map[string]any, flt nt.WireFilter, textsKey string) bool {

	want := fmt.Sprint(flt.Value)

	switch flt.Field {

	case "name":
		if textsKey == "" {
			return compare(fmt.Sprint(record["name"]), want, flt.Operator)
		}
		texts, _ := record[textsKey].([]any)
		for _, item := range texts {
			text, _ := item.(map[string]any)
			if flt.LanguageID != "" && text["language_id"] != flt.LanguageID {
				continue
			}
			if compare(fmt.Sprint(text["name"]), want, flt.Operator) {
				return true
			}
		}
		return false

	case "language_id":
		texts, _ := record[textsKey].([]any)
		for _, item := range texts {
			text, _ := item.(map[string]any)
			if text["language_id"] == want {
				return true
			}
		}
		return false
	}

	return compare(fmt.Sprint(record[flt.Field]), want, flt.Operator)
}

func compare(have, want, operator string) bool {
	if operator == nt.OpContains {
		return strings.Contains(strings.ToLower(have), strings.ToLower(want))
	}
	return have == want
}

func sortRecords(records []map[string]any, field, order string, textsKey string) {
	if field == "" {
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		less := lessBy(records[i], records[j], field, textsKey)
		if order == "desc" {
			return !less
		}
		return less
	})
}

func lessBy(first, second map[string]any, field, textsKey string) bool {

	left := sortKey(first, field, textsKey)
	right := sortKey(second, field, textsKey)

	leftNum, leftOk := left.(float64)
	rightNum, rightOk := right.(float64)
	if leftOk && rightOk {
		return leftNum < rightNum
	}
	return fmt.Sprint(left) < fmt.Sprint(right)
}

func sortKey(record map[string]any, field, textsKey string) any {

	if field == "name" && textsKey != "" {
		texts, _ := record[textsKey].([]any)
		if len(texts) > 0 {
			text, _ := texts[0].(map[string]any)
			return text["name"]
		}
		return ""
	}
	return record[field]
}
