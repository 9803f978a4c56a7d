package lookup

import (
	"fmt"
	"strconv"
	"time"

	"coldstore/internal/entity"
)

// Transform builds the public shape of rec. Only the id and the fields
// declared on spec are copied; the id is always a string.
func Transform(spec *entity.Spec, rec Record) Item {
	out := make(Item, len(spec.Fields)+1)
	out["id"] = asString(rec[entity.IDColumn])
	for _, f := range spec.Fields {
		v := rec[f.Column]
		switch f.Kind {
		case entity.KindBool:
			out[f.Name] = asBool(v)
		case entity.KindNumber:
			out[f.Name] = asNumber(v)
		case entity.KindRef:
			if v == nil {
				out[f.Name] = nil
			} else {
				out[f.Name] = asString(v)
			}
		default:
			out[f.Name] = asString(v)
		}
	}
	return out
}

// TransformAll applies Transform to every record, keeping order.
func TransformAll(spec *entity.Spec, recs []Record) []Item {
	items := make([]Item, 0, len(recs))
	for _, r := range recs {
		items = append(items, Transform(spec, r))
	}
	return items
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

func asBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int64:
		return x != 0
	case int:
		return x != 0
	case []byte:
		b, _ := strconv.ParseBool(string(x))
		return b
	case string:
		b, _ := strconv.ParseBool(x)
		return b
	default:
		return false
	}
}

func asNumber(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		return x
	case []byte:
		return parseNumber(string(x))
	case string:
		return parseNumber(x)
	default:
		return nil
	}
}

func parseNumber(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return nil
}
