package autocomplete

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
)

// Item is a selectable entry produced by an ItemSource.
type Item struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// NewItem builds an Item from a native key value, normalising it with KeyOf.
func NewItem(key any, label string) Item {
	return Item{Key: KeyOf(key), Label: label}
}

// DisplayItem is an Item joined with its membership in the current selection.
type DisplayItem struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ItemSource supplies items to a field type. Implementations own storage and
// matching; the order returned by FetchByKeys is not required to follow the
// order of keys.
type ItemSource interface {
	Search(ctx context.Context, query string) ([]Item, error)
	FetchByKeys(ctx context.Context, keys []string) ([]Item, error)
}

// SourceFuncs adapts a pair of functions to ItemSource.
type SourceFuncs struct {
	SearchFunc func(ctx context.Context, query string) ([]Item, error)
	FetchFunc  func(ctx context.Context, keys []string) ([]Item, error)
}

func (s SourceFuncs) Search(ctx context.Context, query string) ([]Item, error) {
	if s.SearchFunc == nil {
		return nil, nil
	}
	return s.SearchFunc(ctx, query)
}

func (s SourceFuncs) FetchByKeys(ctx context.Context, keys []string) ([]Item, error) {
	if s.FetchFunc == nil {
		return nil, nil
	}
	return s.FetchFunc(ctx, keys)
}

// KeyOf returns the wire representation of a key. Keys travel as form values,
// so every comparison in this package happens on these strings.
func KeyOf(v any) string {
	switch key := v.(type) {
	case nil:
		return ""
	case string:
		return key
	case []byte:
		return string(key)
	case int:
		return strconv.Itoa(key)
	case int8:
		return strconv.FormatInt(int64(key), 10)
	case int16:
		return strconv.FormatInt(int64(key), 10)
	case int32:
		return strconv.FormatInt(int64(key), 10)
	case int64:
		return strconv.FormatInt(key, 10)
	case uint:
		return strconv.FormatUint(uint64(key), 10)
	case uint8:
		return strconv.FormatUint(uint64(key), 10)
	case uint16:
		return strconv.FormatUint(uint64(key), 10)
	case uint32:
		return strconv.FormatUint(uint64(key), 10)
	case uint64:
		return strconv.FormatUint(key, 10)
	case float32:
		return formatFloatKey(float64(key))
	case float64:
		return formatFloatKey(key)
	case fmt.Stringer:
		return key.String()
	default:
		return fmt.Sprint(key)
	}
}

func formatFloatKey(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type paramsKey struct{}

// WithParams stores the raw client parameters of the current request on ctx so
// item sources can read extra values sent by the widget.
func WithParams(ctx context.Context, params url.Values) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, paramsKey{}, params)
}

// ParamsFromContext returns the client parameters stored by WithParams, or an
// empty set.
func ParamsFromContext(ctx context.Context) url.Values {
	if ctx == nil {
		return url.Values{}
	}
	params, ok := ctx.Value(paramsKey{}).(url.Values)
	if !ok || params == nil {
		return url.Values{}
	}
	return params
}
