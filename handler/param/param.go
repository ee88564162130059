package param

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi"
	"github.com/gorilla/schema"
	"github.com/spf13/cast"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
}

// Binding binds url params, query values and the json body into v,
// then validates it with the valid struct tags.
func Binding(r *http.Request, v interface{}) error {
	if err := decoder.Decode(v, r.URL.Query()); err != nil {
		return err
	}

	if body := r.Body; body != nil && r.ContentLength > 0 &&
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(body).Decode(v); err != nil {
			return err
		}
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		values := map[string][]string{}
		for idx, key := range rctx.URLParams.Keys {
			values[key] = []string{rctx.URLParams.Values[idx]}
		}

		if len(values) > 0 {
			if err := decoder.Decode(v, values); err != nil {
				return err
			}
		}
	}

	_, err := govalidator.ValidateStruct(v)
	return err
}

// String reads a single url param
func String(r *http.Request, key string) string {
	return cast.ToString(chi.URLParam(r, key))
}

// Int reads a single url param as int
func Int(r *http.Request, key string) int {
	return cast.ToInt(chi.URLParam(r, key))
}

// Uint64 reads a single query value as uint64
func Uint64(r *http.Request, key string) uint64 {
	return cast.ToUint64(r.URL.Query().Get(key))
}
