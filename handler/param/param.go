package param

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.SetAliasTag("json")
}

// Binding binds request parameters into v: a json body for json requests,
// query values otherwise.
func Binding(r *http.Request, v interface{}) error {
	if typ := r.Header.Get("Content-Type"); strings.HasPrefix(typ, "application/json") {
		defer r.Body.Close()
		return json.NewDecoder(r.Body).Decode(v)
	}

	if err := r.ParseForm(); err != nil {
		return err
	}

	return decoder.Decode(v, r.Form)
}
