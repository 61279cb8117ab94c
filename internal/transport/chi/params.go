package chi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/document"
	domlisting "github.com/kailas-cloud/discovery/internal/domain/listing"
)

// sortFields maps the public sort key to the sortable index attribute.
var sortFields = map[string]string{
	"title": document.FieldTitle,
}

// pathParam binds a required simple-style path parameter.
func pathParam(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return fmt.Errorf("invalid format for parameter %s: %w: %w", name, domain.ErrInvalidRequest, err)
	}
	return nil
}

// queryParam binds an optional form-style query parameter; dest keeps its value when absent.
func queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid format for parameter %s: %w: %w", name, domain.ErrInvalidRequest, err)
	}
	return nil
}

// listingParams reads page, sort and order. page defaults to 1.
func listingParams(r *http.Request) (int, domlisting.Sort, error) {
	page := 1
	if err := queryParam(r, "page", &page); err != nil {
		return 0, domlisting.Sort{}, err
	}

	var key, order string
	if err := queryParam(r, "sort", &key); err != nil {
		return 0, domlisting.Sort{}, err
	}
	if err := queryParam(r, "order", &order); err != nil {
		return 0, domlisting.Sort{}, err
	}

	var sort domlisting.Sort
	if key != "" {
		field, ok := sortFields[key]
		if !ok {
			return 0, domlisting.Sort{}, fmt.Errorf("unknown sort %q: %w", key, domain.ErrInvalidRequest)
		}
		sort.Field = field
	}
	switch order {
	case "", "asc":
	case "desc":
		sort.Desc = true
	default:
		return 0, domlisting.Sort{}, fmt.Errorf("order must be asc or desc: %w", domain.ErrInvalidRequest)
	}
	return page, sort, nil
}

// splitPart decodes a compound part embedded in a PID: "codu:123_2" is part 2 of
// "codu:123". PIDs without a numeric suffix are returned unchanged with part 0.
func splitPart(pid, sep string) (string, int) {
	if sep == "" {
		return pid, 0
	}
	i := strings.LastIndex(pid, sep)
	if i <= 0 {
		return pid, 0
	}
	n, err := strconv.Atoi(pid[i+len(sep):])
	if err != nil || n < 1 {
		return pid, 0
	}
	return pid[:i], n
}
