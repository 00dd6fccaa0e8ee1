package handling

import (
	"net/http"
	"strconv"
)

// Pagination carries the page window forwarded to the ERP's list endpoints,
// in its own parameter names.
type Pagination struct {
	Pagina int
	Limite int
}

// ParsePagination reads pagina/limite query parameters with sane bounds.
func ParsePagination(r *http.Request) (Pagination, error) {
	p := Pagination{Pagina: 1, Limite: 20}
	query := r.URL.Query()

	if pagina := query.Get("pagina"); pagina != "" {
		val, err := strconv.Atoi(pagina)
		if err != nil {
			return p, err
		}
		if val > 0 {
			p.Pagina = val
		}
	}

	if limite := query.Get("limite"); limite != "" {
		val, err := strconv.Atoi(limite)
		if err != nil {
			return p, err
		}
		if val > 0 && val <= 100 {
			p.Limite = val
		}
	}

	return p, nil
}
