// Package query arma los paths de las consultas nombradas del backend remoto.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Name identifica una consulta remota.
type Name string

const (
	Animals          Name = "animals-simple"
	SpeciesCounts    Name = "animal-stats"
	WelfareFollowUps Name = "welfare-followups"
	AdoptionStats    Name = "adoption-stats"
)

// All significa "sin filtro": el parámetro se omite.
const All = "All"

var ErrUnknownQuery = errors.New("unknown query")

var known = map[Name]struct{}{
	Animals:          {},
	SpeciesCounts:    {},
	WelfareFollowUps: {},
	AdoptionStats:    {},
}

// Params: nil => parámetro ausente.
type Params map[string]*string

// P arma Params desde pares clave/valor: P("species", "Dog", "state", "TX").
// Un número impar de argumentos ignora la última clave.
func P(kv ...string) Params {
	out := make(Params, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		v := kv[i+1]
		out[kv[i]] = &v
	}
	return out
}

// Build devuelve "/<name>[?k=v&...]".
// Omite valores nil, vacíos o "All". Las claves salen ordenadas
// (url.Values.Encode ordena), así el resultado es determinístico.
func Build(name Name, params Params) (string, error) {
	if _, ok := known[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuery, name)
	}

	q := url.Values{}
	for k, v := range params {
		if strings.TrimSpace(k) == "" || v == nil {
			continue
		}
		val := strings.TrimSpace(*v)
		if val == "" || val == All {
			continue
		}
		q.Set(k, val)
	}

	path := "/" + string(name)
	if len(q) == 0 {
		return path, nil
	}
	return path + "?" + q.Encode(), nil
}

// MustBuild es para nombres constantes del propio paquete.
func MustBuild(name Name, params Params) string {
	p, err := Build(name, params)
	if err != nil {
		panic(err)
	}
	return p
}
