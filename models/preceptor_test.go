package models

import (
	"reflect"
	"testing"
)

func TestCursos(t *testing.T) {
	ptr := func(s string) *string { return &s }

	cases := []struct {
		nombre   string
		valor    *string
		esperado []string
	}{
		{"nil", nil, nil},
		{"vacio", ptr(""), nil},
		{"uno", ptr("5A"), []string{"5A"}},
		{"varios con espacios", ptr("5A, 5B , 6A"), []string{"5A", "5B", "6A"}},
		{"comas colgantes", ptr("5A,,5B,"), []string{"5A", "5B"}},
	}

	for _, c := range cases {
		p := Preceptor{CursosACargo: c.valor}
		got := p.Cursos()
		if !reflect.DeepEqual(got, c.esperado) {
			t.Errorf("%s: Cursos() == %v, want %v", c.nombre, got, c.esperado)
		}
	}
}
