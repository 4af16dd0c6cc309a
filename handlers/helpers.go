package handlers

import "strconv"

// string -> int; si no se puede convertir devuelve el valor por defecto
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
