package gateway

// Taxonomía de fallas del panel. Cada falla lleva el mensaje que se le
// muestra al usuario tal cual; la validación de campos no existe de este
// lado, se delega entera al servidor.

type TipoFalla string

const (
	// La petición nunca llegó o nunca volvió
	FallaRed TipoFalla = "red"
	// El servidor respondió no-éxito con un mensaje
	FallaServidor TipoFalla = "servidor"
	// El recurso no existe
	FallaNoEncontrado TipoFalla = "no_encontrado"
	// Rechazo local, antes de tocar la red
	FallaPermiso TipoFalla = "permiso"
)

type Falla struct {
	Tipo    TipoFalla
	Mensaje string
	Causa   error
}

func (f *Falla) Error() string { return f.Mensaje }

func (f *Falla) Unwrap() error { return f.Causa }

// TipoDeFalla clasifica un error devuelto por el gateway o el sincronizador.
func TipoDeFalla(err error) TipoFalla {
	if f, ok := err.(*Falla); ok {
		return f.Tipo
	}
	return ""
}

// PermisoDenegado arma el rechazo local que corta el flujo antes de
// cualquier llamada de red.
func PermisoDenegado(mensaje string) *Falla {
	return &Falla{Tipo: FallaPermiso, Mensaje: mensaje}
}
