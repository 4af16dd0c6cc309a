// Package sync orquesta los ciclos fetch → filtrar → render → mutar →
// refetch de cada colección del panel. Es el único componente con estado:
// la última vista buena de cada tabla y el registro en edición.
//
// El ciclo de vida de cada colección es una máquina de estados explícita
// (inactiva → cargando → cargada | error), independiente de cómo se
// renderice: el render y la confirmación de borrado entran como interfaces.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/looplab/fsm"

	"github.com/tremendez-coder/Asistencia-gil-3/models"
	"github.com/tremendez-coder/Asistencia-gil-3/panel/gateway"
	"github.com/tremendez-coder/Asistencia-gil-3/panel/identity"
	"github.com/tremendez-coder/Asistencia-gil-3/panel/permissions"
	"github.com/tremendez-coder/Asistencia-gil-3/panel/scope"
)

// Pasarela es lo que el sincronizador le pide al gateway. *gateway.Cliente
// la satisface; los tests enchufan una falsa.
type Pasarela interface {
	ListarAlumnos() ([]models.Alumno, error)
	CrearAlumno(datos gateway.Datos) (*models.Alumno, error)
	ActualizarAlumno(id uint, datos gateway.Datos) (*models.Alumno, error)
	EliminarAlumno(id uint) error

	ListarPreceptores() ([]models.Preceptor, error)
	CrearPreceptor(datos gateway.Datos) (*models.Preceptor, error)
	ActualizarPreceptor(id uint, datos gateway.Datos) (*models.Preceptor, error)
	EliminarPreceptor(id uint) error

	ListarAsistencias() ([]models.Asistencia, error)

	CapturarRostros(alumnoID uint) (string, error)
	EntrenarReconocedor() (string, error)
	IniciarReconocimiento() (string, error)
}

// Renderizador recibe el contenido ya filtrado y con las acciones por fila
// que salieron de la matriz de permisos. El panel no es dueño del markup,
// solo del contenido.
type Renderizador interface {
	MostrarAlumnos(alumnos []models.Alumno, acciones func(models.Alumno) []permissions.Accion)
	MostrarPreceptores(preceptores []models.Preceptor)
	MostrarAsistencias(asistencias []models.Asistencia)
	// Aviso bloqueante (confirmaciones de éxito y todo mensaje de error)
	Avisar(mensaje string)
}

// Confirmador es la compuerta síncrona previa a borrados y a los disparos
// de reconocimiento.
type Confirmador interface {
	Confirmar(pregunta string) bool
}

const (
	EstadoInactiva = "inactiva"
	EstadoCargando = "cargando"
	EstadoCargada  = "cargada"
	EstadoError    = "error"

	eventoCargar = "cargar"
	eventoExito  = "exito"
	eventoFalla  = "falla"
)

func nuevaColeccion() *fsm.FSM {
	return fsm.NewFSM(
		EstadoInactiva,
		fsm.Events{
			{Name: eventoCargar, Src: []string{EstadoInactiva, EstadoCargada, EstadoError}, Dst: EstadoCargando},
			{Name: eventoExito, Src: []string{EstadoCargando}, Dst: EstadoCargada},
			{Name: eventoFalla, Src: []string{EstadoCargando}, Dst: EstadoError},
		},
		fsm.Callbacks{},
	)
}

type Sincronizador struct {
	ctx  identity.Contexto
	pas  Pasarela
	rend Renderizador
	conf Confirmador

	alumnos     *fsm.FSM
	preceptores *fsm.FSM
	asistencias *fsm.FSM

	// Última vista buena; ante una carga fallida no se limpia nada
	alumnosCargados     []models.Alumno
	preceptoresCargados []models.Preceptor

	// Registro con edición en vuelo (0 = ninguno)
	edicionAlumno    uint
	edicionPreceptor uint
}

func Nuevo(ctx identity.Contexto, pas Pasarela, rend Renderizador, conf Confirmador) *Sincronizador {
	return &Sincronizador{
		ctx:         ctx,
		pas:         pas,
		rend:        rend,
		conf:        conf,
		alumnos:     nuevaColeccion(),
		preceptores: nuevaColeccion(),
		asistencias: nuevaColeccion(),
	}
}

// ResolverContexto arma la identidad completa de la sesión: rol desde el
// fragmento visible ("Bienvenido juan (Preceptor)") y, para preceptores,
// cursos a cargo desde la colección de preceptores. Si esa consulta falla
// los cursos quedan sin resolver y el filtrado no aplica.
func ResolverContexto(fragmento string, pas Pasarela) (identity.Contexto, error) {
	rol, ok := identity.ResolverRol(fragmento)
	if !ok {
		return identity.Contexto{}, errors.New("no hay sesión iniciada")
	}
	ctx := identity.Contexto{Usuario: identity.ResolverUsuario(fragmento), Rol: rol}
	if rol == identity.RolPreceptor {
		preceptores, err := pas.ListarPreceptores()
		if err != nil {
			return ctx, err
		}
		ctx.Cursos = identity.ResolverCursos(ctx.Usuario, preceptores)
	}
	return ctx, nil
}

// Iniciar corre la secuencia de arranque de la página: alumnos siempre,
// asistencias para el preceptor, preceptores para el admin.
func (s *Sincronizador) Iniciar(cctx context.Context) error {
	err := s.CargarAlumnos(cctx)
	if permissions.PuedeVerAsistencias(s.ctx) {
		s.CargarAsistencias(cctx)
	}
	if permissions.PuedeGestionarPreceptores(s.ctx) {
		s.CargarPreceptores(cctx)
	}
	return err
}

func (s *Sincronizador) Contexto() identity.Contexto { return s.ctx }

func (s *Sincronizador) EstadoAlumnos() string     { return s.alumnos.Current() }
func (s *Sincronizador) EstadoPreceptores() string { return s.preceptores.Current() }
func (s *Sincronizador) EstadoAsistencias() string { return s.asistencias.Current() }

// AlumnoEnEdicion devuelve el id del alumno cuyo formulario está abierto.
func (s *Sincronizador) AlumnoEnEdicion() uint { return s.edicionAlumno }

// ----- Alumnos -----

func (s *Sincronizador) CargarAlumnos(cctx context.Context) error {
	// No hay lock de envío: una recarga solapada simplemente vuelve a pasar
	// por cargando, por eso el error de transición se ignora.
	_ = s.alumnos.Event(cctx, eventoCargar)

	lista, err := s.pas.ListarAlumnos()
	if err != nil {
		_ = s.alumnos.Event(cctx, eventoFalla)
		log.Printf("[panel] error al cargar alumnos: %v", err)
		s.rend.Avisar("Error al cargar alumnos: " + err.Error())
		return err
	}
	_ = s.alumnos.Event(cctx, eventoExito)
	s.alumnosCargados = lista

	visibles := scope.FiltrarAlumnos(s.ctx, lista)
	s.rend.MostrarAlumnos(visibles, func(a models.Alumno) []permissions.Accion {
		return permissions.AccionesAlumno(s.ctx, a)
	})
	return nil
}

// payloadAlumno arma el cuerpo con el subconjunto de campos del rol; lo que
// la matriz no habilita no viaja.
func (s *Sincronizador) payloadAlumno(f FormularioAlumno) gateway.Datos {
	todo := gateway.Datos{
		"nombre":           f.Nombre,
		"apellido":         f.Apellido,
		"curso_anio":       f.CursoAnio,
		"fecha_nacimiento": f.FechaNacimiento,
		"orientacion":      nil,
	}
	if f.Orientacion != "" {
		todo["orientacion"] = f.Orientacion
	}
	datos := gateway.Datos{}
	for _, campo := range permissions.CamposAlumno(s.ctx) {
		datos[campo] = todo[campo]
	}
	return datos
}

type FormularioAlumno struct {
	ID              uint // 0 = alta
	Nombre          string
	Apellido        string
	FechaNacimiento string
	CursoAnio       string
	Orientacion     string
}

// GuardarAlumno decide alta o edición según venga id. El alta por un rol
// que no sea admin se rechaza acá mismo, sin tocar la red. Si el servidor
// rechaza, el mensaje se muestra tal cual y la vista no cambia.
func (s *Sincronizador) GuardarAlumno(cctx context.Context, f FormularioAlumno) error {
	datos := s.payloadAlumno(f)

	var err error
	if f.ID != 0 {
		if a, ok := s.alumnoCargado(f.ID); ok && !permissions.PuedeEditarAlumno(s.ctx, a) {
			return s.denegar("No tienes permiso para editar este alumno.")
		}
		_, err = s.pas.ActualizarAlumno(f.ID, datos)
	} else {
		if !permissions.PuedeCrearAlumno(s.ctx) {
			return s.denegar("No tienes permiso para crear alumnos.")
		}
		_, err = s.pas.CrearAlumno(datos)
	}
	if err != nil {
		s.rend.Avisar("Error al guardar alumno: " + err.Error())
		return err
	}

	s.edicionAlumno = 0
	s.rend.Avisar("Alumno guardado exitosamente")
	return s.CargarAlumnos(cctx)
}

// EdicionAlumno es la proyección del registro al formulario: qué valores
// precargar y qué campos quedan habilitados para el rol. No llama al
// servidor.
type EdicionAlumno struct {
	Formulario        FormularioAlumno
	CamposHabilitados []string
}

func (s *Sincronizador) PrepararEdicionAlumno(a models.Alumno) EdicionAlumno {
	s.edicionAlumno = a.ID
	f := FormularioAlumno{ID: a.ID, Nombre: a.Nombre, Apellido: a.Apellido}
	switch s.ctx.Rol {
	case identity.RolPreceptor:
		// El curso queda deshabilitado: el preceptor no lo toca
		if a.FechaNacimiento != nil {
			f.FechaNacimiento = *a.FechaNacimiento
		}
		if a.Orientacion != nil {
			f.Orientacion = *a.Orientacion
		}
	case identity.RolAdmin:
		f.CursoAnio = a.CursoAnio
	}
	return EdicionAlumno{Formulario: f, CamposHabilitados: permissions.CamposAlumno(s.ctx)}
}

func (s *Sincronizador) EliminarAlumno(cctx context.Context, id uint) error {
	if !permissions.PuedeEliminarAlumno(s.ctx) {
		return s.denegar("No tienes permiso para eliminar alumnos.")
	}
	if !s.conf.Confirmar("¿Estás seguro de que quieres eliminar este alumno?") {
		return nil
	}
	if err := s.pas.EliminarAlumno(id); err != nil {
		s.rend.Avisar("Error al eliminar alumno: " + err.Error())
		return err
	}
	s.rend.Avisar("Alumno eliminado exitosamente")
	return s.CargarAlumnos(cctx)
}

func (s *Sincronizador) alumnoCargado(id uint) (models.Alumno, bool) {
	for _, a := range s.alumnosCargados {
		if a.ID == id {
			return a, true
		}
	}
	return models.Alumno{}, false
}

// ----- Preceptores -----

func (s *Sincronizador) CargarPreceptores(cctx context.Context) error {
	if !permissions.PuedeGestionarPreceptores(s.ctx) {
		return nil
	}
	_ = s.preceptores.Event(cctx, eventoCargar)

	lista, err := s.pas.ListarPreceptores()
	if err != nil {
		_ = s.preceptores.Event(cctx, eventoFalla)
		log.Printf("[panel] error al cargar preceptores: %v", err)
		s.rend.Avisar("Error al cargar preceptores: " + err.Error())
		return err
	}
	_ = s.preceptores.Event(cctx, eventoExito)
	s.preceptoresCargados = lista
	s.rend.MostrarPreceptores(lista)
	return nil
}

type FormularioPreceptor struct {
	ID           uint // 0 = alta
	Username     string
	Password     string
	CursosACargo string
}

type EdicionPreceptor struct {
	Formulario        FormularioPreceptor
	CamposHabilitados []string
}

// GuardarPreceptor: el alta manda username/password/cursos; la edición manda
// únicamente cursos_a_cargo (username y password inmutables una vez creada
// la cuenta).
func (s *Sincronizador) GuardarPreceptor(cctx context.Context, f FormularioPreceptor) error {
	if !permissions.PuedeGestionarPreceptores(s.ctx) {
		return s.denegar("No tienes permiso para gestionar preceptores.")
	}

	todo := gateway.Datos{
		"username":       f.Username,
		"password":       f.Password,
		"cursos_a_cargo": f.CursosACargo,
	}
	datos := gateway.Datos{}
	for _, campo := range permissions.CamposPreceptor(f.ID != 0) {
		datos[campo] = todo[campo]
	}

	var err error
	if f.ID != 0 {
		_, err = s.pas.ActualizarPreceptor(f.ID, datos)
	} else {
		_, err = s.pas.CrearPreceptor(datos)
	}
	if err != nil {
		s.rend.Avisar("Error al guardar preceptor: " + err.Error())
		return err
	}

	s.edicionPreceptor = 0
	s.rend.Avisar("Preceptor guardado exitosamente")
	return s.CargarPreceptores(cctx)
}

// La password nunca se precarga; username y password quedan deshabilitados.
func (s *Sincronizador) PrepararEdicionPreceptor(p models.Preceptor) EdicionPreceptor {
	s.edicionPreceptor = p.ID
	f := FormularioPreceptor{ID: p.ID, Username: p.Username}
	if p.CursosACargo != nil {
		f.CursosACargo = *p.CursosACargo
	}
	return EdicionPreceptor{Formulario: f, CamposHabilitados: permissions.CamposPreceptor(true)}
}

func (s *Sincronizador) EliminarPreceptor(cctx context.Context, id uint) error {
	if !permissions.PuedeGestionarPreceptores(s.ctx) {
		return s.denegar("No tienes permiso para eliminar preceptores.")
	}
	if !s.conf.Confirmar("¿Estás seguro de que quieres eliminar este preceptor?") {
		return nil
	}
	if err := s.pas.EliminarPreceptor(id); err != nil {
		s.rend.Avisar("Error al eliminar preceptor: " + err.Error())
		return err
	}
	s.rend.Avisar("Preceptor eliminado exitosamente")
	return s.CargarPreceptores(cctx)
}

// ----- Asistencias -----

func (s *Sincronizador) CargarAsistencias(cctx context.Context) error {
	if !permissions.PuedeVerAsistencias(s.ctx) {
		return nil
	}
	_ = s.asistencias.Event(cctx, eventoCargar)

	lista, err := s.pas.ListarAsistencias()
	if err != nil {
		_ = s.asistencias.Event(cctx, eventoFalla)
		log.Printf("[panel] error al cargar asistencias: %v", err)
		s.rend.Avisar("Error al cargar asistencias: " + err.Error())
		return err
	}
	_ = s.asistencias.Event(cctx, eventoExito)
	s.rend.MostrarAsistencias(lista)
	return nil
}

// ----- Reconocimiento facial -----

// Disparos al subsistema externo: compuerta de confirmación, llamada única,
// y el acuse del servidor se muestra tal cual. No se espera ni se sondea la
// finalización del trabajo.

func (s *Sincronizador) CapturarRostros(alumnoID uint) error {
	if !permissions.PuedeCapturarRostros(s.ctx) {
		return s.denegar("No tienes permiso para capturar rostros.")
	}
	if !s.conf.Confirmar(fmt.Sprintf("¿Iniciar captura de rostros para el alumno ID %d?", alumnoID)) {
		return nil
	}
	mensaje, err := s.pas.CapturarRostros(alumnoID)
	if err != nil {
		s.rend.Avisar("Error al iniciar captura de rostros: " + err.Error())
		return err
	}
	s.rend.Avisar(mensaje)
	return nil
}

func (s *Sincronizador) EntrenarReconocedor() error {
	if !s.conf.Confirmar("¿Deseas entrenar el reconocedor facial? Esto puede tomar un tiempo.") {
		return nil
	}
	mensaje, err := s.pas.EntrenarReconocedor()
	if err != nil {
		s.rend.Avisar("Error al entrenar reconocedor: " + err.Error())
		return err
	}
	s.rend.Avisar(mensaje)
	return nil
}

func (s *Sincronizador) IniciarReconocimiento() error {
	if !s.conf.Confirmar("¿Deseas iniciar el reconocimiento facial en tiempo real? Se abrirá la cámara.") {
		return nil
	}
	mensaje, err := s.pas.IniciarReconocimiento()
	if err != nil {
		s.rend.Avisar("Error al iniciar reconocimiento: " + err.Error())
		return err
	}
	s.rend.Avisar(mensaje)
	return nil
}

// denegar corta el flujo sin llamada de red y avisa con el mismo mensaje.
func (s *Sincronizador) denegar(mensaje string) error {
	falla := gateway.PermisoDenegado(mensaje)
	s.rend.Avisar(falla.Mensaje)
	return falla
}
