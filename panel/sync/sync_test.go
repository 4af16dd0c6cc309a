package sync

import (
	"context"
	"strings"
	"testing"

	"github.com/tremendez-coder/Asistencia-gil-3/models"
	"github.com/tremendez-coder/Asistencia-gil-3/panel/gateway"
	"github.com/tremendez-coder/Asistencia-gil-3/panel/identity"
	"github.com/tremendez-coder/Asistencia-gil-3/panel/permissions"
)

// ----- dobles de prueba -----

type pasarelaFalsa struct {
	alumnos     []models.Alumno
	preceptores []models.Preceptor
	asistencias []models.Asistencia

	errListar error

	llamadas      []string
	ultimosDatos  gateway.Datos
	ultimoID      uint
}

func (p *pasarelaFalsa) ListarAlumnos() ([]models.Alumno, error) {
	p.llamadas = append(p.llamadas, "listar_alumnos")
	if p.errListar != nil {
		return nil, p.errListar
	}
	return p.alumnos, nil
}

func (p *pasarelaFalsa) CrearAlumno(datos gateway.Datos) (*models.Alumno, error) {
	p.llamadas = append(p.llamadas, "crear_alumno")
	p.ultimosDatos = datos
	return &models.Alumno{ID: 99}, nil
}

func (p *pasarelaFalsa) ActualizarAlumno(id uint, datos gateway.Datos) (*models.Alumno, error) {
	p.llamadas = append(p.llamadas, "actualizar_alumno")
	p.ultimoID = id
	p.ultimosDatos = datos
	return &models.Alumno{ID: id}, nil
}

func (p *pasarelaFalsa) EliminarAlumno(id uint) error {
	p.llamadas = append(p.llamadas, "eliminar_alumno")
	p.ultimoID = id
	return nil
}

func (p *pasarelaFalsa) ListarPreceptores() ([]models.Preceptor, error) {
	p.llamadas = append(p.llamadas, "listar_preceptores")
	return p.preceptores, nil
}

func (p *pasarelaFalsa) CrearPreceptor(datos gateway.Datos) (*models.Preceptor, error) {
	p.llamadas = append(p.llamadas, "crear_preceptor")
	p.ultimosDatos = datos
	return &models.Preceptor{ID: 99}, nil
}

func (p *pasarelaFalsa) ActualizarPreceptor(id uint, datos gateway.Datos) (*models.Preceptor, error) {
	p.llamadas = append(p.llamadas, "actualizar_preceptor")
	p.ultimoID = id
	p.ultimosDatos = datos
	return &models.Preceptor{ID: id}, nil
}

func (p *pasarelaFalsa) EliminarPreceptor(id uint) error {
	p.llamadas = append(p.llamadas, "eliminar_preceptor")
	p.ultimoID = id
	return nil
}

func (p *pasarelaFalsa) ListarAsistencias() ([]models.Asistencia, error) {
	p.llamadas = append(p.llamadas, "listar_asistencias")
	return p.asistencias, nil
}

func (p *pasarelaFalsa) CapturarRostros(alumnoID uint) (string, error) {
	p.llamadas = append(p.llamadas, "capturar")
	p.ultimoID = alumnoID
	return "Captura de rostros iniciada", nil
}

func (p *pasarelaFalsa) EntrenarReconocedor() (string, error) {
	p.llamadas = append(p.llamadas, "entrenar")
	return "Entrenamiento del reconocedor iniciado", nil
}

func (p *pasarelaFalsa) IniciarReconocimiento() (string, error) {
	p.llamadas = append(p.llamadas, "reconocer")
	return "Reconocimiento en tiempo real iniciado", nil
}

type renderFalso struct {
	filasAlumnos   []models.Alumno
	acciones       map[uint][]permissions.Accion
	rendersAlumnos int
	avisos         []string
}

func (r *renderFalso) MostrarAlumnos(alumnos []models.Alumno, acciones func(models.Alumno) []permissions.Accion) {
	r.rendersAlumnos++
	r.filasAlumnos = alumnos
	r.acciones = map[uint][]permissions.Accion{}
	for _, a := range alumnos {
		r.acciones[a.ID] = acciones(a)
	}
}

func (r *renderFalso) MostrarPreceptores(preceptores []models.Preceptor) {}

func (r *renderFalso) MostrarAsistencias(asistencias []models.Asistencia) {}

func (r *renderFalso) Avisar(mensaje string) { r.avisos = append(r.avisos, mensaje) }

type confirmaFalsa struct{ respuesta bool }

func (c *confirmaFalsa) Confirmar(string) bool { return c.respuesta }

var (
	ctxAdmin    = identity.Contexto{Usuario: "admin", Rol: identity.RolAdmin}
	ctxPrecep5A = identity.Contexto{Usuario: "ana", Rol: identity.RolPreceptor, Cursos: []string{"5A"}}
)

func armar(ctx identity.Contexto, pas *pasarelaFalsa) (*Sincronizador, *renderFalso, *confirmaFalsa) {
	rend := &renderFalso{}
	conf := &confirmaFalsa{respuesta: true}
	return Nuevo(ctx, pas, rend, conf), rend, conf
}

// ----- carga y render -----

func TestCargarAlumnosFiltraYRecorreLaMatriz(t *testing.T) {
	pas := &pasarelaFalsa{alumnos: []models.Alumno{
		{ID: 1, CursoAnio: "5A"},
		{ID: 2, CursoAnio: "5B"},
	}}
	s, rend, _ := armar(ctxPrecep5A, pas)

	if err := s.CargarAlumnos(context.Background()); err != nil {
		t.Fatalf("CargarAlumnos failed: %v", err)
	}
	if len(rend.filasAlumnos) != 1 || rend.filasAlumnos[0].ID != 1 {
		t.Errorf("filas == %v, want solo el alumno de 5A", rend.filasAlumnos)
	}
	// preceptor en alcance: solo editar, nada de capturar/eliminar
	if acc := rend.acciones[1]; len(acc) != 1 || acc[0] != permissions.AccionEditar {
		t.Errorf("acciones == %v, want [editar]", acc)
	}
	if s.EstadoAlumnos() != EstadoCargada {
		t.Errorf("estado == %q, want %q", s.EstadoAlumnos(), EstadoCargada)
	}
}

func TestCargaFallidaConservaLaVistaYAvisaUnaVez(t *testing.T) {
	pas := &pasarelaFalsa{alumnos: []models.Alumno{{ID: 1, CursoAnio: "5A"}}}
	s, rend, _ := armar(ctxAdmin, pas)

	if err := s.CargarAlumnos(context.Background()); err != nil {
		t.Fatalf("primera carga failed: %v", err)
	}
	filasPrevias := rend.filasAlumnos
	rendersPrevios := rend.rendersAlumnos

	pas.errListar = &gateway.Falla{Tipo: gateway.FallaRed, Mensaje: "Error en la comunicación con el servidor."}
	if err := s.CargarAlumnos(context.Background()); err == nil {
		t.Fatal("esperaba error de red")
	}

	if s.EstadoAlumnos() != EstadoError {
		t.Errorf("estado == %q, want %q", s.EstadoAlumnos(), EstadoError)
	}
	if rend.rendersAlumnos != rendersPrevios {
		t.Error("una carga fallida no tiene que volver a renderizar")
	}
	if len(rend.filasAlumnos) != len(filasPrevias) {
		t.Error("las filas previas tienen que quedar intactas")
	}
	if len(rend.avisos) != 1 {
		t.Errorf("avisos == %v, want exactamente uno", rend.avisos)
	}

	// y el error no impide recargar después
	pas.errListar = nil
	if err := s.CargarAlumnos(context.Background()); err != nil {
		t.Fatalf("recarga failed: %v", err)
	}
	if s.EstadoAlumnos() != EstadoCargada {
		t.Errorf("estado tras recarga == %q", s.EstadoAlumnos())
	}
}

// ----- guardar alumno -----

func TestAltaDeAlumnoPorAdmin(t *testing.T) {
	pas := &pasarelaFalsa{}
	s, _, _ := armar(ctxAdmin, pas)

	f := FormularioAlumno{Nombre: "Ana", Apellido: "Diaz", CursoAnio: "4B"}
	if err := s.GuardarAlumno(context.Background(), f); err != nil {
		t.Fatalf("GuardarAlumno failed: %v", err)
	}

	if len(pas.ultimosDatos) != 3 {
		t.Errorf("payload == %v, want exactamente nombre/apellido/curso_anio", pas.ultimosDatos)
	}
	for _, campo := range []string{"nombre", "apellido", "curso_anio"} {
		if _, ok := pas.ultimosDatos[campo]; !ok {
			t.Errorf("payload sin %q: %v", campo, pas.ultimosDatos)
		}
	}
	// éxito ⇒ recarga
	if pas.llamadas[len(pas.llamadas)-1] != "listar_alumnos" {
		t.Errorf("llamadas == %v, la última tiene que ser la recarga", pas.llamadas)
	}
}

func TestAltaPorPreceptorSeCortaSinRed(t *testing.T) {
	pas := &pasarelaFalsa{}
	s, rend, _ := armar(ctxPrecep5A, pas)

	err := s.GuardarAlumno(context.Background(), FormularioAlumno{Nombre: "Ana", Apellido: "Diaz"})
	if gateway.TipoDeFalla(err) != gateway.FallaPermiso {
		t.Fatalf("tipo == %q, want %q", gateway.TipoDeFalla(err), gateway.FallaPermiso)
	}
	if len(pas.llamadas) != 0 {
		t.Errorf("hubo llamadas de red: %v", pas.llamadas)
	}
	if len(rend.avisos) != 1 || !strings.Contains(rend.avisos[0], "permiso") {
		t.Errorf("avisos == %v", rend.avisos)
	}
}

func TestEdicionPorPreceptorNoTocaCurso(t *testing.T) {
	pas := &pasarelaFalsa{alumnos: []models.Alumno{{ID: 7, CursoAnio: "5A"}}}
	s, _, _ := armar(ctxPrecep5A, pas)
	s.CargarAlumnos(context.Background())

	f := FormularioAlumno{ID: 7, Nombre: "Ana", Apellido: "Diaz", FechaNacimiento: "2010-05-01", CursoAnio: "6C"}
	if err := s.GuardarAlumno(context.Background(), f); err != nil {
		t.Fatalf("GuardarAlumno failed: %v", err)
	}

	if pas.ultimoID != 7 {
		t.Errorf("id == %d, want 7", pas.ultimoID)
	}
	if _, ok := pas.ultimosDatos["curso_anio"]; ok {
		t.Errorf("el payload del preceptor llevó curso_anio: %v", pas.ultimosDatos)
	}
	if pas.ultimosDatos["fecha_nacimiento"] != "2010-05-01" {
		t.Errorf("fecha_nacimiento == %v", pas.ultimosDatos["fecha_nacimiento"])
	}
	if pas.ultimosDatos["orientacion"] != nil {
		t.Errorf("orientación vacía tiene que viajar como null, no %v", pas.ultimosDatos["orientacion"])
	}
}

func TestEdicionFueraDeAlcanceSeDeniega(t *testing.T) {
	pas := &pasarelaFalsa{alumnos: []models.Alumno{{ID: 2, CursoAnio: "5B"}}}
	s, _, _ := armar(ctxPrecep5A, pas)
	s.CargarAlumnos(context.Background())
	llamadasPrevias := len(pas.llamadas)

	err := s.GuardarAlumno(context.Background(), FormularioAlumno{ID: 2, Nombre: "Bruno", Apellido: "Paz"})
	if gateway.TipoDeFalla(err) != gateway.FallaPermiso {
		t.Fatalf("tipo == %q, want permiso", gateway.TipoDeFalla(err))
	}
	if len(pas.llamadas) != llamadasPrevias {
		t.Errorf("hubo llamadas de red: %v", pas.llamadas[llamadasPrevias:])
	}
}

func TestGuardarFallidoNoRecarga(t *testing.T) {
	pas := &pasarelaFalsa{}
	s, rend, _ := armar(ctxAdmin, pas)

	rechazo := &gateway.Falla{Tipo: gateway.FallaServidor, Mensaje: "el curso/año es obligatorio"}
	pasConError := &pasarelaConError{pasarelaFalsa: pas, errCrear: rechazo}
	s = Nuevo(ctxAdmin, pasConError, rend, &confirmaFalsa{respuesta: true})

	err := s.GuardarAlumno(context.Background(), FormularioAlumno{Nombre: "Ana", Apellido: "Diaz"})
	if err == nil {
		t.Fatal("esperaba rechazo del servidor")
	}
	for _, llamada := range pas.llamadas {
		if llamada == "listar_alumnos" {
			t.Error("un guardado fallido no tiene que recargar la colección")
		}
	}
	if len(rend.avisos) != 1 || !strings.Contains(rend.avisos[0], "el curso/año es obligatorio") {
		t.Errorf("avisos == %v, el mensaje del servidor va verbatim", rend.avisos)
	}
}

type pasarelaConError struct {
	*pasarelaFalsa
	errCrear error
}

func (p *pasarelaConError) CrearAlumno(datos gateway.Datos) (*models.Alumno, error) {
	return nil, p.errCrear
}

// ----- proyección de edición -----

func TestPrepararEdicionAlumno(t *testing.T) {
	fecha := "2010-05-01"
	a := models.Alumno{ID: 7, Nombre: "Ana", Apellido: "Diaz", CursoAnio: "5A", FechaNacimiento: &fecha}

	s, _, _ := armar(ctxPrecep5A, &pasarelaFalsa{})
	ed := s.PrepararEdicionAlumno(a)
	if ed.Formulario.FechaNacimiento != fecha {
		t.Errorf("fecha precargada == %q", ed.Formulario.FechaNacimiento)
	}
	for _, campo := range ed.CamposHabilitados {
		if campo == "curso_anio" {
			t.Error("curso_anio habilitado para el preceptor")
		}
	}
	if s.AlumnoEnEdicion() != 7 {
		t.Errorf("en edición == %d, want 7", s.AlumnoEnEdicion())
	}

	sAdmin, _, _ := armar(ctxAdmin, &pasarelaFalsa{})
	edAdmin := sAdmin.PrepararEdicionAlumno(a)
	if edAdmin.Formulario.CursoAnio != "5A" {
		t.Errorf("curso precargado para admin == %q", edAdmin.Formulario.CursoAnio)
	}
}

func TestPrepararEdicionPreceptorBloqueaCredenciales(t *testing.T) {
	cursos := "5A, 5B"
	p := models.Preceptor{ID: 3, Username: "ana", CursosACargo: &cursos}

	s, _, _ := armar(ctxAdmin, &pasarelaFalsa{})
	ed := s.PrepararEdicionPreceptor(p)

	if ed.Formulario.Password != "" {
		t.Error("la password nunca se precarga")
	}
	if len(ed.CamposHabilitados) != 1 || ed.CamposHabilitados[0] != "cursos_a_cargo" {
		t.Errorf("campos habilitados == %v, want solo cursos_a_cargo", ed.CamposHabilitados)
	}
}

// ----- guardar preceptor -----

func TestEdicionDePreceptorSoloMandaCursos(t *testing.T) {
	pas := &pasarelaFalsa{}
	s, _, _ := armar(ctxAdmin, pas)

	f := FormularioPreceptor{ID: 3, Username: "ana", Password: "secreta", CursosACargo: "5A,5B"}
	if err := s.GuardarPreceptor(context.Background(), f); err != nil {
		t.Fatalf("GuardarPreceptor failed: %v", err)
	}

	if len(pas.ultimosDatos) != 1 {
		t.Errorf("payload == %v, want solo cursos_a_cargo", pas.ultimosDatos)
	}
	if pas.ultimosDatos["cursos_a_cargo"] != "5A,5B" {
		t.Errorf("cursos_a_cargo == %v", pas.ultimosDatos["cursos_a_cargo"])
	}
}

func TestAltaDePreceptorMandaCredenciales(t *testing.T) {
	pas := &pasarelaFalsa{}
	s, _, _ := armar(ctxAdmin, pas)

	f := FormularioPreceptor{Username: "ana", Password: "secreta", CursosACargo: "5A"}
	if err := s.GuardarPreceptor(context.Background(), f); err != nil {
		t.Fatalf("GuardarPreceptor failed: %v", err)
	}
	if len(pas.ultimosDatos) != 3 {
		t.Errorf("payload de alta == %v", pas.ultimosDatos)
	}
}

// ----- eliminar -----

func TestEliminarDeclinadoNoLlama(t *testing.T) {
	pas := &pasarelaFalsa{}
	rend := &renderFalso{}
	s := Nuevo(ctxAdmin, pas, rend, &confirmaFalsa{respuesta: false})

	if err := s.EliminarAlumno(context.Background(), 5); err != nil {
		t.Fatalf("declinar no es un error: %v", err)
	}
	if len(pas.llamadas) != 0 {
		t.Errorf("hubo llamadas: %v", pas.llamadas)
	}
	if len(rend.avisos) != 0 {
		t.Errorf("hubo avisos: %v", rend.avisos)
	}
}

func TestEliminarConfirmadoRecarga(t *testing.T) {
	pas := &pasarelaFalsa{}
	s, _, _ := armar(ctxAdmin, pas)

	if err := s.EliminarAlumno(context.Background(), 5); err != nil {
		t.Fatalf("EliminarAlumno failed: %v", err)
	}
	if pas.ultimoID != 5 {
		t.Errorf("id == %d", pas.ultimoID)
	}
	if pas.llamadas[len(pas.llamadas)-1] != "listar_alumnos" {
		t.Errorf("llamadas == %v", pas.llamadas)
	}
}

func TestEliminarAlumnoPorPreceptorSeDeniega(t *testing.T) {
	pas := &pasarelaFalsa{}
	s, _, _ := armar(ctxPrecep5A, pas)

	err := s.EliminarAlumno(context.Background(), 5)
	if gateway.TipoDeFalla(err) != gateway.FallaPermiso {
		t.Fatalf("tipo == %q, want permiso", gateway.TipoDeFalla(err))
	}
	if len(pas.llamadas) != 0 {
		t.Errorf("hubo llamadas: %v", pas.llamadas)
	}
}

// ----- reconocimiento -----

func TestCapturarRostrosConConfirmacion(t *testing.T) {
	pas := &pasarelaFalsa{}
	s, rend, _ := armar(ctxAdmin, pas)

	if err := s.CapturarRostros(3); err != nil {
		t.Fatalf("CapturarRostros failed: %v", err)
	}
	if pas.ultimoID != 3 {
		t.Errorf("id == %d", pas.ultimoID)
	}
	if len(rend.avisos) != 1 || rend.avisos[0] != "Captura de rostros iniciada" {
		t.Errorf("avisos == %v, el acuse va tal cual", rend.avisos)
	}
}

func TestCapturarRostrosPorPreceptorSeDeniega(t *testing.T) {
	pas := &pasarelaFalsa{}
	s, _, _ := armar(ctxPrecep5A, pas)

	if gateway.TipoDeFalla(s.CapturarRostros(3)) != gateway.FallaPermiso {
		t.Fatal("capturar rostros es solo admin")
	}
	if len(pas.llamadas) != 0 {
		t.Errorf("hubo llamadas: %v", pas.llamadas)
	}
}

func TestEntrenarDeclinadoNoLlama(t *testing.T) {
	pas := &pasarelaFalsa{}
	s := Nuevo(ctxAdmin, pas, &renderFalso{}, &confirmaFalsa{respuesta: false})

	if err := s.EntrenarReconocedor(); err != nil {
		t.Fatalf("declinar no es un error: %v", err)
	}
	if len(pas.llamadas) != 0 {
		t.Errorf("hubo llamadas: %v", pas.llamadas)
	}
}

// ----- arranque y contexto -----

func TestIniciarPorRol(t *testing.T) {
	cases := []struct {
		nombre   string
		ctx      identity.Contexto
		esperado []string
	}{
		{"preceptor", ctxPrecep5A, []string{"listar_alumnos", "listar_asistencias"}},
		{"admin", ctxAdmin, []string{"listar_alumnos", "listar_preceptores"}},
	}

	for _, c := range cases {
		pas := &pasarelaFalsa{}
		s, _, _ := armar(c.ctx, pas)
		s.Iniciar(context.Background())
		if len(pas.llamadas) != len(c.esperado) {
			t.Errorf("%s: llamadas == %v, want %v", c.nombre, pas.llamadas, c.esperado)
			continue
		}
		for i := range c.esperado {
			if pas.llamadas[i] != c.esperado[i] {
				t.Errorf("%s: llamadas == %v, want %v", c.nombre, pas.llamadas, c.esperado)
			}
		}
	}
}

func TestResolverContexto(t *testing.T) {
	cursos := "5A"
	pas := &pasarelaFalsa{preceptores: []models.Preceptor{{Username: "ana", CursosACargo: &cursos}}}

	ctx, err := ResolverContexto("Bienvenido ana (Preceptor)", pas)
	if err != nil {
		t.Fatalf("ResolverContexto failed: %v", err)
	}
	if ctx.Rol != identity.RolPreceptor || ctx.Usuario != "ana" {
		t.Errorf("ctx == %+v", ctx)
	}
	if len(ctx.Cursos) != 1 || ctx.Cursos[0] != "5A" {
		t.Errorf("cursos == %v", ctx.Cursos)
	}

	// admin no consulta preceptores
	pas2 := &pasarelaFalsa{}
	if _, err := ResolverContexto("Bienvenido root (Admin)", pas2); err != nil {
		t.Fatalf("admin failed: %v", err)
	}
	if len(pas2.llamadas) != 0 {
		t.Errorf("admin hizo llamadas: %v", pas2.llamadas)
	}

	if _, err := ResolverContexto("sin marcador", pas2); err == nil {
		t.Error("sin marcador de rol tiene que fallar")
	}
}

