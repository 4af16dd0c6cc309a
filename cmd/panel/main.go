// Panel de administración por terminal: misma lógica que la página, con la
// consola como render y stdin como compuerta de confirmación.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tremendez-coder/Asistencia-gil-3/panel/gateway"
	"github.com/tremendez-coder/Asistencia-gil-3/panel/identity"
	"github.com/tremendez-coder/Asistencia-gil-3/panel/sync"
)

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	base := flag.String("base", env("PANEL_API_BASE", "http://localhost:8080"), "URL base del backend")
	fragmento := flag.String("identidad", env("PANEL_IDENTIDAD", ""), `fragmento de sesión, ej. "Bienvenido juan (Preceptor)"`)
	flag.Parse()

	rol, ok := identity.ResolverRol(*fragmento)
	if !ok {
		log.Fatal("no hay sesión: falta el marcador de rol en -identidad")
	}
	usuario := identity.ResolverUsuario(*fragmento)

	// Primer cliente con la identidad mínima, solo para resolver los cursos
	// del preceptor; después se arma el contexto definitivo.
	parcial := gateway.Nuevo(*base, identity.Contexto{Usuario: usuario, Rol: rol})
	ctx, err := sync.ResolverContexto(*fragmento, parcial)
	if err != nil {
		log.Printf("[panel] no se pudieron resolver los cursos: %v", err)
	}

	cliente := gateway.Nuevo(*base, ctx)
	entrada := bufio.NewScanner(os.Stdin)
	s := sync.Nuevo(ctx, cliente, &consola{}, &confirmaStdin{entrada: entrada})

	cctx := context.Background()
	s.Iniciar(cctx)

	fmt.Printf("\nSesión: %s (%s). Comandos: alumnos, preceptores, asistencias, guardar, eliminar <id>, guardar-preceptor, eliminar-preceptor <id>, capturar <id>, entrenar, reconocer, salir\n", ctx.Usuario, ctx.Rol)
	for {
		fmt.Print("> ")
		if !entrada.Scan() {
			return
		}
		partes := strings.Fields(entrada.Text())
		if len(partes) == 0 {
			continue
		}
		switch partes[0] {
		case "alumnos":
			s.CargarAlumnos(cctx)
		case "preceptores":
			s.CargarPreceptores(cctx)
		case "asistencias":
			s.CargarAsistencias(cctx)
		case "guardar":
			s.GuardarAlumno(cctx, leerFormularioAlumno(entrada, ctx))
		case "eliminar":
			if id, ok := leerID(partes); ok {
				s.EliminarAlumno(cctx, id)
			}
		case "guardar-preceptor":
			s.GuardarPreceptor(cctx, leerFormularioPreceptor(entrada))
		case "eliminar-preceptor":
			if id, ok := leerID(partes); ok {
				s.EliminarPreceptor(cctx, id)
			}
		case "capturar":
			if id, ok := leerID(partes); ok {
				s.CapturarRostros(id)
			}
		case "entrenar":
			s.EntrenarReconocedor()
		case "reconocer":
			s.IniciarReconocimiento()
		case "salir":
			return
		default:
			fmt.Println("comando desconocido")
		}
	}
}

func leerID(partes []string) (uint, bool) {
	if len(partes) < 2 {
		fmt.Println("falta el id")
		return 0, false
	}
	id, err := strconv.ParseUint(partes[1], 10, 32)
	if err != nil {
		fmt.Println("id inválido")
		return 0, false
	}
	return uint(id), true
}

func leerFormularioPreceptor(entrada *bufio.Scanner) sync.FormularioPreceptor {
	leer := func(etiqueta string) string {
		fmt.Printf("%s: ", etiqueta)
		if !entrada.Scan() {
			return ""
		}
		return strings.TrimSpace(entrada.Text())
	}

	var f sync.FormularioPreceptor
	if id := leer("id (vacío = alta)"); id != "" {
		if n, err := strconv.ParseUint(id, 10, 32); err == nil {
			f.ID = uint(n)
		}
	}
	if f.ID == 0 {
		// En cuentas existentes solo se reasignan cursos
		f.Username = leer("username")
		f.Password = leer("contraseña")
	}
	f.CursosACargo = leer("cursos a cargo (ej. 5A,5B)")
	return f
}

func leerFormularioAlumno(entrada *bufio.Scanner, ctx identity.Contexto) sync.FormularioAlumno {
	leer := func(etiqueta string) string {
		fmt.Printf("%s: ", etiqueta)
		if !entrada.Scan() {
			return ""
		}
		return strings.TrimSpace(entrada.Text())
	}

	var f sync.FormularioAlumno
	if id := leer("id (vacío = alta)"); id != "" {
		if n, err := strconv.ParseUint(id, 10, 32); err == nil {
			f.ID = uint(n)
		}
	}
	f.Nombre = leer("nombre")
	f.Apellido = leer("apellido")
	// Cada rol carga solo sus campos; el resto ni se pregunta
	switch ctx.Rol {
	case identity.RolAdmin:
		f.CursoAnio = leer("curso/año")
	case identity.RolPreceptor:
		f.FechaNacimiento = leer("fecha de nacimiento (YYYY-MM-DD)")
		f.Orientacion = leer("orientación")
	}
	return f
}
