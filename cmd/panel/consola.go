package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/tremendez-coder/Asistencia-gil-3/models"
	"github.com/tremendez-coder/Asistencia-gil-3/panel/permissions"
)

// consola es el render del panel sobre stdout.
type consola struct{}

func naSiVacio(v *string) string {
	if v == nil || *v == "" {
		return "N/A"
	}
	return *v
}

func (c *consola) MostrarAlumnos(alumnos []models.Alumno, acciones func(models.Alumno) []permissions.Accion) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tAPELLIDO\tNACIMIENTO\tCURSO\tORIENTACIÓN\tACCIONES")
	for _, a := range alumnos {
		var acc []string
		for _, x := range acciones(a) {
			acc = append(acc, string(x))
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Nombre, a.Apellido, naSiVacio(a.FechaNacimiento), a.CursoAnio,
			naSiVacio(a.Orientacion), strings.Join(acc, ","))
	}
	w.Flush()
}

func (c *consola) MostrarPreceptores(preceptores []models.Preceptor) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tROL\tCURSOS A CARGO")
	for _, p := range preceptores {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Username, p.Rol, naSiVacio(p.CursosACargo))
	}
	w.Flush()
}

func (c *consola) MostrarAsistencias(asistencias []models.Asistencia) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALUMNO\tFECHA\tESTADO")
	for _, a := range asistencias {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", a.ID, a.AlumnoID, a.Fecha, a.Estado)
	}
	w.Flush()
}

func (c *consola) Avisar(mensaje string) {
	fmt.Println("** " + mensaje)
}

// confirmaStdin pregunta por stdin antes de borrar o disparar trabajos.
type confirmaStdin struct {
	entrada *bufio.Scanner
}

func (cf *confirmaStdin) Confirmar(pregunta string) bool {
	fmt.Printf("%s [s/N] ", pregunta)
	if !cf.entrada.Scan() {
		return false
	}
	r := strings.ToLower(strings.TrimSpace(cf.entrada.Text()))
	return r == "s" || r == "si" || r == "sí"
}
