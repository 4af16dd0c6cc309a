// Package gateway es el cliente CRUD tipado contra el backend del panel.
// No guarda estado, no reintenta ni cachea: cada llamada es un viaje de ida
// y vuelta y toda falla vuelve como *Falla con su mensaje.
package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tremendez-coder/Asistencia-gil-3/models"
	"github.com/tremendez-coder/Asistencia-gil-3/panel/identity"
)

// Datos es el cuerpo de una mutación. Se arma por rol (los subconjuntos de
// campos de admin y preceptor son disjuntos), así que va como mapa y no
// como struct fija.
type Datos map[string]any

type Cliente struct {
	base string
	ctx  identity.Contexto
	http *http.Client
}

// Nuevo construye el cliente para una sesión. Sin timeout: una petición
// colgada queda pendiente, el panel no la cancela.
func Nuevo(base string, ctx identity.Contexto) *Cliente {
	return &Cliente{base: base, ctx: ctx, http: &http.Client{}}
}

func (g *Cliente) hacer(metodo, ruta string, cuerpo Datos, out any) error {
	var body io.Reader
	if cuerpo != nil {
		b, err := json.Marshal(cuerpo)
		if err != nil {
			return &Falla{Tipo: FallaRed, Mensaje: "no se pudo armar la petición", Causa: err}
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequest(metodo, g.base+ruta, body)
	if err != nil {
		return &Falla{Tipo: FallaRed, Mensaje: "no se pudo armar la petición", Causa: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Usuario", g.ctx.Usuario)
	req.Header.Set("X-Rol", string(g.ctx.Rol))

	resp, err := g.http.Do(req)
	if err != nil {
		return &Falla{Tipo: FallaRed, Mensaje: "Error en la comunicación con el servidor.", Causa: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		tipo := FallaServidor
		if resp.StatusCode == http.StatusNotFound {
			tipo = FallaNoEncontrado
		}
		return &Falla{Tipo: tipo, Mensaje: mensajeDeError(resp)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Falla{Tipo: FallaServidor, Mensaje: "respuesta ilegible del servidor", Causa: err}
		}
	}
	return nil
}

// El servidor siempre contesta errores como {"error": "..."}; ese mensaje se
// muestra tal cual. Si el cuerpo no trae nada usable queda el status.
func mensajeDeError(resp *http.Response) string {
	var cuerpo struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&cuerpo); err == nil && cuerpo.Error != "" {
		return cuerpo.Error
	}
	return fmt.Sprintf("el servidor respondió %s", resp.Status)
}

// ----- Alumnos -----

func (g *Cliente) ListarAlumnos() ([]models.Alumno, error) {
	var alumnos []models.Alumno
	if err := g.hacer(http.MethodGet, "/students", nil, &alumnos); err != nil {
		return nil, err
	}
	return alumnos, nil
}

func (g *Cliente) CrearAlumno(datos Datos) (*models.Alumno, error) {
	var a models.Alumno
	if err := g.hacer(http.MethodPost, "/students", datos, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (g *Cliente) ActualizarAlumno(id uint, datos Datos) (*models.Alumno, error) {
	var a models.Alumno
	if err := g.hacer(http.MethodPut, fmt.Sprintf("/students/%d", id), datos, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (g *Cliente) EliminarAlumno(id uint) error {
	return g.hacer(http.MethodDelete, fmt.Sprintf("/students/%d", id), nil, nil)
}

// ----- Preceptores -----

func (g *Cliente) ListarPreceptores() ([]models.Preceptor, error) {
	var preceptores []models.Preceptor
	if err := g.hacer(http.MethodGet, "/preceptors", nil, &preceptores); err != nil {
		return nil, err
	}
	return preceptores, nil
}

func (g *Cliente) CrearPreceptor(datos Datos) (*models.Preceptor, error) {
	var p models.Preceptor
	if err := g.hacer(http.MethodPost, "/preceptors", datos, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (g *Cliente) ActualizarPreceptor(id uint, datos Datos) (*models.Preceptor, error) {
	var p models.Preceptor
	if err := g.hacer(http.MethodPut, fmt.Sprintf("/preceptors/%d", id), datos, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (g *Cliente) EliminarPreceptor(id uint) error {
	return g.hacer(http.MethodDelete, fmt.Sprintf("/preceptors/%d", id), nil, nil)
}

// ----- Asistencias (solo lectura) -----

func (g *Cliente) ListarAsistencias() ([]models.Asistencia, error) {
	var asistencias []models.Asistencia
	if err := g.hacer(http.MethodGet, "/attendance", nil, &asistencias); err != nil {
		return nil, err
	}
	return asistencias, nil
}

// ----- Reconocimiento facial: disparar-y-confirmar -----

func (g *Cliente) disparar(ruta string) (string, error) {
	var ack struct {
		Mensaje string `json:"mensaje"`
	}
	if err := g.hacer(http.MethodPost, ruta, nil, &ack); err != nil {
		return "", err
	}
	return ack.Mensaje, nil
}

// CapturarRostros pide al subsistema externo que arranque la captura de
// enrolamiento para un alumno. Solo confirma aceptación, no finalización.
func (g *Cliente) CapturarRostros(alumnoID uint) (string, error) {
	return g.disparar(fmt.Sprintf("/students/%d/capture", alumnoID))
}

func (g *Cliente) EntrenarReconocedor() (string, error) {
	return g.disparar("/recognition/train")
}

func (g *Cliente) IniciarReconocimiento() (string, error) {
	return g.disparar("/recognition/start")
}
