package recognition

import (
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// El reconocimiento facial corre como procesos externos (captura, entrenamiento,
// reconocimiento en vivo). El launcher solo los dispara y confirma que el
// trabajo fue aceptado; nunca espera a que terminen.

var ErrJobEnCurso = errors.New("ya hay un trabajo de ese tipo en curso")

type Launcher struct {
	captureCmd   string
	trainCmd     string
	recognizeCmd string

	// Guarda de doble lanzamiento: una entrada por trabajo vivo, con TTL por
	// si el proceso muere sin avisar.
	jobs *cache.Cache
}

func NewLauncher(captureCmd, trainCmd, recognizeCmd string) *Launcher {
	return &Launcher{
		captureCmd:   captureCmd,
		trainCmd:     trainCmd,
		recognizeCmd: recognizeCmd,
		jobs:         cache.New(10*time.Minute, time.Minute),
	}
}

// Capture dispara la captura de rostros para un alumno.
func (l *Launcher) Capture(alumnoID uint, nombre string) error {
	clave := fmt.Sprintf("capture:%d", alumnoID)
	return l.lanzar(clave, l.captureCmd, fmt.Sprint(alumnoID), nombre)
}

// Train dispara el reentrenamiento del modelo sobre todas las capturas.
func (l *Launcher) Train() error {
	return l.lanzar("train", l.trainCmd)
}

// Recognize dispara una sesión de reconocimiento en vivo.
func (l *Launcher) Recognize() error {
	return l.lanzar("recognize", l.recognizeCmd)
}

func (l *Launcher) lanzar(clave, comando string, args ...string) error {
	partes := strings.Fields(comando)
	if len(partes) == 0 {
		return errors.New("comando de reconocimiento no configurado")
	}
	if err := l.jobs.Add(clave, struct{}{}, cache.DefaultExpiration); err != nil {
		return ErrJobEnCurso
	}

	cmd := exec.Command(partes[0], append(partes[1:], args...)...)
	if err := cmd.Start(); err != nil {
		l.jobs.Delete(clave)
		return fmt.Errorf("no se pudo lanzar %s: %w", partes[0], err)
	}
	log.Printf("[recognition] trabajo %s aceptado (pid %d)", clave, cmd.Process.Pid)

	go func() {
		err := cmd.Wait()
		l.jobs.Delete(clave)
		if err != nil {
			log.Printf("[recognition] trabajo %s terminó con error: %v", clave, err)
			return
		}
		log.Printf("[recognition] trabajo %s terminado", clave)
	}()
	return nil
}
