package lote

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeronimo114/comcer2/internal/domain"
	"github.com/jeronimo114/comcer2/internal/domain/entity"
)

// Stage paso del flujo de un lote dentro de una sesión.
type Stage string

const (
	StageIdle              Stage = "idle"
	StageLotSelected       Stage = "lot_selected"
	StageDataFetched       Stage = "data_fetched"
	StagePerClientApproved Stage = "per_client_approved"
	StageDownloadable      Stage = "downloadable"
)

var stageOrder = map[Stage]int{
	StageIdle:              0,
	StageLotSelected:       1,
	StageDataFetched:       2,
	StagePerClientApproved: 3,
	StageDownloadable:      4,
}

// Session contexto de trabajo de un navegador: el lote seleccionado y todo lo que se
// descargó o generó para él. Cada sesión tiene su propio lock; el flujo de un lote no
// comparte estado con otras sesiones.
type Session struct {
	ID string

	mu          sync.Mutex
	stage       Stage
	code        string
	loteID      string
	lote        *entity.Lote
	individuals []entity.Individual
	decomisos   *entity.Decomisos
	clients     []string
	files       []string
	reportPath  string
}

// Snapshot copia de solo lectura de la sesión.
type Snapshot struct {
	ID          string
	Stage       Stage
	Code        string
	LoteID      string
	Clients     []string
	Individuals int
	Decomisos   *entity.Decomisos
	Files       []string
	ReportPath  string
}

func newSession(id string) *Session {
	return &Session{ID: id, stage: StageIdle}
}

// Snapshot devuelve el estado actual.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:          s.ID,
		Stage:       s.stage,
		Code:        s.code,
		LoteID:      s.loteID,
		Clients:     append([]string(nil), s.clients...),
		Individuals: len(s.individuals),
		Decomisos:   s.decomisos,
		Files:       append([]string(nil), s.files...),
		ReportPath:  s.reportPath,
	}
}

// Stage paso actual.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Code lote seleccionado ("" si no hay).
func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// reset vuelve a idle y descarta todo lo del lote. Se llama con s.mu tomado.
func (s *Session) reset() {
	s.stage = StageIdle
	s.code, s.loteID = "", ""
	s.lote = nil
	s.individuals = nil
	s.decomisos = nil
	s.clients = nil
	s.files = nil
	s.reportPath = ""
}

// advance mueve la sesión hacia adelante. Se llama con s.mu tomado.
func (s *Session) advance(to Stage) error {
	if stageOrder[to] <= stageOrder[s.stage] {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStage, s.stage, to)
	}
	s.stage = to
	return nil
}

// NewSession sesión en idle fuera de cualquier registro (para leer el estado de un navegador
// que todavía no consultó un lote).
func NewSession() *Session {
	return newSession("")
}

// sweepInterval frecuencia máxima de la limpieza de sesiones vencidas.
const sweepInterval = time.Minute

// SessionRegistry sesiones en memoria indexadas por el uuid guardado en la cookie. Una sesión
// sin uso durante ttl se descarta en la siguiente limpieza; ttl <= 0 las conserva.
type SessionRegistry struct {
	mu        sync.Mutex
	sessions  map[string]*registered
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type registered struct {
	sess     *Session
	lastSeen time.Time
}

// NewSessionRegistry crea el registro vacío. ttl debería coincidir con la expiración de la
// cookie de sesión.
func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*registered),
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock reemplaza el reloj (tests).
func (r *SessionRegistry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// Get busca una sesión existente y renueva su vencimiento.
func (r *SessionRegistry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maybeSweep()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.sess, true
}

// GetOrCreate devuelve la sesión con ese id o una nueva con un uuid fresco si id está vacío
// o no existe.
func (r *SessionRegistry) GetOrCreate(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maybeSweep()
	if e, ok := r.sessions[id]; ok && id != "" {
		e.lastSeen = r.now()
		return e.sess
	}
	s := newSession(uuid.NewString())
	r.sessions[s.ID] = &registered{sess: s, lastSeen: r.now()}
	return s
}

// Delete olvida la sesión.
func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Sweep descarta las sesiones vencidas y devuelve cuántas eliminó. Una sesión ocupada (con
// una consulta o un proceso en curso) queda para la siguiente limpieza.
func (r *SessionRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweep(r.now())
}

// Len número de sesiones vivas.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// maybeSweep limpia como mucho una vez por sweepInterval. Se llama con r.mu tomado.
func (r *SessionRegistry) maybeSweep() {
	now := r.now()
	if r.ttl <= 0 || now.Sub(r.lastSweep) < min(r.ttl, sweepInterval) {
		return
	}
	r.sweep(now)
}

func (r *SessionRegistry) sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}
	r.lastSweep = now
	evicted := 0
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) < r.ttl {
			continue
		}
		if !e.sess.mu.TryLock() {
			continue
		}
		e.sess.mu.Unlock()
		delete(r.sessions, id)
		evicted++
	}
	return evicted
}
