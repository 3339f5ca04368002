package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jeronimo114/comcer2/internal/application/dto"
	"github.com/jeronimo114/comcer2/internal/application/lote"
)

// Locals keys para la sesión del lote y la sesión de Fiber.
const (
	LocalLoteSession  = "lote_session"
	LocalFiberSession = "fiber_session"

	localRegistry = "lote_registry"
	sessionIDKey  = "sid"
	flashKey      = "flash"
)

// SessionMiddleware asocia cada navegador a su sesión de lote. El uuid de la sesión viaja en
// la cookie de Fiber; la sesión de Fiber se guarda al final de la petición para conservar
// el id y los mensajes flash. Solo OpenSession registra sesiones nuevas: las rutas que solo
// leen estado no ocupan memoria.
func SessionMiddleware(store *session.Store, registry *lote.SessionRegistry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fs, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SESSION", Message: "no se pudo abrir la sesión"})
		}
		c.Locals(LocalFiberSession, fs)
		c.Locals(localRegistry, registry)
		if id, _ := fs.Get(sessionIDKey).(string); id != "" {
			if sess, ok := registry.Get(id); ok {
				c.Locals(LocalLoteSession, sess)
			}
		}

		nextErr := c.Next()
		if fs.Fresh() && len(fs.Keys()) == 0 {
			return nextErr
		}
		if err := fs.Save(); err != nil && nextErr == nil {
			return err
		}
		return nextErr
	}
}

// GetSession devuelve la sesión del lote (después de SessionMiddleware). Un navegador sin
// sesión registrada recibe una sesión vacía en idle que no se guarda.
func GetSession(c *fiber.Ctx) *lote.Session {
	if s, ok := c.Locals(LocalLoteSession).(*lote.Session); ok {
		return s
	}
	return lote.NewSession()
}

// OpenSession devuelve la sesión del lote y, si el navegador no tiene una, la registra y
// guarda su id en la cookie.
func OpenSession(c *fiber.Ctx) *lote.Session {
	if s, ok := c.Locals(LocalLoteSession).(*lote.Session); ok {
		return s
	}
	registry, ok := c.Locals(localRegistry).(*lote.SessionRegistry)
	if !ok {
		return lote.NewSession()
	}
	sess := registry.GetOrCreate("")
	if fs, ok := c.Locals(LocalFiberSession).(*session.Session); ok {
		fs.Set(sessionIDKey, sess.ID)
	}
	c.Locals(LocalLoteSession, sess)
	return sess
}

// SetFlash deja un mensaje para la siguiente página.
func SetFlash(c *fiber.Ctx, msg string) {
	if fs, ok := c.Locals(LocalFiberSession).(*session.Session); ok {
		fs.Set(flashKey, msg)
	}
}

// PopFlash devuelve y borra el mensaje pendiente.
func PopFlash(c *fiber.Ctx) string {
	fs, ok := c.Locals(LocalFiberSession).(*session.Session)
	if !ok {
		return ""
	}
	msg, _ := fs.Get(flashKey).(string)
	if msg != "" {
		fs.Delete(flashKey)
	}
	return msg
}
