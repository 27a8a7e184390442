// Package auth maneja la sesión de usuario: login contra la colección de
// usuarios del almacén, persistencia del usuario actual en la sesión local y
// predicados de rol. La comparación de credenciales es en texto plano contra el
// almacén de registros; el endurecimiento está explícitamente fuera de alcance.
package auth

import (
	"context"
	"sync"

	"github.com/AlexanderChic/abarroteria-192/internal/domain"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/repository"
	"github.com/AlexanderChic/abarroteria-192/pkg/logger"
)

// UserSource origen de los usuarios para el lookup de login (lo satisface el
// cliente de catálogo con su caché como respaldo).
type UserSource interface {
	Users() []entity.User
}

// Session sesión de autenticación. Una por sesión de navegación.
type Session struct {
	store   repository.RecordStore
	session repository.SessionStore
	users   UserSource
	log     *logger.Logger

	mu      sync.Mutex
	current *entity.User
}

// NewSession construye la sesión.
func NewSession(store repository.RecordStore, session repository.SessionStore, users UserSource, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{store: store, session: session, users: users, log: log}
}

// Login busca un usuario con username, password y tipo coincidentes. Intenta la
// colección remota primero y cae a la caché local si el almacén no responde.
// La contraseña se descarta antes de retener o persistir el usuario.
func (s *Session) Login(ctx context.Context, username, password, userType string) (entity.User, error) {
	var candidates []entity.User
	if err := s.store.List(ctx, repository.CollectionUsers, &candidates); err != nil {
		s.log.Warn().Err(err).Msg("usuarios remotos no disponibles, usando caché local")
		candidates = s.users.Users()
	}

	for _, u := range candidates {
		if u.Username == username && u.Password == password && u.Type == userType {
			clean := u.WithoutPassword()

			s.mu.Lock()
			s.current = &clean
			s.mu.Unlock()

			if err := s.session.Put(repository.SessionKeyCurrentUser, clean); err != nil {
				s.log.Warn().Err(err).Msg("no se pudo persistir el usuario de la sesión")
			}
			s.log.Info().Str("usuario", clean.Username).Msg("login exitoso")
			return clean, nil
		}
	}
	return entity.User{}, domain.ErrInvalidCredentials
}

// Logout olvida el usuario actual y borra la clave de sesión.
func (s *Session) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.session.Delete(repository.SessionKeyCurrentUser); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo limpiar el usuario de la sesión")
	}
}

// IsAuthenticated reporta si hay usuario activo, restaurándolo del
// almacenamiento de sesión si el proceso se reinició con la sesión viva.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return true
	}
	var saved entity.User
	if ok, err := s.session.Get(repository.SessionKeyCurrentUser, &saved); err == nil && ok {
		s.current = &saved
		return true
	}
	return false
}

// CurrentUser devuelve el usuario activo, si lo hay.
func (s *Session) CurrentUser() (entity.User, bool) {
	if !s.IsAuthenticated() {
		return entity.User{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.current, true
}

// IsAdmin reporta si el usuario activo es administrador.
func (s *Session) IsAdmin() bool { return s.isType(entity.UserTypeAdmin) }

// IsClient reporta si el usuario activo es cliente registrado.
func (s *Session) IsClient() bool { return s.isType(entity.UserTypeClient) }

// IsGuest reporta si el usuario activo es invitado.
func (s *Session) IsGuest() bool { return s.isType(entity.UserTypeGuest) }

func (s *Session) isType(t string) bool {
	u, ok := s.CurrentUser()
	return ok && u.Type == t
}
