package auth_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/application/auth"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/facturacion-api/pkg/jwt"
)

// fakes en memoria
type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *memUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByClientID(clientID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ClientID == clientID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

type memClientRepo struct {
	clients map[string]*entity.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: make(map[string]*entity.Client)}
}

func (r *memClientRepo) Create(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *memClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r *memClientRepo) Update(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *memClientRepo) Delete(id string) error {
	delete(r.clients, id)
	return nil
}

const authTestSecret = "auth-test-secret"

func newAuthFixture() (*memUserRepo, *memClientRepo, *auth.AuthUseCase) {
	users := newMemUserRepo()
	clients := newMemClientRepo()
	uc := auth.NewAuthUseCase(users, clients, auth.JWTConfig{
		Secret:     authTestSecret,
		ExpMinutes: 60,
		Issuer:     "facturacion-api-test",
	})
	return users, clients, uc
}

func TestRegisterUser_HasheaPasswordYAsignaRolUser(t *testing.T) {
	users, _, uc := newAuthFixture()

	resp, err := uc.RegisterUser(dto.RegisterRequest{Username: "maria", Password: "secreta"})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleUser, resp.Role,
		"el registro público solo crea cuentas user")
	stored := users.users[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleUser, stored.Role,
		"la cuenta persistida jamás nace admin por esta vía")
	assert.NotEqual(t, "secreta", stored.PasswordHash,
		"la contraseña nunca se persiste en claro")
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterUser_UsernameEnUso_RetornaError(t *testing.T) {
	_, _, uc := newAuthFixture()

	_, err := uc.RegisterUser(dto.RegisterRequest{Username: "maria", Password: "a"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Username: "maria", Password: "b"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegisterUser_ClienteInexistente_RetornaNotFound(t *testing.T) {
	_, _, uc := newAuthFixture()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Username: "maria", Password: "a", ClientID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}


func TestLogin_CredencialesValidas_EmiteTokenConClaims(t *testing.T) {
	_, clients, uc := newAuthFixture()

	clientID := uuid.NewString()
	clients.clients[clientID] = &entity.Client{ID: clientID, Name: "Acme"}

	registered, err := uc.RegisterUser(dto.RegisterRequest{
		Username: "maria", Password: "secreta", ClientID: clientID,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Username: "maria", Password: "secreta"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, role, tokenClientID, err := pkgjwt.Parse(authTestSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, entity.RoleUser, role)
	assert.Equal(t, clientID, tokenClientID,
		"el token lleva el cliente enlazado para acotar lecturas")
}

func TestLogin_PasswordIncorrecta_RetornaUnauthorized(t *testing.T) {
	_, _, uc := newAuthFixture()

	_, err := uc.RegisterUser(dto.RegisterRequest{Username: "maria", Password: "secreta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "maria", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente_RetornaUserNotFound(t *testing.T) {
	_, _, uc := newAuthFixture()
	_, err := uc.Login(dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
