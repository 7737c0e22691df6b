package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type repositorioMemoria map[string]*User

func (r repositorioMemoria) BuscarUsuario(_ context.Context, username string) (*User, error) {
	if u, ok := r[username]; ok {
		return u, nil
	}
	return nil, ErrUsuarioNaoEncontrado
}

type repositorioQuebrado struct{}

func (repositorioQuebrado) BuscarUsuario(context.Context, string) (*User, error) {
	return nil, errors.New("firestore fora do ar")
}

func novoRepositorio(t *testing.T) repositorioMemoria {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return repositorioMemoria{
		"ana": {Username: "ana", PasswordHash: string(hash), Roles: []string{"blitz"}},
	}
}

func TestLogin(t *testing.T) {
	secret := []byte("teste")
	s := NewService(novoRepositorio(t), Opcoes{JWTSecret: secret, Expiracao: time.Hour})

	tokenString, err := s.Login(context.Background(), "ana", "segredo")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) { return secret, nil })
	if err != nil || !token.Valid {
		t.Fatalf("token inválido: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["username"] != "ana" {
		t.Errorf("username: obteve %v", claims["username"])
	}
	roles, _ := claims["roles"].([]interface{})
	if len(roles) != 1 || roles[0] != "blitz" {
		t.Errorf("roles: obteve %v", claims["roles"])
	}
}

func TestLoginRecusado(t *testing.T) {
	s := NewService(novoRepositorio(t), Opcoes{JWTSecret: []byte("teste")})

	casos := []struct {
		nome, usuario, senha string
	}{
		{"senha errada", "ana", "errada"},
		{"usuário inexistente", "beto", "segredo"},
	}
	for _, tc := range casos {
		t.Run(tc.nome, func(t *testing.T) {
			if _, err := s.Login(context.Background(), tc.usuario, tc.senha); !errors.Is(err, ErrCredenciaisInvalidas) {
				t.Errorf("esperava ErrCredenciaisInvalidas, obteve %v", err)
			}
		})
	}
}

func TestLoginErroNoBanco(t *testing.T) {
	s := NewService(repositorioQuebrado{}, Opcoes{JWTSecret: []byte("teste")})
	_, err := s.Login(context.Background(), "ana", "segredo")
	if err == nil || errors.Is(err, ErrCredenciaisInvalidas) {
		t.Errorf("falha no banco não deveria parecer credencial inválida: %v", err)
	}
}
