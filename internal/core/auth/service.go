// internal/core/auth/service.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/iterator"
)

var (
	ErrCredenciaisInvalidas = errors.New("usuário ou senha inválidos")
	ErrUsuarioNaoEncontrado = errors.New("usuário não encontrado")
)

type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// User representa a estrutura de um usuário no Firestore.
type User struct {
	Username     string   `firestore:"username"`
	PasswordHash string   `firestore:"passwordHash"`
	Roles        []string `firestore:"roles"`
}

// Repositorio busca usuários pelo username.
type Repositorio interface {
	BuscarUsuario(ctx context.Context, username string) (*User, error)
}

type repositorioFirestore struct {
	db      *firestore.Client
	colecao string
}

// NewRepositorioFirestore lê os usuários da coleção informada.
func NewRepositorioFirestore(db *firestore.Client, colecao string) Repositorio {
	if colecao == "" {
		colecao = "users"
	}
	return &repositorioFirestore{db: db, colecao: colecao}
}

func (r *repositorioFirestore) BuscarUsuario(ctx context.Context, username string) (*User, error) {
	query := r.db.Collection(r.colecao).Where("username", "==", username).Limit(1).Documents(ctx)
	defer query.Stop()

	doc, err := query.Next()
	if err == iterator.Done {
		return nil, ErrUsuarioNaoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar o banco de dados: %w", err)
	}

	var user User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("erro ao ler dados do usuário: %w", err)
	}
	return &user, nil
}

type Opcoes struct {
	JWTSecret []byte
	Expiracao time.Duration
}

type service struct {
	repo Repositorio
	op   Opcoes
	now  func() time.Time
}

func NewService(repo Repositorio, op Opcoes) Service {
	if op.Expiracao <= 0 {
		op.Expiracao = 24 * time.Hour
	}
	return &service{repo: repo, op: op, now: time.Now}
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.BuscarUsuario(ctx, username)
	if errors.Is(err, ErrUsuarioNaoEncontrado) {
		zap.L().Info("login recusado: usuário inexistente", zap.String("username", username))
		return "", ErrCredenciaisInvalidas
	}
	if err != nil {
		zap.L().Error("erro ao buscar usuário", zap.String("username", username), zap.Error(err))
		return "", errors.New("erro ao consultar o banco de dados")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		zap.L().Info("login recusado: senha incorreta", zap.String("username", username))
		return "", ErrCredenciaisInvalidas
	}

	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"roles":    user.Roles,
		"exp":      s.now().Add(s.op.Expiracao).Unix(),
	})

	tokenString, err := claims.SignedString(s.op.JWTSecret)
	if err != nil {
		zap.L().Error("erro ao assinar token", zap.Error(err))
		return "", errors.New("erro ao gerar token de acesso")
	}

	zap.L().Info("login realizado", zap.String("username", user.Username), zap.Strings("roles", user.Roles))
	return tokenString, nil
}
