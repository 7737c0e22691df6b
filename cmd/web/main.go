// cmd/web/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/LuisEduardoPedra/analisePonto/internal/api"
	"github.com/LuisEduardoPedra/analisePonto/internal/api/handlers"
	"github.com/LuisEduardoPedra/analisePonto/internal/api/responses"
	"github.com/LuisEduardoPedra/analisePonto/internal/config"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/auth"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/blitz"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/leitor"
)

// initFirestoreClient usa o app do Firebase para o banco padrão do projeto e
// o cliente do Firestore direto para bancos nomeados.
func initFirestoreClient(ctx context.Context, cfg config.FirestoreConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.Credenciais != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Credenciais))
	}

	if cfg.Database == "" || cfg.Database == firestore.DefaultDatabaseID {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
		if err != nil {
			return nil, err
		}
		return app.Firestore(ctx)
	}
	return firestore.NewClientWithDatabase(ctx, cfg.ProjectID, cfg.Database, opts...)
}

func main() {
	cfgFile := flag.String("config", "", "arquivo de configuração (padrão: ./config.yaml)")
	flag.Parse()

	// .env é opcional; variáveis já exportadas têm prioridade.
	_ = godotenv.Load()

	manager, err := config.NewManager(*cfgFile)
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}
	cfg := manager.Get()

	logger, err := responses.InitLogger(cfg.Log.Nivel, cfg.Log.Formato)
	if err != nil {
		log.Fatalf("Erro ao iniciar logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("JWT_SECRET não configurado")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	firestoreClient, err := initFirestoreClient(ctx, cfg.Firestore)
	if err != nil {
		logger.Fatal("Erro ao inicializar cliente Firestore",
			zap.String("projeto", cfg.Firestore.ProjectID),
			zap.String("banco", cfg.Firestore.Database),
			zap.Error(err))
	}
	defer firestoreClient.Close()
	logger.Info("Conectado ao Firestore",
		zap.String("projeto", cfg.Firestore.ProjectID),
		zap.String("banco", cfg.Firestore.Database))

	blitzService := blitz.NewService(leitor.NewLeitor(), cfg.OpcoesBlitz())
	authService := auth.NewService(
		auth.NewRepositorioFirestore(firestoreClient, cfg.Auth.ColecaoUsuarios),
		auth.Opcoes{
			JWTSecret: []byte(cfg.Auth.JWTSecret),
			Expiracao: time.Duration(cfg.Auth.ExpiracaoHoras) * time.Hour,
		},
	)

	// Vocabulários e limites do processamento mudam sem reiniciar.
	manager.OnChange(func(novo *config.Config) {
		blitzService.AtualizarOpcoes(novo.OpcoesBlitz())
	})
	if manager.Arquivo() != "" {
		manager.WatchConfig()
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(
		api.RouterConfig{
			JWTSecret:         []byte(cfg.Auth.JWTSecret),
			Permissao:         cfg.Auth.Permissao,
			OrigensPermitidas: cfg.Servidor.OrigensPermitidas,
			Logger:            logger,
		},
		handlers.NewAuthHandler(authService),
		handlers.NewBlitzHandler(blitzService, cfg.Servidor.LimiteUploadMB<<20),
	)
	router.MaxMultipartMemory = cfg.Servidor.LimiteUploadMB << 20

	srv := &http.Server{
		Addr:              ":" + cfg.Servidor.Porta,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("🚀 Servidor iniciado", zap.String("porta", cfg.Servidor.Porta))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Falha ao iniciar o servidor", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Encerrando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Erro ao encerrar servidor", zap.Error(err))
	}
}
