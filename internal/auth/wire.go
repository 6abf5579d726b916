package auth

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"

	"foodorder/internal/auth/repository"
	"foodorder/internal/config"
)

type Module struct {
	Controller   *Controller
	Authenticate func(http.Handler) http.Handler
}

func NewModule(db *sql.DB, welcomer Welcomer, cfg *config.Config, logger *zap.Logger) *Module {
	repo := repository.NewMySQLUserRepository(db)
	tokens := NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	svc := NewService(repo, tokens, welcomer, logger, cfg.Auth.BcryptCost)
	return &Module{
		Controller:   NewController(svc, logger),
		Authenticate: Authenticate(tokens, repo, logger),
	}
}
