package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-catalog-api/config"
	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	"github.com/oksasatya/go-catalog-api/internal/domain/repository"
	pginfra "github.com/oksasatya/go-catalog-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
)

// seed creates the admin account and the starter categories. Re-running it is harmless.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2, MinConns: 1, MaxConnLifetime: time.Minute}, logger)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	hash, err := helpers.HashPassword(cfg.SeedAdminPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	admin := &entity.User{Email: cfg.SeedAdminEmail, Password: hash, Role: entity.RoleAdmin}
	switch err := users.Create(ctx, admin); {
	case err == nil:
		helpers.LogInfo(logger, "seeded admin", logrus.Fields{"id": admin.ID, "email": admin.Email})
	case errors.Is(err, repository.ErrConflict):
		helpers.LogInfo(logger, "admin already exists", logrus.Fields{"email": admin.Email})
	default:
		log.Fatalf("failed to seed admin: %v", err)
	}

	categories := pginfra.NewCategoryRepository(pool)
	for _, name := range cfg.SeedCategoryNames() {
		c := &entity.Category{Name: name}
		switch err := categories.Create(ctx, c); {
		case err == nil:
			helpers.LogInfo(logger, "seeded category", logrus.Fields{"id": c.ID, "name": c.Name})
		case errors.Is(err, repository.ErrConflict):
			helpers.LogInfo(logger, "category already exists", logrus.Fields{"name": name})
		default:
			log.Fatalf("failed to seed category %q: %v", name, err)
		}
	}
}
