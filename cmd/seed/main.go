// Comando seed: recarga el catálogo con los productos de ejemplo.
// Uso: go run ./cmd/seed   (usa las mismas variables de entorno que la API)
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Catalogo-api/internal/application/seed"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Catalogo-api/pkg/config"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if cfg.App.IsProduction() {
		return fmt.Errorf("no se permite en APP_ENV=production")
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return err
	}

	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool), postgres.NewTxRunner(pool), log)
	seedUC, err := seed.NewSeedUseCase(productUC, log)
	if err != nil {
		return err
	}
	out, err := seedUC.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
