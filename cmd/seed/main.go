// seed aplica las migraciones SQL y los datos de demostración contra la base
// configurada (DATABASE_URL o variables DB_*).
//
// Uso: go run ./cmd/seed [ruta/migraciones]
// Por defecto usa internal/infrastructure/postgres/migrations.
// Los scripts se ejecutan en orden lexicográfico, cada uno en su transacción.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jhoicas/Despacho-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Despacho-api/pkg/config"
)

func main() {
	dir := filepath.Join("internal", "infrastructure", "postgres", "migrations")
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer directorio de migraciones: %v\n", err)
		os.Exit(1)
	}
	var scripts []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			scripts = append(scripts, e.Name())
		}
	}
	sort.Strings(scripts)
	if len(scripts) == 0 {
		fmt.Fprintf(os.Stderr, "Sin scripts .sql en %s\n", dir)
		os.Exit(1)
	}

	for _, name := range scripts {
		sql, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer %s: %v\n", name, err)
			os.Exit(1)
		}
		tx, err := pool.Begin(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir transacción: %v\n", err)
			os.Exit(1)
		}
		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			_ = tx.Rollback(ctx)
			fmt.Fprintf(os.Stderr, "Ejecutar %s: %v\n", name, err)
			os.Exit(1)
		}
		if err := tx.Commit(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Commit de %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("Aplicado %s\n", name)
	}

	fmt.Printf("Listo: %d scripts aplicados sobre %s\n", len(scripts), cfg.DB.DBName)
}
