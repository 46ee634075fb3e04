// seed crea (o actualiza) el usuario administrador inicial de la plataforma.
// Los admin no se autorregistran: este comando es la única vía de alta.
//
// Uso: go run ./cmd/seed -email admin@empleos.local -password <clave> [-name "Admin"]
// La conexión a la DB se toma de las mismas variables de entorno que la API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/empleos-api/internal/application/auth"
	"github.com/jhoicas/empleos-api/internal/domain/entity"
	"github.com/jhoicas/empleos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/empleos-api/pkg/config"
)

func main() {
	email := flag.String("email", "", "email del admin")
	password := flag.String("password", "", "password del admin (mínimo 8 caracteres)")
	name := flag.String("name", "Administrador", "nombre visible")
	phone := flag.String("phone", "", "teléfono (opcional)")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "se requiere -email y -password de al menos 8 caracteres")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}

	existing, err := userRepo.GetByEmail(ctx, *email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "buscar usuario: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	if existing != nil {
		existing.PasswordHash = hash
		existing.Role = entity.RoleAdmin
		existing.Name = *name
		existing.UpdatedAt = now
		if err := userRepo.Update(ctx, existing); err != nil {
			fmt.Fprintf(os.Stderr, "actualizar admin: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("admin actualizado: %s\n", *email)
		return
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        *email,
		PasswordHash: hash,
		Name:         *name,
		Phone:        *phone,
		Role:         entity.RoleAdmin,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		fmt.Fprintf(os.Stderr, "crear admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("admin creado: %s\n", *email)
}
