// seed carga datos de demostración: usuarios, clientes, productos y un par
// de facturas iniciales (una de ellas con campos ausentes, para ver al
// reconciliador repararla).
//
// Uso: go run ./cmd/seed
// Es idempotente: si el usuario admin ya existe, no hace nada.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturacion-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)

	if existing, err := userRepo.FindByUsername("admin"); err != nil {
		fmt.Fprintf(os.Stderr, "verificar admin: %v\n", err)
		os.Exit(1)
	} else if existing != nil {
		fmt.Println("datos de demostración ya cargados, nada que hacer")
		return
	}

	now := time.Now()

	client := &entity.Client{
		ID:        uuid.NewString(),
		Name:      "Comercializadora Andina SAS",
		Email:     "contacto@andina.example.com",
		Address:   "Cra 7 # 45-12, Bogotá",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := clientRepo.Create(client); err != nil {
		fail("crear cliente", err)
	}

	adminHash := mustHash("admin123")
	userHash := mustHash("user123")
	users := []*entity.User{
		{ID: uuid.NewString(), Username: "admin", PasswordHash: adminHash, Role: entity.RoleAdmin, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Username: "andina", PasswordHash: userHash, Role: entity.RoleUser, ClientID: client.ID, CreatedAt: now, UpdatedAt: now},
	}
	for _, u := range users {
		if err := userRepo.Create(u); err != nil {
			fail("crear usuario "+u.Username, err)
		}
	}

	products := []*entity.Product{
		{ID: uuid.NewString(), Name: "Teclado mecánico", Category: "Periféricos", Price: decimal.NewFromFloat(189900), Stock: 25, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "Monitor 27\"", Category: "Pantallas", Price: decimal.NewFromFloat(1099000), Stock: 10, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), Name: "Cable HDMI 2m", Category: "Cables", Price: decimal.NewFromFloat(29900), Stock: 100, CreatedAt: now, UpdatedAt: now},
	}
	for _, p := range products {
		if err := productRepo.Create(p); err != nil {
			fail("crear producto "+p.Name, err)
		}
	}

	// Factura completa: una línea con precio capturado.
	issue := now
	inv := &entity.Invoice{
		ID:        uuid.NewString(),
		ClientID:  client.ID,
		Amount:    products[0].Price.Mul(decimal.NewFromInt(2)),
		IssueDate: &issue,
		Status:    entity.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := invoiceRepo.Create(inv); err != nil {
		fail("crear factura", err)
	}
	line := &entity.InvoiceLine{
		ID:        uuid.NewString(),
		InvoiceID: inv.ID,
		ProductID: products[0].ID,
		Quantity:  2,
		UnitPrice: products[0].Price,
		Subtotal:  products[0].Price.Mul(decimal.NewFromInt(2)),
	}
	if err := invoiceRepo.CreateLine(line); err != nil {
		fail("crear línea de factura", err)
	}

	// Factura "legada" sin fecha ni estado: el reconciliador la repara.
	legacy := &entity.Invoice{
		ID:        uuid.NewString(),
		ClientID:  client.ID,
		Amount:    products[2].Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := invoiceRepo.Create(legacy); err != nil {
		fail("crear factura legada", err)
	}

	fmt.Printf("demo cargada: 1 cliente, %d usuarios, %d productos, 2 facturas\n", len(users), len(products))
	fmt.Println("credenciales: admin/admin123 (admin), andina/user123 (user)")
}

func mustHash(plain string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		fail("hashear contraseña", err)
	}
	return string(h)
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}
