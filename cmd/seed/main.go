package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/omspos/oms-api/internal/authz"
	"github.com/omspos/oms-api/internal/config"
	"github.com/omspos/oms-api/internal/pkg/database"
	"github.com/omspos/oms-api/internal/pkg/password"
)

// Seeds the development database: schema, permission catalog, the five
// fixed roles, one demo operator with an outlet and ten terminals, and the
// admin/manager/cashier accounts. Safe to run repeatedly.
func main() {
	cfg := config.Load()

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.ClosePostgres(db)

	if err := createSchema(db); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Schema ready")

	if err := seedCatalog(db); err != nil {
		log.Fatalf("Failed to seed permission catalog: %v", err)
	}
	log.Println("Permission catalog seeded")

	if err := seedDemoData(db); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}
	log.Println("Demo data seeded")
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS permissions (
		id UUID PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS roles (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS role_permissions (
		role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
		permission_id UUID NOT NULL REFERENCES permissions(id) ON DELETE CASCADE,
		PRIMARY KEY (role_id, permission_id)
	)`,
	`CREATE TABLE IF NOT EXISTS operators (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		wallet_balance BIGINT NOT NULL DEFAULT 0 CHECK (wallet_balance >= 0),
		contact_person TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS outlets (
		id UUID PRIMARY KEY,
		operator_id UUID NOT NULL REFERENCES operators(id),
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		bcf_balance BIGINT NOT NULL DEFAULT 0 CHECK (bcf_balance >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role_id UUID REFERENCES roles(id),
		operator_id UUID REFERENCES operators(id),
		outlet_id UUID REFERENCES outlets(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id UUID PRIMARY KEY,
		phone TEXT NOT NULL UNIQUE,
		nickname TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS wallets (
		id UUID PRIMARY KEY,
		player_id UUID NOT NULL REFERENCES players(id),
		outlet_id UUID NOT NULL REFERENCES outlets(id),
		balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (player_id, outlet_id)
	)`,
	`CREATE TABLE IF NOT EXISTS terminals (
		id UUID PRIMARY KEY,
		outlet_id UUID NOT NULL REFERENCES outlets(id),
		code TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL DEFAULT 'Idle',
		pairing_key TEXT NOT NULL,
		bound_player_id UUID REFERENCES players(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		outlet_id UUID NOT NULL REFERENCES outlets(id),
		terminal_id UUID REFERENCES terminals(id),
		player_id UUID NOT NULL REFERENCES players(id),
		staff_id UUID NOT NULL REFERENCES users(id),
		type TEXT NOT NULL,
		amount BIGINT NOT NULL CHECK (amount >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS system_config (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ip_allowlist (
		id UUID PRIMARY KEY,
		address TEXT NOT NULL UNIQUE,
		label TEXT NOT NULL DEFAULT '',
		outlet_id UUID REFERENCES outlets(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_outlet ON transactions(outlet_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_terminals_outlet ON terminals(outlet_id)`,
	`CREATE INDEX IF NOT EXISTS idx_users_operator ON users(operator_id)`,
	`CREATE INDEX IF NOT EXISTS idx_users_outlet ON users(outlet_id)`,
}

func createSchema(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// rolePermissions maps the fixed roles to their default grants.
var rolePermissions = map[authz.Role][]authz.Permission{
	authz.RoleAdmin: {
		authz.PermDashboardView, authz.PermPOSOperate, authz.PermFinanceView,
		authz.PermBCFManage, authz.PermSettingsManage, authz.PermUserCreate,
	},
	authz.RoleOperator: {
		authz.PermDashboardView, authz.PermFinanceView, authz.PermBCFManage,
		authz.PermSettingsManage, authz.PermUserCreate,
	},
	authz.RoleAreaManager: {
		authz.PermDashboardView, authz.PermFinanceView,
	},
	authz.RoleStoreManager: {
		authz.PermDashboardView, authz.PermPOSOperate, authz.PermFinanceView,
		authz.PermUserCreate,
	},
	authz.RoleCashier: {
		authz.PermDashboardView, authz.PermPOSOperate,
	},
}

func seedCatalog(db *sqlx.DB) error {
	for code, description := range authz.Catalog() {
		_, err := db.Exec(
			`INSERT INTO permissions (id, code, description)
			 VALUES ($1, $2, $3) ON CONFLICT (code) DO NOTHING`,
			uuid.New(), string(code), description)
		if err != nil {
			return err
		}
	}

	for _, role := range authz.KnownRoles() {
		_, err := db.Exec(
			`INSERT INTO roles (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			uuid.New(), string(role))
		if err != nil {
			return err
		}

		for _, perm := range rolePermissions[role] {
			_, err := db.Exec(
				`INSERT INTO role_permissions (role_id, permission_id)
				 SELECT r.id, p.id FROM roles r, permissions p
				 WHERE r.name = $1 AND p.code = $2
				 ON CONFLICT DO NOTHING`,
				string(role), string(perm))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func seedDemoData(db *sqlx.DB) error {
	operatorID := uuid.New()
	err := db.Get(&operatorID,
		`INSERT INTO operators (id, name, wallet_balance, contact_person, email)
		 VALUES ($1, 'MegaOperator', 1000000, 'Head Office', 'ops@megaoperator.example')
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		operatorID)
	if err != nil {
		return err
	}

	outletID := uuid.New()
	err = db.Get(&outletID,
		`INSERT INTO outlets (id, operator_id, name, address, bcf_balance)
		 SELECT $1, $2, 'Downtown Store', '1 Main Street', 50000
		 WHERE NOT EXISTS (SELECT 1 FROM outlets WHERE operator_id = $2 AND name = 'Downtown Store')
		 RETURNING id`,
		outletID, operatorID)
	if err != nil {
		// The outlet already exists; reuse it.
		err = db.Get(&outletID,
			`SELECT id FROM outlets WHERE operator_id = $1 AND name = 'Downtown Store'`, operatorID)
		if err != nil {
			return err
		}
	}

	for i := 1; i <= 10; i++ {
		code := terminalCode(i)
		_, err := db.Exec(
			`INSERT INTO terminals (id, outlet_id, code, status, pairing_key)
			 VALUES ($1, $2, $3, 'Idle', $4)
			 ON CONFLICT (code) DO NOTHING`,
			uuid.New(), outletID, code, pairingKey())
		if err != nil {
			return err
		}
	}

	accounts := []struct {
		username string
		plain    string
		role     authz.Role
		operator bool
		outlet   bool
	}{
		{"admin", "admin123", authz.RoleAdmin, false, false},
		{"manager", "1234", authz.RoleStoreManager, true, true},
		{"cashier", "1234", authz.RoleCashier, true, true},
	}
	for _, a := range accounts {
		hash, err := password.Hash(a.plain)
		if err != nil {
			return err
		}

		var opArg, outArg interface{}
		if a.operator {
			opArg = operatorID
		}
		if a.outlet {
			outArg = outletID
		}

		_, err = db.Exec(
			`INSERT INTO users (id, username, password_hash, role_id, operator_id, outlet_id)
			 SELECT $1, $2, $3, r.id, $5, $6 FROM roles r WHERE r.name = $4
			 ON CONFLICT (username) DO NOTHING`,
			uuid.New(), a.username, hash, string(a.role), opArg, outArg)
		if err != nil {
			return err
		}
	}

	_, err = db.Exec(
		`INSERT INTO ip_allowlist (id, address, label)
		 VALUES ($1, '127.0.0.1', 'localhost')
		 ON CONFLICT (address) DO NOTHING`,
		uuid.New())
	return err
}

func terminalCode(i int) string {
	return fmt.Sprintf("T-%02d", i)
}

func pairingKey() string {
	buf := make([]byte, 4)
	rand.Read(buf)
	return strings.ToUpper(hex.EncodeToString(buf))
}
