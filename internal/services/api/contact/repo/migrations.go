package repo

import "embed"

// Migrations holds the goose files for the contact schema, rooted at "migrations"
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations goose reads from
const MigrationsDir = "migrations"
