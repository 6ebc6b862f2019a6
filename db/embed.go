// Package db embeds the SQL schema applied at startup.
package db

import _ "embed"

// Schema holds the DDL for the coupons, orders, and api_keys tables. The
// statements are idempotent so every binary can apply them on boot.
//
//go:embed migrations/001_schema.sql
var Schema string
