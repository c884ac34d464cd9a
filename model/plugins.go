package model

import "github.com/jmoiron/sqlx"

type (
	// PluginService persists which plugins are enabled globally.
	// Enable and Disable upsert, so unknown names are created on the fly.
	PluginService interface {
		CreateTx(tx *sqlx.Tx, pluginName string) error
		Disable(pluginName string) error
		Enable(pluginName string) error
		GetAllEnabled() ([]string, error)
	}

	// Plugin is a row of the plugins table
	Plugin struct {
		Name    string `db:"name"`
		Enabled bool   `db:"enabled"`
	}
)
