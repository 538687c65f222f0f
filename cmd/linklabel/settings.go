package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgallion1/linklabel/internal/linkfix"
	"github.com/dgallion1/linklabel/internal/settings"
)

// SettingsCmd groups the settings subcommands.
type SettingsCmd struct {
	Show  SettingsShowCmd  `cmd:"" default:"1" help:"Print the effective settings as JSON"`
	Set   SettingsSetCmd   `cmd:"" help:"Save new settings"`
	Reset SettingsResetCmd `cmd:"" help:"Delete stored settings so the defaults apply"`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(g *Global, root *CLI) error {
	store, closeStore, err := root.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	s, err := store.Load(context.Background())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(g.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

type SettingsSetCmd struct {
	Enable bool     `negatable:"" default:"true" help:"Enable labeling"`
	Text   []string `short:"t" sep:"none" help:"Generic link text (repeatable); an empty list restores the defaults"`
}

func (c *SettingsSetCmd) Run(g *Global, root *CLI) error {
	if root.DB == "" {
		return fmt.Errorf("settings set needs --db")
	}
	store, closeStore, err := root.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	s := settings.Settings{Enabled: c.Enable, GenericTexts: settings.Normalize(c.Text)}
	if err := store.Save(context.Background(), s); err != nil {
		return err
	}
	g.Logger.Info("settings saved", "db", root.DB, "enabled", s.Enabled, "generic_texts", len(s.GenericTexts))
	return nil
}

type SettingsResetCmd struct{}

func (c *SettingsResetCmd) Run(g *Global, root *CLI) error {
	if root.DB == "" {
		return fmt.Errorf("settings reset needs --db")
	}
	store, closeStore, err := root.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Delete(context.Background()); err != nil {
		return err
	}
	g.Logger.Info("settings reset", "db", root.DB)
	return nil
}

// openStore returns the SQLite store named by --db, or an in-memory store
// holding only the defaults.
func (c *CLI) openStore() (settings.Store, func(), error) {
	defaults, err := settings.LoadDefaultTexts(c.DefaultTexts)
	if err != nil {
		return nil, nil, err
	}
	if c.DB == "" {
		return settings.NewMemoryStore(defaults), func() {}, nil
	}
	store, err := settings.NewSQLiteStore(c.DB, defaults)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { store.Close() }, nil
}

// labelConfig loads the stored settings as a labeling snapshot.
func (c *CLI) labelConfig(ctx context.Context, g *Global) (linkfix.Config, error) {
	store, closeStore, err := c.openStore()
	if err != nil {
		return linkfix.Config{}, err
	}
	defer closeStore()

	s, err := store.Load(ctx)
	if err != nil {
		return linkfix.Config{}, err
	}
	g.Logger.Debug("settings loaded", "enabled", s.Enabled, "generic_texts", len(s.GenericTexts))
	return linkfix.ConfigFrom(s), nil
}
