package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"lifeguard/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationsSource = "file://migrations/postgres"

type Action string

const (
	ActionUp     Action = "up"
	ActionDown   Action = "down"
	ActionStepUp Action = "step-up"
	ActionDrop   Action = "drop"
)

var actions = map[Action]struct {
	run  func(*migrate.Migrate) error
	done string
}{
	ActionUp:     {run: (*migrate.Migrate).Up, done: "Database migrations completed successfully"},
	ActionDown:   {run: func(m *migrate.Migrate) error { return m.Steps(-1) }, done: "Database migration rolled back one step"},
	ActionStepUp: {run: func(m *migrate.Migrate) error { return m.Steps(1) }, done: "Database migrated one step"},
	ActionDrop:   {run: (*migrate.Migrate).Down, done: "Database migrations rolled back completely"},
}

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// ConnectionURL escapes credentials so passwords with reserved characters survive.
func ConnectionURL(config *config.Config) string {
	write := config.DB.Postgres.Write

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)

	if config.DB.Postgres.MigrationTable != "" {
		query.Set("x-migrations-table", config.DB.Postgres.MigrationTable)
	}

	return (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     "/" + getDBName(config, write.Name),
		RawQuery: query.Encode(),
	}).String()
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(migrationsSource, ConnectionURL(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action Action) error {
	step, ok := actions[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := step.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg(step.done)

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
