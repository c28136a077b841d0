package app

import (
	"errors"
	"os"
	"strings"

	errorsUtils "github.com/Egor213/CallTrack/pkg/errors"

	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAttempts = 10
	defaultTimeout  = time.Second
)

// withSSLMode disables TLS unless the URL already chooses a mode.
func withSSLMode(pgUrl string) string {
	if strings.Contains(pgUrl, "sslmode=") {
		return pgUrl
	}
	if strings.Contains(pgUrl, "?") {
		return pgUrl + "&sslmode=disable"
	}
	return pgUrl + "?sslmode=disable"
}

func Migrate(pgUrl, migrationsPath string) {
	pgUrl = withSSLMode(pgUrl)
	log.WithField("path", migrationsPath).Info("Applying migrations")

	var (
		connAttempts = defaultAttempts
		err          error
		mgrt         *migrate.Migrate
	)

	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		log.Fatalf("migrations directory %q does not exist", migrationsPath)
	}

	for connAttempts > 0 {
		mgrt, err = migrate.New("file://"+migrationsPath, pgUrl)
		if err == nil {
			break
		}

		time.Sleep(defaultTimeout)
		log.Infof("Postgres trying to connect, attempts left: %d", connAttempts)
		connAttempts--
	}

	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer mgrt.Close()

	if err = mgrt.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("Migration no change")
		return
	}

	log.Info("Migration successful up")
}
