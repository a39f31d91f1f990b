package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/khula/internal/client/client"
	"github.com/dmitrijs2005/khula/internal/client/config"
	"github.com/dmitrijs2005/khula/internal/client/mockdata"
	"github.com/dmitrijs2005/khula/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/khula/internal/client/services"
	"github.com/dmitrijs2005/khula/internal/client/snapshot"
	"github.com/dmitrijs2005/khula/internal/common"
	"github.com/dmitrijs2005/khula/internal/cryptox"
	"github.com/dmitrijs2005/khula/internal/logging"
)

// App is the CLI application: services plus the terminal they talk to.
type App struct {
	config      *config.Config
	log         logging.Logger
	storage     *client.Storage
	authService services.AuthService
	appData     services.AppDataService
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp is the composition root. It opens storage, restores the last
// snapshot (or seeds the demo data) and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(c.LogBackend, c.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := client.StorageOptions{Backend: c.StorageBackend, RedisAddr: c.RedisAddr}
	if opts.Backend == "" || opts.Backend == client.BackendSQLite {
		if opts.DSN, err = c.DSN(); err != nil {
			return nil, fmt.Errorf("error preparing data dir: %w", err)
		}
	}

	storage, err := client.OpenStorage(ctx, opts)
	if err != nil {
		log.Error(ctx, "error initializing storage", "backend", c.StorageBackend, "error", err)
		return nil, err
	}

	secret := tokenSecret(ctx, c.SecretKey, storage.Metadata, log)
	store := mockdata.New(cryptox.NewTokens(secret, c.TokenTTL))

	var snap *snapshot.Bridge
	if c.SnapshotEnabled {
		snap = snapshot.NewBridge(store, storage.Metadata, log)
	}
	// a failed restore is logged by the bridge; start from fixtures instead
	restored, _ := snap.Restore(ctx)
	if !restored && c.Seed {
		if err := seedStore(store, c.HashPasswords); err != nil {
			_ = storage.Close()
			return nil, err
		}
	}

	as := services.NewAuthService(store, storage.Metadata, client.NewOffline(), snap, log, services.AuthOptions{
		LoginDelay:    c.LoginDelay,
		RegisterDelay: c.RegisterDelay,
		ProfileDelay:  c.ProfileDelay,
		HashPasswords: c.HashPasswords,
	})
	as.Initialize(ctx)

	return &App{
		config:      c,
		log:         log,
		storage:     storage,
		authService: as,
		appData:     services.NewAppDataService(store, snap, log),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// tokenSecret returns the configured signing key. Without one, a key is
// generated once and kept in storage so sessions outlive a restart. When
// storage fails, nil is returned and the issuer picks a key for this run.
func tokenSecret(ctx context.Context, configured string, repo metadata.Repository, log logging.Logger) []byte {
	if configured != "" {
		return []byte(configured)
	}

	v, err := repo.Get(ctx, common.StorageKeyTokenSecret)
	if err != nil {
		log.Warn(ctx, "failed to load token secret", "error", err)
		return nil
	}
	if len(v) > 0 {
		return v
	}

	key, err := common.MakeRandHexString(32)
	if err != nil {
		log.Warn(ctx, "failed to generate token secret", "error", err)
		return nil
	}
	if err := repo.Set(ctx, common.StorageKeyTokenSecret, []byte(key)); err != nil {
		log.Warn(ctx, "failed to save token secret", "error", err)
	}
	return []byte(key)
}

// seedStore loads the demo fixtures, hashing their passwords when the store
// keeps hashes.
func seedStore(store *mockdata.Store, hash bool) error {
	st := mockdata.Fixtures()
	if hash {
		for i := range st.Users {
			h, err := cryptox.HashPassword(st.Users[i].Password, 0)
			if err != nil {
				return err
			}
			st.Users[i].Password = h
		}
	}
	store.Import(st)
	return nil
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	fmt.Fprintln(a.out, "Welcome to Khula CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases storage and flushes buffered log entries.
func (a *App) Close(ctx context.Context) {
	if err := a.storage.Close(); err != nil {
		a.log.Warn(ctx, "error closing storage", "error", err)
	}
	// stderr cannot be synced on some platforms; nothing is lost then
	_ = logging.Sync(a.log)
}

func (a *App) isLoggedIn() bool {
	return a.appData.IsUserLoggedIn()
}

func (a *App) getStatus() string {
	p, ok := a.appData.CurrentProfile()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s)", p.Email)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
