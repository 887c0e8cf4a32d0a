// Package cli implements the mailslurper-settings command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mailslurper/settings-service/configs"
	"github.com/mailslurper/settings-service/datastore/gorm"
	"github.com/mailslurper/settings-service/settings"
	"github.com/mailslurper/settings-service/storage"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"golang.org/x/term"
)

// App holds the state shared by all commands. It is filled in before any
// command runs.
type App struct {
	Config    *configs.Config
	StoreType storage.StoreType
	Service   *settings.Service
	Out       io.Writer
	JSON      bool

	closers []func()
}

func (a *App) init(cfg *configs.Config, out io.Writer, jsonOutput bool) error {
	a.Config = cfg
	a.Out = out
	a.JSON = jsonOutput

	st, err := storage.ParseStoreType(cfg.StoreType)
	if err != nil {
		return err
	}
	a.StoreType = st

	store, err := a.openStore()
	if err != nil {
		return err
	}

	opts := []settings.PeerOption{
		settings.WithPeerTimeout(cfg.PeerTimeout),
		settings.WithPeerRetries(cfg.PeerRetries),
	}
	if cfg.PeerMaxRate > 0 {
		opts = append(opts, settings.WithPeerRatelimiter(ratelimit.New(cfg.PeerMaxRate, ratelimit.WithoutSlack)))
	}

	peer, err := settings.NewHTTPPeer(cfg.PeerURL, opts...)
	if err != nil {
		return err
	}

	a.Service = settings.NewService(store, settings.WithPeer(peer))

	return nil
}

func (a *App) openStore() (storage.Store, error) {
	log.WithFields(log.Fields{"type": a.StoreType}).Debug("Opening store")

	switch {
	case a.StoreType.IsSQL():
		db, err := gorm.New(a.Config)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { gorm.Close(db) })
		return storage.NewGormStore(db), nil
	case a.StoreType == storage.StoreTypeRedis:
		pool := storage.NewRedisPool(a.Config.RedisURL)
		a.closers = append(a.closers, func() {
			if err := pool.Close(); err != nil {
				log.Warn(err)
			}
		})
		return storage.NewRedisStore(pool, a.Config.RedisPrefix), nil
	case a.StoreType == storage.StoreTypeYAML:
		return storage.NewYAMLStore(a.Config.YAMLPath)
	default:
		return storage.NewLocalStore(), nil
	}
}

// Close releases the store.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) isTerminal() bool {
	f, ok := a.Out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// OutputJSON writes v as JSON, indented when writing to a terminal.
func (a *App) OutputJSON(v interface{}) error {
	enc := json.NewEncoder(a.Out)
	if a.isTerminal() {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// Printf writes human readable output.
func (a *App) Printf(format string, args ...interface{}) {
	fmt.Fprintf(a.Out, format, args...)
}

// SuccessColor wraps s in green when writing to a terminal.
func (a *App) SuccessColor(s string) string {
	if a.isTerminal() {
		return "\033[32m" + s + "\033[0m"
	}
	return s
}
