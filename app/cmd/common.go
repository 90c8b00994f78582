package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Semior001/politicalfeed/app/remote"
	"github.com/Semior001/politicalfeed/app/session"
	"github.com/Semior001/politicalfeed/app/store"
	"golang.org/x/exp/slog"
)

// CommonOpts contains options shared by all commands.
type CommonOpts struct {
	APIURL    string        `long:"api-url" env:"API_URL" default:"https://politicalgossips.vercel.app/api/" description:"backend base url"`
	StorePath string        `long:"store-path" env:"STORE_PATH" default:"." description:"parent dir for bolt files"`
	Timeout   time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"timeout for backend requests"`

	Stdout io.Writer `no-flag:"true"`
}

func (c *CommonOpts) printf(format string, args ...any) {
	out := c.Stdout
	if out == nil {
		out = os.Stdout
	}
	_, _ = fmt.Fprintf(out, format, args...)
}

// deps are the components every command is built of.
type deps struct {
	log     *slog.Logger
	kv      *store.Bolt
	rem     *remote.Client
	session *session.Manager
}

func (c *CommonOpts) setup() (*deps, error) {
	lg := slog.Default()

	kv, err := store.NewBolt(c.StorePath)
	if err != nil {
		return nil, fmt.Errorf("make store: %w", err)
	}

	rem := remote.NewClient(
		lg.With(slog.String("prefix", "remote")),
		http.Client{Timeout: c.Timeout},
		c.APIURL,
	)

	return &deps{
		log:     lg,
		kv:      kv,
		rem:     rem,
		session: session.NewManager(lg.With(slog.String("prefix", "session")), rem, store.NewCredentialStore(kv)),
	}, nil
}

func (d *deps) close() {
	if err := d.kv.Close(); err != nil {
		d.log.Error("close bolt store", slog.Any("err", err))
	}
}
