package cli

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mastviz/mastfig/pkg/api"
	"github.com/mastviz/mastfig/pkg/cache"
	"github.com/mastviz/mastfig/pkg/pipeline"
)

// serveOpts holds the flags for the serve command.
type serveOpts struct {
	addr      string        // listen address
	redisURL  string        // shared Redis cache
	mongoURI  string        // shared MongoDB cache
	namespace string        // key prefix for shared caches
	noCache   bool          // disable caching entirely
	timeout   time.Duration // per-request timeout
}

// serveCommand creates the command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render pipeline over HTTP",
		Long: `Serve the layout and render pipeline over HTTP.

Routes: GET /healthz, GET /v1/presets, POST /v1/layout, POST /v1/render.

The cache backend is Redis when --redis-url is set, MongoDB when --mongo-uri
is set, and the local file cache otherwise. Each flag falls back to an
environment variable: MASTFIG_ADDR, MASTFIG_REDIS_URL, MASTFIG_MONGO_URI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.addr = flagOrEnv(cmd, "addr", opts.addr)
			opts.redisURL = flagOrEnv(cmd, "redis-url", opts.redisURL)
			opts.mongoURI = flagOrEnv(cmd, "mongo-uri", opts.mongoURI)
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis URL for a shared cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for a shared cache")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "key prefix for shared caches")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", api.DefaultRequestTimeout, "per-request timeout")

	return cmd
}

// flagOrEnv returns the flag value when set explicitly, the matching
// MASTFIG_ environment variable when present, and the flag default otherwise.
func flagOrEnv(cmd *cobra.Command, name, value string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	if env := os.Getenv(envName(name)); env != "" {
		return env
	}
	return value
}

// envName maps a flag name such as "redis-url" to "MASTFIG_REDIS_URL".
func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	backend, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}

	var keyer cache.Keyer
	if opts.namespace != "" {
		keyer = cache.NewScopedKeyer(nil, opts.namespace)
	}
	runner := pipeline.NewRunner(backend, keyer, c.Logger)
	defer runner.Close()

	srv := api.New(runner, c.Logger, api.WithRequestTimeout(opts.timeout))
	printInfo("Serving on %s", StyleHighlight.Render(opts.addr))
	return srv.ListenAndServe(ctx, opts.addr)
}

// serveCache picks the cache backend: Redis, then MongoDB, then the file cache.
func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using redis cache")
		return rc, nil
	case opts.mongoURI != "":
		mc, err := cache.NewMongoCache(ctx, opts.mongoURI)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using mongo cache")
		return mc, nil
	default:
		return c.newCache(false)
	}
}
