package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/xbattory/xbattory/pkg/config"
	"github.com/xbattory/xbattory/pkg/source"
	"github.com/xbattory/xbattory/pkg/uevent"
)

var (
	conf config.Config

	// reads coalesces concurrent reads of the status file.
	reads singleflight.Group
)

// readSnapshot reads a fresh snapshot using the current configuration.
// The source is rebuilt on every call so a SIGHUP reload takes effect
// immediately. Callers must not modify the returned snapshot.
func readSnapshot() (*uevent.Snapshot, error) {
	v, err, _ := reads.Do("snapshot", func() (interface{}, error) {
		return source.New(conf).Snapshot()
	})
	if err != nil {
		return nil, err
	}
	return v.(*uevent.Snapshot), nil
}

func readRecord() (uevent.Record, error) {
	v, err, _ := reads.Do("record", func() (interface{}, error) {
		return source.New(conf).Record()
	})
	if err != nil {
		return nil, err
	}
	return v.(uevent.Record), nil
}

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		newSnapshotCollector(readSnapshot),
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.Use(rateLimit(rate.NewLimiter(defaultRateLimit, defaultRateLimitBurst)))
	router.GET("/config", getConfig)
	router.GET("/snapshot", getSnapshot)
	router.GET("/uevent", getUevent)
	router.GET("/health", getHealth)
	router.GET("/version", getVersion)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return router
}

func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	router := setupRoutes()

	var err error
	conf, err = config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.WithFields(conf.LogrusFields()).Infof("config reloaded")
		}
	}()

	if p, err := source.New(conf).Provider.Path(); err != nil {
		logrus.Warnf("no battery status file found yet: %v", err)
	} else {
		logrus.Infof("reading battery status from %s", p)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// A stale socket is left behind when the previous daemon was killed.
	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		logrus.Fatalf("failed to remove stale socket %s: %v", unixSocketPath, err)
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			logrus.Fatal(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return pkgerrors.Wrapf(err, "http server on %s", unixSocketPath)
	}

	logrus.Info("exiting")
	return nil
}
