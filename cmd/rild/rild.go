// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// rild connects the RIL core to a modem and keeps it connected.
//
// The modem is reopened whenever the connection is lost or a command times
// out.  Completions and events are logged.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
	"github.com/warthog618/ril/at"
	"github.com/warthog618/ril/ril"
	"github.com/warthog618/ril/trace"
	"github.com/warthog618/ril/transport"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var version = "undefined"

type config struct {
	transport.Config `yaml:",inline"`
	Interface        string        `yaml:"interface"`
	Timeout          time.Duration `yaml:"timeout"`
	Reconnect        struct {
		Min time.Duration `yaml:"min"`
		Max time.Duration `yaml:"max"`
	} `yaml:"reconnect"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
	Trace bool `yaml:"trace"`
	Radio bool `yaml:"radio"`
}

func defaultConfig() config {
	cfg := config{
		Interface: "wwan0",
		Timeout:   30 * time.Second,
	}
	cfg.Reconnect.Min = 10 * time.Second
	cfg.Reconnect.Max = 10 * time.Second
	cfg.Log.Level = "info"
	return cfg
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	if err = yaml.NewDecoder(f).Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func newLogger(cfg config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	return zc.Build()
}

func main() {
	cpath := flag.String("c", "", "path to config file")
	dev := flag.String("d", "", "path to modem device")
	baud := flag.Int("b", 115200, "baud rate")
	port := flag.Int("p", 0, "TCP loopback port")
	sock := flag.String("s", "", "path to local socket")
	ifname := flag.String("i", "wwan0", "data network interface")
	timeout := flag.Duration("t", 30*time.Second, "command timeout period")
	verbose := flag.Bool("v", false, "log modem interactions")
	radio := flag.Bool("r", false, "power on the radio after initialization")
	vsn := flag.Bool("version", false, "report version and exit")
	flag.Parse()
	if *vsn {
		fmt.Printf("%s %s\n", os.Args[0], version)
		os.Exit(0)
	}
	cfg, err := loadConfig(*cpath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d":
			cfg.Device = *dev
		case "b":
			cfg.Baud = *baud
		case "p":
			cfg.Port = *port
		case "s":
			cfg.Socket = *sock
		case "i":
			cfg.Interface = *ifname
		case "t":
			cfg.Timeout = *timeout
		case "v":
			cfg.Trace = *verbose
		case "r":
			cfg.Radio = *radio
		}
	})
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	d := daemon{cfg: cfg, log: log}
	d.run(ctx)
	log.Info("exiting")
}

type daemon struct {
	cfg  config
	log  *zap.SugaredLogger
	core *ril.Core
}

// run connects the core to the modem until the context is done.
func (d *daemon) run(ctx context.Context) {
	d.core = ril.New(logSink{d.log.Named("sink")},
		ril.WithLogger(d.log.Named("ril")),
		ril.WithInterface(d.cfg.Interface))
	defer d.core.Close()
	maxDelay := d.cfg.Reconnect.Max
	if maxDelay < d.cfg.Reconnect.Min {
		maxDelay = d.cfg.Reconnect.Min
	}
	b := &backoff.Backoff{Min: d.cfg.Reconnect.Min, Max: maxDelay}
	for {
		err := d.session(ctx)
		if ctx.Err() != nil {
			return
		}
		delay := b.Duration()
		if err != nil {
			d.log.Errorw("session failed", "transport", d.cfg.Config, "err", err, "retry", delay)
		} else {
			b.Reset()
			delay = b.Duration()
			d.log.Infow("modem disconnected", "transport", d.cfg.Config, "retry", delay)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// session opens the modem and serves it until the connection is lost.
func (d *daemon) session(ctx context.Context) error {
	rw, err := transport.Open(d.cfg.Config)
	if err != nil {
		return err
	}
	defer rw.Close()
	d.log.Infow("opened modem", "transport", d.cfg.Config)
	var mio io.ReadWriter = rw
	if d.cfg.Trace {
		mio = trace.New(rw, trace.WithSugaredLogger(d.log.Named("trace")))
	}
	a := at.New(mio,
		at.WithLogger(d.log.Named("at")),
		at.WithTimeout(d.cfg.Timeout),
		at.WithTimeoutHandler(d.core.OnCommandTimeout))
	if err = d.core.Attach(a); err != nil {
		return err
	}
	if err = d.core.Init(ctx); err != nil {
		return errors.Wrap(err, "init")
	}
	if d.cfg.Radio {
		d.core.Handle(ctx, ril.RadioPower{On: true}, "startup")
	}
	closed := make(chan struct{})
	go func() {
		d.core.WaitClosed()
		close(closed)
	}()
	select {
	case <-closed:
	case <-ctx.Done():
	}
	return nil
}

// logSink logs everything reported by the core.
type logSink struct {
	log *zap.SugaredLogger
}

func (s logSink) Complete(t ril.Token, e ril.Errno, rsp interface{}) {
	if e != ril.Success {
		s.log.Warnw("request failed", "token", t, "errno", e)
		return
	}
	s.log.Infow("request complete", "token", t, "rsp", rsp)
}

func (s logSink) Event(code ril.Unsol, payload interface{}) {
	s.log.Infow("event", "code", code, "payload", payload)
}
