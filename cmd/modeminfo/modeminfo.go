// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

// modeminfo collects and displays information related to the modem and its
// current configuration.
//
// This serves as an example of how to drive the RIL core, as well as
// providing information which may be useful for debugging.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/warthog618/ril/at"
	"github.com/warthog618/ril/ril"
	"github.com/warthog618/ril/trace"
	"github.com/warthog618/ril/transport"
	"go.uber.org/zap"
)

var version = "undefined"

func main() {
	dev := flag.String("d", "", "path to modem device (auto-detected if not set)")
	baud := flag.Int("b", 115200, "baud rate")
	port := flag.Int("p", 0, "TCP loopback port")
	timeout := flag.Duration("t", 5*time.Second, "command timeout period")
	verbose := flag.Bool("v", false, "log modem interactions")
	vsn := flag.Bool("version", false, "report version and exit")
	flag.Parse()
	if *vsn {
		fmt.Printf("%s %s\n", os.Args[0], version)
		os.Exit(0)
	}
	cfg := transport.Config{Device: *dev, Baud: *baud, Port: *port}
	m, err := transport.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()
	var mio io.ReadWriter = m
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		defer l.Sync()
		mio = trace.New(m, trace.WithSugaredLogger(l.Sugar()))
	}
	a := at.New(mio, at.WithTimeout(*timeout))
	c := ril.New(printer{})
	defer c.Close()
	if err = c.Attach(a); err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	if err = c.Init(ctx); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("modem: %s (radio %s)\n", cfg, c.RadioState())
	reqs := []ril.Request{
		ril.BasebandVersion{},
		ril.GetIMEI{},
		ril.DeviceIdentity{},
		ril.GetRadioCapability{},
		ril.GetSimStatus{},
		ril.GetIMSI{},
		ril.SignalStrength{},
		ril.VoiceRegistrationState{},
		ril.DataRegistrationState{},
		ril.Operator{},
		ril.QueryNetworkSelectionMode{},
		ril.GetPreferredNetworkType{},
		ril.VoiceRadioTech{},
		ril.GetCellInfoList{},
		ril.GetSMSCAddress{},
		ril.GetBroadcastSMSConfig{},
		ril.DataCallList{},
		ril.GetCurrentCalls{},
	}
	for _, req := range reqs {
		c.Handle(ctx, req, req.Code())
	}
}

// printer displays completions and events as they are reported.
type printer struct{}

func (printer) Complete(t ril.Token, e ril.Errno, rsp interface{}) {
	fmt.Println(t)
	if e != ril.Success {
		fmt.Printf(" %s\n", e)
		return
	}
	if rsp != nil {
		fmt.Printf(" %+v\n", rsp)
	}
}

func (printer) Event(code ril.Unsol, payload interface{}) {
	fmt.Printf("%s: %+v\n", code, payload)
}
