// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

// sendsms sends an SMS using the modem.
//
// Long messages are split into segments, all but the last of which are sent
// with the link kept open for the next.
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
	"github.com/warthog618/ril/gsm"
	"github.com/warthog618/ril/ril"
	"github.com/warthog618/ril/trace"
	"github.com/warthog618/ril/transport"
	"go.uber.org/zap"
)

var version = "undefined"

func main() {
	dev := flag.String("d", "", "path to modem device (auto-detected if not set)")
	baud := flag.Int("b", 115200, "baud rate")
	num := flag.String("n", "+12345", "number to send to, in international format")
	msg := flag.String("m", "Zoot Zoot", "the message to send")
	timeout := flag.Duration("t", 30*time.Second, "command timeout period")
	verbose := flag.Bool("v", false, "log modem interactions")
	vsn := flag.Bool("version", false, "report version and exit")
	flag.Parse()
	if *vsn {
		fmt.Printf("%s %s\n", os.Args[0], version)
		os.Exit(0)
	}
	pdus, err := gsm.EncodeSubmit(*num, *msg)
	if err != nil {
		log.Fatal(err)
	}
	m, err := transport.Open(transport.Config{Device: *dev, Baud: *baud})
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
	s := &results{}
	c := ril.New(s)
	defer c.Close()
	if err = c.Attach(a); err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	if err = c.Init(ctx); err != nil {
		log.Fatal(err)
	}
	if c.RadioState() != ril.RadioOn {
		c.Handle(ctx, ril.RadioPower{On: true}, "radio")
		if s.errno != ril.Success {
			log.Fatalf("radio power: %s", s.errno)
		}
	}
	for i, pdu := range pdus {
		var req ril.Request = ril.SendSMS{PDU: pdu}
		if i < len(pdus)-1 {
			req = ril.SendSMSExpectMore{SendSMS: ril.SendSMS{PDU: pdu}}
		}
		c.Handle(ctx, req, i)
		if s.errno != ril.Success {
			log.Fatalf("segment %d: %s", i+1, s.errno)
		}
		log.Printf("segment %d/%d: %+v\n", i+1, len(pdus), s.rsp)
	}
}

// results retains the most recent completion.
//
// SMS requests complete before Handle returns.
type results struct {
	errno ril.Errno
	rsp   interface{}
}

func (r *results) Complete(t ril.Token, e ril.Errno, rsp interface{}) {
	r.errno = e
	r.rsp = rsp
}

func (r *results) Event(code ril.Unsol, payload interface{}) {}
