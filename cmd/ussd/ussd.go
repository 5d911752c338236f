// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// ussd sends an USSD message using the modem.
//
// This provides an example of using requests and events.
package main

import (
	"context"
	"encoding/hex"
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
	"github.com/warthog618/sms/encoding/gsm7"
	"go.uber.org/zap"
)

var version = "undefined"

func main() {
	dev := flag.String("d", "", "path to modem device (auto-detected if not set)")
	baud := flag.Int("b", 115200, "baud rate")
	msg := flag.String("m", "*101#", "the message to send")
	packed := flag.Bool("x", false, "response is hex encoded packed 7bit")
	timeout := flag.Duration("t", 5*time.Second, "command timeout period")
	verbose := flag.Bool("v", false, "log modem interactions")
	vsn := flag.Bool("version", false, "report version and exit")
	flag.Parse()
	if *vsn {
		fmt.Printf("%s %s\n", os.Args[0], version)
		os.Exit(0)
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
	s := sink{rsp: make(chan ril.USSD, 1), errno: make(chan ril.Errno, 1)}
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
		c.Handle(ctx, ril.RadioPower{On: true}, nil)
		if e := <-s.errno; e != ril.Success {
			log.Fatalf("radio power: %s", e)
		}
	}
	c.Handle(ctx, ril.SendUSSD{USSD: *msg}, nil)
	if e := <-s.errno; e != ril.Success {
		log.Fatal(e)
	}
	select {
	case <-time.After(*timeout):
		fmt.Println("No response...")
	case rsp := <-s.rsp:
		if !*packed {
			fmt.Println(rsp.Message)
			return
		}
		rspb, err := hex.DecodeString(rsp.Message)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(gsm7.Unpack7BitUSSD(rspb, 0)))
	}
}

type sink struct {
	rsp   chan ril.USSD
	errno chan ril.Errno
}

func (s sink) Complete(t ril.Token, e ril.Errno, rsp interface{}) {
	s.errno <- e
}

func (s sink) Event(code ril.Unsol, payload interface{}) {
	if code != ril.UnsolOnUSSD {
		return
	}
	select {
	case s.rsp <- payload.(ril.USSD):
	default:
	}
}
