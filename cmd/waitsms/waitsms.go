// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

// waitsms waits for SMSs to be received by the modem, and dumps them to stdout.
//
// This provides an example of handling events, as well as a test
// that the library works with the modem.
//
// The modem device provided must support nofications, or no SMSs will be seen.
// (the notification port is typically USB2, hence the default)
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"time"

	"github.com/warthog618/ril/at"
	"github.com/warthog618/ril/gsm"
	"github.com/warthog618/ril/ril"
	"github.com/warthog618/ril/trace"
	"github.com/warthog618/ril/transport"
	"github.com/warthog618/sms"
	"go.uber.org/zap"
)

func main() {
	dev := flag.String("d", "/dev/ttyUSB2", "path to modem device")
	baud := flag.Int("b", 115200, "baud rate")
	period := flag.Duration("p", 10*time.Minute, "period to wait")
	timeout := flag.Duration("t", 5*time.Second, "command timeout period")
	verbose := flag.Bool("v", false, "log modem interactions")
	flag.Parse()
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
	s := sink{pdus: make(chan string, 10)}
	c := ril.New(s)
	defer c.Close()
	if err = c.Attach(a); err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	if err = c.Init(ctx); err != nil {
		log.Fatal(err)
	}
	// tell the modem to forward SMSs to us.
	if _, err = a.Command(ctx, "+CNMI=1,2,2,1,0"); err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(ctx, *period)
	defer cancel()
	go pollSignalQuality(ctx, c)
	waitForSMSs(ctx, c, a.Closed(), s.pdus)
}

// pollSignalQuality requests the signal strength every minute.
// This is run in parallel to waitForSMSs to demonstrate separate goroutines
// dispatching requests to the core.
func pollSignalQuality(ctx context.Context, c *ril.Core) {
	for {
		select {
		case <-time.After(time.Minute):
			c.Handle(ctx, ril.SignalStrength{}, "signal")
		case <-ctx.Done():
			return
		}
	}
}

// waitForSMSs prints any received SMSs until the context is done.
// It reassembles multi-part SMSs into a complete message prior to display.
func waitForSMSs(ctx context.Context, c *ril.Core, closed <-chan struct{}, pdus <-chan string) {
	col := sms.NewCollector()
	defer col.Close()
	for {
		select {
		case <-ctx.Done():
			log.Println("exiting...")
			return
		case <-closed:
			log.Fatal("modem closed, exiting...")
		case pdu := <-pdus:
			c.Handle(ctx, ril.SMSAcknowledge{Success: true}, "ack")
			p, err := gsm.DecodePDU(pdu)
			if err != nil {
				log.Printf("err: %v\n", err)
				continue
			}
			tp, err := sms.Unmarshal(p.TPDU)
			if err != nil {
				log.Printf("err: %v\n", err)
				continue
			}
			segs, err := col.Collect(*tp)
			if err != nil {
				log.Printf("reassembly error: %v", err)
				continue
			}
			if segs == nil {
				continue
			}
			msg, err := sms.Decode(segs)
			if err != nil {
				log.Printf("err: %v\n", err)
				continue
			}
			log.Printf("%s: %s\n", tp.OA.Number(), msg)
		}
	}
}

type sink struct {
	pdus chan string
}

func (s sink) Complete(t ril.Token, e ril.Errno, rsp interface{}) {
	if t == "signal" && e == ril.Success {
		log.Printf("Signal quality: %+v\n", rsp)
	} else if e != ril.Success {
		log.Printf("%v: %s\n", t, e)
	}
}

func (s sink) Event(code ril.Unsol, payload interface{}) {
	if code != ril.UnsolNewSMS {
		return
	}
	select {
	case s.pdus <- payload.(string):
	default:
		log.Println("dropped SMS")
	}
}
