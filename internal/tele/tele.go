// Package tele pushes operational status to MQTT: retained online/offline
// flag, a message per print job, forwarded errors. It is a one-way signal for
// the operator, not a control channel and not persistence.
package tele

import (
	"fmt"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/juju/errors"
	"github.com/temoto/keyprint/log2"
)

type Config struct {
	Enable       bool   `hcl:"enable"`
	Broker       string `hcl:"broker"`
	ClientID     string `hcl:"client_id"`
	Username     string `hcl:"username"`
	Password     string `hcl:"password"`
	KeepaliveSec int    `hcl:"keepalive_sec"`
}

type Tele struct {
	enabled    bool
	log        *log2.Log
	m          mqtt.Client
	flushCount uint32

	topicConnect string
	topicFlush   string
	topicError   string
}

func New() *Tele { return &Tele{} }

// Init connects to the broker. Disabled tele leaves a no-op object so callers
// never nil-check. Connect failure is logged, not fatal; the client keeps
// retrying in background.
func (t *Tele) Init(log *log2.Log, c Config) error {
	if !c.Enable {
		return nil
	}
	if c.Broker == "" {
		return errors.Errorf("tele: enable=true requires broker")
	}
	t.log = log
	clientID := c.ClientID
	if clientID == "" {
		clientID = "keyprint"
	}
	t.setTopics(clientID)

	mqtt.ERROR = log
	mqtt.CRITICAL = log
	mqtt.WARN = log

	keepAlive := 60 * time.Second
	if c.KeepaliveSec > 0 {
		keepAlive = time.Duration(c.KeepaliveSec) * time.Second
	}
	opt := mqtt.NewClientOptions().
		AddBroker(c.Broker).
		SetClientID(clientID).
		SetUsername(c.Username).
		SetPassword(c.Password).
		SetKeepAlive(keepAlive).
		SetPingTimeout(keepAlive / 2).
		SetBinaryWill(t.topicConnect, []byte{0x00}, 1, true).
		SetConnectRetry(true).
		SetOnConnectHandler(func(m mqtt.Client) {
			m.Publish(t.topicConnect, 1, true, []byte{0x01})
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Errorf("tele connection lost err=%v", err)
		})
	t.m = mqtt.NewClient(opt)
	t.enabled = true
	if token := t.m.Connect(); token.Error() != nil {
		log.Errorf("tele connect err=%v", token.Error())
	}
	return nil
}

func (t *Tele) setTopics(clientID string) {
	t.topicConnect = clientID + "/c"
	t.topicFlush = clientID + "/w/print"
	t.topicError = clientID + "/w/error"
}

// Flush reports one print job; wired as collect.FlushFunc.
func (t *Tele) Flush(line string, err error) {
	if !t.enabled {
		return
	}
	n := atomic.AddUint32(&t.flushCount, 1)
	payload := fmt.Sprintf("count=%d len=%d err=%v", n, len(line), err)
	t.m.Publish(t.topicFlush, 1, false, []byte(payload))
}

// Error forwards one error line; wired as log2 error func.
func (t *Tele) Error(e error) {
	if !t.enabled || e == nil {
		return
	}
	t.m.Publish(t.topicError, 1, false, []byte(e.Error()))
}

func (t *Tele) Close() {
	if !t.enabled {
		return
	}
	t.m.Publish(t.topicConnect, 1, true, []byte{0x00})
	t.m.Disconnect(250)
}
