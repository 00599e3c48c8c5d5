// Copyright © 2018 The ELPS authors

package maltest

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

// Logger is an io.Writer that forwards complete lines to a test log.
type Logger struct {
	t   testing.TB
	buf []byte
}

var _ io.Writer = (*Logger)(nil)

func NewLogger(t testing.TB) *Logger {
	return &Logger{
		t: t,
	}
}

func (log *Logger) Write(b []byte) (int, error) {
	log.buf = append(log.buf, b...)
	for {
		i := bytes.IndexByte(log.buf, '\n')
		if i < 0 {
			return len(b), nil
		}
		log.t.Log(string(log.buf[:i])) // slice does not include \n
		log.buf = log.buf[i+1:]
	}
}

func (log *Logger) Flush() {
	if len(log.buf) == 0 {
		return
	}
	log.t.Log(string(log.buf))
	log.buf = nil
}

// NewFieldLogger returns a logrus logger at debug level which writes text
// records through a Logger.
func NewFieldLogger(t testing.TB) (*logrus.Logger, *Logger) {
	w := NewLogger(t)
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log, w
}
