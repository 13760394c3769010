package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New builds the logger every command shares. Unknown levels fall back to info.
func New(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		log.Warnf("unknown log level %q, using info", level)
	}
	log.SetLevel(lvl)
	return log
}
