package configure

import (
	"io"

	"github.com/sirupsen/logrus"
)

func initLogging(level string, discard bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if discard {
		logrus.SetOutput(io.Discard)
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
