package ga

import "github.com/sirupsen/logrus"

// defaultLogger is used by engines constructed without WithLogger. It is
// silenced to Warn level so that Degenerate-selection fallbacks are visible
// without drowning normal runs in info noise.
func defaultLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}
