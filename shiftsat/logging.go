package shiftsat

import "github.com/sirupsen/logrus"

// discardLogger is used whenever a caller does not supply one, so that
// logging is always safe to call and never required to run the compiler.
var discardLogger = func() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(logrus.StandardLogger().Out)
	l.SetLevel(logrus.PanicLevel) // effectively silent without an explicit logger
	return logrus.NewEntry(l)
}()

func loggerOrDiscard(l *logrus.Entry) *logrus.Entry {
	if l == nil {
		return discardLogger
	}
	return l
}

func componentLogger(l *logrus.Entry, component string) *logrus.Entry {
	return loggerOrDiscard(l).WithField("component", component)
}
