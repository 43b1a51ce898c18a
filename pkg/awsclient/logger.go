package awsclient

import (
	"github.com/aws/smithy-go/logging"
	"github.com/common-fate/clio"
)

// clioLogger forwards SDK request logs to clio so that every API call made
// through a Session is visible with --verbose.
type clioLogger struct{}

func (clioLogger) Logf(classification logging.Classification, format string, v ...interface{}) {
	if classification == logging.Warn {
		clio.Warnf(format, v...)
		return
	}
	clio.Debugf(format, v...)
}
