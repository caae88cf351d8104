package logger

import "github.com/harrison/docverify/internal/models"

// RunLogger is the set of events a verification run reports.
type RunLogger interface {
	LogRunStart(runID, docsRoot string, dryRun bool)
	LogFileStart(path string, blocks int)
	LogClassification(block models.FencedBlock, kind models.Classification)
	LogPlanned(block models.FencedBlock, kind models.Classification)
	LogOutcome(outcome models.VerificationOutcome)
	LogAbort(outcome models.VerificationOutcome)
	LogSummary(report *models.Report)
}

// MultiLogger forwards every event to each of its loggers in order.
type MultiLogger []RunLogger

func (m MultiLogger) LogRunStart(runID, docsRoot string, dryRun bool) {
	for _, l := range m {
		l.LogRunStart(runID, docsRoot, dryRun)
	}
}

func (m MultiLogger) LogFileStart(path string, blocks int) {
	for _, l := range m {
		l.LogFileStart(path, blocks)
	}
}

func (m MultiLogger) LogClassification(block models.FencedBlock, kind models.Classification) {
	for _, l := range m {
		l.LogClassification(block, kind)
	}
}

func (m MultiLogger) LogPlanned(block models.FencedBlock, kind models.Classification) {
	for _, l := range m {
		l.LogPlanned(block, kind)
	}
}

func (m MultiLogger) LogOutcome(outcome models.VerificationOutcome) {
	for _, l := range m {
		l.LogOutcome(outcome)
	}
}

func (m MultiLogger) LogAbort(outcome models.VerificationOutcome) {
	for _, l := range m {
		l.LogAbort(outcome)
	}
}

func (m MultiLogger) LogSummary(report *models.Report) {
	for _, l := range m {
		l.LogSummary(report)
	}
}
