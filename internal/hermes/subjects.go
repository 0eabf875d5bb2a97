package hermes

import "time"

const (
	SubjectRunRequest = "pareto.run.request"
	SubjectStats      = "pareto.stats"

	StreamName   = "PARETO_EVENTS"
	StreamMaxAge = 7 * 24 * time.Hour
	QueueGroup   = "paretod"

	HeaderContentType = "Content-Type"
	HeaderPublishedAt = "Pareto-Published-At"
)

// StreamSubjects are retained by the JetStream stream. Inbound run requests
// are excluded so they are only ever delivered to live subscribers.
var StreamSubjects = []string{"pareto.dataset.>", "pareto.run.*.>", SubjectStats}

func SubjectDatasetCreated(datasetID string) string { return "pareto.dataset." + datasetID + ".created" }
func SubjectDatasetDeleted(datasetID string) string { return "pareto.dataset." + datasetID + ".deleted" }

func SubjectRunRequested(runID string) string { return "pareto.run." + runID + ".requested" }
func SubjectRunCompleted(runID string) string { return "pareto.run." + runID + ".completed" }
func SubjectRunFailed(runID string) string    { return "pareto.run." + runID + ".failed" }
